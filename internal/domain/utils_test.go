package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExtendedPrimitiveType(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		want     bool
	}{
		// Basic Go primitives
		{"string", "string", true},
		{"int", "int", true},
		{"bool", "bool", true},
		{"float64", "float64", true},

		// Extended primitives
		{"time.Time", "time.Time", true},
		{"*time.Time", "*time.Time", true},
		{"time.Duration", "time.Duration", true},
		{"uuid.UUID", "github.com/google/uuid.UUID", true},
		{"decimal.Decimal", "decimal.Decimal", true},
		{"raw message", "encoding/json.RawMessage", true},
		{"bytes", "[]byte", true},

		// Not primitives
		{"model.User", "model.User", false},
		{"User", "User", false},
		{"github.com/myapp/model.Account", "github.com/myapp/model.Account", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExtendedPrimitiveType(tt.typeName))
		})
	}
}

func TestJSONType(t *testing.T) {
	tests := []struct {
		typeName   string
		wantType   string
		wantFormat string
	}{
		{"string", STRING, ""},
		{"int", INTEGER, ""},
		{"int32", INTEGER, "int32"},
		{"int64", INTEGER, "int64"},
		{"float32", NUMBER, "float"},
		{"float64", NUMBER, "double"},
		{"bool", BOOLEAN, ""},
		{"time.Time", STRING, "date-time"},
		{"*time.Time", STRING, "date-time"},
		{"[]byte", STRING, "byte"},
		{"encoding/json.RawMessage", OBJECT, ""},
		{"something.Unknown", STRING, ""},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			gotType, gotFormat := JSONType(tt.typeName)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantFormat, gotFormat)
		})
	}
}

func TestOrderedSet(t *testing.T) {
	got := OrderedSet([]string{"a", " b ", ""}, nil, []string{"b", "c", "a"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Nil(t, OrderedSet())
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "order", JoinPath("", "order"))
	assert.Equal(t, "order.items", JoinPath("order", "items"))
	assert.Equal(t, "order", JoinPath("order", ""))
}

func TestShortTypeName(t *testing.T) {
	assert.Equal(t, "shop.Order", ShortTypeName("github.com/acme/shop.Order"))
	assert.Equal(t, "shop.Page[github.com/acme/shop.Order]", ShortTypeName("github.com/acme/shop.Page[github.com/acme/shop.Order]"))
	assert.Equal(t, "string", ShortTypeName("string"))
}

func TestCommentInfoFilters(t *testing.T) {
	c := &CommentInfo{
		HiddenFields:   []string{"id"},
		HiddenRequest:  []string{"secret", "id"},
		HiddenResponse: []string{"password"},
		OnlyResponse:   []string{"name"},
	}

	hidden, only := c.RequestFilter()
	assert.Equal(t, []string{"id", "secret"}, hidden)
	assert.Nil(t, only)

	hidden, only = c.ResponseFilter()
	assert.Equal(t, []string{"id", "password"}, hidden)
	assert.Equal(t, []string{"name"}, only)

	var nilComment *CommentInfo
	hidden, only = nilComment.RequestFilter()
	assert.Nil(t, hidden)
	assert.Nil(t, only)
	assert.Equal(t, "fallback", nilComment.ItemName("fallback"))
}

func TestCommentInfoTag(t *testing.T) {
	c := &CommentInfo{Tags: map[string][]string{"router": {"/orders [get]", "/orders/list [get]"}}}

	v, ok := c.Tag("Router")
	assert.True(t, ok)
	assert.Equal(t, "/orders [get]", v)

	_, ok = c.Tag("missing")
	assert.False(t, ok)
	assert.Equal(t, "x", c.TagOr("missing", "x"))
}

func TestTypeNodeInnermost(t *testing.T) {
	obj := &TypeNode{Kind: KindObject, TypeName: "shop.Item"}
	arr := &TypeNode{Kind: KindArray, Elem: &TypeNode{Kind: KindMap, Key: &TypeNode{Kind: KindPrimitive}, Value: obj}}

	assert.Same(t, obj, arr.Innermost())
	assert.Equal(t, "CYCLE_REF", KindCycleRef.String())
	assert.Equal(t, "UNKNOWN", NodeKind(99).String())
}

func TestErrors(t *testing.T) {
	typeErr := fmt.Errorf("classify: %w", &TypeError{TypeName: "x.Missing", Reason: "not loaded"})
	assert.True(t, errors.Is(typeErr, ErrUnresolvableType))
	assert.False(t, errors.Is(typeErr, ErrInvalidInput))

	var te *TypeError
	assert.True(t, errors.As(typeErr, &te))
	assert.Equal(t, "unresolvable type x.Missing: not loaded", te.Error())

	inputErr := &InputError{Subject: "method", Name: "Create", Cause: errors.New("no signature")}
	assert.True(t, errors.Is(inputErr, ErrInvalidInput))
	assert.Equal(t, `invalid method "Create": no signature`, inputErr.Error())
}

func TestBaseTypeName(t *testing.T) {
	assert.Equal(t, "Order", BaseTypeName("github.com/acme/shop.Order"))
	assert.Equal(t, "Page[github.com/acme/shop.Order]", BaseTypeName("github.com/acme/shop.Page[github.com/acme/shop.Order]"))
	assert.Equal(t, "string", BaseTypeName("string"))
}
