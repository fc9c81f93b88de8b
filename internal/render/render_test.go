package render

import (
	"encoding/json"
	"testing"

	"github.com/griffnb/core-savior/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(name, typeName string, info *domain.CommentInfo) *domain.StructureAndCommentInfo {
	if info == nil {
		info = &domain.CommentInfo{}
	}
	return &domain.StructureAndCommentInfo{
		Name:    name,
		Path:    name,
		Node:    &domain.TypeNode{Kind: domain.KindPrimitive, TypeName: typeName},
		Comment: info,
	}
}

func orderTree() *domain.StructureAndCommentInfo {
	return &domain.StructureAndCommentInfo{
		Node:    &domain.TypeNode{Kind: domain.KindObject, TypeName: "example.com/shop.Order"},
		Comment: &domain.CommentInfo{},
		Children: []*domain.StructureAndCommentInfo{
			leaf("id", "int64", &domain.CommentInfo{Example: "42"}),
			leaf("title", "string", nil),
			{
				Name:    "status",
				Node:    &domain.TypeNode{Kind: domain.KindEnum, TypeName: "example.com/shop.Status", EnumValues: []string{"pending", "paid"}},
				Comment: &domain.CommentInfo{},
			},
			{
				Name: "items",
				Node: &domain.TypeNode{
					Kind: domain.KindArray,
					Elem: &domain.TypeNode{Kind: domain.KindObject, TypeName: "example.com/shop.Item"},
				},
				Comment: &domain.CommentInfo{},
				Children: []*domain.StructureAndCommentInfo{
					{
						Name:    "order",
						Node:    &domain.TypeNode{Kind: domain.KindCycleRef, TypeName: "example.com/shop.Order"},
						Comment: &domain.CommentInfo{},
					},
					leaf("price", "float64", &domain.CommentInfo{AllowedValues: []string{"9.99"}}),
				},
			},
			leaf("paid", "bool", nil),
		},
	}
}

func TestExample_KeepsFieldOrder(t *testing.T) {
	out, err := ExampleJSON(orderTree())
	require.NoError(t, err)

	var compact map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &compact))
	assert.Equal(t, float64(42), compact["id"])
	assert.Equal(t, "pending", compact["status"])
	assert.Equal(t, false, compact["paid"])

	b, err := json.Marshal(Example(orderTree()))
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":42,"title":"","status":"pending","items":[{"order":{},"price":"9.99"}],"paid":false}`,
		string(b))
}

func TestExample_DeclaredObjectExample(t *testing.T) {
	tree := orderTree()
	tree.Comment.Example = `{"id":1}`

	b, err := json.Marshal(Example(tree))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(b))
}

func TestExample_Map(t *testing.T) {
	s := &domain.StructureAndCommentInfo{
		Name: "notes",
		Node: &domain.TypeNode{
			Kind:  domain.KindMap,
			Key:   &domain.TypeNode{Kind: domain.KindPrimitive, TypeName: "string"},
			Value: &domain.TypeNode{Kind: domain.KindPrimitive, TypeName: "int"},
		},
		Comment: &domain.CommentInfo{},
	}

	b, err := json.Marshal(Example(s))
	require.NoError(t, err)
	assert.Equal(t, `{"key":0}`, string(b))
}

func TestExample_Nil(t *testing.T) {
	assert.Nil(t, Example(nil))
}

func TestRouteOf(t *testing.T) {
	owner := &domain.ResolvedOwner{Name: "OrderService"}

	tests := []struct {
		name   string
		router string
		method string
		want   Route
	}{
		{name: "router tag", router: "/orders/{id} [get]", method: "Get", want: Route{Method: "GET", Path: "/orders/{id}"}},
		{name: "tabs", router: "/orders\t[delete]", method: "Delete", want: Route{Method: "DELETE", Path: "/orders"}},
		{name: "malformed", router: "orders get", method: "Get", want: Route{Method: "POST", Path: "/orderService/get"}},
		{name: "default", method: "List", want: Route{Method: "POST", Path: "/orderService/list"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &domain.CommentInfo{}
			if tt.router != "" {
				info.Tags = map[string][]string{"router": {tt.router}}
			}
			got := RouteOf(owner, &domain.ResolvedMethod{Method: tt.method, Comment: info})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRouteOf_ActionName(t *testing.T) {
	got := RouteOf(nil, &domain.ResolvedMethod{
		Owner:   "shop.OrderService",
		Method:  "Get",
		Comment: &domain.CommentInfo{ActionName: "Fetch"},
	})
	assert.Equal(t, Route{Method: "POST", Path: "/orderService/fetch"}, got)
}

func TestLocate(t *testing.T) {
	get := Route{Method: "GET", Path: "/orders/{id}"}
	post := Route{Method: "POST", Path: "/orders"}

	order := &domain.StructureAndCommentInfo{
		Name: "order",
		Node: &domain.TypeNode{Kind: domain.KindObject, TypeName: "example.com/shop.Order"},
	}
	ids := &domain.StructureAndCommentInfo{
		Name: "ids",
		Node: &domain.TypeNode{Kind: domain.KindArray, Elem: &domain.TypeNode{Kind: domain.KindPrimitive, TypeName: "int"}},
	}

	assert.Equal(t, InPath, Locate(get, leaf("id", "int", nil)))
	assert.Equal(t, InQuery, Locate(get, leaf("limit", "int", nil)))
	assert.Equal(t, InQuery, Locate(get, ids))
	assert.Equal(t, InBody, Locate(get, order))
	assert.Equal(t, InBody, Locate(post, leaf("limit", "int", nil)))
	assert.Equal(t, InBody, Locate(get, leaf("meta", "encoding/json.RawMessage", nil)))
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		node *domain.TypeNode
		want string
	}{
		{node: nil, want: "unknown"},
		{node: &domain.TypeNode{Kind: domain.KindPrimitive, TypeName: "int64"}, want: "integer(int64)"},
		{node: &domain.TypeNode{Kind: domain.KindPrimitive, TypeName: "string"}, want: "string"},
		{node: &domain.TypeNode{Kind: domain.KindEnum, EnumValues: []string{"a", "b"}}, want: "enum(a|b)"},
		{
			node: &domain.TypeNode{Kind: domain.KindArray, Elem: &domain.TypeNode{Kind: domain.KindObject, TypeName: "example.com/shop.Item"}},
			want: "array<object Item>",
		},
		{
			node: &domain.TypeNode{
				Kind:  domain.KindMap,
				Key:   &domain.TypeNode{Kind: domain.KindPrimitive, TypeName: "string"},
				Value: &domain.TypeNode{Kind: domain.KindPrimitive, TypeName: "bool"},
			},
			want: "map<string, boolean>",
		},
		{node: &domain.TypeNode{Kind: domain.KindCycleRef, TypeName: "example.com/shop.Order"}, want: "ref Order"},
		{node: &domain.TypeNode{Kind: domain.KindObject}, want: "object"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeLabel(tt.node))
		})
	}
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "", Description(nil))
	assert.Equal(t, "an order", Description(&domain.CommentInfo{Description: "an order"}))
	assert.Equal(t, "Deprecated. an order", Description(&domain.CommentInfo{Description: "an order", Deprecated: true}))
	assert.Equal(t, "Deprecated.", Description(&domain.CommentInfo{Deprecated: true}))
}
