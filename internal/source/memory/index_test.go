package memory

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/source"
)

func TestIndex_Interning(t *testing.T) {
	idx := New()

	assert.Same(t, idx.Primitive("string"), idx.Primitive("string"))
	assert.Same(t, idx.Object("shop.Order"), idx.Object("shop.Order"))

	arr := idx.Array(idx.Primitive("int"))
	assert.Equal(t, "[]int", idx.TypeIdentity(arr))

	m := idx.Map(idx.Primitive("string"), idx.Object("shop.Item"))
	assert.Equal(t, "map[string]shop.Item", idx.TypeIdentity(m))

	class, err := idx.ClassifyType(m)
	require.NoError(t, err)
	assert.Equal(t, domain.KindMap, class.Kind)
	assert.Same(t, idx.Object("shop.Item"), class.Value)
}

func TestIndex_Members(t *testing.T) {
	idx := New()
	order := idx.Object("shop.Order").Doc("Order is a purchase.")
	order.Field("id", idx.Primitive("string")).WithTag(`title:"ID"`).WithOrder(1)
	order.Method("Total").Result("", idx.Primitive("float64")).WithModifiers(source.Generated)

	members, err := idx.ListMembers(order)
	require.NoError(t, err)
	require.Len(t, members, 2)

	assert.Equal(t, "id", idx.MemberName(members[0]))
	assert.Equal(t, source.MemberField, idx.MemberKind(members[0]))
	assert.Equal(t, source.Documentation{Name: "id", Tag: `title:"ID"`}, idx.DocumentationFor(members[0]))

	n, ok := idx.ExplicitOrderOf(members[0])
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = idx.ExplicitOrderOf(members[1])
	assert.False(t, ok)
	assert.Equal(t, math.MaxInt, n)

	assert.True(t, idx.MemberModifiers(members[1]).Has(source.Generated))
	sig, err := idx.MethodSignature(members[1])
	require.NoError(t, err)
	require.Len(t, sig.Results, 1)

	assert.Equal(t, "Order is a purchase.", idx.DocumentationFor(order).Text)
	assert.Equal(t, "shop.Order", idx.DocumentationFor(order).Name)
}

func TestIndex_Errors(t *testing.T) {
	idx := New()

	_, err := idx.ClassifyType(idx.Unresolvable("x.Missing"))
	assert.True(t, errors.Is(err, domain.ErrUnresolvableType))

	_, err = idx.ListMembers("not a type")
	assert.Error(t, err)

	field := idx.Object("shop.Order").Field("id", idx.Primitive("string"))
	_, err = idx.MethodSignature(field)
	assert.Error(t, err)
}
