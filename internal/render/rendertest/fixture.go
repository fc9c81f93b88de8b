// Package rendertest builds resolved owners for renderer tests.
package rendertest

import (
	"errors"

	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/resolver"
	"github.com/griffnb/core-savior/internal/source/memory"
)

// OrderService resolves a small shop owner: Get by path id, List with a
// query limit, Create with a body containing an Order <-> Item cycle, a void
// Ping and a Broken method that fails to resolve.
func OrderService() *domain.ResolvedOwner {
	idx := memory.New()
	status := idx.Enum("example.com/shop.Status", "pending", "paid")
	order := idx.Object("example.com/shop.Order").Doc("Order is a purchase.")
	item := idx.Object("example.com/shop.Item").Doc("@name Line item\nItem is one line of an order.")

	order.Field("id", idx.Primitive("int64")).WithTag(`title:"Order ID" example:"42"`)
	order.Field("status", status)
	order.Field("items", idx.Array(item))
	order.Field("notes", idx.Map(idx.Primitive("string"), idx.Primitive("string")))
	order.Field("secret", idx.Primitive("string")).WithDoc("@hidden")
	item.Field("order", order)
	item.Field("price", idx.Primitive("float64")).WithTag(`validate:"required"`)

	svc := idx.Object("example.com/shop.OrderService").Doc("OrderService manages orders.\n@controller")
	svc.Method("Get").
		WithDoc("Get returns one order.\n@param id the order id\n@router /orders/{id} [get]").
		Param("id", idx.Primitive("int64")).
		Result("", order)
	svc.Method("List").
		WithDoc("@router /orders [get]\n@onlyResponse id").
		Param("limit", idx.Primitive("int")).
		Result("", idx.Array(order))
	svc.Method("Create").
		WithDoc("@actionName createOrder\n@router /orders [post]").
		Param("order", order).
		Result("", order)
	svc.Method("Ping")
	svc.Method("Broken").WithSignatureError(errors.New("declaration not found"))

	owner, err := resolver.NewService(idx).ResolveOwner(svc, false)
	if err != nil {
		panic(err)
	}
	return owner
}
