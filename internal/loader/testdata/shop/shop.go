// Package shop is a small order API used by the loader tests.
package shop

import (
	"context"
	"encoding/json"
	"time"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Base holds audit fields.
type Base struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt *time.Time
}

// Order is a purchase.
// @name Purchase order
type Order struct {
	// ID is the order identifier.
	ID       string            `json:"id" title:"Order ID"`
	Items    []Item            `json:"items" order:"2"`
	Status   Status            `json:"status"`
	Notes    map[string]string `json:"notes,omitempty"`
	Meta     json.RawMessage   `json:"meta"`
	Secret   string            `json:"-"`
	internal int
	Base
}

// Item is one line of an order.
type Item struct {
	Order *Order  `json:"order"`
	Price float64 `json:"price" validate:"required"`
}

// Page is a page of results.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// OrderService manages orders.
// @controller
type OrderService struct {
	db string
}

// NewOrderService creates a service.
func NewOrderService() *OrderService { return &OrderService{} }

// DefaultService returns the shared service.
func DefaultService() *OrderService { return nil }

// Get returns one order.
// @param id the order id
// @router /orders/{id} [get]
func (s *OrderService) Get(ctx context.Context, id string) (*Order, error) { return nil, nil }

// List returns a page of orders.
// @onlyResponse items.id total
func (s *OrderService) List(ctx context.Context, page int) (Page[Order], error) {
	return Page[Order]{}, nil
}

// Delete removes an order.
// @hidden
func (s *OrderService) Delete(ctx context.Context, id string) error { return nil }

func (s *OrderService) audit() {}

// Watch streams order changes.
func (s *OrderService) Watch() <-chan Order { return nil }

// Store persists orders.
type Store interface {
	// Save writes an order.
	Save(ctx context.Context, order Order) error
}

// Tree is a category hierarchy.
type Tree []Tree

// Dict is a nested settings bag.
type Dict map[string]Dict

// Catalog groups the recursive containers.
type Catalog struct {
	Tree     Tree `json:"tree"`
	Settings Dict `json:"settings"`
}
