// Package orders provides relational persistence for customer orders and
// production batch groupings.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Order statuses
const (
	StatusNew          = "new"
	StatusConfirmed    = "confirmed"
	StatusInProduction = "in_production"
	StatusDone         = "done"
	StatusCancelled    = "cancelled"
)

// Batch statuses
const (
	BatchOpen     = "open"
	BatchPrinting = "printing"
	BatchClosed   = "closed"
)

// ErrNotFound marks orders or batches absent from the database
var ErrNotFound = fmt.Errorf("not found")

// Item is one catalog image selected in an order
type Item struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// Order is a customer order over catalog images
type Order struct {
	ID            uuid.UUID  `json:"id"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	Items         []Item     `json:"items"`
	Status        string     `json:"status"`
	BatchID       *uuid.UUID `json:"batchId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Batch groups orders for one production run
type Batch struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	Orders    []Order   `json:"orders,omitempty"`
}

// ListFilter narrows order listings
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

// Store is the persistence interface for orders and batches
type Store interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, f ListFilter) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	CreateBatch(ctx context.Context, b *Batch) error
	GetBatch(ctx context.Context, id uuid.UUID) (*Batch, error)
	ListBatches(ctx context.Context) ([]Batch, error)
	AssignOrders(ctx context.Context, batchID uuid.UUID, orderIDs []uuid.UUID) error
	CloseBatch(ctx context.Context, id uuid.UUID) error
}

// ValidStatus reports whether s is a known order status
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusConfirmed, StatusInProduction, StatusDone, StatusCancelled:
		return true
	}
	return false
}
