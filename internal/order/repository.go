package order

import (
	"context"
	"time"
)

// ListFilter narrows an order listing. Zero values mean "no filter".
type ListFilter struct {
	Status Status
	Email  string
	Page   int
	Limit  int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

// StatusUpdate carries the fields a status transition may set alongside the
// new status itself.
type StatusUpdate struct {
	Status            Status
	TrackingNumber    string
	EstimatedDelivery *time.Time
}

// Repository persists orders. Create must be all-or-nothing: either the
// whole order document is stored or nothing is, and the order number field
// carries a uniqueness constraint.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, int64, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, update StatusUpdate) error
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error
}
