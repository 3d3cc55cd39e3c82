package order

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryRepository keeps orders in memory for static store mode. It honours
// the same contract as the Mongo repository, including order number
// uniqueness, so the service never special-cases which store is active.
type memoryRepository struct {
	mu      sync.RWMutex
	orders  map[string]*Order
	numbers map[string]bool
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		orders:  make(map[string]*Order),
		numbers: make(map[string]bool),
	}
}

func (r *memoryRepository) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.numbers[o.OrderNumber] {
		return fmt.Errorf("%w: %s", ErrDuplicateOrderNumber, o.OrderNumber)
	}

	stored := *o
	stored.Items = append([]Item(nil), o.Items...)
	r.orders[stored.ID] = &stored
	r.numbers[stored.OrderNumber] = true
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o := *stored
	o.Items = append([]Item(nil), stored.Items...)
	return &o, nil
}

func (r *memoryRepository) List(ctx context.Context, filter ListFilter) ([]Order, int64, error) {
	filter.Normalize()

	r.mu.RLock()
	matched := make([]Order, 0, len(r.orders))
	for _, stored := range r.orders {
		if filter.Status != "" && stored.Status != filter.Status {
			continue
		}
		if filter.Email != "" && !strings.EqualFold(stored.Customer.Email, filter.Email) {
			continue
		}
		o := *stored
		o.Items = append([]Item(nil), stored.Items...)
		matched = append(matched, o)
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))

	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []Order{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memoryRepository) ListByCustomerEmail(ctx context.Context, email string) ([]Order, error) {
	orders, _, err := r.List(ctx, ListFilter{Email: email, Limit: 100})
	return orders, err
}

func (r *memoryRepository) UpdateStatus(ctx context.Context, id string, update StatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[id]
	if !ok {
		return ErrOrderNotFound
	}

	stored.Status = update.Status
	if update.TrackingNumber != "" {
		stored.TrackingNumber = update.TrackingNumber
	}
	if update.EstimatedDelivery != nil {
		stored.EstimatedDelivery = update.EstimatedDelivery
	}
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryRepository) UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[id]
	if !ok {
		return ErrOrderNotFound
	}

	stored.PaymentStatus = status
	stored.UpdatedAt = time.Now().UTC()
	return nil
}
