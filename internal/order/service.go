package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/TanishqDodiya/elyf-EVspare/internal/catalog"
	"github.com/TanishqDodiya/elyf-EVspare/internal/sequence"
)

// CreateOrderInput is the validated-at-the-edge payload for order assembly.
type CreateOrderInput struct {
	Customer        Customer
	ShippingAddress ShippingAddress
	Items           []LineRequest
	PaymentMethod   string
	Notes           string
}

type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]Order, int64, error)
	ListOrdersByCustomer(ctx context.Context, email string) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, update StatusUpdate) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error
}

type service struct {
	catalog catalog.Repository
	orders  Repository
	daySeq  sequence.Day
}

func NewService(catalogRepo catalog.Repository, orderRepo Repository, daySeq sequence.Day) Service {
	return &service{
		catalog: catalogRepo,
		orders:  orderRepo,
		daySeq:  daySeq,
	}
}

// CreateOrder prices every requested line against a catalog snapshot,
// aggregates totals, takes the next day-sequence value for the order
// number, and persists the assembled order. Any failure before the final
// insert leaves nothing behind; pricing is fail-fast on the first bad line.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	if err := validateCreateOrderInput(input); err != nil {
		log.Warn().Err(err).Msg("service: order input rejected")
		return nil, err
	}

	if len(input.Items) == 0 {
		log.Warn().Msg("service: attempt to create order with no items")
		return nil, ErrEmptyOrder
	}

	paymentMethod, err := ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, input.PaymentMethod)
	}

	lines := make([]PricedLine, 0, len(input.Items))
	for _, req := range input.Items {
		product, err := s.catalog.FindByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, req.ProductID)
			}
			log.Error().Err(err).Str("product_id", req.ProductID).Msg("service: catalog lookup failed")
			return nil, fmt.Errorf("service: failed to look up product %s: %w", req.ProductID, err)
		}

		line, err := PriceLine(req, product)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	totals, err := Aggregate(lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	seq, err := s.daySeq.Next(ctx, sequence.DayKey(now))
	if err != nil {
		log.Error().Err(err).Msg("service: failed to advance day sequence")
		return nil, fmt.Errorf("service: failed to generate order number: %w", err)
	}

	id, err := newOrderID()
	if err != nil {
		return nil, fmt.Errorf("service: failed to generate order id: %w", err)
	}

	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price.InexactFloat64(),
			Unit:      line.Unit,
			GSTRate:   line.GSTRate.InexactFloat64(),
		})
	}

	createdAt := now.UTC()
	o := &Order{
		ID:              id,
		OrderNumber:     FormatOrderNumber(now, seq),
		Customer:        normalizeCustomer(input.Customer),
		ShippingAddress: input.ShippingAddress,
		Items:           items,
		Subtotal:        totals.Subtotal.Round(2).InexactFloat64(),
		GSTAmount:       totals.GSTAmount.Round(2).InexactFloat64(),
		TotalAmount:     totals.TotalAmount.Round(2).InexactFloat64(),
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		PaymentMethod:   paymentMethod,
		Notes:           input.Notes,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		if errors.Is(err, ErrDuplicateOrderNumber) {
			// Structurally prevented by the atomic counter; if it still
			// happens the caller may retry.
			log.Warn().Err(err).Str("order_number", o.OrderNumber).Msg("service: order number conflict")
			return nil, err
		}
		log.Error().Err(err).Str("order_number", o.OrderNumber).Msg("service: failed to persist order")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().
		Str("order_id", o.ID).
		Str("order_number", o.OrderNumber).
		Str("customer_email", o.Customer.Email).
		Float64("total_amount", o.TotalAmount).
		Msg("service: order created")

	return o, nil
}

func (s *service) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Str("order_id", id).Msg("service: failed to fetch order")
		return nil, fmt.Errorf("service: failed to fetch order: %w", err)
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]Order, int64, error) {
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list orders")
		return nil, 0, fmt.Errorf("service: failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (s *service) ListOrdersByCustomer(ctx context.Context, email string) ([]Order, error) {
	orders, err := s.orders.ListByCustomerEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Str("customer_email", email).Msg("service: failed to list customer orders")
		return nil, fmt.Errorf("service: failed to list customer orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus validates the transition against the forward-only lifecycle
// before persisting. Setting the same status again is a no-op.
func (s *service) UpdateStatus(ctx context.Context, id string, update StatusUpdate) (*Order, error) {
	current, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch order for status update: %w", err)
	}

	if current.Status == update.Status && update.TrackingNumber == "" && update.EstimatedDelivery == nil {
		log.Info().Str("order_id", id).Stringer("status", update.Status).Msg("service: status unchanged, nothing to do")
		return current, nil
	}

	if current.Status != update.Status && !current.Status.CanTransition(update.Status) {
		log.Warn().
			Str("order_id", id).
			Stringer("current_status", current.Status).
			Stringer("new_status", update.Status).
			Msg("service: status transition rejected")
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, update.Status)
	}

	if err := s.orders.UpdateStatus(ctx, id, update); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Str("order_id", id).Msg("service: failed to update order status")
		return nil, fmt.Errorf("service: failed to update order status: %w", err)
	}

	log.Info().
		Str("order_id", id).
		Stringer("old_status", current.Status).
		Stringer("new_status", update.Status).
		Msg("service: order status updated")

	return s.orders.GetByID(ctx, id)
}

// UpdatePaymentStatus moves the payment status to any of its enumerated
// values; it is independent of the order lifecycle.
func (s *service) UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error {
	if _, err := ParsePaymentStatus(status.String()); err != nil {
		return fmt.Errorf("%w: %q", err, status)
	}

	if err := s.orders.UpdatePaymentStatus(ctx, id, status); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		log.Error().Err(err).Str("order_id", id).Msg("service: failed to update payment status")
		return fmt.Errorf("service: failed to update payment status: %w", err)
	}

	log.Info().Str("order_id", id).Stringer("payment_status", status).Msg("service: payment status updated")
	return nil
}

func validateCreateOrderInput(input CreateOrderInput) error {
	required := []struct {
		field string
		value string
	}{
		{"customer.name", input.Customer.Name},
		{"customer.email", input.Customer.Email},
		{"customer.phone", input.Customer.Phone},
		{"shipping_address.address", input.ShippingAddress.Address},
		{"shipping_address.city", input.ShippingAddress.City},
		{"shipping_address.state", input.ShippingAddress.State},
		{"shipping_address.pincode", input.ShippingAddress.Pincode},
	}

	missing := make([]string, 0)
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	if len(input.Notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes cannot exceed %d characters", ErrValidation, MaxNotesLength)
	}

	for _, item := range input.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity for product %s must be at least 1", ErrValidation, item.ProductID)
		}
	}

	return nil
}

func normalizeCustomer(c Customer) Customer {
	return Customer{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.ToLower(strings.TrimSpace(c.Email)),
		Phone: strings.TrimSpace(c.Phone),
	}
}
