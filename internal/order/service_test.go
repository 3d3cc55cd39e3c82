package order_test

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanishqDodiya/elyf-EVspare/internal/catalog"
	"github.com/TanishqDodiya/elyf-EVspare/internal/order"
	"github.com/TanishqDodiya/elyf-EVspare/internal/sequence"
)

type mockCatalog struct {
	findByIDFunc func(ctx context.Context, id string) (*catalog.Product, error)
}

func (m *mockCatalog) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockCatalog) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.Product, int64, error) {
	return nil, 0, nil
}

func (m *mockCatalog) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return nil, nil
}

func catalogWith(products map[string]*catalog.Product) *mockCatalog {
	return &mockCatalog{
		findByIDFunc: func(ctx context.Context, id string) (*catalog.Product, error) {
			p, ok := products[id]
			if !ok {
				return nil, catalog.ErrProductNotFound
			}
			return p, nil
		},
	}
}

func validInput(items ...order.LineRequest) order.CreateOrderInput {
	return order.CreateOrderInput{
		Customer: order.Customer{
			Name:  "Tanishq Dodiya",
			Email: "Tanishq@Example.com",
			Phone: "9876543210",
		},
		ShippingAddress: order.ShippingAddress{
			Address: "14 MG Road",
			City:    "Ahmedabad",
			State:   "Gujarat",
			Pincode: "380001",
		},
		Items: items,
	}
}

func testProducts() map[string]*catalog.Product {
	return map[string]*catalog.Product{
		"p1": {
			ID: "p1", Name: "Battery Management System", Code: "BMS001",
			Price: 100.00, Unit: catalog.UnitPieces,
			MinimumQuantity: 5, StockQuantity: 50, GSTRate: 18, IsActive: true,
		},
		"p2": {
			ID: "p2", Name: "Silicon Cable 14AWG", Code: "SC001",
			Price: 89.90, Unit: catalog.UnitMeter,
			MinimumQuantity: 1, StockQuantity: 0, GSTRate: 18, IsActive: true,
		},
	}
}

func TestService_CreateOrder_Success(t *testing.T) {
	repo := order.NewMemoryRepository()
	svc := order.NewService(catalogWith(testProducts()), repo, sequence.NewMemory())

	created, err := svc.CreateOrder(context.Background(), validInput(order.LineRequest{ProductID: "p1", Quantity: 5}))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^EV\d{8}0001$`), created.OrderNumber)
	assert.Equal(t, order.StatusPending, created.Status)
	assert.Equal(t, order.PaymentPending, created.PaymentStatus)
	assert.Equal(t, order.PaymentMethodCOD, created.PaymentMethod)
	assert.Equal(t, "tanishq@example.com", created.Customer.Email)

	assert.Equal(t, 500.00, created.Subtotal)
	assert.Equal(t, 90.00, created.GSTAmount)
	assert.Equal(t, 590.00, created.TotalAmount)

	require.Len(t, created.Items, 1)
	assert.Equal(t, 100.00, created.Items[0].Price)
	assert.Equal(t, 18.0, created.Items[0].GSTRate)
	assert.Equal(t, catalog.UnitPieces, created.Items[0].Unit)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.OrderNumber, stored.OrderNumber)

	// Stored totals must be reproducible from the stored lines.
	totals, err := order.RecomputeTotals(stored.Items)
	require.NoError(t, err)
	assert.Equal(t, stored.Subtotal, totals.Subtotal.Round(2).InexactFloat64())
	assert.Equal(t, stored.GSTAmount, totals.GSTAmount.Round(2).InexactFloat64())
	assert.Equal(t, stored.TotalAmount, totals.TotalAmount.Round(2).InexactFloat64())
}

func TestService_CreateOrder_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		input     func() order.CreateOrderInput
		wantErrIs error
		wantMsg   string
	}{
		{
			name:      "empty_items",
			input:     func() order.CreateOrderInput { return validInput() },
			wantErrIs: order.ErrEmptyOrder,
		},
		{
			name: "unknown_product",
			input: func() order.CreateOrderInput {
				return validInput(order.LineRequest{ProductID: "missing", Quantity: 1})
			},
			wantErrIs: catalog.ErrProductNotFound,
		},
		{
			name: "out_of_stock",
			input: func() order.CreateOrderInput {
				return validInput(order.LineRequest{ProductID: "p2", Quantity: 10})
			},
			wantErrIs: order.ErrOutOfStock,
		},
		{
			name: "below_minimum_quantity",
			input: func() order.CreateOrderInput {
				return validInput(order.LineRequest{ProductID: "p1", Quantity: 3})
			},
			wantErrIs: order.ErrBelowMinimumQuantity,
			wantMsg:   "minimum quantity for Battery Management System is 5",
		},
		{
			name: "fail_fast_on_first_bad_line",
			input: func() order.CreateOrderInput {
				return validInput(
					order.LineRequest{ProductID: "p1", Quantity: 5},
					order.LineRequest{ProductID: "missing", Quantity: 1},
				)
			},
			wantErrIs: catalog.ErrProductNotFound,
		},
		{
			name: "missing_customer_email",
			input: func() order.CreateOrderInput {
				in := validInput(order.LineRequest{ProductID: "p1", Quantity: 5})
				in.Customer.Email = "  "
				return in
			},
			wantErrIs: order.ErrValidation,
			wantMsg:   "customer.email",
		},
		{
			name: "missing_pincode",
			input: func() order.CreateOrderInput {
				in := validInput(order.LineRequest{ProductID: "p1", Quantity: 5})
				in.ShippingAddress.Pincode = ""
				return in
			},
			wantErrIs: order.ErrValidation,
			wantMsg:   "shipping_address.pincode",
		},
		{
			name: "notes_too_long",
			input: func() order.CreateOrderInput {
				in := validInput(order.LineRequest{ProductID: "p1", Quantity: 5})
				for len(in.Notes) <= order.MaxNotesLength {
					in.Notes += "delivery instructions "
				}
				return in
			},
			wantErrIs: order.ErrValidation,
		},
		{
			name: "zero_quantity",
			input: func() order.CreateOrderInput {
				return validInput(order.LineRequest{ProductID: "p1", Quantity: 0})
			},
			wantErrIs: order.ErrValidation,
		},
		{
			name: "unknown_payment_method",
			input: func() order.CreateOrderInput {
				in := validInput(order.LineRequest{ProductID: "p1", Quantity: 5})
				in.PaymentMethod = "crypto"
				return in
			},
			wantErrIs: order.ErrInvalidPaymentMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := order.NewMemoryRepository()
			svc := order.NewService(catalogWith(testProducts()), repo, sequence.NewMemory())

			_, err := svc.CreateOrder(context.Background(), tt.input())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErrIs)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}

			// Nothing may be persisted on any rejection.
			persisted, _, listErr := repo.List(context.Background(), order.ListFilter{})
			require.NoError(t, listErr)
			assert.Empty(t, persisted)
		})
	}
}

func TestService_CreateOrder_ConcurrentNumbersAreDistinct(t *testing.T) {
	const callers = 50

	repo := order.NewMemoryRepository()
	svc := order.NewService(catalogWith(testProducts()), repo, sequence.NewMemory())

	numbers := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := svc.CreateOrder(context.Background(), validInput(order.LineRequest{ProductID: "p1", Quantity: 5}))
			if !assert.NoError(t, err) {
				return
			}
			numbers <- created.OrderNumber
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool, callers)
	for n := range numbers {
		assert.False(t, seen[n], "order number %s assigned twice", n)
		seen[n] = true
	}
	assert.Len(t, seen, callers)
}

func TestService_CreateOrder_DuplicateNumberSurfacesAsConflict(t *testing.T) {
	repo := order.NewMemoryRepository()
	svc := order.NewService(catalogWith(testProducts()), repo, &stuckSequence{})

	_, err := svc.CreateOrder(context.Background(), validInput(order.LineRequest{ProductID: "p1", Quantity: 5}))
	require.NoError(t, err)

	// Same sequence value again → same order number → uniqueness constraint.
	_, err = svc.CreateOrder(context.Background(), validInput(order.LineRequest{ProductID: "p1", Quantity: 5}))
	assert.ErrorIs(t, err, order.ErrDuplicateOrderNumber)
}

// stuckSequence always returns 1, simulating a broken counter so the
// repository's uniqueness constraint is exercised.
type stuckSequence struct{}

func (s *stuckSequence) Next(ctx context.Context, day string) (int64, error) {
	return 1, nil
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := order.NewMemoryRepository()
	svc := order.NewService(catalogWith(testProducts()), repo, sequence.NewMemory())

	created, err := svc.CreateOrder(ctx, validInput(order.LineRequest{ProductID: "p1", Quantity: 5}))
	require.NoError(t, err)

	t.Run("forward_transition_allowed", func(t *testing.T) {
		updated, err := svc.UpdateStatus(ctx, created.ID, order.StatusUpdate{Status: order.StatusConfirmed})
		require.NoError(t, err)
		assert.Equal(t, order.StatusConfirmed, updated.Status)
	})

	t.Run("skipping_ahead_rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, created.ID, order.StatusUpdate{Status: order.StatusDelivered})
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)
	})

	t.Run("same_status_is_noop", func(t *testing.T) {
		updated, err := svc.UpdateStatus(ctx, created.ID, order.StatusUpdate{Status: order.StatusConfirmed})
		require.NoError(t, err)
		assert.Equal(t, order.StatusConfirmed, updated.Status)
	})

	t.Run("tracking_number_set_on_ship", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, created.ID, order.StatusUpdate{Status: order.StatusProcessing})
		require.NoError(t, err)

		updated, err := svc.UpdateStatus(ctx, created.ID, order.StatusUpdate{
			Status:         order.StatusShipped,
			TrackingNumber: "TRK123456",
		})
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, updated.Status)
		assert.Equal(t, "TRK123456", updated.TrackingNumber)
	})

	t.Run("backward_transition_rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, created.ID, order.StatusUpdate{Status: order.StatusPending})
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)
	})

	t.Run("unknown_order", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, "nope", order.StatusUpdate{Status: order.StatusConfirmed})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestService_UpdatePaymentStatus_Unrestricted(t *testing.T) {
	ctx := context.Background()
	repo := order.NewMemoryRepository()
	svc := order.NewService(catalogWith(testProducts()), repo, sequence.NewMemory())

	created, err := svc.CreateOrder(ctx, validInput(order.LineRequest{ProductID: "p1", Quantity: 5}))
	require.NoError(t, err)

	// Any-to-any among the four values, including "backward" moves.
	transitions := []order.PaymentStatus{
		order.PaymentPaid,
		order.PaymentRefunded,
		order.PaymentFailed,
		order.PaymentPending,
		order.PaymentPaid,
	}
	for _, next := range transitions {
		err := svc.UpdatePaymentStatus(ctx, created.ID, next)
		require.NoError(t, err, "transition to %s", next)

		fetched, err := svc.GetOrderByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, next, fetched.PaymentStatus)
	}

	err = svc.UpdatePaymentStatus(ctx, created.ID, order.PaymentStatus("chargeback"))
	assert.ErrorIs(t, err, order.ErrInvalidPaymentStatus)
}

func TestService_CreateOrder_TotalsFixedAtCreation(t *testing.T) {
	ctx := context.Background()
	products := testProducts()
	repo := order.NewMemoryRepository()
	svc := order.NewService(catalogWith(products), repo, sequence.NewMemory())

	created, err := svc.CreateOrder(ctx, validInput(order.LineRequest{ProductID: "p1", Quantity: 5}))
	require.NoError(t, err)

	// A later catalog price change must not leak into the placed order.
	products["p1"].Price = 250.00

	fetched, err := svc.GetOrderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.00, fetched.Items[0].Price)
	assert.Equal(t, 500.00, fetched.Subtotal)
	assert.Equal(t, 590.00, fetched.TotalAmount)
}
