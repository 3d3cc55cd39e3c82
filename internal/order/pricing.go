package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/TanishqDodiya/elyf-EVspare/internal/catalog"
)

// LineRequest is the caller's product-and-quantity pair before pricing.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// PricedLine carries a line's frozen price data. Subtotal and GST are
// derived on demand in decimal arithmetic so that no intermediate float
// rounding accumulates across lines.
type PricedLine struct {
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
	Unit      string
	GSTRate   decimal.Decimal
}

func (l PricedLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l PricedLine) GSTAmount() decimal.Decimal {
	return l.Subtotal().Mul(l.GSTRate).Div(decimal.NewFromInt(100))
}

// PriceLine validates a line request against a catalog snapshot and freezes
// the product's price and GST rate onto the line. Checks run in order and
// stop at the first failure: active product, stock, minimum quantity.
// Stock is read, never decremented here.
func PriceLine(req LineRequest, product *catalog.Product) (PricedLine, error) {
	if product == nil || !product.IsActive {
		return PricedLine{}, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, req.ProductID)
	}
	if !product.InStock() {
		return PricedLine{}, fmt.Errorf("%w: %s", ErrOutOfStock, product.Name)
	}
	if req.Quantity < product.MinimumQuantity {
		return PricedLine{}, fmt.Errorf("%w: minimum quantity for %s is %d", ErrBelowMinimumQuantity, product.Name, product.MinimumQuantity)
	}

	return PricedLine{
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  req.Quantity,
		Price:     decimal.NewFromFloat(product.Price),
		Unit:      product.Unit,
		GSTRate:   decimal.NewFromFloat(product.GSTRate),
	}, nil
}

// Totals is the aggregate of all priced lines. TotalAmount is always
// Subtotal + GSTAmount by construction.
type Totals struct {
	Subtotal    decimal.Decimal
	GSTAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// Aggregate sums line subtotals and GST amounts. The sums stay unrounded;
// rounding to two decimal places happens only when totals are materialized
// onto an order.
func Aggregate(lines []PricedLine) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, ErrEmptyOrder
	}

	subtotal := decimal.Zero
	gstAmount := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal())
		gstAmount = gstAmount.Add(line.GSTAmount())
	}

	return Totals{
		Subtotal:    subtotal,
		GSTAmount:   gstAmount,
		TotalAmount: subtotal.Add(gstAmount),
	}, nil
}

// RecomputeTotals rebuilds totals from an order's stored items. Stored
// totals must reproduce exactly; this is the invariant CreateOrder fixes at
// creation time.
func RecomputeTotals(items []Item) (Totals, error) {
	lines := make([]PricedLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, PricedLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     decimal.NewFromFloat(item.Price),
			Unit:      item.Unit,
			GSTRate:   decimal.NewFromFloat(item.GSTRate),
		})
	}
	return Aggregate(lines)
}
