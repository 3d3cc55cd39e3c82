package order

import "errors"

var (
	ErrValidation              = errors.New("validation failed")
	ErrEmptyOrder              = errors.New("order must contain at least one item")
	ErrOutOfStock              = errors.New("product is out of stock")
	ErrBelowMinimumQuantity    = errors.New("quantity is below the product minimum")
	ErrOrderNotFound           = errors.New("order not found")
	ErrDuplicateOrderNumber    = errors.New("order number already exists")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrInvalidPaymentStatus    = errors.New("invalid payment status")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
)
