package order

import (
	"time"

	"github.com/gofrs/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// ParseStatus validates a raw status value against the enumerated set.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(raw), nil
	}
	return "", ErrInvalidStatus
}

// allowedTransitions encodes the forward-only order lifecycle. Cancellation
// is possible until the order ships; delivered and cancelled are terminal.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusProcessing: true,
		StatusCancelled:  true,
	},
	StatusProcessing: {
		StatusShipped:   true,
		StatusCancelled: true,
	},
	StatusShipped: {
		StatusDelivered: true,
	},
	StatusDelivered: {},
	StatusCancelled: {},
}

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	return allowedTransitions[s][next]
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) String() string {
	return string(p)
}

// ParsePaymentStatus validates a raw payment status. Payment status moves
// freely among its values; there is no transition graph.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch PaymentStatus(raw) {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return PaymentStatus(raw), nil
	}
	return "", ErrInvalidPaymentStatus
}

type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "cod"
	PaymentMethodOnline       PaymentMethod = "online"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// ParsePaymentMethod validates a raw payment method. An empty value
// defaults to cash on delivery.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	if raw == "" {
		return PaymentMethodCOD, nil
	}
	switch PaymentMethod(raw) {
	case PaymentMethodCOD, PaymentMethodOnline, PaymentMethodBankTransfer:
		return PaymentMethod(raw), nil
	}
	return "", ErrInvalidPaymentMethod
}

const MaxNotesLength = 500

type Customer struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

type ShippingAddress struct {
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Pincode string `json:"pincode" bson:"pincode"`
}

// Item is one order line with the product's price and GST rate frozen at
// order time. Later catalog changes never alter a placed order.
type Item struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
	Unit      string  `json:"unit" bson:"unit"`
	GSTRate   float64 `json:"gst_rate" bson:"gst_rate"`
}

// Order is the aggregate root. Its monetary fields are fixed at creation
// and always equal the sums over Items; they are never recomputed or
// independently mutated afterwards.
type Order struct {
	ID                string          `json:"id" bson:"_id"`
	OrderNumber       string          `json:"order_number" bson:"order_number"`
	Customer          Customer        `json:"customer" bson:"customer"`
	ShippingAddress   ShippingAddress `json:"shipping_address" bson:"shipping_address"`
	Items             []Item          `json:"items" bson:"items"`
	Subtotal          float64         `json:"subtotal" bson:"subtotal"`
	GSTAmount         float64         `json:"gst_amount" bson:"gst_amount"`
	TotalAmount       float64         `json:"total_amount" bson:"total_amount"`
	Status            Status          `json:"status" bson:"status"`
	PaymentStatus     PaymentStatus   `json:"payment_status" bson:"payment_status"`
	PaymentMethod     PaymentMethod   `json:"payment_method" bson:"payment_method"`
	Notes             string          `json:"notes,omitempty" bson:"notes,omitempty"`
	TrackingNumber    string          `json:"tracking_number,omitempty" bson:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty" bson:"estimated_delivery,omitempty"`
	CreatedAt         time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" bson:"updated_at"`
}

// ItemCount is the total quantity across all lines. Computed on read,
// never stored.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

func newOrderID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
