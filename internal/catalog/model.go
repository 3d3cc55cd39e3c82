package catalog

import "time"

// Product units of sale.
const (
	UnitPieces = "PCS"
	UnitSet    = "SET"
	UnitPair   = "PAIR"
	UnitKg     = "KG"
	UnitMeter  = "MTR"
	UnitLiter  = "LTR"
)

type Category struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
	Slug string `json:"slug" bson:"slug"`
}

// Product is a point-in-time snapshot of a purchasable part. Callers must
// not treat a fetched product as live state: the price, GST rate and stock
// captured here are frozen onto order lines at order time.
type Product struct {
	ID              string    `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Code            string    `json:"code" bson:"code"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	Price           float64   `json:"price" bson:"price"`
	Unit            string    `json:"unit" bson:"unit"`
	Image           string    `json:"image,omitempty" bson:"image,omitempty"`
	Category        Category  `json:"category" bson:"category"`
	MinimumQuantity int       `json:"minimum_quantity" bson:"minimum_quantity"`
	StockQuantity   int       `json:"stock_quantity" bson:"stock_quantity"`
	GSTRate         float64   `json:"gst_rate" bson:"gst_rate"`
	IsActive        bool      `json:"is_active" bson:"is_active"`
	Featured        bool      `json:"featured" bson:"featured"`
	Tags            []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// InStock derives availability from the stock counter. A stored in-stock
// flag is never authoritative: zero stock means out of stock.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// ListFilter narrows a catalog listing. Zero values mean "no filter".
type ListFilter struct {
	CategorySlug string
	Search       string
	InStock      *bool
	Featured     *bool
	Page         int
	Limit        int
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
