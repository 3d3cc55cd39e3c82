package catalog

import (
	"context"
	"sort"
	"strings"
	"time"
)

// staticRepository serves the built-in catalog when no MongoDB is
// configured. It is read-only and safe for concurrent use.
type staticRepository struct {
	products   []Product
	categories []Category
}

func NewStaticRepository() Repository {
	return &staticRepository{
		products:   staticProducts,
		categories: staticCategories,
	}
}

func (r *staticRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			product := r.products[i]
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *staticRepository) List(ctx context.Context, filter ListFilter) ([]Product, int64, error) {
	filter.Normalize()

	matched := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if filter.CategorySlug != "" && p.Category.Slug != filter.CategorySlug {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		if filter.InStock != nil && p.InStock() != *filter.InStock {
			continue
		}
		if filter.Search != "" && !matchesSearch(p, filter.Search) {
			continue
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))

	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []Product{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]Product, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func (r *staticRepository) ListCategories(ctx context.Context) ([]Category, error) {
	categories := make([]Category, len(r.categories))
	copy(categories, r.categories)
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func matchesSearch(p Product, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Code), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

var staticCategories = []Category{
	{ID: "1", Name: "EV CHARGERS", Slug: "ev-chargers"},
	{ID: "2", Name: "BATTERY SYSTEMS", Slug: "battery-systems"},
	{ID: "3", Name: "MOTOR SYSTEMS", Slug: "motor-systems"},
	{ID: "4", Name: "SILICON CABLES", Slug: "silicon-cables"},
	{ID: "5", Name: "DISC PAD & LEVERS", Slug: "disc-pad-levers"},
	{ID: "6", Name: "THROTTLES COMMON", Slug: "throttles-common"},
	{ID: "7", Name: "SPEEDOMETER", Slug: "speedometer"},
	{ID: "8", Name: "CONTROLLER", Slug: "controller"},
	{ID: "9", Name: "EV CONVERSION KIT", Slug: "ev-conversion-kit"},
	{ID: "10", Name: "BMS LFP DALY", Slug: "bms-lfp-daly"},
	{ID: "11", Name: "BATTERY ACCESSORIES", Slug: "battery-accessories"},
	{ID: "12", Name: "HST (HEAT SHRINK TUBE)", Slug: "hst-heat-shrink-tube"},
}

var staticSeededAt = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

var staticProducts = []Product{
	{
		ID:              "1",
		Name:            "EV Charger Cable Type 2",
		Code:            "EVCC001",
		Description:     "High-quality Type 2 charging cable for electric vehicles",
		Price:           299.99,
		Unit:            UnitPieces,
		Category:        Category{ID: "1", Name: "EV CHARGERS", Slug: "ev-chargers"},
		MinimumQuantity: 1,
		StockQuantity:   50,
		GSTRate:         18,
		IsActive:        true,
		Featured:        true,
		CreatedAt:       staticSeededAt,
		UpdatedAt:       staticSeededAt,
	},
	{
		ID:              "2",
		Name:            "Battery Management System",
		Code:            "BMS001",
		Description:     "Advanced BMS for lithium-ion battery packs",
		Price:           599.99,
		Unit:            UnitPieces,
		Category:        Category{ID: "2", Name: "BATTERY SYSTEMS", Slug: "battery-systems"},
		MinimumQuantity: 1,
		StockQuantity:   25,
		GSTRate:         18,
		IsActive:        true,
		Featured:        true,
		CreatedAt:       staticSeededAt.Add(time.Minute),
		UpdatedAt:       staticSeededAt.Add(time.Minute),
	},
	{
		ID:              "3",
		Name:            "Motor Controller",
		Code:            "MC001",
		Description:     "High-performance motor controller for EVs",
		Price:           899.99,
		Unit:            UnitPieces,
		Category:        Category{ID: "3", Name: "MOTOR SYSTEMS", Slug: "motor-systems"},
		MinimumQuantity: 1,
		StockQuantity:   15,
		GSTRate:         18,
		IsActive:        true,
		CreatedAt:       staticSeededAt.Add(2 * time.Minute),
		UpdatedAt:       staticSeededAt.Add(2 * time.Minute),
	},
	{
		ID:              "4",
		Name:            "Silicon Cable 14AWG",
		Code:            "SC001",
		Description:     "High-temperature silicon cable for EV applications",
		Price:           89.90,
		Unit:            UnitMeter,
		Category:        Category{ID: "4", Name: "SILICON CABLES", Slug: "silicon-cables"},
		MinimumQuantity: 5,
		StockQuantity:   100,
		GSTRate:         18,
		IsActive:        true,
		CreatedAt:       staticSeededAt.Add(3 * time.Minute),
		UpdatedAt:       staticSeededAt.Add(3 * time.Minute),
	},
}
