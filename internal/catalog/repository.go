package catalog

import (
	"context"
	"errors"
)

var ErrProductNotFound = errors.New("product not found")

// Repository is the read side of the catalog. The order core is written
// against this interface only and never knows which implementation is
// active (MongoDB or the built-in static catalog).
type Repository interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, int64, error)
	ListCategories(ctx context.Context) ([]Category, error)
}
