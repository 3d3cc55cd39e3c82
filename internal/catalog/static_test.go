package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanishqDodiya/elyf-EVspare/internal/catalog"
)

func TestStaticRepository_FindByID(t *testing.T) {
	repo := catalog.NewStaticRepository()
	ctx := context.Background()

	product, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "EVCC001", product.Code)
	assert.True(t, product.InStock())

	_, err = repo.FindByID(ctx, "does-not-exist")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestStaticRepository_List(t *testing.T) {
	repo := catalog.NewStaticRepository()
	ctx := context.Background()

	t.Run("all_active_products", func(t *testing.T) {
		products, total, err := repo.List(ctx, catalog.ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, products, 4)
	})

	t.Run("newest_first", func(t *testing.T) {
		products, _, err := repo.List(ctx, catalog.ListFilter{})
		require.NoError(t, err)
		for i := 1; i < len(products); i++ {
			assert.False(t, products[i].CreatedAt.After(products[i-1].CreatedAt))
		}
	})

	t.Run("filter_by_category", func(t *testing.T) {
		products, total, err := repo.List(ctx, catalog.ListFilter{CategorySlug: "silicon-cables"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, products, 1)
		assert.Equal(t, "SC001", products[0].Code)
	})

	t.Run("search_matches_name_case_insensitively", func(t *testing.T) {
		products, _, err := repo.List(ctx, catalog.ListFilter{Search: "battery"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "BMS001", products[0].Code)
	})

	t.Run("search_matches_code", func(t *testing.T) {
		products, _, err := repo.List(ctx, catalog.ListFilter{Search: "mc001"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Motor Controller", products[0].Name)
	})

	t.Run("featured_only", func(t *testing.T) {
		featured := true
		products, _, err := repo.List(ctx, catalog.ListFilter{Featured: &featured})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("pagination", func(t *testing.T) {
		first, total, err := repo.List(ctx, catalog.ListFilter{Page: 1, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, first, 3)

		second, _, err := repo.List(ctx, catalog.ListFilter{Page: 2, Limit: 3})
		require.NoError(t, err)
		assert.Len(t, second, 1)

		beyond, _, err := repo.List(ctx, catalog.ListFilter{Page: 5, Limit: 3})
		require.NoError(t, err)
		assert.Empty(t, beyond)
	})
}

func TestStaticRepository_ListCategories(t *testing.T) {
	repo := catalog.NewStaticRepository()

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	for i := 1; i < len(categories); i++ {
		assert.LessOrEqual(t, categories[i-1].Name, categories[i].Name)
	}
}

func TestProductInStock_DerivedFromStock(t *testing.T) {
	p := catalog.Product{StockQuantity: 1}
	assert.True(t, p.InStock())

	p.StockQuantity = 0
	assert.False(t, p.InStock())

	p.StockQuantity = -3
	assert.False(t, p.InStock())
}
