package embedded_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/shopfront/internal/embedded"
	"github.com/petalworks/shopfront/pkg/catalog"
)

func TestProducts(t *testing.T) {
	products, err := embedded.Products()
	require.NoError(t, err)
	require.NotEmpty(t, products)

	for _, p := range products {
		assert.Equal(t, catalog.CategoryLocalStock, p.Category)
		assert.Nil(t, p.UpdatedAt, "local stock never carries a timestamp")
		assert.NotNil(t, p.Images)
		assert.NotEmpty(t, p.Name)
		assert.GreaterOrEqual(t, p.Price, 0.0)
	}
}

func TestProductsReturnsACopy(t *testing.T) {
	first, err := embedded.Products()
	require.NoError(t, err)

	first[0].Name = "mutated"

	second, err := embedded.Products()
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second[0].Name)
}
