package bootstrap

import (
	"testing"

	"retailcore/store-service/internal/app/store/entity"
	"retailcore/store-service/internal/app/store/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	// Arrange
	catalog := service.NewProductCatalog()
	directory := service.NewCustomerDirectory()

	// Act
	err := Seed(catalog, directory)

	// Assert
	require.NoError(t, err)
	assert.Len(t, catalog.ListAll(), 2)
	assert.Len(t, catalog.Categories(), 2)
	assert.Len(t, directory.ListAll(), 2)

	laptop, err := catalog.Get(ProductLaptop)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, laptop.Price)
	assert.Equal(t, 10, laptop.Quantity)
	assert.Equal(t, "Electronics", laptop.Category.Name)

	discount, err := catalog.Discount(ProductMouse)
	require.NoError(t, err)
	assert.Equal(t, entity.FlatDiscount(5), discount)

	bob, err := directory.Get(CustomerBob)
	require.NoError(t, err)
	assert.Equal(t, "bob.smith@example.com", bob.Email)
}

func TestSeed_Twice(t *testing.T) {
	catalog := service.NewProductCatalog()
	directory := service.NewCustomerDirectory()
	require.NoError(t, Seed(catalog, directory))

	err := Seed(catalog, directory)

	assert.ErrorIs(t, err, entity.ErrDuplicateKey)
}
