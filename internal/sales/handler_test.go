package sales

import (
	"testing"

	"vnts-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogWith(products ...models.Product) map[string]models.Product {
	m := make(map[string]models.Product, len(products))
	for _, p := range products {
		m[p.ID.String()] = p
	}
	return m
}

func TestBuildSaleItemsComputesSubtotals(t *testing.T) {
	coffee := models.Product{Name: "Café", Price: 25.5}
	coffee.ID = uuid.New()
	bread := models.Product{Name: "Pan", Price: 10}
	bread.ID = uuid.New()

	items, total, err := buildSaleItems(catalogWith(coffee, bread), []NewSaleItemRequest{
		{ProductID: coffee.ID.String(), Quantity: 2},
		{ProductID: bread.ID.String(), Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	// el precio viene del catálogo, no del request
	assert.Equal(t, 25.5, items[0].Price)
	assert.Equal(t, 51.0, items[0].Subtotal)
	assert.Equal(t, 30.0, items[1].Subtotal)
	assert.Equal(t, 81.0, total)
}

func TestBuildSaleItemsDefaultsQuantityToOne(t *testing.T) {
	coffee := models.Product{Name: "Café", Price: 20}
	coffee.ID = uuid.New()

	items, total, err := buildSaleItems(catalogWith(coffee), []NewSaleItemRequest{
		{ProductID: coffee.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 20.0, total)
}

func TestBuildSaleItemsRejectsUnknownProduct(t *testing.T) {
	_, _, err := buildSaleItems(catalogWith(), []NewSaleItemRequest{
		{ProductID: uuid.NewString(), Quantity: 1},
	})
	assert.Error(t, err)
}
