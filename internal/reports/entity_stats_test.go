package reports

import (
	"testing"
	"time"

	"vnts-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildClientStats(t *testing.T) {
	ref := "C-001"
	client := models.Client{Name: "Ana", Reference: &ref}
	client.ID = uuid.New()

	card := newMethod("Tarjeta", 3)
	product := &models.Product{Name: "Café"}

	first := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	last := time.Date(2024, time.May, 3, 18, 0, 0, 0, time.UTC)

	s1 := models.Sale{
		ClientID:      &client.ID,
		PaymentMethod: card,
		Total:         100,
		Items:         []models.SaleItem{{Product: product, Quantity: 2, Subtotal: 100}},
	}
	s1.CreatedAt = first
	s2 := models.Sale{
		ClientID: &client.ID,
		Total:    50,
	}
	s2.CreatedAt = last

	stats := BuildClientStats([]models.Client{client}, []models.Sale{s1, s2})
	require.Len(t, stats, 1)

	cs := stats[0]
	assert.Equal(t, 2, cs.TotalPurchases)
	assert.Equal(t, 150.0, cs.TotalSpent)
	assert.Equal(t, 75.0, cs.AverageTicket)
	require.NotNil(t, cs.FirstPurchase)
	require.NotNil(t, cs.LastPurchase)
	assert.Equal(t, first, *cs.FirstPurchase)
	assert.Equal(t, last, *cs.LastPurchase)

	// la venta sin método cargado cae en el bucket por defecto
	assert.Equal(t, 1, cs.PaymentMethods["Tarjeta"])
	assert.Equal(t, 1, cs.PaymentMethods["Efectivo"])
	require.Len(t, cs.FavoriteProducts, 1)
	assert.Equal(t, "Café", cs.FavoriteProducts[0].ProductName)
}

func TestBuildClientStatsClientWithoutSales(t *testing.T) {
	client := models.Client{Name: "Nuevo"}
	client.ID = uuid.New()

	stats := BuildClientStats([]models.Client{client}, nil)
	require.Len(t, stats, 1)
	assert.Zero(t, stats[0].TotalPurchases)
	assert.Nil(t, stats[0].FirstPurchase)
}

func TestBuildProductStats(t *testing.T) {
	coffee := models.Product{Name: "Café", Category: "Bebidas"}
	coffee.ID = uuid.New()

	sold := time.Date(2024, time.May, 2, 12, 0, 0, 0, time.UTC)
	sale := models.Sale{
		Items: []models.SaleItem{
			{ProductID: coffee.ID, Quantity: 4, Subtotal: 100},
		},
	}
	sale.CreatedAt = sold

	stats := BuildProductStats([]models.Product{coffee}, []models.Sale{sale})
	require.Len(t, stats, 1)

	ps := stats[0]
	assert.Equal(t, 1, ps.TotalSales)
	assert.Equal(t, 4, ps.TotalQuantity)
	assert.Equal(t, 100.0, ps.TotalRevenue)
	assert.Equal(t, 25.0, ps.AveragePrice)
	require.NotNil(t, ps.LastSale)
	assert.Equal(t, sold, *ps.LastSale)
}

func TestBuildPaymentReport(t *testing.T) {
	seller := newSeller("Ana", 10)
	card := newMethod("Tarjeta", 3)
	cash := newMethod("Efectivo", 0)

	day1 := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC)

	s1 := sellerSale(seller, card, 300)
	s1.CreatedAt = day1
	s2 := sellerSale(seller, cash, 100)
	s2.CreatedAt = day2

	rows, totals := BuildPaymentReport([]models.Sale{s1, s2})
	require.Len(t, rows, 2)

	assert.Equal(t, 400.0, totals.TotalRevenue)
	assert.Equal(t, 2, totals.TotalTransactions)
	assert.Equal(t, "Tarjeta", totals.MainMethodName)
	assert.Equal(t, 300.0, totals.MainMethodTotal)
	assert.Equal(t, 2, totals.ActiveMethods)
	// dos días distintos de actividad
	assert.Equal(t, 200.0, totals.DailyAverage)
	assert.Equal(t, 200.0, totals.AverageTicket)
}

func TestBuildPaymentReportMainMethodTieKeepsFirstSeen(t *testing.T) {
	seller := newSeller("Ana", 10)
	cash := newMethod("Efectivo", 0)
	card := newMethod("Tarjeta", 3)

	// empate exacto: gana el método de la primera venta
	sales := []models.Sale{
		sellerSale(seller, cash, 100),
		sellerSale(seller, card, 100),
	}

	for i := 0; i < 50; i++ {
		_, totals := BuildPaymentReport(sales)
		require.Equal(t, "Efectivo", totals.MainMethodName)
		require.Equal(t, 100.0, totals.MainMethodTotal)
	}
}

func TestBuildPaymentReportEmpty(t *testing.T) {
	rows, totals := BuildPaymentReport(nil)
	assert.Empty(t, rows)
	assert.Equal(t, "Sin datos", totals.MainMethodName)
	assert.Zero(t, totals.TotalRevenue)
}
