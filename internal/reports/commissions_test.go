package reports

import (
	"testing"

	"vnts-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sellerSale(seller *models.Seller, method *models.PaymentMethod, total float64) models.Sale {
	s := models.Sale{
		SellerID: seller.ID,
		Seller:   seller,
		Total:    total,
	}
	if method != nil {
		s.PaymentMethodID = method.ID
		s.PaymentMethod = method
	}
	return s
}

func newSeller(name string, pct float64) *models.Seller {
	s := &models.Seller{Name: name, CommissionPercentage: pct}
	s.ID = uuid.New()
	return s
}

func newMethod(name string, pct float64) *models.PaymentMethod {
	m := &models.PaymentMethod{Name: name, CommissionPercentage: pct}
	m.ID = uuid.New()
	return m
}

func TestSellerCommissionsNetOfMethodFee(t *testing.T) {
	seller := newSeller("Ana", 10)
	card := newMethod("Tarjeta", 3)

	// 1000 en ventas, 3% de tarjeta = 30 de comisión del método,
	// neto 970, 10% del vendedor = 97
	sales := []models.Sale{
		sellerSale(seller, card, 600),
		sellerSale(seller, card, 400),
	}

	result := SellerCommissions(sales)
	require.Len(t, result, 1)

	sc := result[0]
	assert.Equal(t, seller.ID.String(), sc.SellerID)
	assert.Equal(t, 1000.0, sc.TotalSales)
	assert.InDelta(t, 30.0, sc.PaymentMethodCommission, 1e-9)
	assert.InDelta(t, 970.0, sc.NetAmount, 1e-9)
	assert.InDelta(t, 97.0, sc.CommissionAmount, 1e-9)
}

func TestSellerCommissionsWithoutMethodFee(t *testing.T) {
	seller := newSeller("Luis", 5)
	cash := newMethod("Efectivo", 0)

	result := SellerCommissions([]models.Sale{sellerSale(seller, cash, 200)})
	require.Len(t, result, 1)
	assert.Zero(t, result[0].PaymentMethodCommission)
	assert.InDelta(t, 10.0, result[0].CommissionAmount, 1e-9)
}

func TestSellerCommissionsSkipsOrphanSales(t *testing.T) {
	seller := newSeller("Ana", 10)
	sales := []models.Sale{
		sellerSale(seller, nil, 100),
		{Total: 500}, // venta sin vendedor cargado
	}

	result := SellerCommissions(sales)
	require.Len(t, result, 1)
	assert.Equal(t, 100.0, result[0].TotalSales)
}

func TestSellerCommissionsDecimalExactness(t *testing.T) {
	// 0.1 + 0.2 en float64 no da 0.3; la acumulación decimal sí
	seller := newSeller("Eva", 100)
	cash := newMethod("Efectivo", 0)

	sales := []models.Sale{
		sellerSale(seller, cash, 0.1),
		sellerSale(seller, cash, 0.2),
	}

	result := SellerCommissions(sales)
	require.Len(t, result, 1)
	assert.Equal(t, 0.3, result[0].CommissionAmount)
}

func TestSalesByPaymentMethod(t *testing.T) {
	seller := newSeller("Ana", 10)
	card := newMethod("Tarjeta", 2)
	cash := newMethod("Efectivo", 0)

	sales := []models.Sale{
		sellerSale(seller, cash, 100),
		sellerSale(seller, card, 500),
		sellerSale(seller, card, 100),
	}

	result := SalesByPaymentMethod(sales)
	require.Len(t, result, 2)

	// ordenado por total descendente
	assert.Equal(t, "Tarjeta", result[0].MethodName)
	assert.Equal(t, 2, result[0].Count)
	assert.Equal(t, 600.0, result[0].Total)
	assert.InDelta(t, 12.0, result[0].Commission, 1e-9)
	assert.InDelta(t, 588.0, result[0].NetAmount, 1e-9)

	assert.Equal(t, "Efectivo", result[1].MethodName)
	assert.Zero(t, result[1].Commission)
}
