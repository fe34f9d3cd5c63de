package reports

import (
	"testing"
	"time"

	"vnts-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleOn(day time.Time, total float64) models.Sale {
	s := models.Sale{Total: total}
	s.CreatedAt = day
	return s
}

func TestDailySalesBucketsMatchSaleSum(t *testing.T) {
	d1 := date(2024, time.April, 1)
	d2 := date(2024, time.April, 2)
	sales := []models.Sale{
		saleOn(d2, 50),
		saleOn(d1, 100),
		saleOn(d1, 25),
	}

	daily := DailySales(sales)
	require.Len(t, daily, 2)

	// orden ascendente por fecha
	assert.Equal(t, "2024-04-01", daily[0].Date)
	assert.Equal(t, "2024-04-02", daily[1].Date)

	var bucketSum, saleSum float64
	for _, d := range daily {
		bucketSum += d.Total
	}
	for _, s := range sales {
		saleSum += s.Total
	}
	assert.Equal(t, saleSum, bucketSum)
	assert.Equal(t, 125.0, daily[0].Total)
	assert.Equal(t, 2, daily[0].Count)
}

func TestComputeMetricsThreeDayPeriod(t *testing.T) {
	rng := DateRange{Start: date(2024, time.April, 1), End: date(2024, time.April, 3)}
	daily := []DailyPoint{
		{Date: "2024-04-01", Total: 100, Count: 1},
		{Date: "2024-04-03", Total: 300, Count: 1},
	}

	m := ComputeMetrics(daily, rng, false, 200)

	assert.Equal(t, 400.0, m.TotalPeriodo)
	assert.Equal(t, 2, m.CantidadVentas)
	assert.Equal(t, 200.0, m.TicketPromedio)
	assert.Equal(t, 133.33, m.PromedioDiario)
	assert.Equal(t, "2024-04-03", m.DiaMax.Date)
	assert.Equal(t, "2024-04-01", m.DiaMin.Date)

	// mitades: [100] contra [300]
	assert.Equal(t, Ratio{Value: 200, IsPositive: true}, m.Tendencia)
	// contra el periodo anterior con total 200
	assert.Equal(t, Ratio{Value: 100, IsPositive: true}, m.Crecimiento)
	assert.Equal(t, 200.0, m.PreviousPeriodTotal)
}

func TestComputeMetricsEmptyPeriod(t *testing.T) {
	rng := DateRange{Start: date(2024, time.April, 1), End: date(2024, time.April, 7)}
	m := ComputeMetrics(nil, rng, false, 0)

	assert.Zero(t, m.TotalPeriodo)
	assert.Zero(t, m.CantidadVentas)
	assert.Zero(t, m.TicketPromedio)
	assert.Zero(t, m.PromedioDiario)
	assert.Equal(t, Ratio{Value: 0, IsPositive: true}, m.Tendencia)
	assert.Equal(t, Ratio{Value: 0, IsPositive: true}, m.Crecimiento)
}

func TestComputeMetricsTiesKeepFirstDay(t *testing.T) {
	rng := DateRange{Start: date(2024, time.April, 1), End: date(2024, time.April, 2)}
	daily := []DailyPoint{
		{Date: "2024-04-01", Total: 100, Count: 3},
		{Date: "2024-04-02", Total: 100, Count: 3},
	}

	m := ComputeMetrics(daily, rng, false, 0)

	assert.Equal(t, "2024-04-01", m.DiaMax.Date)
	assert.Equal(t, "2024-04-01", m.DiaMin.Date)
	assert.Equal(t, "2024-04-01", m.DiaMasTransacciones.Date)
}

func TestComputeMetricsSingleDayCollapsesTrend(t *testing.T) {
	rng := DateRange{Start: date(2024, time.April, 10), End: date(2024, time.April, 10)}
	daily := []DailyPoint{{Date: "2024-04-10", Total: 150, Count: 2}}

	m := ComputeMetrics(daily, rng, true, 100)

	assert.Equal(t, m.Crecimiento, m.Tendencia)
	assert.Equal(t, Ratio{Value: 50, IsPositive: true}, m.Crecimiento)
}

func TestComputeMetricsNegativeGrowth(t *testing.T) {
	rng := DateRange{Start: date(2024, time.April, 10), End: date(2024, time.April, 10)}
	daily := []DailyPoint{{Date: "2024-04-10", Total: 50, Count: 1}}

	m := ComputeMetrics(daily, rng, true, 100)

	assert.Equal(t, Ratio{Value: -50, IsPositive: false}, m.Crecimiento)
}

func TestComputeMetricsHalfPercentRoundsUp(t *testing.T) {
	rng := DateRange{Start: date(2024, time.April, 1), End: date(2024, time.April, 2)}
	daily := []DailyPoint{
		{Date: "2024-04-01", Total: 1000, Count: 1},
		{Date: "2024-04-02", Total: 975, Count: 1},
	}

	m := ComputeMetrics(daily, rng, false, 0)

	// -2.5% redondea hacia arriba a -2
	assert.Equal(t, Ratio{Value: -2, IsPositive: false}, m.Tendencia)
}

func TestComputeMetricsZeroBaseGrowth(t *testing.T) {
	rng := DateRange{Start: date(2024, time.April, 10), End: date(2024, time.April, 10)}
	daily := []DailyPoint{{Date: "2024-04-10", Total: 50, Count: 1}}

	m := ComputeMetrics(daily, rng, true, 0)

	// sin base de comparación el porcentaje queda en cero, pero el signo es positivo
	assert.Equal(t, Ratio{Value: 0, IsPositive: true}, m.Crecimiento)
}

func TestGroupProducts(t *testing.T) {
	idA := uuid.New()
	idB := uuid.New()
	productA := &models.Product{Name: "Café"}

	sale := models.Sale{
		Items: []models.SaleItem{
			{ProductID: idA, Product: productA, Quantity: 2, Subtotal: 40},
			{ProductID: idB, Product: nil, Quantity: 1, Subtotal: 40},
			{ProductID: idA, Product: productA, Quantity: 1, Subtotal: 20},
		},
	}

	grouped := GroupProducts([]models.Sale{sale})
	require.Len(t, grouped, 2)

	// A acumula 60 y queda primero; B sin producto usa el nombre de relleno
	assert.Equal(t, "Café", grouped[0].Name)
	assert.Equal(t, 3, grouped[0].Quantity)
	assert.Equal(t, 60.0, grouped[0].Total)
	assert.Equal(t, "Producto desconocido", grouped[1].Name)
}

func TestGroupProductsTieKeepsFirstSeen(t *testing.T) {
	idA := uuid.New()
	idB := uuid.New()

	sale := models.Sale{
		Items: []models.SaleItem{
			{ProductID: idA, Product: &models.Product{Name: "Primero"}, Quantity: 1, Subtotal: 50},
			{ProductID: idB, Product: &models.Product{Name: "Segundo"}, Quantity: 1, Subtotal: 50},
		},
	}

	grouped := GroupProducts([]models.Sale{sale})
	require.Len(t, grouped, 2)
	assert.Equal(t, "Primero", grouped[0].Name)
}

func TestTopN(t *testing.T) {
	products := []ProductTotal{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	assert.Len(t, TopN(products, 2), 2)
	assert.Len(t, TopN(products, 5), 3)
}
