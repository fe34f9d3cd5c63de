package reports

import (
	"math"
	"sort"

	"vnts-backend/internal/models"
)

// DailyPoint: ventas acumuladas de un día de calendario
type DailyPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// ProductTotal: acumulado de un producto dentro del periodo
type ProductTotal struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// Ratio: delta porcentual con signo, redondeado a entero
type Ratio struct {
	Value      float64 `json:"value"`
	IsPositive bool    `json:"is_positive"`
}

// Metrics: KPIs derivados del periodo. Ninguno se persiste; se recalculan
// en cada consulta del reporte.
type Metrics struct {
	TotalPeriodo        float64    `json:"total_periodo"`
	CantidadVentas      int        `json:"cantidad_ventas"`
	TicketPromedio      float64    `json:"ticket_promedio"`
	PromedioDiario      float64    `json:"promedio_diario"`
	DiaMax              DailyPoint `json:"dia_max"`
	DiaMin              DailyPoint `json:"dia_min"`
	DiaMasTransacciones DailyPoint `json:"dia_mas_transacciones"`
	Tendencia           Ratio      `json:"tendencia"`
	Crecimiento         Ratio      `json:"crecimiento"`
	PreviousPeriodTotal float64    `json:"previous_period_total"`
}

// DailySales agrupa ventas por día de calendario, ordenadas ascendente.
// Solo existen buckets para días con ventas.
func DailySales(sales []models.Sale) []DailyPoint {
	buckets := make(map[string]*DailyPoint)
	for _, s := range sales {
		key := s.CreatedAt.Format("2006-01-02")
		if b, ok := buckets[key]; ok {
			b.Total += s.Total
			b.Count++
		} else {
			buckets[key] = &DailyPoint{Date: key, Total: s.Total, Count: 1}
		}
	}

	daily := make([]DailyPoint, 0, len(buckets))
	for _, b := range buckets {
		daily = append(daily, *b)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })
	return daily
}

// GroupProducts acumula cantidad y total por producto a partir de los items
// de las ventas. Si el producto ya no existe (borrado), se usa un nombre
// de relleno en lugar de omitir el item.
func GroupProducts(sales []models.Sale) []ProductTotal {
	grouped := make(map[string]*ProductTotal)
	var order []string

	for _, s := range sales {
		for _, item := range s.Items {
			id := item.ProductID.String()
			name := "Producto desconocido"
			if item.Product != nil {
				name = item.Product.Name
			}
			if g, ok := grouped[id]; ok {
				g.Quantity += item.Quantity
				g.Total += item.Subtotal
			} else {
				grouped[id] = &ProductTotal{ID: id, Name: name, Quantity: item.Quantity, Total: item.Subtotal}
				order = append(order, id)
			}
		}
	}

	result := make([]ProductTotal, 0, len(grouped))
	for _, id := range order {
		result = append(result, *grouped[id])
	}
	// orden estable: empates conservan el orden de primera aparición
	sort.SliceStable(result, func(i, j int) bool { return result[i].Total > result[j].Total })
	return result
}

// TopN corta la lista de productos agrupados a los n primeros.
func TopN(products []ProductTotal, n int) []ProductTotal {
	if len(products) <= n {
		return products
	}
	return products[:n]
}

// ComputeMetrics deriva los KPIs del periodo a partir de los buckets diarios.
// singleDay aplica a today/yesterday, donde tendencia y crecimiento colapsan
// en el mismo cálculo contra el periodo anterior.
func ComputeMetrics(daily []DailyPoint, rng DateRange, singleDay bool, previousTotal float64) Metrics {
	m := Metrics{
		Tendencia:           Ratio{Value: 0, IsPositive: true},
		Crecimiento:         Ratio{Value: 0, IsPositive: true},
		PreviousPeriodTotal: previousTotal,
	}

	for _, d := range daily {
		m.TotalPeriodo += d.Total
		m.CantidadVentas += d.Count
	}

	if m.CantidadVentas > 0 {
		m.TicketPromedio = round2(m.TotalPeriodo / float64(m.CantidadVentas))
	}
	m.PromedioDiario = round2(m.TotalPeriodo / float64(DaysIn(rng)))

	if len(daily) == 0 {
		return m
	}

	// los empates se resuelven quedándose con el primer día encontrado
	m.DiaMax = daily[0]
	m.DiaMasTransacciones = daily[0]
	for _, d := range daily[1:] {
		if d.Total > m.DiaMax.Total {
			m.DiaMax = d
		}
		if d.Count > m.DiaMasTransacciones.Count {
			m.DiaMasTransacciones = d
		}
	}

	// el peor día ignora días con total cero; si ninguno califica se
	// queda el primer día del periodo
	m.DiaMin = daily[0]
	minTotal := math.MaxFloat64
	for _, d := range daily {
		if d.Total > 0 && d.Total < minTotal {
			m.DiaMin = d
			minTotal = d.Total
		}
	}

	if singleDay {
		diff := m.TotalPeriodo - previousTotal
		m.Tendencia = Ratio{Value: percentOf(diff, previousTotal), IsPositive: diff >= 0}
		m.Crecimiento = m.Tendencia
		return m
	}

	// tendencia: primera mitad del periodo contra la segunda
	half := len(daily) / 2
	var firstHalf, secondHalf float64
	for _, d := range daily[:half] {
		firstHalf += d.Total
	}
	for _, d := range daily[half:] {
		secondHalf += d.Total
	}
	diffTrend := secondHalf - firstHalf
	m.Tendencia = Ratio{Value: percentOf(diffTrend, firstHalf), IsPositive: diffTrend >= 0}

	// crecimiento: periodo actual contra el anterior comparable
	diffGrowth := m.TotalPeriodo - previousTotal
	m.Crecimiento = Ratio{Value: percentOf(diffGrowth, previousTotal), IsPositive: diffGrowth >= 0}

	return m
}

// percentOf redondea medios hacia arriba (-2.5 da -2, no -3)
func percentOf(diff, base float64) float64 {
	if base == 0 {
		return 0
	}
	return math.Floor(diff/base*100 + 0.5)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
