package reports

import (
	"math"
	"sort"
	"time"

	"vnts-backend/internal/database"
	"vnts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type AdminSummary struct {
	TotalSales   float64 `json:"total_sales"`
	DailySales   float64 `json:"daily_sales"`
	WeeklySales  float64 `json:"weekly_sales"`
	ProductCount int     `json:"product_count"`
	DailyChange  Ratio   `json:"daily_change"`
	WeeklyChange Ratio   `json:"weekly_change"`
}

type SellerTotal struct {
	SellerID string  `json:"seller_id"`
	Name     string  `json:"name"`
	Total    float64 `json:"total"`
}

type AdminDashboard struct {
	Summary     AdminSummary       `json:"summary"`
	TopProducts []ProductTotal     `json:"top_products"`
	SellerSales []SellerTotal      `json:"seller_sales"`
	Commissions []SellerCommission `json:"commissions"`
	TopClients  []TopClient        `json:"top_clients"`
	DailySales  []DailyPoint       `json:"daily_sales"`
}

// buildAdminDashboard arma el panel del administrador: resumen de hoy y de la
// semana móvil con su variación, top de productos, ventas por vendedor,
// comisiones de hoy y la serie de los últimos 14 días (con ceros en los días
// sin ventas, a diferencia de los buckets del reporte).
func buildAdminDashboard(now time.Time, sales []models.Sale, productCount int, topClients []TopClient) AdminDashboard {
	today := StartOfDay(now)
	yesterday := today.AddDate(0, 0, -1)
	lastWeek := today.AddDate(0, 0, -7)
	prevWeek := today.AddDate(0, 0, -14)
	seriesStart := today.AddDate(0, 0, -13)

	series := make([]DailyPoint, 14)
	seriesIndex := make(map[string]int, 14)
	for i := range series {
		key := seriesStart.AddDate(0, 0, i).Format("2006-01-02")
		series[i] = DailyPoint{Date: key}
		seriesIndex[key] = i
	}

	var todaySales, weekSales []models.Sale
	var total, daily, yesterdayAmount, weekly, prevWeekly float64
	for i := range sales {
		s := sales[i]
		total += s.Total

		switch {
		case !s.CreatedAt.Before(today):
			todaySales = append(todaySales, s)
			daily += s.Total
		case !s.CreatedAt.Before(yesterday):
			yesterdayAmount += s.Total
		}
		if !s.CreatedAt.Before(lastWeek) {
			weekSales = append(weekSales, s)
			weekly += s.Total
		} else if !s.CreatedAt.Before(prevWeek) {
			prevWeekly += s.Total
		}

		if idx, ok := seriesIndex[s.CreatedAt.Format("2006-01-02")]; ok {
			series[idx].Total += s.Total
			series[idx].Count++
		}
	}

	summary := AdminSummary{
		TotalSales:   total,
		DailySales:   daily,
		WeeklySales:  weekly,
		ProductCount: productCount,
		DailyChange:  changeRatio(daily, yesterdayAmount),
		WeeklyChange: changeRatio(weekly, prevWeekly),
	}

	return AdminDashboard{
		Summary:     summary,
		TopProducts: TopN(GroupProducts(sales), 5),
		SellerSales: sellerTotals(weekSales),
		Commissions: SellerCommissions(todaySales),
		TopClients:  topClients,
		DailySales:  series,
	}
}

// changeRatio: variación porcentual a un decimal; sin base previa se reporta
// +100%
func changeRatio(current, previous float64) Ratio {
	if previous == 0 {
		return Ratio{Value: 100, IsPositive: true}
	}
	diff := (current - previous) / previous * 100
	return Ratio{
		Value:      math.Round(diff*10) / 10,
		IsPositive: current >= previous,
	}
}

func sellerTotals(sales []models.Sale) []SellerTotal {
	totals := make(map[string]*SellerTotal)
	var order []string

	for i := range sales {
		s := &sales[i]
		if s.Seller == nil {
			continue
		}
		id := s.SellerID.String()
		st, ok := totals[id]
		if !ok {
			st = &SellerTotal{SellerID: id, Name: s.Seller.Name}
			totals[id] = st
			order = append(order, id)
		}
		st.Total += s.Total
	}

	result := make([]SellerTotal, 0, len(totals))
	for _, id := range order {
		result = append(result, *totals[id])
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Total > result[j].Total })
	return result
}

// GET /api/admin/dashboard
func AdminDashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()

		var sales []models.Sale
		err := database.DB.
			Preload("Seller").
			Preload("PaymentMethod").
			Preload("Items.Product").
			Order("created_at asc").
			Find(&sales).Error
		if err != nil {
			log.Errorf("Error al cargar ventas del panel: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el panel")
		}

		var productCount int64
		if err := database.DB.Model(&models.Product{}).Where("active = ?", true).Count(&productCount).Error; err != nil {
			log.Errorf("Error al contar productos: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el panel")
		}

		topClients, err := queryTopClients(DateRange{Start: time.Time{}, End: now}, nil, 5)
		if err != nil {
			log.Errorf("Error al consultar clientes frecuentes: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el panel")
		}

		return c.JSON(buildAdminDashboard(now, sales, int(productCount), topClients))
	}
}
