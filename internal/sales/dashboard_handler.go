package sales

import (
	"math"
	"time"

	"vnts-backend/internal/auth"
	"vnts-backend/internal/database"
	"vnts-backend/internal/models"
	"vnts-backend/internal/reports"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type DashboardResponse struct {
	TodaySalesCount         int                       `json:"today_sales_count"`
	TodaySalesAmount        float64                   `json:"today_sales_amount"`
	WeekSalesCount          int                       `json:"week_sales_count"`
	WeekSalesAmount         float64                   `json:"week_sales_amount"`
	DailyChange             reports.Ratio             `json:"daily_change"`
	CommissionPercentage    float64                   `json:"commission_percentage"`
	Commission              float64                   `json:"commission"`
	PaymentMethodCommission float64                   `json:"payment_method_commission"`
	NetAmount               float64                   `json:"net_amount"`
	PaymentMethods          []reports.MethodBreakdown `json:"payment_methods"`
}

// GET /api/seller/dashboard
//
// Resume la actividad del vendedor: ventas de hoy con su comisión, últimos
// siete días y la variación contra ayer. La comisión de hoy descuenta primero
// la comisión del método de pago y recién después aplica el porcentaje del
// vendedor.
func DashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sellerID, err := auth.PrincipalID(c)
		if err != nil {
			return err
		}

		var seller models.Seller
		if err := database.DB.First(&seller, "id = ?", sellerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vendedor no encontrado")
		}

		now := time.Now()
		today := reports.StartOfDay(now)
		yesterday := today.AddDate(0, 0, -1)
		weekAgo := today.AddDate(0, 0, -7)

		var recent []models.Sale
		err = database.DB.
			Preload("Seller").
			Preload("PaymentMethod").
			Where("seller_id = ? AND created_at >= ?", sellerID, weekAgo).
			Order("created_at asc").
			Find(&recent).Error
		if err != nil {
			log.Errorf("Error al cargar ventas recientes: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el panel")
		}

		var todaySales []models.Sale
		var todayAmount, yesterdayAmount, weekAmount float64
		for i := range recent {
			s := recent[i]
			weekAmount += s.Total
			if !s.CreatedAt.Before(today) {
				todaySales = append(todaySales, s)
				todayAmount += s.Total
			} else if !s.CreatedAt.Before(yesterday) {
				yesterdayAmount += s.Total
			}
		}

		change := reports.Ratio{Value: 100, IsPositive: true}
		if yesterdayAmount > 0 {
			diff := (todayAmount - yesterdayAmount) / yesterdayAmount * 100
			change = reports.Ratio{
				Value:      math.Round(diff*10) / 10,
				IsPositive: todayAmount >= yesterdayAmount,
			}
		}

		res := DashboardResponse{
			TodaySalesCount:      len(todaySales),
			TodaySalesAmount:     todayAmount,
			WeekSalesCount:       len(recent),
			WeekSalesAmount:      weekAmount,
			DailyChange:          change,
			CommissionPercentage: seller.CommissionPercentage,
		}
		for _, sc := range reports.SellerCommissions(todaySales) {
			if sc.SellerID == seller.ID.String() {
				res.Commission = sc.CommissionAmount
				res.PaymentMethodCommission = sc.PaymentMethodCommission
				res.NetAmount = sc.NetAmount
			}
		}

		var allSales []models.Sale
		err = database.DB.
			Preload("PaymentMethod").
			Where("seller_id = ?", sellerID).
			Find(&allSales).Error
		if err != nil {
			log.Errorf("Error al cargar desglose por método de pago: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el panel")
		}
		res.PaymentMethods = reports.SalesByPaymentMethod(allSales)

		return c.JSON(res)
	}
}
