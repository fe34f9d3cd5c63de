package reports

import (
	"time"

	"vnts-backend/internal/database"
	"vnts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// parseFromTo lee from/to (YYYY-MM-DD, ambos opcionales). Sin filtros se
// devuelve ok=false y el caller decide su rango por defecto.
func parseFromTo(c *fiber.Ctx) (DateRange, bool, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" && toStr == "" {
		return DateRange{}, false, nil
	}

	// extremos abiertos: un solo límite también es válido
	rng := DateRange{
		Start: time.Time{},
		End:   EndOfDay(time.Now().AddDate(100, 0, 0)),
	}
	if fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return DateRange{}, false, fiber.NewError(fiber.StatusBadRequest, "from inválido, debe ser YYYY-MM-DD")
		}
		rng.Start = StartOfDay(from)
	}
	if toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return DateRange{}, false, fiber.NewError(fiber.StatusBadRequest, "to inválido, debe ser YYYY-MM-DD")
		}
		rng.End = EndOfDay(to)
	}
	return rng, true, nil
}

// GET /api/reports/clients?from=&to=
func ClientsReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rng, hasRange, err := parseFromTo(c)
		if err != nil {
			return err
		}
		if !hasRange {
			// sin filtro: toda la historia
			rng = DateRange{Start: time.Time{}, End: time.Now()}
		}

		var clients []models.Client
		if err := database.DB.Order("name").Find(&clients).Error; err != nil {
			log.Errorf("Error al cargar clientes: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los clientes")
		}

		sales, err := querySales(rng, nil)
		if err != nil {
			log.Errorf("Error al cargar ventas para el reporte de clientes: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las ventas")
		}

		stats := BuildClientStats(clients, sales)

		var totalRevenue float64
		var totalPurchases, active int
		for _, s := range stats {
			totalRevenue += s.TotalSpent
			totalPurchases += s.TotalPurchases
			if s.LastPurchase != nil {
				active++
			}
		}
		averageTicket := 0.0
		if totalPurchases > 0 {
			averageTicket = totalRevenue / float64(totalPurchases)
		}

		return c.JSON(fiber.Map{
			"clients": stats,
			"totals": fiber.Map{
				"total_clients":    len(stats),
				"total_revenue":    totalRevenue,
				"total_purchases":  totalPurchases,
				"average_ticket":   averageTicket,
				"active_clients":   active,
				"inactive_clients": len(stats) - active,
			},
		})
	}
}

// GET /api/reports/products?from=&to=
func ProductsReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rng, hasRange, err := parseFromTo(c)
		if err != nil {
			return err
		}
		if !hasRange {
			rng = DateRange{Start: time.Time{}, End: time.Now()}
		}

		var catalog []models.Product
		if err := database.DB.Order("name").Find(&catalog).Error; err != nil {
			log.Errorf("Error al cargar productos: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los productos")
		}

		sales, err := querySales(rng, nil)
		if err != nil {
			log.Errorf("Error al cargar ventas para el reporte de productos: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las ventas")
		}

		stats := BuildProductStats(catalog, sales)

		var totalRevenue float64
		var totalQuantity, active int
		for _, s := range stats {
			totalRevenue += s.TotalRevenue
			totalQuantity += s.TotalQuantity
			if s.LastSale != nil {
				active++
			}
		}
		averagePrice := 0.0
		if totalQuantity > 0 {
			averagePrice = totalRevenue / float64(totalQuantity)
		}

		return c.JSON(fiber.Map{
			"products": stats,
			"totals": fiber.Map{
				"total_products":    len(stats),
				"total_revenue":     totalRevenue,
				"total_quantity":    totalQuantity,
				"average_price":     averagePrice,
				"active_products":   active,
				"inactive_products": len(stats) - active,
			},
		})
	}
}

// GET /api/reports/payments?from=&to=
// Sin filtros usa el mes en curso.
func PaymentsReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rng, hasRange, err := parseFromTo(c)
		if err != nil {
			return err
		}
		if !hasRange {
			now := time.Now()
			rng = DateRange{Start: StartOfMonth(now), End: EndOfDay(EndOfMonth(now))}
		}

		sales, err := querySales(rng, nil)
		if err != nil {
			log.Errorf("Error al cargar ventas para el reporte de pagos: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los pagos")
		}

		rows, totals := BuildPaymentReport(sales)

		return c.JSON(fiber.Map{
			"payments": rows,
			"totals":   totals,
		})
	}
}
