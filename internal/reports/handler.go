package reports

import (
	"time"

	"vnts-backend/internal/database"
	"vnts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// TopClient: fila del ranking de clientes frecuentes, agregada en SQL
type TopClient struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	PurchaseCount int        `json:"purchase_count"`
	TotalSpent    float64    `json:"total_spent"`
	LastPurchase  *time.Time `json:"last_purchase"`
}

type SaleDetail struct {
	ID                string           `json:"id"`
	CreatedAt         time.Time        `json:"created_at"`
	Total             float64          `json:"total"`
	Notes             string           `json:"notes"`
	SellerName        string           `json:"seller_name"`
	ClientName        string           `json:"client_name"`
	PaymentMethodName string           `json:"payment_method_name"`
	Items             []SaleDetailItem `json:"items"`
}

type SaleDetailItem struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

type SalesReportResponse struct {
	Period          Period             `json:"period"`
	StartDate       string             `json:"start_date"`
	EndDate         string             `json:"end_date"`
	Metrics         Metrics            `json:"metrics"`
	DailySales      []DailyPoint       `json:"daily_sales"`
	TopProducts     []ProductTotal     `json:"top_products"`
	TopClientes     []TopClient        `json:"top_clientes"`
	Commissions     []SellerCommission `json:"commissions"`
	ByPaymentMethod []MethodBreakdown  `json:"by_payment_method"`
	Ventas          []SaleDetail       `json:"ventas"`
}

// parseReportQuery resuelve period/start/end/seller_id de la query.
func parseReportQuery(c *fiber.Ctx) (Period, DateRange, *uuid.UUID, error) {
	period, err := ParsePeriod(c.Query("period"))
	if err != nil {
		return "", DateRange{}, nil, err
	}

	var custom DateRange
	if period == PeriodCustom {
		start, err := time.Parse("2006-01-02", c.Query("start"))
		if err != nil {
			return "", DateRange{}, nil, fiber.NewError(fiber.StatusBadRequest, "start inválido, debe ser YYYY-MM-DD")
		}
		end, err := time.Parse("2006-01-02", c.Query("end"))
		if err != nil {
			return "", DateRange{}, nil, fiber.NewError(fiber.StatusBadRequest, "end inválido, debe ser YYYY-MM-DD")
		}
		custom = DateRange{Start: StartOfDay(start), End: EndOfDay(end)}
	}

	rng := ResolveRange(period, time.Now(), custom)

	var sellerID *uuid.UUID
	if raw := c.Query("seller_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return "", DateRange{}, nil, fiber.NewError(fiber.StatusBadRequest, "seller_id inválido")
		}
		sellerID = &id
	}

	return period, rng, sellerID, nil
}

// querySales trae las ventas del rango con todos sus joins.
func querySales(rng DateRange, sellerID *uuid.UUID) ([]models.Sale, error) {
	q := database.DB.
		Preload("Seller").
		Preload("Client").
		Preload("PaymentMethod").
		Preload("Items.Product").
		Where("created_at >= ? AND created_at <= ?", rng.Start, rng.End).
		Order("created_at desc")
	if sellerID != nil {
		q = q.Where("seller_id = ?", *sellerID)
	}

	var sales []models.Sale
	if err := q.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// sumSales: total del rango sin traer filas (se usa para el periodo anterior)
func sumSales(rng DateRange, sellerID *uuid.UUID) (float64, error) {
	q := database.DB.Model(&models.Sale{}).
		Where("created_at >= ? AND created_at <= ?", rng.Start, rng.End)
	if sellerID != nil {
		q = q.Where("seller_id = ?", *sellerID)
	}

	var total float64
	if err := q.Select("COALESCE(SUM(total), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// queryTopClients agrega el ranking de clientes en SQL, acotado a la ventana
// del reporte para que cuadre con el resto de las cifras.
func queryTopClients(rng DateRange, sellerID *uuid.UUID, limit int) ([]TopClient, error) {
	q := database.DB.Model(&models.Sale{}).
		Select("clients.id, clients.name, COUNT(sales.id) AS purchase_count, COALESCE(SUM(sales.total), 0) AS total_spent, MAX(sales.created_at) AS last_purchase").
		Joins("JOIN clients ON clients.id = sales.client_id").
		Where("sales.created_at >= ? AND sales.created_at <= ?", rng.Start, rng.End).
		Group("clients.id, clients.name").
		Order("purchase_count DESC").
		Limit(limit)
	if sellerID != nil {
		q = q.Where("sales.seller_id = ?", *sellerID)
	}

	var clients []TopClient
	if err := q.Scan(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func toSaleDetails(sales []models.Sale) []SaleDetail {
	details := make([]SaleDetail, 0, len(sales))
	for i := range sales {
		s := &sales[i]
		d := SaleDetail{
			ID:                s.ID.String(),
			CreatedAt:         s.CreatedAt,
			Total:             s.Total,
			Notes:             s.Notes,
			SellerName:        "Vendedor no registrado",
			ClientName:        "Sin cliente",
			PaymentMethodName: "Efectivo",
			Items:             make([]SaleDetailItem, 0, len(s.Items)),
		}
		if s.Seller != nil {
			d.SellerName = s.Seller.Name
		}
		if s.Client != nil {
			d.ClientName = s.Client.Name
		}
		if s.PaymentMethod != nil {
			d.PaymentMethodName = s.PaymentMethod.Name
		}
		for _, item := range s.Items {
			name := "Producto desconocido"
			if item.Product != nil {
				name = item.Product.Name
			}
			d.Items = append(d.Items, SaleDetailItem{
				ProductName: name,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Subtotal:    item.Subtotal,
			})
		}
		details = append(details, d)
	}
	return details
}

// GET /api/reports/sales?period=month&start=&end=&seller_id=
func SalesReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period, rng, sellerID, err := parseReportQuery(c)
		if err != nil {
			return err
		}

		sales, err := querySales(rng, sellerID)
		if err != nil {
			log.Errorf("Error al consultar ventas del reporte: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las ventas")
		}

		previousTotal, err := sumSales(PreviousRange(period, rng), sellerID)
		if err != nil {
			log.Errorf("Error al consultar el periodo anterior: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el periodo anterior")
		}

		topClients, err := queryTopClients(rng, sellerID, 10)
		if err != nil {
			log.Errorf("Error al consultar clientes frecuentes: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los clientes frecuentes")
		}

		daily := DailySales(sales)
		singleDay := period == PeriodToday || period == PeriodYesterday

		return c.JSON(SalesReportResponse{
			Period:          period,
			StartDate:       rng.Start.Format("2006-01-02"),
			EndDate:         rng.End.Format("2006-01-02"),
			Metrics:         ComputeMetrics(daily, rng, singleDay, previousTotal),
			DailySales:      daily,
			TopProducts:     TopN(GroupProducts(sales), 10),
			TopClientes:     topClients,
			Commissions:     SellerCommissions(sales),
			ByPaymentMethod: SalesByPaymentMethod(sales),
			Ventas:          toSaleDetails(sales),
		})
	}
}
