package sales

import (
	"strings"

	"vnts-backend/internal/auth"
	"vnts-backend/internal/database"
	"vnts-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var validate = validator.New()

type NewSaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"omitempty,gt=0"`
}

type NewSaleRequest struct {
	ClientReference string               `json:"client_reference" validate:"required"`
	PaymentMethodID string               `json:"payment_method_id" validate:"required,uuid"`
	Notes           string               `json:"notes"`
	Items           []NewSaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// getOrCreateClient resuelve la referencia a un cliente dentro de la
// transacción de la venta. El alta usa ON CONFLICT DO NOTHING sobre el índice
// único de referencia: dos ventas concurrentes con la misma referencia nueva
// terminan apuntando a la misma fila.
func getOrCreateClient(tx *gorm.DB, reference string) (*models.Client, error) {
	ref := strings.TrimSpace(reference)

	insert := models.Client{Name: ref, Reference: &ref}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "reference"}},
		DoNothing: true,
	}).Create(&insert).Error; err != nil {
		return nil, err
	}

	var client models.Client
	if err := tx.Where("reference = ?", ref).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// buildSaleItems arma los items con precio y subtotal tomados del catálogo;
// el total de la venta sale de esta misma suma, nunca del cliente.
func buildSaleItems(products map[string]models.Product, reqItems []NewSaleItemRequest) ([]models.SaleItem, float64, error) {
	items := make([]models.SaleItem, 0, len(reqItems))
	var total float64

	for _, ri := range reqItems {
		product, ok := products[ri.ProductID]
		if !ok {
			return nil, 0, fiber.NewError(fiber.StatusBadRequest, "Producto no encontrado o inactivo")
		}
		quantity := ri.Quantity
		if quantity == 0 {
			quantity = 1
		}
		subtotal := product.Price * float64(quantity)
		items = append(items, models.SaleItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
			Subtotal:  subtotal,
		})
		total += subtotal
	}
	return items, total, nil
}

// POST /api/seller/sales
// La venta y sus items se insertan en una sola transacción: no pueden quedar
// ventas sin items si la segunda escritura falla.
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sellerID, err := auth.PrincipalID(c)
		if err != nil {
			return err
		}

		var body NewSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Faltan datos: producto, referencia de cliente y método de pago son obligatorios")
		}
		if strings.TrimSpace(body.ClientReference) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "La referencia del cliente es requerida")
		}

		methodID, err := uuid.Parse(body.PaymentMethodID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Método de pago inválido")
		}

		var sale models.Sale
		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			var method models.PaymentMethod
			if err := tx.Where("id = ? AND active = ?", methodID, true).First(&method).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Método de pago no encontrado o inactivo")
			}

			productIDs := make([]uuid.UUID, 0, len(body.Items))
			for _, ri := range body.Items {
				id, err := uuid.Parse(ri.ProductID)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "Producto inválido")
				}
				productIDs = append(productIDs, id)
			}
			var catalog []models.Product
			if err := tx.Where("id IN ? AND active = ?", productIDs, true).Find(&catalog).Error; err != nil {
				return err
			}
			products := make(map[string]models.Product, len(catalog))
			for _, p := range catalog {
				products[p.ID.String()] = p
			}

			items, total, err := buildSaleItems(products, body.Items)
			if err != nil {
				return err
			}
			if total <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El total de la venta no es válido")
			}

			client, err := getOrCreateClient(tx, body.ClientReference)
			if err != nil {
				return err
			}

			sale = models.Sale{
				SellerID:        sellerID,
				ClientID:        &client.ID,
				PaymentMethodID: method.ID,
				Total:           total,
				Notes:           strings.TrimSpace(body.Notes),
				Items:           items,
			}
			return tx.Create(&sale).Error
		})
		if txErr != nil {
			if fe, ok := txErr.(*fiber.Error); ok {
				return fe
			}
			log.Errorf("Error al procesar venta: %v", txErr)
			return fiber.NewError(fiber.StatusInternalServerError, "Error al procesar la venta. Por favor, intenta de nuevo")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":         sale.ID,
			"client_id":  sale.ClientID,
			"total":      sale.Total,
			"created_at": sale.CreatedAt,
		})
	}
}

type SaleHistoryItem struct {
	ID                uuid.UUID `json:"id"`
	Total             float64   `json:"total"`
	Notes             string    `json:"notes"`
	CreatedAt         string    `json:"created_at"`
	ClientName        string    `json:"client_name"`
	PaymentMethodName string    `json:"payment_method_name"`
}

// GET /api/seller/sales (historial del vendedor autenticado, más reciente primero)
func ListMySalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sellerID, err := auth.PrincipalID(c)
		if err != nil {
			return err
		}

		var sales []models.Sale
		err = database.DB.
			Preload("Client").
			Preload("PaymentMethod").
			Where("seller_id = ?", sellerID).
			Order("created_at desc").
			Find(&sales).Error
		if err != nil {
			log.Errorf("Error al cargar historial de ventas: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el historial")
		}

		res := make([]SaleHistoryItem, 0, len(sales))
		for i := range sales {
			s := &sales[i]
			item := SaleHistoryItem{
				ID:                s.ID,
				Total:             s.Total,
				Notes:             s.Notes,
				CreatedAt:         s.CreatedAt.Format("02/01/2006 15:04"),
				ClientName:        "Sin cliente",
				PaymentMethodName: "Desconocido",
			}
			if s.Client != nil {
				item.ClientName = s.Client.Name
			}
			if s.PaymentMethod != nil {
				item.PaymentMethodName = s.PaymentMethod.Name
			}
			res = append(res, item)
		}
		return c.JSON(res)
	}
}

// GET /api/seller/sales/:id (detalle con items)
func GetMySaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sellerID, err := auth.PrincipalID(c)
		if err != nil {
			return err
		}

		saleID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Id de venta inválido")
		}

		var sale models.Sale
		err = database.DB.
			Preload("Client").
			Preload("PaymentMethod").
			Preload("Items.Product").
			Where("id = ? AND seller_id = ?", saleID, sellerID).
			First(&sale).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venta no encontrada")
		}

		return c.JSON(sale)
	}
}
