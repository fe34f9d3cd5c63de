package catalog

import (
	"strings"

	"vnts-backend/internal/database"
	"vnts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreatePaymentMethodRequest struct {
	Name                 string  `json:"name" validate:"required"`
	CommissionPercentage float64 `json:"commission_percentage" validate:"gte=0,lte=100"`
}

type UpdatePaymentMethodRequest struct {
	Name                 *string  `json:"name"`
	CommissionPercentage *float64 `json:"commission_percentage"`
	Active               *bool    `json:"active"`
}

// GET /api/payment-methods (?active=true limita a métodos activos)
func ListPaymentMethodsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Order("name asc")
		if c.Query("active") == "true" {
			q = q.Where("active = ?", true)
		}

		var methods []models.PaymentMethod
		if err := q.Find(&methods).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los métodos de pago")
		}
		return c.JSON(methods)
	}
}

// POST /api/payment-methods
func CreatePaymentMethodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePaymentMethodRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre requerido y comisión entre 0 y 100")
		}

		m := models.PaymentMethod{
			Name:                 body.Name,
			CommissionPercentage: body.CommissionPercentage,
			Active:               true,
		}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el método de pago")
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// PUT /api/payment-methods/:id
func UpdatePaymentMethodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var m models.PaymentMethod
		if err := database.DB.First(&m, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Método de pago no encontrado")
		}

		var body UpdatePaymentMethodRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede estar vacío")
			}
			m.Name = name
		}
		if body.CommissionPercentage != nil {
			if *body.CommissionPercentage < 0 || *body.CommissionPercentage > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "La comisión debe estar entre 0 y 100")
			}
			m.CommissionPercentage = *body.CommissionPercentage
		}
		if body.Active != nil {
			m.Active = *body.Active
		}

		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el método de pago")
		}
		return c.JSON(m)
	}
}

// DELETE /api/payment-methods/:id
func DeletePaymentMethodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var m models.PaymentMethod
		if err := database.DB.First(&m, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Método de pago no encontrado")
		}

		var count int64
		database.DB.Model(&models.Sale{}).Where("payment_method_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "El método de pago tiene ventas registradas; desactívalo en lugar de eliminarlo")
		}

		if err := database.DB.Delete(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el método de pago")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
