package catalog

import (
	"strings"

	"vnts-backend/internal/database"
	"vnts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateSellerRequest struct {
	Name                 string  `json:"name" validate:"required"`
	NumericCode          string  `json:"numeric_code" validate:"required,numeric"`
	CommissionPercentage float64 `json:"commission_percentage" validate:"gte=0,lte=100"`
}

type UpdateSellerRequest struct {
	Name                 *string  `json:"name"`
	NumericCode          *string  `json:"numeric_code"`
	CommissionPercentage *float64 `json:"commission_percentage"`
	Active               *bool    `json:"active"`
}

// GET /api/sellers
func ListSellersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sellers []models.Seller
		if err := database.DB.Order("name asc").Find(&sellers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los vendedores")
		}
		return c.JSON(sellers)
	}
}

// POST /api/sellers
func CreateSellerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSellerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.NumericCode = strings.TrimSpace(body.NumericCode)
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, código numérico y porcentaje válido son obligatorios")
		}

		// El código numérico es la credencial de acceso del vendedor
		var existing models.Seller
		if err := database.DB.Where("numeric_code = ?", body.NumericCode).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ese código numérico ya está en uso")
		}

		s := models.Seller{
			Name:                 body.Name,
			NumericCode:          body.NumericCode,
			CommissionPercentage: body.CommissionPercentage,
			Active:               true,
		}
		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el vendedor")
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// PUT /api/sellers/:id
func UpdateSellerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Seller
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vendedor no encontrado")
		}

		var body UpdateSellerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede estar vacío")
			}
			s.Name = name
		}
		if body.NumericCode != nil {
			code := strings.TrimSpace(*body.NumericCode)
			if code == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El código numérico no puede estar vacío")
			}
			if code != s.NumericCode {
				var existing models.Seller
				if err := database.DB.Where("numeric_code = ? AND id != ?", code, id).First(&existing).Error; err == nil {
					return fiber.NewError(fiber.StatusBadRequest, "Ese código numérico ya está en uso")
				}
			}
			s.NumericCode = code
		}
		if body.CommissionPercentage != nil {
			if *body.CommissionPercentage < 0 || *body.CommissionPercentage > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "El porcentaje de comisión debe estar entre 0 y 100")
			}
			s.CommissionPercentage = *body.CommissionPercentage
		}
		if body.Active != nil {
			s.Active = *body.Active
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el vendedor")
		}
		return c.JSON(s)
	}
}

// DELETE /api/sellers/:id
func DeleteSellerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Seller
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vendedor no encontrado")
		}

		var count int64
		database.DB.Model(&models.Sale{}).Where("seller_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "El vendedor tiene ventas registradas; desactívalo en lugar de eliminarlo")
		}

		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el vendedor")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
