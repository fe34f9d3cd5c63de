package catalog

import (
	"strings"

	"vnts-backend/internal/database"
	"vnts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateClientRequest struct {
	Name      string `json:"name" validate:"required"`
	Reference string `json:"reference"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type UpdateClientRequest struct {
	Name      *string `json:"name"`
	Reference *string `json:"reference"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

// GET /api/clients
func ListClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var clients []models.Client
		if err := database.DB.Order("name asc").Find(&clients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los clientes")
		}
		return c.JSON(clients)
	}
}

// POST /api/clients
func CreateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Reference = strings.TrimSpace(body.Reference)
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre requerido y email válido")
		}

		cl := models.Client{
			Name:  body.Name,
			Phone: strings.TrimSpace(body.Phone),
			Email: strings.TrimSpace(body.Email),
		}
		if body.Reference != "" {
			var existing models.Client
			if err := database.DB.Where("reference = ?", body.Reference).First(&existing).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Esa referencia ya está registrada")
			}
			cl.Reference = &body.Reference
		}

		if err := database.DB.Create(&cl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el cliente")
		}
		return c.Status(fiber.StatusCreated).JSON(cl)
	}
}

// PUT /api/clients/:id
func UpdateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cliente no encontrado")
		}

		var body UpdateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede estar vacío")
			}
			cl.Name = name
		}
		if body.Reference != nil {
			ref := strings.TrimSpace(*body.Reference)
			if ref == "" {
				cl.Reference = nil
			} else {
				if cl.Reference == nil || ref != *cl.Reference {
					var existing models.Client
					if err := database.DB.Where("reference = ? AND id != ?", ref, id).First(&existing).Error; err == nil {
						return fiber.NewError(fiber.StatusBadRequest, "Esa referencia ya está registrada")
					}
				}
				cl.Reference = &ref
			}
		}
		if body.Phone != nil {
			cl.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Email != nil {
			cl.Email = strings.TrimSpace(*body.Email)
		}

		if err := database.DB.Save(&cl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el cliente")
		}
		return c.JSON(cl)
	}
}

// DELETE /api/clients/:id
func DeleteClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cliente no encontrado")
		}

		var count int64
		database.DB.Model(&models.Sale{}).Where("client_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "El cliente tiene ventas registradas y no puede eliminarse")
		}

		if err := database.DB.Delete(&cl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el cliente")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
