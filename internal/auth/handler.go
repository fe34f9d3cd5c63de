package auth

import (
	"strings"

	"vnts-backend/internal/config"
	"vnts-backend/internal/database"
	"vnts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SellerLoginRequest struct {
	NumericCode string `json:"numeric_code"`
}

// POST /api/auth/register-admin
// Solo permite crear el primer administrador; los siguientes se crean autenticado.
func RegisterAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, email y contraseña son obligatorios")
		}

		var count int64
		database.DB.Model(&models.User{}).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Ya existe un administrador")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo procesar la contraseña")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el usuario")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		})
	}
}

// POST /api/auth/login (administradores, email + contraseña)
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email o contraseña incorrectos")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email o contraseña incorrectos")
		}

		token, err := GenerateToken(cfg.JWTSecret, user.ID, user.Name, models.RoleAdmin)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  models.RoleAdmin,
			},
		})
	}
}

// POST /api/auth/seller-login (vendedores, código numérico)
func SellerLoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SellerLoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		code := strings.TrimSpace(body.NumericCode)
		if code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El código es obligatorio")
		}

		var seller models.Seller
		err := database.DB.
			Where("numeric_code = ? AND active = ?", code, true).
			First(&seller).Error
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Código de vendedor inválido")
		}

		token, err := GenerateToken(cfg.JWTSecret, seller.ID, seller.Name, models.RoleSeller)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":   seller.ID,
				"name": seller.Name,
				"role": models.RoleSeller,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := PrincipalID(c)
		if err != nil {
			return err
		}
		role, _ := c.Locals(CtxRoleKey).(models.UserRole)

		switch role {
		case models.RoleAdmin:
			var user models.User
			if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
			}
			return c.JSON(fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  role,
			})
		case models.RoleSeller:
			var seller models.Seller
			if err := database.DB.First(&seller, "id = ?", id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Vendedor no encontrado")
			}
			return c.JSON(fiber.Map{
				"id":                    seller.ID,
				"name":                  seller.Name,
				"numeric_code":          seller.NumericCode,
				"commission_percentage": seller.CommissionPercentage,
				"role":                  role,
			})
		}
		return fiber.NewError(fiber.StatusForbidden, "Rol desconocido")
	}
}
