package main

import (
	"strings"

	"vnts-backend/internal/auth"
	"vnts-backend/internal/catalog"
	"vnts-backend/internal/config"
	"vnts-backend/internal/database"
	"vnts-backend/internal/models"
	"vnts-backend/internal/reports"
	"vnts-backend/internal/sales"
	"vnts-backend/internal/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Errorf("Error inesperado: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	broadcaster := settings.NewBroadcaster()

	api := app.Group("/api")

	// Público
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/seller-login", auth.SellerLoginHandler(cfg))

	// Autenticado (admin o vendedor)
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Get("/products/active", catalog.ListActiveProductsHandler())
	protected.Get("/payment-methods", catalog.ListPaymentMethodsHandler())
	protected.Get("/settings", settings.ListSettingsHandler())
	protected.Get("/settings/stream", settings.StreamSettingsHandler(broadcaster))

	// Administración
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Get("/products", catalog.ListProductsHandler())
	adminRoutes.Post("/products", catalog.CreateProductHandler())
	adminRoutes.Put("/products/:id", catalog.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler())

	adminRoutes.Get("/sellers", catalog.ListSellersHandler())
	adminRoutes.Post("/sellers", catalog.CreateSellerHandler())
	adminRoutes.Put("/sellers/:id", catalog.UpdateSellerHandler())
	adminRoutes.Delete("/sellers/:id", catalog.DeleteSellerHandler())

	adminRoutes.Get("/clients", catalog.ListClientsHandler())
	adminRoutes.Post("/clients", catalog.CreateClientHandler())
	adminRoutes.Put("/clients/:id", catalog.UpdateClientHandler())
	adminRoutes.Delete("/clients/:id", catalog.DeleteClientHandler())

	adminRoutes.Post("/payment-methods", catalog.CreatePaymentMethodHandler())
	adminRoutes.Put("/payment-methods/:id", catalog.UpdatePaymentMethodHandler())
	adminRoutes.Delete("/payment-methods/:id", catalog.DeletePaymentMethodHandler())

	adminRoutes.Get("/dashboard", reports.AdminDashboardHandler())

	adminRoutes.Get("/reports/sales", reports.SalesReportHandler())
	adminRoutes.Get("/reports/clients", reports.ClientsReportHandler())
	adminRoutes.Get("/reports/products", reports.ProductsReportHandler())
	adminRoutes.Get("/reports/payments", reports.PaymentsReportHandler())

	adminRoutes.Get("/reports/sales/export", reports.ExportSalesHandler())
	adminRoutes.Get("/reports/clients/export", reports.ExportClientsHandler())
	adminRoutes.Get("/reports/products/export", reports.ExportProductsHandler())
	adminRoutes.Get("/reports/payments/export", reports.ExportPaymentsHandler())

	adminRoutes.Put("/settings/:key", settings.UpdateSettingHandler(broadcaster))

	// Vendedores
	sellerRoutes := protected.Group("/seller")
	sellerRoutes.Use(auth.RequireRole(models.RoleSeller))

	sellerRoutes.Get("/dashboard", sales.DashboardHandler())
	sellerRoutes.Post("/sales", sales.CreateSaleHandler())
	sellerRoutes.Get("/sales", sales.ListMySalesHandler())
	sellerRoutes.Get("/sales/:id", sales.GetMySaleHandler())

	log.Infof("Servidor escuchando en el puerto %s", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("No se pudo iniciar el servidor: %v", err)
	}
}
