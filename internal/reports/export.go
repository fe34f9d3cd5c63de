package reports

import (
	"fmt"
	"time"

	"vnts-backend/internal/database"
	"vnts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeWorkbook(c *fiber.Ctx, f *excelize.File, filename string) error {
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	if err := f.Write(c.Response().BodyWriter()); err != nil {
		log.Errorf("Error al escribir el archivo Excel: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el archivo")
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

// GET /api/reports/sales/export?period=...
// Libro con dos hojas: resumen por venta y detalle por producto vendido.
func ExportSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, rng, sellerID, err := parseReportQuery(c)
		if err != nil {
			return err
		}

		sales, err := querySales(rng, sellerID)
		if err != nil {
			log.Errorf("Error al consultar ventas para exportar: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las ventas")
		}
		details := toSaleDetails(sales)

		f := excelize.NewFile()
		defer f.Close()

		const resumen = "Resumen"
		f.SetSheetName("Sheet1", resumen)
		setRow(f, resumen, 1, []interface{}{"Fecha", "Vendedor", "Cliente", "Método de Pago", "Total", "Productos"})
		for i, d := range details {
			productos := ""
			for j, item := range d.Items {
				if j > 0 {
					productos += ", "
				}
				productos += fmt.Sprintf("%s (%d x %.2f)", item.ProductName, item.Quantity, item.Price)
			}
			setRow(f, resumen, i+2, []interface{}{
				d.CreatedAt.Format("02/01/2006 15:04"),
				d.SellerName,
				d.ClientName,
				d.PaymentMethodName,
				d.Total,
				productos,
			})
		}
		f.SetColWidth(resumen, "A", "D", 20)
		f.SetColWidth(resumen, "F", "F", 50)

		const detalles = "Detalles"
		f.NewSheet(detalles)
		setRow(f, detalles, 1, []interface{}{"Fecha", "Vendedor", "Cliente", "Producto", "Cantidad", "Precio Unitario", "Subtotal"})
		row := 2
		for _, d := range details {
			for _, item := range d.Items {
				setRow(f, detalles, row, []interface{}{
					d.CreatedAt.Format("02/01/2006 15:04"),
					d.SellerName,
					d.ClientName,
					item.ProductName,
					item.Quantity,
					item.Price,
					item.Subtotal,
				})
				row++
			}
		}
		f.SetColWidth(detalles, "A", "D", 20)

		return writeWorkbook(c, f, fmt.Sprintf("ventas_%s.xlsx", time.Now().Format("2006-01-02")))
	}
}

// GET /api/reports/clients/export?from=&to=
func ExportClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rng, hasRange, err := parseFromTo(c)
		if err != nil {
			return err
		}
		if !hasRange {
			rng = DateRange{Start: time.Time{}, End: time.Now()}
		}

		var clients []models.Client
		if err := database.DB.Order("name").Find(&clients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los clientes")
		}
		sales, err := querySales(rng, nil)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las ventas")
		}
		stats := BuildClientStats(clients, sales)

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Clientes"
		f.SetSheetName("Sheet1", sheet)
		setRow(f, sheet, 1, []interface{}{"Cliente", "Referencia", "Total Compras", "Total Gastado", "Ticket Promedio", "Última Compra", "Primera Compra"})
		for i, s := range stats {
			reference := "-"
			if s.Reference != nil {
				reference = *s.Reference
			}
			setRow(f, sheet, i+2, []interface{}{
				s.Name,
				reference,
				s.TotalPurchases,
				s.TotalSpent,
				s.AverageTicket,
				formatOptionalDate(s.LastPurchase),
				formatOptionalDate(s.FirstPurchase),
			})
		}
		f.SetColWidth(sheet, "A", "B", 25)
		f.SetColWidth(sheet, "C", "G", 16)

		return writeWorkbook(c, f, fmt.Sprintf("clientes_%s.xlsx", time.Now().Format("2006-01-02")))
	}
}

// GET /api/reports/products/export?from=&to=
func ExportProductsHandler() fiber.Handler {
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
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los productos")
		}
		sales, err := querySales(rng, nil)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las ventas")
		}
		stats := BuildProductStats(catalog, sales)

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Productos"
		f.SetSheetName("Sheet1", sheet)
		setRow(f, sheet, 1, []interface{}{"Producto", "Categoría", "Total Ventas", "Cantidad Vendida", "Ingresos Totales", "Precio Promedio", "Última Venta"})
		for i, s := range stats {
			category := s.Category
			if category == "" {
				category = "-"
			}
			setRow(f, sheet, i+2, []interface{}{
				s.Name,
				category,
				s.TotalSales,
				s.TotalQuantity,
				s.TotalRevenue,
				s.AveragePrice,
				formatOptionalDate(s.LastSale),
			})
		}
		f.SetColWidth(sheet, "A", "B", 28)
		f.SetColWidth(sheet, "C", "G", 16)

		return writeWorkbook(c, f, fmt.Sprintf("productos_%s.xlsx", time.Now().Format("2006-01-02")))
	}
}

// GET /api/reports/payments/export?from=&to=
func ExportPaymentsHandler() fiber.Handler {
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
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los pagos")
		}
		rows, _ := BuildPaymentReport(sales)

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Pagos"
		f.SetSheetName("Sheet1", sheet)
		setRow(f, sheet, 1, []interface{}{"Fecha", "Método", "Monto", "Cliente", "Vendedor", "Venta #"})
		for i, r := range rows {
			setRow(f, sheet, i+2, []interface{}{
				r.CreatedAt.Format("02/01/2006 15:04"),
				r.MethodName,
				r.Amount,
				r.ClientName,
				r.SellerName,
				r.SaleID,
			})
		}
		f.SetColWidth(sheet, "A", "B", 20)
		f.SetColWidth(sheet, "D", "F", 28)

		return writeWorkbook(c, f, fmt.Sprintf("pagos_%s.xlsx", time.Now().Format("2006-01-02")))
	}
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02/01/2006 15:04")
}
