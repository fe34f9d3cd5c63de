package reports

import (
	"sort"
	"time"

	"vnts-backend/internal/models"
)

// ClientStats: acumulado de compras de un cliente. Se inicializa una fila por
// cada cliente registrado aunque no tenga compras en el periodo.
type ClientStats struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Reference        *string           `json:"reference"`
	TotalPurchases   int               `json:"total_purchases"`
	TotalSpent       float64           `json:"total_spent"`
	AverageTicket    float64           `json:"average_ticket"`
	FirstPurchase    *time.Time        `json:"first_purchase"`
	LastPurchase     *time.Time        `json:"last_purchase"`
	FavoriteProducts []FavoriteProduct `json:"favorite_products"`
	PaymentMethods   map[string]int    `json:"payment_methods"`
}

type FavoriteProduct struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

// ProductStats: acumulado de ventas de un producto; también incluye productos
// sin movimientos en el periodo.
type ProductStats struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	TotalSales    int        `json:"total_sales"`
	TotalQuantity int        `json:"total_quantity"`
	TotalRevenue  float64    `json:"total_revenue"`
	AveragePrice  float64    `json:"average_price"`
	LastSale      *time.Time `json:"last_sale"`
}

// PaymentRow: una venta vista como pago individual
type PaymentRow struct {
	SaleID     string    `json:"sale_id"`
	CreatedAt  time.Time `json:"created_at"`
	Amount     float64   `json:"amount"`
	MethodName string    `json:"method_name"`
	ClientName string    `json:"client_name"`
	SellerName string    `json:"seller_name"`
}

// PaymentTotals: resumen de la pestaña de pagos
type PaymentTotals struct {
	TotalRevenue      float64        `json:"total_revenue"`
	TotalTransactions int            `json:"total_transactions"`
	MainMethodName    string         `json:"main_method_name"`
	MainMethodTotal   float64        `json:"main_method_total"`
	MainMethodPercent float64        `json:"main_method_percent"`
	DailyAverage      float64        `json:"daily_average"`
	ActiveMethods     int            `json:"active_methods"`
	AverageTicket     float64        `json:"average_ticket"`
	MethodCounts      map[string]int `json:"payment_methods"`
}

// BuildClientStats cruza los clientes registrados con las ventas del periodo.
func BuildClientStats(clients []models.Client, sales []models.Sale) []ClientStats {
	stats := make(map[string]*ClientStats, len(clients))
	var order []string
	for _, c := range clients {
		id := c.ID.String()
		stats[id] = &ClientStats{
			ID:               id,
			Name:             c.Name,
			Reference:        c.Reference,
			FavoriteProducts: []FavoriteProduct{},
			PaymentMethods:   map[string]int{},
		}
		order = append(order, id)
	}

	products := make(map[string]map[string]*FavoriteProduct)

	for i := range sales {
		s := &sales[i]
		if s.ClientID == nil {
			continue
		}
		cs, ok := stats[s.ClientID.String()]
		if !ok {
			continue
		}

		cs.TotalPurchases++
		cs.TotalSpent += s.Total

		when := s.CreatedAt
		if cs.FirstPurchase == nil || when.Before(*cs.FirstPurchase) {
			t := when
			cs.FirstPurchase = &t
		}
		if cs.LastPurchase == nil || when.After(*cs.LastPurchase) {
			t := when
			cs.LastPurchase = &t
		}

		methodName := "Efectivo"
		if s.PaymentMethod != nil {
			methodName = s.PaymentMethod.Name
		}
		cs.PaymentMethods[methodName]++

		clientProducts, ok := products[cs.ID]
		if !ok {
			clientProducts = map[string]*FavoriteProduct{}
			products[cs.ID] = clientProducts
		}
		for _, item := range s.Items {
			name := "Producto eliminado"
			if item.Product != nil {
				name = item.Product.Name
			}
			if fp, ok := clientProducts[name]; ok {
				fp.Quantity += item.Quantity
				fp.Total += item.Subtotal
			} else {
				clientProducts[name] = &FavoriteProduct{ProductName: name, Quantity: item.Quantity, Total: item.Subtotal}
			}
		}
	}

	result := make([]ClientStats, 0, len(order))
	for _, id := range order {
		cs := stats[id]
		if cs.TotalPurchases > 0 {
			cs.AverageTicket = cs.TotalSpent / float64(cs.TotalPurchases)
		}
		if clientProducts, ok := products[id]; ok {
			favs := make([]FavoriteProduct, 0, len(clientProducts))
			for _, fp := range clientProducts {
				favs = append(favs, *fp)
			}
			sort.SliceStable(favs, func(i, j int) bool { return favs[i].Total > favs[j].Total })
			if len(favs) > 5 {
				favs = favs[:5]
			}
			cs.FavoriteProducts = favs
		}
		result = append(result, *cs)
	}
	return result
}

// BuildProductStats cruza el catálogo de productos con los items vendidos.
func BuildProductStats(catalog []models.Product, sales []models.Sale) []ProductStats {
	stats := make(map[string]*ProductStats, len(catalog))
	var order []string
	for _, p := range catalog {
		id := p.ID.String()
		stats[id] = &ProductStats{ID: id, Name: p.Name, Category: p.Category}
		order = append(order, id)
	}

	for i := range sales {
		s := &sales[i]
		for _, item := range s.Items {
			ps, ok := stats[item.ProductID.String()]
			if !ok {
				continue
			}
			ps.TotalSales++
			ps.TotalQuantity += item.Quantity
			ps.TotalRevenue += item.Subtotal

			when := s.CreatedAt
			if ps.LastSale == nil || when.After(*ps.LastSale) {
				t := when
				ps.LastSale = &t
			}
		}
	}

	result := make([]ProductStats, 0, len(order))
	for _, id := range order {
		ps := stats[id]
		if ps.TotalQuantity > 0 {
			ps.AveragePrice = ps.TotalRevenue / float64(ps.TotalQuantity)
		}
		result = append(result, *ps)
	}
	return result
}

// BuildPaymentReport aplana las ventas como pagos y calcula el resumen.
func BuildPaymentReport(sales []models.Sale) ([]PaymentRow, PaymentTotals) {
	rows := make([]PaymentRow, 0, len(sales))
	totals := PaymentTotals{MainMethodName: "Sin datos", MethodCounts: map[string]int{}}

	methodTotals := map[string]float64{}
	var methodOrder []string
	days := map[string]struct{}{}

	for i := range sales {
		s := &sales[i]
		methodName := "Efectivo"
		if s.PaymentMethod != nil {
			methodName = s.PaymentMethod.Name
		}
		clientName := "Cliente no registrado"
		if s.Client != nil {
			clientName = s.Client.Name
		}
		sellerName := "Vendedor no registrado"
		if s.Seller != nil {
			sellerName = s.Seller.Name
		}

		rows = append(rows, PaymentRow{
			SaleID:     s.ID.String(),
			CreatedAt:  s.CreatedAt,
			Amount:     s.Total,
			MethodName: methodName,
			ClientName: clientName,
			SellerName: sellerName,
		})

		totals.TotalRevenue += s.Total
		totals.TotalTransactions++
		totals.MethodCounts[methodName]++
		if _, ok := methodTotals[methodName]; !ok {
			methodOrder = append(methodOrder, methodName)
		}
		methodTotals[methodName] += s.Total
		days[s.CreatedAt.Format("2006-01-02")] = struct{}{}
	}

	// los empates se resuelven quedándose con el primer método visto
	for _, name := range methodOrder {
		if methodTotals[name] > totals.MainMethodTotal {
			totals.MainMethodName = name
			totals.MainMethodTotal = methodTotals[name]
		}
	}
	if totals.TotalRevenue > 0 && totals.MainMethodTotal > 0 {
		totals.MainMethodPercent = totals.MainMethodTotal / totals.TotalRevenue * 100
	}

	dayCount := len(days)
	if dayCount == 0 {
		dayCount = 1
	}
	totals.DailyAverage = totals.TotalRevenue / float64(dayCount)

	txCount := totals.TotalTransactions
	if txCount == 0 {
		txCount = 1
	}
	totals.AverageTicket = totals.TotalRevenue / float64(txCount)
	totals.ActiveMethods = len(totals.MethodCounts)

	return rows, totals
}
