package reports

import (
	"sort"

	"vnts-backend/internal/models"

	"github.com/shopspring/decimal"
)

// SellerCommission: liquidación de un vendedor para el periodo. La comisión
// del vendedor se calcula sobre el neto, después de descontar la comisión de
// los métodos de pago.
type SellerCommission struct {
	SellerID                string  `json:"seller_id"`
	SellerName              string  `json:"seller_name"`
	TotalSales              float64 `json:"total_sales"`
	PaymentMethodCommission float64 `json:"payment_method_commission"`
	NetAmount               float64 `json:"net_amount"`
	CommissionPercentage    float64 `json:"commission_percentage"`
	CommissionAmount        float64 `json:"commission_amount"`
}

// MethodBreakdown: ventas agrupadas por método de pago con su comisión
type MethodBreakdown struct {
	MethodID             string  `json:"payment_method_id"`
	MethodName           string  `json:"payment_method_name"`
	Count                int     `json:"count"`
	Total                float64 `json:"total"`
	Commission           float64 `json:"commission"`
	CommissionPercentage float64 `json:"commission_percentage"`
	NetAmount            float64 `json:"net_amount"`
}

var hundred = decimal.NewFromInt(100)

// SellerCommissions calcula las comisiones de todos los vendedores sobre el
// mismo conjunto de ventas del reporte, de modo que los totales mostrados y
// las comisiones siempre cuadran para la misma ventana.
func SellerCommissions(sales []models.Sale) []SellerCommission {
	type acc struct {
		name      string
		pct       float64
		total     decimal.Decimal
		methodFee decimal.Decimal
	}
	bySeller := make(map[string]*acc)
	var order []string

	for _, s := range sales {
		if s.Seller == nil {
			continue
		}
		id := s.SellerID.String()
		a, ok := bySeller[id]
		if !ok {
			a = &acc{name: s.Seller.Name, pct: s.Seller.CommissionPercentage}
			bySeller[id] = a
			order = append(order, id)
		}

		total := decimal.NewFromFloat(s.Total)
		a.total = a.total.Add(total)

		if s.PaymentMethod != nil {
			methodPct := decimal.NewFromFloat(s.PaymentMethod.CommissionPercentage)
			a.methodFee = a.methodFee.Add(total.Mul(methodPct.Div(hundred)))
		}
	}

	commissions := make([]SellerCommission, 0, len(bySeller))
	for _, id := range order {
		a := bySeller[id]
		net := a.total.Sub(a.methodFee)
		sellerPct := decimal.NewFromFloat(a.pct)
		amount := net.Mul(sellerPct.Div(hundred))

		commissions = append(commissions, SellerCommission{
			SellerID:                id,
			SellerName:              a.name,
			TotalSales:              a.total.InexactFloat64(),
			PaymentMethodCommission: a.methodFee.InexactFloat64(),
			NetAmount:               net.InexactFloat64(),
			CommissionPercentage:    a.pct,
			CommissionAmount:        amount.InexactFloat64(),
		})
	}
	return commissions
}

// SalesByPaymentMethod agrupa ventas por método de pago, con la comisión que
// cobra cada método y el neto resultante. Ordenado por total descendente.
func SalesByPaymentMethod(sales []models.Sale) []MethodBreakdown {
	type acc struct {
		name       string
		pct        float64
		count      int
		total      decimal.Decimal
		commission decimal.Decimal
	}
	byMethod := make(map[string]*acc)
	var order []string

	for _, s := range sales {
		if s.PaymentMethod == nil {
			continue
		}
		id := s.PaymentMethodID.String()
		a, ok := byMethod[id]
		if !ok {
			a = &acc{name: s.PaymentMethod.Name, pct: s.PaymentMethod.CommissionPercentage}
			byMethod[id] = a
			order = append(order, id)
		}

		total := decimal.NewFromFloat(s.Total)
		pct := decimal.NewFromFloat(a.pct)
		a.count++
		a.total = a.total.Add(total)
		a.commission = a.commission.Add(total.Mul(pct.Div(hundred)))
	}

	result := make([]MethodBreakdown, 0, len(byMethod))
	for _, id := range order {
		a := byMethod[id]
		total := a.total.InexactFloat64()
		commission := a.commission.InexactFloat64()
		result = append(result, MethodBreakdown{
			MethodID:             id,
			MethodName:           a.name,
			Count:                a.count,
			Total:                total,
			Commission:           commission,
			CommissionPercentage: a.pct,
			NetAmount:            total - commission,
		})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Total > result[j].Total })
	return result
}
