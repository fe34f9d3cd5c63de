package models

// PaymentMethod: el porcentaje de comisión es lo que cobra el método
// (tarjeta, terminal, etc.), no la comisión del vendedor
type PaymentMethod struct {
	Base
	Name                 string  `gorm:"size:100;not null" json:"name"`
	CommissionPercentage float64 `gorm:"not null;default:0" json:"commission_percentage"`
	Active               bool    `gorm:"not null;default:true" json:"active"`
}
