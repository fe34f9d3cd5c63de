package models

// Seller: vendedor. El numeric_code es su credencial de acceso en la caja.
type Seller struct {
	Base
	Name                 string  `gorm:"size:255;not null" json:"name"`
	NumericCode          string  `gorm:"size:20;uniqueIndex;not null" json:"numeric_code"`
	CommissionPercentage float64 `gorm:"not null;default:0" json:"commission_percentage"`
	Active               bool    `gorm:"not null;default:true" json:"active"`
}
