package models

type Product struct {
	Base
	Name        string  `gorm:"size:255;not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"size:100;index" json:"category"`
	Description string  `gorm:"size:500" json:"description"`
	Active      bool    `gorm:"not null;default:true" json:"active"`
}
