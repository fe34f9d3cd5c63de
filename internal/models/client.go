package models

// Client: la referencia es la llave de deduplicación del flujo de venta
// (única cuando existe; NULL cuando el cliente se dio de alta sin referencia)
type Client struct {
	Base
	Name      string  `gorm:"size:255;not null" json:"name"`
	Reference *string `gorm:"size:100;uniqueIndex" json:"reference"`
	Phone     string  `gorm:"size:50" json:"phone"`
	Email     string  `gorm:"size:255" json:"email"`
}
