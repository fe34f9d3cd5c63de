package models

import "github.com/google/uuid"

// Sale: inmutable una vez creada; no hay endpoint de actualización ni cancelación.
// El total se calcula en el servidor como la suma de los subtotales de sus items.
type Sale struct {
	Base
	SellerID        uuid.UUID      `gorm:"type:uuid;index;not null" json:"seller_id"`
	Seller          *Seller        `json:"seller,omitempty"`
	ClientID        *uuid.UUID     `gorm:"type:uuid;index" json:"client_id"`
	Client          *Client        `json:"client,omitempty"`
	PaymentMethodID uuid.UUID      `gorm:"type:uuid;not null" json:"payment_method_id"`
	PaymentMethod   *PaymentMethod `json:"payment_method,omitempty"`
	Total           float64        `gorm:"not null" json:"total"`
	Notes           string         `gorm:"size:500" json:"notes"`
	Items           []SaleItem     `json:"items,omitempty"`
}

type SaleItem struct {
	Base
	SaleID    uuid.UUID `gorm:"type:uuid;index;not null" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	Subtotal  float64   `gorm:"not null" json:"subtotal"`
}
