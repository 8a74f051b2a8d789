package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecofinds/ecofinds-backend/pkg/enums"
)

// Order is the immutable receipt frozen at checkout submission. Rows are
// inserted once and never updated; later catalog price changes do not
// touch them.
type Order struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number          string               `gorm:"column:number;not null;uniqueIndex"`
	OwnerID         uuid.UUID            `gorm:"column:owner_id;type:uuid;not null"`
	SubtotalCents   int                  `gorm:"column:subtotal_cents;not null"`
	ShippingCents   int                  `gorm:"column:shipping_cents;not null"`
	TaxCents        int                  `gorm:"column:tax_cents;not null"`
	TotalCents      int                  `gorm:"column:total_cents;not null"`
	EcoSavingsCents int                  `gorm:"column:eco_savings_cents;not null"`
	ShippingMethod  enums.ShippingMethod `gorm:"column:shipping_method;type:shipping_method;not null"`
	PaymentMethod   enums.PaymentMethod  `gorm:"column:payment_method;type:payment_method;not null"`
	ShipFullName    string               `gorm:"column:ship_full_name;not null"`
	ShipEmail       string               `gorm:"column:ship_email;not null"`
	ShipPhone       *string              `gorm:"column:ship_phone"`
	ShipAddress     string               `gorm:"column:ship_address;not null"`
	ShipCity        string               `gorm:"column:ship_city;not null"`
	ShipZip         string               `gorm:"column:ship_zip;not null"`
	ShipCountry     string               `gorm:"column:ship_country;not null;default:'United States'"`
	LineItems       []OrderLineItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
}

// OrderLineItem freezes one purchased line with the unit price observed at
// submission time.
type OrderLineItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Title          string    `gorm:"column:title;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
