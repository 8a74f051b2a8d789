package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecofinds/ecofinds-backend/pkg/db/models"
)

// ShippingInfoDTO is the destination block frozen on the order.
type ShippingInfoDTO struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	Address  string  `json:"address"`
	City     string  `json:"city"`
	Zip      string  `json:"zip"`
	Country  string  `json:"country"`
}

// OrderLineItemDTO is one purchased line at its price at submission time.
type OrderLineItemDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	Title          string    `json:"title"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int       `json:"unit_price_cents"`
}

// OrderDTO is the receipt returned to the shopper.
type OrderDTO struct {
	ID              uuid.UUID          `json:"id"`
	Number          string             `json:"number"`
	SubtotalCents   int                `json:"subtotal_cents"`
	ShippingCents   int                `json:"shipping_cents"`
	TaxCents        int                `json:"tax_cents"`
	TotalCents      int                `json:"total_cents"`
	EcoSavingsCents int                `json:"eco_savings_cents"`
	ShippingMethod  string             `json:"shipping_method"`
	PaymentMethod   string             `json:"payment_method"`
	ShippingInfo    ShippingInfoDTO    `json:"shipping_info"`
	LineItems       []OrderLineItemDTO `json:"line_items"`
	CreatedAt       time.Time          `json:"created_at"`
}

// OrderListResult carries one page of orders plus the next cursor.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// NewOrderDTO maps the model to its transport shape.
func NewOrderDTO(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}

	lineItems := make([]OrderLineItemDTO, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		lineItems = append(lineItems, OrderLineItemDTO{
			ProductID:      item.ProductID,
			Title:          item.Title,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	return &OrderDTO{
		ID:              order.ID,
		Number:          order.Number,
		SubtotalCents:   order.SubtotalCents,
		ShippingCents:   order.ShippingCents,
		TaxCents:        order.TaxCents,
		TotalCents:      order.TotalCents,
		EcoSavingsCents: order.EcoSavingsCents,
		ShippingMethod:  order.ShippingMethod.String(),
		PaymentMethod:   order.PaymentMethod.String(),
		ShippingInfo: ShippingInfoDTO{
			FullName: order.ShipFullName,
			Email:    order.ShipEmail,
			Phone:    order.ShipPhone,
			Address:  order.ShipAddress,
			City:     order.ShipCity,
			Zip:      order.ShipZip,
			Country:  order.ShipCountry,
		},
		LineItems: lineItems,
		CreatedAt: order.CreatedAt,
	}
}
