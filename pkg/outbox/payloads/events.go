package payloads

import (
	"time"

	"github.com/google/uuid"
)

// OrderCreatedEvent announces a frozen receipt. Downstream consumers use it
// for confirmation emails and seller notifications.
type OrderCreatedEvent struct {
	OrderID         uuid.UUID `json:"order_id"`
	Number          string    `json:"number"`
	OwnerID         uuid.UUID `json:"owner_id"`
	SubtotalCents   int       `json:"subtotal_cents"`
	TotalCents      int       `json:"total_cents"`
	EcoSavingsCents int       `json:"eco_savings_cents"`
	LineCount       int       `json:"line_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// CartExpiredEvent is emitted when the retention job expires a stale cart.
type CartExpiredEvent struct {
	CartID    uuid.UUID `json:"cart_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	LineCount int       `json:"line_count"`
	ExpiredAt time.Time `json:"expired_at"`
}
