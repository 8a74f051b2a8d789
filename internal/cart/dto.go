package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecofinds/ecofinds-backend/internal/pricing"
)

// SnapshotLineDTO is one cart line joined with catalog data at read time.
// Warned lines stay visible but contribute nothing to the totals.
type SnapshotLineDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	Title          string    `json:"title,omitempty"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int       `json:"unit_price_cents"`
	LineTotalCents int       `json:"line_total_cents"`
	Warning        string    `json:"warning,omitempty"`
}

// SnapshotDTO is the fully resolved cart plus totals for the selected
// shipping method. An owner without a cart gets an empty snapshot.
type SnapshotDTO struct {
	CartID         uuid.UUID          `json:"cart_id,omitempty"`
	OwnerID        uuid.UUID          `json:"owner_id"`
	Lines          []SnapshotLineDTO  `json:"lines"`
	ShippingMethod string             `json:"shipping_method"`
	Totals         pricing.OrderTotals `json:"totals"`
	UpdatedAt      *time.Time         `json:"updated_at,omitempty"`
}
