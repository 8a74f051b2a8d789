package pricing

import "github.com/ecofinds/ecofinds-backend/pkg/enums"

// Flat per-method fees. Fees never vary with cart weight or size.
const (
	PickupFeeCents   = 0
	StandardFeeCents = 800
	ExpressFeeCents  = 1500

	// FreeStandardThresholdCents waives the standard fee once the subtotal
	// strictly exceeds it. Pickup is already free and express is premium,
	// so the waiver applies to standard only.
	FreeStandardThresholdCents = 10000
)

// ShippingFeeCents returns the fee for the method given the cart subtotal.
// Unknown methods price as standard; the API layer rejects them earlier.
func ShippingFeeCents(method enums.ShippingMethod, subtotalCents int) int {
	switch method {
	case enums.ShippingMethodPickup:
		return PickupFeeCents
	case enums.ShippingMethodExpress:
		return ExpressFeeCents
	default:
		if subtotalCents > FreeStandardThresholdCents {
			return 0
		}
		return StandardFeeCents
	}
}
