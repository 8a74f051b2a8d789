package visibility

import (
	"github.com/ecofinds/ecofinds-backend/pkg/db/models"
	pkgerrors "github.com/ecofinds/ecofinds-backend/pkg/errors"
)

// EnsureProductVisible enforces the canonical rules so delisted products
// never leak through buyer-facing queries or cart additions.
func EnsureProductVisible(product *models.Product) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if !product.IsActive {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not available")
	}
	if product.PriceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeInternal, "product has invalid price")
	}
	return nil
}

// EnsurePurchasable is the stricter check used at checkout submission. It
// reports a conflict rather than not-found so callers can tell the shopper
// which line went stale.
func EnsurePurchasable(product *models.Product) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "product no longer exists")
	}
	if !product.IsActive {
		return pkgerrors.New(pkgerrors.CodeConflict, "product no longer available")
	}
	return nil
}
