package enums

// CartLineWarningType flags a cart line that could not be fully resolved
// against the catalog at snapshot time. Warned lines stay in the cart but
// are excluded from totals.
type CartLineWarningType string

const (
	WarningProductMissing  CartLineWarningType = "product_missing"
	WarningProductInactive CartLineWarningType = "product_inactive"
)

// String implements fmt.Stringer.
func (w CartLineWarningType) String() string {
	return string(w)
}
