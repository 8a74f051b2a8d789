package checkout

import (
	"strings"

	pkgerrors "github.com/ecofinds/ecofinds-backend/pkg/errors"
)

// ShippingInfo is the destination block the shopper fills in at checkout.
type ShippingInfo struct {
	FullName string
	Email    string
	Phone    *string
	Address  string
	City     string
	Zip      string
	Country  string
}

const defaultShipCountry = "United States"

// validateShippingInfo checks the required destination fields and reports
// every missing one at once so the form can highlight them together.
func validateShippingInfo(info ShippingInfo) error {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"full_name", info.FullName},
		{"email", info.Email},
		{"address", info.Address},
		{"city", info.City},
		{"zip", info.Zip},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required shipping fields").
			WithDetails(map[string][]string{"missing": missing})
	}
	if !strings.Contains(info.Email, "@") {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping email")
	}
	return nil
}
