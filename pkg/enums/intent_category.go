package enums

// IntentCategory is one label from the fixed set returned by the
// assistant's rule-based classifier. Classification is total: unmatched
// input maps to IntentFallback, never an error.
type IntentCategory string

const (
	IntentElectronics    IntentCategory = "electronics"
	IntentFurniture      IntentCategory = "furniture"
	IntentFashion        IntentCategory = "fashion"
	IntentHowItWorks     IntentCategory = "how-it-works"
	IntentPricing        IntentCategory = "pricing"
	IntentSelling        IntentCategory = "selling"
	IntentGreeting       IntentCategory = "greeting"
	IntentShipping       IntentCategory = "shipping"
	IntentReturns        IntentCategory = "returns"
	IntentSustainability IntentCategory = "sustainability"
	IntentFallback       IntentCategory = "fallback"
)

var validIntentCategories = []IntentCategory{
	IntentElectronics,
	IntentFurniture,
	IntentFashion,
	IntentHowItWorks,
	IntentPricing,
	IntentSelling,
	IntentGreeting,
	IntentShipping,
	IntentReturns,
	IntentSustainability,
	IntentFallback,
}

// String implements fmt.Stringer.
func (i IntentCategory) String() string {
	return string(i)
}

// IsValid reports whether the value is a known IntentCategory.
func (i IntentCategory) IsValid() bool {
	for _, candidate := range validIntentCategories {
		if candidate == i {
			return true
		}
	}
	return false
}
