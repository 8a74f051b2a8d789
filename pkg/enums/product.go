package enums

import "fmt"

// ProductCategory is the closed set of listing categories.
type ProductCategory string

const (
	CategoryElectronics ProductCategory = "electronics"
	CategoryFurniture   ProductCategory = "furniture"
	CategoryFashion     ProductCategory = "fashion"
	CategoryBooks       ProductCategory = "books"
	CategorySports      ProductCategory = "sports"
	CategoryHome        ProductCategory = "home"
	CategoryOther       ProductCategory = "other"
)

var validProductCategories = []ProductCategory{
	CategoryElectronics,
	CategoryFurniture,
	CategoryFashion,
	CategoryBooks,
	CategorySports,
	CategoryHome,
	CategoryOther,
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductCondition grades a second-hand listing. A closed enum rather than
// a free-form string so pricing and filtering can branch exhaustively.
type ProductCondition string

const (
	ConditionLikeNew   ProductCondition = "like_new"
	ConditionExcellent ProductCondition = "excellent"
	ConditionGood      ProductCondition = "good"
	ConditionFair      ProductCondition = "fair"
)

var validProductConditions = []ProductCondition{
	ConditionLikeNew,
	ConditionExcellent,
	ConditionGood,
	ConditionFair,
}

// String implements fmt.Stringer.
func (p ProductCondition) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCondition.
func (p ProductCondition) IsValid() bool {
	for _, candidate := range validProductConditions {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCondition converts raw input into a ProductCondition.
func ParseProductCondition(value string) (ProductCondition, error) {
	for _, candidate := range validProductConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product condition %q", value)
}
