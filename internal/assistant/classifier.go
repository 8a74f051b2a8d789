// Package assistant implements EcoBot, the rule-based shopping assistant.
// Classification is a total function: every message maps to exactly one
// intent, unmatched input falls through to IntentFallback.
package assistant

import (
	"strings"

	"github.com/ecofinds/ecofinds-backend/pkg/enums"
)

type rule struct {
	intent   enums.IntentCategory
	keywords []string
}

// Rules evaluate top to bottom, first match wins. The order is an
// observable contract because keyword sets overlap ("how" matches
// how-it-works before "sell" can claim "how to sell items"); reordering
// changes behavior.
var rules = []rule{
	{enums.IntentElectronics, []string{"electronics", "phone", "laptop", "tech"}},
	{enums.IntentFurniture, []string{"furniture", "table", "chair", "sofa", "desk"}},
	{enums.IntentFashion, []string{"fashion", "clothes", "clothing", "shoes", "dress"}},
	{enums.IntentHowItWorks, []string{"how", "work", "process", "safe", "secure"}},
	{enums.IntentPricing, []string{"price", "cost", "expensive", "cheap", "deal"}},
	{enums.IntentSelling, []string{"sell", "selling", "list"}},
	{enums.IntentGreeting, []string{"hello", "hi", "hey"}},
	{enums.IntentShipping, []string{"shipping", "delivery", "fast"}},
	{enums.IntentReturns, []string{"return", "warranty", "guarantee"}},
	{enums.IntentSustainability, []string{"environment", "eco", "green", "sustainable"}},
}

// Classify maps free-text input to one intent via case-insensitive
// substring matching. Never errors.
func Classify(message string) enums.IntentCategory {
	lowered := strings.ToLower(message)
	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(lowered, keyword) {
				return r.intent
			}
		}
	}
	return enums.IntentFallback
}
