package assistant

import "github.com/ecofinds/ecofinds-backend/pkg/enums"

// WelcomeMessage opens every new conversation.
const WelcomeMessage = "Hi! I'm EcoBot, your sustainable shopping assistant. How can I help you find amazing pre-loved items today?"

var replies = map[enums.IntentCategory]string{
	enums.IntentElectronics:    "🔌 Awesome! Our electronics are thoroughly tested and come with quality guarantees. Right now we have amazing deals on smartphones (starting at $200), laptops ($400+), and gaming gear. Pro tip: Check the condition ratings - 'Excellent' items often look brand new! Want me to find specific tech for you?",
	enums.IntentFurniture:      "🪑 Love it! Furniture is where you can save the most money AND make the biggest environmental impact! We have everything from vintage mid-century pieces to modern IKEA finds. Local pickup saves on shipping too. What room are you decorating?",
	enums.IntentFashion:        "👗 Fashion is our most popular category! We've got designer bags, vintage finds, barely-worn sneakers, and everyday essentials. All items are cleaned and photographed in detail. Sizes run from XS to 3XL. Any particular style or brand you're hunting for?",
	enums.IntentHowItWorks:     "🛡️ Here's how EcoFinds works: Browse verified listings → Message sellers directly → Secure payment through our platform → Item ships or you arrange pickup → Rate your experience! We handle payment protection, so you're covered if anything goes wrong. Super safe and easy!",
	enums.IntentPricing:        "💰 Our prices are typically 40-70% lower than retail! Plus free shipping on orders over $100. Use our price filters to find your perfect budget range. And remember - every dollar you save here is a win for your wallet AND the planet! 🌱",
	enums.IntentSelling:        "📦 Selling is super simple! Take 3-5 clear photos, write a honest description, set your price (we suggest 30-60% of retail), and list it! Most items sell within a week. We only charge a small fee when your item sells. Ready to declutter and earn some cash?",
	enums.IntentGreeting:       "👋 Hey there! Welcome to EcoFinds - where sustainable shopping meets amazing deals! I'm here to help you find exactly what you're looking for. Try asking me about specific categories, how to sell items, or just tell me what you need!",
	enums.IntentShipping:       "🚚 Most sellers ship within 1-2 days! We offer standard (5-7 days) and express (2-3 days) shipping. Many items also have local pickup options - great for furniture and large items. Plus, orders over $100 get free standard shipping!",
	enums.IntentReturns:        "✅ We've got you covered! 30-day return policy on all items, plus buyer protection on every purchase. If an item isn't as described, we'll make it right. Electronics come with our 7-day functionality guarantee too!",
	enums.IntentSustainability: "🌍 That's what we're all about! Every EcoFinds purchase keeps items out of landfills and reduces manufacturing demand. On average, buying pre-owned saves 80% of the environmental impact vs buying new. You're literally helping save the planet, one purchase at a time!",
	enums.IntentFallback:       "I'd love to help you find what you need! Try asking me about:\n\n📱 'Show me electronics'\n👕 'Find me fashion items'\n🪑 'I need furniture'\n💰 'How much can I save?'\n📦 'How do I sell items?'\n\nOr just tell me what you're looking for!",
}

// ReplyFor returns the canned reply for the intent. Unknown intents get
// the fallback reply so the bot always says something.
func ReplyFor(intent enums.IntentCategory) string {
	if reply, ok := replies[intent]; ok {
		return reply
	}
	return replies[enums.IntentFallback]
}
