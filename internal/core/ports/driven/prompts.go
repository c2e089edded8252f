package driven

// PromptStore provides access to LLM prompt templates.
type PromptStore interface {
	// Load returns the prompt template for name, or the built-in default.
	Load(name string) (string, error)

	// Reload clears cached prompts so the next Load reads fresh content.
	Reload()
}

// Well-known prompt names.
const (
	// PromptRouter is the system prompt for domain classification.
	// It expects a %s placeholder for the "- name: description" domain list.
	PromptRouter = "router"

	// PromptParseRide extracts a ride query. No placeholders.
	PromptParseRide = "parse_ride"

	// PromptParseRestaurant extracts a restaurant query.
	// It expects a %s placeholder for the supported filter categories.
	PromptParseRestaurant = "parse_restaurant"

	// PromptCompare is the system prompt for recommendations.
	// It expects a %s placeholder for the domain name.
	PromptCompare = "compare"
)

// PromptStoreAware is implemented by services whose prompts can be customised.
type PromptStoreAware interface {
	// SetPromptStore injects a prompt store. Without one, defaults are used.
	SetPromptStore(store PromptStore)
}
