package services

import (
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/logger"
)

//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptRouter: `You route travel requests to the services that can answer them.
Available services:
%s

Reply with a JSON object only: {"domains": ["<name>", ...], "reasoning": "<one sentence>"}.
List every service the request needs, most relevant first. Use an empty list if none apply.`,

	driven.PromptParseRide: `Extract a ride request from the user's message.
Reply with a JSON object only, using these keys:
{"origin": "<place or UNCLEAR>", "destination": "<place or UNCLEAR>", "providers": ["uber", "lyft"], "vehicle_type": "standard|xl|premium", "when": "now or a time", "passengers": 1}
If the user does not say where they start, use their current location when one is given, otherwise UNCLEAR.
Only list providers the user names; use an empty list otherwise.`,

	driven.PromptParseRestaurant: `Extract a restaurant search from the user's message.
Reply with a JSON object only, using these keys:
{"cuisine": "<cuisine or empty>", "location": "<place or UNCLEAR>", "price_range": "$|$$|$$$|$$$$ or empty", "rating_min": 0, "distance_miles": 5, "party_size": 2, "dietary_restrictions": [], "open_now": false, "filter_category": "<one of %s>"}
If the user says "nearby" or gives no place, use their current location when one is given, otherwise UNCLEAR.`,

	driven.PromptCompare: `You are a concise travel assistant comparing %s options.
Recommend exactly one option by its exact name and explain the choice in two or three sentences.
Respect the user's priority. Mention concrete numbers from the data.`,
}

// DefaultPrompts returns a copy of the built-in prompt templates, keyed by
// prompt name. File-backed prompt stores seed their files from it.
func DefaultPrompts() map[string]string {
	out := make(map[string]string, len(defaultPrompts))
	for k, v := range defaultPrompts {
		out[k] = v
	}
	return out
}

// prompter resolves prompt templates through an optional PromptStore.
type prompter struct {
	store driven.PromptStore
}

// SetPromptStore implements driven.PromptStoreAware.
func (p *prompter) SetPromptStore(store driven.PromptStore) {
	p.store = store
}

func (p *prompter) prompt(name string) string {
	if p.store != nil {
		text, err := p.store.Load(name)
		if err == nil && text != "" {
			return text
		}
		logger.Debug("Prompt %q unavailable from store, using default: %v", name, err)
	}
	return defaultPrompts[name]
}
