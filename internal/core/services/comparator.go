package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/logger"
)

// recommendationMaxTokens caps model prose.
const recommendationMaxTokens = 300

// RuleSet is the deterministic ranking policy of one domain.
type RuleSet[R any] interface {
	// Domain returns the domain the rules rank.
	Domain() domain.Domain

	// Eligible reports whether an option may be recommended at all.
	Eligible(r R) bool

	// Score rates an option under a priority; higher is better.
	Score(r R, p domain.Priority) float64

	// WithScore returns a copy of r carrying score.
	WithScore(r R, score float64) R

	// Less strictly orders options whose scores are equal.
	Less(a, b R) bool

	// Label is the option name a recommendation must mention.
	Label(r R) string

	// Describe renders one option as a line of model input.
	Describe(r R) string

	// Explain is the rule-based recommendation text.
	Explain(best R, p domain.Priority, count int) string

	// Single is the text used when exactly one option exists.
	Single(r R) string

	// Empty is the text used when there is nothing to compare.
	Empty() string
}

// Comparator ranks options under a RuleSet and produces a recommendation,
// preferring model prose when the model agrees with the rules.
type Comparator[R any] struct {
	prompter
	rules   RuleSet[R]
	model   modelClient
	metrics driven.Metrics
}

// NewComparator creates a comparator. llm and metrics are optional (can be nil).
func NewComparator[R any](rules RuleSet[R], llm driven.LLMService, metrics driven.Metrics) *Comparator[R] {
	return &Comparator[R]{rules: rules, model: newModelClient(llm, 0), metrics: metrics}
}

// WithModelTimeout bounds the recommendation call.
func (c *Comparator[R]) WithModelTimeout(d time.Duration) *Comparator[R] {
	c.model = newModelClient(c.model.llm, d)
	return c
}

// ModelTimeout returns the bound on the recommendation call.
func (c *Comparator[R]) ModelTimeout() time.Duration {
	return c.model.timeout
}

// Rank returns a scored copy of options, best first. Ineligible options
// sort last. The input slice is not modified.
func (c *Comparator[R]) Rank(options []R, p domain.Priority) []R {
	type scored struct {
		opt      R
		score    float64
		eligible bool
	}
	items := make([]scored, len(options))
	for i, o := range options {
		s := 0.0
		eligible := c.rules.Eligible(o)
		if eligible {
			s = c.rules.Score(o, p)
		}
		items[i] = scored{opt: c.rules.WithScore(o, s), score: s, eligible: eligible}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.eligible != b.eligible {
			return a.eligible
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return c.rules.Less(a.opt, b.opt)
	})
	out := make([]R, len(items))
	for i, it := range items {
		out[i] = it.opt
	}
	return out
}

// Best returns the rule-based best option and how many options are eligible.
func (c *Comparator[R]) Best(options []R, p domain.Priority) (best R, eligible int) {
	for _, o := range options {
		if c.rules.Eligible(o) {
			eligible++
		}
	}
	if eligible == 0 {
		return best, 0
	}
	return c.Rank(options, p)[0], eligible
}

// Fallback returns the deterministic recommendation without consulting a model.
func (c *Comparator[R]) Fallback(options []R, p domain.Priority) domain.Recommendation {
	best, n := c.Best(options, p)
	switch n {
	case 0:
		return domain.Recommendation{Text: c.rules.Empty(), Source: domain.SourceNone}
	case 1:
		return domain.Recommendation{Text: c.rules.Single(best), Best: c.rules.Label(best), Source: domain.SourceRule}
	default:
		return domain.Recommendation{
			Text:   c.rules.Explain(best, p, n),
			Best:   c.rules.Label(best),
			Source: domain.SourceRule,
		}
	}
}

// Compare produces the recommendation for options under priority. Inputs
// with at most one eligible option never reach the model. A failed or
// disagreeing model answer is replaced by the rule-based text.
func (c *Comparator[R]) Compare(ctx context.Context, options []R, p domain.Priority) domain.Recommendation {
	logger.Section("Compare " + c.rules.Domain().String())
	fallback := c.Fallback(options, p)
	if _, eligible := c.Best(options, p); eligible <= 1 {
		return c.done(fallback)
	}

	outcome := c.modelRecommendation(ctx, options, p, fallback.Best)
	if text, ok := outcome.Value(); ok {
		logger.Debug("Model recommendation accepted")
		return c.done(domain.Recommendation{Text: text, Best: fallback.Best, Source: domain.SourceModel})
	}

	logger.Debug("Using rule-based recommendation: %s", outcome.Reason())
	fallback.FallbackReason = outcome.Reason()
	return c.done(fallback)
}

// modelRecommendation accepts the reply only when the first option it names
// is the rule's pick.
func (c *Comparator[R]) modelRecommendation(ctx context.Context, options []R, p domain.Priority, best string) ModelOutcome[string] {
	ranked := c.Rank(options, p)
	var b strings.Builder
	fmt.Fprintf(&b, "Priority: %s (%s)\nOptions:\n", p, p.Description())
	for i, o := range ranked {
		if !c.rules.Eligible(o) {
			continue
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.rules.Describe(o))
	}
	fmt.Fprintf(&b, "Rule-based pick for this priority: %s. Recommend it unless the data clearly contradicts it.\n", best)

	system := fmt.Sprintf(c.prompt(driven.PromptCompare), c.rules.Domain())
	reply := c.model.chat(ctx, system, b.String(), driven.Creative(recommendationMaxTokens))
	text, ok := reply.Value()
	if !ok {
		return reply
	}

	labels := make([]string, 0, len(ranked))
	for _, o := range ranked {
		if c.rules.Eligible(o) {
			labels = append(labels, c.rules.Label(o))
		}
	}
	switch first := firstMentioned(text, labels); {
	case first == "":
		return Fallback[string]("model answer does not name any option")
	case !strings.EqualFold(first, best):
		return Fallback[string](fmt.Sprintf("model recommended %s but the %s rule picks %s", first, p, best))
	default:
		return Ok(text)
	}
}

func (c *Comparator[R]) done(r domain.Recommendation) domain.Recommendation {
	if c.metrics != nil {
		c.metrics.Recommended(c.rules.Domain(), r.Source)
	}
	return r
}

func labelPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[^\pL\pN])` + regexp.QuoteMeta(label) + `($|[^\pL\pN])`)
}

// firstMentioned returns the label whose whole-word occurrence comes first
// in text, or "" when none occurs.
func firstMentioned(text string, labels []string) string {
	first, pos := "", -1
	for _, l := range labels {
		if l == "" {
			continue
		}
		loc := labelPattern(l).FindStringIndex(text)
		if loc == nil {
			continue
		}
		if pos < 0 || loc[0] < pos || (loc[0] == pos && len(l) > len(first)) {
			first, pos = l, loc[0]
		}
	}
	return first
}
