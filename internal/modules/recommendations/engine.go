package recommendations

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Triple-dylan/realglobal-engine/internal/domain"
)

// Engine evaluates the rule table against a stats snapshot. It is stateless;
// every call is a fresh evaluation and advisories are never deduplicated.
type Engine struct {
	rules []Rule
	now   func() time.Time
	log   zerolog.Logger
}

// NewEngine creates an engine with the default rule table.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		rules: defaultRules(),
		now:   time.Now,
		log:   log.With().Str("service", "recommendations").Logger(),
	}
}

// Evaluate runs every rule in fixed order and returns the advisories of all
// rules that fired. When nothing fires, a single positive advisory confirms
// the portfolio is within all thresholds.
func (e *Engine) Evaluate(stats domain.PortfolioStats) []domain.Advisory {
	advisories := make([]domain.Advisory, 0, len(e.rules))
	for _, rule := range e.rules {
		if !rule.Applies(stats) {
			continue
		}
		title, body := rule.Build(stats)
		advisories = append(advisories, domain.Advisory{
			ID:        uuid.NewString(),
			Title:     title,
			Body:      body,
			Priority:  rule.Priority,
			CreatedAt: e.now(),
		})
	}

	if len(advisories) == 0 {
		advisories = append(advisories, domain.Advisory{
			ID:        uuid.NewString(),
			Title:     "Portfolio optimized",
			Body:      "All monitored metrics are within target ranges. No action required.",
			Priority:  domain.PriorityLow,
			CreatedAt: e.now(),
		})
	}

	e.log.Debug().Int("count", len(advisories)).Msg("Evaluated recommendation rules")
	return advisories
}
