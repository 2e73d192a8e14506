package recommendations

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Triple-dylan/realglobal-engine/internal/domain"
)

// healthyStats returns a stats bundle that trips none of the rule thresholds.
func healthyStats() domain.PortfolioStats {
	return domain.PortfolioStats{
		TotalValue:       2_000_000,
		PropertyCount:    6,
		AvgCapRate:       6.5,
		OccupancyRate:    93,
		TotalIncome:      130_000,
		SharpeRatio:      0.8,
		PortfolioBeta:    1.0,
		AnnualizedReturn: 6.0,
		MaxDrawdown:      15,
		GeographicDiversification: domain.GeographicDiversification{
			CitiesCount: 4,
		},
		PropertyTypeDiversification: domain.PropertyTypeDiversification{
			TypesCount: 3,
		},
		RiskMetrics: domain.RiskMetrics{
			ConcentrationRisk: 25,
			LiquidityRisk:     50,
			MarketRisk:        0,
		},
	}
}

func TestEvaluate_HealthyPortfolioGetsSingleOptimizedAdvisory(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	advisories := engine.Evaluate(healthyStats())

	require.Len(t, advisories, 1)
	assert.Equal(t, "Portfolio optimized", advisories[0].Title)
	assert.NotEmpty(t, advisories[0].ID)
	assert.False(t, advisories[0].CreatedAt.IsZero())
}

func TestEvaluate_RulesFireIndependently(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	tests := []struct {
		name    string
		mutate  func(s *domain.PortfolioStats)
		title   string
		contain string
	}{
		{
			name:    "concentration above threshold",
			mutate:  func(s *domain.PortfolioStats) { s.RiskMetrics.ConcentrationRisk = 60 },
			title:   "Reduce single-asset exposure",
			contain: "60.0%",
		},
		{
			name:    "low sharpe ratio",
			mutate:  func(s *domain.PortfolioStats) { s.SharpeRatio = 0.1 },
			title:   "Improve risk-adjusted returns",
			contain: "0.10",
		},
		{
			name: "geographic concentration",
			mutate: func(s *domain.PortfolioStats) {
				s.GeographicDiversification.CitiesCount = 1
			},
			title:   "Diversify across markets",
			contain: "1 market(s)",
		},
		{
			name: "type concentration",
			mutate: func(s *domain.PortfolioStats) {
				s.PropertyTypeDiversification.TypesCount = 1
			},
			title: "Diversify property types",
		},
		{
			name:    "high beta",
			mutate:  func(s *domain.PortfolioStats) { s.PortfolioBeta = 1.4 },
			title:   "High market sensitivity",
			contain: "1.40",
		},
		{
			name:    "low cap rate",
			mutate:  func(s *domain.PortfolioStats) { s.AvgCapRate = 4.2 },
			title:   "Yield enhancement opportunity",
			contain: "4.20%",
		},
		{
			name:    "high liquidity risk",
			mutate:  func(s *domain.PortfolioStats) { s.RiskMetrics.LiquidityRisk = 80 },
			title:   "Liquidity concern",
			contain: "80",
		},
		{
			name:    "low occupancy",
			mutate:  func(s *domain.PortfolioStats) { s.OccupancyRate = 82 },
			title:   "Occupancy optimization",
			contain: "82.0%",
		},
		{
			name: "few properties with high value",
			mutate: func(s *domain.PortfolioStats) {
				s.PropertyCount = 2
				s.GeographicDiversification.CitiesCount = 3 // keep geo rule quiet
			},
			title: "Scale for diversification",
		},
		{
			name:    "high drawdown",
			mutate:  func(s *domain.PortfolioStats) { s.MaxDrawdown = 40 },
			title:   "Cyclical vulnerability",
			contain: "40.0%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := healthyStats()
			tt.mutate(&stats)

			advisories := engine.Evaluate(stats)

			require.Len(t, advisories, 1, "exactly one rule should fire")
			assert.Equal(t, tt.title, advisories[0].Title)
			if tt.contain != "" {
				assert.Contains(t, advisories[0].Body, tt.contain,
					"advisory text must interpolate the live computed value")
			}
		})
	}
}

func TestEvaluate_MultipleRulesMayFire(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	stats := healthyStats()
	stats.RiskMetrics.ConcentrationRisk = 60
	stats.SharpeRatio = 0.1
	stats.MaxDrawdown = 40

	advisories := engine.Evaluate(stats)

	require.Len(t, advisories, 3)
	titles := make([]string, 0, len(advisories))
	for _, adv := range advisories {
		titles = append(titles, adv.Title)
	}
	assert.Equal(t, []string{
		"Reduce single-asset exposure",
		"Improve risk-adjusted returns",
		"Cyclical vulnerability",
	}, titles, "rules evaluate in fixed declaration order")
}

func TestEvaluate_FreshAdvisoriesEachCall(t *testing.T) {
	engine := NewEngine(zerolog.Nop())
	stats := healthyStats()
	stats.RiskMetrics.ConcentrationRisk = 60

	first := engine.Evaluate(stats)
	second := engine.Evaluate(stats)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].ID, second[0].ID, "advisories are not deduplicated across calls")
}

func TestEvaluate_OccupancyUpliftEstimate(t *testing.T) {
	engine := NewEngine(zerolog.Nop())
	stats := healthyStats()
	stats.OccupancyRate = 80
	stats.TotalIncome = 100_000

	advisories := engine.Evaluate(stats)

	require.Len(t, advisories, 1)
	// 100,000 * (95 - 80) / 80 = 18,750
	assert.True(t, strings.Contains(advisories[0].Body, "$18750"),
		"body should carry the NOI uplift estimate: %s", advisories[0].Body)
}
