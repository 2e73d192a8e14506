// Package risk computes the volatility, beta, Sharpe-ratio and drawdown
// proxies for the owned portfolio.
//
// None of these are derived from a price time series — the engine models no
// history — so each metric is a documented simplification over the current
// item set.
package risk

import (
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/Triple-dylan/realglobal-engine/internal/domain"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/stats"
)

const (
	// RiskFreeRate is the treasury-yield proxy used in excess-return math.
	RiskFreeRate = 4.5
	// MarketBenchmarkReturn is the REIT-index return proxy.
	MarketBenchmarkReturn = 8.5
	// MarketCapRateBenchmark anchors the market-risk deviation measure.
	MarketCapRateBenchmark = 6.5

	// defaultVolatility is reported when fewer than two items exist.
	defaultVolatility = 15.0
	// volatilityScale annualizes the cap-rate spread.
	volatilityScale = 2.5
)

// typeBetas maps property categories to market-sensitivity multipliers.
var typeBetas = map[domain.PropertyType]float64{
	domain.PropertyCommercial:  1.2,
	domain.PropertyResidential: 0.8,
	domain.PropertyIndustrial:  1.1,
	domain.PropertyMixedUse:    1.0,
	domain.PropertyMultifamily: 0.9,
	domain.PropertyLand:        1.5,
}

// typeLiquidityWeights maps property categories to illiquidity weights
// (0 = trades like cash, 1 = effectively frozen).
var typeLiquidityWeights = map[domain.PropertyType]float64{
	domain.PropertyResidential: 0.2,
	domain.PropertyMultifamily: 0.4,
	domain.PropertyMixedUse:    0.6,
	domain.PropertyCommercial:  0.7,
	domain.PropertyIndustrial:  0.8,
	domain.PropertyLand:        0.9,
}

// Result holds every risk metric the analyzer produces.
type Result struct {
	Volatility         float64
	Beta               float64
	SharpeRatio        float64
	RiskAdjustedReturn float64
	MaxDrawdown        float64
	Metrics            domain.RiskMetrics
}

// Analyzer derives risk metrics from owned items plus the base aggregates.
type Analyzer struct {
	log zerolog.Logger
}

// NewAnalyzer creates a new risk analyzer.
func NewAnalyzer(log zerolog.Logger) *Analyzer {
	return &Analyzer{
		log: log.With().Str("service", "risk").Logger(),
	}
}

// Analyze computes all risk metrics. Every ratio guards its denominator;
// an empty portfolio produces defined defaults rather than NaN.
func (a *Analyzer) Analyze(items []domain.PortfolioItem, agg stats.Aggregates) Result {
	volatility := a.volatility(items, agg.AvgCapRate)
	beta := a.beta(items, agg.TotalValue)

	sharpe := 0.0
	if volatility > 0 {
		sharpe = (agg.AnnualizedReturn - RiskFreeRate) / volatility
	}
	riskAdjusted := agg.AnnualizedReturn - beta*(MarketBenchmarkReturn-RiskFreeRate)

	concentration := a.concentrationRisk(items, agg.TotalValue)
	liquidity := a.liquidityRisk(items, agg.TotalValue)
	market := math.Abs(agg.AvgCapRate-MarketCapRateBenchmark) * 10

	return Result{
		Volatility:         volatility,
		Beta:               beta,
		SharpeRatio:        sharpe,
		RiskAdjustedReturn: riskAdjusted,
		MaxDrawdown:        a.maxDrawdown(items),
		Metrics: domain.RiskMetrics{
			ConcentrationRisk: concentration,
			LiquidityRisk:     liquidity,
			MarketRisk:        market,
			OverallRiskScore:  concentration*0.4 + liquidity*0.3 + market*0.3,
		},
	}
}

// volatility is the population standard deviation of per-item cap rates
// (missing rates default to the portfolio average), scaled to an annualized
// figure. With fewer than two items there is no spread to measure, so a
// fixed default is reported.
func (a *Analyzer) volatility(items []domain.PortfolioItem, avgCapRate float64) float64 {
	if len(items) < 2 {
		return defaultVolatility
	}

	capRates := make([]float64, 0, len(items))
	for _, item := range items {
		rate := avgCapRate
		if item.MarketData != nil && item.MarketData.CapRate != nil {
			rate = *item.MarketData.CapRate
		}
		capRates = append(capRates, rate)
	}

	mean := stat.Mean(capRates, nil)
	variance := stat.MomentAbout(2, capRates, mean, nil)
	return math.Sqrt(variance) * volatilityScale
}

// beta is the value-weighted average of the per-type beta table. Unknown
// types count as market-neutral (1.0), as does a portfolio with no value.
func (a *Analyzer) beta(items []domain.PortfolioItem, totalValue float64) float64 {
	if totalValue <= 0 {
		return 1.0
	}

	var weighted float64
	for _, item := range items {
		beta, ok := typeBetas[item.Type]
		if !ok {
			beta = 1.0
		}
		weighted += beta * (item.Value() / totalValue)
	}
	return weighted
}

// maxDrawdown approximates drawdown as the spread between the most and
// least valuable items, relative to the most valuable.
func (a *Analyzer) maxDrawdown(items []domain.PortfolioItem) float64 {
	if len(items) == 0 {
		return 0
	}

	maxValue, minValue := items[0].Value(), items[0].Value()
	for _, item := range items[1:] {
		value := item.Value()
		maxValue = math.Max(maxValue, value)
		minValue = math.Min(minValue, value)
	}
	if maxValue <= 0 {
		return 0
	}
	return (maxValue - minValue) / maxValue * 100
}

func (a *Analyzer) concentrationRisk(items []domain.PortfolioItem, totalValue float64) float64 {
	if totalValue <= 0 {
		return 0
	}
	var largest float64
	for _, item := range items {
		largest = math.Max(largest, item.Value())
	}
	return largest / totalValue * 100
}

func (a *Analyzer) liquidityRisk(items []domain.PortfolioItem, totalValue float64) float64 {
	if totalValue <= 0 {
		return 0
	}
	var weighted float64
	for _, item := range items {
		weight, ok := typeLiquidityWeights[item.Type]
		if !ok {
			weight = 0.5
		}
		weighted += weight * (item.Value() / totalValue)
	}
	return weighted * 100
}
