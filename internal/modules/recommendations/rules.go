// Package recommendations evaluates a fixed table of advisory rules over
// computed portfolio stats.
package recommendations

import (
	"fmt"

	"github.com/Triple-dylan/realglobal-engine/internal/domain"
)

// Rule is a single independent predicate/advisory pair. Rules never inspect
// each other's output, so evaluation order only affects the order of the
// returned advisories.
type Rule struct {
	Name     string
	Applies  func(s domain.PortfolioStats) bool
	Priority domain.AdvisoryPriority
	Build    func(s domain.PortfolioStats) (title, body string)
}

// Threshold constants for the rule table.
const (
	concentrationThreshold = 35.0
	sharpeThreshold        = 0.4
	minGeoBuckets          = 3
	minPropertyTypes       = 2
	betaThreshold          = 1.25
	capRateThreshold       = 5.5
	liquidityThreshold     = 65.0
	occupancyThreshold     = 88.0
	occupancyTarget        = 95.0
	scaleUpPropertyCount   = 5
	scaleUpValueThreshold  = 500_000.0
	drawdownThreshold      = 25.0
)

// defaultRules is the fixed rule table, evaluated in declaration order.
func defaultRules() []Rule {
	return []Rule{
		{
			Name:     "concentration",
			Applies:  func(s domain.PortfolioStats) bool { return s.RiskMetrics.ConcentrationRisk > concentrationThreshold },
			Priority: domain.PriorityHigh,
			Build: func(s domain.PortfolioStats) (string, string) {
				return "Reduce single-asset exposure",
					fmt.Sprintf("Your largest holding represents %.1f%% of total portfolio value. Consider rebalancing so no single asset exceeds %.0f%%.",
						s.RiskMetrics.ConcentrationRisk, concentrationThreshold)
			},
		},
		{
			Name:     "sharpe_ratio",
			Applies:  func(s domain.PortfolioStats) bool { return s.SharpeRatio < sharpeThreshold },
			Priority: domain.PriorityMedium,
			Build: func(s domain.PortfolioStats) (string, string) {
				return "Improve risk-adjusted returns",
					fmt.Sprintf("Portfolio Sharpe ratio is %.2f, below the %.1f target. Target acquisitions with cap rates above %.1f%% to lift return per unit of risk.",
						s.SharpeRatio, sharpeThreshold, s.AvgCapRate+1)
			},
		},
		{
			Name: "geographic_concentration",
			Applies: func(s domain.PortfolioStats) bool {
				return s.GeographicDiversification.CitiesCount < minGeoBuckets && s.PropertyCount > 2
			},
			Priority: domain.PriorityMedium,
			Build: func(s domain.PortfolioStats) (string, string) {
				return "Diversify across markets",
					fmt.Sprintf("Holdings are concentrated in %d market(s). Spreading across at least %d metros reduces exposure to local downturns.",
						s.GeographicDiversification.CitiesCount, minGeoBuckets)
			},
		},
		{
			Name: "type_concentration",
			Applies: func(s domain.PortfolioStats) bool {
				return s.PropertyTypeDiversification.TypesCount < minPropertyTypes && s.PropertyCount > 1
			},
			Priority: domain.PriorityMedium,
			Build: func(s domain.PortfolioStats) (string, string) {
				return "Diversify property types",
					fmt.Sprintf("All holdings fall into %d property type(s). Mixing categories smooths sector-specific cycles.",
						s.PropertyTypeDiversification.TypesCount)
			},
		},
		{
			Name:     "beta",
			Applies:  func(s domain.PortfolioStats) bool { return s.PortfolioBeta > betaThreshold },
			Priority: domain.PriorityMedium,
			Build: func(s domain.PortfolioStats) (string, string) {
				return "High market sensitivity",
					fmt.Sprintf("Portfolio beta is %.2f, meaning values should swing harder than the broader market. Adding lower-beta assets (residential, multifamily) would dampen cyclicality.",
						s.PortfolioBeta)
			},
		},
		{
			Name:     "cap_rate",
			Applies:  func(s domain.PortfolioStats) bool { return s.AvgCapRate < capRateThreshold },
			Priority: domain.PriorityLow,
			Build: func(s domain.PortfolioStats) (string, string) {
				return "Yield enhancement opportunity",
					fmt.Sprintf("Average cap rate is %.2f%%, below the %.1f%% benchmark. Look for value-add opportunities or higher-yield markets.",
						s.AvgCapRate, capRateThreshold)
			},
		},
		{
			Name:     "liquidity",
			Applies:  func(s domain.PortfolioStats) bool { return s.RiskMetrics.LiquidityRisk > liquidityThreshold },
			Priority: domain.PriorityMedium,
			Build: func(s domain.PortfolioStats) (string, string) {
				return "Liquidity concern",
					fmt.Sprintf("Liquidity risk score is %.0f/100. A larger share of easily-traded asset types would shorten exit timelines.",
						s.RiskMetrics.LiquidityRisk)
			},
		},
		{
			Name:     "occupancy",
			Applies:  func(s domain.PortfolioStats) bool { return s.OccupancyRate < occupancyThreshold },
			Priority: domain.PriorityHigh,
			Build: func(s domain.PortfolioStats) (string, string) {
				// Estimated NOI uplift from closing the gap to the occupancy target.
				uplift := 0.0
				if s.OccupancyRate > 0 {
					uplift = s.TotalIncome * (occupancyTarget - s.OccupancyRate) / s.OccupancyRate
				}
				return "Occupancy optimization",
					fmt.Sprintf("Average occupancy is %.1f%%. Lifting it to %.0f%% would add an estimated $%.0f of annual NOI.",
						s.OccupancyRate, occupancyTarget, uplift)
			},
		},
		{
			Name: "scale_up",
			Applies: func(s domain.PortfolioStats) bool {
				return s.PropertyCount < scaleUpPropertyCount && s.TotalValue > scaleUpValueThreshold
			},
			Priority: domain.PriorityLow,
			Build: func(s domain.PortfolioStats) (string, string) {
				return "Scale for diversification",
					fmt.Sprintf("With %d properties worth $%.0f total, the portfolio has capital depth but few positions. Adding smaller assets would spread idiosyncratic risk.",
						s.PropertyCount, s.TotalValue)
			},
		},
		{
			Name:     "drawdown",
			Applies:  func(s domain.PortfolioStats) bool { return s.MaxDrawdown > drawdownThreshold },
			Priority: domain.PriorityMedium,
			Build: func(s domain.PortfolioStats) (string, string) {
				return "Cyclical vulnerability",
					fmt.Sprintf("The value spread across holdings implies a potential drawdown of %.1f%%. Balancing position sizes would soften cycle troughs.",
						s.MaxDrawdown)
			},
		},
	}
}
