// Package reports renders the full stats bundle into a single text report.
package reports

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/rs/zerolog"

	"github.com/Triple-dylan/realglobal-engine/internal/domain"
)

// Formatter serializes stats, recommendations and the per-item breakdown
// into a markdown text block. It performs no I/O; export to PDF/HTML is an
// external collaborator's concern.
type Formatter struct {
	now func() time.Time
	log zerolog.Logger
}

// NewFormatter creates a new report formatter.
func NewFormatter(log zerolog.Logger) *Formatter {
	return &Formatter{
		now: time.Now,
		log: log.With().Str("service", "reports").Logger(),
	}
}

// Format renders the report. It never fails: an empty portfolio produces a
// report with zero totals and no breakdown rows.
func (f *Formatter) Format(stats domain.PortfolioStats, advisories []domain.Advisory, items []domain.PortfolioItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio Report\n\nGenerated: %s\n\n", f.now().Format("2006-01-02 15:04 MST"))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total value: %s\n", usd(stats.TotalValue))
	fmt.Fprintf(&b, "- Properties: %d\n", stats.PropertyCount)
	fmt.Fprintf(&b, "- Monthly income: %s\n", usd(stats.MonthlyIncome))
	fmt.Fprintf(&b, "- Annual NOI: %s\n", usd(stats.TotalIncome-stats.TotalExpenses))
	fmt.Fprintf(&b, "- Net worth: %s\n", usd(stats.NetWorth))
	fmt.Fprintf(&b, "- Average cap rate: %.2f%%\n", stats.AvgCapRate)
	fmt.Fprintf(&b, "- Occupancy: %.1f%%\n", stats.OccupancyRate)
	fmt.Fprintf(&b, "- Annualized return: %.2f%%\n\n", stats.AnnualizedReturn)

	b.WriteString("## Diversification\n\n")
	fmt.Fprintf(&b, "- Composite score: %.1f/100\n", stats.DiversificationScore)
	fmt.Fprintf(&b, "- Geographic spread: %.1f/100 across %d cities, %d states, %d countries\n",
		stats.GeographicDiversification.HerfindahlIndex,
		stats.GeographicDiversification.CitiesCount,
		stats.GeographicDiversification.StatesCount,
		stats.GeographicDiversification.CountriesCount)
	fmt.Fprintf(&b, "- Type balance: %.1f/100 across %d property types\n\n",
		stats.PropertyTypeDiversification.DistributionBalance,
		stats.PropertyTypeDiversification.TypesCount)

	b.WriteString("## Risk\n\n")
	fmt.Fprintf(&b, "- Volatility: %.2f%%\n", stats.Volatility)
	fmt.Fprintf(&b, "- Beta: %.2f\n", stats.PortfolioBeta)
	fmt.Fprintf(&b, "- Sharpe ratio: %.2f\n", stats.SharpeRatio)
	fmt.Fprintf(&b, "- Risk-adjusted return: %.2f%%\n", stats.RiskAdjustedReturn)
	fmt.Fprintf(&b, "- Max drawdown: %.1f%%\n", stats.MaxDrawdown)
	fmt.Fprintf(&b, "- Concentration risk: %.1f\n", stats.RiskMetrics.ConcentrationRisk)
	fmt.Fprintf(&b, "- Liquidity risk: %.1f\n", stats.RiskMetrics.LiquidityRisk)
	fmt.Fprintf(&b, "- Market risk: %.1f\n", stats.RiskMetrics.MarketRisk)
	fmt.Fprintf(&b, "- Overall risk score: %.1f\n\n", stats.RiskMetrics.OverallRiskScore)

	b.WriteString("## Recommendations\n\n")
	for _, adv := range advisories {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", strings.ToUpper(string(adv.Priority)), adv.Title, adv.Body)
	}
	b.WriteString("\n")

	if len(items) > 0 {
		b.WriteString("## Holdings\n\n")
		for _, item := range items {
			value := item.Value()
			weight := 0.0
			if stats.TotalValue > 0 {
				weight = value / stats.TotalValue * 100
			}
			income := 0.0
			if item.MonthlyIncome != nil {
				income = *item.MonthlyIncome
			}
			capRate := 0.0
			if item.MarketData != nil && item.MarketData.CapRate != nil {
				capRate = *item.MarketData.CapRate
			}
			fmt.Fprintf(&b, "- %s (%s): %s, %s/mo, cap %.2f%%, weight %.1f%%\n",
				displayTitle(item), item.PortfolioStatus, usd(value), usd(income), capRate, weight)
		}
	}

	return b.String()
}

func displayTitle(item domain.PortfolioItem) string {
	if item.Title != "" {
		return item.Title
	}
	return item.ID
}

// usd formats a dollar amount, e.g. "$1,000,000.00".
func usd(v float64) string {
	return money.New(int64(math.Round(v*100)), money.USD).Display()
}
