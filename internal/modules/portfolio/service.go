package portfolio

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/Triple-dylan/realglobal-engine/internal/domain"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/diversification"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/recommendations"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/reports"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/risk"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/stats"
)

// defaultCapRate seeds the income estimate when a promoted candidate
// carries no cap rate of its own.
const defaultCapRate = 6.0

// pillarColors maps portfolio status to the map-layer pillar color.
var pillarColors = map[domain.Status]string{
	domain.StatusOwned:     "#22c55e",
	domain.StatusWatching:  "#3b82f6",
	domain.StatusAnalyzing: "#f59e0b",
	domain.StatusTarget:    "#a855f7",
	domain.StatusAvoided:   "#ef4444",
}

const pillarDefaultColor = "#6b7280"

// pillarValueCeiling normalizes pillar heights: a $1M item reaches full height.
const pillarValueCeiling = 1_000_000.0

// Service is the engine's facade. It owns the item store and orchestrates
// the analyzers; every read recomputes from the current item set (pull-based,
// no cached derived state).
type Service struct {
	store           *Store
	stats           *stats.Calculator
	diversification *diversification.Analyzer
	risk            *risk.Analyzer
	recommendations *recommendations.Engine
	reports         *reports.Formatter
	now             func() time.Time
	log             zerolog.Logger
}

// NewService wires the engine's components together.
func NewService(
	store *Store,
	statsCalc *stats.Calculator,
	divAnalyzer *diversification.Analyzer,
	riskAnalyzer *risk.Analyzer,
	recEngine *recommendations.Engine,
	formatter *reports.Formatter,
	log zerolog.Logger,
) *Service {
	return &Service{
		store:           store,
		stats:           statsCalc,
		diversification: divAnalyzer,
		risk:            riskAnalyzer,
		recommendations: recEngine,
		reports:         formatter,
		now:             time.Now,
		log:             log.With().Str("service", "portfolio").Logger(),
	}
}

// Store exposes the underlying item store for mutation endpoints.
func (s *Service) Store() *Store {
	return s.store
}

// PromoteToPortfolio turns a tracked candidate into an owned portfolio item,
// synthesizing the lifecycle fields: acquisition date, a purchase price
// seeded from market data when available, and a monthly income estimate of
// purchasePrice x capRate / 12.
func (s *Service) PromoteToPortfolio(tracked domain.TrackedItem) []domain.PortfolioItem {
	now := s.now()
	item := domain.PortfolioItem{
		ID:              tracked.ID,
		Title:           tracked.Title,
		Type:            tracked.Type,
		Location:        tracked.Location,
		MarketData:      tracked.MarketData,
		PortfolioStatus: domain.StatusOwned,
		AcquisitionDate: &now,
		Timestamp:       tracked.Timestamp,
	}

	capRate := defaultCapRate
	if tracked.MarketData != nil {
		if tracked.MarketData.EstimatedValue != nil {
			item.PurchasePrice = tracked.MarketData.EstimatedValue
		}
		if tracked.MarketData.CapRate != nil {
			capRate = *tracked.MarketData.CapRate
		}
	}
	if item.PurchasePrice != nil {
		income := *item.PurchasePrice * capRate / 100 / 12
		item.MonthlyIncome = &income
	}

	s.log.Info().Str("id", item.ID).Float64("cap_rate", capRate).Msg("Promoted candidate to portfolio")
	return s.store.AddToPortfolio(item)
}

// GetStats recomputes the full stats bundle from the current owned-item set.
// It is a pure function of store state: two calls without an intervening
// mutation return identical results.
func (s *Service) GetStats() domain.PortfolioStats {
	owned := s.store.OwnedItems()

	agg := s.stats.Calculate(owned)
	div := s.diversification.Analyze(owned)
	rk := s.risk.Analyze(owned, agg)

	return domain.PortfolioStats{
		TotalValue:                  agg.TotalValue,
		PropertyCount:               agg.PropertyCount,
		AvgCapRate:                  agg.AvgCapRate,
		OccupancyRate:               agg.OccupancyRate,
		MonthlyIncome:               agg.MonthlyIncome,
		TotalIncome:                 agg.TotalIncome,
		TotalExpenses:               agg.TotalExpenses,
		NetWorth:                    agg.NetWorth,
		AnnualizedReturn:            agg.AnnualizedReturn,
		DiversificationScore:        div.Score,
		GeographicDiversification:   div.Geographic,
		PropertyTypeDiversification: div.PropertyType,
		Volatility:                  rk.Volatility,
		PortfolioBeta:               rk.Beta,
		SharpeRatio:                 rk.SharpeRatio,
		RiskAdjustedReturn:          rk.RiskAdjustedReturn,
		MaxDrawdown:                 rk.MaxDrawdown,
		RiskMetrics:                 rk.Metrics,
	}
}

// GetRecommendations evaluates the advisory rules against fresh stats.
func (s *Service) GetRecommendations() []domain.Advisory {
	return s.recommendations.Evaluate(s.GetStats())
}

// GenerateReport renders the full text report for the current portfolio.
func (s *Service) GenerateReport() string {
	stats := s.GetStats()
	advisories := s.recommendations.Evaluate(stats)
	return s.reports.Format(stats, advisories, s.store.OwnedItems())
}

// GetPortfolioPillars produces the geospatial visualization columns for all
// located portfolio items. Height is the item value normalized against a
// $1M ceiling; color is keyed by status.
func (s *Service) GetPortfolioPillars() []domain.Pillar {
	items := s.store.PortfolioItems()

	pillars := make([]domain.Pillar, 0, len(items))
	for _, item := range items {
		if item.Location == nil {
			continue
		}
		color, ok := pillarColors[item.PortfolioStatus]
		if !ok {
			color = pillarDefaultColor
		}
		value := item.Value()
		pillars = append(pillars, domain.Pillar{
			ID:          item.ID,
			Coordinates: *item.Location,
			Height:      math.Min(value/pillarValueCeiling, 1),
			Color:       color,
			Value:       value,
			Type:        item.Type,
			Status:      item.PortfolioStatus,
		})
	}
	return pillars
}
