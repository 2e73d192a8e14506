package portfolio

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Triple-dylan/realglobal-engine/internal/domain"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/diversification"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/recommendations"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/reports"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/risk"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/stats"
)

func newTestService() *Service {
	log := zerolog.Nop()
	return NewService(
		NewStore(log),
		stats.NewCalculator(log),
		diversification.NewAnalyzer(log),
		risk.NewAnalyzer(log),
		recommendations.NewEngine(log),
		reports.NewFormatter(log),
		log,
	)
}

func TestGetStats_EmptyPortfolio(t *testing.T) {
	service := newTestService()

	s := service.GetStats()

	assert.Zero(t, s.TotalValue)
	assert.Zero(t, s.AvgCapRate)
	assert.Zero(t, s.OccupancyRate)
	assert.Zero(t, s.DiversificationScore)
}

func TestGetStats_SingleItemScenario(t *testing.T) {
	service := newTestService()
	service.Store().AddToPortfolio(domain.PortfolioItem{
		ID:              "prop-1",
		PortfolioStatus: domain.StatusOwned,
		Type:            domain.PropertyCommercial,
		CurrentValue:    domain.Float64(1_000_000),
		MarketData: &domain.MarketData{
			CapRate:       domain.Float64(8),
			OccupancyRate: domain.Float64(95),
			Vacancy:       domain.Float64(0),
		},
	})

	s := service.GetStats()

	assert.Equal(t, 8.0, s.AvgCapRate)
	assert.Equal(t, 95.0, s.OccupancyRate)
	assert.InDelta(t, 100.0, s.RiskMetrics.ConcentrationRisk, 1e-9)
}

func TestGetStats_IdempotentWithoutMutation(t *testing.T) {
	service := newTestService()
	service.Store().AddToPortfolio(domain.PortfolioItem{
		ID:              "prop-1",
		PortfolioStatus: domain.StatusOwned,
		Type:            domain.PropertyMultifamily,
		Location:        &domain.Location{Lat: 40.7, Lng: -74.0},
		CurrentValue:    domain.Float64(640_000),
		MonthlyIncome:   domain.Float64(3_200),
		MarketData:      &domain.MarketData{CapRate: domain.Float64(6)},
	})

	first := service.GetStats()
	second := service.GetStats()

	assert.Equal(t, first, second)
}

func TestGetStats_IgnoresNonOwnedItems(t *testing.T) {
	service := newTestService()
	service.Store().AddToPortfolio(domain.PortfolioItem{
		ID:              "watched",
		PortfolioStatus: domain.StatusWatching,
		CurrentValue:    domain.Float64(5_000_000),
	})

	s := service.GetStats()

	assert.Zero(t, s.TotalValue)
	assert.Zero(t, s.PropertyCount)
}

func TestPromoteToPortfolio_SynthesizesLifecycleFields(t *testing.T) {
	service := newTestService()

	items := service.PromoteToPortfolio(domain.TrackedItem{
		ID:    "cand-1",
		Type:  domain.PropertyMultifamily,
		Title: "Maple Street 12-unit",
		MarketData: &domain.MarketData{
			EstimatedValue: domain.Float64(1_200_000),
			CapRate:        domain.Float64(7),
		},
		Timestamp: time.Now(),
	})

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, domain.StatusOwned, item.PortfolioStatus)
	require.NotNil(t, item.AcquisitionDate)
	require.NotNil(t, item.PurchasePrice)
	assert.Equal(t, 1_200_000.0, *item.PurchasePrice)
	require.NotNil(t, item.MonthlyIncome)
	assert.InDelta(t, 1_200_000*0.07/12, *item.MonthlyIncome, 1e-9)
}

func TestPromoteToPortfolio_DefaultsCapRate(t *testing.T) {
	service := newTestService()

	items := service.PromoteToPortfolio(domain.TrackedItem{
		ID:   "cand-1",
		Type: domain.PropertyCommercial,
		MarketData: &domain.MarketData{
			EstimatedValue: domain.Float64(600_000),
		},
	})

	require.Len(t, items, 1)
	require.NotNil(t, items[0].MonthlyIncome)
	assert.InDelta(t, 600_000*0.06/12, *items[0].MonthlyIncome, 1e-9)
}

func TestPromoteToPortfolio_RemovesWorkspaceEntry(t *testing.T) {
	service := newTestService()
	service.Store().AddToWorkspace(domain.PortfolioItem{
		ID: "cand-1", PortfolioStatus: domain.StatusAnalyzing,
	})

	service.PromoteToPortfolio(domain.TrackedItem{ID: "cand-1", Type: domain.PropertyLand})

	assert.Empty(t, service.Store().WorkspaceItems())
	assert.Len(t, service.Store().PortfolioItems(), 1)
}

func TestGetPortfolioPillars(t *testing.T) {
	service := newTestService()
	service.Store().AddToPortfolio(domain.PortfolioItem{
		ID:              "owned",
		PortfolioStatus: domain.StatusOwned,
		Type:            domain.PropertyCommercial,
		Location:        &domain.Location{Lat: 40.7, Lng: -74.0},
		CurrentValue:    domain.Float64(500_000),
	})
	service.Store().AddToPortfolio(domain.PortfolioItem{
		ID:              "huge",
		PortfolioStatus: domain.StatusTarget,
		Type:            domain.PropertyIndustrial,
		Location:        &domain.Location{Lat: 34.0, Lng: -118.2},
		CurrentValue:    domain.Float64(2_500_000),
	})
	service.Store().AddToPortfolio(domain.PortfolioItem{
		ID:              "unlocated",
		PortfolioStatus: domain.StatusOwned,
		CurrentValue:    domain.Float64(100_000),
	})

	pillars := service.GetPortfolioPillars()

	require.Len(t, pillars, 2, "unlocated items produce no pillar")

	byID := map[string]domain.Pillar{}
	for _, p := range pillars {
		byID[p.ID] = p
	}
	assert.InDelta(t, 0.5, byID["owned"].Height, 1e-9)
	assert.Equal(t, "#22c55e", byID["owned"].Color)
	assert.Equal(t, 1.0, byID["huge"].Height, "height is capped at 1")
	assert.Equal(t, "#a855f7", byID["huge"].Color)
}

func TestGetPortfolioPillars_UnknownStatusGetsDefaultColor(t *testing.T) {
	service := newTestService()
	service.Store().AddToPortfolio(domain.PortfolioItem{
		ID:              "odd",
		PortfolioStatus: domain.Status("archived"),
		Location:        &domain.Location{Lat: 40.7, Lng: -74.0},
	})

	pillars := service.GetPortfolioPillars()

	require.Len(t, pillars, 1)
	assert.Equal(t, "#6b7280", pillars[0].Color)
}

func TestGetRecommendations_EmptyPortfolioStillAdvises(t *testing.T) {
	service := newTestService()

	advisories := service.GetRecommendations()

	assert.NotEmpty(t, advisories)
}

func TestGenerateReport_DoesNotPanicOnEmptyPortfolio(t *testing.T) {
	service := newTestService()

	report := service.GenerateReport()

	assert.Contains(t, report, "Total value: $0.00")
	assert.NotContains(t, report, "## Holdings")
}
