// Package domain provides core domain models and types.
package domain

import "time"

// Status represents where an item sits in the investment pipeline.
type Status string

const (
	StatusOwned     Status = "owned"
	StatusWatching  Status = "watching"
	StatusAnalyzing Status = "analyzing"
	StatusTarget    Status = "target"
	StatusAvoided   Status = "avoided"
)

// PropertyType represents a real-estate property category.
type PropertyType string

const (
	PropertyCommercial  PropertyType = "commercial"
	PropertyResidential PropertyType = "residential"
	PropertyMultifamily PropertyType = "multifamily"
	PropertyIndustrial  PropertyType = "industrial"
	PropertyMixedUse    PropertyType = "mixed-use"
	PropertyLand        PropertyType = "land"
)

// Location is a geographic coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MarketData holds market figures attached to an item. All fields are
// optional; formulas substitute documented defaults for missing values.
type MarketData struct {
	CapRate        *float64 `json:"cap_rate,omitempty"`        // percent
	OccupancyRate  *float64 `json:"occupancy_rate,omitempty"`  // percent
	Vacancy        *float64 `json:"vacancy,omitempty"`         // percent
	EstimatedValue *float64 `json:"estimated_value,omitempty"` // dollars, seeds purchase price on promotion
}

// PortfolioAlert is an advisory attached to a specific item.
type PortfolioAlert struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Severity       string    `json:"severity"`
	Message        string    `json:"message"`
	Date           time.Time `json:"date"`
	ActionRequired bool      `json:"action_required"`
}

// PortfolioItem is a tracked asset. An item belongs to exactly one of the
// portfolio or workspace collections at any time.
type PortfolioItem struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	PortfolioStatus Status           `json:"portfolio_status"`
	Type            PropertyType     `json:"type"`
	Location        *Location        `json:"location,omitempty"`
	PurchasePrice   *float64         `json:"purchase_price,omitempty"`
	CurrentValue    *float64         `json:"current_value,omitempty"`
	MonthlyIncome   *float64         `json:"monthly_income,omitempty"`
	Expenses        *float64         `json:"expenses,omitempty"`
	MarketData      *MarketData      `json:"market_data,omitempty"`
	AcquisitionDate *time.Time       `json:"acquisition_date,omitempty"`
	Alerts          []PortfolioAlert `json:"alerts,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
}

// Value resolves an item's monetary value: current value wins over purchase
// price, and a fully unpriced item counts as zero.
func (i PortfolioItem) Value() float64 {
	if i.CurrentValue != nil {
		return *i.CurrentValue
	}
	if i.PurchasePrice != nil {
		return *i.PurchasePrice
	}
	return 0
}

// TrackedItem is the generic shape supplied by the surrounding application
// when promoting a candidate into the portfolio or workspace.
type TrackedItem struct {
	ID         string       `json:"id"`
	Type       PropertyType `json:"type"`
	Title      string       `json:"title"`
	Location   *Location    `json:"location,omitempty"`
	MarketData *MarketData  `json:"market_data,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
}

// GeographicDiversification describes how spread the portfolio is across
// coarse location buckets.
type GeographicDiversification struct {
	CitiesCount     int     `json:"cities_count"`
	StatesCount     int     `json:"states_count"`
	CountriesCount  int     `json:"countries_count"`
	HerfindahlIndex float64 `json:"herfindahl_index"` // 0 = one bucket, 100 = maximally spread
}

// PropertyTypeDiversification describes the mix of property categories.
type PropertyTypeDiversification struct {
	TypesCount          int     `json:"types_count"`
	DistributionBalance float64 `json:"distribution_balance"`
}

// RiskMetrics groups the component risk scores.
type RiskMetrics struct {
	ConcentrationRisk float64 `json:"concentration_risk"`
	LiquidityRisk     float64 `json:"liquidity_risk"`
	MarketRisk        float64 `json:"market_risk"`
	OverallRiskScore  float64 `json:"overall_risk_score"`
}

// PortfolioStats is a pure function of the current owned-item set. It is
// never stored; every read recomputes it from scratch.
type PortfolioStats struct {
	TotalValue                  float64                     `json:"total_value"`
	PropertyCount               int                         `json:"property_count"`
	AvgCapRate                  float64                     `json:"avg_cap_rate"`
	OccupancyRate               float64                     `json:"occupancy_rate"`
	MonthlyIncome               float64                     `json:"monthly_income"`
	TotalIncome                 float64                     `json:"total_income"`
	TotalExpenses               float64                     `json:"total_expenses"`
	NetWorth                    float64                     `json:"net_worth"`
	DiversificationScore        float64                     `json:"diversification_score"`
	SharpeRatio                 float64                     `json:"sharpe_ratio"`
	PortfolioBeta               float64                     `json:"portfolio_beta"`
	RiskAdjustedReturn          float64                     `json:"risk_adjusted_return"`
	AnnualizedReturn            float64                     `json:"annualized_return"`
	Volatility                  float64                     `json:"volatility"`
	MaxDrawdown                 float64                     `json:"max_drawdown"`
	GeographicDiversification   GeographicDiversification   `json:"geographic_diversification"`
	PropertyTypeDiversification PropertyTypeDiversification `json:"property_type_diversification"`
	RiskMetrics                 RiskMetrics                 `json:"risk_metrics"`
}

// Pillar is a single geospatial visualization column for the map layer.
type Pillar struct {
	ID          string       `json:"id"`
	Coordinates Location     `json:"coordinates"`
	Height      float64      `json:"height"` // normalized to [0,1]
	Color       string       `json:"color"`
	Value       float64      `json:"value"`
	Type        PropertyType `json:"type"`
	Status      Status       `json:"status"`
}

// AdvisoryPriority ranks an advisory's urgency.
type AdvisoryPriority string

const (
	PriorityHigh   AdvisoryPriority = "high"
	PriorityMedium AdvisoryPriority = "medium"
	PriorityLow    AdvisoryPriority = "low"
)

// Advisory is a single generated recommendation. Each evaluation produces
// fresh advisories; they are not deduplicated across calls.
type Advisory struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Priority  AdvisoryPriority `json:"priority"`
	CreatedAt time.Time        `json:"created_at"`
}

// Float64 returns a pointer to v. Convenience for building items with
// optional monetary fields.
func Float64(v float64) *float64 { return &v }
