// Package stats derives the base aggregate metrics from the owned-item set.
package stats

import (
	"github.com/rs/zerolog"

	"github.com/Triple-dylan/realglobal-engine/internal/domain"
)

// Aggregates holds the base financial aggregates of the owned portfolio.
// Higher-level analyzers consume these alongside the raw items.
type Aggregates struct {
	TotalValue       float64
	PropertyCount    int
	AvgCapRate       float64
	OccupancyRate    float64
	MonthlyIncome    float64
	TotalIncome      float64 // annual
	TotalExpenses    float64 // annual
	NetWorth         float64
	AnnualizedReturn float64
}

// Calculator computes Aggregates from a snapshot of owned items. It is
// stateless; every call walks the full item set.
type Calculator struct {
	log zerolog.Logger
}

// NewCalculator creates a new stats calculator.
func NewCalculator(log zerolog.Logger) *Calculator {
	return &Calculator{
		log: log.With().Str("service", "stats").Logger(),
	}
}

// Calculate derives the base aggregates. An empty item set yields all-zero
// aggregates; no formula divides by zero.
func (c *Calculator) Calculate(items []domain.PortfolioItem) Aggregates {
	agg := Aggregates{PropertyCount: len(items)}
	if len(items) == 0 {
		return agg
	}

	var capRateSum, occupancySum, monthlyExpenses float64
	for _, item := range items {
		agg.TotalValue += item.Value()
		if item.MonthlyIncome != nil {
			agg.MonthlyIncome += *item.MonthlyIncome
		}
		if item.Expenses != nil {
			monthlyExpenses += *item.Expenses
		}

		// Missing occupancy counts as fully occupied, missing vacancy as none.
		occupancy, vacancy := 100.0, 0.0
		if item.MarketData != nil {
			if item.MarketData.CapRate != nil {
				capRateSum += *item.MarketData.CapRate
			}
			if item.MarketData.OccupancyRate != nil {
				occupancy = *item.MarketData.OccupancyRate
			}
			if item.MarketData.Vacancy != nil {
				vacancy = *item.MarketData.Vacancy
			}
		}
		occupancySum += occupancy - vacancy
	}

	n := float64(len(items))
	agg.AvgCapRate = capRateSum / n
	agg.OccupancyRate = occupancySum / n
	agg.TotalIncome = agg.MonthlyIncome * 12
	agg.TotalExpenses = monthlyExpenses * 12
	agg.NetWorth = agg.TotalValue - agg.TotalExpenses

	if agg.TotalValue > 0 {
		netOperatingIncome := agg.TotalIncome - agg.TotalExpenses
		agg.AnnualizedReturn = netOperatingIncome / agg.TotalValue * 100
	}

	return agg
}
