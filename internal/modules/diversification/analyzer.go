// Package diversification computes geographic and property-type
// concentration metrics for the owned portfolio.
package diversification

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/Triple-dylan/realglobal-engine/internal/domain"
)

// Result holds the concentration metrics plus the composite score.
type Result struct {
	Geographic   domain.GeographicDiversification
	PropertyType domain.PropertyTypeDiversification
	Score        float64 // composite, bounded to [0,100]
}

// Analyzer buckets items into coarse location and type groups and inverts
// the Herfindahl-Hirschman index of each grouping into a 0-100
// diversification score.
type Analyzer struct {
	log zerolog.Logger
}

// NewAnalyzer creates a new diversification analyzer.
func NewAnalyzer(log zerolog.Logger) *Analyzer {
	return &Analyzer{
		log: log.With().Str("service", "diversification").Logger(),
	}
}

// Analyze computes all diversification metrics from a snapshot of owned
// items. Items without a location are excluded from the geographic buckets
// but still count toward the type buckets and the property-count term.
func (a *Analyzer) Analyze(items []domain.PortfolioItem) Result {
	geo := a.geographic(items)
	ptype := a.propertyType(items)

	countTerm := math.Min(float64(len(items))/10, 1) * 100
	score := geo.HerfindahlIndex*0.4 + ptype.DistributionBalance*0.3 + countTerm*0.3

	return Result{
		Geographic:   geo,
		PropertyType: ptype,
		Score:        clampScore(score),
	}
}

// geographic buckets located items into a ~11km city grid (one decimal of
// lat/lng), whole-degree states, and a USA bounding-box country key, then
// scores the value spread across cities.
func (a *Analyzer) geographic(items []domain.PortfolioItem) domain.GeographicDiversification {
	cityValues := map[string]float64{}
	states := map[string]struct{}{}
	countries := map[string]struct{}{}
	var totalValue float64

	for _, item := range items {
		if item.Location == nil {
			continue
		}
		lat, lng := item.Location.Lat, item.Location.Lng

		city := fmt.Sprintf("%.1f,%.1f", math.Trunc(lat*10)/10, math.Trunc(lng*10)/10)
		state := fmt.Sprintf("%d,%d", int(math.Trunc(lat)), int(math.Trunc(lng)))
		country := "Other"
		if lat > 24 && lat < 50 && lng > -125 && lng < -66 {
			country = "USA"
		}

		value := item.Value()
		cityValues[city] += value
		totalValue += value
		states[state] = struct{}{}
		countries[country] = struct{}{}
	}

	return domain.GeographicDiversification{
		CitiesCount:     len(cityValues),
		StatesCount:     len(states),
		CountriesCount:  len(countries),
		HerfindahlIndex: invertedHHI(cityValues, totalValue),
	}
}

func (a *Analyzer) propertyType(items []domain.PortfolioItem) domain.PropertyTypeDiversification {
	typeValues := map[string]float64{}
	var totalValue float64

	for _, item := range items {
		value := item.Value()
		typeValues[string(item.Type)] += value
		totalValue += value
	}

	return domain.PropertyTypeDiversification{
		TypesCount:          len(typeValues),
		DistributionBalance: invertedHHI(typeValues, totalValue),
	}
}

// invertedHHI turns a bucket-value map into a 0-100 diversification score:
// 0 when a single bucket holds all value, approaching 100 as value spreads
// (bounded by bucket count — N equal buckets score (1-1/N)*100).
func invertedHHI(buckets map[string]float64, totalValue float64) float64 {
	if totalValue <= 0 || len(buckets) == 0 {
		return 0
	}
	var hhi float64
	for _, value := range buckets {
		share := value / totalValue
		hhi += share * share
	}
	return math.Max(0, (1-hhi)*100)
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
