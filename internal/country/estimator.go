package country

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	minMultiplier = 1000
	maxMultiplier = 2000

	DefaultFixedMultiplier = 1500
)

// GDPEstimator derives an economic size figure from population and the
// currency's exchange rate against the base currency.
type GDPEstimator interface {
	EstimateGDP(population int64, rate float64) float64
}

// RandomMultiplierEstimator uses population * m / rate with m drawn uniformly
// from [1000, 2000] on every call.
type RandomMultiplierEstimator struct {
	intN func(n int) int
}

func (e *RandomMultiplierEstimator) EstimateGDP(population int64, rate float64) float64 {
	m := minMultiplier + e.intN(maxMultiplier-minMultiplier+1)
	return float64(population) * float64(m) / rate
}

func NewRandomMultiplierEstimator() *RandomMultiplierEstimator {
	return &RandomMultiplierEstimator{intN: rand.IntN}
}

// FixedMultiplierEstimator uses the same GDP multiplier for every country.
type FixedMultiplierEstimator struct {
	multiplier float64
}

func (e *FixedMultiplierEstimator) EstimateGDP(population int64, rate float64) float64 {
	return float64(population) * e.multiplier / rate
}

func NewFixedMultiplierEstimator(multiplier float64) *FixedMultiplierEstimator {
	if multiplier <= 0 {
		multiplier = DefaultFixedMultiplier
	}
	return &FixedMultiplierEstimator{multiplier: multiplier}
}

// NewEstimator picks an estimator by strategy name ("random" when empty).
func NewEstimator(strategy string, multiplier float64) (GDPEstimator, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", "random":
		return NewRandomMultiplierEstimator(), nil
	case "fixed":
		return NewFixedMultiplierEstimator(multiplier), nil
	default:
		return nil, fmt.Errorf("unknown gdp estimator strategy %q", strategy)
	}
}

// Estimate resolves the exchange rate for currencyCode and the resulting GDP.
// A missing code, a code unknown to rates or a non-positive rate yields (nil, 0).
func Estimate(estimator GDPEstimator, population int64, currencyCode *string, rates map[string]float64) (*float64, float64) {
	if currencyCode == nil {
		return nil, 0
	}
	rate, ok := rates[*currencyCode]
	if !ok || rate <= 0 {
		return nil, 0
	}
	return &rate, estimator.EstimateGDP(population, rate)
}
