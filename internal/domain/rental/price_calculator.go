package rental

import "math"

type PriceCalculator interface {
	PriceEUR(minutes int) float64
}

// CappedPriceCalculator charges per minute up to a fixed ceiling.
type CappedPriceCalculator struct {
	PerMinuteEUR float64
	CapEUR       float64
}

func NewCappedPriceCalculator() *CappedPriceCalculator {
	return &CappedPriceCalculator{
		PerMinuteEUR: 0.25,
		CapEUR:       12.0,
	}
}

func (pc *CappedPriceCalculator) PriceEUR(minutes int) float64 {
	return math.Min(float64(minutes)*pc.PerMinuteEUR, pc.CapEUR)
}
