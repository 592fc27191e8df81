package spacedrep

import "math"

// Interval floors per rating, in days.
const (
	InitialIntervalDays = 1
	EasyMinDays         = 7
	MediumMinDays       = 3
)

// MediumGrowth is the interval multiplier for a Medium rating.
const MediumGrowth = 1.5

// NextInterval grows interval according to rating. Easy doubles with a
// floor of 7 days, Medium grows by half (rounded) with a floor of 3, Hard
// keeps the interval. The result is never below 1.
func NextInterval(interval int, rating Rating) int {
	interval = max(interval, InitialIntervalDays)
	switch rating {
	case Easy:
		return max(EasyMinDays, interval*2)
	case Medium:
		return max(MediumMinDays, int(math.Round(float64(interval)*MediumGrowth)))
	default:
		return interval
	}
}
