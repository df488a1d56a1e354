package formulas

import (
	"github.com/markcheno/go-talib"
)

// TrendDirection labels the relationship of the latest close to its
// simple moving average.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// SMA calculates the simple moving average of closing prices.
// Returns nil if there is not enough data for the requested period.
func SMA(closes []float64, period int) []float64 {
	if period < 1 || len(closes) < period {
		return nil
	}
	return talib.Sma(closes, period)
}

// LatestSMA returns the most recent SMA value, or nil if insufficient data.
func LatestSMA(closes []float64, period int) *float64 {
	sma := SMA(closes, period)
	if len(sma) == 0 {
		return nil
	}

	last := sma[len(sma)-1]
	if isNaN(last) {
		return nil
	}
	return &last
}

// Trend compares the latest close against its moving average.
func Trend(closes []float64, period int) TrendDirection {
	sma := LatestSMA(closes, period)
	if sma == nil || len(closes) == 0 {
		return TrendFlat
	}

	last := closes[len(closes)-1]
	switch {
	case last > *sma:
		return TrendUp
	case last < *sma:
		return TrendDown
	default:
		return TrendFlat
	}
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}
