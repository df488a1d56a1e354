package formulas

import (
	"gonum.org/v1/gonum/stat"
)

// SeriesStats summarizes a numeric series (e.g. per-month net cash flows).
type SeriesStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Summarize computes summary statistics for a series. An empty series
// yields a zero-valued summary rather than NaNs.
func Summarize(data []float64) SeriesStats {
	if len(data) == 0 {
		return SeriesStats{}
	}

	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return SeriesStats{
		Mean:   Mean(data),
		StdDev: StdDev(data),
		Min:    min,
		Max:    max,
		Count:  len(data),
	}
}
