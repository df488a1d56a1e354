package forecast

import "math"

// Project runs a monthly compounding simulation and returns one point per
// year, starting with an unmodified year-0 row. Each simulated month the
// top-up is added first and the whole balance then grows by one twelfth of
// the annual rate, so contributions made during a month earn that month's
// interest. Emitted amounts are rounded to whole units; the running state
// stays fractional between rows.
func Project(in Input) []Point {
	points := make([]Point, 0, in.Years+1)

	balance := in.Initial
	invested := in.Initial
	monthlyRate := in.AnnualRatePercent / 100 / 12

	points = append(points, snapshot(0, invested, balance))

	for year := 1; year <= in.Years; year++ {
		for month := 0; month < 12; month++ {
			balance += in.MonthlyTopUp
			invested += in.MonthlyTopUp
			balance *= 1 + monthlyRate
		}
		points = append(points, snapshot(year, invested, balance))
	}

	return points
}

func snapshot(year int, invested, balance float64) Point {
	return Point{
		Year:     year,
		Invested: int64(math.Round(invested)),
		Interest: int64(math.Round(balance - invested)),
		Total:    int64(math.Round(balance)),
	}
}
