package forecast

// Point is one row of the compounding projection. Amounts are whole
// currency units.
type Point struct {
	Year     int   `json:"year"`
	Invested int64 `json:"invested"`
	Interest int64 `json:"interest"`
	Total    int64 `json:"total"`
}

// Input holds the projection parameters.
type Input struct {
	Initial           float64 `json:"initial"`
	MonthlyTopUp      float64 `json:"monthly_top_up"`
	Years             int     `json:"years"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
}
