package portfolio

// NormalizedPosition is a derived, read-only view of one holding: the raw
// API position flattened to floats, tagged with its owning account.
type NormalizedPosition struct {
	FIGI           string  `json:"figi"`
	InstrumentType string  `json:"instrument_type"`
	AccountID      string  `json:"account_id"`
	AccountName    string  `json:"account_name"`
	AccountType    string  `json:"account_type"`
	Quantity       float64 `json:"quantity"`
	CurrentValue   float64 `json:"current_value"`
	Yield          float64 `json:"yield"`
	YieldPercent   float64 `json:"yield_percent"`
	DayChange      float64 `json:"day_change"`
}

// AccountSummary is the per-account subtotal block
type AccountSummary struct {
	AccountID    string  `json:"account_id"`
	AccountName  string  `json:"account_name"`
	AccountType  string  `json:"account_type"`
	Value        float64 `json:"value"`
	Yield        float64 `json:"yield"`
	YieldPercent float64 `json:"yield_percent"`
	Positions    int     `json:"positions"`
}

// Summary holds the cross-account aggregates
type Summary struct {
	TotalValue       float64          `json:"total_value"`
	TotalYield       float64          `json:"total_yield"`
	YieldPercent     float64          `json:"yield_percent"`
	DayChange        float64          `json:"day_change"`
	DayChangePercent float64          `json:"day_change_percent"`
	Accounts         []AccountSummary `json:"accounts"`
}

// Movers holds the ranked gainer and loser lists
type Movers struct {
	Gainers []NormalizedPosition `json:"gainers"`
	Losers  []NormalizedPosition `json:"losers"`
}
