package cash_flows

// Bucket is the classification of a ledger operation.
type Bucket string

const (
	BucketContribution Bucket = "contribution" // money paid into the account
	BucketWithdrawal   Bucket = "withdrawal"   // money taken out
	BucketIncome       Bucket = "income"       // dividends, coupons
	BucketFee          Bucket = "fee"          // taxes, broker fees, overnight charges
	BucketTrade        Bucket = "trade"        // buys and sells
	BucketUnclassified Bucket = "unclassified" // default for unknown tags
)

// FlowPoint is one month of the cumulative net-flow series.
type FlowPoint struct {
	Month      string  `json:"month"` // YYYY-MM
	Net        float64 `json:"net"`
	Cumulative float64 `json:"cumulative"`
}

// ContributionStats summarizes pay-in history for the forecast.
type ContributionStats struct {
	Total           float64 `json:"total"`
	ElapsedMonths   float64 `json:"elapsed_months"`
	AveragePerMonth float64 `json:"average_per_month"`
}
