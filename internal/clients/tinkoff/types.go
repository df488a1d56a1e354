package tinkoff

import (
	"github.com/Alexeusss/T-Invest-Tracker/pkg/money"
)

// Instrument classifications as reported by the API.
const (
	InstrumentTypeShare    = "share"
	InstrumentTypeBond     = "bond"
	InstrumentTypeEtf      = "etf"
	InstrumentTypeCurrency = "currency"
	InstrumentTypeFuture   = "futures"
)

// Account is a brokerage account
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// AccountsResponse is the UsersService/GetAccounts payload
type AccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

// PortfolioPosition is one holding inside an account portfolio.
// DailyYield is optional: older API versions omit it, and an absent value
// normalizes to 0 in all reductions.
type PortfolioPosition struct {
	FIGI                 string          `json:"figi"`
	InstrumentType       string          `json:"instrumentType"`
	Quantity             money.Quotation `json:"quantity"`
	AveragePositionPrice money.Value     `json:"averagePositionPrice"`
	CurrentPrice         money.Value     `json:"currentPrice"`
	ExpectedYield        money.Quotation `json:"expectedYield"`
	DailyYield           *money.Value    `json:"dailyYield,omitempty"`
	InstrumentUID        string          `json:"instrumentUid"`
}

// PortfolioResponse is the OperationsService/GetPortfolio payload.
// The per-class totals are advisory; aggregates are recomputed from the
// position list.
type PortfolioResponse struct {
	TotalAmountShares     money.Value         `json:"totalAmountShares"`
	TotalAmountBonds      money.Value         `json:"totalAmountBonds"`
	TotalAmountEtf        money.Value         `json:"totalAmountEtf"`
	TotalAmountCurrencies money.Value         `json:"totalAmountCurrencies"`
	TotalAmountFutures    money.Value         `json:"totalAmountFutures"`
	ExpectedYield         money.Quotation     `json:"expectedYield"`
	Positions             []PortfolioPosition `json:"positions"`
}

// Operation is an immutable ledger entry. Payment is signed: negative for
// outflows (purchases), positive for inflows (sales, dividends, deposits).
type Operation struct {
	ID            string      `json:"id"`
	Currency      string      `json:"currency"`
	Payment       money.Value `json:"payment"`
	State         string      `json:"state"`
	FIGI          string      `json:"figi,omitempty"`
	InstrumentType string     `json:"instrumentType,omitempty"`
	Date          string      `json:"date"` // RFC3339
	Type          string      `json:"type"`
	OperationType string      `json:"operationType"`
}

// OperationsResponse is the OperationsService/GetOperations payload
type OperationsResponse struct {
	Operations []Operation `json:"operations"`
}

// Dividend is one declared dividend event for a share
type Dividend struct {
	DividendNet  money.Value     `json:"dividendNet"`
	PaymentDate  string          `json:"paymentDate"`
	DeclaredDate string          `json:"declaredDate"`
	RecordDate   string          `json:"recordDate"`
	YieldValue   money.Quotation `json:"yieldValue"`
}

// DividendsResponse is the InstrumentsService/GetDividends payload
type DividendsResponse struct {
	Dividends []Dividend `json:"dividends"`
}

// Coupon is one declared coupon event for a bond
type Coupon struct {
	FIGI         string      `json:"figi"`
	CouponDate   string      `json:"couponDate"`
	CouponNumber int         `json:"couponNumber"`
	FixDate      string      `json:"fixDate"`
	PayOneBond   money.Value `json:"payOneBond"`
	CouponType   string      `json:"couponType"`
}

// CouponsResponse is the InstrumentsService/GetBondCoupons payload
type CouponsResponse struct {
	Events []Coupon `json:"events"`
}

// Candle is one daily OHLC bar
type Candle struct {
	Open  money.Value `json:"open"`
	Close money.Value `json:"close"`
	High  money.Value `json:"high"`
	Low   money.Value `json:"low"`
	Time  string      `json:"time"`
}

// CandlesResponse is the MarketDataService/GetCandles payload
type CandlesResponse struct {
	Candles []Candle `json:"candles"`
}

// instrumentResponse is the InstrumentsService/GetInstrumentBy payload
type instrumentResponse struct {
	Instrument struct {
		Name string `json:"name"`
	} `json:"instrument"`
}
