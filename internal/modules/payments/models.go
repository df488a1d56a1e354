package payments

import "time"

// Payment event types
const (
	TypeDividend = "dividend"
	TypeCoupon   = "coupon"
)

// UpcomingPayment is one projected payout for one account's holding.
type UpcomingPayment struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	FIGI           string    `json:"figi"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	AmountPerUnit  float64   `json:"amount_per_unit"`
	Currency       string    `json:"currency"`
	Quantity       float64   `json:"quantity"`
	ProjectedTotal float64   `json:"projected_total"`
	Display        string    `json:"display"`
	AccountName    string    `json:"account_name"`
}

// Events groups the declared payout calendar per instrument.
type Events struct {
	Dividends map[string][]DividendEvent
	Coupons   map[string][]CouponEvent
}

// DividendEvent is a normalized declared dividend.
type DividendEvent struct {
	PaymentDate   time.Time
	AmountPerUnit float64
	Currency      string
}

// CouponEvent is a normalized declared coupon.
type CouponEvent struct {
	PaymentDate   time.Time
	AmountPerUnit float64
	Currency      string
	Number        int
}
