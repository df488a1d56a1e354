package tinkoff

import (
	"strconv"
	"time"

	"github.com/Alexeusss/T-Invest-Tracker/pkg/money"
)

// Demo fixtures: a two-account portfolio (standard brokerage + IIS) with
// five positions, a short operation history, one declared dividend and two
// coupons. Event dates are generated relative to the current time so the
// payment schedule always has future entries.

const (
	demoAccountBroker = "demo_1"
	demoAccountIIS    = "demo_2"

	demoFigiSber   = "BBG004730N88"
	demoFigiGazp   = "BBG004731489"
	demoFigiLkoh   = "BBG000900"
	demoFigiTbank  = "TCS00A107J11"
	demoFigiOFZ    = "BBG00T22ZKV2"
)

var demoInstrumentNames = map[string]string{
	demoFigiSber:   "Sberbank",
	demoFigiGazp:   "Gazprom",
	demoFigiLkoh:   "LUKOIL",
	demoFigiTbank:  "T-Bank",
	"BBG004S685M3": "Yandex",
	"BBG004S68CP5": "Norilsk Nickel",
	"BBG000W325F7": "Rosneft",
	"BBG004RVFCY3": "Magnit",
	"BBG004S68598": "Tatneft",
	"BBG000QF1Q17": "Surgutneftegas",
	demoFigiOFZ:    "OFZ 26238",
}

func rub(units string, nano int32) money.Value {
	return money.Value{Currency: "rub", Units: units, Nano: nano}
}

func rubPtr(units string, nano int32) *money.Value {
	v := rub(units, nano)
	return &v
}

func qty(units string, nano int32) money.Quotation {
	return money.Quotation{Units: units, Nano: nano}
}

func demoAccounts() *AccountsResponse {
	return &AccountsResponse{
		Accounts: []Account{
			{ID: demoAccountBroker, Name: "Брокерский счет", Type: "ACCOUNT_TYPE_TINKOFF", Status: "ACCOUNT_STATUS_OPEN"},
			{ID: demoAccountIIS, Name: "ИИС", Type: "ACCOUNT_TYPE_TINKOFF_IIS", Status: "ACCOUNT_STATUS_OPEN"},
		},
	}
}

func demoPositions() []PortfolioPosition {
	return []PortfolioPosition{
		{
			FIGI:                 demoFigiSber,
			InstrumentType:       InstrumentTypeShare,
			Quantity:             qty("10", 0),
			AveragePositionPrice: rub("250", 0),
			CurrentPrice:         rub("280", 0),
			ExpectedYield:        qty("300", 0),
			DailyYield:           rubPtr("15", 500000000),
			InstrumentUID:        "sber-id",
		},
		{
			FIGI:                 demoFigiGazp,
			InstrumentType:       InstrumentTypeShare,
			Quantity:             qty("5", 0),
			AveragePositionPrice: rub("4000", 0),
			CurrentPrice:         rub("4200", 0),
			ExpectedYield:        qty("1000", 0),
			DailyYield:           rubPtr("-50", 0),
			InstrumentUID:        "gazp-id",
		},
		{
			FIGI:                 demoFigiLkoh,
			InstrumentType:       InstrumentTypeShare,
			Quantity:             qty("100", 0),
			AveragePositionPrice: rub("150", 0),
			CurrentPrice:         rub("130", 0),
			ExpectedYield:        qty("-2000", 0),
			DailyYield:           rubPtr("-10", 0),
			InstrumentUID:        "bad-stock",
		},
		{
			FIGI:                 demoFigiTbank,
			InstrumentType:       InstrumentTypeShare,
			Quantity:             qty("50", 0),
			AveragePositionPrice: rub("2000", 0),
			CurrentPrice:         rub("2150", 0),
			ExpectedYield:        qty("7500", 0),
			DailyYield:           rubPtr("120", 0),
			InstrumentUID:        "tcs-id",
		},
		{
			FIGI:                 demoFigiOFZ,
			InstrumentType:       InstrumentTypeBond,
			Quantity:             qty("10", 0),
			AveragePositionPrice: rub("950", 0),
			CurrentPrice:         rub("960", 0),
			ExpectedYield:        qty("100", 0),
			DailyYield:           rubPtr("1", 0),
			InstrumentUID:        "bond-id",
		},
	}
}

func demoPortfolio(accountID string) *PortfolioResponse {
	p := &PortfolioResponse{
		TotalAmountShares:     rub("150000", 0),
		TotalAmountBonds:      rub("50000", 0),
		TotalAmountEtf:        rub("25000", 0),
		TotalAmountCurrencies: rub("10000", 0),
		TotalAmountFutures:    rub("0", 0),
		ExpectedYield:         qty("12500", 500000000),
		Positions:             demoPositions(),
	}

	// The IIS account gets slightly different numbers for realism.
	if accountID == demoAccountIIS {
		p.TotalAmountShares = rub("80000", 0)
		p.TotalAmountBonds = rub("120000", 0)
		p.ExpectedYield = qty("18000", 0)
		for i := range p.Positions {
			p.Positions[i].DailyYield = rubPtr("42", 0)
		}
	}

	return p
}

func demoOperationList() []Operation {
	now := time.Now()
	day := 24 * time.Hour

	return []Operation{
		{
			ID:            "op1",
			Date:          now.Add(-1 * day).Format(time.RFC3339),
			Type:          "OPERATION_TYPE_BUY",
			OperationType: "Buy",
			State:         "OPERATION_STATE_EXECUTED",
			Currency:      "rub",
			Payment:       rub("-2800", 0),
			FIGI:          demoFigiSber,
			InstrumentType: InstrumentTypeShare,
		},
		{
			ID:            "op2",
			Date:          now.Add(-2 * day).Format(time.RFC3339),
			Type:          "OPERATION_TYPE_DIVIDEND",
			OperationType: "Dividend",
			State:         "OPERATION_STATE_EXECUTED",
			Currency:      "rub",
			Payment:       rub("150", 0),
			FIGI:          demoFigiGazp,
			InstrumentType: InstrumentTypeShare,
		},
		{
			ID:            "op3",
			Date:          now.Add(-5 * day).Format(time.RFC3339),
			Type:          "OPERATION_TYPE_PAY_IN",
			OperationType: "TopUp",
			State:         "OPERATION_STATE_EXECUTED",
			Currency:      "rub",
			Payment:       rub("50000", 0),
		},
		{
			ID:            "op4",
			Date:          now.Add(-10 * day).Format(time.RFC3339),
			Type:          "OPERATION_TYPE_SELL",
			OperationType: "Sell",
			State:         "OPERATION_STATE_EXECUTED",
			Currency:      "rub",
			Payment:       rub("12500", 0),
			FIGI:          demoFigiTbank,
			InstrumentType: InstrumentTypeShare,
		},
		{
			ID:            "op5_old",
			Date:          now.Add(-365 * day).Format(time.RFC3339),
			Type:          "OPERATION_TYPE_PAY_IN",
			OperationType: "TopUp",
			State:         "OPERATION_STATE_EXECUTED",
			Currency:      "rub",
			Payment:       rub("100000", 0),
		},
	}
}

func demoOperations(from time.Time) *OperationsResponse {
	all := demoOperationList()

	var filtered []Operation
	for _, op := range all {
		if ts, err := time.Parse(time.RFC3339, op.Date); err == nil && !ts.Before(from) {
			filtered = append(filtered, op)
		}
	}

	// An over-narrow window still demos something useful.
	if len(filtered) == 0 {
		filtered = all
	}

	return &OperationsResponse{Operations: filtered}
}

func demoInstrumentName(figi string) string {
	if name, ok := demoInstrumentNames[figi]; ok {
		return name
	}
	return figi
}

func demoDividends(figi string) *DividendsResponse {
	if figi != demoFigiSber {
		return &DividendsResponse{}
	}

	now := time.Now()
	return &DividendsResponse{
		Dividends: []Dividend{
			{
				DividendNet:  rub("30", 0),
				PaymentDate:  now.Add(45 * 24 * time.Hour).Format(time.RFC3339),
				DeclaredDate: now.Format(time.RFC3339),
				RecordDate:   now.Format(time.RFC3339),
				YieldValue:   qty("0", 0),
			},
		},
	}
}

func demoCoupons(figi string) *CouponsResponse {
	if figi != demoFigiOFZ {
		return &CouponsResponse{}
	}

	now := time.Now()
	return &CouponsResponse{
		Events: []Coupon{
			{
				FIGI:         figi,
				CouponDate:   now.Add(20 * 24 * time.Hour).Format(time.RFC3339),
				CouponNumber: 1,
				FixDate:      now.Format(time.RFC3339),
				PayOneBond:   rub("35", 0),
				CouponType:   "COUPON_TYPE_FIX",
			},
			{
				FIGI:         figi,
				CouponDate:   now.Add(200 * 24 * time.Hour).Format(time.RFC3339),
				CouponNumber: 2,
				FixDate:      now.Format(time.RFC3339),
				PayOneBond:   rub("35", 0),
				CouponType:   "COUPON_TYPE_FIX",
			},
		},
	}
}

func demoCandles() *CandlesResponse {
	now := time.Now()
	candles := make([]Candle, 30)

	// A gentle upward drift; deterministic so demo charts are stable.
	for i := range candles {
		base := int64(100 + i/2)
		units := strconv.FormatInt(base, 10)
		candles[i] = Candle{
			Open:  money.Value{Units: units, Nano: 0},
			Close: money.Value{Units: units, Nano: 0},
			High:  money.Value{Units: strconv.FormatInt(base+1, 10), Nano: 0},
			Low:   money.Value{Units: strconv.FormatInt(base-1, 10), Nano: 0},
			Time:  now.Add(-time.Duration(30-i) * 24 * time.Hour).Format(time.RFC3339),
		}
	}

	return &CandlesResponse{Candles: candles}
}
