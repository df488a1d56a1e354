package portfolio

import (
	"github.com/Alexeusss/T-Invest-Tracker/internal/clients/tinkoff"
)

// Normalize maps one (account, position) pair into a NormalizedPosition.
// Pure function: missing optional fields default to 0, and the yield
// percentage is 0 whenever the cost-basis proxy is 0.
func Normalize(account tinkoff.Account, pos tinkoff.PortfolioPosition) NormalizedPosition {
	quantity := pos.Quantity.Float()
	currentValue := pos.CurrentPrice.Float() * quantity
	yield := pos.ExpectedYield.Float()

	return NormalizedPosition{
		FIGI:           pos.FIGI,
		InstrumentType: pos.InstrumentType,
		AccountID:      account.ID,
		AccountName:    account.Name,
		AccountType:    account.Type,
		Quantity:       quantity,
		CurrentValue:   currentValue,
		Yield:          yield,
		YieldPercent:   percentOfCostBasis(yield, currentValue),
		DayChange:      pos.DailyYield.Float(),
	}
}

// NormalizeAll flattens the per-account portfolio snapshots into one list,
// preserving account order. Accounts without a snapshot (failed fetches)
// contribute nothing.
func NormalizeAll(accounts []tinkoff.Account, portfolios map[string]*tinkoff.PortfolioResponse) []NormalizedPosition {
	var out []NormalizedPosition
	for _, account := range accounts {
		snapshot := portfolios[account.ID]
		if snapshot == nil {
			continue
		}
		for _, pos := range snapshot.Positions {
			out = append(out, Normalize(account, pos))
		}
	}
	return out
}

// percentOfCostBasis derives a percentage return from a yield and current
// value using the cost-basis proxy (current value minus yield). Defined as
// 0 when the denominator is 0 so non-finite values never reach rendering.
func percentOfCostBasis(yield, currentValue float64) float64 {
	costBasis := currentValue - yield
	if costBasis == 0 {
		return 0
	}
	return yield / costBasis * 100
}
