package portfolio

// Reduce folds normalized positions into cross-account aggregates and
// per-account subtotals. Accounts with zero positions never appear in the
// breakdown. Pure function of its input; summation order does not affect
// the totals.
func Reduce(positions []NormalizedPosition) Summary {
	summary := Summary{}

	byAccount := make(map[string]*AccountSummary)
	var accountOrder []string

	for _, pos := range positions {
		summary.TotalValue += pos.CurrentValue
		summary.TotalYield += pos.Yield
		summary.DayChange += pos.DayChange

		acc, ok := byAccount[pos.AccountID]
		if !ok {
			acc = &AccountSummary{
				AccountID:   pos.AccountID,
				AccountName: pos.AccountName,
				AccountType: pos.AccountType,
			}
			byAccount[pos.AccountID] = acc
			accountOrder = append(accountOrder, pos.AccountID)
		}
		acc.Value += pos.CurrentValue
		acc.Yield += pos.Yield
		acc.Positions++
	}

	summary.YieldPercent = percentOfCostBasis(summary.TotalYield, summary.TotalValue)
	summary.DayChangePercent = percentOfCostBasis(summary.DayChange, summary.TotalValue)

	for _, id := range accountOrder {
		acc := byAccount[id]
		acc.YieldPercent = percentOfCostBasis(acc.Yield, acc.Value)
		summary.Accounts = append(summary.Accounts, *acc)
	}

	return summary
}
