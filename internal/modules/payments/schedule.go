package payments

import (
	"fmt"
	"sort"
	"time"

	"github.com/Alexeusss/T-Invest-Tracker/internal/clients/tinkoff"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/portfolio"
	"github.com/Alexeusss/T-Invest-Tracker/pkg/money"
)

// BuildSchedule crosses the declared payout calendar with current holdings
// and returns one row per future event per account holding the instrument,
// sorted by payment date. Events at or before now are dropped. The result
// depends only on the inputs, so rebuilding after a refresh replaces the
// previous schedule rather than appending to it.
func BuildSchedule(positions []portfolio.NormalizedPosition, events Events, names map[string]string, now time.Time) []UpcomingPayment {
	schedule := make([]UpcomingPayment, 0)

	for _, pos := range positions {
		if pos.Quantity <= 0 {
			continue
		}

		for _, div := range events.Dividends[pos.FIGI] {
			if !div.PaymentDate.After(now) {
				continue
			}
			total := div.AmountPerUnit * pos.Quantity
			schedule = append(schedule, UpcomingPayment{
				ID:             paymentID(TypeDividend, pos.FIGI, pos.AccountID, div.PaymentDate),
				Date:           div.PaymentDate,
				FIGI:           pos.FIGI,
				Name:           instrumentName(names, pos.FIGI),
				Type:           TypeDividend,
				AmountPerUnit:  div.AmountPerUnit,
				Currency:       div.Currency,
				Quantity:       pos.Quantity,
				ProjectedTotal: total,
				Display:        money.Format(total, div.Currency),
				AccountName:    pos.AccountName,
			})
		}

		for _, cpn := range events.Coupons[pos.FIGI] {
			if !cpn.PaymentDate.After(now) {
				continue
			}
			total := cpn.AmountPerUnit * pos.Quantity
			schedule = append(schedule, UpcomingPayment{
				ID:             paymentID(TypeCoupon, pos.FIGI, pos.AccountID, cpn.PaymentDate),
				Date:           cpn.PaymentDate,
				FIGI:           pos.FIGI,
				Name:           instrumentName(names, pos.FIGI),
				Type:           TypeCoupon,
				AmountPerUnit:  cpn.AmountPerUnit,
				Currency:       cpn.Currency,
				Quantity:       pos.Quantity,
				ProjectedTotal: total,
				Display:        money.Format(total, cpn.Currency),
				AccountName:    pos.AccountName,
			})
		}
	}

	sort.SliceStable(schedule, func(i, j int) bool {
		return schedule[i].Date.Before(schedule[j].Date)
	})

	return schedule
}

func paymentID(kind, figi, accountID string, date time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s", kind, figi, accountID, date.UTC().Format("2006-01-02"))
}

func instrumentName(names map[string]string, figi string) string {
	if name, ok := names[figi]; ok && name != "" {
		return name
	}
	return figi
}

// NormalizeDividends converts raw API dividend records, skipping entries
// with unparseable payment dates.
func NormalizeDividends(raw []tinkoff.Dividend) []DividendEvent {
	events := make([]DividendEvent, 0, len(raw))
	for _, d := range raw {
		date, err := time.Parse(time.RFC3339, d.PaymentDate)
		if err != nil {
			continue
		}
		events = append(events, DividendEvent{
			PaymentDate:   date,
			AmountPerUnit: d.DividendNet.Float(),
			Currency:      d.DividendNet.Currency,
		})
	}
	return events
}

// NormalizeCoupons converts raw API coupon records.
func NormalizeCoupons(raw []tinkoff.Coupon) []CouponEvent {
	events := make([]CouponEvent, 0, len(raw))
	for _, c := range raw {
		date, err := time.Parse(time.RFC3339, c.CouponDate)
		if err != nil {
			continue
		}
		events = append(events, CouponEvent{
			PaymentDate:   date,
			AmountPerUnit: c.PayOneBond.Float(),
			Currency:      c.PayOneBond.Currency,
			Number:        c.CouponNumber,
		})
	}
	return events
}
