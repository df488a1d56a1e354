package portfolio

import (
	"math"
	"testing"

	"github.com/Alexeusss/T-Invest-Tracker/internal/clients/tinkoff"
	"github.com/Alexeusss/T-Invest-Tracker/pkg/money"
)

func rub(units string, nano int32) money.Value {
	return money.Value{Currency: "rub", Units: units, Nano: nano}
}

func qty(units string) money.Quotation {
	return money.Quotation{Units: units, Nano: 0}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalize(t *testing.T) {
	account := tinkoff.Account{ID: "acc-1", Name: "Брокерский счет", Type: "ACCOUNT_TYPE_TINKOFF"}

	daily := rub("15", 500000000)
	pos := tinkoff.PortfolioPosition{
		FIGI:           "BBG004730N88",
		InstrumentType: tinkoff.InstrumentTypeShare,
		Quantity:       qty("10"),
		CurrentPrice:   rub("280", 0),
		ExpectedYield:  qty("300"),
		DailyYield:     &daily,
	}

	got := Normalize(account, pos)

	if got.CurrentValue != 2800 {
		t.Errorf("CurrentValue = %v, want 2800", got.CurrentValue)
	}
	if got.Yield != 300 {
		t.Errorf("Yield = %v, want 300", got.Yield)
	}
	// 300 / (2800 - 300) * 100 = 12%
	if !almostEqual(got.YieldPercent, 12) {
		t.Errorf("YieldPercent = %v, want 12", got.YieldPercent)
	}
	if got.DayChange != 15.5 {
		t.Errorf("DayChange = %v, want 15.5", got.DayChange)
	}
	if got.AccountName != "Брокерский счет" {
		t.Errorf("AccountName = %q", got.AccountName)
	}
}

func TestNormalize_AbsentDailyYieldIsZero(t *testing.T) {
	got := Normalize(tinkoff.Account{ID: "a"}, tinkoff.PortfolioPosition{
		Quantity:      qty("1"),
		CurrentPrice:  rub("100", 0),
		ExpectedYield: qty("0"),
	})

	if got.DayChange != 0 {
		t.Errorf("DayChange = %v, want 0 for absent daily yield", got.DayChange)
	}
}

func TestNormalize_ZeroCostBasisYieldsZeroPercent(t *testing.T) {
	// currentVal == yield makes the cost-basis proxy exactly 0.
	got := Normalize(tinkoff.Account{ID: "a"}, tinkoff.PortfolioPosition{
		Quantity:      qty("1"),
		CurrentPrice:  rub("100", 0),
		ExpectedYield: qty("100"),
	})

	if got.YieldPercent != 0 {
		t.Errorf("YieldPercent = %v, want 0 on zero denominator", got.YieldPercent)
	}
	if math.IsNaN(got.YieldPercent) || math.IsInf(got.YieldPercent, 0) {
		t.Error("YieldPercent must be finite")
	}
}

// demoPositions mirrors the five-position demo portfolio spread over two
// accounts.
func demoPositions() []NormalizedPosition {
	broker := tinkoff.Account{ID: "demo_1", Name: "Брокерский счет", Type: "ACCOUNT_TYPE_TINKOFF"}
	iis := tinkoff.Account{ID: "demo_2", Name: "ИИС", Type: "ACCOUNT_TYPE_TINKOFF_IIS"}

	sberDaily := rub("15", 500000000)
	gazpDaily := rub("-50", 0)
	lkohDaily := rub("-10", 0)
	tcsDaily := rub("120", 0)
	bondDaily := rub("1", 0)

	return []NormalizedPosition{
		Normalize(broker, tinkoff.PortfolioPosition{
			FIGI: "BBG004730N88", InstrumentType: tinkoff.InstrumentTypeShare,
			Quantity: qty("10"), CurrentPrice: rub("280", 0), ExpectedYield: qty("300"), DailyYield: &sberDaily,
		}),
		Normalize(broker, tinkoff.PortfolioPosition{
			FIGI: "BBG004731489", InstrumentType: tinkoff.InstrumentTypeShare,
			Quantity: qty("5"), CurrentPrice: rub("4200", 0), ExpectedYield: qty("1000"), DailyYield: &gazpDaily,
		}),
		Normalize(broker, tinkoff.PortfolioPosition{
			FIGI: "BBG000900", InstrumentType: tinkoff.InstrumentTypeShare,
			Quantity: qty("100"), CurrentPrice: rub("130", 0), ExpectedYield: qty("-2000"), DailyYield: &lkohDaily,
		}),
		Normalize(iis, tinkoff.PortfolioPosition{
			FIGI: "TCS00A107J11", InstrumentType: tinkoff.InstrumentTypeShare,
			Quantity: qty("50"), CurrentPrice: rub("2150", 0), ExpectedYield: qty("7500"), DailyYield: &tcsDaily,
		}),
		Normalize(iis, tinkoff.PortfolioPosition{
			FIGI: "BBG00T22ZKV2", InstrumentType: tinkoff.InstrumentTypeBond,
			Quantity: qty("10"), CurrentPrice: rub("960", 0), ExpectedYield: qty("100"), DailyYield: &bondDaily,
		}),
	}
}

func TestReduce_GrandTotals(t *testing.T) {
	summary := Reduce(demoPositions())

	// 2800 + 21000 + 13000 + 107500 + 9600
	if !almostEqual(summary.TotalValue, 153900) {
		t.Errorf("TotalValue = %v, want 153900", summary.TotalValue)
	}
	// 300 + 1000 - 2000 + 7500 + 100
	if !almostEqual(summary.TotalYield, 6900) {
		t.Errorf("TotalYield = %v, want 6900", summary.TotalYield)
	}
	// 15.5 - 50 - 10 + 120 + 1
	if !almostEqual(summary.DayChange, 76.5) {
		t.Errorf("DayChange = %v, want 76.5", summary.DayChange)
	}
	// 6900 / (153900 - 6900) * 100
	if !almostEqual(summary.YieldPercent, 6900.0/147000.0*100) {
		t.Errorf("YieldPercent = %v", summary.YieldPercent)
	}

	if summary.TotalValue <= 0 {
		t.Error("demo portfolio must produce a positive grand total")
	}
}

func TestReduce_OrderIndependent(t *testing.T) {
	positions := demoPositions()
	forward := Reduce(positions)

	reversed := make([]NormalizedPosition, len(positions))
	for i, pos := range positions {
		reversed[len(positions)-1-i] = pos
	}
	backward := Reduce(reversed)

	if !almostEqual(forward.TotalValue, backward.TotalValue) ||
		!almostEqual(forward.TotalYield, backward.TotalYield) ||
		!almostEqual(forward.DayChange, backward.DayChange) {
		t.Errorf("totals depend on grouping order: %+v vs %+v", forward, backward)
	}
}

func TestReduce_PerAccountSubtotals(t *testing.T) {
	summary := Reduce(demoPositions())

	if len(summary.Accounts) != 2 {
		t.Fatalf("accounts = %d, want 2", len(summary.Accounts))
	}

	broker := summary.Accounts[0]
	if broker.AccountID != "demo_1" || broker.Positions != 3 {
		t.Errorf("broker subtotal = %+v", broker)
	}
	if !almostEqual(broker.Value, 36800) { // 2800 + 21000 + 13000
		t.Errorf("broker value = %v, want 36800", broker.Value)
	}
	if !almostEqual(broker.Yield, -700) { // 300 + 1000 - 2000
		t.Errorf("broker yield = %v, want -700", broker.Yield)
	}

	iis := summary.Accounts[1]
	if !almostEqual(iis.Value, 117100) || !almostEqual(iis.Yield, 7600) {
		t.Errorf("iis subtotal = %+v", iis)
	}
}

func TestReduce_EmptyInput(t *testing.T) {
	summary := Reduce(nil)

	if summary.TotalValue != 0 || summary.YieldPercent != 0 || summary.DayChangePercent != 0 {
		t.Errorf("empty reduce = %+v, want zeros", summary)
	}
	if len(summary.Accounts) != 0 {
		t.Error("empty input must produce no account subtotals")
	}
}

func TestNormalizeAll_SkipsFailedAccounts(t *testing.T) {
	accounts := []tinkoff.Account{
		{ID: "a1", Name: "First"},
		{ID: "a2", Name: "Second"},
	}
	portfolios := map[string]*tinkoff.PortfolioResponse{
		"a1": {Positions: []tinkoff.PortfolioPosition{{
			Quantity: qty("1"), CurrentPrice: rub("10", 0), ExpectedYield: qty("1"),
		}}},
		// a2 fetch failed: no snapshot.
	}

	got := NormalizeAll(accounts, portfolios)
	if len(got) != 1 {
		t.Fatalf("positions = %d, want 1", len(got))
	}
	if got[0].AccountID != "a1" {
		t.Errorf("AccountID = %q", got[0].AccountID)
	}
}

func TestRankMovers_DemoOrdering(t *testing.T) {
	movers := RankMovers(demoPositions())

	wantGainers := []string{"BBG004730N88", "TCS00A107J11", "BBG004731489", "BBG00T22ZKV2"}
	if len(movers.Gainers) != len(wantGainers) {
		t.Fatalf("gainers = %d, want %d", len(movers.Gainers), len(wantGainers))
	}
	for i, figi := range wantGainers {
		if movers.Gainers[i].FIGI != figi {
			t.Errorf("gainer[%d] = %s, want %s", i, movers.Gainers[i].FIGI, figi)
		}
	}

	if len(movers.Losers) != 1 || movers.Losers[0].FIGI != "BBG000900" {
		t.Fatalf("losers = %+v, want single LUKOIL entry", movers.Losers)
	}
	if movers.Losers[0].Yield >= 0 {
		t.Error("loser entry must carry a negative yield")
	}
}

func TestRankMovers_ZeroYieldExcluded(t *testing.T) {
	positions := []NormalizedPosition{
		{FIGI: "A", Yield: 100, YieldPercent: 5},
		{FIGI: "B", Yield: 0, YieldPercent: 0},
		{FIGI: "C", Yield: -100, YieldPercent: -5},
	}

	movers := RankMovers(positions)
	if len(movers.Gainers) != 1 || len(movers.Losers) != 1 {
		t.Fatalf("gainers=%d losers=%d, want 1/1", len(movers.Gainers), len(movers.Losers))
	}
}

func TestRankMovers_LosersWorstFirst(t *testing.T) {
	positions := []NormalizedPosition{
		{FIGI: "mild", Yield: -10, YieldPercent: -1},
		{FIGI: "bad", Yield: -500, YieldPercent: -40},
		{FIGI: "worse", Yield: -200, YieldPercent: -60},
	}

	movers := RankMovers(positions)
	want := []string{"worse", "bad", "mild"}
	for i, figi := range want {
		if movers.Losers[i].FIGI != figi {
			t.Errorf("loser[%d] = %s, want %s", i, movers.Losers[i].FIGI, figi)
		}
	}
}

func TestRankMovers_DoesNotMutateInput(t *testing.T) {
	positions := []NormalizedPosition{
		{FIGI: "A", Yield: 1, YieldPercent: 1},
		{FIGI: "B", Yield: 2, YieldPercent: 2},
	}

	RankMovers(positions)
	if positions[0].FIGI != "A" || positions[1].FIGI != "B" {
		t.Error("input slice was reordered")
	}
}
