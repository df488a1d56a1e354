package cash_flows

import (
	"testing"
	"time"

	"github.com/Alexeusss/T-Invest-Tracker/internal/clients/tinkoff"
	"github.com/Alexeusss/T-Invest-Tracker/pkg/money"
)

func op(date, opType, humanType, units string) tinkoff.Operation {
	return tinkoff.Operation{
		Date:          date,
		Type:          opType,
		OperationType: humanType,
		Payment:       money.Value{Currency: "rub", Units: units, Nano: 0},
		State:         "OPERATION_STATE_EXECUTED",
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		opType    string
		humanType string
		want      Bucket
	}{
		{"pay-in enum tag", "OPERATION_TYPE_PAY_IN", "", BucketContribution},
		{"human top-up label", "", "TopUp", BucketContribution},
		{"human tag unknown falls back to primary", "OPERATION_TYPE_PAY_IN", "Пополнение", BucketContribution},
		{"pay-out", "OPERATION_TYPE_PAY_OUT", "", BucketWithdrawal},
		{"input", "OPERATION_TYPE_INPUT", "", BucketContribution},
		{"output", "OPERATION_TYPE_OUTPUT", "", BucketWithdrawal},
		{"dividend", "OPERATION_TYPE_DIVIDEND", "Dividend", BucketIncome},
		{"coupon", "OPERATION_TYPE_COUPON", "", BucketIncome},
		{"tax", "OPERATION_TYPE_TAX", "", BucketFee},
		{"broker fee", "OPERATION_TYPE_BROKER_FEE", "", BucketFee},
		{"overnight", "OPERATION_TYPE_OVERNIGHT", "", BucketFee},
		{"buy", "OPERATION_TYPE_BUY", "Buy", BucketTrade},
		{"sell", "OPERATION_TYPE_SELL", "Sell", BucketTrade},
		{"case insensitive", "", "dividend", BucketIncome},
		{"unknown tag", "OPERATION_TYPE_MARGIN_CALL", "", BucketUnclassified},
		{"both empty", "", "", BucketUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tinkoff.Operation{Type: tt.opType, OperationType: tt.humanType})
			if got != tt.want {
				t.Errorf("Classify(%q, %q) = %s, want %s", tt.opType, tt.humanType, got, tt.want)
			}
		})
	}
}

func TestFlowRelevant(t *testing.T) {
	relevant := []Bucket{BucketContribution, BucketWithdrawal, BucketIncome, BucketFee}
	for _, b := range relevant {
		if !FlowRelevant(b) {
			t.Errorf("%s should be flow-relevant", b)
		}
	}
	if FlowRelevant(BucketTrade) {
		t.Error("trades swap cash for securities and are not flow-relevant")
	}
	if FlowRelevant(BucketUnclassified) {
		t.Error("unclassified operations are not flow-relevant")
	}
}

func TestContributions_DemoHistory(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	ops := []tinkoff.Operation{
		op(now.Add(-1*day).Format(time.RFC3339), "OPERATION_TYPE_BUY", "Buy", "-2800"),
		op(now.Add(-2*day).Format(time.RFC3339), "OPERATION_TYPE_DIVIDEND", "Dividend", "150"),
		op(now.Add(-5*day).Format(time.RFC3339), "OPERATION_TYPE_PAY_IN", "TopUp", "50000"),
		op(now.Add(-10*day).Format(time.RFC3339), "OPERATION_TYPE_SELL", "Sell", "12500"),
		op(now.Add(-365*day).Format(time.RFC3339), "OPERATION_TYPE_PAY_IN", "TopUp", "100000"),
	}

	stats := Contributions(ops, now)

	if stats.Total != 150000 {
		t.Errorf("Total = %v, want 150000", stats.Total)
	}
	// Account age is one year: elapsed months ≈ 365 / 30.44.
	wantMonths := 365.0 / 30.44
	if diff := stats.ElapsedMonths - wantMonths; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("ElapsedMonths = %v, want %v", stats.ElapsedMonths, wantMonths)
	}
	if stats.AveragePerMonth <= 0 || stats.AveragePerMonth >= 150000 {
		t.Errorf("AveragePerMonth = %v, want strictly between 0 and 150000", stats.AveragePerMonth)
	}
}

func TestContributions_Empty(t *testing.T) {
	stats := Contributions(nil, time.Now())

	if stats.ElapsedMonths != 1 {
		t.Errorf("ElapsedMonths = %v, want 1 for empty history", stats.ElapsedMonths)
	}
	if stats.AveragePerMonth != 0 || stats.Total != 0 {
		t.Errorf("empty history stats = %+v, want zeros", stats)
	}
}

func TestContributions_YoungAccountClampedToOneMonth(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	ops := []tinkoff.Operation{
		op(now.Add(-24*time.Hour).Format(time.RFC3339), "OPERATION_TYPE_PAY_IN", "", "30000"),
	}

	stats := Contributions(ops, now)
	if stats.ElapsedMonths != 1 {
		t.Errorf("ElapsedMonths = %v, want clamp to 1", stats.ElapsedMonths)
	}
	if stats.AveragePerMonth != 30000 {
		t.Errorf("AveragePerMonth = %v, want 30000", stats.AveragePerMonth)
	}
}

func TestNetFlowSeries_SingleMonthCollapses(t *testing.T) {
	ops := []tinkoff.Operation{
		op("2025-06-03T10:00:00Z", "OPERATION_TYPE_PAY_IN", "", "1000"),
		op("2025-06-12T10:00:00Z", "OPERATION_TYPE_DIVIDEND", "", "250"),
		op("2025-06-20T10:00:00Z", "OPERATION_TYPE_TAX", "", "-50"),
	}

	points := NetFlowSeries(ops)
	if len(points) != 1 {
		t.Fatalf("points = %d, want 1", len(points))
	}
	if points[0].Month != "2025-06" {
		t.Errorf("Month = %s, want 2025-06", points[0].Month)
	}
	if points[0].Cumulative != 1200 {
		t.Errorf("Cumulative = %v, want 1200", points[0].Cumulative)
	}
}

func TestNetFlowSeries_ChronologicalCumulative(t *testing.T) {
	// Out-of-order input; trades must not contribute.
	ops := []tinkoff.Operation{
		op("2025-08-01T00:00:00Z", "OPERATION_TYPE_PAY_OUT", "", "-500"),
		op("2025-05-10T00:00:00Z", "OPERATION_TYPE_PAY_IN", "", "1000"),
		op("2025-05-15T00:00:00Z", "OPERATION_TYPE_BUY", "", "-900"),
		op("2025-07-01T00:00:00Z", "OPERATION_TYPE_COUPON", "", "100"),
	}

	points := NetFlowSeries(ops)
	if len(points) != 3 {
		t.Fatalf("points = %d, want 3 (no gap filling for June)", len(points))
	}

	wantMonths := []string{"2025-05", "2025-07", "2025-08"}
	wantCumulative := []float64{1000, 1100, 600}
	for i := range wantMonths {
		if points[i].Month != wantMonths[i] {
			t.Errorf("point[%d].Month = %s, want %s", i, points[i].Month, wantMonths[i])
		}
		if points[i].Cumulative != wantCumulative[i] {
			t.Errorf("point[%d].Cumulative = %v, want %v", i, points[i].Cumulative, wantCumulative[i])
		}
	}
}

func TestNetFlowSeries_Empty(t *testing.T) {
	if points := NetFlowSeries(nil); len(points) != 0 {
		t.Errorf("points = %d, want 0", len(points))
	}
}

func TestSummarizeFlows(t *testing.T) {
	points := []FlowPoint{
		{Month: "2025-05", Net: 1000},
		{Month: "2025-06", Net: -200},
	}

	stats := SummarizeFlows(points)
	if stats.Count != 2 || stats.Mean != 400 || stats.Min != -200 || stats.Max != 1000 {
		t.Errorf("stats = %+v", stats)
	}
}
