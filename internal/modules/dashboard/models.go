package dashboard

import (
	"time"

	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/cash_flows"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/forecast"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/payments"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/portfolio"
	"github.com/Alexeusss/T-Invest-Tracker/pkg/formulas"
)

// Snapshot is one complete refresh of everything the dashboard shows.
type Snapshot struct {
	GeneratedAt   time.Time                    `json:"generated_at"`
	DemoMode      bool                         `json:"demo_mode"`
	Summary       portfolio.Summary            `json:"summary"`
	Movers        portfolio.Movers             `json:"movers"`
	NetFlows      []cash_flows.FlowPoint       `json:"net_flows"`
	FlowStats     formulas.SeriesStats         `json:"flow_stats"`
	Contributions cash_flows.ContributionStats `json:"contributions"`
	Forecast      []forecast.Point             `json:"forecast"`
	Payments      []payments.UpcomingPayment   `json:"payments"`
}

// OperationView is one classified ledger entry for the operations list.
type OperationView struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	Type        string           `json:"type"`
	Bucket      cash_flows.Bucket `json:"bucket"`
	Amount      float64          `json:"amount"`
	Display     string           `json:"display"`
	Currency    string           `json:"currency"`
	AccountName string           `json:"account_name"`
	FIGI        string           `json:"figi,omitempty"`
}
