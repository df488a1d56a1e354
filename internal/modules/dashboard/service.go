package dashboard

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Alexeusss/T-Invest-Tracker/internal/clients/tinkoff"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/cash_flows"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/forecast"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/instruments"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/payments"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/portfolio"
	"github.com/Alexeusss/T-Invest-Tracker/pkg/money"
)

// Forecast defaults applied when projecting from the live portfolio.
const (
	forecastYears      = 30
	forecastAnnualRate = 12.0
	// Operations are fetched from well before any retail account existed
	// so the contribution average sees the full history.
	operationsEpochYear = 2000
)

// Service orchestrates a full data refresh and serves the latest snapshot.
// Reads and refreshes may run concurrently; the snapshot swaps atomically
// under the lock.
type Service struct {
	mu        sync.RWMutex
	snapshot  *Snapshot
	refreshMu sync.Mutex

	source      *tinkoff.Source
	instruments *instruments.Service
	payments    *payments.Service
	lookahead   time.Duration
	baseURL     string
	log         zerolog.Logger
}

// NewService creates a new dashboard service
func NewService(source *tinkoff.Source, instrumentsSvc *instruments.Service, paymentsSvc *payments.Service, lookahead time.Duration, baseURL string, log zerolog.Logger) *Service {
	return &Service{
		source:      source,
		instruments: instrumentsSvc,
		payments:    paymentsSvc,
		lookahead:   lookahead,
		baseURL:     baseURL,
		log:         log.With().Str("service", "dashboard").Logger(),
	}
}

// Snapshot returns the latest snapshot, or false if no refresh has
// completed yet.
func (s *Service) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return Snapshot{}, false
	}
	return *s.snapshot, true
}

// SetToken swaps the API client for a new token and refreshes.
func (s *Service) SetToken(token string) {
	client := tinkoff.NewClient(s.baseURL, token, s.log)
	s.source.Swap(client)
	s.log.Info().Bool("demo", client.IsDemo()).Msg("API client replaced")

	if err := s.Refresh(); err != nil {
		s.log.Error().Err(err).Msg("Refresh after token change failed")
	}
}

// Refresh rebuilds the snapshot from the broker API. Accounts whose
// portfolio or ledger lookup fails are skipped with a warning; the refresh
// fails outright only when the account list itself cannot be fetched.
func (s *Service) Refresh() error {
	// One refresh at a time; the cron job and POST /api/refresh may race.
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	started := time.Now()
	client := s.source.Client()

	accountsResp, err := client.GetAccounts()
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	accounts := accountsResp.Accounts

	portfolios := make([]*tinkoff.PortfolioResponse, len(accounts))
	operations := make([][]tinkoff.Operation, len(accounts))
	opsFrom := time.Date(operationsEpochYear, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	var g errgroup.Group
	for i := range accounts {
		i := i
		g.Go(func() error {
			resp, err := client.GetPortfolio(accounts[i].ID)
			if err != nil {
				s.log.Warn().Err(err).Str("account", accounts[i].ID).Msg("Failed to fetch portfolio")
				return nil
			}
			portfolios[i] = resp
			return nil
		})
		g.Go(func() error {
			resp, err := client.GetOperations(accounts[i].ID, opsFrom, now)
			if err != nil {
				s.log.Warn().Err(err).Str("account", accounts[i].ID).Msg("Failed to fetch operations")
				return nil
			}
			operations[i] = resp.Operations
			return nil
		})
	}
	g.Wait()

	byAccount := make(map[string]*tinkoff.PortfolioResponse, len(accounts))
	allOps := make([]tinkoff.Operation, 0)
	fetched := 0
	for i := range accounts {
		if portfolios[i] != nil {
			fetched++
		}
		byAccount[accounts[i].ID] = portfolios[i]
		allOps = append(allOps, operations[i]...)
	}
	if len(accounts) > 0 && fetched == 0 {
		return fmt.Errorf("failed to fetch a portfolio for any of %d accounts", len(accounts))
	}

	positions := portfolio.NormalizeAll(accounts, byAccount)
	summary := portfolio.Reduce(positions)
	movers := portfolio.RankMovers(positions)

	netFlows := cash_flows.NetFlowSeries(allOps)
	contributions := cash_flows.Contributions(allOps, now)

	names := s.resolveNames(positions)
	events := s.payments.FetchEvents(positions, now, s.lookahead)
	schedule := payments.BuildSchedule(positions, events, names, now)

	projection := forecast.Project(forecast.Input{
		Initial:           summary.TotalValue,
		MonthlyTopUp:      contributions.AveragePerMonth,
		Years:             forecastYears,
		AnnualRatePercent: forecastAnnualRate,
	})

	snapshot := &Snapshot{
		GeneratedAt:   now,
		DemoMode:      client.IsDemo(),
		Summary:       summary,
		Movers:        movers,
		NetFlows:      netFlows,
		FlowStats:     cash_flows.SummarizeFlows(netFlows),
		Contributions: contributions,
		Forecast:      projection,
		Payments:      schedule,
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.log.Info().
		Int("accounts", len(accounts)).
		Int("positions", len(positions)).
		Int("payments", len(schedule)).
		Dur("took", time.Since(started)).
		Msg("Dashboard snapshot refreshed")
	return nil
}

// Operations fetches and classifies the ledger for the last N days across
// all accounts, newest first.
func (s *Service) Operations(days int) ([]OperationView, error) {
	client := s.source.Client()

	accountsResp, err := client.GetAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -days)

	views := make([]OperationView, 0)
	for _, account := range accountsResp.Accounts {
		resp, err := client.GetOperations(account.ID, from, now)
		if err != nil {
			s.log.Warn().Err(err).Str("account", account.ID).Msg("Failed to fetch operations")
			continue
		}
		for _, op := range resp.Operations {
			views = append(views, OperationView{
				ID:          op.ID,
				Date:        op.Date,
				Type:        op.OperationType,
				Bucket:      cash_flows.Classify(op),
				Amount:      op.Payment.Float(),
				Display:     money.FormatValue(&op.Payment),
				Currency:    op.Payment.Currency,
				AccountName: account.Name,
				FIGI:        op.FIGI,
			})
		}
	}

	// RFC3339 with a fixed zone sorts lexicographically.
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Date > views[j].Date
	})
	return views, nil
}

func (s *Service) resolveNames(positions []portfolio.NormalizedPosition) map[string]string {
	figis := make([]string, 0, len(positions))
	seen := make(map[string]bool, len(positions))
	for _, pos := range positions {
		if !seen[pos.FIGI] {
			seen[pos.FIGI] = true
			figis = append(figis, pos.FIGI)
		}
	}

	names, err := s.instruments.ResolveNames(figis)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to resolve instrument names")
		return map[string]string{}
	}
	return names
}
