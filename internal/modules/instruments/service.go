package instruments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alexeusss/T-Invest-Tracker/internal/clients/tinkoff"
	"github.com/Alexeusss/T-Invest-Tracker/pkg/formulas"
)

const (
	trendPeriod     = 7
	trendWindowDays = 30
)

// TrendReport is the SMA trend assessment for one instrument.
type TrendReport struct {
	FIGI      string                  `json:"figi"`
	Name      string                  `json:"name"`
	Direction formulas.TrendDirection `json:"direction"`
	SMA       *float64                `json:"sma,omitempty"`
	Closes    []float64               `json:"closes"`
}

// Service resolves instrument names through the cache and computes price
// trends from daily candles.
type Service struct {
	repo   *Repository
	source *tinkoff.Source
	log    zerolog.Logger
}

// NewService creates a new instruments service
func NewService(repo *Repository, source *tinkoff.Source, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		source: source,
		log:    log.With().Str("service", "instruments").Logger(),
	}
}

// ResolveNames returns display names for the given FIGIs, hitting the API
// only for FIGIs missing from the cache and persisting what it learns.
func (s *Service) ResolveNames(figis []string) (map[string]string, error) {
	names, err := s.repo.GetNames(figis)
	if err != nil {
		return nil, fmt.Errorf("failed to read name cache: %w", err)
	}

	fetched := make(map[string]string)
	for _, figi := range figis {
		if _, ok := names[figi]; ok {
			continue
		}
		if _, ok := fetched[figi]; ok {
			continue
		}
		fetched[figi] = s.source.Client().GetInstrumentName(figi)
	}

	if len(fetched) > 0 {
		if err := s.repo.SaveNames(fetched); err != nil {
			s.log.Warn().Err(err).Msg("Failed to persist instrument names")
		}
		for figi, name := range fetched {
			names[figi] = name
		}
	}

	return names, nil
}

// Trend fetches the last month of daily candles for a FIGI and classifies
// the price direction by comparing the latest close to its moving average.
func (s *Service) Trend(figi string) (*TrendReport, error) {
	now := time.Now().UTC()
	resp, err := s.source.Client().GetCandles(figi, now.AddDate(0, 0, -trendWindowDays), now)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candles for %s: %w", figi, err)
	}

	closes := make([]float64, 0, len(resp.Candles))
	for i := range resp.Candles {
		closes = append(closes, resp.Candles[i].Close.Float())
	}

	names, err := s.ResolveNames([]string{figi})
	if err != nil {
		names = map[string]string{}
	}
	name, ok := names[figi]
	if !ok {
		name = figi
	}

	return &TrendReport{
		FIGI:      figi,
		Name:      name,
		Direction: formulas.Trend(closes, trendPeriod),
		SMA:       formulas.LatestSMA(closes, trendPeriod),
		Closes:    closes,
	}, nil
}
