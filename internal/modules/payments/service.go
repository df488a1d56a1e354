package payments

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/Alexeusss/T-Invest-Tracker/internal/clients/tinkoff"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/portfolio"
)

// Service fetches the declared payout calendar from the broker API.
type Service struct {
	source *tinkoff.Source
	log    zerolog.Logger
}

// NewService creates a new payments service
func NewService(source *tinkoff.Source, log zerolog.Logger) *Service {
	return &Service{
		source: source,
		log:    log.With().Str("service", "payments").Logger(),
	}
}

// FetchEvents pulls dividends for every unique share FIGI and coupons for
// every unique bond FIGI in the given positions, looking ahead the given
// window. A failed lookup for one instrument is logged and skipped; the
// rest of the calendar still comes back.
func (s *Service) FetchEvents(positions []portfolio.NormalizedPosition, now time.Time, lookahead time.Duration) Events {
	events := Events{
		Dividends: make(map[string][]DividendEvent),
		Coupons:   make(map[string][]CouponEvent),
	}

	client := s.source.Client()
	to := now.Add(lookahead)
	for _, pos := range positions {
		switch pos.InstrumentType {
		case tinkoff.InstrumentTypeShare:
			if _, done := events.Dividends[pos.FIGI]; done {
				continue
			}
			resp, err := client.GetDividends(pos.FIGI, now, to)
			if err != nil {
				s.log.Warn().Err(err).Str("figi", pos.FIGI).Msg("Failed to fetch dividends")
				events.Dividends[pos.FIGI] = nil
				continue
			}
			events.Dividends[pos.FIGI] = NormalizeDividends(resp.Dividends)
		case tinkoff.InstrumentTypeBond:
			if _, done := events.Coupons[pos.FIGI]; done {
				continue
			}
			resp, err := client.GetBondCoupons(pos.FIGI, now, to)
			if err != nil {
				s.log.Warn().Err(err).Str("figi", pos.FIGI).Msg("Failed to fetch coupons")
				events.Coupons[pos.FIGI] = nil
				continue
			}
			events.Coupons[pos.FIGI] = NormalizeCoupons(resp.Events)
		}
	}

	return events
}
