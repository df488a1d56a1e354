package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/dashboard"
)

// RefreshJob periodically rebuilds the dashboard snapshot so the UI stays
// current without the user pressing refresh.
type RefreshJob struct {
	service *dashboard.Service
	log     zerolog.Logger
}

// NewRefreshJob creates a new dashboard refresh job
func NewRefreshJob(service *dashboard.Service, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		service: service,
		log:     log.With().Str("job", "dashboard_refresh").Logger(),
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "dashboard_refresh"
}

// Run rebuilds the snapshot from the broker API.
func (j *RefreshJob) Run() error {
	return j.service.Refresh()
}
