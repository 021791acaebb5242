// Package refresh re-runs the account fanout on a cron schedule so the
// dashboard serves warm data between manual refreshes.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type Refresher interface {
	RefreshAll(ctx context.Context, from, to time.Time)
}

type Scheduler struct {
	cron      *cron.Cron
	fanout    Refresher
	rangeDays int
	logger    zerolog.Logger
}

func NewScheduler(logger zerolog.Logger, fanout Refresher, spec string, rangeDays int) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		fanout:    fanout,
		rangeDays: rangeDays,
		logger:    logger,
	}
	if _, err := s.cron.AddFunc(spec, s.refreshTask); err != nil {
		return nil, fmt.Errorf("register refresh task: %w", err)
	}
	return s, nil
}

func (s *Scheduler) refreshTask() {
	to := time.Now()
	from := to.AddDate(0, 0, -s.rangeDays)

	s.logger.Info().
		Time("from", from).
		Time("to", to).
		Msg("running scheduled refresh")

	ctx := s.logger.WithContext(context.Background())
	s.fanout.RefreshAll(ctx, from, to)
}

func (s *Scheduler) Start() { s.cron.Start() }

func (s *Scheduler) Stop() { s.cron.Stop() }
