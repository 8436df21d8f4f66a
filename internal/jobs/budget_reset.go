// Package jobs runs periodic background work.
package jobs

import (
	"context"
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/observability"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// BudgetResetter zeroes the running totals of budgets of one frequency.
type BudgetResetter interface {
	ResetFrequency(ctx context.Context, frequency string, at time.Time) (int64, error)
}

// Schedules maps each budget frequency to the cron spec of its period boundary.
var Schedules = map[string]string{
	domain.FrequencyDaily:   "@daily",
	domain.FrequencyWeekly:  "@weekly",
	domain.FrequencyMonthly: "@monthly",
	domain.FrequencyYearly:  "@yearly",
}

type Scheduler struct {
	cron    *cron.Cron
	budgets BudgetResetter
	log     zerolog.Logger
	now     func() time.Time
}

// NewScheduler registers one budget reset entry per frequency, evaluated in loc.
func NewScheduler(budgets BudgetResetter, loc *time.Location, log zerolog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		budgets: budgets,
		log:     log.With().Str("component", "jobs").Logger(),
		now:     time.Now,
	}
	for freq, spec := range Schedules {
		freq := freq
		if _, err := s.cron.AddFunc(spec, func() { s.ResetBudgets(context.Background(), freq) }); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ResetBudgets zeroes every budget with the given frequency.
func (s *Scheduler) ResetBudgets(ctx context.Context, frequency string) {
	n, err := s.budgets.ResetFrequency(ctx, frequency, s.now().UTC())
	if err != nil {
		s.log.Error().Err(err).Str("frequency", frequency).Msg("budget reset failed")
		return
	}
	observability.BudgetResets.WithLabelValues(frequency).Add(float64(n))
	s.log.Info().Str("frequency", frequency).Int64("budgets", n).Msg("budgets reset")
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for running jobs or ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int { return len(s.cron.Entries()) }
