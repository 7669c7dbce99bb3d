// Package scheduler materializes recurring commitments into concrete
// transactions on a cron cadence.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/JosephSijo/finhub/internal/ledger"
	"github.com/JosephSijo/finhub/internal/recurrence"
)

// catchUpDays is how far back a run looks for occurrences missed while the
// process was down.
const catchUpDays = 7

//go:generate mockgen -source=scheduler.go -destination=repository_mock.go -package=scheduler
type Repository interface {
	ActiveCommitments(ctx context.Context) ([]ledger.RecurringCommitment, error)
	HasOccurrence(ctx context.Context, c ledger.RecurringCommitment, date time.Time) (bool, error)
	CreateOccurrence(ctx context.Context, c ledger.RecurringCommitment, date time.Time) error
}

type Scheduler struct {
	repo Repository
	log  *slog.Logger
	cron *cron.Cron
	now  func() time.Time
}

type Option func(*Scheduler)

// WithNow overrides the scheduler clock.
func WithNow(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func New(repo Repository, log *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		repo: repo,
		log:  log,
		cron: cron.New(),
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start registers the materialization job under the given cron spec and
// starts the cron loop in the background.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		created, err := s.Materialize(ctx)
		if err != nil {
			s.log.Error("materializing commitments", "error", err)
			return
		}

		s.log.Info("materialized commitments", "created", created)
	})
	if err != nil {
		return fmt.Errorf("registering cron job: %w", err)
	}

	s.cron.Start()

	return nil
}

// Stop halts the cron loop and returns once any running job finished.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Materialize creates the transactions every non-cancelled rule was due to
// produce in the catch-up window up to today. Occurrences that already exist
// are left alone, so running it twice is safe.
func (s *Scheduler) Materialize(ctx context.Context) (int, error) {
	commitments, err := s.repo.ActiveCommitments(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing commitments: %w", err)
	}

	today := s.now()
	from := today.AddDate(0, 0, -catchUpDays)
	to := today.AddDate(0, 0, 1)

	var created int

	for _, c := range commitments {
		rule := recurrence.RuleFor(c)

		for _, due := range recurrence.Project(rule, from, to) {
			exists, err := s.repo.HasOccurrence(ctx, c, due)
			if err != nil {
				return created, fmt.Errorf("checking occurrence: %w", err)
			}

			if exists {
				continue
			}

			if err := s.repo.CreateOccurrence(ctx, c, due); err != nil {
				return created, fmt.Errorf("creating occurrence: %w", err)
			}

			created++
		}
	}

	return created, nil
}
