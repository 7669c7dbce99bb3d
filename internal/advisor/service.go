// Package advisor composes the analytical engines over a persisted snapshot
// and exposes them as one service.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JosephSijo/finhub/internal/amortize"
	"github.com/JosephSijo/finhub/internal/architect"
	"github.com/JosephSijo/finhub/internal/forecast"
	"github.com/JosephSijo/finhub/internal/goalpace"
	"github.com/JosephSijo/finhub/internal/ledger"
	"github.com/JosephSijo/finhub/internal/stress"
	"github.com/JosephSijo/finhub/internal/subscription"
)

// ErrCacheMiss is returned by a Cache when no bundle is stored.
var ErrCacheMiss = errors.New("advisor: cache miss")

// DefaultForecastDays is the horizon used when a caller does not pick one.
const DefaultForecastDays = 30

// bundleTTL bounds how stale a cached bundle may get.
const bundleTTL = 5 * time.Minute

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=advisor
type Repository interface {
	LoadSnapshot(ctx context.Context) (*ledger.Snapshot, error)
}

// Cache stores computed bundles between requests. Implementations return
// ErrCacheMiss when nothing is stored.
type Cache interface {
	GetBundle(ctx context.Context) (*Bundle, error)
	SetBundle(ctx context.Context, b *Bundle, ttl time.Duration) error
}

// SubscriptionAdvice pairs a commitment with its cancellation strategy.
type SubscriptionAdvice struct {
	Commitment ledger.RecurringCommitment
	Strategy   subscription.Strategy
}

// Bundle is every advisory product computed from one snapshot read.
type Bundle struct {
	GeneratedAt   time.Time
	Forecast      forecast.Result
	Stress        stress.Result
	Goals         []goalpace.Analysis
	Subscriptions []SubscriptionAdvice
	Architect     architect.Analysis
}

type Service struct {
	repo       Repository
	cache      Cache
	forecaster *forecast.Forecaster
	scorer     *stress.Scorer
	now        func() time.Time
}

type Option func(*Service)

// WithNow overrides the service clock.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, cache Cache, opts ...Option) *Service {
	essentials := ledger.DefaultEssentialCategories()

	s := &Service{
		repo:       repo,
		cache:      cache,
		forecaster: forecast.New(essentials),
		scorer:     stress.New(essentials),
		now:        time.Now,
	}

	if s.cache == nil {
		s.cache = NopCache{}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Forecast projects the liquid balance over the given number of days.
func (s *Service) Forecast(ctx context.Context, days int) (*forecast.Result, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	if days <= 0 {
		days = DefaultForecastDays
	}

	res := s.forecast(snap, days, s.now())

	return &res, nil
}

// Stress scores the snapshot's financial stress.
func (s *Service) Stress(ctx context.Context) (*stress.Result, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	res := s.stress(snap, s.now())

	return &res, nil
}

// Goals analyzes pacing for every goal that has a target. Goals the analyzer
// declines (completed, no target) are skipped.
func (s *Service) Goals(ctx context.Context) ([]goalpace.Analysis, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	return s.goals(snap, s.now()), nil
}

// Subscriptions returns a cancellation strategy for every advisable
// subscription commitment.
func (s *Service) Subscriptions(ctx context.Context) ([]SubscriptionAdvice, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	return s.subscriptions(snap, s.now()), nil
}

// Architect runs the priority waterfall. The emergency-buffer tier reads the
// health score, taken as the inverse of the stress score.
func (s *Service) Architect(ctx context.Context) (*architect.Analysis, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	today := s.now()
	res := s.architect(snap, today)

	return &res, nil
}

// Loan amortizes a loan without touching the snapshot.
func (s *Service) Loan(principal, annualRatePct float64, tenureMonths int, startDate time.Time) amortize.LoanDetails {
	return amortize.Loan(principal, annualRatePct, tenureMonths, startDate, s.now())
}

// LoanRate solves for the annual rate (percent) implied by an EMI.
func (s *Service) LoanRate(principal, emi float64, tenureMonths int) float64 {
	return amortize.AnnualRate(principal, emi, tenureMonths)
}

// LoanTenure solves for the months needed to amortize at the given rate.
func (s *Service) LoanTenure(principal, emi, annualRatePct float64) int {
	return amortize.Tenure(principal, emi, annualRatePct)
}

// Bundle computes all advisory products in one pass, serving from cache when
// a fresh bundle exists.
func (s *Service) Bundle(ctx context.Context) (*Bundle, error) {
	if cached, err := s.cache.GetBundle(ctx); err == nil {
		return cached, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		return nil, fmt.Errorf("reading bundle cache: %w", err)
	}

	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	today := s.now()

	b := &Bundle{
		GeneratedAt:   today,
		Forecast:      s.forecast(snap, DefaultForecastDays, today),
		Stress:        s.stress(snap, today),
		Goals:         s.goals(snap, today),
		Subscriptions: s.subscriptions(snap, today),
		Architect:     s.architect(snap, today),
	}

	if err := s.cache.SetBundle(ctx, b, bundleTTL); err != nil {
		return nil, fmt.Errorf("writing bundle cache: %w", err)
	}

	return b, nil
}

func (s *Service) forecast(snap *ledger.Snapshot, days int, today time.Time) forecast.Result {
	return s.forecaster.Forecast(
		snap.Liquidity(), snap.Expenses, snap.Commitments, snap.Liabilities, days, today)
}

func (s *Service) stress(snap *ledger.Snapshot, today time.Time) stress.Result {
	return s.scorer.Score(
		snap.Liquidity(), snap.MonthlyIncome(today),
		snap.Expenses, snap.Commitments, snap.Liabilities, snap.Goals, today)
}

func (s *Service) goals(snap *ledger.Snapshot, today time.Time) []goalpace.Analysis {
	var analyses []goalpace.Analysis

	for _, g := range snap.Goals {
		if a := goalpace.Analyze(g, snap.Expenses, today); a != nil {
			analyses = append(analyses, *a)
		}
	}

	return analyses
}

func (s *Service) subscriptions(snap *ledger.Snapshot, today time.Time) []SubscriptionAdvice {
	var advice []SubscriptionAdvice

	for _, c := range snap.Commitments {
		if strat := subscription.Advise(c, today); strat != nil {
			advice = append(advice, SubscriptionAdvice{Commitment: c, Strategy: *strat})
		}
	}

	return advice
}

func (s *Service) architect(snap *ledger.Snapshot, today time.Time) architect.Analysis {
	healthScore := float64(100 - s.stress(snap, today).Score)

	return architect.Analyze(snap, healthScore, today)
}
