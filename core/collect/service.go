// ABOUTME: Collection service gathers metrics and interest for a list of seed keywords
// ABOUTME: Scores each keyword, stores the batch and reports collection status

package collect

import (
	"context"
	"strings"
	"time"

	"keywords-app-api/core/backoff"
	"keywords-app-api/core/domain"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/core/longtail"
	"keywords-app-api/core/scoring"
)

// DefaultCollectDelay separates consecutive seeds in a batch
const DefaultCollectDelay = time.Second

// DefaultSeeds is the batch used when the caller supplies none
var DefaultSeeds = []string{
	"블로그",
	"SEO",
	"키워드 마케팅",
	"구글 애널리틱스",
	"디지털 마케팅",
	"콘텐츠 마케팅",
	"소셜미디어 마케팅",
	"이메일 마케팅",
	"온라인 광고",
	"검색엔진 최적화",
}

// Service runs batch keyword collection
type Service struct {
	deps     interfaces.Dependencies
	metrics  interfaces.MetricsSource
	interest interfaces.InterestSource
	store    interfaces.KeywordStore
	gate     *backoff.Gate
	delay    time.Duration
	sleep    longtail.SleepFunc
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithInterest adds trends interest to each collected keyword
func WithInterest(src interfaces.InterestSource) Option {
	return func(s *Service) { s.interest = src }
}

// WithDelay overrides the pause between seeds
func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// WithSleep replaces the context-aware sleep, mainly for tests
func WithSleep(fn longtail.SleepFunc) Option {
	return func(s *Service) { s.sleep = fn }
}

// WithClock replaces the wall clock, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithBackoffGate reports gate state in collection status
func WithBackoffGate(g *backoff.Gate) Option {
	return func(s *Service) { s.gate = g }
}

// NewService creates a collection service. metrics and store may be nil.
func NewService(deps interfaces.Dependencies, metrics interfaces.MetricsSource, store interfaces.KeywordStore, opts ...Option) *Service {
	s := &Service{
		deps:    deps,
		metrics: metrics,
		store:   store,
		delay:   DefaultCollectDelay,
		sleep:   longtail.Sleep,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeedFailure records why a seed produced no keyword
type SeedFailure struct {
	Seed   string
	Reason string
}

// Report is the outcome of one batch collection
type Report struct {
	Keywords   []domain.Keyword
	Failures   []SeedFailure
	Stored     bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// CollectAll collects every seed in order, pausing between seeds.
// Per-seed failures are recorded and skipped.
func (s *Service) CollectAll(ctx context.Context, seeds []string) (*Report, error) {
	if len(seeds) == 0 {
		seeds = DefaultSeeds
	}

	report := &Report{StartedAt: s.now()}

	for i, raw := range seeds {
		if i > 0 {
			if err := s.sleep(ctx, s.delay); err != nil {
				break
			}
		}

		seed, err := longtail.ValidateSeed(raw)
		if err != nil {
			report.Failures = append(report.Failures, SeedFailure{Seed: raw, Reason: err.Error()})
			continue
		}

		kw, reason := s.collectOne(ctx, seed)
		if kw == nil {
			report.Failures = append(report.Failures, SeedFailure{Seed: seed, Reason: reason})
			continue
		}
		report.Keywords = append(report.Keywords, *kw)
	}

	if s.store != nil && len(report.Keywords) > 0 {
		if err := s.store.UpsertKeywords(ctx, report.Keywords); err != nil {
			report.FinishedAt = s.now()
			return report, err
		}
		report.Stored = true
	}

	report.FinishedAt = s.now()
	if s.deps.Logger != nil {
		s.deps.Logger.Info("Batch collection finished", map[string]interface{}{
			"collected": len(report.Keywords),
			"failed":    len(report.Failures),
			"duration":  report.FinishedAt.Sub(report.StartedAt).String(),
		})
	}
	return report, nil
}

func (s *Service) collectOne(ctx context.Context, seed string) (*domain.Keyword, string) {
	var metrics *domain.KeywordMetrics
	var interest []domain.InterestPoint
	var reasons []string

	if s.metrics != nil {
		m, err := s.metrics.FetchKeywordMetrics(ctx, seed)
		if err != nil {
			reasons = append(reasons, "metrics: "+err.Error())
		} else {
			metrics = m
		}
	}

	if s.interest != nil {
		points, err := s.interest.InterestOverTime(ctx, seed)
		if err != nil {
			reasons = append(reasons, "interest: "+err.Error())
		} else {
			interest = points
		}
	}

	if metrics == nil && len(interest) == 0 {
		if len(reasons) == 0 {
			return nil, "no data from any source"
		}
		return nil, strings.Join(reasons, "; ")
	}

	kw := &domain.Keyword{
		Text:        seed,
		Competition: domain.CompetitionMedium,
		Score:       scoring.CollectionScore(metrics, interest),
		Platform:    domain.PlatformGoogle,
		Metadata: &domain.KeywordMetadata{
			InterestAverage: scoring.RecentInterestAverage(interest),
		},
		CollectedAt: s.now(),
	}
	if metrics != nil {
		kw.SearchVolume = metrics.TotalVolume()
		kw.CostPerClick = metrics.AvgCPC
		kw.Platform = domain.PlatformNaver
		if metrics.Competition.IsValid() {
			kw.Competition = metrics.Competition
		}
	}
	return kw, ""
}

// Status is the collection status reported to operators
type Status struct {
	Stats       *domain.CollectionStats
	Sources     map[string]bool
	Healthy     bool
	GateState   map[string]backoff.State
	GeneratedAt time.Time
}

// Status summarizes the store and source configuration.
// sources maps a source name to whether its credentials are configured.
func (s *Service) Status(ctx context.Context, sources map[string]bool) (*Status, error) {
	status := &Status{
		Sources:     sources,
		Healthy:     true,
		GeneratedAt: s.now(),
	}
	for _, ok := range sources {
		if !ok {
			status.Healthy = false
		}
	}

	if s.store != nil {
		stats, err := s.store.Stats(ctx)
		if err != nil {
			return nil, err
		}
		status.Stats = stats
	} else {
		status.Stats = &domain.CollectionStats{}
	}

	if s.gate != nil {
		status.GateState = s.gate.Snapshot()
	}
	return status, nil
}
