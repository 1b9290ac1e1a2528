// ABOUTME: Long-tail service drives one seed keyword through suggestion, fallback and enrichment
// ABOUTME: Upstream failures degrade to fallback or unenriched data and never reach the caller

package longtail

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"keywords-app-api/core/backoff"
	"keywords-app-api/core/config"
	"keywords-app-api/core/domain"
	"keywords-app-api/core/errors"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/core/scoring"
)

const (
	// SuggestionSourceKey is the backoff gate key for the suggestion source.
	// Must equal naver.AutocompleteSourceName so gate and metrics share a key.
	SuggestionSourceKey = "naver-autocomplete"

	// MaxSeedLength is the longest accepted seed keyword in characters
	MaxSeedLength = 100

	// DefaultEnrichmentDelay separates consecutive metrics lookups
	DefaultEnrichmentDelay = 200 * time.Millisecond
)

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Service expands seed keywords into long-tail candidates
type Service struct {
	deps            interfaces.Dependencies
	suggestions     interfaces.SuggestionSource
	metrics         interfaces.MetricsSource
	store           interfaces.KeywordStore
	gate            *backoff.Gate
	fallback        *FallbackGenerator
	enrichmentDelay time.Duration
	sleep           SleepFunc
	now             func() time.Time
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithMetricsSource enables volume enrichment against the given source
func WithMetricsSource(m interfaces.MetricsSource) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithStore persists every generated candidate
func WithStore(store interfaces.KeywordStore) ServiceOption {
	return func(s *Service) { s.store = store }
}

// WithGate shares a backoff gate with other services
func WithGate(g *backoff.Gate) ServiceOption {
	return func(s *Service) { s.gate = g }
}

// WithFallbackGenerator replaces the default pattern generator
func WithFallbackGenerator(g *FallbackGenerator) ServiceOption {
	return func(s *Service) { s.fallback = g }
}

// WithEnrichmentDelay overrides the pause between metrics lookups
func WithEnrichmentDelay(d time.Duration) ServiceOption {
	return func(s *Service) { s.enrichmentDelay = d }
}

// WithSleep replaces the context-aware sleep, mainly for tests
func WithSleep(fn SleepFunc) ServiceOption {
	return func(s *Service) { s.sleep = fn }
}

// NewService creates a long-tail service
func NewService(deps interfaces.Dependencies, suggestions interfaces.SuggestionSource, opts ...ServiceOption) *Service {
	s := &Service{
		deps:            deps,
		suggestions:     suggestions,
		gate:            backoff.NewGate(),
		fallback:        NewFallbackGenerator(nil),
		enrichmentDelay: DefaultEnrichmentDelay,
		sleep:           Sleep,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Gate exposes the backoff gate for status reporting
func (s *Service) Gate() *backoff.Gate {
	return s.gate
}

// ValidateSeed trims a seed keyword and checks its length
func ValidateSeed(seed string) (string, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return "", &errors.ValidationError{Field: "keyword", Message: "keyword cannot be empty"}
	}
	if utf8.RuneCountInString(seed) > MaxSeedLength {
		return "", &errors.ValidationError{Field: "keyword", Message: "keyword cannot exceed 100 characters"}
	}
	return seed, nil
}

// GenerateLongtails expands one seed keyword. The only error returned is a
// ValidationError for an unusable seed.
func (s *Service) GenerateLongtails(ctx context.Context, seed string, opts ...config.GenerateOption) (*domain.CollectionResult, error) {
	seed, err := ValidateSeed(seed)
	if err != nil {
		return nil, err
	}
	cfg := config.NewGenerateConfig(opts...)

	result := &domain.CollectionResult{
		SeedKeyword: seed,
		Origin:      domain.ResultLiveAPI,
	}

	live := s.fetchLive(ctx, seed)
	if len(live) == 0 {
		live = s.fallback.Generate(seed)
		result.Origin = domain.ResultFallback
	}

	result.Candidates = Dedupe(live, cfg.MaxCandidates)

	if cfg.IncludeVolume && s.metrics != nil {
		s.enrich(ctx, result.Candidates, cfg.EnrichmentLimit)
	}

	s.deps.MetricsOrNoop().IncCollection(string(result.Origin))
	s.log("Generated long-tail keywords", map[string]interface{}{
		"seed":       seed,
		"origin":     result.Origin,
		"candidates": len(result.Candidates),
	})

	s.persist(ctx, result)

	return result, nil
}

// fetchLive asks the suggestion source through the backoff gate.
// Returns nil when the gate is closed or the source fails.
func (s *Service) fetchLive(ctx context.Context, seed string) []domain.LongtailCandidate {
	if s.suggestions == nil {
		return nil
	}
	recorder := s.deps.MetricsOrNoop()

	if !s.gate.CanCall(SuggestionSourceKey) {
		recorder.ObserveUpstream(SuggestionSourceKey, "throttled", 0)
		s.warn("Suggestion source throttled, using fallback", map[string]interface{}{
			"seed":     seed,
			"failures": s.gate.State(SuggestionSourceKey).ConsecutiveFailures,
		})
		return nil
	}

	start := s.now()
	suggestions, err := s.suggestions.FetchSuggestions(ctx, seed)
	elapsed := s.now().Sub(start)

	if err != nil {
		if ctx.Err() != nil {
			// caller gave up; the source is not at fault
			return nil
		}
		failures := s.gate.RecordFailure(SuggestionSourceKey)
		recorder.ObserveUpstream(SuggestionSourceKey, "failure", elapsed)
		recorder.SetConsecutiveFailures(SuggestionSourceKey, failures)
		s.warn("Suggestion lookup failed, using fallback", map[string]interface{}{
			"seed":     seed,
			"failures": failures,
			"error":    err.Error(),
		})
		return nil
	}

	s.gate.RecordSuccess(SuggestionSourceKey)
	recorder.ObserveUpstream(SuggestionSourceKey, "success", elapsed)
	recorder.SetConsecutiveFailures(SuggestionSourceKey, 0)

	candidates := make([]domain.LongtailCandidate, 0, len(suggestions))
	for _, sg := range suggestions {
		if strings.TrimSpace(sg.Text) == "" {
			continue
		}
		candidates = append(candidates, domain.LongtailCandidate{
			Text:   sg.Text,
			Origin: sg.Origin,
			Order:  sg.Rank,
		})
	}
	return candidates
}

// enrich attaches metrics to the first limit candidates, one call at a time
func (s *Service) enrich(ctx context.Context, candidates []domain.LongtailCandidate, limit int) {
	recorder := s.deps.MetricsOrNoop()

	for i := 0; i < len(candidates) && i < limit; i++ {
		if i > 0 {
			if err := s.sleep(ctx, s.enrichmentDelay); err != nil {
				return
			}
		}
		if ctx.Err() != nil {
			return
		}

		m, err := s.metrics.FetchKeywordMetrics(ctx, candidates[i].Text)
		if err != nil {
			recorder.IncEnrichment("failure")
			s.debug("Enrichment failed", map[string]interface{}{
				"keyword": candidates[i].Text,
				"error":   err.Error(),
			})
			continue
		}
		if m == nil {
			recorder.IncEnrichment("miss")
			continue
		}

		recorder.IncEnrichment("success")
		candidates[i].Enrichment = &domain.Enrichment{
			SearchVolume: m.TotalVolume(),
			Competition:  m.Competition,
			CostPerClick: m.AvgCPC,
			Score:        scoring.MetricsScore(*m),
		}
	}
}

func (s *Service) persist(ctx context.Context, result *domain.CollectionResult) {
	if s.store == nil || len(result.Candidates) == 0 {
		return
	}

	now := s.now()
	records := make([]domain.LongtailRecord, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		records = append(records, domain.LongtailRecord{
			SeedKeyword: result.SeedKeyword,
			Candidate:   c,
			Origin:      result.Origin,
			CollectedAt: now,
		})
	}

	if err := s.store.UpsertLongtails(ctx, records); err != nil {
		s.warn("Failed to persist long-tail keywords", map[string]interface{}{
			"seed":  result.SeedKeyword,
			"error": err.Error(),
		})
	}
}

// Sleep waits for d, returning early with ctx.Err() if ctx is done
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) log(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Info(msg, fields)
	}
}

func (s *Service) warn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}

func (s *Service) debug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}
