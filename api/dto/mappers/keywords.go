// ABOUTME: Mappers for converting keyword domain models to API DTOs
// ABOUTME: Keeps the response shape independent of core types

package mappers

import (
	"keywords-app-api/api/dto/responses"
	"keywords-app-api/core/backoff"
	"keywords-app-api/core/collect"
	"keywords-app-api/core/domain"
	"keywords-app-api/core/keywords"
	"keywords-app-api/core/scoring"
)

// ToKeywordResponse converts a keyword and derives its quality labels
func ToKeywordResponse(k domain.Keyword) responses.KeywordResponse {
	return ToRankedKeywordResponse(keywords.Annotate(k))
}

// ToRankedKeywordResponse converts an annotated keyword
func ToRankedKeywordResponse(k keywords.RankedKeyword) responses.KeywordResponse {
	resp := responses.KeywordResponse{
		Keyword:        k.Text,
		SearchVolume:   k.SearchVolume,
		Competition:    string(k.Competition),
		CPC:            k.CostPerClick,
		Score:          k.Score,
		Platform:       string(k.Platform),
		Quality:        string(k.Quality),
		Recommendation: string(k.Recommendation),
		CollectedAt:    k.CollectedAt,
	}
	if m := k.Metadata; m != nil {
		resp.Metadata = &responses.KeywordMetadataResponse{
			RelatedQueries:   m.RelatedQueries,
			ExploreLink:      m.ExploreLink,
			SerpAPILink:      m.SerpAPILink,
			FormattedTraffic: m.FormattedTraffic,
			TrafficValue:     m.TrafficValue,
			InterestAverage:  m.InterestAverage,
		}
	}
	return resp
}

// ToKeywordResponses converts a keyword slice, never returning nil
func ToKeywordResponses(items []domain.Keyword) []responses.KeywordResponse {
	out := make([]responses.KeywordResponse, 0, len(items))
	for _, k := range items {
		out = append(out, ToKeywordResponse(k))
	}
	return out
}

// ToLongtailResultResponse converts one seed expansion
func ToLongtailResultResponse(result *domain.CollectionResult) responses.LongtailResultResponse {
	resp := responses.LongtailResultResponse{
		SeedKeyword: result.SeedKeyword,
		Origin:      string(result.Origin),
		Count:       len(result.Candidates),
		Longtails:   make([]responses.LongtailResponse, 0, len(result.Candidates)),
	}
	for _, c := range result.Candidates {
		item := responses.LongtailResponse{
			Keyword: c.Text,
			Type:    string(c.Origin),
			Order:   c.Order,
		}
		if e := c.Enrichment; e != nil {
			volume, cpc, score := e.SearchVolume, e.CostPerClick, e.Score
			item.SearchVolume = &volume
			item.Competition = string(e.Competition)
			item.CPC = &cpc
			item.Score = &score
		}
		resp.Longtails = append(resp.Longtails, item)
	}
	return resp
}

// ToKeywordMetricsResponse converts a paid-search metrics record
func ToKeywordMetricsResponse(m domain.KeywordMetrics) responses.KeywordMetricsResponse {
	return responses.KeywordMetricsResponse{
		Keyword:      m.Keyword,
		SearchVolume: m.TotalVolume(),
		PCVolume:     m.VolumePC,
		MobileVolume: m.VolumeMobile,
		Competition:  string(m.Competition),
		CPC:          m.AvgCPC,
		Score:        scoring.MetricsScore(m),
	}
}

// ToInsightResponse converts a keyword insight with empty slices for missing data
func ToInsightResponse(insight *collect.KeywordInsight) responses.InsightResponse {
	resp := responses.InsightResponse{
		Keyword:         insight.Keyword,
		InterestAverage: insight.InterestAverage,
		Interest:        make([]responses.InterestPointResponse, 0, len(insight.Interest)),
		RelatedQueries:  make([]responses.RelatedQueryResponse, 0, len(insight.RelatedQueries)),
	}
	for _, p := range insight.Interest {
		resp.Interest = append(resp.Interest, responses.InterestPointResponse{Date: p.Date, Value: p.Value})
	}
	for _, q := range insight.RelatedQueries {
		resp.RelatedQueries = append(resp.RelatedQueries, responses.RelatedQueryResponse{Query: q.Query, Value: q.Value, Link: q.Link})
	}
	return resp
}

// ToCollectAllResponse converts a batch collection report
func ToCollectAllResponse(report *collect.Report) responses.CollectAllResponse {
	resp := responses.CollectAllResponse{
		Success:    true,
		Collected:  len(report.Keywords),
		Failed:     len(report.Failures),
		Stored:     report.Stored,
		DurationMs: report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
		Keywords:   ToKeywordResponses(report.Keywords),
	}
	for _, f := range report.Failures {
		resp.Failures = append(resp.Failures, responses.SeedFailureResponse{Seed: f.Seed, Reason: f.Reason})
	}
	return resp
}

// ToCollectStatusResponse converts the collection status
func ToCollectStatusResponse(status *collect.Status) responses.CollectStatusResponse {
	stats := status.Stats
	if stats == nil {
		stats = &domain.CollectionStats{}
	}

	resp := responses.CollectStatusResponse{
		TotalKeywords:       stats.TotalKeywords,
		LowCompetitionCount: stats.LowCompetitionCount,
		AverageCPC:          stats.AverageCPC,
		CompetitionStats:    make(map[string]int, len(stats.ByCompetition)),
		PlatformStats:       make(map[string]int, len(stats.ByPlatform)),
		LastCollection:      stats.LastCollectedAt,
		Sources:             status.Sources,
		IsHealthy:           status.Healthy,
		Timestamp:           status.GeneratedAt,
	}
	for tier, n := range stats.ByCompetition {
		resp.CompetitionStats[string(tier)] = n
	}
	for platform, n := range stats.ByPlatform {
		resp.PlatformStats[string(platform)] = n
	}
	if len(status.GateState) > 0 {
		resp.Gate = make(map[string]responses.GateStateResponse, len(status.GateState))
		for source, st := range status.GateState {
			resp.Gate[source] = toGateStateResponse(st)
		}
	}
	return resp
}

func toGateStateResponse(st backoff.State) responses.GateStateResponse {
	return responses.GateStateResponse{
		ConsecutiveFailures: st.ConsecutiveFailures,
		LastFailureAt:       st.LastFailureAt,
	}
}
