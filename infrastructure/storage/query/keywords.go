// ABOUTME: Keyword table layout and statements shared by the SQL keyword stores
// ABOUTME: Maps domain keywords and long-tail records to rows and back

package query

import (
	"time"

	"github.com/goccy/go-json"

	"keywords-app-api/core/domain"
)

const (
	KeywordsTable  = "keywords"
	LongtailsTable = "longtails"
)

// KeywordColumns is the full keywords row, key first
var KeywordColumns = []string{
	"text_key", "text", "search_volume", "competition", "cpc", "score", "platform", "metadata", "collected_at",
}

// LongtailColumns is the full longtails row, keys first
var LongtailColumns = []string{
	"seed_key", "candidate_key", "seed", "candidate", "candidate_origin", "result_origin",
	"search_volume", "competition", "cpc", "score", "collected_at",
}

// Aggregate statements. None take parameters.
const (
	StatsTotals        = `SELECT COUNT(*), COALESCE(SUM(CASE WHEN competition = 'low' THEN 1 ELSE 0 END), 0), COALESCE(AVG(CASE WHEN cpc > 0 THEN cpc END), 0) FROM keywords`
	StatsByPlatform    = `SELECT platform, COUNT(*) FROM keywords GROUP BY platform`
	StatsByCompetition = `SELECT competition, COUNT(*) FROM keywords WHERE competition <> '' GROUP BY competition`
	StatsLatest        = `SELECT collected_at FROM keywords ORDER BY collected_at DESC LIMIT 1`
)

// Scanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// UpsertKeyword builds the upsert for one keyword
func UpsertKeyword(style Placeholder, k domain.Keyword) (string, []interface{}, error) {
	if err := ValidateKeyword(k.Text); err != nil {
		return "", nil, err
	}

	meta := ""
	if k.Metadata != nil {
		raw, err := json.Marshal(k.Metadata)
		if err != nil {
			return "", nil, err
		}
		meta = string(raw)
	}

	values := []interface{}{
		domain.ComparisonKey(k.Text),
		k.Text,
		k.SearchVolume,
		string(k.Competition),
		k.CostPerClick,
		k.Score,
		string(k.Platform),
		meta,
		k.CollectedAt.UTC(),
	}
	return New(style).Upsert(KeywordsTable, KeywordColumns[:1], KeywordColumns, values).Build()
}

// UpsertLongtail builds the upsert for one long-tail record
func UpsertLongtail(style Placeholder, r domain.LongtailRecord) (string, []interface{}, error) {
	if err := ValidateKeyword(r.Candidate.Text); err != nil {
		return "", nil, err
	}

	var volume, score int
	var competition string
	var cpc float64
	if e := r.Candidate.Enrichment; e != nil {
		volume, score, cpc = e.SearchVolume, e.Score, e.CostPerClick
		competition = string(e.Competition)
	}

	values := []interface{}{
		domain.ComparisonKey(r.SeedKeyword),
		domain.ComparisonKey(r.Candidate.Text),
		r.SeedKeyword,
		r.Candidate.Text,
		string(r.Candidate.Origin),
		string(r.Origin),
		volume,
		competition,
		cpc,
		score,
		r.CollectedAt.UTC(),
	}
	return New(style).Upsert(LongtailsTable, LongtailColumns[:2], LongtailColumns, values).Build()
}

// OrderFor returns the ORDER BY terms for a listing sort.
// Ties fall back to score, volume, then text.
func OrderFor(sort domain.KeywordSort) []Order {
	tail := []Order{
		{Column: "score", Desc: true},
		{Column: "search_volume", Desc: true},
		{Column: "text"},
	}
	switch sort {
	case domain.SortVolume:
		return append([]Order{{Column: "search_volume", Desc: true}}, tail...)
	case domain.SortCPC:
		return append([]Order{{Column: "cpc", Desc: true}}, tail...)
	case domain.SortRecent:
		return append([]Order{{Column: "collected_at", Desc: true}}, tail...)
	default:
		return tail
	}
}

// ListKeywords builds the listing query for a normalized KeywordQuery
func ListKeywords(style Placeholder, q domain.KeywordQuery) (string, []interface{}, error) {
	b := New(style).Select(KeywordsTable, KeywordColumns[1:]...)
	if q.Filter == domain.FilterLowCompetition {
		b.Where("competition", "=", string(domain.CompetitionLow))
	}
	if q.Platform != "" {
		b.Where("platform", "=", string(q.Platform))
	}
	return b.OrderBy(OrderFor(q.Sort)...).Page(q.Limit, q.Offset).Build()
}

// ScanKeyword reads one row selected by ListKeywords
func ScanKeyword(row Scanner) (domain.Keyword, error) {
	var (
		k           domain.Keyword
		competition string
		platform    string
		meta        string
		collectedAt time.Time
	)

	if err := row.Scan(&k.Text, &k.SearchVolume, &competition, &k.CostPerClick, &k.Score, &platform, &meta, &collectedAt); err != nil {
		return k, err
	}

	k.Competition = domain.CompetitionTier(competition)
	k.Platform = domain.Platform(platform)
	k.CollectedAt = collectedAt
	if meta != "" {
		var m domain.KeywordMetadata
		if err := json.Unmarshal([]byte(meta), &m); err == nil {
			k.Metadata = &m
		}
	}
	return k, nil
}
