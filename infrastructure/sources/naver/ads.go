// ABOUTME: Naver Search Ads keyword tool client with HMAC request signing
// ABOUTME: Looks up volume, competition and CPC for a keyword and its related keywords

package naver

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"keywords-app-api/core/domain"
	"keywords-app-api/core/errors"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/core/scoring"
	"keywords-app-api/infrastructure/sources/upstream"
)

const (
	// AdsSourceName identifies this upstream in errors, gate state and metrics
	AdsSourceName = "naver-ads"

	DefaultAdsBaseURL = "https://api.searchad.naver.com"
	keywordToolURI    = "/keywordstool"

	DefaultRelatedLimit = 10
	MaxRelatedLimit     = 50
)

// Sign computes the request signature: base64(HMAC-SHA256(secret, "ts.method.uri"))
func Sign(secret, timestamp, method, uri string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "." + method + "." + uri))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// AdsCredentials authenticates against the Search Ads API
type AdsCredentials struct {
	APIKey     string
	SecretKey  string
	CustomerID string
}

// AdsClient implements MetricsSource and RelatedKeywordSource
type AdsClient struct {
	http    interfaces.HTTPClient
	creds   AdsCredentials
	baseURL string
	now     func() time.Time
	metrics interfaces.MetricsRecorder
}

// AdsOption configures an AdsClient
type AdsOption func(*AdsClient)

// WithAdsBaseURL overrides the API host
func WithAdsBaseURL(u string) AdsOption {
	return func(c *AdsClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithAdsClock sets the timestamp source used for signing
func WithAdsClock(now func() time.Time) AdsOption {
	return func(c *AdsClient) { c.now = now }
}

// WithAdsMetrics records upstream call outcomes
func WithAdsMetrics(m interfaces.MetricsRecorder) AdsOption {
	return func(c *AdsClient) { c.metrics = m }
}

// NewAdsClient returns a ConfigurationError when any credential is missing
func NewAdsClient(httpClient interfaces.HTTPClient, creds AdsCredentials, opts ...AdsOption) (*AdsClient, error) {
	var missing []string
	if creds.APIKey == "" {
		missing = append(missing, "NAVER_API_KEY")
	}
	if creds.SecretKey == "" {
		missing = append(missing, "NAVER_SECRET_KEY")
	}
	if creds.CustomerID == "" {
		missing = append(missing, "NAVER_CUSTOMER_ID")
	}
	if len(missing) > 0 {
		return nil, &errors.ConfigurationError{
			Component: AdsSourceName,
			Message:   "missing credentials: " + strings.Join(missing, ", "),
		}
	}

	c := &AdsClient{
		http:    httpClient,
		creds:   creds,
		baseURL: DefaultAdsBaseURL,
		now:     time.Now,
		metrics: interfaces.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type keywordToolResponse struct {
	KeywordList []keywordToolEntry `json:"keywordList"`
}

// Volume fields arrive as numbers or strings like "< 10"
type keywordToolEntry struct {
	RelKeyword         string      `json:"relKeyword"`
	MonthlyPcQcCnt     interface{} `json:"monthlyPcQcCnt"`
	MonthlyMobileQcCnt interface{} `json:"monthlyMobileQcCnt"`
	CompIdx            string      `json:"compIdx"`
	PlAvgDepth         float64     `json:"plAvgDepth"`
	AvgCpc             *float64    `json:"avgCpc"`
	MonthlyAvePcCpc    *float64    `json:"monthlyAvePcCpc"`
	MonthlyAveMobCpc   *float64    `json:"monthlyAveMobileCpc"`
}

func (e keywordToolEntry) toMetrics() domain.KeywordMetrics {
	return domain.KeywordMetrics{
		Keyword:      e.RelKeyword,
		VolumePC:     scoring.ParseVolume(e.MonthlyPcQcCnt),
		VolumeMobile: scoring.ParseVolume(e.MonthlyMobileQcCnt),
		Competition:  domain.ParseCompetitionTier(e.CompIdx),
		AvgCPC:       e.cpc(),
	}
}

func (e keywordToolEntry) cpc() float64 {
	if e.AvgCpc != nil {
		return *e.AvgCpc
	}
	switch {
	case e.MonthlyAvePcCpc != nil && e.MonthlyAveMobCpc != nil:
		return (*e.MonthlyAvePcCpc + *e.MonthlyAveMobCpc) / 2
	case e.MonthlyAvePcCpc != nil:
		return *e.MonthlyAvePcCpc
	case e.MonthlyAveMobCpc != nil:
		return *e.MonthlyAveMobCpc
	}
	return 0
}

// compact removes whitespace; the keyword tool rejects hints containing spaces
func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func (c *AdsClient) keywordTool(ctx context.Context, keyword string) ([]keywordToolEntry, error) {
	params := url.Values{}
	params.Set("hintKeywords", compact(keyword))
	params.Set("showDetail", "1")

	ts := strconv.FormatInt(c.now().UnixMilli(), 10)
	headers := map[string]string{
		"X-Timestamp": ts,
		"X-API-KEY":   c.creds.APIKey,
		"X-Customer":  c.creds.CustomerID,
		"X-Signature": Sign(c.creds.SecretKey, ts, http.MethodGet, keywordToolURI),
		"Accept":      "application/json",
	}

	start := time.Now()
	var out keywordToolResponse
	err := upstream.GetJSON(ctx, c.http, AdsSourceName, c.baseURL+keywordToolURI+"?"+params.Encode(), headers, &out)
	c.metrics.ObserveUpstream(AdsSourceName, outcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}
	return out.KeywordList, nil
}

// FetchKeywordMetrics returns metrics for the exact keyword, or nil when the API has no match
func (c *AdsClient) FetchKeywordMetrics(ctx context.Context, keyword string) (*domain.KeywordMetrics, error) {
	entries, err := c.keywordTool(ctx, keyword)
	if err != nil {
		return nil, err
	}

	want := compact(keyword)
	for _, e := range entries {
		if compact(e.RelKeyword) == want {
			m := e.toMetrics()
			return &m, nil
		}
	}
	return nil, nil
}

// FetchRelatedKeywords returns up to limit keywords other than the seed, in API order
func (c *AdsClient) FetchRelatedKeywords(ctx context.Context, keyword string, limit int) ([]domain.KeywordMetrics, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	if limit > MaxRelatedLimit {
		limit = MaxRelatedLimit
	}

	entries, err := c.keywordTool(ctx, keyword)
	if err != nil {
		return nil, err
	}

	want := compact(keyword)
	out := make([]domain.KeywordMetrics, 0, limit)
	for _, e := range entries {
		if compact(e.RelKeyword) == want {
			continue
		}
		out = append(out, e.toMetrics())
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.IsUpstream(err):
		return "failure"
	default:
		return "canceled"
	}
}
