// ABOUTME: Request DTOs for keyword, long-tail and trends endpoints
// ABOUTME: Huma validates the struct tags before handlers run

package requests

// GenerateLongtailRequest asks for long-tail expansions of one seed
type GenerateLongtailRequest struct {
	// Keyword is the seed to expand
	Keyword string `json:"keyword" minLength:"1" maxLength:"100" doc:"Seed keyword" example:"캠핑"`

	// IncludeVolume enriches leading candidates with search metrics
	IncludeVolume bool `json:"includeVolume,omitempty" doc:"Look up search volume for the leading candidates"`

	// EnrichmentLimit overrides how many candidates are enriched
	EnrichmentLimit *int `json:"enrichmentLimit,omitempty" minimum:"0" maximum:"20" doc:"Number of candidates to enrich (default 10)"`
}

// BatchLongtailRequest expands several seeds on the worker pool
type BatchLongtailRequest struct {
	Keywords      []string `json:"keywords" minItems:"1" maxItems:"20" doc:"Seed keywords"`
	IncludeVolume bool     `json:"includeVolume,omitempty" doc:"Look up search volume for the leading candidates"`
}

// KeywordRequest names a single keyword
type KeywordRequest struct {
	Keyword string `json:"keyword" minLength:"1" maxLength:"100" doc:"Keyword to look up"`
}

// RelatedKeywordsRequest asks for related keywords from the paid-search API
type RelatedKeywordsRequest struct {
	Keyword string `json:"keyword" minLength:"1" maxLength:"100" doc:"Keyword to look up"`
	Limit   int    `json:"limit,omitempty" minimum:"0" maximum:"50" doc:"Maximum number of related keywords (default 10)"`
}

// CollectAllRequest runs a batch collection
type CollectAllRequest struct {
	// Seeds overrides the default seed list when non-empty
	Seeds []string `json:"seeds,omitempty" maxItems:"50" doc:"Seed keywords (defaults to the built-in list)"`
}
