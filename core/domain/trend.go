// ABOUTME: Trend domain models for bulk trending searches and interest series
// ABOUTME: Traffic decodes from either a JSON number or a formatted string

package domain

import (
	"bytes"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Traffic is an approximate search traffic value as reported upstream.
// Providers send either a number or a string such as "200K+".
type Traffic struct {
	Number   *float64
	Text     string
	Provided bool
}

// TrafficFromNumber builds a numeric traffic value
func TrafficFromNumber(n float64) Traffic {
	return Traffic{Number: &n, Provided: true}
}

// TrafficFromText builds a textual traffic value
func TrafficFromText(s string) Traffic {
	return Traffic{Text: s, Provided: true}
}

// UnmarshalJSON accepts numbers, strings and null
func (t *Traffic) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Traffic{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TrafficFromText(s)
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		// unparseable values normalize to zero later
		*t = TrafficFromText(string(data))
		return nil
	}
	*t = TrafficFromNumber(n)
	return nil
}

// MarshalJSON writes the number when present, otherwise the text
func (t Traffic) MarshalJSON() ([]byte, error) {
	if t.Number != nil {
		return json.Marshal(*t.Number)
	}
	if !t.Provided {
		return []byte("null"), nil
	}
	return json.Marshal(t.Text)
}

// String returns a display form of the traffic value
func (t Traffic) String() string {
	if t.Number != nil {
		return strconv.FormatFloat(*t.Number, 'f', -1, 64)
	}
	return t.Text
}

// TrendItem is one trending search as reported by a trends provider
type TrendItem struct {
	Query          string   `json:"query"`
	Traffic        Traffic  `json:"traffic"`
	ExploreLink    string   `json:"exploreLink,omitempty"`
	SerpAPILink    string   `json:"serpapiLink,omitempty"`
	RelatedQueries []string `json:"relatedQueries,omitempty"`
}

// TrendsSnapshot is one fetch of bulk trends
type TrendsSnapshot struct {
	Source    string      `json:"source"`
	Geo       string      `json:"geo"`
	Items     []TrendItem `json:"items"`
	FetchedAt time.Time   `json:"fetchedAt"`
}

// InterestPoint is one sample of a keyword interest-over-time series
type InterestPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// RelatedQuery is a query associated with a keyword in the trends provider
type RelatedQuery struct {
	Query string `json:"query"`
	Value int    `json:"value"`
	Link  string `json:"link,omitempty"`
}
