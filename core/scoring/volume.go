// ABOUTME: Volume parsing normalizes heterogeneous search volume encodings
// ABOUTME: Handles exact counts, open-ended bounds like "< 10" and grouped digits

package scoring

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	// MinUpperBoundEstimate is used for "<" with no number
	MinUpperBoundEstimate = 5

	// LowerBoundFallback is used for ">" with no number
	LowerBoundFallback = 1000
)

// ParseVolume converts an upstream volume value to a non-negative integer estimate.
// Accepted inputs are integers, floats, json.Number, strings and nil.
func ParseVolume(v interface{}) int {
	switch val := v.(type) {
	case nil:
		return 0
	case int:
		return nonNegative(val)
	case int32:
		return nonNegative(int(val))
	case int64:
		return nonNegative(int(val))
	case float64:
		return floatVolume(val)
	case float32:
		return floatVolume(float64(val))
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return floatVolume(f)
		}
		return ParseVolume(val.String())
	case string:
		return parseVolumeString(val)
	default:
		return 0
	}
}

func parseVolumeString(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	switch s[0] {
	case '<':
		n, ok := digitsOf(s[1:])
		if !ok {
			return MinUpperBoundEstimate
		}
		return n / 2
	case '>':
		n, ok := digitsOf(s[1:])
		if !ok {
			return LowerBoundFallback
		}
		return int(math.Floor(float64(n) * 1.5))
	case '-':
		return 0
	}

	n, ok := digitsOf(s)
	if !ok {
		return 0
	}
	return n
}

// digitsOf strips every non-digit and parses what is left
func digitsOf(s string) (int, bool) {
	var b strings.Builder
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

func floatVolume(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(f)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
