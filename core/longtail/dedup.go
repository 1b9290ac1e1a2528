package longtail

import "keywords-app-api/core/domain"

// Dedupe drops candidates whose comparison key was already seen, keeping
// first-seen order and original text, then truncates to limit.
// A limit of zero or less means no cap.
func Dedupe(candidates []domain.LongtailCandidate, limit int) []domain.LongtailCandidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]domain.LongtailCandidate, 0, len(candidates))

	for _, c := range candidates {
		key := domain.ComparisonKey(c.Text)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)

		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
