// Package category normalizes free-text workout-type labels into category buckets.
package category

import (
	"sort"
	"strings"
)

// Canonical is the fixed set of buckets the filter dropdown always offers,
// independent of what has been stored.
var Canonical = []string{"Strength", "Cardio", "HIIT", "Mobility", "General"}

// Derive maps a workout-type label to a non-empty category bucket. Total and
// deterministic: every input, including the empty string, gets a bucket.
func Derive(workoutType string) string {
	wt := strings.ToLower(strings.TrimSpace(workoutType))
	switch {
	case strings.HasPrefix(wt, "strength"):
		return "Strength"
	case strings.HasPrefix(wt, "cardio"):
		return "Cardio"
	case strings.HasPrefix(wt, "hiit"):
		return "HIIT"
	case strings.Contains(wt, "yoga"), strings.Contains(wt, "mobility"):
		return "Mobility"
	}

	head, _, _ := strings.Cut(workoutType, "(")
	if head = strings.TrimSpace(head); head != "" {
		return head
	}
	return "General"
}

// Vocabulary unions the stored categories with the canonical buckets and
// sorts the result, so the dropdown is complete even on an empty store.
func Vocabulary(stored []string) []string {
	seen := make(map[string]bool, len(stored)+len(Canonical))
	out := make([]string, 0, len(stored)+len(Canonical))
	for _, c := range stored {
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, c := range Canonical {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
