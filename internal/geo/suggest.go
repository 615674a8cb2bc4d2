package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TargetCountry is the only country code suggestions are kept for.
const TargetCountry = "BR"

// SingleCityLimit is the resolver limit used when a single city is wanted.
const SingleCityLimit = 1

// ErrNoMatch is returned when no candidate survives filtering.
var ErrNoMatch = errors.New("no city found")

// Candidate is one raw geocoding result.
type Candidate struct {
	Name    string  `json:"name"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CitySuggestion is a deduplicated, labelled candidate.
type CitySuggestion struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// ResolveSuggestions keeps TargetCountry candidates with a non-empty name,
// drops later candidates whose name matches an earlier one ignoring case,
// and returns at most limit entries in input order.
func ResolveSuggestions(candidates []Candidate, limit int) []CitySuggestion {
	suggestions := make([]CitySuggestion, 0)
	if limit <= 0 {
		return suggestions
	}

	lower := cases.Lower(language.Und)
	seen := make(map[string]struct{}, len(candidates))

	for _, c := range candidates {
		if c.Country != TargetCountry {
			continue
		}

		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}

		key := lower.String(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		suggestions = append(suggestions, CitySuggestion{
			ID:    suggestionID(c, len(suggestions)),
			Label: label(c),
			Lat:   c.Lat,
			Lon:   c.Lon,
		})
		if len(suggestions) == limit {
			break
		}
	}

	return suggestions
}

// FirstSuggestion resolves with SingleCityLimit and returns ErrNoMatch when
// nothing is left.
func FirstSuggestion(candidates []Candidate) (CitySuggestion, error) {
	resolved := ResolveSuggestions(candidates, SingleCityLimit)
	if len(resolved) == 0 {
		return CitySuggestion{}, ErrNoMatch
	}
	return resolved[0], nil
}

func suggestionID(c Candidate, position int) string {
	return fmt.Sprintf("%s-%s-%d",
		strconv.FormatFloat(c.Lat, 'f', -1, 64),
		strconv.FormatFloat(c.Lon, 'f', -1, 64),
		position)
}

func label(c Candidate) string {
	parts := []string{strings.TrimSpace(c.Name)}
	if state := strings.TrimSpace(c.State); state != "" {
		parts = append(parts, state)
	}
	parts = append(parts, c.Country)
	return strings.Join(parts, ", ")
}
