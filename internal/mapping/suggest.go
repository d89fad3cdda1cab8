package mapping

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Suggestion proposes a header for a requirement key. Confidence is 1.0 for
// an exact normalized match and decreases for prefix and containment
// matches; the caller confirms before the mapping is used.
type Suggestion struct {
	Requirement string  `json:"requirement"`
	Header      string  `json:"header"`
	Confidence  float64 `json:"confidence"`
}

const (
	confidenceExact    = 1.0
	confidencePrefix   = 0.8
	confidenceContains = 0.6
)

// Suggest proposes at most one header per requirement in the registry.
// Matching is case- and accent-insensitive and fully deterministic: equal
// scores resolve to the leftmost header. Requirements with no plausible
// header are omitted.
func Suggest(header []string, reg *Registry) []Suggestion {
	normalized := make([]string, len(header))
	for i, col := range header {
		normalized[i] = normalizeHeader(col)
	}

	var out []Suggestion
	taken := make(map[int]bool)

	for _, req := range reg.Requirements {
		bestIdx := -1
		bestScore := 0.0
		for i, n := range normalized {
			if n == "" || taken[i] {
				continue
			}
			score := matchScore(n, req)
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			continue
		}
		taken[bestIdx] = true
		out = append(out, Suggestion{
			Requirement: req.Key,
			Header:      strings.TrimSpace(header[bestIdx]),
			Confidence:  bestScore,
		})
	}

	// Strong matches first; registry order breaks score ties.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// matchScore rates how well a normalized header satisfies a requirement.
func matchScore(header string, req Requirement) float64 {
	targets := make([]string, 0, len(req.Synonyms)+1)
	targets = append(targets, normalizeHeader(req.Key))
	targets = append(targets, req.Synonyms...)

	best := 0.0
	for _, target := range targets {
		if target == "" {
			continue
		}
		var score float64
		switch {
		case header == target:
			score = confidenceExact
		case strings.HasPrefix(header, target) || strings.HasPrefix(target, header):
			score = confidencePrefix
		case strings.Contains(header, target):
			score = confidenceContains
		}
		if score > best {
			best = score
		}
	}
	return best
}

// foldTransformer strips diacritics: NFD decomposition, drop combining
// marks, recompose.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// germanTranslit rewrites umlauts to their two-letter spellings before the
// general fold runs, so "Fläche" compares equal to "Flaeche" rather than
// "Flache".
var germanTranslit = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
)

// normalizeHeader lowers, folds accents, and drops everything that is not a
// letter or digit, so "Umsatz (EUR)" and "UMSATZ EUR" compare equal.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = germanTranslit.Replace(s)
	if folded, _, err := transform.String(foldTransformer, s); err == nil {
		s = folded
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
