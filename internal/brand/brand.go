// Package brand derives a retailer brand from a store display name. Store
// datasets carry names like "REWE Markt 0815" or "EDEKA Center Hamburg-Nord
// GmbH"; stripping branch decorations lets selections be counted per
// retailer.
package brand

import (
	"regexp"
	"strings"
)

// legalSuffixes requires whitespace or a comma before the suffix so short
// forms like SE or AG never eat the tail of a brand name.
var legalSuffixes = regexp.MustCompile(
	`(?i)[\s,]+(GMBH\s*&\s*CO\.?\s*KG|GMBH|AG|KG|OHG|E\.?K\.?|E\.?V\.?|` +
		`SE|UG|S\.?A\.?R\.?L\.?|S\.?A\.?|B\.?V\.?|N\.?V\.?|` +
		`LLC|INC\.?|CORP\.?|CO\.?|LTD\.?|LIMITED)\s*\.?\s*$`)

var branchWords = regexp.MustCompile(
	`(?i)\b(MARKT|MARKET|FILIALE|STORE|SHOP|CENTER|CENTRE|XPRESS|EXPRESS|CITY)\b`)

// storeNumbers matches trailing branch numbering: "0815", "Nr. 12", "#27",
// "F-103".
var storeNumbers = regexp.MustCompile(`(?i)\s*(?:NR\.?\s*|#|F-)?\d{1,6}\s*$`)

var multiSpace = regexp.MustCompile(`\s{2,}`)

// Extract reduces a store display name to its retailer brand: trailing store
// numbers, legal-entity suffixes, and branch words are removed and the first
// remaining token run is kept. Empty input yields an empty brand.
func Extract(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" {
		return ""
	}

	n = storeNumbers.ReplaceAllString(n, "")
	n = legalSuffixes.ReplaceAllString(n, "")
	n = storeNumbers.ReplaceAllString(n, "")
	n = branchWords.ReplaceAllString(n, " ")
	n = multiSpace.ReplaceAllString(n, " ")
	n = strings.TrimSpace(n)

	// The brand is the leading word; everything after a branch word or the
	// first breakpoint is location flavor ("EDEKA Hamburg-Nord").
	if i := strings.IndexByte(n, ' '); i > 0 {
		n = n[:i]
	}
	n = strings.Trim(n, " -,.")
	if n == "" {
		// Numbering-only names keep their original form rather than
		// collapsing to nothing.
		return strings.ToUpper(strings.TrimSpace(name))
	}
	return n
}

// Unique counts the distinct brands across names.
func Unique(names []string) int {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[Extract(name)] = true
	}
	return len(seen)
}
