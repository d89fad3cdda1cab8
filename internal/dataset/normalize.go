package dataset

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/storeplan/internal/mapping"
	"github.com/sells-group/storeplan/internal/model"
)

// buildRecord normalizes one source row into a StoreRecord. The returned
// bool is false when the row violates the engine's record invariant and must
// be rejected; issues describe both rejections and silent repairs.
func buildRecord(row []string, cm *mapping.ColumnMap, rowNum int) (model.StoreRecord, []RowIssue, bool) {
	var issues []RowIssue

	name := collapseSpace(cm.Value(row, "name"))
	if name == "" {
		issues = append(issues, RowIssue{Row: rowNum, Column: "name", Reason: "empty store name"})
		return model.StoreRecord{}, issues, false
	}

	region := titleCase(cm.Value(row, "region"))
	if region == "" {
		issues = append(issues, RowIssue{Row: rowNum, Column: "region", Reason: "empty region"})
		return model.StoreRecord{}, issues, false
	}

	rawPerf := cm.Value(row, "performance")
	perf, err := ParseNumber(rawPerf)
	if err != nil {
		issues = append(issues, RowIssue{
			Row:    rowNum,
			Column: "performance",
			Reason: "unparseable performance value " + strconv.Quote(rawPerf),
		})
		return model.StoreRecord{}, issues, false
	}
	if perf < 0 {
		issues = append(issues, RowIssue{
			Row:    rowNum,
			Column: "performance",
			Reason: "negative performance value " + rawPerf,
		})
		return model.StoreRecord{}, issues, false
	}

	rec := model.StoreRecord{
		StoreID:          cm.Value(row, "store_id"),
		CRMID:            cm.Value(row, "crm_id"),
		Name:             name,
		Street:           collapseSpace(cm.Value(row, "street")),
		StreetNumber:     cm.Value(row, "street_number"),
		PostalCode:       cm.Value(row, "postal_code"),
		City:             titleCase(cm.Value(row, "city")),
		Region:           region,
		Channel:          strings.ToLower(cm.Value(row, "channel")),
		StoreType:        strings.ToLower(cm.Value(row, "store_type")),
		CustomerGroup:    strings.ToLower(cm.Value(row, "customer_group")),
		StrategyTag:      cm.Value(row, "strategy_tag"),
		PerformanceValue: perf,
	}

	if rec.StoreID == "" {
		// Identity must survive normalization; exports without a store
		// number get a positional id.
		rec.StoreID = "row-" + strconv.Itoa(rowNum)
	}

	if rawSize := cm.Value(row, "store_size"); rawSize != "" {
		size, err := ParseNumber(rawSize)
		if err != nil || size < 0 {
			issues = append(issues, RowIssue{
				Row:    rowNum,
				Column: "store_size",
				Reason: "invalid store size " + strconv.Quote(rawSize) + ", defaulted to 0",
			})
		} else {
			rec.StoreSize = size
		}
	}

	return rec, issues, true
}

// numberJunk matches everything that cannot be part of a numeric literal:
// currency symbols, unit suffixes, whitespace.
var numberJunk = regexp.MustCompile(`[^0-9.,\-+]`)

// ParseNumber parses the numeric formats retail exports actually contain:
// "1234.56", "1.234,56", "1,234.56", "1 234", "€ 1.234,00" and "1234 EUR".
// When both separators appear, the rightmost one is the decimal point. A
// lone comma is a decimal comma unless it groups exactly three trailing
// digits; a lone dot is always a decimal point unless it repeats.
func ParseNumber(s string) (float64, error) {
	cleaned := numberJunk.ReplaceAllString(strings.TrimSpace(s), "")
	if cleaned == "" {
		return 0, strconv.ErrSyntax
	}

	lastDot := strings.LastIndexByte(cleaned, '.')
	lastComma := strings.LastIndexByte(cleaned, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// German style: dots group, comma is decimal.
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(cleaned, ",") == 1 && len(cleaned)-lastComma-1 == 3 {
			// "1,234" reads as a thousands group.
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else if strings.Count(cleaned, ",") > 1 {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	case strings.Count(cleaned, ".") > 1:
		// "1.234.567" groups thousands.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// collapseSpace trims and folds internal whitespace runs to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleCase canonicalizes categorical values: "BAYERN" and "bayern" both
// become "Bayern", and hyphenated names keep each part capitalized.
func titleCase(s string) string {
	s = collapseSpace(s)
	if s == "" {
		return ""
	}
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = capitalizeHyphenated(w)
	}
	return strings.Join(words, " ")
}

func capitalizeHyphenated(w string) string {
	parts := strings.Split(w, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		parts[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(parts, "-")
}
