package selection

import (
	"sort"
	"strconv"

	"github.com/sells-group/storeplan/internal/model"
)

// GroupByRegion partitions records by exact region string equality.
// Insertion order within each group follows the input order. Use RegionOrder
// to iterate the groups deterministically.
func GroupByRegion(records []model.StoreRecord) map[string][]model.StoreRecord {
	groups := make(map[string][]model.StoreRecord)
	for _, r := range records {
		groups[r.Region] = append(groups[r.Region], r)
	}
	return groups
}

// RegionOrder returns the distinct regions of records in first-appearance
// order. Pairing it with GroupByRegion keeps region iteration deterministic.
func RegionOrder(records []model.StoreRecord) []string {
	seen := make(map[string]bool)
	var order []string
	for _, r := range records {
		if seen[r.Region] {
			continue
		}
		seen[r.Region] = true
		order = append(order, r.Region)
	}
	return order
}

// HistogramBin is one bucket of a performance histogram.
type HistogramBin struct {
	Label   string              `json:"label"`
	Lo      float64             `json:"lo"`
	Hi      float64             `json:"hi"`
	Records []model.StoreRecord `json:"-"`
	Count   int                 `json:"count"`
}

// Histogram divides the performance-value range of records into binCount
// equal-width bins. The last bin is inclusive on both ends, all others are
// [lo, hi). When every value is equal the range is degenerate and all records
// land in bin 0. Returns nil when records is empty or binCount < 1.
func Histogram(records []model.StoreRecord, binCount int) []HistogramBin {
	if len(records) == 0 || binCount < 1 {
		return nil
	}

	lo, hi := records[0].PerformanceValue, records[0].PerformanceValue
	for _, r := range records[1:] {
		if r.PerformanceValue < lo {
			lo = r.PerformanceValue
		}
		if r.PerformanceValue > hi {
			hi = r.PerformanceValue
		}
	}

	bins := make([]HistogramBin, binCount)
	width := (hi - lo) / float64(binCount)
	for i := range bins {
		binLo := lo + float64(i)*width
		binHi := binLo + width
		if i == binCount-1 {
			binHi = hi
		}
		bins[i] = HistogramBin{
			Label: binLabel(binLo, binHi),
			Lo:    binLo,
			Hi:    binHi,
		}
	}

	for _, r := range records {
		idx := 0
		if width > 0 {
			idx = int((r.PerformanceValue - lo) / width)
			if idx >= binCount {
				idx = binCount - 1
			}
		}
		bins[idx].Records = append(bins[idx].Records, r)
		bins[idx].Count++
	}

	return bins
}

// binLabel renders "12k - 24k" style bounds in thousands.
func binLabel(lo, hi float64) string {
	return formatThousands(lo) + "k - " + formatThousands(hi) + "k"
}

func formatThousands(v float64) string {
	return strconv.FormatFloat(v/1000, 'f', -1, 64)
}

// Percentile returns the element at position floor(p*len) of an
// already-sorted slice, clamped to the valid index range. Returns 0 for an
// empty slice. The caller chooses sort direction; positions are counted from
// the front of whatever order is given.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// sortedByPerformanceDesc returns a copy of records stable-sorted by
// performance value descending. Equal values keep their input order.
func sortedByPerformanceDesc(records []model.StoreRecord) []model.StoreRecord {
	out := make([]model.StoreRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PerformanceValue > out[j].PerformanceValue
	})
	return out
}

// sortedByPerformanceAsc returns a copy of records stable-sorted by
// performance value ascending.
func sortedByPerformanceAsc(records []model.StoreRecord) []model.StoreRecord {
	out := make([]model.StoreRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PerformanceValue < out[j].PerformanceValue
	})
	return out
}

// performanceValuesDesc extracts performance values sorted descending.
func performanceValuesDesc(records []model.StoreRecord) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.PerformanceValue
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))
	return values
}

func avgPerformance(records []model.StoreRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.PerformanceValue
	}
	return sum / float64(len(records))
}
