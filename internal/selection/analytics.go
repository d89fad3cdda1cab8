package selection

import "github.com/sells-group/storeplan/internal/model"

// Result is the outcome of one engine invocation: the ordered selection plus
// the analytics derived from it. Results are recomputed on every call and
// never cached.
type Result struct {
	SelectedStores []model.StoreRecord     `json:"selected_stores"`
	TotalRevenue   float64                 `json:"total_revenue"`
	AverageRevenue float64                 `json:"average_revenue"`
	RegionCoverage float64                 `json:"region_coverage"`
	Distribution   PerformanceDistribution `json:"performance_distribution"`
	Statistics     Statistics              `json:"statistics"`
}

// PerformanceDistribution counts the selection's stores by performance tier.
// Tiers are relative to the selection's own distribution, not the full
// dataset: the thresholds sit at the 33rd and 66th percentile positions of
// the selected values sorted descending.
type PerformanceDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Statistics aggregates the selection for reporting.
type Statistics struct {
	TotalStores      int                `json:"total_stores"`
	UniqueRegions    int                `json:"unique_regions"`
	UniqueRetailers  int                `json:"unique_retailers"`
	RevenuePerRegion map[string]float64 `json:"revenue_per_region"`
}

// buildResult derives the full analytics block for a selection against the
// working set it was drawn from. Empty selections yield an all-zero result,
// never a division by zero.
func buildResult(selected, workingSet []model.StoreRecord, brandFn BrandFunc) Result {
	res := Result{
		SelectedStores: selected,
		Statistics: Statistics{
			RevenuePerRegion: make(map[string]float64),
		},
	}
	if res.SelectedStores == nil {
		res.SelectedStores = []model.StoreRecord{}
	}
	if len(selected) == 0 {
		return res
	}

	brands := make(map[string]bool)
	for _, r := range selected {
		res.TotalRevenue += r.PerformanceValue
		res.Statistics.RevenuePerRegion[r.Region] += r.PerformanceValue
		brands[brandFn(r.Name)] = true
	}
	res.AverageRevenue = res.TotalRevenue / float64(len(selected))

	res.Statistics.TotalStores = len(selected)
	res.Statistics.UniqueRegions = len(RegionOrder(selected))
	res.Statistics.UniqueRetailers = len(brands)

	if wsRegions := len(RegionOrder(workingSet)); wsRegions > 0 {
		res.RegionCoverage = float64(res.Statistics.UniqueRegions) / float64(wsRegions)
	}

	desc := performanceValuesDesc(selected)
	highThreshold := Percentile(desc, 0.33)
	mediumThreshold := Percentile(desc, 0.66)
	for _, v := range desc {
		switch {
		case v >= highThreshold:
			res.Distribution.High++
		case v >= mediumThreshold:
			res.Distribution.Medium++
		default:
			res.Distribution.Low++
		}
	}

	return res
}
