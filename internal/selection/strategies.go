package selection

import (
	"math"
	"sort"

	"github.com/sells-group/storeplan/internal/model"
)

// strategyFunc is the shared shape of every strategy implementation: a pure
// function from (candidates, target, config) to an ordered subset of at most
// target unique candidates.
type strategyFunc func(candidates []model.StoreRecord, target int, cfg Config) []model.StoreRecord

// revenueFocus takes the top performers by performance value, highest first.
// This is also the documented fallback for unknown strategy ids.
func revenueFocus(candidates []model.StoreRecord, target int, _ Config) []model.StoreRecord {
	if target <= 0 || len(candidates) == 0 {
		return nil
	}
	sorted := sortedByPerformanceDesc(candidates)
	return truncate(sorted, target)
}

// geographicCoverage first gives every region its single best store, then
// distributes remaining slots round-robin across regions, consuming each
// region's next-best store per cycle. Regions cycle in the order their best
// stores rank overall, so the first picks match what revenueFocus would take
// one-per-region.
func geographicCoverage(candidates []model.StoreRecord, target int, _ Config) []model.StoreRecord {
	if target <= 0 || len(candidates) == 0 {
		return nil
	}
	sorted := sortedByPerformanceDesc(candidates)

	// Phase 1: one best store per distinct region.
	var selection []model.StoreRecord
	var regionOrder []string
	seenRegion := make(map[string]bool)
	for _, r := range sorted {
		if len(selection) >= target {
			break
		}
		if seenRegion[r.Region] {
			continue
		}
		seenRegion[r.Region] = true
		regionOrder = append(regionOrder, r.Region)
		selection = append(selection, r)
	}
	if len(selection) >= target || len(selection) == len(sorted) {
		return selection
	}

	// Phase 2: round-robin refill. Each region's queue is already sorted
	// descending because the groups are built from the sorted slice; index 0
	// was consumed in phase 1. The refill runs until the target fills or all
	// candidates are consumed; the cycle cap is only a backstop against a
	// drained pool, so a pass that adds nothing ends the loop.
	groups := GroupByRegion(sorted)
	cursors := make(map[string]int, len(regionOrder))
	for _, region := range regionOrder {
		cursors[region] = 1
	}
	maxCycles := 10 * len(regionOrder)
	for cycle := 0; cycle < maxCycles && len(selection) < target; cycle++ {
		progressed := false
		for _, region := range regionOrder {
			if len(selection) >= target {
				break
			}
			queue := groups[region]
			cur := cursors[region]
			if cur >= len(queue) {
				continue
			}
			selection = append(selection, queue[cur])
			cursors[region] = cur + 1
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return selection
}

// growthOpportunities targets underperforming-but-promising stores: the
// slice of the ascending performance distribution between the configured
// lower and upper percentiles (bottom and top excluded). The pool is spread
// one store per region first, then filled in pool order.
func growthOpportunities(candidates []model.StoreRecord, target int, cfg Config) []model.StoreRecord {
	if target <= 0 || len(candidates) == 0 {
		return nil
	}
	asc := sortedByPerformanceAsc(candidates)

	lo := percentileIndex(len(asc), cfg.Params.Growth.LowerPercentile)
	hi := percentileIndex(len(asc), cfg.Params.Growth.UpperPercentile)
	if hi < lo {
		hi = lo
	}

	pool := make([]model.StoreRecord, 0, hi-lo)
	pool = append(pool, asc[lo:hi]...)
	if len(pool) < target {
		// Not enough mid-range candidates; fall back on the excluded bottom
		// slice before giving up slots.
		pool = append(pool, asc[:lo]...)
	}

	var selection []model.StoreRecord
	picked := make(map[string]bool)
	seenRegion := make(map[string]bool)
	for _, r := range pool {
		if len(selection) >= target {
			break
		}
		if seenRegion[r.Region] {
			continue
		}
		seenRegion[r.Region] = true
		picked[r.StoreID] = true
		selection = append(selection, r)
	}
	for _, r := range pool {
		if len(selection) >= target {
			break
		}
		if picked[r.StoreID] {
			continue
		}
		picked[r.StoreID] = true
		selection = append(selection, r)
	}
	return selection
}

// portfolioBalance splits the target into core, growth, and experimental
// tiers. Core picks come from geographicCoverage over the full pool, growth
// picks from growthOpportunities over what remains, and the experimental
// remainder prefers unrepresented regions before taking the lowest
// performers outright.
func portfolioBalance(candidates []model.StoreRecord, target int, cfg Config) []model.StoreRecord {
	if target <= 0 || len(candidates) == 0 {
		return nil
	}

	core := int(math.Round(cfg.Params.Portfolio.CoreShare * float64(target)))
	growth := int(math.Round(cfg.Params.Portfolio.GrowthShare * float64(target)))
	if core > target {
		core = target
	}
	if core+growth > target {
		growth = target - core
	}
	experimental := target - core - growth

	selection := geographicCoverage(candidates, core, cfg)
	picked := idSet(selection)

	remaining := excluding(candidates, picked)
	growthPicks := growthOpportunities(remaining, growth, cfg)
	selection = append(selection, growthPicks...)
	addIDs(picked, growthPicks)

	remaining = excluding(candidates, picked)
	if experimental > 0 && len(remaining) > 0 {
		represented := regionSet(selection)
		taken := 0

		// Prefer the best performer of each region not yet in the selection.
		for _, r := range sortedByPerformanceDesc(remaining) {
			if taken >= experimental {
				break
			}
			if represented[r.Region] {
				continue
			}
			represented[r.Region] = true
			picked[r.StoreID] = true
			selection = append(selection, r)
			taken++
		}

		// Any leftover quota goes to the lowest performers.
		if taken < experimental {
			for _, r := range sortedByPerformanceAsc(remaining) {
				if taken >= experimental {
					break
				}
				if picked[r.StoreID] {
					continue
				}
				picked[r.StoreID] = true
				selection = append(selection, r)
				taken++
			}
		}
	}

	return truncate(selection, target)
}

// marketPenetration weights selection toward high-density regions: regions
// are visited by store count (ties by average performance), and each gets a
// proportional share of the target, never less than one store.
func marketPenetration(candidates []model.StoreRecord, target int, _ Config) []model.StoreRecord {
	if target <= 0 || len(candidates) == 0 {
		return nil
	}
	groups := GroupByRegion(candidates)

	type regionStat struct {
		region string
		count  int
		avg    float64
	}
	order := RegionOrder(candidates)
	stats := make([]regionStat, 0, len(order))
	for _, region := range order {
		g := groups[region]
		stats = append(stats, regionStat{region: region, count: len(g), avg: avgPerformance(g)})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].avg > stats[j].avg
	})

	var selection []model.StoreRecord
	for _, st := range stats {
		remaining := target - len(selection)
		if remaining <= 0 {
			break
		}
		alloc := int(math.Ceil(float64(target) * float64(st.count) / float64(len(candidates))))
		if alloc < 1 {
			alloc = 1
		}
		if alloc > remaining {
			alloc = remaining
		}
		top := sortedByPerformanceDesc(groups[st.region])
		selection = append(selection, truncate(top, alloc)...)
	}
	return truncate(selection, target)
}

// demographicTargeting groups candidates by customer group and channel,
// ranks the segments by average performance, and takes the configured quota
// of top performers from each segment in rank order.
func demographicTargeting(candidates []model.StoreRecord, target int, cfg Config) []model.StoreRecord {
	if target <= 0 || len(candidates) == 0 {
		return nil
	}

	groups := make(map[string][]model.StoreRecord)
	var keyOrder []string
	for _, r := range candidates {
		key := segmentKey(r)
		if _, ok := groups[key]; !ok {
			keyOrder = append(keyOrder, key)
		}
		groups[key] = append(groups[key], r)
	}

	type segmentStat struct {
		key string
		avg float64
	}
	stats := make([]segmentStat, 0, len(keyOrder))
	for _, key := range keyOrder {
		stats = append(stats, segmentStat{key: key, avg: avgPerformance(groups[key])})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].avg > stats[j].avg
	})

	quota := cfg.Params.Demographic.GroupQuota
	var selection []model.StoreRecord
	for _, st := range stats {
		remaining := target - len(selection)
		if remaining <= 0 {
			break
		}
		g := groups[st.key]
		take := int(math.Ceil(float64(len(g)) * quota))
		if take < 1 {
			take = 1
		}
		if take > remaining {
			take = remaining
		}
		top := sortedByPerformanceDesc(g)
		selection = append(selection, truncate(top, take)...)
	}
	return truncate(selection, target)
}

// segmentKey builds the composite customer-group/channel key used by
// demographic targeting.
func segmentKey(r model.StoreRecord) string {
	return r.CustomerGroup + "|" + r.Channel
}

// percentileIndex converts a fraction to an index into a slice of length n,
// clamped to [0, n].
func percentileIndex(n int, p float64) int {
	idx := int(math.Floor(p * float64(n)))
	if idx < 0 {
		return 0
	}
	if idx > n {
		return n
	}
	return idx
}

func idSet(records []model.StoreRecord) map[string]bool {
	set := make(map[string]bool, len(records))
	addIDs(set, records)
	return set
}

func addIDs(set map[string]bool, records []model.StoreRecord) {
	for _, r := range records {
		set[r.StoreID] = true
	}
}

// excluding returns the records whose ids are not in picked, preserving
// input order. Always copies so pools reused across strategy phases never
// alias.
func excluding(records []model.StoreRecord, picked map[string]bool) []model.StoreRecord {
	out := make([]model.StoreRecord, 0, len(records))
	for _, r := range records {
		if picked[r.StoreID] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func regionSet(records []model.StoreRecord) map[string]bool {
	set := make(map[string]bool)
	for _, r := range records {
		set[r.Region] = true
	}
	return set
}

func truncate(records []model.StoreRecord, n int) []model.StoreRecord {
	if n < 0 {
		n = 0
	}
	if len(records) <= n {
		return records
	}
	return records[:n]
}
