package model

// Filter narrows a dataset before selection. Zero-valued fields are ignored,
// so the empty Filter matches every record.
type Filter struct {
	Regions        []string `json:"regions,omitempty"`
	Channels       []string `json:"channels,omitempty"`
	CustomerGroups []string `json:"customer_groups,omitempty"`
	StoreTypes     []string `json:"store_types,omitempty"`
	MinPerformance *float64 `json:"min_performance,omitempty"`
	MaxPerformance *float64 `json:"max_performance,omitempty"`
}

// Empty reports whether the filter would match every record.
func (f *Filter) Empty() bool {
	if f == nil {
		return true
	}
	return len(f.Regions) == 0 && len(f.Channels) == 0 &&
		len(f.CustomerGroups) == 0 && len(f.StoreTypes) == 0 &&
		f.MinPerformance == nil && f.MaxPerformance == nil
}

// Match reports whether a record passes every criterion of the filter.
func (f *Filter) Match(r StoreRecord) bool {
	if f == nil {
		return true
	}
	if !matchAny(f.Regions, r.Region) {
		return false
	}
	if !matchAny(f.Channels, r.Channel) {
		return false
	}
	if !matchAny(f.CustomerGroups, r.CustomerGroup) {
		return false
	}
	if !matchAny(f.StoreTypes, r.StoreType) {
		return false
	}
	if f.MinPerformance != nil && r.PerformanceValue < *f.MinPerformance {
		return false
	}
	if f.MaxPerformance != nil && r.PerformanceValue > *f.MaxPerformance {
		return false
	}
	return true
}

// ApplyFilter returns the records matching f, preserving input order.
// A nil or empty filter returns nil so callers can tell "no pre-filter"
// apart from "filtered down to nothing".
func ApplyFilter(records []StoreRecord, f *Filter) []StoreRecord {
	if f.Empty() {
		return nil
	}
	var out []StoreRecord
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func matchAny(allowed []string, v string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
