package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/sells-group/storeplan/internal/model"
	"github.com/sells-group/storeplan/internal/selection"
)

const histogramBarWidth = 40

// Analysis profiles a dataset without selecting from it: overall revenue,
// the per-region breakdown, and a performance histogram.
type Analysis struct {
	File           string                   `json:"file,omitempty"`
	Stores         int                      `json:"stores"`
	TotalRevenue   float64                  `json:"total_revenue"`
	AverageRevenue float64                  `json:"average_revenue"`
	PerformanceMin float64                  `json:"performance_min"`
	PerformanceMax float64                  `json:"performance_max"`
	Regions        []RegionStats            `json:"regions"`
	Histogram      []selection.HistogramBin `json:"histogram"`
}

// RegionStats summarizes one region of the dataset.
type RegionStats struct {
	Region         string  `json:"region"`
	Stores         int     `json:"stores"`
	TotalRevenue   float64 `json:"total_revenue"`
	AverageRevenue float64 `json:"average_revenue"`
	RevenueShare   float64 `json:"revenue_share"`
}

// NewAnalysis profiles records into the analysis document. Regions keep
// their first-appearance order.
func NewAnalysis(records []model.StoreRecord, bins int) *Analysis {
	a := &Analysis{
		Stores:    len(records),
		Histogram: selection.Histogram(records, bins),
	}
	if len(records) == 0 {
		return a
	}

	a.PerformanceMin = records[0].PerformanceValue
	a.PerformanceMax = records[0].PerformanceValue
	for _, r := range records {
		a.TotalRevenue += r.PerformanceValue
		if r.PerformanceValue < a.PerformanceMin {
			a.PerformanceMin = r.PerformanceValue
		}
		if r.PerformanceValue > a.PerformanceMax {
			a.PerformanceMax = r.PerformanceValue
		}
	}
	a.AverageRevenue = a.TotalRevenue / float64(len(records))

	groups := selection.GroupByRegion(records)
	for _, region := range selection.RegionOrder(records) {
		recs := groups[region]
		var total float64
		for _, r := range recs {
			total += r.PerformanceValue
		}
		stats := RegionStats{
			Region:         region,
			Stores:         len(recs),
			TotalRevenue:   total,
			AverageRevenue: total / float64(len(recs)),
		}
		if a.TotalRevenue > 0 {
			stats.RevenueShare = total / a.TotalRevenue
		}
		a.Regions = append(a.Regions, stats)
	}
	return a
}

// WriteAnalysisTable renders the analysis as a summary block, a per-region
// table, and a histogram with count bars.
func WriteAnalysisTable(out io.Writer, a *Analysis) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if a.File != "" {
		_, _ = fmt.Fprintf(w, "File:\t%s\n", a.File)
	}
	_, _ = fmt.Fprintf(w, "Stores:\t%d\n", a.Stores)
	_, _ = fmt.Fprintf(w, "Total revenue:\t%s\n", formatAmount(a.TotalRevenue))
	_, _ = fmt.Fprintf(w, "Average revenue:\t%s\n", formatAmount(a.AverageRevenue))
	_, _ = fmt.Fprintf(w, "Performance range:\t%s - %s\n", formatAmount(a.PerformanceMin), formatAmount(a.PerformanceMax))
	if err := w.Flush(); err != nil {
		return eris.Wrap(err, "report: write analysis summary")
	}

	if len(a.Regions) > 0 {
		_, _ = fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "REGION\tSTORES\tTOTAL\tAVERAGE\tSHARE")
		_, _ = fmt.Fprintln(w, "------\t------\t-----\t-------\t-----")
		for _, rs := range a.Regions {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.1f%%\n",
				rs.Region, rs.Stores, formatAmount(rs.TotalRevenue), formatAmount(rs.AverageRevenue), rs.RevenueShare*100)
		}
		if err := w.Flush(); err != nil {
			return eris.Wrap(err, "report: write region table")
		}
	}

	if len(a.Histogram) > 0 {
		_, _ = fmt.Fprintln(out)
		if err := writeHistogram(out, a.Histogram); err != nil {
			return err
		}
	}
	return nil
}

func writeHistogram(out io.Writer, bins []selection.HistogramBin) error {
	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	if maxCount == 0 {
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RANGE\tSTORES\t")
	for _, b := range bins {
		bar := strings.Repeat("#", b.Count*histogramBarWidth/maxCount)
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", b.Label, b.Count, bar)
	}
	if err := w.Flush(); err != nil {
		return eris.Wrap(err, "report: write histogram")
	}
	return nil
}
