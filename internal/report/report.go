// Package report renders selection results as tables, CSV exports, and
// JSON documents.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/storeplan/internal/selection"
)

// Report wraps a single selection run with its metadata.
type Report struct {
	RunID        string               `json:"run_id"`
	GeneratedAt  time.Time            `json:"generated_at"`
	Strategy     selection.StrategyID `json:"strategy"`
	StrategyName string               `json:"strategy_name"`
	Dataset      string               `json:"dataset,omitempty"`
	Target       int                  `json:"target"`
	Filtered     bool                 `json:"filtered"`
	Result       selection.Result     `json:"result"`
}

// New stamps a selection result with a fresh run ID and timestamp.
func New(res selection.Result, strategy selection.StrategyID, target int) *Report {
	return &Report{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Strategy:     strategy,
		StrategyName: strategyName(strategy),
		Target:       target,
		Result:       res,
	}
}

// CompareReport holds one result per strategy for side-by-side review.
type CompareReport struct {
	RunID       string       `json:"run_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Dataset     string       `json:"dataset,omitempty"`
	Target      int          `json:"target"`
	Rows        []CompareRow `json:"rows"`
}

// CompareRow summarizes a single strategy's outcome.
type CompareRow struct {
	Strategy selection.StrategyID `json:"strategy"`
	Name     string               `json:"name"`
	Result   selection.Result     `json:"result"`
}

// NewCompare stamps a set of per-strategy results with a shared run ID.
func NewCompare(rows []CompareRow, target int) *CompareReport {
	return &CompareReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Target:      target,
		Rows:        rows,
	}
}

func strategyName(id selection.StrategyID) string {
	for _, info := range selection.Strategies() {
		if info.ID == id {
			return info.Name
		}
	}
	return string(id)
}

// Output writes the report in the given format to outputPath, or stdout
// when the path is empty.
func (r *Report) Output(format, outputPath string) error {
	return writeTo(outputPath, func(w io.Writer) error {
		switch format {
		case "table":
			return WriteTable(w, r)
		case "csv":
			return WriteCSV(w, r)
		case "json":
			return WriteJSON(w, r)
		default:
			return eris.Errorf("report: unsupported format %q", format)
		}
	})
}

// Output writes the comparison in the given format to outputPath, or
// stdout when the path is empty.
func (r *CompareReport) Output(format, outputPath string) error {
	return writeTo(outputPath, func(w io.Writer) error {
		switch format {
		case "table":
			return WriteCompareTable(w, r)
		case "csv":
			return WriteCompareCSV(w, r)
		case "json":
			return WriteJSON(w, r)
		default:
			return eris.Errorf("report: unsupported format %q", format)
		}
	})
}

func writeTo(outputPath string, render func(io.Writer) error) error {
	var w *os.File
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "report: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}
	return render(w)
}

// WriteTable renders the selected stores and a summary block to w.
func WriteTable(out io.Writer, rep *Report) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tSTORE\tREGION\tCHANNEL\tTYPE\tPERFORMANCE")
	_, _ = fmt.Fprintln(w, "-\t-----\t------\t-------\t----\t-----------")

	for i, s := range rep.Result.SelectedStores {
		name := s.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, name, s.Region, s.Channel, s.StoreType, formatAmount(s.PerformanceValue))
	}
	if err := w.Flush(); err != nil {
		return eris.Wrap(err, "report: write table")
	}
	return writeSummary(out, rep)
}

func writeSummary(out io.Writer, rep *Report) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	res := rep.Result

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Run:\t%s\n", truncateID(rep.RunID))
	_, _ = fmt.Fprintf(w, "Strategy:\t%s\n", rep.StrategyName)
	_, _ = fmt.Fprintf(w, "Selected:\t%d of %d requested\n", len(res.SelectedStores), rep.Target)
	_, _ = fmt.Fprintf(w, "Total revenue:\t%s\n", formatAmount(res.TotalRevenue))
	_, _ = fmt.Fprintf(w, "Average revenue:\t%s\n", formatAmount(res.AverageRevenue))
	_, _ = fmt.Fprintf(w, "Region coverage:\t%.0f%%\n", res.RegionCoverage*100)
	_, _ = fmt.Fprintf(w, "Regions:\t%d\n", res.Statistics.UniqueRegions)
	_, _ = fmt.Fprintf(w, "Retailers:\t%d\n", res.Statistics.UniqueRetailers)
	_, _ = fmt.Fprintf(w, "Performance tiers:\t%d high / %d medium / %d low\n",
		res.Distribution.High, res.Distribution.Medium, res.Distribution.Low)
	if err := w.Flush(); err != nil {
		return eris.Wrap(err, "report: write summary")
	}
	return nil
}

// WriteCompareTable renders one summary row per strategy to w.
func WriteCompareTable(out io.Writer, rep *CompareReport) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STRATEGY\tSELECTED\tTOTAL REVENUE\tAVG REVENUE\tCOVERAGE\tREGIONS\tRETAILERS")
	_, _ = fmt.Fprintln(w, "--------\t--------\t-------------\t-----------\t--------\t-------\t---------")

	for _, row := range rep.Rows {
		res := row.Result
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.0f%%\t%d\t%d\n",
			row.Name,
			len(res.SelectedStores),
			formatAmount(res.TotalRevenue),
			formatAmount(res.AverageRevenue),
			res.RegionCoverage*100,
			res.Statistics.UniqueRegions,
			res.Statistics.UniqueRetailers,
		)
	}
	if err := w.Flush(); err != nil {
		return eris.Wrap(err, "report: write compare table")
	}
	return nil
}

// WriteCSV exports the selected stores as CSV rows.
func WriteCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"store_id", "name", "region", "city", "channel", "store_type", "customer_group", "performance_value", "store_size"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write CSV header")
	}

	for _, s := range rep.Result.SelectedStores {
		row := []string{
			s.StoreID,
			s.Name,
			s.Region,
			s.City,
			s.Channel,
			s.StoreType,
			s.CustomerGroup,
			strconv.FormatFloat(s.PerformanceValue, 'f', -1, 64),
			strconv.FormatFloat(s.StoreSize, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write CSV row")
		}
	}
	return nil
}

// WriteCompareCSV exports one summary row per strategy.
func WriteCompareCSV(w io.Writer, rep *CompareReport) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"strategy", "selected", "total_revenue", "average_revenue", "region_coverage", "unique_regions", "unique_retailers"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write CSV header")
	}

	for _, row := range rep.Rows {
		res := row.Result
		rec := []string{
			string(row.Strategy),
			strconv.Itoa(len(res.SelectedStores)),
			strconv.FormatFloat(res.TotalRevenue, 'f', -1, 64),
			strconv.FormatFloat(res.AverageRevenue, 'f', -1, 64),
			strconv.FormatFloat(res.RegionCoverage, 'f', -1, 64),
			strconv.Itoa(res.Statistics.UniqueRegions),
			strconv.Itoa(res.Statistics.UniqueRetailers),
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrap(err, "report: write CSV row")
		}
	}
	return nil
}

// WriteJSON writes any report document as indented JSON.
func WriteJSON(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return eris.Wrap(err, "report: encode json")
	}
	return nil
}

// formatAmount renders a value with thousands separators. Whole values
// drop the decimals.
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var grouped []byte
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, byte(c))
	}
	if fracPart == "00" {
		return sign + string(grouped)
	}
	return sign + string(grouped) + "." + fracPart
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
