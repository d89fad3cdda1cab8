// Package dataset loads store records from CSV and XLSX exports, normalizes
// them, and enforces the record invariants the selection engine relies on: a
// non-empty region and a parseable, non-negative performance value. Rows
// violating the invariant never leave this package.
package dataset

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/storeplan/internal/mapping"
	"github.com/sells-group/storeplan/internal/model"
)

// Options configures an import.
type Options struct {
	// Mappings binds requirement keys to header names. Keys left unmapped
	// resolve by exact or synonym header match.
	Mappings map[string]string
	// Delimiter for CSV input; 0 sniffs between comma and semicolon.
	Delimiter rune
	// Charset names the source encoding for CSV input ("windows-1252",
	// "iso-8859-1", ...). Empty means UTF-8.
	Charset string
	// SheetName selects the XLSX worksheet; empty means the first sheet.
	SheetName string
}

// RowIssue records one rejected or repaired source row.
type RowIssue struct {
	Row    int    `json:"row"` // 1-based data row number, header excluded
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// LoadReport summarizes an import for logging and the import command.
type LoadReport struct {
	TotalRows  int        `json:"total_rows"`
	Loaded     int        `json:"loaded"`
	Rejected   int        `json:"rejected"`
	Duplicates int        `json:"duplicates"`
	Issues     []RowIssue `json:"issues,omitempty"`
}

// Dataset is the outcome of one import: valid records in source order, the
// column bindings they were read under, and the load report.
type Dataset struct {
	Records []model.StoreRecord
	Columns *mapping.ColumnMap
	Report  LoadReport
}

// Load imports a dataset from path, dispatching on the file extension.
// Anything that is not .xlsx is read as CSV.
func Load(path string, opts Options) (*Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path, opts)
	}
	return LoadCSV(path, opts)
}

// ReadHeader returns just the header row of a dataset file. The mapping
// suggester works from headers alone, without a full import.
func ReadHeader(path string, opts Options) ([]string, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readXLSXRows(path, opts)
	} else {
		rows, err = readCSVRows(path, opts)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.New("dataset: file has no header row")
	}
	return rows[0], nil
}

// fromRows runs the shared part of every import: resolve columns against the
// header, then normalize, validate, and de-duplicate the data rows.
func fromRows(header []string, rows [][]string, opts Options) (*Dataset, error) {
	reg := mapping.DefaultRegistry()
	cm, err := mapping.ResolveColumns(header, opts.Mappings, reg)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Columns: cm}
	_, hasIDColumn := cm.Lookup("store_id")
	seen := make(map[string]bool, len(rows))

	for i, row := range rows {
		rowNum := i + 1
		ds.Report.TotalRows++

		rec, issues, ok := buildRecord(row, cm, rowNum)
		ds.Report.Issues = append(ds.Report.Issues, issues...)
		if !ok {
			ds.Report.Rejected++
			continue
		}

		if hasIDColumn {
			key := strings.ToLower(rec.StoreID)
			if seen[key] {
				ds.Report.Duplicates++
				ds.Report.Issues = append(ds.Report.Issues, RowIssue{
					Row:    rowNum,
					Column: "store_id",
					Reason: "duplicate store id " + strconv.Quote(rec.StoreID),
				})
				continue
			}
			seen[key] = true
		}

		ds.Records = append(ds.Records, rec)
		ds.Report.Loaded++
	}

	zap.L().Info("dataset: import complete",
		zap.Int("total_rows", ds.Report.TotalRows),
		zap.Int("loaded", ds.Report.Loaded),
		zap.Int("rejected", ds.Report.Rejected),
		zap.Int("duplicates", ds.Report.Duplicates),
	)

	return ds, nil
}

// Regions returns the distinct regions of the dataset in first-appearance
// order.
func (d *Dataset) Regions() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range d.Records {
		if seen[r.Region] {
			continue
		}
		seen[r.Region] = true
		out = append(out, r.Region)
	}
	return out
}

// PerformanceRange returns the min and max performance values, or zeros for
// an empty dataset.
func (d *Dataset) PerformanceRange() (lo, hi float64) {
	if len(d.Records) == 0 {
		return 0, 0
	}
	lo, hi = d.Records[0].PerformanceValue, d.Records[0].PerformanceValue
	for _, r := range d.Records[1:] {
		if r.PerformanceValue < lo {
			lo = r.PerformanceValue
		}
		if r.PerformanceValue > hi {
			hi = r.PerformanceValue
		}
	}
	return lo, hi
}
