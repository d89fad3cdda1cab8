package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/storeplan/internal/dataset"
	"github.com/sells-group/storeplan/internal/model"
	"github.com/sells-group/storeplan/internal/report"
)

const maxIssuesShown = 10

var (
	importFile      string
	importMapping   string
	importCharset   string
	importDelimiter string
	importSheet     string
	importJSON      bool
	importDryRun    bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import and validate a store dataset",
	Long: `Parses a CSV or XLSX store export, normalizes values, and reports what
the selection commands will work with: loaded and rejected rows, resolved
column bindings, regions, and the performance range.

Examples:
  # Validate a CSV export with auto-detected columns
  storeplan import --file stores.csv

  # German Excel export with explicit mappings
  storeplan import --file filialen.csv --mapping strategies.yaml --charset windows-1252

  # Dump the normalized dataset as JSON
  storeplan import --file stores.xlsx --sheet Filialen --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		selCfg, err := loadStrategyConfig(importMapping)
		if err != nil {
			return err
		}

		ds, err := dataset.Load(importFile, importOptions(importCharset, importDelimiter, importSheet, selCfg.ColumnMappings))
		if err != nil {
			return err
		}

		if importJSON {
			dump := importDump{
				File:    importFile,
				Report:  ds.Report,
				Regions: ds.Regions(),
			}
			dump.PerformanceMin, dump.PerformanceMax = ds.PerformanceRange()
			if !importDryRun {
				dump.Records = ds.Records
			}
			return report.WriteJSON(os.Stdout, dump)
		}

		printImportSummary(ds)
		return nil
	},
}

type importDump struct {
	File           string              `json:"file"`
	Report         dataset.LoadReport  `json:"report"`
	Regions        []string            `json:"regions"`
	PerformanceMin float64             `json:"performance_min"`
	PerformanceMax float64             `json:"performance_max"`
	Records        []model.StoreRecord `json:"records,omitempty"`
}

func printImportSummary(ds *dataset.Dataset) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "File:\t%s\n", importFile)
	_, _ = fmt.Fprintf(w, "Rows:\t%d\n", ds.Report.TotalRows)
	_, _ = fmt.Fprintf(w, "Loaded:\t%d\n", ds.Report.Loaded)
	_, _ = fmt.Fprintf(w, "Rejected:\t%d\n", ds.Report.Rejected)
	_, _ = fmt.Fprintf(w, "Duplicates:\t%d\n", ds.Report.Duplicates)

	regions := ds.Regions()
	regionList := strings.Join(regions, ", ")
	if len(regions) > 8 {
		regionList = strings.Join(regions[:8], ", ") + ", ..."
	}
	_, _ = fmt.Fprintf(w, "Regions:\t%d (%s)\n", len(regions), regionList)

	lo, hi := ds.PerformanceRange()
	_, _ = fmt.Fprintf(w, "Performance:\t%.2f - %.2f\n", lo, hi)

	var cols []string
	for _, c := range ds.Columns.Bound() {
		cols = append(cols, fmt.Sprintf("%s=%s", c.Requirement, c.Header))
	}
	_, _ = fmt.Fprintf(w, "Columns:\t%s\n", strings.Join(cols, ", "))
	_ = w.Flush()

	if len(ds.Report.Issues) == 0 {
		return
	}
	fmt.Println("\nIssues:")
	for i, issue := range ds.Report.Issues {
		if i == maxIssuesShown {
			fmt.Printf("  ... and %d more\n", len(ds.Report.Issues)-maxIssuesShown)
			break
		}
		fmt.Printf("  row %d, %s: %s\n", issue.Row, issue.Column, issue.Reason)
	}
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&importFile, "file", "", "dataset path, CSV or XLSX (required)")
	f.StringVar(&importMapping, "mapping", "", "strategy configuration YAML holding column_mappings")
	f.StringVar(&importCharset, "charset", "", "source encoding for CSV input (e.g. windows-1252)")
	f.StringVar(&importDelimiter, "delimiter", "", "CSV delimiter (default: sniffed)")
	f.StringVar(&importSheet, "sheet", "", "XLSX worksheet name (default: first sheet)")
	f.BoolVar(&importJSON, "json", false, "dump the normalized dataset as JSON")
	f.BoolVar(&importDryRun, "dry-run", false, "report without emitting records")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
