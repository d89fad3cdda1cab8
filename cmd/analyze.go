package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/storeplan/internal/report"
)

var (
	analyzeFile   string
	analyzeConfig string
	analyzeBins   int
	analyzeJSON   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Profile a dataset before selecting from it",
	Long: `Loads a dataset and prints its shape: store and region counts, revenue
totals, the per-region breakdown, and a histogram of performance values.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		bins := analyzeBins
		if bins == 0 {
			bins = cfg.Analyze.Bins
		}
		if bins < 1 {
			return eris.Errorf("analyze: --bins must be >= 1 (got %d)", bins)
		}

		ds, _, err := loadRun(analyzeFile, analyzeConfig)
		if err != nil {
			return err
		}

		analysis := report.NewAnalysis(ds.Records, bins)
		analysis.File = analyzeFile

		zap.L().Info("analyze: dataset profiled",
			zap.Int("stores", analysis.Stores),
			zap.Int("regions", len(analysis.Regions)),
			zap.Int("bins", bins),
		)

		if analyzeJSON {
			return report.WriteJSON(os.Stdout, analysis)
		}
		return report.WriteAnalysisTable(os.Stdout, analysis)
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFile, "file", "", "dataset path, CSV or XLSX (required)")
	f.StringVar(&analyzeConfig, "config", "", "strategy configuration YAML holding column_mappings")
	f.IntVar(&analyzeBins, "bins", 0, "histogram bin count")
	f.BoolVar(&analyzeJSON, "json", false, "emit JSON instead of tables")
	_ = analyzeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(analyzeCmd)
}
