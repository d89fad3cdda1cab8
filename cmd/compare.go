package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/storeplan/internal/brand"
	"github.com/sells-group/storeplan/internal/report"
	"github.com/sells-group/storeplan/internal/selection"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every strategy over one dataset side by side",
	Long: `Runs all six selection strategies over the same working set and prints
one summary row per strategy: selection size, revenue totals, region
coverage, and retailer spread. Useful for picking a strategy before a
full select run.`,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.String("file", "", "dataset path, CSV or XLSX (required)")
	f.Int("count", 0, "number of stores to select per strategy")
	f.String("config", "", "strategy configuration YAML")
	f.String("format", "", "output format: table, csv, or json")
	f.String("output", "", "output file path (default: stdout)")
	_ = compareCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")
	count, _ := cmd.Flags().GetInt("count")
	configPath, _ := cmd.Flags().GetString("config")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if count == 0 {
		count = cfg.Select.Count
	}
	if format == "" {
		format = cfg.Output.Format
	}

	if count < 0 {
		return eris.Errorf("compare: --count must be >= 0 (got %d)", count)
	}
	switch format {
	case "table", "csv", "json":
	default:
		return eris.Errorf("compare: --format must be table, csv, or json (got %q)", format)
	}

	ds, selCfg, err := loadRun(file, configPath)
	if err != nil {
		return err
	}

	// The engine is stateless, so the strategies can run concurrently over
	// the shared records. Each goroutine writes only its own row.
	engine := selection.NewEngine(brand.Extract)
	infos := selection.Strategies()
	rows := make([]report.CompareRow, len(infos))

	g, _ := errgroup.WithContext(cmd.Context())
	for i, info := range infos {
		i, info := i, info
		g.Go(func() error {
			res := engine.Select(ds.Records, info.ID, selection.TargetConfig{Total: count}, nil, selCfg)
			rows[i] = report.CompareRow{Strategy: info.ID, Name: info.Name, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "compare: run strategies")
	}

	rep := report.NewCompare(rows, count)
	rep.Dataset = file

	zap.L().Info("compare: run complete",
		zap.String("run_id", rep.RunID),
		zap.Int("strategies", len(rows)),
		zap.Int("candidates", len(ds.Records)),
	)

	return rep.Output(format, outputPath)
}
