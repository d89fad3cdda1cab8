package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/storeplan/internal/brand"
	"github.com/sells-group/storeplan/internal/model"
	"github.com/sells-group/storeplan/internal/report"
	"github.com/sells-group/storeplan/internal/selection"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select target stores with a strategy",
	Long: `Runs one selection strategy over a dataset and emits the selected
stores with their analytics: totals, region coverage, performance tiers,
and per-region revenue.

Filters narrow the candidate pool before selection. A filter that matches
nothing falls back to the full dataset.

Examples:
  # Top 50 stores by revenue
  storeplan select --file stores.csv --strategy revenue_focus --count 50

  # Geographic coverage across two regions, exported as CSV
  storeplan select --file stores.csv --strategy geographic_coverage --count 20 \
    --region Bayern --region Hessen --format csv --output picks.csv

  # Growth candidates with tuned percentiles
  storeplan select --file stores.csv --strategy growth_opportunities \
    --count 30 --config strategies.yaml --format json`,
	RunE: runSelect,
}

func init() {
	f := selectCmd.Flags()
	f.String("file", "", "dataset path, CSV or XLSX (required)")
	f.String("strategy", "", "strategy id (see 'storeplan strategies')")
	f.Int("count", 0, "number of stores to select")
	f.String("config", "", "strategy configuration YAML")
	f.StringSlice("region", nil, "restrict to a region, as shown by import (repeatable)")
	f.StringSlice("channel", nil, "restrict to a channel, lowercase (repeatable)")
	f.Float64("min-performance", 0, "minimum performance value")
	f.Float64("max-performance", 0, "maximum performance value")
	f.String("format", "", "output format: table, csv, or json")
	f.String("output", "", "output file path (default: stdout)")
	_ = selectCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")
	strategyFlag, _ := cmd.Flags().GetString("strategy")
	count, _ := cmd.Flags().GetInt("count")
	configPath, _ := cmd.Flags().GetString("config")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if strategyFlag == "" {
		strategyFlag = cfg.Select.Strategy
	}
	if count == 0 {
		count = cfg.Select.Count
	}
	if format == "" {
		format = cfg.Output.Format
	}

	if count < 0 {
		return eris.Errorf("select: --count must be >= 0 (got %d)", count)
	}
	switch format {
	case "table", "csv", "json":
	default:
		return eris.Errorf("select: --format must be table, csv, or json (got %q)", format)
	}

	strategyID, known := selection.ParseStrategyID(strategyFlag)
	if !known {
		zap.L().Warn("select: unknown strategy, the engine falls back to revenue focus",
			zap.String("strategy", strategyFlag),
		)
	}

	ds, selCfg, err := loadRun(file, configPath)
	if err != nil {
		return err
	}

	filter := buildSelectFilter(cmd)
	filtered := model.ApplyFilter(ds.Records, filter)
	if !filter.Empty() && len(filtered) == 0 {
		zap.L().Warn("select: filter matched no stores, selecting from the full dataset")
	}

	engine := selection.NewEngine(brand.Extract)
	res := engine.Select(ds.Records, strategyID, selection.TargetConfig{Total: count}, filtered, selCfg)

	rep := report.New(res, strategyID, count)
	rep.Dataset = file
	rep.Filtered = len(filtered) > 0

	zap.L().Info("select: run complete",
		zap.String("run_id", rep.RunID),
		zap.String("strategy", string(strategyID)),
		zap.Int("selected", len(res.SelectedStores)),
		zap.Int("candidates", len(ds.Records)),
		zap.Int("filtered", len(filtered)),
	)

	return rep.Output(format, outputPath)
}

// buildSelectFilter builds the pre-selection filter from flags. Performance
// bounds apply only when their flag was set, so a zero bound stays usable.
func buildSelectFilter(cmd *cobra.Command) *model.Filter {
	regions, _ := cmd.Flags().GetStringSlice("region")
	channels, _ := cmd.Flags().GetStringSlice("channel")

	f := &model.Filter{Regions: regions, Channels: channels}
	if cmd.Flags().Changed("min-performance") {
		v, _ := cmd.Flags().GetFloat64("min-performance")
		f.MinPerformance = &v
	}
	if cmd.Flags().Changed("max-performance") {
		v, _ := cmd.Flags().GetFloat64("max-performance")
		f.MaxPerformance = &v
	}
	return f
}
