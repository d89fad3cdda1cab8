package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/storeplan/internal/selection"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the available selection strategies",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tNAME\tNEEDS\tDESCRIPTION")
		_, _ = fmt.Fprintln(w, "--\t----\t-----\t-----------")
		for _, s := range selection.Strategies() {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				s.ID, s.Name, strings.Join(s.Requirements, ","), s.Description)
		}
		_ = w.Flush()

		def := selection.DefaultConfig()
		fmt.Println()
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "Tuning defaults (override via --config):")
		_, _ = fmt.Fprintf(w, "  growth.lower_percentile:\t%.2f\n", def.Params.Growth.LowerPercentile)
		_, _ = fmt.Fprintf(w, "  growth.upper_percentile:\t%.2f\n", def.Params.Growth.UpperPercentile)
		_, _ = fmt.Fprintf(w, "  portfolio.core_share:\t%.2f\n", def.Params.Portfolio.CoreShare)
		_, _ = fmt.Fprintf(w, "  portfolio.growth_share:\t%.2f\n", def.Params.Portfolio.GrowthShare)
		_, _ = fmt.Fprintf(w, "  demographic.group_quota:\t%.2f\n", def.Params.Demographic.GroupQuota)
		_ = w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
