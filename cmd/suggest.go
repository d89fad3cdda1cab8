package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/storeplan/internal/dataset"
	"github.com/sells-group/storeplan/internal/mapping"
)

var (
	suggestFile      string
	suggestCharset   string
	suggestDelimiter string
	suggestSheet     string
	suggestYAML      bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest column mappings for a dataset",
	Long: `Reads the header row of a CSV or XLSX export and proposes which column
feeds each store field, with a confidence score per match. With --yaml the
proposals print as a ready-to-paste strategy configuration block.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		header, err := dataset.ReadHeader(suggestFile, importOptions(suggestCharset, suggestDelimiter, suggestSheet, nil))
		if err != nil {
			return err
		}

		reg := mapping.DefaultRegistry()
		suggestions := mapping.Suggest(header, reg)

		if suggestYAML {
			return printSuggestionsYAML(suggestions)
		}

		if len(suggestions) == 0 {
			fmt.Println("No columns recognized.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "FIELD\tCOLUMN\tCONFIDENCE")
		_, _ = fmt.Fprintln(w, "-----\t------\t----------")
		for _, s := range suggestions {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%.0f%%\n", s.Requirement, s.Header, s.Confidence*100)
		}
		_ = w.Flush()

		if missing := requiredWithoutSuggestion(reg, suggestions); len(missing) > 0 {
			fmt.Printf("\nNo candidate found for required fields: %s\n", strings.Join(missing, ", "))
		}
		return nil
	},
}

// printSuggestionsYAML emits the proposals as a strategy configuration
// fragment that import and select accept via --mapping / --config.
func printSuggestionsYAML(suggestions []mapping.Suggestion) error {
	mappings := make(map[string]string, len(suggestions))
	for _, s := range suggestions {
		mappings[s.Requirement] = s.Header
	}

	doc := map[string]any{
		"selection": map[string]any{
			"column_mappings": mappings,
		},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return eris.Wrap(err, "suggest: marshal yaml")
	}
	fmt.Print(string(out))
	return nil
}

func requiredWithoutSuggestion(reg *mapping.Registry, suggestions []mapping.Suggestion) []string {
	suggested := make(map[string]bool, len(suggestions))
	for _, s := range suggestions {
		suggested[s.Requirement] = true
	}

	var missing []string
	for _, req := range reg.Required() {
		if !suggested[req.Key] {
			missing = append(missing, req.Key)
		}
	}
	return missing
}

func init() {
	f := suggestCmd.Flags()
	f.StringVar(&suggestFile, "file", "", "dataset path, CSV or XLSX (required)")
	f.StringVar(&suggestCharset, "charset", "", "source encoding for CSV input (e.g. windows-1252)")
	f.StringVar(&suggestDelimiter, "delimiter", "", "CSV delimiter (default: sniffed)")
	f.StringVar(&suggestSheet, "sheet", "", "XLSX worksheet name (default: first sheet)")
	f.BoolVar(&suggestYAML, "yaml", false, "print proposals as a configuration block")
	_ = suggestCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(suggestCmd)
}
