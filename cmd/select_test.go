//go:build !integration

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/storeplan/internal/report"
	"github.com/sells-group/storeplan/internal/selection"
)

func TestSelectCmd_Flags(t *testing.T) {
	for _, flagName := range []string{"file", "strategy", "count", "config", "region", "channel", "min-performance", "max-performance", "format", "output"} {
		assert.NotNil(t, selectCmd.Flags().Lookup(flagName), "select should have --%s flag", flagName)
	}
}

func TestSelectCmd_WritesJSONReport(t *testing.T) {
	setTestConfig(t)
	outPath := filepath.Join(t.TempDir(), "picks.json")

	f := selectCmd.Flags()
	require.NoError(t, f.Set("file", writeStoresCSV(t)))
	require.NoError(t, f.Set("strategy", "revenue_focus"))
	require.NoError(t, f.Set("count", "3"))
	require.NoError(t, f.Set("format", "json"))
	require.NoError(t, f.Set("output", outPath))

	require.NoError(t, selectCmd.RunE(selectCmd, nil))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, selection.StrategyRevenueFocus, rep.Strategy)
	assert.Equal(t, 3, rep.Target)
	require.Len(t, rep.Result.SelectedStores, 3)
	// Revenue focus picks the top performers in order.
	assert.Equal(t, "S1", rep.Result.SelectedStores[0].StoreID)
	assert.Equal(t, "S2", rep.Result.SelectedStores[1].StoreID)
	assert.Equal(t, "S3", rep.Result.SelectedStores[2].StoreID)
}

func TestSelectCmd_BadFormat(t *testing.T) {
	setTestConfig(t)

	f := selectCmd.Flags()
	require.NoError(t, f.Set("file", writeStoresCSV(t)))
	require.NoError(t, f.Set("format", "xml"))

	err := selectCmd.RunE(selectCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format")
}

func TestSelectCmd_NegativeCount(t *testing.T) {
	setTestConfig(t)

	f := selectCmd.Flags()
	require.NoError(t, f.Set("file", writeStoresCSV(t)))
	require.NoError(t, f.Set("format", "json"))
	require.NoError(t, f.Set("count", "-1"))

	err := selectCmd.RunE(selectCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--count")
}

// Runs after the error-path tests because setting --region sticks on the
// package-level command.
func TestSelectCmd_RegionFilter(t *testing.T) {
	setTestConfig(t)
	outPath := filepath.Join(t.TempDir(), "picks.json")

	f := selectCmd.Flags()
	require.NoError(t, f.Set("file", writeStoresCSV(t)))
	require.NoError(t, f.Set("strategy", "revenue_focus"))
	require.NoError(t, f.Set("count", "10"))
	require.NoError(t, f.Set("format", "json"))
	require.NoError(t, f.Set("output", outPath))
	require.NoError(t, f.Set("region", "Hessen"))

	require.NoError(t, selectCmd.RunE(selectCmd, nil))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.True(t, rep.Filtered)
	require.Len(t, rep.Result.SelectedStores, 2)
	for _, s := range rep.Result.SelectedStores {
		assert.Equal(t, "Hessen", s.Region)
	}
}

func TestBuildSelectFilter_BoundsOnlyWhenSet(t *testing.T) {
	cmd := &cobra.Command{}
	f := cmd.Flags()
	f.StringSlice("region", nil, "")
	f.StringSlice("channel", nil, "")
	f.Float64("min-performance", 0, "")
	f.Float64("max-performance", 0, "")

	filter := buildSelectFilter(cmd)
	assert.True(t, filter.Empty())

	require.NoError(t, f.Set("min-performance", "250"))
	filter = buildSelectFilter(cmd)
	require.NotNil(t, filter.MinPerformance)
	assert.Equal(t, 250.0, *filter.MinPerformance)
	assert.Nil(t, filter.MaxPerformance)
}
