package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/storeplan/internal/model"
	"github.com/sells-group/storeplan/internal/selection"
)

func sampleResult() selection.Result {
	return selection.Result{
		SelectedStores: []model.StoreRecord{
			{StoreID: "S1", Name: "REWE Markt 1", Region: "Bayern", City: "München", Channel: "retail", StoreType: "supermarket", CustomerGroup: "a", PerformanceValue: 1200, StoreSize: 450},
			{StoreID: "S2", Name: "EDEKA Center Hamburg Altona", Region: "Hamburg", City: "Hamburg", Channel: "retail", StoreType: "hypermarket", CustomerGroup: "b", PerformanceValue: 3400.5, StoreSize: 1200},
		},
		TotalRevenue:   4600.5,
		AverageRevenue: 2300.25,
		RegionCoverage: 1.0,
		Distribution:   selection.PerformanceDistribution{High: 1, Medium: 1},
		Statistics: selection.Statistics{
			TotalStores:      2,
			UniqueRegions:    2,
			UniqueRetailers:  2,
			RevenuePerRegion: map[string]float64{"Bayern": 1200, "Hamburg": 3400.5},
		},
	}
}

func TestNewStampsMetadata(t *testing.T) {
	rep := New(sampleResult(), selection.StrategyRevenueFocus, 5)

	_, err := uuid.Parse(rep.RunID)
	require.NoError(t, err)
	assert.False(t, rep.GeneratedAt.IsZero())
	assert.Equal(t, selection.StrategyRevenueFocus, rep.Strategy)
	assert.Equal(t, "Revenue Focus", rep.StrategyName)
	assert.Equal(t, 5, rep.Target)
}

func TestNewUnknownStrategyKeepsID(t *testing.T) {
	rep := New(sampleResult(), selection.StrategyID("mystery"), 5)
	assert.Equal(t, "mystery", rep.StrategyName)
}

func TestWriteTable(t *testing.T) {
	rep := New(sampleResult(), selection.StrategyRevenueFocus, 5)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, rep))
	out := buf.String()

	assert.Contains(t, out, "STORE")
	assert.Contains(t, out, "REWE Markt 1")
	assert.Contains(t, out, "EDEKA Center Hamburg Altona")
	assert.Contains(t, out, "3,400.50")
	assert.Contains(t, out, "Strategy:")
	assert.Contains(t, out, "Revenue Focus")
	assert.Contains(t, out, "2 of 5 requested")
	assert.Contains(t, out, "Region coverage:")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "1 high / 1 medium / 0 low")
}

func TestWriteCSVRoundTrips(t *testing.T) {
	rep := New(sampleResult(), selection.StrategyRevenueFocus, 5)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rep))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "store_id", rows[0][0])
	assert.Equal(t, "S1", rows[1][0])
	assert.Equal(t, "1200", rows[1][7])
	assert.Equal(t, "3400.5", rows[2][7])
}

func TestWriteJSON(t *testing.T) {
	rep := New(sampleResult(), selection.StrategyGeographicCoverage, 5)
	rep.Dataset = "stores.csv"

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rep))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rep.RunID, decoded.RunID)
	assert.Equal(t, selection.StrategyGeographicCoverage, decoded.Strategy)
	assert.Equal(t, "stores.csv", decoded.Dataset)
	require.Len(t, decoded.Result.SelectedStores, 2)
	assert.Equal(t, "S1", decoded.Result.SelectedStores[0].StoreID)
}

func TestCompareTable(t *testing.T) {
	rep := NewCompare([]CompareRow{
		{Strategy: selection.StrategyRevenueFocus, Name: "Revenue Focus", Result: sampleResult()},
		{Strategy: selection.StrategyMarketPenetration, Name: "Market Penetration", Result: sampleResult()},
	}, 5)

	var buf bytes.Buffer
	require.NoError(t, WriteCompareTable(&buf, rep))
	out := buf.String()

	assert.Contains(t, out, "STRATEGY")
	assert.Contains(t, out, "Revenue Focus")
	assert.Contains(t, out, "Market Penetration")
	assert.Contains(t, out, "4,600.50")
}

func TestCompareCSV(t *testing.T) {
	rep := NewCompare([]CompareRow{
		{Strategy: selection.StrategyRevenueFocus, Name: "Revenue Focus", Result: sampleResult()},
	}, 5)

	var buf bytes.Buffer
	require.NoError(t, WriteCompareCSV(&buf, rep))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "strategy", rows[0][0])
	assert.Equal(t, "revenue_focus", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
}

func TestOutputWritesFile(t *testing.T) {
	rep := New(sampleResult(), selection.StrategyRevenueFocus, 5)
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, rep.Output("json", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rep.RunID, decoded.RunID)
}

func TestOutputUnsupportedFormat(t *testing.T) {
	rep := New(sampleResult(), selection.StrategyRevenueFocus, 5)

	err := rep.Output("xml", filepath.Join(t.TempDir(), "out.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0"},
		{"small", 42, "42"},
		{"thousands", 1234, "1,234"},
		{"millions", 1000000, "1,000,000"},
		{"fraction", 1234.5, "1,234.50"},
		{"negative", -9876.25, "-9,876.25"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatAmount(tc.in))
		})
	}
}
