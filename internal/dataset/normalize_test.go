package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/storeplan/internal/mapping"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"plain integer", "1234", 1234, false},
		{"decimal point", "1234.56", 1234.56, false},
		{"german decimal comma", "1234,56", 1234.56, false},
		{"german grouped", "1.234.567,89", 1234567.89, false},
		{"english grouped", "1,234,567.89", 1234567.89, false},
		{"single thousands comma", "1,234", 1234, false},
		{"short decimal comma", "12,34", 12.34, false},
		{"currency prefix", "€ 1.234,00", 1234, false},
		{"currency suffix", "1234 EUR", 1234, false},
		{"embedded spaces", "1 234 567", 1234567, false},
		{"negative", "-42", -42, false},
		{"zero", "0", 0, false},
		{"empty", "", 0, true},
		{"letters only", "n/a", 0, true},
		{"double sign", "12-34", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"upper", "BAYERN", "Bayern"},
		{"lower", "bayern", "Bayern"},
		{"hyphenated", "NORDRHEIN-WESTFALEN", "Nordrhein-Westfalen"},
		{"two words", "lower saxony", "Lower Saxony"},
		{"extra spaces", "  baden   württemberg ", "Baden Württemberg"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titleCase(tt.input))
		})
	}
}

func testColumnMap(t *testing.T) *mapping.ColumnMap {
	t.Helper()
	header := []string{"store_id", "name", "region", "performance", "store_size", "channel"}
	cm, err := mapping.ResolveColumns(header, nil, mapping.DefaultRegistry())
	require.NoError(t, err)
	return cm
}

func TestBuildRecord(t *testing.T) {
	cm := testColumnMap(t)

	rec, issues, ok := buildRecord(
		[]string{"S1", " REWE  Markt 1 ", "BAYERN", "1.234,50", "850", "MALL"}, cm, 1)

	require.True(t, ok)
	assert.Empty(t, issues)
	assert.Equal(t, "S1", rec.StoreID)
	assert.Equal(t, "REWE Markt 1", rec.Name)
	assert.Equal(t, "Bayern", rec.Region)
	assert.InDelta(t, 1234.5, rec.PerformanceValue, 0.001)
	assert.InDelta(t, 850, rec.StoreSize, 0.001)
	assert.Equal(t, "mall", rec.Channel)
	assert.True(t, rec.Valid())
}

func TestBuildRecordRejections(t *testing.T) {
	cm := testColumnMap(t)

	tests := []struct {
		name       string
		row        []string
		wantColumn string
	}{
		{"missing region", []string{"S1", "Store", "", "100", "", ""}, "region"},
		{"missing name", []string{"S1", "  ", "Bayern", "100", "", ""}, "name"},
		{"unparseable performance", []string{"S1", "Store", "Bayern", "k.A.", "", ""}, "performance"},
		{"negative performance", []string{"S1", "Store", "Bayern", "-5", "", ""}, "performance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, issues, ok := buildRecord(tt.row, cm, 7)

			assert.False(t, ok)
			require.NotEmpty(t, issues)
			assert.Equal(t, 7, issues[0].Row)
			assert.Equal(t, tt.wantColumn, issues[0].Column)
		})
	}
}

func TestBuildRecordRepairsStoreSize(t *testing.T) {
	cm := testColumnMap(t)

	rec, issues, ok := buildRecord(
		[]string{"S1", "Store", "Bayern", "100", "not-a-size", ""}, cm, 3)

	require.True(t, ok)
	require.Len(t, issues, 1)
	assert.Equal(t, "store_size", issues[0].Column)
	assert.Zero(t, rec.StoreSize)
}

func TestBuildRecordSynthesizesStoreID(t *testing.T) {
	header := []string{"name", "region", "performance"}
	cm, err := mapping.ResolveColumns(header, nil, mapping.DefaultRegistry())
	require.NoError(t, err)

	rec, _, ok := buildRecord([]string{"Store", "Bayern", "100"}, cm, 12)

	require.True(t, ok)
	assert.Equal(t, "row-12", rec.StoreID)
}
