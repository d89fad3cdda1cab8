package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	csv := "store_id,name,region,performance\n" +
		"S1,REWE Markt 1,Bayern,1200\n" +
		"S2,EDEKA Center,Hessen,3400.5\n" +
		"S3,Netto City,Bayern,900\n"
	path := writeTemp(t, "stores.csv", []byte(csv))

	ds, err := LoadCSV(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Report.Loaded)
	assert.Zero(t, ds.Report.Rejected)
	require.Len(t, ds.Records, 3)
	assert.Equal(t, "REWE Markt 1", ds.Records[0].Name)
	assert.Equal(t, []string{"Bayern", "Hessen"}, ds.Regions())

	lo, hi := ds.PerformanceRange()
	assert.InDelta(t, 900, lo, 0.001)
	assert.InDelta(t, 3400.5, hi, 0.001)
}

func TestLoadCSVSemicolonSniffed(t *testing.T) {
	csv := "store_id;name;region;performance\n" +
		"S1;REWE 1;Bayern;1.234,50\n"
	path := writeTemp(t, "stores.csv", []byte(csv))

	ds, err := LoadCSV(path, Options{})
	require.NoError(t, err)

	require.Len(t, ds.Records, 1)
	assert.InDelta(t, 1234.5, ds.Records[0].PerformanceValue, 0.001)
}

func TestLoadCSVExplicitMappings(t *testing.T) {
	csv := "Filiale,Land,Umsatz 2025\n" +
		"REWE 1,Bayern,1200\n"
	path := writeTemp(t, "stores.csv", []byte(csv))

	ds, err := LoadCSV(path, Options{Mappings: map[string]string{
		"name":        "Filiale",
		"region":      "Land",
		"performance": "Umsatz 2025",
	}})
	require.NoError(t, err)

	require.Len(t, ds.Records, 1)
	assert.Equal(t, "REWE 1", ds.Records[0].Name)
	assert.Equal(t, "row-1", ds.Records[0].StoreID)
}

func TestLoadCSVRejectsInvalidRows(t *testing.T) {
	csv := "store_id,name,region,performance\n" +
		"S1,Good Store,Bayern,1200\n" +
		"S2,No Region,,800\n" +
		"S3,Bad Number,Hessen,abc\n" +
		"S4,Also Good,Hessen,50\n"
	path := writeTemp(t, "stores.csv", []byte(csv))

	ds, err := LoadCSV(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, 4, ds.Report.TotalRows)
	assert.Equal(t, 2, ds.Report.Loaded)
	assert.Equal(t, 2, ds.Report.Rejected)
	require.Len(t, ds.Report.Issues, 2)
	assert.Equal(t, 2, ds.Report.Issues[0].Row)
	assert.Equal(t, "region", ds.Report.Issues[0].Column)
	assert.Equal(t, 3, ds.Report.Issues[1].Row)
	assert.Equal(t, "performance", ds.Report.Issues[1].Column)

	for _, r := range ds.Records {
		assert.True(t, r.Valid())
	}
}

func TestLoadCSVDeduplicatesStoreIDs(t *testing.T) {
	csv := "store_id,name,region,performance\n" +
		"S1,First,Bayern,100\n" +
		"s1,Shadow,Bayern,200\n" +
		"S2,Second,Hessen,300\n"
	path := writeTemp(t, "stores.csv", []byte(csv))

	ds, err := LoadCSV(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Report.Loaded)
	assert.Equal(t, 1, ds.Report.Duplicates)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "First", ds.Records[0].Name)
}

func TestLoadCSVWindows1252(t *testing.T) {
	// "Köln" with 0xF6 for ö, as a windows-1252 export would encode it.
	raw := append([]byte("store_id,name,region,city,performance\n"), []byte("S1,REWE 1,NRW,K")...)
	raw = append(raw, 0xF6)
	raw = append(raw, []byte("ln,1200\n")...)
	path := writeTemp(t, "stores.csv", raw)

	ds, err := LoadCSV(path, Options{Charset: "windows-1252"})
	require.NoError(t, err)

	require.Len(t, ds.Records, 1)
	assert.Equal(t, "Köln", ds.Records[0].City)
}

func TestLoadCSVUnknownCharset(t *testing.T) {
	path := writeTemp(t, "stores.csv", []byte("a,b\n1,2\n"))

	_, err := LoadCSV(path, Options{Charset: "not-a-charset"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "charset")
}

func TestLoadCSVStripsBOM(t *testing.T) {
	csv := append([]byte{0xEF, 0xBB, 0xBF}, []byte("store_id,name,region,performance\nS1,Store,Bayern,100\n")...)
	path := writeTemp(t, "stores.csv", csv)

	ds, err := LoadCSV(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Report.Loaded)
}

func TestLoadCSVNoDataRows(t *testing.T) {
	path := writeTemp(t, "stores.csv", []byte("store_id,name,region,performance\n"))

	_, err := LoadCSV(path, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "ghost.csv"), Options{})
	assert.Error(t, err)
}

func TestLoadDispatchesCSV(t *testing.T) {
	path := writeTemp(t, "stores.csv", []byte("store_id,name,region,performance\nS1,Store,Bayern,100\n"))

	ds, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Report.Loaded)
}

func TestReadHeader(t *testing.T) {
	path := writeTemp(t, "stores.csv", []byte("Filiale;Bundesland;Umsatz\n"))

	header, err := ReadHeader(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Filiale", "Bundesland", "Umsatz"}, header)
}

func TestReadHeaderEmptyFile(t *testing.T) {
	path := writeTemp(t, "stores.csv", nil)

	_, err := ReadHeader(path, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}
