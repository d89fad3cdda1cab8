package dataset

import (
	"bytes"
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// LoadCSV imports a CSV export. The delimiter is sniffed from the header
// line when not set, and non-UTF-8 input is decoded when Options.Charset
// names the source encoding.
func LoadCSV(path string, opts Options) (*Dataset, error) {
	rows, err := readCSVRows(path, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, eris.New("dataset: csv has no data rows")
	}

	return fromRows(rows[0], rows[1:], opts)
}

func readCSVRows(path string, opts Options) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open csv %s", path)
	}

	if opts.Charset != "" {
		enc, err := htmlindex.Get(opts.Charset)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: unknown charset %q", opts.Charset)
		}
		data, err = enc.NewDecoder().Bytes(data)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: decode %s input", opts.Charset)
		}
	}

	// Strip a UTF-8 BOM; spreadsheet exports love to prepend one.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = sniffDelimiter(data)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read csv")
	}
	return rows, nil
}

// sniffDelimiter picks between comma and semicolon by counting occurrences
// in the header line. Semicolon wins ties because comma-decimal locales
// export semicolon-separated files.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) >= bytes.Count(line, []byte{','}) && bytes.ContainsRune(line, ';') {
		return ';'
	}
	return ','
}
