package dataset

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// LoadXLSX imports an XLSX workbook. Options.SheetName selects the
// worksheet; by default the first sheet is read. The first row is the
// header.
func LoadXLSX(path string, opts Options) (*Dataset, error) {
	rows, err := readXLSXRows(path, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, eris.New("dataset: xlsx sheet has no data rows")
	}

	return fromRows(rows[0], rows[1:], opts)
}

func readXLSXRows(path string, opts Options) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open xlsx %s", path)
	}

	sheet, err := pickSheet(f, opts.SheetName)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		rows = append(rows, rowToStrings(row))
	}
	return rows, nil
}

func pickSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, eris.Errorf("dataset: sheet %q not found", name)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("dataset: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = cell.String()
	}
	return cells
}
