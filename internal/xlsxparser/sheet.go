// =============================================================================
// BOM Compare - XLSX Sheet Reader
// =============================================================================
//
// This module opens BOM workbooks and exposes the selected sheet as a
// (column, row) -> string lookup. The workbook is read once and closed before
// returning, so no file handle outlives a single extraction.
//
// SHEET SELECTION:
//   - SheetLayout.SheetName, when set, selects the sheet by name
//   - otherwise the first sheet of the workbook is used
//
// CELL ADDRESSING:
//   Columns and rows are 1-based, as displayed by spreadsheet applications.
//   Cell(2, 20) is cell B20. Unset cells read as the empty string.
//
// =============================================================================

package xlsxparser

import (
	"slices"

	"github.com/ginjaninja78/BOM-compare/internal/config"
	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// SHEET ACCESS
// =============================================================================

// Sheet is read-only cell access to one tabular source.
type Sheet interface {
	// Cell returns the text of the cell at the 1-based column and row,
	// or "" when the cell is unset.
	Cell(column, row int) string
}

// GridSheet is a Sheet held in memory as rows of cells.
type GridSheet struct {
	// Name is the sheet (or file) name the grid was read from.
	Name string

	rows [][]string
}

// NewGridSheet wraps rows as a Sheet. rows[0] is spreadsheet row 1.
func NewGridSheet(name string, rows [][]string) *GridSheet {
	return &GridSheet{Name: name, rows: rows}
}

// Cell implements Sheet.
func (g *GridSheet) Cell(column, row int) string {
	if row < 1 || row > len(g.rows) {
		return ""
	}
	cells := g.rows[row-1]
	if column < 1 || column > len(cells) {
		return ""
	}
	return cells[column-1]
}

// =============================================================================
// WORKBOOK OPENING
// =============================================================================

// OpenXLSX reads the sheet selected by layout from an XLSX workbook.
//
// PARAMETERS:
//   - path: The path to the workbook.
//   - layout: The sheet layout (sheet name and raw value mode are used).
//
// RETURNS:
//   - The sheet contents as a GridSheet.
//   - An error if the workbook cannot be opened or the sheet cannot be read.
func OpenXLSX(path string, layout config.SheetLayout) (*GridSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	defer f.Close()

	sheetName, err := selectSheet(f, layout.SheetName)
	if err != nil {
		return nil, err
	}

	var opts []excelize.Options
	if layout.RawValues {
		opts = append(opts, excelize.Options{RawCellValue: true})
	}

	rows, err := f.GetRows(sheetName, opts...)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: read rows of sheet %q", sheetName)
	}

	return NewGridSheet(sheetName, rows), nil
}

// selectSheet resolves the configured sheet name, defaulting to the first sheet.
func selectSheet(f *excelize.File, name string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", eris.New("xlsx: workbook has no sheets")
	}

	if name == "" {
		return sheets[0], nil
	}

	if !slices.Contains(sheets, name) {
		return "", eris.Errorf("xlsx: sheet %q not found", name)
	}

	return name, nil
}
