// =============================================================================
// BOM Compare - CSV Source Parser
// =============================================================================
//
// Some PDM systems export BOMs as CSV instead of XLSX. This module reads such
// a file into a plain row/column grid so the same sheet layout (start row,
// sentinel column, column positions) applies to both source kinds.
//
// FEATURES:
//   - Configurable delimiter (comma, semicolon, pipe, tab)
//   - Ragged rows (the export omits trailing empty cells)
//   - Lazy quotes for hand-edited files
//   - UTF-8 byte order mark stripped from the first cell
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"os"
	"strings"

	"github.com/ginjaninja78/BOM-compare/internal/config"
	"github.com/rotisserie/eris"
)

const utf8BOM = "\ufeff"

// Parse reads a CSV file and returns all rows in file order.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - The rows as string slices. Row i of the result is spreadsheet row i+1.
//   - An error if the file cannot be opened or is not valid CSV.
func Parse(filePath string, settings config.CSVSettings) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, eris.Wrap(err, "csv: open file")
	}
	defer file.Close()

	csvReader := csv.NewReader(bufio.NewReader(file))
	configureReader(csvReader, settings)

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "csv: read %s", filePath)
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}

	return rows, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	reader.Comma = Delimiter(settings.Delimiter)

	// Exports drop trailing empty cells, so row lengths vary.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
	reader.TrimLeadingSpace = settings.TrimLeadingSpace
}

// Delimiter converts a configured delimiter name to the separator rune.
func Delimiter(value string) rune {
	switch value {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	case "", "comma":
		return ','
	default:
		return []rune(value)[0]
	}
}
