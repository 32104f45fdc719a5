package comparer

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ginjaninja78/BOM-compare/internal/config"
	"github.com/ginjaninja78/BOM-compare/internal/csvparser"
	"github.com/ginjaninja78/BOM-compare/internal/xlsxparser"
)

// WorkbookExtensions are opened with the XLSX reader.
var WorkbookExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// CSVExtensions are opened with the CSV reader.
var CSVExtensions = []string{".csv"}

// IsSupportedSource reports whether path has an extension FileOpener reads.
func IsSupportedSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(WorkbookExtensions, ext) || slices.Contains(CSVExtensions, ext)
}

// FileOpener opens BOM files from disk, choosing the reader by extension.
type FileOpener struct {
	Layout config.SheetLayout
	CSV    config.CSVSettings
}

// NewFileOpener creates a FileOpener from the application configuration.
func NewFileOpener(cfg *config.MainConfig) FileOpener {
	return FileOpener{Layout: cfg.Layout, CSV: cfg.CSV}
}

// Open implements SourceOpener.
func (o FileOpener) Open(path string) (xlsxparser.Sheet, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case slices.Contains(WorkbookExtensions, ext):
		sheet, err := xlsxparser.OpenXLSX(path, o.Layout)
		if err != nil {
			return nil, err
		}
		return sheet, nil

	case slices.Contains(CSVExtensions, ext):
		rows, err := csvparser.Parse(path, o.CSV)
		if err != nil {
			return nil, err
		}
		return xlsxparser.NewGridSheet(filepath.Base(path), rows), nil

	default:
		return nil, fmt.Errorf("unsupported source type %q", ext)
	}
}
