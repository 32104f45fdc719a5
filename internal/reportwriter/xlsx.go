package reportwriter

import (
	"io"

	"github.com/ginjaninja78/BOM-compare/internal/types"
	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

// DiffSheetName is the sheet written by the xlsx format.
const DiffSheetName = "Diff"

// writeXLSX lays the report out as one table: Item, Field, then one column
// per source. The header row is frozen and each item's first row is bold.
func writeXLSX(w io.Writer, report *types.DiffReport, options Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DiffSheetName); err != nil {
		return eris.Wrap(err, "xlsx: rename sheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F81BD"}},
	})
	if err != nil {
		return eris.Wrap(err, "xlsx: header style")
	}
	itemStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return eris.Wrap(err, "xlsx: item style")
	}

	header := []any{"Item", "Field"}
	for _, label := range SourceLabels(report.Sources, options.FullPaths) {
		header = append(header, label)
	}
	if err := f.SetSheetRow(DiffSheetName, "A1", &header); err != nil {
		return eris.Wrap(err, "xlsx: write header")
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return eris.Wrap(err, "xlsx: header range")
	}
	if err := f.SetCellStyle(DiffSheetName, "A1", lastHeader, headerStyle); err != nil {
		return eris.Wrap(err, "xlsx: style header")
	}

	row := 2
	for _, item := range report.Items {
		for i, diffRow := range item.Rows {
			values := make([]any, 0, len(diffRow)+1)
			if i == 0 {
				values = append(values, item.Identifier)
			} else {
				values = append(values, "")
			}
			for _, cell := range diffRow {
				values = append(values, cell)
			}

			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return eris.Wrap(err, "xlsx: row address")
			}
			if err := f.SetSheetRow(DiffSheetName, cell, &values); err != nil {
				return eris.Wrapf(err, "xlsx: write item %s", item.Identifier)
			}
			if i == 0 {
				if err := f.SetCellStyle(DiffSheetName, cell, cell, itemStyle); err != nil {
					return eris.Wrap(err, "xlsx: style item")
				}
			}
			row++
		}
	}

	if err := f.SetPanes(DiffSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return eris.Wrap(err, "xlsx: freeze header")
	}

	if err := f.SetColWidth(DiffSheetName, "A", "B", 22); err != nil {
		return eris.Wrap(err, "xlsx: column width")
	}

	if _, err := f.WriteTo(w); err != nil {
		return eris.Wrap(err, "xlsx: write workbook")
	}
	return nil
}
