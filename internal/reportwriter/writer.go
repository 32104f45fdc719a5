// =============================================================================
// BOM Compare - Report Writer Module
// =============================================================================
//
// This module renders a DiffReport in one of the supported output formats.
// Every format carries the same content: the ordered source list, then each
// differing item with its rows of [field, value per source].
//
// FORMATS:
//   text - Aligned tables, one per item, optionally colored
//   csv  - One line per diff row: Item, Field, <one column per source>
//   json - Indented JSON document
//   yaml - YAML document
//   xml  - Indented XML document
//   xlsx - Workbook with one "Diff" sheet
//
// =============================================================================

package reportwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/ginjaninja78/BOM-compare/internal/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls report rendering.
type Options struct {
	// Color enables ANSI colors in the text format.
	Color bool

	// FullPaths labels sources with their full path instead of the base name.
	FullPaths bool
}

// DefaultOptions returns options for plain, uncolored output.
func DefaultOptions() Options {
	return Options{}
}

// =============================================================================
// DOCUMENT MODEL
// =============================================================================

// document is the serialized shape shared by the json, yaml and xml formats.
type document struct {
	Sources []string       `json:"sources" yaml:"sources"`
	Items   []documentItem `json:"items" yaml:"items"`
}

type documentItem struct {
	Identifier string        `json:"identifier" yaml:"identifier"`
	Fields     []documentRow `json:"fields" yaml:"fields"`
}

type documentRow struct {
	Field  string   `json:"field" yaml:"field"`
	Values []string `json:"values" yaml:"values"`
}

func newDocument(report *types.DiffReport, options Options) document {
	doc := document{
		Sources: SourceLabels(report.Sources, options.FullPaths),
		Items:   make([]documentItem, 0, report.Len()),
	}
	for _, item := range report.Items {
		fields := make([]documentRow, 0, len(item.Rows))
		for _, row := range item.Rows {
			values := append([]string{}, row.Values()...)
			fields = append(fields, documentRow{Field: row.Label(), Values: values})
		}
		doc.Items = append(doc.Items, documentItem{Identifier: item.Identifier, Fields: fields})
	}
	return doc
}

// SourceLabels returns the column label for each source. Base names are
// used unless they collide or fullPaths is set.
func SourceLabels(sources []string, fullPaths bool) []string {
	labels := make([]string, len(sources))
	seen := make(map[string]int, len(sources))
	for i, source := range sources {
		labels[i] = filepath.Base(source)
		seen[labels[i]]++
	}
	for i, source := range sources {
		if fullPaths || seen[labels[i]] > 1 {
			labels[i] = source
		}
	}
	return labels
}

// =============================================================================
// WRITE
// =============================================================================

// Write renders report to w in the given format.
func Write(w io.Writer, report *types.DiffReport, format Format, options Options) error {
	if report == nil {
		report = &types.DiffReport{}
	}

	switch format {
	case FormatText:
		return writeText(w, report, options)
	case FormatCSV:
		return writeCSV(w, report, options)
	case FormatJSON:
		return writeJSON(w, report, options)
	case FormatYAML:
		return writeYAML(w, report, options)
	case FormatXML:
		return writeXML(w, report, options)
	case FormatXLSX:
		return writeXLSX(w, report, options)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// =============================================================================
// TEXT
// =============================================================================

func writeText(w io.Writer, report *types.DiffReport, options Options) error {
	heading := color.New(color.FgCyan, color.Bold)
	summary := color.New(color.FgYellow)
	match := color.New(color.FgGreen)
	if !options.Color {
		heading.DisableColor()
		summary.DisableColor()
		match.DisableColor()
	}

	labels := SourceLabels(report.Sources, options.FullPaths)

	if report.Empty() {
		_, err := match.Fprintf(w, "No differences between %d sources.\n", len(labels))
		return err
	}

	for i, item := range report.Items {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := heading.Fprintf(w, "Item %s\n", item.Identifier); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprint(tw, "  Field")
		for _, label := range labels {
			fmt.Fprintf(tw, "\t%s", label)
		}
		fmt.Fprintln(tw)

		for _, row := range item.Rows {
			fmt.Fprintf(tw, "  %s", row.Label())
			for _, value := range row.Values() {
				fmt.Fprintf(tw, "\t%s", value)
			}
			fmt.Fprintln(tw)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := summary.Fprintf(w, "\n%d item(s) differ across %d sources.\n", report.Len(), len(labels))
	return err
}

// =============================================================================
// CSV
// =============================================================================

func writeCSV(w io.Writer, report *types.DiffReport, options Options) error {
	writer := csv.NewWriter(w)

	header := append([]string{"Item", "Field"}, SourceLabels(report.Sources, options.FullPaths)...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, item := range report.Items {
		for _, row := range item.Rows {
			record := append([]string{item.Identifier}, row...)
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// =============================================================================
// JSON / YAML
// =============================================================================

func writeJSON(w io.Writer, report *types.DiffReport, options Options) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newDocument(report, options))
}

func writeYAML(w io.Writer, report *types.DiffReport, options Options) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(newDocument(report, options)); err != nil {
		return err
	}
	return encoder.Close()
}
