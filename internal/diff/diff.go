// =============================================================================
// BOM Compare - Diff Engine
// =============================================================================
//
// This module computes the field-level difference of one aggregated item
// across all sources and assembles the DiffReport.
//
// FIELD TABLE:
//   One ordered table of (label, render, equal) drives both diff cases, so
//   row order and labels cannot drift apart:
//
//   | # | Label                | Rendered as                         |
//   |---|----------------------|-------------------------------------|
//   | 0 | Revision             | text                                |
//   | 1 | Name                 | text                                |
//   | 2 | Quantity             | decimal text                        |
//   | 3 | Additional name      | text                                |
//   | 4 | Short description    | text                                |
//   | 5 | Reference designator | text                                |
//   | 6 | Order data           | MPNs joined with ", "               |
//
// CASE A - item missing from at least one source:
//   All seven rows are emitted. Missing sources get an empty cell.
//
// CASE B - item present in every source:
//   A field is changed when any source differs from source 0. Changed fields
//   are emitted in table order, starting at Name: Revision changes are
//   tracked but only rendered when Engine.ReportRevision is set.
//   Order data compares the full sorted entries (name, manufacturer, MPN),
//   although only MPNs are rendered.
//
// =============================================================================

package diff

import (
	"slices"
	"strings"

	"github.com/ginjaninja78/BOM-compare/internal/types"
)

// =============================================================================
// FIELD TABLE
// =============================================================================

// Field is one compared attribute of an item record.
type Field struct {
	// Label is the first cell of the rendered row.
	Label string

	// Render returns the cell text for a present record.
	Render func(r *types.ItemRecord) string

	// Equal reports whether two present records agree on the field.
	Equal func(a, b *types.ItemRecord) bool
}

// Indexes into Fields.
const (
	FieldRevision = iota
	FieldName
	FieldQuantity
	FieldAdditionalName
	FieldShortDescription
	FieldReferenceDesignator
	FieldOrderData

	fieldCount
)

// OrderDataSeparator joins MPNs in the Order data row.
const OrderDataSeparator = ", "

// Fields is the ordered field table shared by both diff cases.
var Fields = [fieldCount]Field{
	FieldRevision: {
		Label:  "Revision",
		Render: func(r *types.ItemRecord) string { return r.Revision },
		Equal:  func(a, b *types.ItemRecord) bool { return a.Revision == b.Revision },
	},
	FieldName: {
		Label:  "Name",
		Render: func(r *types.ItemRecord) string { return r.Name },
		Equal:  func(a, b *types.ItemRecord) bool { return a.Name == b.Name },
	},
	FieldQuantity: {
		Label:  "Quantity",
		Render: func(r *types.ItemRecord) string { return r.QuantityText() },
		Equal:  func(a, b *types.ItemRecord) bool { return a.Quantity == b.Quantity },
	},
	FieldAdditionalName: {
		Label:  "Additional name",
		Render: func(r *types.ItemRecord) string { return r.AdditionalName },
		Equal:  func(a, b *types.ItemRecord) bool { return a.AdditionalName == b.AdditionalName },
	},
	FieldShortDescription: {
		Label:  "Short description",
		Render: func(r *types.ItemRecord) string { return r.ShortDescription },
		Equal:  func(a, b *types.ItemRecord) bool { return a.ShortDescription == b.ShortDescription },
	},
	FieldReferenceDesignator: {
		Label:  "Reference designator",
		Render: func(r *types.ItemRecord) string { return r.ReferenceDesignator },
		Equal:  func(a, b *types.ItemRecord) bool { return a.ReferenceDesignator == b.ReferenceDesignator },
	},
	FieldOrderData: {
		Label:  "Order data",
		Render: func(r *types.ItemRecord) string { return strings.Join(r.MPNList(), OrderDataSeparator) },
		Equal:  func(a, b *types.ItemRecord) bool { return slices.Equal(a.OrderEntries, b.OrderEntries) },
	},
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine computes item diffs.
type Engine struct {
	// ReportRevision renders the Revision row for items present in every
	// source. The default keeps it out of the report.
	ReportRevision bool
}

// Diff returns the diff rows of one aggregated item. An empty result means
// the item is identical in every source.
func (e Engine) Diff(item *types.AggregatedItem) []types.DiffRow {
	if !item.AllPresent() {
		rows := make([]types.DiffRow, 0, fieldCount)
		for i := range Fields {
			rows = append(rows, renderRow(i, item))
		}
		return rows
	}

	changed := ChangedFields(item)

	first := FieldName
	if e.ReportRevision {
		first = FieldRevision
	}

	var rows []types.DiffRow
	for i := first; i < fieldCount; i++ {
		if changed[i] {
			rows = append(rows, renderRow(i, item))
		}
	}

	return rows
}

// ChangedFields flags, per field, whether any source differs from source 0.
// Every slot must be present.
func ChangedFields(item *types.AggregatedItem) [fieldCount]bool {
	var changed [fieldCount]bool
	if len(item.PerSource) == 0 {
		return changed
	}

	reference := item.PerSource[0]
	for _, record := range item.PerSource[1:] {
		if reference.Equal(record) {
			continue
		}
		for i, field := range Fields {
			if !field.Equal(reference, record) {
				changed[i] = true
			}
		}
	}

	return changed
}

// renderRow renders field i for every slot; absent slots render as "".
func renderRow(i int, item *types.AggregatedItem) types.DiffRow {
	field := Fields[i]

	row := make(types.DiffRow, 0, item.Sources()+1)
	row = append(row, field.Label)
	for j, record := range item.PerSource {
		if !item.Present(j) {
			row = append(row, "")
			continue
		}
		row = append(row, field.Render(record))
	}

	return row
}

// =============================================================================
// REPORT ASSEMBLY
// =============================================================================

// BuildReport diffs every item, in the given (normalized) order, and keeps
// the items with at least one diff row.
func (e Engine) BuildReport(sources []string, items []*types.AggregatedItem) *types.DiffReport {
	report := &types.DiffReport{
		Sources: append([]string(nil), sources...),
		Items:   make([]types.ItemDiff, 0),
	}

	for _, item := range items {
		rows := e.Diff(item)
		if len(rows) == 0 {
			continue
		}
		report.Items = append(report.Items, types.ItemDiff{
			Identifier: item.Identifier,
			Rows:       rows,
		})
	}

	return report
}
