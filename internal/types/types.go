// =============================================================================
// BOM Compare - Shared Types
// =============================================================================
//
// This package contains the data model shared by the extraction, aggregation,
// diff and report-writing modules. Keeping it in its own package avoids
// import cycles between:
//   - xlsxparser   (produces SourceItem values)
//   - aggregator   (builds AggregatedItem values)
//   - diff         (builds the DiffReport)
//   - reportwriter (renders the DiffReport)
//
// =============================================================================

package types

import (
	"slices"
	"strconv"
)

// =============================================================================
// ITEM RECORD TYPES
// =============================================================================

// OrderEntry is one vendor/ordering line attached to an item.
// It comes from an order-detail ("OD") row directly below the item row.
type OrderEntry struct {
	// Name is the order line name (same column as the item name).
	Name string `json:"name" yaml:"name"`

	// Manufacturer is the vendor or manufacturer of the part.
	Manufacturer string `json:"manufacturer" yaml:"manufacturer"`

	// OrderDescription is the manufacturer part number (MPN).
	OrderDescription string `json:"order_description" yaml:"order_description"`
}

// ItemRecord holds one item's attributes as read from a single source.
type ItemRecord struct {
	Revision            string       `json:"revision" yaml:"revision"`
	Name                string       `json:"name" yaml:"name"`
	Quantity            int          `json:"quantity" yaml:"quantity"`
	AdditionalName      string       `json:"additional_name" yaml:"additional_name"`
	ShortDescription    string       `json:"short_description" yaml:"short_description"`
	ReferenceDesignator string       `json:"reference_designator" yaml:"reference_designator"`
	OrderEntries        []OrderEntry `json:"order_entries" yaml:"order_entries"`
}

// Equal reports whether two records are structurally identical, including
// every order entry in sequence.
func (r *ItemRecord) Equal(other *ItemRecord) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Revision == other.Revision &&
		r.Name == other.Name &&
		r.Quantity == other.Quantity &&
		r.AdditionalName == other.AdditionalName &&
		r.ShortDescription == other.ShortDescription &&
		r.ReferenceDesignator == other.ReferenceDesignator &&
		slices.Equal(r.OrderEntries, other.OrderEntries)
}

// QuantityText returns the quantity as decimal text.
func (r *ItemRecord) QuantityText() string {
	return strconv.Itoa(r.Quantity)
}

// MPNList returns the order descriptions of all order entries, in order.
func (r *ItemRecord) MPNList() []string {
	mpns := make([]string, 0, len(r.OrderEntries))
	for _, entry := range r.OrderEntries {
		mpns = append(mpns, entry.OrderDescription)
	}
	return mpns
}

// SourceItem pairs an item identifier with the record read for it.
// The extractor yields these in source row order.
type SourceItem struct {
	Identifier string
	Record     *ItemRecord
}

// =============================================================================
// AGGREGATION TYPES
// =============================================================================

// AggregatedItem is one identifier's view across all loaded sources.
//
// PerSource always has exactly one slot per source, positionally aligned with
// load order. A nil slot means the item is absent from that source.
type AggregatedItem struct {
	Identifier string
	PerSource  []*ItemRecord
}

// NewAggregatedItem creates an item with all sourceCount slots absent.
func NewAggregatedItem(identifier string, sourceCount int) *AggregatedItem {
	return &AggregatedItem{
		Identifier: identifier,
		PerSource:  make([]*ItemRecord, sourceCount),
	}
}

// Present reports whether the item exists in the source at index.
func (a *AggregatedItem) Present(index int) bool {
	return index >= 0 && index < len(a.PerSource) && a.PerSource[index] != nil
}

// AllPresent reports whether the item exists in every source.
func (a *AggregatedItem) AllPresent() bool {
	for _, record := range a.PerSource {
		if record == nil {
			return false
		}
	}
	return true
}

// Sources returns the number of slots.
func (a *AggregatedItem) Sources() int {
	return len(a.PerSource)
}

// =============================================================================
// REPORT TYPES
// =============================================================================

// DiffRow is one rendered field difference:
// [fieldLabel, valueForSource0, valueForSource1, ...].
type DiffRow []string

// Label returns the field label of the row.
func (r DiffRow) Label() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Values returns the per-source values of the row.
func (r DiffRow) Values() []string {
	if len(r) == 0 {
		return nil
	}
	return r[1:]
}

// ItemDiff holds the diff rows for a single identifier.
type ItemDiff struct {
	Identifier string    `json:"identifier" yaml:"identifier"`
	Rows       []DiffRow `json:"rows" yaml:"rows"`
}

// DiffReport is the ordered, read-only result of one comparison.
// Only items with at least one diff row are included.
type DiffReport struct {
	// Sources lists the compared source paths in load order.
	// Column i+1 of every DiffRow belongs to Sources[i].
	Sources []string `json:"sources" yaml:"sources"`

	// Items is sorted by identifier.
	Items []ItemDiff `json:"items" yaml:"items"`
}

// Len returns the number of items with differences.
func (d *DiffReport) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Items)
}

// Empty reports whether the sources matched completely.
func (d *DiffReport) Empty() bool {
	return d.Len() == 0
}
