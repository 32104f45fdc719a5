// =============================================================================
// BOM Compare - Item Aggregator
// =============================================================================
//
// This module merges the items extracted from N sources into one collection
// keyed by item identifier. Every aggregated item carries exactly N slots,
// one per source in load order; a nil slot means the item is missing from
// that source.
//
// AGGREGATION RULES:
//   - Sources are processed in load order (index 0..N-1)
//   - Identifiers keep the order in which they are first seen
//   - A repeated identifier within one source overwrites its slot
//     (the last occurrence wins)
//
// NORMALIZATION (required before diffing):
//   - Items are sorted by identifier (byte-wise)
//   - Each record's order entries are sorted by order description
//     (byte-wise), so row order in the source does not produce diffs
//
// =============================================================================

package aggregator

import (
	"slices"
	"strings"

	"github.com/ginjaninja78/BOM-compare/internal/types"
)

// Aggregate merges per-source extraction results, given in load order.
// The result is in first-seen order; call Normalize before diffing.
func Aggregate(sources [][]types.SourceItem) []*types.AggregatedItem {
	sourceCount := len(sources)

	var items []*types.AggregatedItem
	index := make(map[string]*types.AggregatedItem)

	for sourceIndex, sourceItems := range sources {
		for _, sourceItem := range sourceItems {
			aggregated, exists := index[sourceItem.Identifier]
			if !exists {
				aggregated = types.NewAggregatedItem(sourceItem.Identifier, sourceCount)
				index[sourceItem.Identifier] = aggregated
				items = append(items, aggregated)
			}
			aggregated.PerSource[sourceIndex] = sourceItem.Record
		}
	}

	return items
}

// Normalize sorts items by identifier and every present record's order
// entries by order description. Both sorts are stable.
func Normalize(items []*types.AggregatedItem) {
	slices.SortStableFunc(items, func(a, b *types.AggregatedItem) int {
		return strings.Compare(a.Identifier, b.Identifier)
	})

	for _, item := range items {
		for _, record := range item.PerSource {
			if record == nil {
				continue
			}
			SortOrderEntries(record.OrderEntries)
		}
	}
}

// SortOrderEntries sorts entries by order description, keeping the source
// order of entries with equal descriptions.
func SortOrderEntries(entries []types.OrderEntry) {
	slices.SortStableFunc(entries, func(a, b types.OrderEntry) int {
		return strings.Compare(a.OrderDescription, b.OrderDescription)
	})
}
