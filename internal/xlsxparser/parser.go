// =============================================================================
// BOM Compare - BOM Row Extractor
// =============================================================================
//
// This module turns the rows of one BOM sheet into item records. A BOM sheet
// has two kinds of data rows, told apart by the sentinel column:
//
//   | A (sentinel) | B (item)  | C (rev) | D (name)   | E (qty) | K (mfr) | O (order desc) | Q | R | T |
//   |--------------|-----------|---------|------------|---------|---------|----------------|---|---|---|
//   | 10           | 4711-001  | B       | Resistor   | 12      |         |                |...|...|...|
//   | OD           |           |         | Yageo      |         | Yageo   | RC0603FR-0710K |   |   |   |
//   | OD           |           |         | Vishay     |         | Vishay  | CRCW060310K0   |   |   |   |
//   | 20           | 4711-002  | A       | Capacitor  | 4       |         |                |...|...|...|
//
//   - Item rows start a new record.
//   - Order-detail rows (sentinel "OD") add an order entry to the item above.
//
// Scanning starts at SheetLayout.StartRow and stops at the first row whose
// sentinel cell is empty. There is no row-count bound.
//
// =============================================================================

package xlsxparser

import (
	"math"
	"strconv"

	"github.com/ginjaninja78/BOM-compare/internal/config"
	"github.com/ginjaninja78/BOM-compare/internal/types"
	"go.uber.org/zap"
)

// =============================================================================
// ROW STATE MACHINE
// =============================================================================

// extractState is the continuation state of the row scan.
type extractState int

const (
	// noCurrentItem: order-detail rows have nothing to attach to.
	noCurrentItem extractState = iota

	// hasCurrentItem: order-detail rows attach to current.
	hasCurrentItem
)

// rowStateMachine tracks which record order-detail rows continue.
type rowStateMachine struct {
	state   extractState
	current *types.ItemRecord
}

// startItem makes record the target of following order-detail rows.
func (m *rowStateMachine) startItem(record *types.ItemRecord) {
	m.state = hasCurrentItem
	m.current = record
}

// reset drops the current item.
func (m *rowStateMachine) reset() {
	m.state = noCurrentItem
	m.current = nil
}

// appendOrder attaches entry to the current item. It returns false, and
// drops the entry, when there is no current item.
func (m *rowStateMachine) appendOrder(entry types.OrderEntry) bool {
	if m.state != hasCurrentItem {
		return false
	}
	m.current.OrderEntries = append(m.current.OrderEntries, entry)
	return true
}

// =============================================================================
// EXTRACTOR
// =============================================================================

// ExtractStats counts what a scan saw.
type ExtractStats struct {
	// Rows is the number of data rows scanned.
	Rows int

	// Items is the number of item records produced.
	Items int

	// OrderEntries is the number of order entries attached to items.
	OrderEntries int

	// DroppedOrderRows counts order-detail rows with no item above them.
	DroppedOrderRows int

	// SkippedItemRows counts item rows without an identifier.
	SkippedItemRows int
}

// Extractor reads item records from BOM sheets laid out as described by a
// SheetLayout.
type Extractor struct {
	layout config.SheetLayout
	logger *zap.Logger
	stats  ExtractStats
}

// NewExtractor creates an Extractor. A nil logger disables logging.
func NewExtractor(layout config.SheetLayout, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{layout: layout, logger: logger}
}

// Extract scans the sheet and returns its items in row order.
// Identifiers may repeat; the aggregator keeps the last occurrence.
func (e *Extractor) Extract(sheet Sheet) []types.SourceItem {
	e.stats = ExtractStats{}
	layout := e.layout

	var items []types.SourceItem
	var machine rowStateMachine

	for row := layout.StartRow; ; row++ {
		sentinel := sheet.Cell(layout.SentinelColumn, row)
		if sentinel == "" {
			break
		}
		e.stats.Rows++

		if sentinel == layout.OrderMarker {
			entry := types.OrderEntry{
				Name:             sheet.Cell(layout.OrderNameColumn, row),
				Manufacturer:     sheet.Cell(layout.ManufacturerColumn, row),
				OrderDescription: sheet.Cell(layout.OrderDescriptionColumn, row),
			}
			if machine.appendOrder(entry) {
				e.stats.OrderEntries++
			} else {
				e.stats.DroppedOrderRows++
				e.logger.Debug("order row has no item above it, dropped", zap.Int("row", row))
			}
			continue
		}

		identifier := sheet.Cell(layout.IdentifierColumn, row)
		if identifier == "" {
			e.stats.SkippedItemRows++
			e.logger.Warn("item row without identifier skipped",
				zap.Int("row", row),
				zap.String("sentinel", sentinel))
			machine.reset()
			continue
		}

		record := &types.ItemRecord{
			Revision:            sheet.Cell(layout.RevisionColumn, row),
			Name:                sheet.Cell(layout.NameColumn, row),
			Quantity:            ParseQuantity(sheet.Cell(layout.QuantityColumn, row)),
			AdditionalName:      sheet.Cell(layout.AdditionalNameColumn, row),
			ShortDescription:    sheet.Cell(layout.ShortDescriptionColumn, row),
			ReferenceDesignator: sheet.Cell(layout.ReferenceDesignatorColumn, row),
		}
		items = append(items, types.SourceItem{Identifier: identifier, Record: record})
		machine.startItem(record)
	}

	e.stats.Items = len(items)
	return items
}

// Stats returns the counters of the most recent Extract call.
func (e *Extractor) Stats() ExtractStats {
	return e.stats
}

// Extract scans sheet with the given layout and no logging.
func Extract(sheet Sheet, layout config.SheetLayout) []types.SourceItem {
	return NewExtractor(layout, nil).Extract(sheet)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ParseQuantity converts quantity cell text to an integer.
//
// Integer text is parsed as is. Otherwise float text is truncated toward
// zero ("12.7" -> 12, "-3.9" -> -3). Anything else, including the empty
// string and non-finite values, yields 0.
func ParseQuantity(text string) int {
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	truncated := math.Trunc(f)
	if truncated < math.MinInt64 || truncated >= math.MaxInt64 {
		return 0
	}

	return int(truncated)
}
