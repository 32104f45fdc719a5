package xlsxparser

import (
	"testing"

	"github.com/ginjaninja78/BOM-compare/internal/config"
	"github.com/ginjaninja78/BOM-compare/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallLayout puts every field in its own narrow column so fixtures stay short.
func smallLayout() config.SheetLayout {
	return config.SheetLayout{
		StartRow:                  2,
		SentinelColumn:            1,
		OrderMarker:               "OD",
		IdentifierColumn:          2,
		RevisionColumn:            3,
		NameColumn:                4,
		QuantityColumn:            5,
		AdditionalNameColumn:      6,
		ShortDescriptionColumn:    7,
		ReferenceDesignatorColumn: 8,
		OrderNameColumn:           4,
		ManufacturerColumn:        9,
		OrderDescriptionColumn:    10,
	}
}

func item(find, id, rev, name, qty string) []string {
	return []string{find, id, rev, name, qty, "add " + id, "short " + id, "R" + id}
}

func order(name, mfr, mpn string) []string {
	return []string{"OD", "", "", name, "", "", "", "", mfr, mpn}
}

func TestExtract(t *testing.T) {
	header := []string{"Pos", "Item", "Rev", "Name", "Qty"}

	tests := []struct {
		name     string
		rows     [][]string
		expected []types.SourceItem
	}{
		{
			name: "items with order rows",
			rows: [][]string{
				header,
				item("10", "1001", "A", "Resistor", "12"),
				order("R", "Yageo", "RC0603"),
				order("R", "Vishay", "CRCW0603"),
				item("20", "1002", "B", "Capacitor", "4.9"),
			},
			expected: []types.SourceItem{
				{Identifier: "1001", Record: &types.ItemRecord{
					Revision: "A", Name: "Resistor", Quantity: 12,
					AdditionalName: "add 1001", ShortDescription: "short 1001", ReferenceDesignator: "R1001",
					OrderEntries: []types.OrderEntry{
						{Name: "R", Manufacturer: "Yageo", OrderDescription: "RC0603"},
						{Name: "R", Manufacturer: "Vishay", OrderDescription: "CRCW0603"},
					},
				}},
				{Identifier: "1002", Record: &types.ItemRecord{
					Revision: "B", Name: "Capacitor", Quantity: 4,
					AdditionalName: "add 1002", ShortDescription: "short 1002", ReferenceDesignator: "R1002",
				}},
			},
		},
		{
			name: "order row before any item is dropped",
			rows: [][]string{
				header,
				order("X", "Acme", "ORPHAN"),
				item("10", "1001", "A", "Resistor", "1"),
			},
			expected: []types.SourceItem{
				{Identifier: "1001", Record: &types.ItemRecord{
					Revision: "A", Name: "Resistor", Quantity: 1,
					AdditionalName: "add 1001", ShortDescription: "short 1001", ReferenceDesignator: "R1001",
				}},
			},
		},
		{
			name: "scan stops at first empty sentinel",
			rows: [][]string{
				header,
				item("10", "1001", "A", "Resistor", "1"),
				{"", "NOTES"},
				item("30", "1003", "A", "Ignored", "1"),
			},
			expected: []types.SourceItem{
				{Identifier: "1001", Record: &types.ItemRecord{
					Revision: "A", Name: "Resistor", Quantity: 1,
					AdditionalName: "add 1001", ShortDescription: "short 1001", ReferenceDesignator: "R1001",
				}},
			},
		},
		{
			name: "item without identifier is skipped with its order rows",
			rows: [][]string{
				header,
				item("10", "1001", "A", "Resistor", "1"),
				item("20", "", "A", "Blank", "1"),
				order("X", "Acme", "LOST"),
			},
			expected: []types.SourceItem{
				{Identifier: "1001", Record: &types.ItemRecord{
					Revision: "A", Name: "Resistor", Quantity: 1,
					AdditionalName: "add 1001", ShortDescription: "short 1001", ReferenceDesignator: "R1001",
				}},
			},
		},
		{
			name:     "no data rows",
			rows:     [][]string{header},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(NewGridSheet("test", tt.rows), smallLayout())
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtract_DuplicateIdentifiersKeptInOrder(t *testing.T) {
	rows := [][]string{
		{},
		item("10", "1001", "A", "First", "1"),
		item("20", "1001", "B", "Second", "2"),
		order("R", "Yageo", "RC0603"),
	}

	got := Extract(NewGridSheet("dup", rows), smallLayout())
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Record.Name)
	assert.Empty(t, got[0].Record.OrderEntries)
	assert.Equal(t, "Second", got[1].Record.Name)
	assert.Len(t, got[1].Record.OrderEntries, 1)
}

func TestExtractor_Stats(t *testing.T) {
	rows := [][]string{
		{},
		order("X", "Acme", "ORPHAN"),
		item("10", "1001", "A", "Resistor", "1"),
		order("R", "Yageo", "RC0603"),
		item("20", "", "A", "Blank", "1"),
	}

	extractor := NewExtractor(smallLayout(), nil)
	extractor.Extract(NewGridSheet("stats", rows))

	assert.Equal(t, ExtractStats{
		Rows:             4,
		Items:            1,
		OrderEntries:     1,
		DroppedOrderRows: 1,
		SkippedItemRows:  1,
	}, extractor.Stats())
}

func TestExtract_DefaultLayoutColumns(t *testing.T) {
	layout := config.DefaultSheetLayout()

	itemRow := make([]string, 20)
	itemRow[0] = "1"
	itemRow[1] = "1001"
	itemRow[2] = "C"
	itemRow[3] = "Housing"
	itemRow[4] = "5"
	itemRow[16] = "Lower half"
	itemRow[17] = "PA66"
	itemRow[19] = "X1"

	orderRow := make([]string, 15)
	orderRow[0] = "OD"
	orderRow[3] = "Housing order"
	orderRow[10] = "Acme"
	orderRow[14] = "ACM-1001"

	rows := make([][]string, 19)
	rows = append(rows, itemRow, orderRow)

	got := Extract(NewGridSheet("default", rows), layout)
	require.Len(t, got, 1)
	assert.Equal(t, "1001", got[0].Identifier)
	assert.Equal(t, &types.ItemRecord{
		Revision:            "C",
		Name:                "Housing",
		Quantity:            5,
		AdditionalName:      "Lower half",
		ShortDescription:    "PA66",
		ReferenceDesignator: "X1",
		OrderEntries: []types.OrderEntry{
			{Name: "Housing order", Manufacturer: "Acme", OrderDescription: "ACM-1001"},
		},
	}, got[0].Record)
}

func TestRowStateMachine(t *testing.T) {
	var machine rowStateMachine
	assert.False(t, machine.appendOrder(types.OrderEntry{OrderDescription: "A"}))

	record := &types.ItemRecord{}
	machine.startItem(record)
	assert.True(t, machine.appendOrder(types.OrderEntry{OrderDescription: "A"}))
	assert.True(t, machine.appendOrder(types.OrderEntry{OrderDescription: "B"}))
	assert.Equal(t, []string{"A", "B"}, record.MPNList())

	machine.reset()
	assert.False(t, machine.appendOrder(types.OrderEntry{OrderDescription: "C"}))
	assert.Len(t, record.OrderEntries, 2)
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"12", 12},
		{"12.7", 12},
		{"-3.9", -3},
		{"0.5", 0},
		{"1e3", 1000},
		{"abc", 0},
		{"", 0},
		{" 12", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e400", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseQuantity(tt.input))
		})
	}
}
