package reportwriter

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/ginjaninja78/BOM-compare/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func sampleReport() *types.DiffReport {
	return &types.DiffReport{
		Sources: []string{"/boms/rev-a/main.xlsx", "/boms/rev-b/new.xlsx"},
		Items: []types.ItemDiff{
			{Identifier: "1001", Rows: []types.DiffRow{
				{"Revision", "A", ""},
				{"Quantity", "5", ""},
			}},
			{Identifier: "2002", Rows: []types.DiffRow{
				{"Quantity", "3", "4"},
				{"Short description", "R & C <0603>", "R 0603"},
			}},
		},
	}
}

func render(t *testing.T, report *types.DiffReport, format Format) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, report, format, DefaultOptions()))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", FormatText, false},
		{"TEXT", FormatText, false},
		{"txt", FormatText, false},
		{"csv", FormatCSV, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", FormatXML, false},
		{" xlsx ", FormatXLSX, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	format, ok := FormatFromPath("out/report.JSON")
	assert.True(t, ok)
	assert.Equal(t, FormatJSON, format)

	_, ok = FormatFromPath("report")
	assert.False(t, ok)

	_, ok = FormatFromPath("report.pdf")
	assert.False(t, ok)

	assert.Equal(t, ".txt", FormatText.Extension())
	assert.Equal(t, ".xlsx", FormatXLSX.Extension())
	assert.True(t, FormatXLSX.Binary())
	assert.False(t, FormatCSV.Binary())
}

func TestSourceLabels(t *testing.T) {
	assert.Equal(t, []string{"a.xlsx", "b.csv"}, SourceLabels([]string{"/x/a.xlsx", "/y/b.csv"}, false))
	assert.Equal(t, []string{"/x/a.xlsx", "/y/b.csv"}, SourceLabels([]string{"/x/a.xlsx", "/y/b.csv"}, true))

	// Colliding base names fall back to the full path.
	assert.Equal(t,
		[]string{"/x/bom.xlsx", "/y/bom.xlsx", "c.xlsx"},
		SourceLabels([]string{"/x/bom.xlsx", "/y/bom.xlsx", "/z/c.xlsx"}, false))
}

func TestWrite_Text(t *testing.T) {
	out := render(t, sampleReport(), FormatText)

	assert.Contains(t, out, "Item 1001\n")
	assert.Contains(t, out, "Item 2002\n")
	assert.Contains(t, out, "main.xlsx")
	assert.Contains(t, out, "new.xlsx")
	assert.Contains(t, out, "2 item(s) differ across 2 sources.")
	assert.NotContains(t, out, "\x1b[")

	var quantity string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Quantity") && strings.Contains(line, "3") {
			quantity = line
		}
	}
	assert.Equal(t, []string{"Quantity", "3", "4"}, strings.Fields(quantity))

	// Empty values leave the cell blank.
	assert.Regexp(t, `(?m)^  Quantity\s+5\s*$`, out)
	assert.Less(t, strings.Index(out, "Item 1001"), strings.Index(out, "Item 2002"))
}

func TestWrite_TextBlankCellKeepsColumn(t *testing.T) {
	report := &types.DiffReport{
		Sources: []string{"a", "b"},
		Items: []types.ItemDiff{
			{Identifier: "7", Rows: []types.DiffRow{{"Name", "", "-"}}},
		},
	}
	out := render(t, report, FormatText)

	var header, name string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "  Field"):
			header = line
		case strings.HasPrefix(line, "  Name"):
			name = line
		}
	}
	require.NotEmpty(t, header)
	require.NotEmpty(t, name)

	// A literal dash stays in the second source's column.
	assert.Equal(t, strings.Index(header, "b"), strings.Index(name, "-"))
	assert.Equal(t, []string{"Name", "-"}, strings.Fields(name))
}

func TestWrite_TextNoDifferences(t *testing.T) {
	out := render(t, &types.DiffReport{Sources: []string{"a", "b", "c"}, Items: []types.ItemDiff{}}, FormatText)
	assert.Equal(t, "No differences between 3 sources.\n", out)
}

func TestWrite_CSV(t *testing.T) {
	out := render(t, sampleReport(), FormatCSV)

	assert.Equal(t, strings.Join([]string{
		"Item,Field,main.xlsx,new.xlsx",
		"1001,Revision,A,",
		"1001,Quantity,5,",
		"2002,Quantity,3,4",
		"2002,Short description,R & C <0603>,R 0603",
	}, "\n")+"\n", out)
}

func TestWrite_JSON(t *testing.T) {
	out := render(t, sampleReport(), FormatJSON)

	var doc document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, []string{"main.xlsx", "new.xlsx"}, doc.Sources)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "2002", doc.Items[1].Identifier)
	assert.Equal(t, documentRow{Field: "Quantity", Values: []string{"3", "4"}}, doc.Items[1].Fields[0])
}

func TestWrite_JSONEmptyReportHasItemsArray(t *testing.T) {
	out := render(t, nil, FormatJSON)
	assert.Contains(t, out, `"items": []`)
}

func TestWrite_YAML(t *testing.T) {
	out := render(t, sampleReport(), FormatYAML)

	var doc document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Items, 2)
	assert.Equal(t, []string{"5", ""}, doc.Items[0].Fields[1].Values)
	assert.Equal(t, "Short description", doc.Items[1].Fields[1].Field)
}

func TestWrite_XML(t *testing.T) {
	out := render(t, sampleReport(), FormatXML)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<source n="1">main.xlsx</source>`)
	assert.Contains(t, out, `<item id="2002">`)
	assert.Contains(t, out, `<field name="Quantity">`)
	assert.Contains(t, out, `<value source="2">4</value>`)
	assert.Contains(t, out, `<value source="2"/>`)
	assert.Contains(t, out, `R &amp; C &lt;0603&gt;`)
}

func TestWrite_XMLControlCharacters(t *testing.T) {
	report := &types.DiffReport{
		Sources: []string{"a\x01.xlsx", "b.xlsx"},
		Items: []types.ItemDiff{
			{Identifier: "1\x0b", Rows: []types.DiffRow{{"Name", "Res\x0bistor", "Resistor"}}},
		},
	}
	out := render(t, report, FormatXML)

	decoder := xml.NewDecoder(strings.NewReader(out))
	var text []string
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if data, ok := token.(xml.CharData); ok {
			text = append(text, string(data))
		}
	}

	assert.Contains(t, text, "Res\uFFFDistor")
	assert.Contains(t, out, `<item id="1\uFFFD">`)
	assert.NotContains(t, out, "\x0b")
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), FormatXLSX, DefaultOptions()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DiffSheetName)
	require.NoError(t, err)

	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Item", "Field", "main.xlsx", "new.xlsx"}, rows[0])
	assert.Equal(t, []string{"1001", "Revision", "A"}, rows[1])
	assert.Equal(t, []string{"", "Quantity", "5"}, rows[2])
	assert.Equal(t, []string{"2002", "Quantity", "3", "4"}, rows[3])
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, sampleReport(), Format("pdf"), DefaultOptions()))
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt; &#34;d&#34; &#39;e&#39;", escapeXML(`a & b <c> "d" 'e'`))
	assert.Equal(t, "x&#x9;y&#xA;z\uFFFD", escapeXML("x\ty\nz\x0b"))
}
