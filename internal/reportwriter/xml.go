package reportwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/ginjaninja78/BOM-compare/internal/types"
)

// =============================================================================
// XML REPORT
// =============================================================================
//
// The XML report follows this nesting pattern:
//
//   <bomDiff>
//     <sources>
//       <source n="1">a.xlsx</source>
//       <source n="2">b.xlsx</source>
//     </sources>
//     <item id="2002">
//       <field name="Quantity">
//         <value source="1">3</value>
//         <value source="2">4</value>
//       </field>
//     </item>
//   </bomDiff>
//
// Empty values are written as self-closing <value source="n"/> elements.
//
// =============================================================================

// XMLIndent is the indentation unit of the XML report.
const XMLIndent = "  "

// XMLElement is a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement
}

func writeXML(w io.Writer, report *types.DiffReport, options Options) error {
	var buffer bytes.Buffer

	buffer.WriteString(xml.Header)
	writeElement(&buffer, buildReportElement(report, options), XMLIndent, 0)

	_, err := w.Write(buffer.Bytes())
	return err
}

// buildReportElement converts the report into the element tree.
func buildReportElement(report *types.DiffReport, options Options) XMLElement {
	sources := XMLElement{XMLName: xml.Name{Local: "sources"}}
	for i, label := range SourceLabels(report.Sources, options.FullPaths) {
		source := createSimpleElement("source", label)
		source.Attributes = []xml.Attr{indexAttr("n", i)}
		sources.Children = append(sources.Children, source)
	}

	root := XMLElement{
		XMLName:  xml.Name{Local: "bomDiff"},
		Children: []XMLElement{sources},
	}

	for _, item := range report.Items {
		itemElement := XMLElement{
			XMLName:    xml.Name{Local: "item"},
			Attributes: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: item.Identifier}},
		}

		for _, row := range item.Rows {
			field := XMLElement{
				XMLName:    xml.Name{Local: "field"},
				Attributes: []xml.Attr{{Name: xml.Name{Local: "name"}, Value: row.Label()}},
			}
			for i, value := range row.Values() {
				element := createSimpleElement("value", value)
				element.Attributes = []xml.Attr{indexAttr("source", i)}
				field.Children = append(field.Children, element)
			}
			itemElement.Children = append(itemElement.Children, field)
		}

		root.Children = append(root.Children, itemElement)
	}

	return root
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// createSimpleElement creates a simple XML element with a text value.
func createSimpleElement(name, value string) XMLElement {
	return XMLElement{
		XMLName: xml.Name{Local: name},
		Value:   value,
	}
}

// indexAttr builds a 1-based index attribute.
func indexAttr(name string, index int) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: strconv.Itoa(index + 1)}
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	// Write indentation.
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	for _, attr := range element.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", attr.Name.Local, escapeXML(attr.Value)))
	}

	if len(element.Children) == 0 && element.Value == "" {
		// Self-closing tag.
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if element.Value != "" {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML. Characters that XML 1.0
// cannot carry, such as C0 controls other than tab and newline, become U+FFFD.
func escapeXML(s string) string {
	var buffer bytes.Buffer
	// Writes to a bytes.Buffer do not fail.
	_ = xml.EscapeText(&buffer, []byte(s))
	return buffer.String()
}
