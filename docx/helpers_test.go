package docx

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsawler/docxtable/model"
	"github.com/tsawler/docxtable/xmlnode"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// documentXML wraps body content in a w:document part.
func documentXML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document ` + wordNS + `>
  <w:body>` + body + `</w:body>
</w:document>`
}

// stylesXMLPart wraps style definitions in a w:styles part.
func stylesXMLPart(styles string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles ` + wordNS + `>` + styles + `</w:styles>`
}

// buildPackage zips the given parts in sorted name order.
func buildPackage(t *testing.T, parts map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(parts[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// createTestDOCX creates a minimal DOCX file for testing.
func createTestDOCX(t *testing.T, body string) string {
	t.Helper()
	return createTestDOCXWithStyles(t, body, "")
}

// createTestDOCXWithStyles creates a DOCX with a styles part when styles is
// not empty.
func createTestDOCXWithStyles(t *testing.T, body, styles string) string {
	t.Helper()

	parts := map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"_rels/.rels":         packageRelsXML,
		"word/document.xml":   documentXML(body),
	}
	if styles != "" {
		parts["word/styles.xml"] = stylesXMLPart(styles)
	}

	docxPath := filepath.Join(t.TempDir(), "test.docx")
	require.NoError(t, os.WriteFile(docxPath, buildPackage(t, parts), 0o600))
	return docxPath
}

// parseElement parses an XML fragment with the w and r prefixes declared on
// its root.
func parseElement(t *testing.T, fragment string) *xmlnode.Element {
	t.Helper()

	end := strings.IndexAny(fragment, " />")
	require.Positive(t, end)
	root, err := xmlnode.ParseString(fragment[:end] + " " + wordNS + fragment[end:])
	require.NoError(t, err)
	return root
}

// cell returns a w:tc holding one paragraph of text.
func cell(text, props string) string {
	return `<w:tc><w:tcPr>` + props + `</w:tcPr><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:tc>`
}

func row(cells ...string) string {
	return `<w:tr>` + strings.Join(cells, "") + `</w:tr>`
}

const (
	vMergeRestart  = `<w:vMerge w:val="restart"/>`
	vMergeContinue = `<w:vMerge/>`
)

func gridSpan(n string) string {
	return `<w:gridSpan w:val="` + n + `"/>`
}

// cellText returns the trimmed text of a cell.
func cellText(c model.Element) string {
	return strings.TrimSpace(model.GetText(c))
}

// rawCell builds an unmerged cell holding a text element.
func rawCell(text string, colSpan int, vmerge bool) *model.UnmergedTableCell {
	return model.NewUnmergedTableCell([]model.Element{model.NewText(text)}, colSpan, vmerge)
}

func rawRow(cells ...model.Element) *model.TableRow {
	return model.NewTableRow(cells, false)
}

// spans summarizes a normalized table as text/colspan/rowspan per cell.
type span struct {
	Text    string
	ColSpan int
	RowSpan int
}

func spansOf(t *testing.T, rows []model.Element) [][]span {
	t.Helper()

	out := make([][]span, len(rows))
	for i, el := range rows {
		r, ok := el.(*model.TableRow)
		require.True(t, ok, "row %d is %T", i, el)
		out[i] = []span{}
		for _, child := range r.Children {
			c, ok := child.(*model.TableCell)
			require.True(t, ok, "row %d child is %T", i, child)
			out[i] = append(out[i], span{Text: cellText(c), ColSpan: c.ColSpan, RowSpan: c.RowSpan})
		}
	}
	return out
}
