package docx

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/docxtable/results"
)

func TestOpen(t *testing.T) {
	docxPath := createTestDOCX(t, `<w:p><w:r><w:t>Hello, World!</w:t></w:r></w:p>`)

	r, err := Open(docxPath)
	require.NoError(t, err)
	defer r.Close()

	doc, messages := r.Document()
	assert.Empty(t, messages)
	require.Len(t, doc.Children, 1)
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.docx")
	assert.Error(t, err)
}

func TestOpen_InvalidZip(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "invalid.docx")
	require.NoError(t, os.WriteFile(tmpFile, []byte("not a zip file"), 0o600))

	_, err := Open(tmpFile)
	assert.Error(t, err)
}

func TestOpenBytes_MissingParts(t *testing.T) {
	tests := []struct {
		name  string
		parts map[string]string
	}{
		{
			name: "content types",
			parts: map[string]string{
				"_rels/.rels":       packageRelsXML,
				"word/document.xml": documentXML(""),
			},
		},
		{
			name: "document",
			parts: map[string]string{
				"[Content_Types].xml": contentTypesXML,
				"_rels/.rels":         packageRelsXML,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenBytes(buildPackage(t, tt.parts))
			assert.ErrorIs(t, err, ErrMissingPart)
		})
	}
}

func TestOpenBytes_MalformedDocument(t *testing.T) {
	data := buildPackage(t, map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"word/document.xml":   "<w:document><w:body>",
	})

	_, err := OpenBytes(data)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingPart)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestOpenBytes_DocumentLocatedByRelationship(t *testing.T) {
	data := buildPackage(t, map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"_rels/.rels": `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="/content/main.xml"/>
</Relationships>`,
		"content/main.xml": documentXML(`<w:tbl><w:tblPr><w:tblStyle w:val="Grid"/></w:tblPr>` + row(cell("A", "")) + `</w:tbl>`),
		"content/_rels/main.xml.rels": `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="theme/styles.xml"/>
</Relationships>`,
		"content/theme/styles.xml": stylesXMLPart(`<w:style w:type="table" w:styleId="Grid"><w:name w:val="Grid Table"/></w:style>`),
	})

	r, err := OpenBytes(data)
	require.NoError(t, err)

	tables, messages := r.Tables()
	assert.Empty(t, messages)
	require.Len(t, tables, 1)
	assert.Equal(t, "Grid Table", tables[0].StyleName)
}

func TestReader_Styles(t *testing.T) {
	docxPath := createTestDOCXWithStyles(t,
		`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/></w:tblPr>`+row(cell("A", ""))+`</w:tbl>`,
		`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/></w:style>`)

	r, err := Open(docxPath)
	require.NoError(t, err)
	defer r.Close()

	style, ok := r.Styles().FindTableStyle("TableGrid")
	require.True(t, ok)
	assert.Equal(t, "Table Grid", style.Name)

	tables, messages := r.Tables()
	assert.Empty(t, messages)
	require.Len(t, tables, 1)
	assert.Equal(t, "TableGrid", tables[0].StyleID)
	assert.Equal(t, "Table Grid", tables[0].StyleName)
}

func TestReader_MalformedStylesReported(t *testing.T) {
	data := buildPackage(t, map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"_rels/.rels":         packageRelsXML,
		"word/document.xml":   documentXML(`<w:p/>`),
		"word/styles.xml":     "<w:styles><w:style",
	})

	r, err := OpenBytes(data)
	require.NoError(t, err)

	_, messages := r.Document()
	require.Len(t, messages, 1)
	assert.Equal(t, results.SeverityError, messages[0].Severity)
	assert.Contains(t, messages[0].Message, "word/styles.xml")
}

func TestReader_Tables(t *testing.T) {
	docxPath := createTestDOCX(t,
		`<w:tbl>`+
			row(cell("Name", ""), cell("Team", ""))+
			row(cell("Ana", ""), cell("Core", vMergeRestart))+
			row(cell("Ben", ""), cell("", vMergeContinue))+
			`</w:tbl>`+
			`<w:p><w:r><w:t>between</w:t></w:r></w:p>`+
			`<w:tbl>`+
			`<w:tr><w:tc><w:tbl>`+row(cell("nested", ""))+`</w:tbl><w:p/></w:tc></w:tr>`+
			`</w:tbl>`)

	r, err := Open(docxPath)
	require.NoError(t, err)
	defer r.Close()

	tables, messages := r.Tables()
	assert.Empty(t, messages)
	require.Len(t, tables, 3)

	first := tables[0]
	assert.Equal(t, 3, first.RowCount())
	assert.Equal(t, 2, first.GetCell(1, 1).RowSpan)
	assert.Len(t, first.Rows()[2].Cells(), 1)

	assert.Equal(t, "nested", cellText(tables[2].GetCell(0, 0)))

	doc, _ := r.Document()
	assert.Len(t, doc.TopLevelTables(), 2)
}

func TestReader_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r, err := OpenBytes(buildPackage(t, map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"_rels/.rels":         packageRelsXML,
		"word/document.xml":   documentXML(""),
	}), WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.True(t, strings.Contains(buf.String(), "part=word/document.xml"), buf.String())
}

func TestReader_CloseTwice(t *testing.T) {
	r, err := Open(createTestDOCX(t, ""))
	require.NoError(t, err)
	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestRelationships(t *testing.T) {
	rels, err := ParseRelationships([]byte(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId3" Type="styles" Target="styles.xml"/>
  <Relationship Id="rId2" Type="styles" Target="other.xml"/>
  <Relationship Id="rId9" Type="hyperlink" Target="https://example.com" TargetMode="External"/>
</Relationships>`))
	require.NoError(t, err)

	target, ok := rels.FindByType("styles")
	assert.True(t, ok)
	assert.Equal(t, "other.xml", target)

	_, ok = rels.FindByType("numbering")
	assert.False(t, ok)

	target, ok = rels.Target("rId9")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", target)
	assert.True(t, rels["rId9"].External)
}

func TestResolvePart(t *testing.T) {
	tests := []struct {
		base, target, want string
	}{
		{"word/document.xml", "styles.xml", "word/styles.xml"},
		{"word/document.xml", "../customXml/item1.xml", "customXml/item1.xml"},
		{"word/document.xml", "/word/styles.xml", "word/styles.xml"},
		{"document.xml", "styles.xml", "styles.xml"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, resolvePart(tt.base, tt.target), tt.target)
	}
	assert.Equal(t, "word/_rels/document.xml.rels", relationshipsPath("word/document.xml"))
}
