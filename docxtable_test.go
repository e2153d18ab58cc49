package docxtable

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/docxtable/format"
	"github.com/tsawler/docxtable/results"
)

const testBody = `<w:tbl>
  <w:tblPr><w:tblStyle w:val="GridTable1Light-Accent1"/></w:tblPr>
  <w:tr>
    <w:tc><w:p><w:r><w:t>Region</w:t></w:r></w:p></w:tc>
    <w:tc><w:p><w:r><w:t>Q1</w:t></w:r></w:p></w:tc>
  </w:tr>
  <w:tr>
    <w:tc><w:tcPr><w:vMerge w:val="restart"/></w:tcPr><w:p><w:r><w:t>North</w:t></w:r></w:p></w:tc>
    <w:tc>
      <w:tbl>
        <w:tr><w:tc><w:p><w:r><w:t>nested</w:t></w:r></w:p></w:tc></w:tr>
      </w:tbl>
      <w:p/>
    </w:tc>
  </w:tr>
  <w:tr>
    <w:tc><w:tcPr><w:vMerge/></w:tcPr><w:p/></w:tc>
    <w:tc><w:p><w:r><w:t>12</w:t></w:r></w:p></w:tc>
  </w:tr>
</w:tbl>`

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	parts := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`},
		{"_rels/.rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`},
		{"word/document.xml", `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.Create(p.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(p.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeDOCX(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.docx")
	require.NoError(t, os.WriteFile(path, buildDOCX(t, body), 0o600))
	return path
}

func TestOpen_NonexistentFile(t *testing.T) {
	_, _, err := Open("nonexistent.docx").Tables()
	assert.Error(t, err)
}

func TestOpen_NoFilename(t *testing.T) {
	_, _, err := Open("").Tables()
	assert.Error(t, err)
}

func TestTables(t *testing.T) {
	tables, warnings, err := Open(writeDOCX(t, testBody)).Tables()
	require.NoError(t, err)

	require.Len(t, tables, 2)
	outer := tables[0]
	assert.Equal(t, "GridTable1Light-Accent1", outer.StyleID)
	assert.Equal(t, 3, outer.RowCount())
	assert.Equal(t, 2, outer.GetCell(1, 0).RowSpan)
	assert.Len(t, outer.Rows()[2].Cells(), 1)
	assert.Equal(t, 1, tables[1].RowCount())

	assert.Equal(t, []Warning{
		results.NewWarning("Table style with ID GridTable1Light-Accent1 was referenced but not defined in the document"),
	}, warnings)
}

func TestTopLevelOnly(t *testing.T) {
	base := FromBytes(buildDOCX(t, testBody))

	top, _, err := base.TopLevelOnly().Tables()
	require.NoError(t, err)
	assert.Len(t, top, 1)

	all, _, err := base.Tables()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFromBytes_RejectsOtherFormats(t *testing.T) {
	_, _, err := FromBytes([]byte("%PDF-1.7")).Tables()
	assert.ErrorIs(t, err, format.ErrNotDOCX)

	path := filepath.Join(t.TempDir(), "notes.docx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))
	_, _, err = Open(path).Tables()
	assert.ErrorIs(t, err, format.ErrNotDOCX)
}

func TestDocument(t *testing.T) {
	doc, warnings, err := FromBytes(buildDOCX(t, `<w:p><w:r><w:t>only text</w:t></w:r></w:p>`)).Document()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, doc.Children, 1)
	assert.Empty(t, doc.Tables())
}

func TestFormatWarnings(t *testing.T) {
	got := FormatWarnings([]Warning{results.NewWarning("first"), results.NewError("second")})
	assert.Equal(t, "warning: first\nerror: second", got)
	assert.Empty(t, FormatWarnings(nil))
}

func TestMust(t *testing.T) {
	assert.Panics(t, func() {
		MustTables(Open("nonexistent.docx").Tables())
	})
	tables := MustTables(FromBytes(buildDOCX(t, testBody)).Tables())
	assert.Len(t, tables, 2)
	assert.Equal(t, 3, Must(tables[0].RowCount(), nil))
}
