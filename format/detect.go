// Package format sniffs uploaded content so that only WordprocessingML
// packages reach the table reader.
package format

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrNotDOCX is returned by RequireDOCX when the content is not a Word
// document package.
var ErrNotDOCX = errors.New("not a DOCX document")

// Format represents a document format that can be told apart from DOCX.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a WordprocessingML (.docx, .docm, .dotx) package.
	DOCX
	// XLSX indicates a SpreadsheetML package.
	XLSX
	// PPTX indicates a PresentationML package.
	PPTX
	// ODT indicates an OpenDocument Text package.
	ODT
	// PDF indicates a PDF file.
	PDF
	// ZIP indicates a ZIP archive that is not an office package.
	ZIP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case XLSX:
		return "XLSX"
	case PPTX:
		return "PPTX"
	case ODT:
		return "ODT"
	case PDF:
		return "PDF"
	case ZIP:
		return "ZIP"
	default:
		return "Unknown"
	}
}

// MediaType returns the IANA media type of the format.
func (f Format) MediaType() string {
	switch f {
	case DOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case PPTX:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case ODT:
		return "application/vnd.oasis.opendocument.text"
	case PDF:
		return "application/pdf"
	case ZIP:
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}

// Detect guesses the format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx", ".docm", ".dotx", ".dotm":
		return DOCX
	case ".xlsx", ".xlsm":
		return XLSX
	case ".pptx", ".pptm":
		return PPTX
	case ".odt":
		return ODT
	case ".pdf":
		return PDF
	case ".zip":
		return ZIP
	default:
		return Unknown
	}
}

var (
	zipMagic = []byte("PK\x03\x04")
	pdfMagic = []byte("%PDF")
)

const (
	wordMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	wordMacroContent    = "application/vnd.ms-word.document.macroEnabled.main+xml"
	wordTemplateContent = "application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml"
)

// contentTypesXML represents [Content_Types].xml.
type contentTypesXML struct {
	XMLName   xml.Name `xml:"Types"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// DetectBytes inspects in-memory content.
func DetectBytes(data []byte) (Format, error) {
	return DetectFromReader(bytes.NewReader(data), int64(len(data)))
}

// DetectFromReader inspects content to determine its format. ZIP archives
// are opened so that office packages can be told apart.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, fmt.Errorf("reading magic bytes: %w", err)
	}
	magic = magic[:n]

	switch {
	case bytes.HasPrefix(magic, pdfMagic):
		return PDF, nil
	case bytes.HasPrefix(magic, zipMagic):
		return detectZIPFormat(r, size)
	default:
		return Unknown, nil
	}
}

// RequireDOCX returns nil if the content is a DOCX package, and an error
// wrapping ErrNotDOCX naming the detected format otherwise. Content that
// cannot be inspected, such as a truncated archive, yields the detection
// error unwrapped.
func RequireDOCX(r io.ReaderAt, size int64) error {
	f, err := DetectFromReader(r, size)
	if err != nil {
		return err
	}
	if f != DOCX {
		return fmt.Errorf("%w: detected %s", ErrNotDOCX, f)
	}
	return nil
}

// detectZIPFormat prefers the declared content type of the main part and
// falls back to the conventional part directories.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, fmt.Errorf("opening ZIP archive: %w", err)
	}

	var contentTypes *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case "mimetype":
			if isODT(f) {
				return ODT, nil
			}
		case "[Content_Types].xml":
			contentTypes = f
		}
	}
	if contentTypes == nil {
		return ZIP, nil
	}

	if f, ok := formatFromContentTypes(contentTypes); ok {
		return f, nil
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		}
	}
	return ZIP, nil
}

func isODT(f *zip.File) bool {
	rc, err := f.Open()
	if err != nil {
		return false
	}
	defer rc.Close()

	data, _ := io.ReadAll(io.LimitReader(rc, 256))
	return strings.Contains(string(data), "application/vnd.oasis.opendocument.text")
}

func formatFromContentTypes(f *zip.File) (Format, bool) {
	rc, err := f.Open()
	if err != nil {
		return Unknown, false
	}
	defer rc.Close()

	var types contentTypesXML
	if err := xml.NewDecoder(rc).Decode(&types); err != nil {
		return Unknown, false
	}
	for _, o := range types.Overrides {
		switch {
		case o.ContentType == wordMainContentType, o.ContentType == wordMacroContent, o.ContentType == wordTemplateContent:
			return DOCX, true
		case strings.Contains(o.ContentType, "spreadsheetml.sheet.main"):
			return XLSX, true
		case strings.Contains(o.ContentType, "presentationml.presentation.main"):
			return PPTX, true
		}
	}
	return Unknown, false
}
