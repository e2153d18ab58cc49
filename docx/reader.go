// Package docx reads WordprocessingML (.docx) documents into the element
// tree of package model, resolving vertically merged table cells into
// row spans.
//
// Reading never fails on unexpected markup. Anomalies are reported as
// diagnostics next to a best-effort result:
//
//	r, err := docx.Open("report.docx")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	tables, warnings := r.Tables()
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/tsawler/docxtable/model"
	"github.com/tsawler/docxtable/results"
	"github.com/tsawler/docxtable/xmlnode"
)

// ErrMissingPart is returned when a required package part is absent.
var ErrMissingPart = errors.New("missing required part")

const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"

	defaultDocumentPath = "word/document.xml"
	defaultStylesPath   = "word/styles.xml"
)

// relationshipsXML represents _rels/*.rels files
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship.
type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"` // External or empty (internal)
}

// Relationship is an entry of a part's relationships file.
type Relationship struct {
	Type     string
	Target   string
	External bool
}

// Relationships maps relationship IDs to their entries.
type Relationships map[string]Relationship

// ParseRelationships reads the contents of a .rels part.
func ParseRelationships(data []byte) (Relationships, error) {
	var doc relationshipsXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling relationships: %w", err)
	}
	rels := make(Relationships, len(doc.Relationships))
	for _, rel := range doc.Relationships {
		rels[rel.ID] = Relationship{
			Type:     rel.Type,
			Target:   rel.Target,
			External: strings.EqualFold(rel.TargetMode, "External"),
		}
	}
	return rels, nil
}

// Target returns the target of the relationship with the given ID.
func (r Relationships) Target(id string) (string, bool) {
	rel, ok := r[id]
	return rel.Target, ok
}

// FindByType returns the target of the first relationship of the given type,
// in ID order.
func (r Relationships) FindByType(relType string) (string, bool) {
	found := ""
	for id, rel := range r {
		if rel.Type == relType && (found == "" || id < found) {
			found = id
		}
	}
	if found == "" {
		return "", false
	}
	return r[found].Target, true
}

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader *zip.Reader
	closer    io.Closer
	logger    *slog.Logger

	document *xmlnode.Element
	styles   *Styles
	rels     Relationships
	messages []results.Diagnostic
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for debug output while opening a package.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Open opens a DOCX file for reading.
func Open(filename string, opts ...Option) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader, opts)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// OpenReader reads a DOCX package from r.
func OpenReader(r io.ReaderAt, size int64, opts ...Option) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr, opts)
}

// OpenBytes reads a DOCX package held in memory.
func OpenBytes(data []byte, opts ...Option) (*Reader, error) {
	return OpenReader(bytes.NewReader(data), int64(len(data)), opts...)
}

func newReader(zr *zip.Reader, opts []Option) (*Reader, error) {
	r := &Reader{
		zipReader: zr,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.getFile("[Content_Types].xml") == nil {
		return nil, fmt.Errorf("%w: [Content_Types].xml", ErrMissingPart)
	}

	documentPath := r.findDocumentPath()
	data, err := r.getFileContent(documentPath)
	if err != nil {
		return nil, err
	}
	r.document, err = xmlnode.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", documentPath, err)
	}
	r.logger.Debug("read document part", "part", documentPath, "bytes", len(data))

	r.rels = r.readRelationships(relationshipsPath(documentPath))
	r.styles = r.readStyles(r.stylesPath(documentPath))

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// findDocumentPath locates the main document part through the package
// relationships, falling back to the conventional location.
func (r *Reader) findDocumentPath() string {
	data, err := r.getFileContent("_rels/.rels")
	if err != nil {
		return defaultDocumentPath
	}
	rels, err := ParseRelationships(data)
	if err != nil {
		return defaultDocumentPath
	}
	target, ok := rels.FindByType(relTypeOfficeDocument)
	if !ok {
		return defaultDocumentPath
	}
	return strings.TrimPrefix(path.Clean("/"+target), "/")
}

// relationshipsPath returns the .rels part describing part.
func relationshipsPath(part string) string {
	dir, file := path.Split(part)
	return dir + "_rels/" + file + ".rels"
}

// resolvePart resolves a relationship target relative to the part that
// declares it.
func resolvePart(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join("/", path.Dir(base), target), "/")
}

func (r *Reader) stylesPath(documentPath string) string {
	if target, ok := r.rels.FindByType(relTypeStyles); ok {
		return resolvePart(documentPath, target)
	}
	return defaultStylesPath
}

// readRelationships reads an optional relationships part.
func (r *Reader) readRelationships(name string) Relationships {
	data, err := r.getFileContent(name)
	if err != nil {
		return Relationships{}
	}
	rels, err := ParseRelationships(data)
	if err != nil {
		r.messages = append(r.messages, results.NewError(fmt.Sprintf("could not read %s: %v", name, err)))
		return Relationships{}
	}
	r.logger.Debug("read relationships", "part", name, "count", len(rels))
	return rels
}

// readStyles reads the optional styles part. A malformed part is reported
// and treated as empty.
func (r *Reader) readStyles(name string) *Styles {
	data, err := r.getFileContent(name)
	if err != nil {
		return NewStyles()
	}
	styles, err := ParseStyles(data)
	if err != nil {
		r.messages = append(r.messages, results.NewError(fmt.Sprintf("could not read %s: %v", name, err)))
		return NewStyles()
	}
	r.logger.Debug("read styles", "part", name)
	return styles
}

// getFile returns a zip.File by name.
func (r *Reader) getFile(name string) *zip.File {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f := r.getFile(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Styles returns the styles defined by the package.
func (r *Reader) Styles() *Styles {
	return r.styles
}

// Relationships returns the relationships of the main document part.
func (r *Reader) Relationships() Relationships {
	return r.rels
}

// BodyReader returns a body reader bound to the package's styles and
// relationships.
func (r *Reader) BodyReader() *BodyReader {
	return NewBodyReader(r.styles, r.rels)
}

// Document reads the document body. Diagnostics from opening the package
// come first.
func (r *Reader) Document() (*model.Document, []results.Diagnostic) {
	doc, messages := r.BodyReader().ReadDocument(r.document)
	return doc, append(append([]results.Diagnostic(nil), r.messages...), messages...)
}

// Tables returns every table in the document, including tables nested in
// cells, in document order.
func (r *Reader) Tables() ([]*model.Table, []results.Diagnostic) {
	doc, messages := r.Document()
	return doc.Tables(), messages
}
