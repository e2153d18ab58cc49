package docxtable

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/tsawler/docxtable/docx"
	"github.com/tsawler/docxtable/format"
	"github.com/tsawler/docxtable/model"
)

// Extractor provides a fluent interface for reading tables from a DOCX file.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	data     []byte
	inMemory bool

	// Lifecycle
	reader       *docx.Reader
	ownsReader   bool
	readerOpened bool

	options ExtractOptions
}

// clone returns a copy that shares the source but not the reader.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		data:     e.data,
		inMemory: e.inMemory,
		options:  e.options,
	}
}

// ensureReader sniffs the source and opens the package if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}

	var opts []docx.Option
	if e.options.logger != nil {
		opts = append(opts, docx.WithLogger(e.options.logger))
	}

	if e.inMemory {
		if err := format.RequireDOCX(bytes.NewReader(e.data), int64(len(e.data))); err != nil {
			return err
		}
		r, err := docx.OpenBytes(e.data, opts...)
		if err != nil {
			return fmt.Errorf("failed to open DOCX: %w", err)
		}
		e.reader = r
		e.ownsReader = true
		e.readerOpened = true
		return nil
	}

	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}
	if err := sniffFile(e.filename); err != nil {
		return err
	}
	r, err := docx.Open(e.filename, opts...)
	if err != nil {
		return fmt.Errorf("failed to open DOCX: %w", err)
	}
	e.reader = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

func sniffFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	return format.RequireDOCX(f, info.Size())
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		e.readerOpened = false
		return err
	}
	return nil
}

// TopLevelOnly restricts Tables to tables that are not nested inside
// another table.
//
// Example:
//
//	tables, _, err := docxtable.Open("report.docx").TopLevelOnly().Tables()
func (e *Extractor) TopLevelOnly() *Extractor {
	n := e.clone()
	n.options.topLevelOnly = true
	return n
}

// WithLogger sets a logger that receives debug output about the package
// parts that are read.
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	n := e.clone()
	n.options.logger = logger
	return n
}

// Tables returns the document's tables in document order. Nested tables
// follow the table that contains them unless TopLevelOnly is set.
//
// Example:
//
//	tables, warnings, err := docxtable.Open("report.docx").Tables()
//	for _, t := range tables {
//	    fmt.Println(t.RowCount(), "rows")
//	}
func (e *Extractor) Tables() ([]*model.Table, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, nil, err
	}
	if e.options.topLevelOnly {
		return doc.TopLevelTables(), warnings, nil
	}
	return doc.Tables(), warnings, nil
}

// Document returns the whole document body.
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	doc, warnings := e.reader.Document()
	return doc, warnings, nil
}
