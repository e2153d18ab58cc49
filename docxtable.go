// Package docxtable provides a fluent API for reading tables out of DOCX
// files, with vertically merged cells resolved into row spans.
//
// Basic usage:
//
//	tables, warnings, err := docxtable.Open("report.docx").Tables()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docxtable.FormatWarnings(warnings))
//	}
//
// For lower-level access, see the docx package.
package docxtable

import (
	"strings"

	"github.com/tsawler/docxtable/results"
)

// Warning is a non-fatal problem found while reading a document.
type Warning = results.Diagnostic

// Open returns an Extractor for the DOCX file at filename. The file is not
// read until a terminal operation such as Tables is called.
//
// Example:
//
//	tables, warnings, err := docxtable.Open("report.docx").Tables()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns an Extractor for a DOCX package held in memory.
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:     data,
		inMemory: true,
		options:  defaultOptions(),
	}
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTables wraps a call to Tables or Document and panics if the error is
// non-nil. Warnings are discarded.
//
// Example:
//
//	tables := docxtable.MustTables(docxtable.Open("report.docx").Tables())
func MustTables[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
