// Package wire defines the JSON shape of extracted tables shared by the
// HTTP server and the command-line tool.
package wire

import (
	"strings"

	"github.com/tsawler/docxtable/model"
	"github.com/tsawler/docxtable/results"
)

// Response is the result of converting one document.
type Response struct {
	ID       string               `json:"id,omitempty"`
	Source   string               `json:"source,omitempty"`
	Tables   []Table              `json:"tables"`
	Warnings []results.Diagnostic `json:"warnings"`
}

type Table struct {
	StyleID   string `json:"style_id,omitempty"`
	StyleName string `json:"style_name,omitempty"`
	Columns   int    `json:"columns"`
	Rows      []Row  `json:"rows"`
}

type Row struct {
	Header bool   `json:"header,omitempty"`
	Cells  []Cell `json:"cells"`
}

type Cell struct {
	Text    string `json:"text"`
	ColSpan int    `json:"col_span"`
	RowSpan int    `json:"row_span"`
}

// NewResponse builds a response. Nil slices become empty arrays.
func NewResponse(id, source string, tables []*model.Table, warnings []results.Diagnostic) Response {
	if warnings == nil {
		warnings = []results.Diagnostic{}
	}
	return Response{
		ID:       id,
		Source:   source,
		Tables:   FromTables(tables),
		Warnings: warnings,
	}
}

func FromTables(tables []*model.Table) []Table {
	out := make([]Table, 0, len(tables))
	for _, t := range tables {
		out = append(out, FromTable(t))
	}
	return out
}

func FromTable(t *model.Table) Table {
	rows := t.Rows()
	out := Table{
		StyleID:   t.StyleID,
		StyleName: t.StyleName,
		Columns:   t.ColCount(),
		Rows:      make([]Row, 0, len(rows)),
	}
	for _, r := range rows {
		cells := r.Cells()
		row := Row{Header: r.IsHeader, Cells: make([]Cell, 0, len(cells))}
		for _, c := range cells {
			row.Cells = append(row.Cells, Cell{
				Text:    strings.TrimRight(model.GetText(c), "\n"),
				ColSpan: c.ColSpan,
				RowSpan: c.RowSpan,
			})
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
