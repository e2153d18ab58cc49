package docx

import (
	"strconv"

	"github.com/tsawler/docxtable/model"
	"github.com/tsawler/docxtable/results"
	"github.com/tsawler/docxtable/xmlnode"
)

const (
	nonRowMessage  = "unexpected non-row element in table, cell merging may be incorrect"
	nonCellMessage = "unexpected non-cell element in table row, cell merging may be incorrect"
)

// NormalizeTable reads the children of a w:tbl element and returns the
// table with vertical merges resolved, along with any diagnostics.
// styleRef is the table's w:tblStyle value, or "" if it has none.
//
// Elements hoisted out of the table, such as bookmarks between rows, are
// not part of the returned table; use ReadTable to receive them.
func (r *BodyReader) NormalizeTable(children []xmlnode.Node, styleRef string) (*model.Table, []results.Diagnostic) {
	res := r.tableResult(children, styleRef)
	return res.Elements[0], res.Messages
}

// ReadTable reads a w:tbl element.
func (r *BodyReader) ReadTable(el *xmlnode.Element) results.Result[model.Element] {
	styleRef := el.FindChild("w:tblPr").FindChild("w:tblStyle").Attr("w:val")
	return results.Map(r.tableResult(el.Children, styleRef), func(tables []*model.Table) []model.Element {
		out := make([]model.Element, len(tables))
		for i, t := range tables {
			out[i] = t
		}
		return out
	})
}

func (r *BodyReader) tableResult(children []xmlnode.Node, styleRef string) results.Result[*model.Table] {
	return results.Map2(
		r.styles.ResolveTableStyle(styleRef),
		results.FlatMap(r.ReadAll(children), CalculateRowSpans),
		func(style []model.Style, rows []model.Element) *model.Table {
			return model.NewTable(rows, firstStyle(style))
		},
	)
}

// readTableRow reads a w:tr element into a row of unmerged cells.
func (r *BodyReader) readTableRow(el *xmlnode.Element) results.Result[model.Element] {
	isHeader := readBool(el.FindChild("w:trPr").FindChild("w:tblHeader"))
	return results.MapOne(r.ReadAll(el.Children), func(children []model.Element) model.Element {
		return model.NewTableRow(children, isHeader)
	})
}

// readTableCell reads a w:tc element. The column span comes from
// w:gridSpan; w:vMerge without a "restart" value marks a continuation.
func (r *BodyReader) readTableCell(el *xmlnode.Element) results.Result[model.Element] {
	props := el.FindChild("w:tcPr")
	colSpan := parseGridSpan(props.FindChild("w:gridSpan").Attr("w:val"))
	vmerge := readVMerge(props.FindChild("w:vMerge"))
	return results.MapOne(r.readBlocks(el.Children), func(children []model.Element) model.Element {
		return model.NewUnmergedTableCell(children, colSpan, vmerge)
	})
}

func parseGridSpan(val string) int {
	span, err := strconv.Atoi(val)
	if err != nil || span < 1 {
		return 1
	}
	return span
}

// readVMerge reports whether a cell continues the merge above it: the
// w:vMerge element is present with no value or the value "continue".
func readVMerge(el *xmlnode.Element) bool {
	if el == nil {
		return false
	}
	val := el.Attr("w:val")
	return val == "" || val == "continue"
}

// mergeCell tracks a raw cell while vertical merges are resolved.
type mergeCell struct {
	cell         *model.UnmergedTableCell
	rowSpan      int
	continuation bool
}

// CalculateRowSpans collapses vertically merged cells. Each continuation
// cell is absorbed into the open cell above it in the same grid column,
// whose row span grows by one. The result holds rows of merged cells.
//
// If an element of rows is not a row, or a row holds something other than
// an unmerged cell, no merging is attempted: every unmerged cell is
// converted to a single-row cell and one warning is returned.
//
// The input is not modified.
func CalculateRowSpans(rows []model.Element) results.Result[model.Element] {
	for _, el := range rows {
		if row, ok := el.(*model.TableRow); !ok || row == nil {
			return results.WithMessages(RemoveUnmergedTableCells(rows), results.NewWarning(nonRowMessage))
		}
	}
	for _, el := range rows {
		for _, child := range el.(*model.TableRow).Children {
			if _, ok := child.(*model.UnmergedTableCell); !ok {
				return results.WithMessages(RemoveUnmergedTableCells(rows), results.NewWarning(nonCellMessage))
			}
		}
	}

	// columns[i] is the cell currently open for merging in grid column i.
	// It lives for the whole table, not a single row.
	var columns []*mergeCell
	tracked := make([][]*mergeCell, len(rows))

	for i, el := range rows {
		row := el.(*model.TableRow)
		cells := make([]*mergeCell, len(row.Children))
		cellIndex := 0
		for j, child := range row.Children {
			cell := child.(*model.UnmergedTableCell)
			current := &mergeCell{cell: cell, rowSpan: 1}

			if cell.VMerge && cellIndex < len(columns) && columns[cellIndex] != nil {
				columns[cellIndex].rowSpan++
				current.continuation = true
			} else {
				// Also covers a continuation with nothing above it, which
				// starts a new cell.
				for len(columns) <= cellIndex {
					columns = append(columns, nil)
				}
				columns[cellIndex] = current
			}

			cells[j] = current
			cellIndex += spanOf(cell)
		}
		tracked[i] = cells
	}

	out := make([]model.Element, len(rows))
	for i, el := range rows {
		row := el.(*model.TableRow)
		children := make([]model.Element, 0, len(tracked[i]))
		for _, c := range tracked[i] {
			if c.continuation {
				continue
			}
			children = append(children, model.NewTableCell(c.cell.Children, c.cell.ColSpan, c.rowSpan))
		}
		out[i] = model.NewTableRow(children, row.IsHeader)
	}

	return results.Success(out...)
}

func spanOf(cell *model.UnmergedTableCell) int {
	if cell.ColSpan < 1 {
		return 1
	}
	return cell.ColSpan
}

// RemoveUnmergedTableCells replaces every unmerged cell in elements, at any
// depth, with a single-row cell. Merge information is discarded.
func RemoveUnmergedTableCells(elements []model.Element) []model.Element {
	out := make([]model.Element, len(elements))
	for i, el := range elements {
		out[i] = model.TransformOfType(el, func(cell *model.UnmergedTableCell) model.Element {
			return cell.Unmerge()
		})
	}
	return out
}
