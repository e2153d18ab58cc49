package model

// Table represents a table whose rows hold merged cells
type Table struct {
	Children  []Element
	StyleID   string
	StyleName string
}

func (t *Table) Type() ElementType { return ElementTypeTable }

// NewTable assembles a table from normalized rows and a resolved style.
func NewTable(rows []Element, style Style) *Table {
	return &Table{
		Children:  rows,
		StyleID:   style.ID,
		StyleName: style.Name,
	}
}

// Rows returns the table rows. Children that are not rows are skipped.
func (t *Table) Rows() []*TableRow {
	rows := make([]*TableRow, 0, len(t.Children))
	for _, child := range t.Children {
		if row, ok := child.(*TableRow); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows())
}

// ColCount returns the number of grid columns covered by the widest row
func (t *Table) ColCount() int {
	count := 0
	for _, row := range t.Rows() {
		n := 0
		for _, cell := range row.Cells() {
			n += cell.ColSpan
		}
		if n > count {
			count = n
		}
	}
	return count
}

// GetCell returns the cell at the given row and cell position (0-indexed),
// counting rendered cells rather than grid columns.
func (t *Table) GetCell(row, cell int) *TableCell {
	rows := t.Rows()
	if row < 0 || row >= len(rows) {
		return nil
	}
	cells := rows[row].Cells()
	if cell < 0 || cell >= len(cells) {
		return nil
	}
	return cells[cell]
}

// TableRow represents a table row
type TableRow struct {
	Children []Element
	IsHeader bool
}

func (r *TableRow) Type() ElementType { return ElementTypeTableRow }

// NewTableRow creates a row.
func NewTableRow(children []Element, isHeader bool) *TableRow {
	return &TableRow{Children: children, IsHeader: isHeader}
}

// Cells returns the merged cells of the row.
func (r *TableRow) Cells() []*TableCell {
	cells := make([]*TableCell, 0, len(r.Children))
	for _, child := range r.Children {
		if cell, ok := child.(*TableCell); ok {
			cells = append(cells, cell)
		}
	}
	return cells
}

// TableCell is a normalized cell. Vertical merges have been resolved into
// RowSpan.
type TableCell struct {
	Children []Element
	ColSpan  int
	RowSpan  int
}

func (c *TableCell) Type() ElementType { return ElementTypeTableCell }

// NewTableCell creates a cell. Spans below 1 are raised to 1.
func NewTableCell(children []Element, colSpan, rowSpan int) *TableCell {
	return &TableCell{
		Children: children,
		ColSpan:  atLeastOne(colSpan),
		RowSpan:  atLeastOne(rowSpan),
	}
}

// UnmergedTableCell is a cell as written in the markup, before vertical
// merges are resolved. VMerge means the cell continues the cell above it in
// the same grid column.
type UnmergedTableCell struct {
	Children []Element
	ColSpan  int
	VMerge   bool
}

func (c *UnmergedTableCell) Type() ElementType { return ElementTypeUnmergedTableCell }

// NewUnmergedTableCell creates a raw cell. A span below 1 is raised to 1.
func NewUnmergedTableCell(children []Element, colSpan int, vmerge bool) *UnmergedTableCell {
	return &UnmergedTableCell{
		Children: children,
		ColSpan:  atLeastOne(colSpan),
		VMerge:   vmerge,
	}
}

// Unmerge drops merge information, producing a single-row cell.
func (c *UnmergedTableCell) Unmerge() *TableCell {
	return NewTableCell(c.Children, c.ColSpan, 1)
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
