package model

import "strings"

// Tables returns every table in the document, outer tables before the
// tables nested in their cells.
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, e := range Descendants(d) {
		if t, ok := e.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// TopLevelTables returns tables that are not nested inside another table.
func (d *Document) TopLevelTables() []*Table {
	var tables []*Table
	var walk func(e Element)
	walk = func(e Element) {
		for _, child := range Children(e) {
			if t, ok := child.(*Table); ok {
				tables = append(tables, t)
				continue
			}
			walk(child)
		}
	}
	walk(d)
	return tables
}

// GetText returns the text content of e. Paragraphs and rows end with a
// newline; cells are separated by tabs.
func GetText(e Element) string {
	var sb strings.Builder
	writeText(&sb, e)
	return sb.String()
}

func writeText(sb *strings.Builder, e Element) {
	switch v := e.(type) {
	case *Text:
		sb.WriteString(v.Value)
	case *Tab:
		sb.WriteString("\t")
	case *Break:
		sb.WriteString("\n")
	case *TableRow:
		for i, child := range v.Children {
			if i > 0 {
				sb.WriteString("\t")
			}
			sb.WriteString(strings.TrimRight(GetText(child), "\n"))
		}
		sb.WriteString("\n")
	case *Paragraph:
		for _, child := range v.Children {
			writeText(sb, child)
		}
		sb.WriteString("\n")
	default:
		for _, child := range Children(e) {
			writeText(sb, child)
		}
	}
}
