package model

// ElementType discriminates the Element variants.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeDocument
	ElementTypeParagraph
	ElementTypeRun
	ElementTypeText
	ElementTypeTab
	ElementTypeBreak
	ElementTypeHyperlink
	ElementTypeBookmark
	ElementTypeTable
	ElementTypeTableRow
	ElementTypeTableCell
	ElementTypeUnmergedTableCell
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeDocument:
		return "Document"
	case ElementTypeParagraph:
		return "Paragraph"
	case ElementTypeRun:
		return "Run"
	case ElementTypeText:
		return "Text"
	case ElementTypeTab:
		return "Tab"
	case ElementTypeBreak:
		return "Break"
	case ElementTypeHyperlink:
		return "Hyperlink"
	case ElementTypeBookmark:
		return "Bookmark"
	case ElementTypeTable:
		return "Table"
	case ElementTypeTableRow:
		return "TableRow"
	case ElementTypeTableCell:
		return "TableCell"
	case ElementTypeUnmergedTableCell:
		return "UnmergedTableCell"
	default:
		return "Unknown"
	}
}

// Element is the interface for all document elements
type Element interface {
	Type() ElementType
}

// Paragraph represents a paragraph of runs
type Paragraph struct {
	Children  []Element
	StyleID   string
	StyleName string
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }

// Run represents a span of text sharing formatting
type Run struct {
	Children      []Element
	StyleID       string
	StyleName     string
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
}

func (r *Run) Type() ElementType { return ElementTypeRun }

// Text is literal text content
type Text struct {
	Value string
}

func (t *Text) Type() ElementType { return ElementTypeText }

// Tab is a tab character
type Tab struct{}

func (t *Tab) Type() ElementType { return ElementTypeTab }

// BreakType identifies the kind of break
type BreakType string

const (
	BreakLine   BreakType = "line"
	BreakPage   BreakType = "page"
	BreakColumn BreakType = "column"
)

// Break is a line, page or column break
type Break struct {
	BreakType BreakType
}

func (b *Break) Type() ElementType { return ElementTypeBreak }

// Hyperlink wraps runs that link to an external target or an internal anchor
type Hyperlink struct {
	Children []Element
	Href     string
	Anchor   string
}

func (h *Hyperlink) Type() ElementType { return ElementTypeHyperlink }

// Bookmark marks a named location in the document
type Bookmark struct {
	Name string
}

func (b *Bookmark) Type() ElementType { return ElementTypeBookmark }

// Document is the root element of a read document body
type Document struct {
	Children []Element
}

func (d *Document) Type() ElementType { return ElementTypeDocument }

// Constructors. They perform no validation.

// NewParagraph creates a paragraph.
func NewParagraph(children []Element, style Style) *Paragraph {
	return &Paragraph{Children: children, StyleID: style.ID, StyleName: style.Name}
}

// NewText creates a text element.
func NewText(value string) *Text {
	return &Text{Value: value}
}

// NewDocument creates a document.
func NewDocument(children []Element) *Document {
	return &Document{Children: children}
}

// Style is a resolved style identity. Empty fields mean absent.
type Style struct {
	ID   string
	Name string
}
