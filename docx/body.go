package docx

import (
	"github.com/tsawler/docxtable/model"
	"github.com/tsawler/docxtable/results"
	"github.com/tsawler/docxtable/xmlnode"
)

// ignoredElements carry formatting or markers that produce no content.
var ignoredElements = map[string]bool{
	"w:pPr":                   true,
	"w:rPr":                   true,
	"w:tblPr":                 true,
	"w:tblGrid":               true,
	"w:tblPrEx":               true,
	"w:trPr":                  true,
	"w:tcPr":                  true,
	"w:sectPr":                true,
	"w:bookmarkEnd":           true,
	"w:proofErr":              true,
	"w:lastRenderedPageBreak": true,
	"w:commentRangeStart":     true,
	"w:commentRangeEnd":       true,
	"w:del":                   true,
	"w:permStart":             true,
	"w:permEnd":               true,
	"w:noProof":               true,
}

// BodyReader turns WordprocessingML body elements into document elements.
// It holds no mutable state and may be used from several goroutines.
type BodyReader struct {
	styles        *Styles
	relationships Relationships
}

// NewBodyReader creates a reader. Both arguments may be nil.
func NewBodyReader(styles *Styles, relationships Relationships) *BodyReader {
	return &BodyReader{
		styles:        styles,
		relationships: relationships,
	}
}

// ReadAll reads the element nodes in nodes, in order, and combines their
// results. Text nodes are dropped.
func (r *BodyReader) ReadAll(nodes []xmlnode.Node) results.Result[model.Element] {
	rs := make([]results.Result[model.Element], 0, len(nodes))
	for _, node := range nodes {
		if el, ok := node.(*xmlnode.Element); ok {
			rs = append(rs, r.ReadNode(el))
		}
	}
	return results.Concat(rs...)
}

// readBlocks reads block-level content. Every child is its own scope, so
// extra elements hoisted out of a child land directly after it.
func (r *BodyReader) readBlocks(nodes []xmlnode.Node) results.Result[model.Element] {
	rs := make([]results.Result[model.Element], 0, len(nodes))
	for _, node := range nodes {
		if el, ok := node.(*xmlnode.Element); ok {
			rs = append(rs, results.AppendExtra(r.ReadNode(el)))
		}
	}
	return results.Concat(rs...)
}

// ReadNode reads a single element. Unrecognised elements produce a warning
// and no content.
func (r *BodyReader) ReadNode(el *xmlnode.Element) results.Result[model.Element] {
	switch el.Name {
	case "w:p":
		return r.readParagraph(el)
	case "w:r":
		return r.readRun(el)
	case "w:t":
		return results.Success[model.Element](model.NewText(el.TextContent()))
	case "w:tab":
		return results.Success[model.Element](&model.Tab{})
	case "w:br":
		return results.Success[model.Element](readBreak(el))
	case "w:cr":
		return results.Success[model.Element](&model.Break{BreakType: model.BreakLine})
	case "w:hyperlink":
		return r.readHyperlink(el)
	case "w:bookmarkStart":
		return readBookmark(el)
	case "w:tbl":
		return r.ReadTable(el)
	case "w:tr":
		return r.readTableRow(el)
	case "w:tc":
		return r.readTableCell(el)
	case "w:ins", "w:smartTag", "w:customXml", "w:fldSimple":
		return r.ReadAll(el.Children)
	case "w:sdt":
		return r.ReadAll(el.FindChild("w:sdtContent").Children)
	case "mc:AlternateContent":
		return r.ReadAll(el.FindChild("mc:Fallback").Children)
	}

	if ignoredElements[el.Name] {
		return results.Empty[model.Element]()
	}
	return results.WithMessages[model.Element](nil,
		results.Warningf("An unrecognised element was ignored: %s", el.Name))
}

// ReadDocument reads the body of a w:document root.
func (r *BodyReader) ReadDocument(root *xmlnode.Element) (*model.Document, []results.Diagnostic) {
	body := root.FindChild("w:body")
	if root == nil || root.Name != "w:document" || body == nil {
		return model.NewDocument(nil), []results.Diagnostic{
			results.NewError("document part has no w:document/w:body element"),
		}
	}

	res := results.MapOne(r.readBlocks(body.Children), func(children []model.Element) *model.Document {
		return model.NewDocument(children)
	})
	return res.Elements[0], res.Messages
}

func (r *BodyReader) readParagraph(el *xmlnode.Element) results.Result[model.Element] {
	styleRef := el.FindChild("w:pPr").FindChild("w:pStyle").Attr("w:val")
	return results.Map2(
		r.styles.ResolveParagraphStyle(styleRef),
		results.AppendExtra(r.ReadAll(el.Children)),
		func(style []model.Style, children []model.Element) model.Element {
			return model.NewParagraph(children, firstStyle(style))
		},
	)
}

func (r *BodyReader) readRun(el *xmlnode.Element) results.Result[model.Element] {
	props := el.FindChild("w:rPr")
	return results.Map2(
		r.styles.ResolveCharacterStyle(props.FindChild("w:rStyle").Attr("w:val")),
		r.ReadAll(el.Children),
		func(style []model.Style, children []model.Element) model.Element {
			s := firstStyle(style)
			return &model.Run{
				Children:      children,
				StyleID:       s.ID,
				StyleName:     s.Name,
				Bold:          readBool(props.FindChild("w:b")),
				Italic:        readBool(props.FindChild("w:i")),
				Underline:     readUnderline(props.FindChild("w:u")),
				Strikethrough: readBool(props.FindChild("w:strike")),
			}
		},
	)
}

func (r *BodyReader) readHyperlink(el *xmlnode.Element) results.Result[model.Element] {
	href := ""
	if id := el.Attr("r:id"); id != "" {
		href, _ = r.relationships.Target(id)
	}
	anchor := el.Attr("w:anchor")
	return results.MapOne(r.ReadAll(el.Children), func(children []model.Element) model.Element {
		return &model.Hyperlink{Children: children, Href: href, Anchor: anchor}
	})
}

func readBookmark(el *xmlnode.Element) results.Result[model.Element] {
	name := el.Attr("w:name")
	if name == "_GoBack" {
		return results.Empty[model.Element]()
	}
	return results.ToExtra(results.Success[model.Element](&model.Bookmark{Name: name}))
}

func readBreak(el *xmlnode.Element) *model.Break {
	switch el.Attr("w:type") {
	case "page":
		return &model.Break{BreakType: model.BreakPage}
	case "column":
		return &model.Break{BreakType: model.BreakColumn}
	default:
		return &model.Break{BreakType: model.BreakLine}
	}
}

// readBool reads an on/off property such as w:b. A present element with no
// value is on.
func readBool(el *xmlnode.Element) bool {
	if el == nil {
		return false
	}
	switch el.Attr("w:val") {
	case "false", "0", "off":
		return false
	default:
		return true
	}
}

func readUnderline(el *xmlnode.Element) bool {
	if el == nil {
		return false
	}
	switch el.Attr("w:val") {
	case "", "none", "false", "0":
		return false
	default:
		return true
	}
}
