// Package xmlnode provides a small, immutable XML tree for reading
// Office Open XML parts.
//
// Element names are normalized to the conventional prefixes of the
// namespaces they belong to, so "w:tbl" matches a table no matter which
// prefix the producing application declared.
package xmlnode

import "strings"

// Kind discriminates Node variants.
type Kind int

const (
	KindElement Kind = iota
	KindText
)

// Node is an element or a run of character data.
type Node interface {
	Kind() Kind
}

// Element is an XML element.
type Element struct {
	Name       string
	Attributes map[string]string
	Children   []Node
}

func (e *Element) Kind() Kind { return KindElement }

// Text is character data.
type Text struct {
	Value string
}

func (t Text) Kind() Kind { return KindText }

// NewElement creates an element. A nil attribute map is allowed.
func NewElement(name string, attributes map[string]string, children ...Node) *Element {
	return &Element{Name: name, Attributes: attributes, Children: children}
}

// Attr returns the value of the named attribute, or "" if absent.
func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	return e.Attributes[name]
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.Attributes[name]
	return ok
}

// FindChild returns the first child element with the given name, or nil.
// It is safe to call on a nil element, which lets lookups be chained:
//
//	style := tbl.FindChild("w:tblPr").FindChild("w:tblStyle").Attr("w:val")
func (e *Element) FindChild(name string) *Element {
	if e == nil {
		return nil
	}
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok && el.Name == name {
			return el
		}
	}
	return nil
}

// FindChildren returns all child elements with the given name.
func (e *Element) FindChildren(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok && el.Name == name {
			out = append(out, el)
		}
	}
	return out
}

// ChildElements returns the element children, skipping text.
func (e *Element) ChildElements() []*Element {
	if e == nil {
		return nil
	}
	out := make([]*Element, 0, len(e.Children))
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// TextContent returns the concatenated character data below e.
func (e *Element) TextContent() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	writeTextContent(&sb, e.Children)
	return sb.String()
}

func writeTextContent(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch v := n.(type) {
		case Text:
			sb.WriteString(v.Value)
		case *Element:
			writeTextContent(sb, v.Children)
		}
	}
}
