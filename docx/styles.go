package docx

import (
	"encoding/xml"
	"fmt"

	"github.com/tsawler/docxtable/model"
	"github.com/tsawler/docxtable/results"
)

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	Type    string       `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string       `xml:"styleId,attr"`
	Name    styleNameXML `xml:"name"`
}

// styleNameXML represents a style name.
type styleNameXML struct {
	Val string `xml:"val,attr"`
}

// Styles maps style IDs to their display names, per style type.
// A Styles value is read-only once built and may be shared between
// goroutines. A nil *Styles behaves like an empty one.
type Styles struct {
	paragraph map[string]model.Style
	character map[string]model.Style
	table     map[string]model.Style
	numbering map[string]model.Style
}

// NewStyles creates an empty style set.
func NewStyles() *Styles {
	return &Styles{
		paragraph: make(map[string]model.Style),
		character: make(map[string]model.Style),
		table:     make(map[string]model.Style),
		numbering: make(map[string]model.Style),
	}
}

// ParseStyles reads the contents of a styles part.
func ParseStyles(data []byte) (*Styles, error) {
	var doc stylesXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling styles.xml: %w", err)
	}

	s := NewStyles()
	for _, def := range doc.Styles {
		s.Add(def.Type, def.StyleID, def.Name.Val)
	}
	return s, nil
}

// Add registers a style. Unknown types are ignored; the first definition of
// an ID wins.
func (s *Styles) Add(styleType, id, name string) {
	m := s.byType(styleType)
	if m == nil {
		return
	}
	if _, exists := m[id]; !exists {
		m[id] = model.Style{ID: id, Name: name}
	}
}

func (s *Styles) byType(styleType string) map[string]model.Style {
	if s == nil {
		return nil
	}
	switch styleType {
	case "paragraph":
		return s.paragraph
	case "character":
		return s.character
	case "table":
		return s.table
	case "numbering":
		return s.numbering
	default:
		return nil
	}
}

// FindParagraphStyle looks up a paragraph style by ID.
func (s *Styles) FindParagraphStyle(id string) (model.Style, bool) {
	return s.find("paragraph", id)
}

// FindCharacterStyle looks up a character (run) style by ID.
func (s *Styles) FindCharacterStyle(id string) (model.Style, bool) {
	return s.find("character", id)
}

// FindTableStyle looks up a table style by ID.
func (s *Styles) FindTableStyle(id string) (model.Style, bool) {
	return s.find("table", id)
}

// FindNumberingStyle looks up a numbering style by ID.
func (s *Styles) FindNumberingStyle(id string) (model.Style, bool) {
	return s.find("numbering", id)
}

func (s *Styles) find(styleType, id string) (model.Style, bool) {
	style, ok := s.byType(styleType)[id]
	return style, ok
}

// ResolveTableStyle resolves a w:tblStyle reference. An empty reference
// resolves to the zero Style. An undefined reference keeps its ID, has no
// name, and carries a warning.
func (s *Styles) ResolveTableStyle(ref string) results.Result[model.Style] {
	return s.resolve("table", "Table", ref)
}

// ResolveParagraphStyle resolves a w:pStyle reference.
func (s *Styles) ResolveParagraphStyle(ref string) results.Result[model.Style] {
	return s.resolve("paragraph", "Paragraph", ref)
}

// ResolveCharacterStyle resolves a w:rStyle reference.
func (s *Styles) ResolveCharacterStyle(ref string) results.Result[model.Style] {
	return s.resolve("character", "Run", ref)
}

func (s *Styles) resolve(styleType, label, ref string) results.Result[model.Style] {
	if ref == "" {
		return results.Success(model.Style{})
	}
	if style, ok := s.find(styleType, ref); ok {
		return results.Success(style)
	}
	return results.WithMessages(
		[]model.Style{{ID: ref}},
		results.Warningf("%s style with ID %s was referenced but not defined in the document", label, ref),
	)
}

// firstStyle returns the single style carried by a resolved style result.
func firstStyle(styles []model.Style) model.Style {
	if len(styles) == 0 {
		return model.Style{}
	}
	return styles[0]
}
