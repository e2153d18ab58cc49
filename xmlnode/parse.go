package xmlnode

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoRoot is returned when the input contains no element.
var ErrNoRoot = errors.New("xml document has no root element")

// Namespace URIs and the prefixes element and attribute names are
// normalized to.
var namespacePrefixes = map[string]string{
	// Transitional
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":           "w",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships":    "r",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
	"http://schemas.openxmlformats.org/package/2006/content-types":           "content-types",
	"http://schemas.openxmlformats.org/package/2006/relationships":           "relationships",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":            "mc",
	"http://schemas.microsoft.com/office/word/2010/wordml":                   "w14",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing":    "wp14",
	"http://schemas.microsoft.com/office/word/2012/wordml":                   "w15",
	"urn:schemas-microsoft-com:vml":                                          "v",
	"urn:schemas-microsoft-com:office:office":                                "o",
	"http://www.w3.org/XML/1998/namespace":                                   "xml",
	// Strict
	"http://purl.oclc.org/ooxml/wordprocessingml/main":           "w",
	"http://purl.oclc.org/ooxml/officeDocument/relationships":    "r",
	"http://purl.oclc.org/ooxml/drawingml/wordprocessingDrawing": "wp",
	"http://purl.oclc.org/ooxml/drawingml/main":                  "a",
	"http://purl.oclc.org/ooxml/drawingml/picture":               "pic",
}

// ParseString parses an XML document held in a string.
func ParseString(s string) (*Element, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads an XML document and returns its root element.
// Input starting with a byte order mark is decoded as the Unicode encoding
// the mark names; otherwise the encoding in the XML declaration is used.
func Parse(r io.Reader) (*Element, error) {
	dec := newDecoder(r)

	var (
		root  *Element
		stack []*Element
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{
				Name:       qualifiedName(t.Name),
				Attributes: attributes(t.Attr),
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, Text{Value: string(t)})
			}
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

func newDecoder(r io.Reader) *xml.Decoder {
	br := bufio.NewReader(r)
	head, _ := br.Peek(3)
	if !hasByteOrderMark(head) {
		dec := xml.NewDecoder(br)
		dec.CharsetReader = charset.NewReaderLabel
		return dec
	}

	// The BOM decides; the declared encoding no longer describes the bytes.
	dec := xml.NewDecoder(transform.NewReader(br, unicode.BOMOverride(transform.Nop)))
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	return dec
}

func hasByteOrderMark(head []byte) bool {
	return bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(head, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(head, []byte{0xFF, 0xFE})
}

func attributes(attrs []xml.Attr) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out[qualifiedName(a.Name)] = a.Value
	}
	return out
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if prefix, ok := namespacePrefixes[name.Space]; ok {
		return prefix + ":" + name.Local
	}
	// encoding/xml leaves undeclared prefixes in Space.
	if !strings.ContainsAny(name.Space, ":/") {
		return name.Space + ":" + name.Local
	}
	return "{" + name.Space + "}" + name.Local
}
