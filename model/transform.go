package model

// Children returns the child elements of e, or nil for leaf and nil
// elements.
func Children(e Element) []Element {
	switch v := e.(type) {
	case *Document:
		if v != nil {
			return v.Children
		}
	case *Paragraph:
		if v != nil {
			return v.Children
		}
	case *Run:
		if v != nil {
			return v.Children
		}
	case *Hyperlink:
		if v != nil {
			return v.Children
		}
	case *Table:
		if v != nil {
			return v.Children
		}
	case *TableRow:
		if v != nil {
			return v.Children
		}
	case *TableCell:
		if v != nil {
			return v.Children
		}
	case *UnmergedTableCell:
		if v != nil {
			return v.Children
		}
	}
	return nil
}

// withChildren returns a shallow copy of e holding children.
// Leaf elements are returned unchanged.
func withChildren(e Element, children []Element) Element {
	switch v := e.(type) {
	case *Document:
		c := *v
		c.Children = children
		return &c
	case *Paragraph:
		c := *v
		c.Children = children
		return &c
	case *Run:
		c := *v
		c.Children = children
		return &c
	case *Hyperlink:
		c := *v
		c.Children = children
		return &c
	case *Table:
		c := *v
		c.Children = children
		return &c
	case *TableRow:
		c := *v
		c.Children = children
		return &c
	case *TableCell:
		c := *v
		c.Children = children
		return &c
	case *UnmergedTableCell:
		c := *v
		c.Children = children
		return &c
	default:
		return e
	}
}

// Transform rebuilds e bottom-up, applying f to every element after its
// children have been transformed. The input tree is not modified.
func Transform(e Element, f func(Element) Element) Element {
	children := Children(e)
	if children != nil {
		transformed := make([]Element, len(children))
		for i, child := range children {
			transformed[i] = Transform(child, f)
		}
		e = withChildren(e, transformed)
	}
	return f(e)
}

// TransformOfType is Transform restricted to elements of type T; all other
// elements are rebuilt with their transformed children but otherwise kept.
func TransformOfType[T Element](e Element, f func(T) Element) Element {
	return Transform(e, func(el Element) Element {
		if v, ok := el.(T); ok {
			return f(v)
		}
		return el
	})
}

// Descendants returns every element below e in document order.
func Descendants(e Element) []Element {
	var out []Element
	for _, child := range Children(e) {
		out = append(out, child)
		out = append(out, Descendants(child)...)
	}
	return out
}
