// Package results threads three independent outputs through a recursive
// document read: the elements produced, side-channel "extra" elements that
// must surface at an ancestor, and non-fatal diagnostics.
//
// A Result is an immutable value. Combinators never modify their inputs and
// always return freshly allocated slices, so results can be shared freely:
//
//	rows := reader.ReadAll(table.Children)
//	merged := results.FlatMap(rows, docx.CalculateRowSpans)
//	// merged.Messages holds the read warnings followed by the merge warnings
//
// None of the combinators can fail. Malformed input is reported through
// Messages, never as an error return.
package results

import "github.com/tsawler/docxtable/model"

// Result is the outcome of reading one or more XML nodes.
type Result[T any] struct {
	Elements []T
	Extra    []model.Element
	Messages []Diagnostic
}

// Success returns a result holding elements and nothing else.
func Success[T any](elements ...T) Result[T] {
	return Result[T]{Elements: join(elements)}
}

// Empty returns the identity result.
func Empty[T any]() Result[T] {
	return Result[T]{}
}

// WithMessages returns a result holding elements and messages.
func WithMessages[T any](elements []T, messages ...Diagnostic) Result[T] {
	return Result[T]{
		Elements: join(elements),
		Messages: join(messages),
	}
}

// Concat combines results channel by channel, preserving input order.
func Concat[T any](rs ...Result[T]) Result[T] {
	var out Result[T]
	for _, r := range rs {
		out.Elements = append(out.Elements, r.Elements...)
		out.Extra = append(out.Extra, r.Extra...)
		out.Messages = append(out.Messages, r.Messages...)
	}
	return out
}

// Map applies f to the whole element slice. Extra and messages pass through.
func Map[T, U any](r Result[T], f func([]T) []U) Result[U] {
	return Result[U]{
		Elements: join(f(r.Elements)),
		Extra:    join(r.Extra),
		Messages: join(r.Messages),
	}
}

// MapOne is Map for functions that collapse the elements into a single value.
func MapOne[T, U any](r Result[T], f func([]T) U) Result[U] {
	return Result[U]{
		Elements: []U{f(r.Elements)},
		Extra:    join(r.Extra),
		Messages: join(r.Messages),
	}
}

// FlatMap applies f to the elements and keeps the elements of the returned
// result. Extra and messages from r come first, followed by those from f.
func FlatMap[T, U any](r Result[T], f func([]T) Result[U]) Result[U] {
	next := f(r.Elements)
	return Result[U]{
		Elements: join(next.Elements),
		Extra:    join(r.Extra, next.Extra),
		Messages: join(r.Messages, next.Messages),
	}
}

// Map2 combines two independent results into a single-element result.
func Map2[A, B, V any](a Result[A], b Result[B], f func([]A, []B) V) Result[V] {
	return Result[V]{
		Elements: []V{f(a.Elements, b.Elements)},
		Extra:    join(a.Extra, b.Extra),
		Messages: join(a.Messages, b.Messages),
	}
}

// ToExtra moves the elements of r to the end of its extra channel.
func ToExtra(r Result[model.Element]) Result[model.Element] {
	return Result[model.Element]{
		Extra:    join(r.Extra, r.Elements),
		Messages: join(r.Messages),
	}
}

// AppendExtra moves the extra channel of r to the end of its elements.
func AppendExtra(r Result[model.Element]) Result[model.Element] {
	return Result[model.Element]{
		Elements: join(r.Elements, r.Extra),
		Messages: join(r.Messages),
	}
}

// join concatenates slices into a new slice, or nil when they are all empty.
func join[T any](slices ...[]T) []T {
	n := 0
	for _, s := range slices {
		n += len(s)
	}
	if n == 0 {
		return nil
	}
	out := make([]T, 0, n)
	for _, s := range slices {
		out = append(out, s...)
	}
	return out
}
