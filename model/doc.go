// Package model provides the document element tree produced by reading
// WordprocessingML.
//
// Every node implements [Element], whose Type method returns an
// [ElementType] discriminant. Code that must treat rows and cells
// specially switches on the concrete type:
//
//	switch v := el.(type) {
//	case *model.TableRow:
//	case *model.UnmergedTableCell:
//	}
//
// # Tables
//
// Tables pass through two cell representations:
//
//   - [UnmergedTableCell] - a cell as written in the markup, with a VMerge
//     flag marking it as the continuation of the cell above
//   - [TableCell] - the normalized cell with RowSpan and ColSpan
//
// A [Table] handed to callers only ever contains [TableRow] values holding
// [TableCell] values.
//
// # Transforms
//
// [Transform] and [TransformOfType] rebuild a tree bottom-up without
// modifying the input, which keeps every element safe to share between
// goroutines once built.
package model
