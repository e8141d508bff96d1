// Package jsontree models a JSON document as a tagged variant tree.
//
// Objects keep their members in document order so a document read, rewritten and
// written back keeps the key order it was authored with. Numbers are kept as their
// literal text.
//
// # Operations
//
//   - Parse: decode bytes into a *Value tree (strict, single document).
//   - Marshal / MarshalIndent: encode a tree back to JSON.
//   - ReplaceStrings: return a copy with every string value rewritten.
//   - Equal: structural equality (object member order is ignored).
//
// # Usage
//
//	v, err := jsontree.Parse(raw)
//	out, err := jsontree.MarshalIndent(jsontree.ReplaceStrings(v, "alpha", "beta"))
package jsontree
