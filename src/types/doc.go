// Package types contains the structured representation of a type string and
// the printer that turns it back into its canonical text. A Type is a small
// tree: simple names (primitives and user defined types) are leaves, while
// array, matrix and map containers hold their element, or key and value, types.
// Types are never mutated once they are constructed so they can be freely
// shared between caches, passes and goroutines.
package types //nolint:revive
