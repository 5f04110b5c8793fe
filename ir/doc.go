// Package ir defines the in-memory representation of a parsed
// dictionary: an ordered tree of maps, sequences and scalars, plus
// global-key addressing over that tree.
package ir
