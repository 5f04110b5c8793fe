// Package parse deserializes dictionary text into the document model.
// The native format goes through the token pipeline; JSON and XML
// sources map onto the same model so that all downstream operations
// work regardless of where a dictionary came from.
package parse

import (
	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/format"
)

// Parser deserializes text into a fresh dictionary and merges the
// result into target. The returned dictionary is the parsed content
// alone, before the merge; callers that only care about the combined
// document use target.
type Parser interface {
	Parse(target *dict.Dict, text string) (*dict.Dict, error)
}

type config struct {
	comments bool
}

// Option configures a parser.
type Option func(*config)

// WithComments controls whether comments are carried into the parsed
// dictionary. Defaults to true.
func WithComments(comments bool) Option {
	return func(c *config) {
		c.comments = comments
	}
}

func newConfig(opts []Option) *config {
	c := &config{comments: true}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ForFormat returns the parser for f.
func ForFormat(f format.Format, opts ...Option) Parser {
	c := newConfig(opts)
	switch {
	case f.IsJSON():
		return &JSONParser{config: c}
	case f.IsXML():
		return &XMLParser{config: c}
	default:
		return &NativeParser{config: c}
	}
}

// ForPath returns the parser matching the file extension of path.
func ForPath(path string, opts ...Option) Parser {
	return ForFormat(format.ForPath(path), opts...)
}
