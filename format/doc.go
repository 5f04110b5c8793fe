// Package format enumerates the serialization formats understood by
// go-sdict and maps file extensions to them.
//
// # Usage
//
//	f := format.ForPath("config.json")
//	if f.IsJSON() { ... }
//
// # Related Packages
//
//   - github.com/sdict-format/go-sdict/parse - Parse text to a Dict
//   - github.com/sdict-format/go-sdict/encode - Encode a Dict to text
package format
