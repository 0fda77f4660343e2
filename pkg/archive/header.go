// Package archive implements decoding of RDFZ game-data archives.
//
// An RDFZ archive is a single file holding a magic-prefixed header, a
// zlib-compressed metadata block supplying name dictionaries, a flat entry
// table, and the entry payload blocks addressed by absolute file offsets.
package archive

import "fmt"

// Magic bytes identifying an RDFZ archive.
var Magic = [4]byte{'R', 'D', 'F', 'Z'}

// Header is the fixed archive preamble.
type Header struct {
	Magic [4]byte
	Label string // Length-prefixed string following the magic; purpose unknown
}

// Validate checks the header for validity.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: expected %q, got %q", ErrBadMagic, Magic, h.Magic)
	}
	return nil
}
