package archive

import (
	"errors"
	"fmt"
)

// ErrBadMagic is returned when the input does not start with the RDFZ
// magic constant.
var ErrBadMagic = errors.New("bad archive magic")

// ErrDecompress is returned when a compressed stream is structurally
// invalid and cannot be decoded at all.
var ErrDecompress = errors.New("invalid compressed stream")

// EntryError reports a problem confined to a single entry. Callers skip
// the offending entry and keep processing the rest of the archive.
type EntryError struct {
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
