// Package binread provides primitive decoders for the little-endian
// binary layouts used by RDFZ archives.
package binread

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTruncated is returned when the input ends before a complete value
// could be read.
var ErrTruncated = errors.New("truncated input")

// Reader decodes fixed-width integers and length-prefixed strings from a
// sequential byte stream. It never seeks; every read advances the cursor.
type Reader struct {
	r   io.Reader
	buf [4]byte // Reusable buffer for integer decoding
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadUint32 reads exactly 4 bytes as a little-endian unsigned integer.
func (r *Reader) ReadUint32() (uint32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:]); err != nil {
		return 0, fmt.Errorf("read u32: %w", ErrTruncated)
	}
	return binary.LittleEndian.Uint32(r.buf[:]), nil
}

// ReadString reads a u32 byte length followed by that many bytes of UTF-8
// text. A zero length yields an empty string without a further read.
// Invalid byte sequences are replaced rather than rejected; text fidelity
// is best-effort.
func (r *Reader) ReadString() (string, error) {
	length, err := r.ReadUint32()
	if err != nil {
		return "", fmt.Errorf("read string length: %w", err)
	}
	if length == 0 {
		return "", nil
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return "", fmt.Errorf("read string body (%d bytes): %w", length, ErrTruncated)
	}

	return strings.ToValidUTF8(string(data), "�"), nil
}
