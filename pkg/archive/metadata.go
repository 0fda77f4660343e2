package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/goopsie/rdfzFileTools/pkg/binread"
)

// Metadata is the archive's self-describing dictionary block.
//
// The on-disk layout is positional with no field tagging: fields must be
// decoded in exactly the order they are declared below. A reordered read
// fails silently and corrupts every downstream string.
type Metadata struct {
	Unk0       uint32 // Unknown - carried through unvalidated, never interpreted
	Unk1       uint32 // Unknown - carried through unvalidated, never interpreted
	MethodName string // Informational; decoding keys off per-entry method ids instead
	Extensions []string
	Groups     []string

	DeclaredSize uint32 // Uncompressed size recorded in the block header
	ActualSize   uint32 // Size actually produced by decompression
}

// SizeMismatch reports whether the decompressed block length differed from
// the declared size. This is a diagnostic condition, not an error: parsing
// proceeds on the actual bytes.
func (m *Metadata) SizeMismatch() bool {
	return m.ActualSize != m.DeclaredSize
}

// ParseMetadata decodes the compressed metadata block. The first 4 bytes
// are a little-endian u32 declared uncompressed size; the remainder is a
// zlib stream.
func ParseMetadata(comp []byte) (*Metadata, error) {
	if len(comp) < 4 {
		return nil, fmt.Errorf("metadata block too small (%d bytes): %w", len(comp), binread.ErrTruncated)
	}

	meta := &Metadata{
		DeclaredSize: binary.LittleEndian.Uint32(comp[:4]),
	}

	raw, err := inflate(comp[4:])
	if err != nil {
		return nil, fmt.Errorf("decompress metadata: %w", err)
	}
	meta.ActualSize = uint32(len(raw))

	r := binread.NewReader(bytes.NewReader(raw))
	if meta.Unk0, err = r.ReadUint32(); err != nil {
		return nil, fmt.Errorf("metadata unk0: %w", err)
	}
	if meta.Unk1, err = r.ReadUint32(); err != nil {
		return nil, fmt.Errorf("metadata unk1: %w", err)
	}
	if meta.MethodName, err = r.ReadString(); err != nil {
		return nil, fmt.Errorf("metadata method name: %w", err)
	}
	if meta.Extensions, err = readStringTable(r); err != nil {
		return nil, fmt.Errorf("extension table: %w", err)
	}
	if meta.Groups, err = readStringTable(r); err != nil {
		return nil, fmt.Errorf("group table: %w", err)
	}

	return meta, nil
}

// readStringTable reads a u32 count followed by that many length-prefixed
// strings.
func readStringTable(r *binread.Reader) ([]string, error) {
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	table := make([]string, count)
	for i := range table {
		if table[i], err = r.ReadString(); err != nil {
			return nil, fmt.Errorf("string %d of %d: %w", i, count, err)
		}
	}
	return table, nil
}

// inflate decodes a whole zlib stream. A stream that cannot be decoded at
// all is reported as ErrDecompress.
func inflate(comp []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(comp))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	return data, nil
}
