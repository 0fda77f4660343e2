package archive

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/goopsie/rdfzFileTools/pkg/binread"
)

// Reader decodes one RDFZ archive. The header, metadata block, and entry
// table are parsed up front; entry payloads are read on demand.
type Reader struct {
	src     io.ReadSeeker
	closer  io.Closer // Set when Open owns the underlying file
	header  Header
	meta    *Metadata
	entries []Entry
}

// Payload holds the decoded bytes of one entry.
type Payload struct {
	Data         []byte
	Compressed   bool   // True when the block carried a zlib stream
	DeclaredSize uint32 // Uncompressed size declared ahead of the stream
}

// SizeMismatch reports whether a compressed block decoded to a different
// length than it declared. Diagnostic only; Data is still usable.
func (p *Payload) SizeMismatch() bool {
	return p.Compressed && uint32(len(p.Data)) != p.DeclaredSize
}

// Open opens the archive at path and parses its header, metadata, and
// entry table.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader creates a Reader from the given source. It reads and validates
// the header, decodes the metadata block, and parses the entry table,
// leaving payload blocks untouched until ReadEntry.
func NewReader(src io.ReadSeeker) (*Reader, error) {
	r := &Reader{src: src}
	br := binread.NewReader(src)

	if _, err := io.ReadFull(src, r.header.Magic[:]); err != nil {
		return nil, fmt.Errorf("read magic: %w", binread.ErrTruncated)
	}
	if err := r.header.Validate(); err != nil {
		return nil, err
	}

	var err error
	if r.header.Label, err = br.ReadString(); err != nil {
		return nil, fmt.Errorf("read label: %w", err)
	}

	metaSize, err := br.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("read metadata size: %w", err)
	}
	metaComp := make([]byte, metaSize)
	if _, err := io.ReadFull(src, metaComp); err != nil {
		return nil, fmt.Errorf("read metadata block (%d bytes): %w", metaSize, binread.ErrTruncated)
	}
	if r.meta, err = ParseMetadata(metaComp); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}

	if r.entries, err = ParseEntryTable(src); err != nil {
		return nil, fmt.Errorf("parse entry table: %w", err)
	}

	return r, nil
}

// Close closes the underlying file if the Reader owns one.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Header returns the archive header.
func (r *Reader) Header() Header {
	return r.header
}

// Metadata returns the parsed metadata block.
func (r *Reader) Metadata() *Metadata {
	return r.meta
}

// Entries returns the parsed entry table in archive order.
func (r *Reader) Entries() []Entry {
	return r.entries
}

// EntryName resolves an entry's group and extension names through the
// dictionaries. Fails with *EntryError when either index is out of range.
func (r *Reader) EntryName(i int) (group, ext string, err error) {
	e := r.entries[i]
	if int(e.ExtIndex) >= len(r.meta.Extensions) || int(e.GroupIndex) >= len(r.meta.Groups) {
		return "", "", &EntryError{
			Index: i,
			Err:   fmt.Errorf("bad indices ext=%d group=%d", e.ExtIndex, e.GroupIndex),
		}
	}
	return r.meta.Groups[e.GroupIndex], r.meta.Extensions[e.ExtIndex], nil
}

// ReadEntry extracts and decodes the payload block of entry i.
//
// Conditions that affect only this entry are reported as *EntryError:
// dictionary indices out of range, a short read of the block, a block too
// small to hold its compression header, or a zlib stream that cannot be
// decoded. Callers skip such entries and continue. A declared-size
// mismatch on a compressed block is not an error; it is surfaced through
// Payload.SizeMismatch.
func (r *Reader) ReadEntry(i int) (*Payload, error) {
	if i < 0 || i >= len(r.entries) {
		return nil, fmt.Errorf("entry index %d out of range [0,%d)", i, len(r.entries))
	}
	e := r.entries[i]

	if _, _, err := r.EntryName(i); err != nil {
		return nil, err
	}

	if _, err := r.src.Seek(int64(e.Offset), io.SeekStart); err != nil {
		return nil, &EntryError{Index: i, Err: fmt.Errorf("seek to offset %d: %w", e.Offset, err)}
	}
	block := make([]byte, e.Size)
	if _, err := io.ReadFull(r.src, block); err != nil {
		return nil, &EntryError{Index: i, Err: fmt.Errorf("short read at offset %d: %w", e.Offset, binread.ErrTruncated)}
	}

	if e.MethodID != MethodZlib {
		return &Payload{Data: block}, nil
	}

	if len(block) < 4 {
		return nil, &EntryError{Index: i, Err: fmt.Errorf("block too small for compression header (%d bytes)", len(block))}
	}
	declared := binary.LittleEndian.Uint32(block[:4])
	data, err := inflate(block[4:])
	if err != nil {
		return nil, &EntryError{Index: i, Err: err}
	}

	return &Payload{Data: data, Compressed: true, DeclaredSize: declared}, nil
}
