package archive

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/goopsie/rdfzFileTools/pkg/binread"
)

// EntrySize is the fixed on-disk size of an entry record.
const EntrySize = 20

// Compression method identifiers. Any value other than MethodZlib means
// the payload block is stored verbatim.
const (
	MethodStored uint32 = 0
	MethodZlib   uint32 = 1
)

// Entry describes one packed file: where its block lives in the archive,
// how large the block is, and which dictionary names it maps to.
type Entry struct {
	Offset     uint32 // Absolute byte offset of the payload block
	Size       uint32 // Stored block size in bytes
	ExtIndex   uint32 // Index into Metadata.Extensions
	GroupIndex uint32 // Index into Metadata.Groups
	MethodID   uint32 // Compression method for the block
}

// ParseEntryTable reads a u32 entry count followed by that many fixed
// 20-byte records. Field values are not validated here; index and range
// checks happen at extraction time, where a bad entry can be skipped
// without affecting the rest of the table.
func ParseEntryTable(src io.Reader) ([]Entry, error) {
	count, err := binread.NewReader(src).ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("entry count: %w", err)
	}

	entries := make([]Entry, count)
	if err := binary.Read(src, binary.LittleEndian, &entries); err != nil {
		return nil, fmt.Errorf("entry table (%d records): %w", count, binread.ErrTruncated)
	}
	return entries, nil
}
