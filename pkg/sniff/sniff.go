// Package sniff recognizes standard media payloads embedded inside the
// category-specific wrapper blobs found in RDFZ archives.
//
// Recognition is best-effort and purely additive: a payload with no known
// signature is a silent no-op, never an error.
package sniff

import "bytes"

// Signature pairs a file-format magic with the extension used when its
// payload is recovered.
type Signature struct {
	Magic []byte
	Ext   string
}

// Signatures lists the formats recognized by the embedded-payload scan.
// List order resolves ties when two magics match at the same offset.
var Signatures = []Signature{
	{[]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, "png"},
	{[]byte{0xff, 0xd8, 0xff}, "jpg"},
	{[]byte("OggS"), "ogg"},
	{[]byte("RIFF"), "wav"},
	{[]byte("DDS "), "dds"},
	{[]byte{0x1a, 0x45, 0xdf, 0xa3}, "webm"}, // Matroska/WebM EBML header
}

var (
	jpegSOI   = []byte{0xff, 0xd8, 0xff}
	oggMagic  = []byte("OggS")
	riffMagic = []byte("RIFF")
	ddsMagic  = []byte("DDS ")
)

// DetectEmbedded scans data for the earliest occurrence of any known
// signature and returns the matched extension and byte offset. A single
// forward scan checks every candidate at each position, so the earliest
// offset wins regardless of which format it belongs to.
func DetectEmbedded(data []byte) (ext string, offset int, ok bool) {
	for i := range data {
		for _, sig := range Signatures {
			if bytes.HasPrefix(data[i:], sig.Magic) {
				return sig.Ext, i, true
			}
		}
	}
	return "", 0, false
}

// Convert applies the recovery rule for the given category to a decoded
// payload. When a standard format is recognized it returns the recovered
// file name (the entry's base name plus the format's own extension) and
// the bytes to write. ok is false when nothing recognizable was found.
func Convert(category, name string, data []byte) (fileName string, payload []byte, ok bool) {
	switch category {
	case "sound":
		if bytes.HasPrefix(data, oggMagic) {
			return name + ".ogg", data, true
		}
		if bytes.HasPrefix(data, riffMagic) {
			return name + ".wav", data, true
		}
	case "texture":
		if bytes.HasPrefix(data, ddsMagic) {
			return name + ".dds", data, true
		}
	case "jimg_texture":
		// A 4-byte wrapper header sits ahead of a bare JPEG stream.
		if len(data) > 6 && bytes.HasPrefix(data[4:], jpegSOI) {
			return name + ".jpg", data[4:], true
		}
	case "gscene":
		if ext, off, found := DetectEmbedded(data); found {
			return name + "." + ext, data[off:], true
		}
	}
	return "", nil, false
}
