package sniff

import (
	"bytes"
	"testing"
)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic = []byte{0xff, 0xd8, 0xff}
)

func TestDetectEmbedded(t *testing.T) {
	t.Run("AtStart", func(t *testing.T) {
		ext, off, ok := DetectEmbedded(append(pngMagic, "body"...))
		if !ok || ext != "png" || off != 0 {
			t.Errorf("got %q/%d/%v", ext, off, ok)
		}
	})

	t.Run("MidBuffer", func(t *testing.T) {
		data := append([]byte{0xDE, 0xAD, 0xBE}, []byte("OggSxxxx")...)
		ext, off, ok := DetectEmbedded(data)
		if !ok || ext != "ogg" || off != 3 {
			t.Errorf("got %q/%d/%v", ext, off, ok)
		}
	})

	t.Run("EarliestOffsetWins", func(t *testing.T) {
		// A RIFF header ahead of a PNG header: offset decides, not list order.
		data := append([]byte("RIFFxxxx"), pngMagic...)
		ext, off, ok := DetectEmbedded(data)
		if !ok || ext != "wav" || off != 0 {
			t.Errorf("got %q/%d/%v", ext, off, ok)
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		if _, _, ok := DetectEmbedded([]byte("nothing to see here")); ok {
			t.Error("unexpected match")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if _, _, ok := DetectEmbedded(nil); ok {
			t.Error("unexpected match on empty input")
		}
	})
}

func TestConvert(t *testing.T) {
	t.Run("SoundOgg", func(t *testing.T) {
		data := []byte("OggS...stream")
		name, payload, ok := Convert("sound", "track", data)
		if !ok || name != "track.ogg" || !bytes.Equal(payload, data) {
			t.Errorf("got %q/%q/%v", name, payload, ok)
		}
	})

	t.Run("SoundRiff", func(t *testing.T) {
		data := []byte("RIFF....WAVE")
		name, payload, ok := Convert("sound", "hit", data)
		if !ok || name != "hit.wav" || !bytes.Equal(payload, data) {
			t.Errorf("got %q/%q/%v", name, payload, ok)
		}
	})

	t.Run("SoundUnrecognized", func(t *testing.T) {
		if _, _, ok := Convert("sound", "x", []byte("raw pcm maybe")); ok {
			t.Error("unexpected conversion")
		}
	})

	t.Run("TextureDDS", func(t *testing.T) {
		data := []byte("DDS |header|pixels")
		name, payload, ok := Convert("texture", "wall", data)
		if !ok || name != "wall.dds" || !bytes.Equal(payload, data) {
			t.Errorf("got %q/%q/%v", name, payload, ok)
		}
	})

	t.Run("TextureNoMagic", func(t *testing.T) {
		if _, _, ok := Convert("texture", "wall", []byte("raw bc data")); ok {
			t.Error("unexpected conversion")
		}
	})

	t.Run("JimgStripsWrapper", func(t *testing.T) {
		data := append([]byte{1, 2, 3, 4}, append(jpegMagic, "jfif"...)...)
		name, payload, ok := Convert("jimg_texture", "photo", data)
		if !ok || name != "photo.jpg" {
			t.Fatalf("got %q/%v", name, ok)
		}
		if !bytes.Equal(payload, append(jpegMagic, "jfif"...)) {
			t.Errorf("payload: got %v", payload)
		}
	})

	t.Run("JimgTooShort", func(t *testing.T) {
		// Exactly 6 bytes is below the minimum wrapper size.
		data := append([]byte{1, 2, 3, 4}, 0xff, 0xd8)
		if _, _, ok := Convert("jimg_texture", "photo", data); ok {
			t.Error("unexpected conversion")
		}
	})

	t.Run("GsceneStripsLeadingBytes", func(t *testing.T) {
		body := append(pngMagic, "png-body"...)
		data := append([]byte{0xDE, 0xAD}, body...)
		name, payload, ok := Convert("gscene", "scene", data)
		if !ok || name != "scene.png" {
			t.Fatalf("got %q/%v", name, ok)
		}
		if !bytes.Equal(payload, body) {
			t.Errorf("payload: got %v, want %v", payload, body)
		}
	})

	t.Run("GsceneNoSignature", func(t *testing.T) {
		if _, _, ok := Convert("gscene", "scene", []byte("opaque scene graph")); ok {
			t.Error("unexpected conversion")
		}
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		if _, _, ok := Convert("script", "s", append(pngMagic, "x"...)); ok {
			t.Error("conversion attempted for unknown category")
		}
	})
}
