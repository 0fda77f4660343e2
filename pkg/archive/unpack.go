package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goopsie/rdfzFileTools/pkg/sniff"
)

// ConvertedDir is the side directory that recovered media payloads are
// written under, keyed by the entry's category name.
const ConvertedDir = "_converted"

// Stats summarizes one unpack run.
type Stats struct {
	Written   int // Primary files written
	Skipped   int // Entries skipped with a warning
	Converted int // Recovered media artifacts written
}

// unpackConfig holds unpack options.
type unpackConfig struct {
	convert  bool
	diag     io.Writer
	progress func(done, total int)
}

// UnpackOption configures an unpack run.
type UnpackOption func(*unpackConfig)

// WithConvert enables or disables recovery of embedded media payloads
// into the _converted side tree. Enabled by default.
func WithConvert(convert bool) UnpackOption {
	return func(c *unpackConfig) {
		c.convert = convert
	}
}

// WithDiagnostics sets the sink for warning lines. Defaults to os.Stderr;
// pass nil to discard. Warnings are human-readable single-line messages,
// not a structured error channel.
func WithDiagnostics(w io.Writer) UnpackOption {
	return func(c *unpackConfig) {
		c.diag = w
	}
}

// WithProgress installs a callback invoked after each entry is processed,
// whether written or skipped.
func WithProgress(fn func(done, total int)) UnpackOption {
	return func(c *unpackConfig) {
		c.progress = fn
	}
}

// Unpack decodes the archive at archivePath into outputRoot, one primary
// file per entry under {outputRoot}/{extension}/. Structural problems in
// the header, metadata block, or entry table abort the run; problems
// confined to a single entry are warned about and skipped.
func Unpack(archivePath, outputRoot string, opts ...UnpackOption) (*Stats, error) {
	r, err := Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.Unpack(outputRoot, opts...)
}

// Unpack runs the extraction pipeline over an already-open Reader.
func (r *Reader) Unpack(outputRoot string, opts ...UnpackOption) (*Stats, error) {
	cfg := &unpackConfig{convert: true, diag: os.Stderr}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.diag == nil {
		cfg.diag = io.Discard
	}

	if r.meta.SizeMismatch() {
		fmt.Fprintf(cfg.diag, "[warn] metadata uncompressed size mismatch: %d != %d\n",
			r.meta.ActualSize, r.meta.DeclaredSize)
	}

	stats := &Stats{}
	namer := NewNamer()

	// Directory cache to avoid repeated MkdirAll calls
	createdDirs := make(map[string]struct{})
	mkdir := func(dir string) error {
		if _, exists := createdDirs[dir]; exists {
			return nil
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
		createdDirs[dir] = struct{}{}
		return nil
	}

	total := len(r.entries)
	for i := range r.entries {
		payload, err := r.ReadEntry(i)
		if err != nil {
			var entryErr *EntryError
			if !errors.As(err, &entryErr) {
				return stats, err
			}
			fmt.Fprintf(cfg.diag, "[warn] %v\n", entryErr)
			stats.Skipped++
			cfg.report(i+1, total)
			continue
		}
		if payload.SizeMismatch() {
			fmt.Fprintf(cfg.diag, "[warn] entry %d: size mismatch %d != %d\n",
				i, len(payload.Data), payload.DeclaredSize)
		}

		group, ext, _ := r.EntryName(i) // Indices already validated by ReadEntry
		base, file := namer.Next(group, ext)

		dir := filepath.Join(outputRoot, ext)
		if err := mkdir(dir); err != nil {
			return stats, err
		}
		path := filepath.Join(dir, file)
		if err := os.WriteFile(path, payload.Data, 0644); err != nil {
			return stats, fmt.Errorf("write file %s: %w", path, err)
		}
		stats.Written++

		if cfg.convert {
			if name, data, ok := sniff.Convert(ext, base, payload.Data); ok {
				convDir := filepath.Join(outputRoot, ConvertedDir, ext)
				if err := mkdir(convDir); err != nil {
					return stats, err
				}
				convPath := filepath.Join(convDir, name)
				if err := os.WriteFile(convPath, data, 0644); err != nil {
					return stats, fmt.Errorf("write converted file %s: %w", convPath, err)
				}
				stats.Converted++
			}
		}

		cfg.report(i+1, total)
	}

	return stats, nil
}

func (c *unpackConfig) report(done, total int) {
	if c.progress != nil {
		c.progress(done, total)
	}
}
