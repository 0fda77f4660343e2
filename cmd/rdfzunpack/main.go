// Package main provides a command-line tool for unpacking RDFZ game-data
// archives.
package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/goopsie/rdfzFileTools/pkg/archive"
)

var (
	outputDir  string
	noConvert  bool
	noProgress bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rdfzunpack",
		Short: "A CLI tool for working with RDFZ game-data archives",
	}

	unpackCmd := &cobra.Command{
		Use:   "unpack <ARCHIVE>",
		Short: "Unpack all entries of an archive into a directory tree",
		Args:  cobra.ExactArgs(1),
		Run:   runUnpack,
	}
	unpackCmd.Flags().StringVarP(&outputDir, "output", "o", "unpacked", "Output directory")
	unpackCmd.Flags().BoolVar(&noConvert, "no-convert", false, "Disable recovery of embedded media payloads")
	unpackCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress bar (progress is enabled by default)")

	lsCmd := &cobra.Command{
		Use:   "ls <ARCHIVE>",
		Short: "List the entries of an archive without extracting",
		Args:  cobra.ExactArgs(1),
		Run:   runLs,
	}

	infoCmd := &cobra.Command{
		Use:   "info <ARCHIVE>",
		Short: "Show archive header and metadata",
		Args:  cobra.ExactArgs(1),
		Run:   runInfo,
	}

	rootCmd.AddCommand(unpackCmd, lsCmd, infoCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runUnpack(cmd *cobra.Command, args []string) {
	archivePath := args[0]

	opts := []archive.UnpackOption{
		archive.WithConvert(!noConvert),
	}
	if !noProgress {
		var bar *progressbar.ProgressBar
		opts = append(opts, archive.WithProgress(func(done, total int) {
			if bar == nil {
				bar = progressbar.Default(int64(total), "unpacking")
			}
			bar.Set(done)
		}))
	}

	stats, err := archive.Unpack(archivePath, outputDir, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. Wrote %d files to %s", stats.Written, outputDir)
	if stats.Converted > 0 {
		fmt.Printf(" (%d recovered media files)", stats.Converted)
	}
	if stats.Skipped > 0 {
		fmt.Printf(", skipped %d entries", stats.Skipped)
	}
	fmt.Println()
}

func runLs(cmd *cobra.Command, args []string) {
	r, err := archive.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer r.Close()

	for i, e := range r.Entries() {
		group, ext, err := r.EntryName(i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%d: <invalid indices ext=%d group=%d>\n", i, e.ExtIndex, e.GroupIndex)
			continue
		}
		method := "stored"
		if e.MethodID == archive.MethodZlib {
			method = "zlib"
		}
		fmt.Printf("%d: %s/%s.%s (offset: %d, size: %d, method: %s)\n",
			i, ext, group, ext, e.Offset, e.Size, method)
	}
}

func runInfo(cmd *cobra.Command, args []string) {
	r, err := archive.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer r.Close()

	meta := r.Metadata()
	fmt.Printf("Label:       %q\n", r.Header().Label)
	fmt.Printf("Method name: %q\n", meta.MethodName)
	fmt.Printf("Unk0/Unk1:   0x%08x / 0x%08x (reserved, not interpreted)\n", meta.Unk0, meta.Unk1)
	fmt.Printf("Extensions:  %d\n", len(meta.Extensions))
	for _, ext := range meta.Extensions {
		fmt.Printf("  %s\n", ext)
	}
	fmt.Printf("Groups:      %d\n", len(meta.Groups))
	fmt.Printf("Entries:     %d\n", len(r.Entries()))
	if meta.SizeMismatch() {
		fmt.Printf("Warning: metadata uncompressed size mismatch: %d != %d\n", meta.ActualSize, meta.DeclaredSize)
	}
}
