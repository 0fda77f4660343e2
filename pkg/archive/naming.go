package archive

import "fmt"

// Namer derives collision-free output names for decoded entries.
//
// Occurrence counts are scoped to a single unpack run. Entry table order
// decides which duplicate keeps the bare name, so the table must be walked
// in order for reproducible output.
type Namer struct {
	counts map[string]int
}

// NewNamer creates an empty Namer.
func NewNamer() *Namer {
	return &Namer{counts: make(map[string]int)}
}

// Next advances the occurrence counter for the group/extension pair and
// returns the base name (without extension) and the full file name. The
// first occurrence gets the bare "group.ext" name; later occurrences get a
// zero-padded "_NN" suffix on the base.
func (n *Namer) Next(group, ext string) (base, file string) {
	key := group + "." + ext
	n.counts[key]++

	base = group
	if c := n.counts[key]; c > 1 {
		base = fmt.Sprintf("%s_%02d", group, c)
	}
	return base, base + "." + ext
}
