package sprite

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Index maps lowercase file stems to image paths under a directory tree.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex walks dir and indexes every file with a supported extension.
// When two files share a stem the one visited first (lexical order) wins.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !Supported(path) {
			return nil
		}
		stem := StemName(path)
		if _, exists := idx.entries[stem]; !exists {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// StemName is the atlas name used for an image file: its lowercase base name
// without extension.
func StemName(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ResolvePath returns the filesystem path for a sprite name, or ("", false).
func (idx *Index) ResolvePath(name string) (string, bool) {
	path, ok := idx.entries[StemName(name)]
	return path, ok
}

// Len returns the number of indexed images.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Entries returns the index contents sorted by name.
func (idx *Index) Entries() []Entry {
	out := make([]Entry, 0, len(idx.entries))
	for name, path := range idx.entries {
		out = append(out, Entry{Name: name, Path: path})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
