package sprite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Entry names one image file to register.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// LoadManifest reads a JSON object mapping sprite names to image paths.
// Relative paths are resolved against the manifest's directory.
//
//	{ "player": "img/player.png", "coin": "img/coin.tga" }
func LoadManifest(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sprite: read manifest %s: %w", path, err)
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("sprite: parse manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	entries := make([]Entry, 0, len(m))
	for name, p := range m {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		entries = append(entries, Entry{Name: name, Path: p})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// WriteManifest writes entries as a manifest readable by LoadManifest.
func WriteManifest(path string, entries []Entry) error {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Name] = e.Path
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
