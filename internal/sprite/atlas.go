package sprite

import (
	"sort"
	"sync"
)

// Atlas is a concurrency-safe name → Sprite store.
//
// Sprites are built completely before they are published, so a Lookup that
// races a Register sees either the old sprite or the new one, never a mix.
type Atlas struct {
	mu    sync.RWMutex
	items map[string]*Sprite
}

// NewAtlas creates an empty atlas.
func NewAtlas() *Atlas {
	return &Atlas{items: make(map[string]*Sprite)}
}

// Register converts raw interleaved pixel data and stores it under name,
// replacing any previous entry. On error the atlas is unchanged.
func (a *Atlas) Register(name string, raw []byte, w, h, stride int) error {
	s, err := FromRaw(raw, w, h, stride)
	if err != nil {
		return err
	}
	a.Put(name, s)
	return nil
}

// Put stores s under name, replacing any previous entry.
func (a *Atlas) Put(name string, s *Sprite) {
	a.mu.Lock()
	a.items[name] = s
	a.mu.Unlock()
}

// Lookup returns the sprite registered under name.
func (a *Atlas) Lookup(name string) (*Sprite, bool) {
	a.mu.RLock()
	s, ok := a.items[name]
	a.mu.RUnlock()
	return s, ok
}

// Len returns the number of registered sprites.
func (a *Atlas) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.items)
}

// Names returns the registered names in sorted order.
func (a *Atlas) Names() []string {
	a.mu.RLock()
	names := make([]string, 0, len(a.items))
	for n := range a.items {
		names = append(names, n)
	}
	a.mu.RUnlock()
	sort.Strings(names)
	return names
}
