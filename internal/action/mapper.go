package action

import (
	"maps"
	"slices"
	"sync"

	"github.com/pleimann/swipepad/internal/config"
	"github.com/pleimann/swipepad/internal/gesture"
)

// Mapper maps gestures to key sequences based on configuration
type Mapper struct {
	mu       sync.RWMutex
	bindings map[string][]string // gesture.Key() or bare type -> keys
}

// NewMapper creates a mapper from the config bindings. Bindings are
// validated by config.Parse; malformed entries are skipped.
func NewMapper(cfg *config.Config) *Mapper {
	m := &Mapper{}
	m.bindings = buildBindings(cfg)
	return m
}

func buildBindings(cfg *config.Config) map[string][]string {
	bindings := make(map[string][]string)

	for _, b := range cfg.Bindings {
		t, err := gesture.ParseGestureType(b.Gesture)
		if err != nil {
			continue
		}

		if len(b.Directions) == 0 {
			bindings[t.String()] = b.Keys
			continue
		}

		for _, ds := range b.Directions {
			d, err := gesture.ParseDirection(ds)
			if err != nil {
				continue
			}
			bindings[gesture.DirectionalKey(t, d)] = b.Keys
		}
	}

	return bindings
}

// Map returns the key sequence for a gesture, or nil if not mapped. A
// directional gesture with no binding for its sector falls back to the
// binding for its type.
func (m *Mapper) Map(g gesture.Gesture) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if keys, ok := m.bindings[g.Key()]; ok {
		return keys
	}
	if g.Type.Directional() {
		return m.bindings[g.Type.String()]
	}
	return nil
}

// Len returns the number of gesture keys bound
func (m *Mapper) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bindings)
}

// Entry is one bound gesture key
type Entry struct {
	Gesture string
	Keys    []string
}

// Entries returns the bindings sorted by gesture key
func (m *Mapper) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []Entry
	for _, k := range slices.Sorted(maps.Keys(m.bindings)) {
		entries = append(entries, Entry{Gesture: k, Keys: m.bindings[k]})
	}
	return entries
}

// Reload updates the mapper with new configuration
func (m *Mapper) Reload(cfg *config.Config) {
	bindings := buildBindings(cfg)

	m.mu.Lock()
	m.bindings = bindings
	m.mu.Unlock()
}
