package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quasilyte/gdata"

	"github.com/ivlev/sceneanim/internal/scene"
)

// DefaultKey is the slot the editor's save button writes to.
const DefaultKey = "saved-scene"

var ErrNotFound = errors.New("no saved scene")

// Items is a flat key/value blob storage. *gdata.Manager implements it.
// Saving nil data clears the item.
type Items interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store keeps scene records in local app storage, encoded as the editor's JSON.
type Store struct {
	items Items
}

func New(items Items) *Store {
	return &Store{items: items}
}

// Open uses the per-user data directory of appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open storage %q: %w", appName, err)
	}
	return New(m), nil
}

func (s *Store) Save(key string, sc *scene.Scene) error {
	if key == "" {
		key = DefaultKey
	}
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	data, err := scene.Marshal(sc, scene.JSON)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := s.items.SaveItem(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Load returns the scene saved under key, or ErrNotFound.
func (s *Store) Load(key string) (*scene.Scene, error) {
	if key == "" {
		key = DefaultKey
	}
	data, err := s.items.LoadItem(key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w under %q", ErrNotFound, key)
	}
	sc, err := scene.Unmarshal(data, scene.JSON)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return sc, nil
}

func (s *Store) Exists(key string) bool {
	data, err := s.items.LoadItem(key)
	return err == nil && len(data) > 0
}

func (s *Store) Delete(key string) error {
	return s.items.SaveItem(key, nil)
}

// MemoryItems keeps items in a map, for tests and throwaway sessions.
type MemoryItems struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemoryItems() *MemoryItems {
	return &MemoryItems{items: make(map[string][]byte)}
}

func (m *MemoryItems) LoadItem(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryItems) SaveItem(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if data == nil {
		delete(m.items, key)
		return nil
	}
	m.items[key] = append([]byte(nil), data...)
	return nil
}
