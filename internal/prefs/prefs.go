// Package prefs keeps UI-only terminal state (theme, printer settings, last
// cashier and the like) in a single JSON file.
//
// It is deliberately separate from the SQLite table store: nothing that needs
// durability or consistency guarantees belongs here.
package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	ErrInvalidPreferences = errors.New("preferences must be a JSON object")
	ErrEmptyKey           = errors.New("preference key is empty")
)

// Store is a key/value blob of raw JSON values persisted to one file.
type Store struct {
	path     string
	inMemory bool

	mu     sync.RWMutex
	values map[string]json.RawMessage
}

type persistedState struct {
	Values map[string]json.RawMessage `json:"values"`
}

// Open loads the blob from path. A missing file is an empty blob; an empty
// path or ":memory:" keeps everything in memory.
func Open(path string) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}

	s := &Store{
		path:     path,
		inMemory: path == ":memory:",
		values:   make(map[string]json.RawMessage),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// All returns a copy of every stored value.
func (s *Store) All() map[string]json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]json.RawMessage, len(s.values))
	for k, v := range s.values {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// Get returns the raw value stored under key.
func (s *Store) Get(key string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, false
	}
	return append(json.RawMessage(nil), v...), true
}

// Merge applies patch on top of the stored values and persists the result.
// A JSON null removes the key.
func (s *Store) Merge(patch map[string]json.RawMessage) error {
	for k := range patch {
		if k == "" {
			return ErrEmptyKey
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]json.RawMessage, len(s.values)+len(patch))
	for k, v := range s.values {
		next[k] = v
	}
	for k, v := range patch {
		if len(v) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			delete(next, k)
			continue
		}
		if !json.Valid(v) {
			return fmt.Errorf("%w: value of %q is not valid JSON", ErrInvalidPreferences, k)
		}
		next[k] = append(json.RawMessage(nil), v...)
	}

	if err := s.persist(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

func (s *Store) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read preferences file: %w", err)
	}

	var st persistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode preferences file: %w", err)
	}
	if st.Values != nil {
		s.values = st.Values
	}

	return nil
}

// persist writes through a temp file and a rename so a crash never leaves a
// half-written blob behind.
func (s *Store) persist(values map[string]json.RawMessage) error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preferences dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(persistedState{Values: values}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace preferences file: %w", err)
	}

	return nil
}
