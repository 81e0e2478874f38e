package scenario

import (
	"bytes"
	"html/template"
	"sync"
)

// Store is a key-to-value map used to pass state between otherwise
// independent steps of a scenario. Later writes overwrite earlier ones and
// missing keys are reported through the ok flag, never as an error.
//
// One Store is created per scenario and discarded when it ends. The
// surrounding runner executes a scenario's steps sequentially, so the
// mutex only guards against accidental cross-goroutine use (hooks,
// asynchronous assertions), not a supported concurrency model: two
// scenarios must never share a Store.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
}

// New returns an empty store ready for use.
func New() *Store {
	return &Store{values: map[string]any{}}
}

// Save stores value under key, replacing any previous value.
func (s *Store) Save(key string, value any) {
	s.mu.Lock()
	if s.values == nil {
		s.values = map[string]any{}
	}
	s.values[key] = value
	s.mu.Unlock()
}

// Get returns the value stored under key. The second return is false when
// the key has never been saved.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()
	return v, ok
}

// GetString returns the value under key when it is a string.
func (s *Store) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Delete removes key from the store. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}

// stringValues snapshots the entries whose values are plain strings.
func (s *Store) stringValues() map[string]string {
	s.mu.RLock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		if str, ok := v.(string); ok {
			out[k] = str
		}
	}
	s.mu.RUnlock()
	return out
}

// Render substitutes stored string values into s using Go template syntax
// ({{.key}}). Strings that fail to parse or reference missing keys are
// returned unchanged, so plain text passes through untouched.
func (s *Store) Render(in string) string {
	if len(in) == 0 {
		return in
	}
	t, err := template.New("scenario").Option("missingkey=error").Parse(in)
	if err != nil {
		return in
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, s.stringValues()); err != nil {
		return in
	}
	return buf.String()
}
