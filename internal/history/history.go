// Package history reads and writes the list of opened notes to a key-value
// store.
package history

import (
	"errors"
	"fmt"

	"github.com/existflow/notejar/internal/model"
	"github.com/goccy/go-json"
)

// DefaultKey is the storage key holding the opened notes
const DefaultKey = "i2dey-opened-notes"

// ErrNotFound is returned by Load when nothing is stored under the key
var ErrNotFound = errors.New("no history stored")

// Storage is a synchronous string key-value store
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Load reads the history stored under key. It always returns a usable,
// non-nil slice; a non-nil error explains why the result is empty.
func Load(s Storage, key string) ([]model.OpenedNote, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return []model.OpenedNote{}, fmt.Errorf("failed to read history: %w", err)
	}
	if !ok {
		return []model.OpenedNote{}, ErrNotFound
	}

	notes, err := Decode([]byte(raw))
	if err != nil {
		return []model.OpenedNote{}, err
	}
	return notes, nil
}

// Save overwrites key with the full history
func Save(s Storage, key string, notes []model.OpenedNote) error {
	data, err := Encode(notes)
	if err != nil {
		return err
	}
	if err := s.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// Encode serializes notes as a JSON array
func Encode(notes []model.OpenedNote) ([]byte, error) {
	if notes == nil {
		notes = []model.OpenedNote{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array of notes. Anything that is not an array of
// note objects is rejected.
func Decode(data []byte) ([]model.OpenedNote, error) {
	var notes []model.OpenedNote
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("malformed history: %w", err)
	}
	if notes == nil {
		// JSON null
		return nil, fmt.Errorf("malformed history: not an array")
	}
	return notes, nil
}
