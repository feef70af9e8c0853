// Package catalog holds the ordered, read-only list of notes the jar can
// reveal.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/existflow/notejar/internal/model"
	"gopkg.in/yaml.v3"
)

// Validation errors
var (
	ErrEmptyID      = errors.New("note id is empty")
	ErrDuplicateID  = errors.New("duplicate note id")
	ErrEmptyText    = errors.New("note text is empty")
	ErrUnknownColor = errors.New("unknown note color")
)

// Catalog is an immutable, ordered list of catalog entries
type Catalog struct {
	entries []model.CatalogEntry
	index   map[string]int
}

// New validates entries and builds a catalog that keeps their order
func New(entries []model.CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]model.CatalogEntry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)

	for i, e := range c.entries {
		switch {
		case e.ID == "":
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyID)
		case e.Text == "":
			return nil, fmt.Errorf("entry %q: %w", e.ID, ErrEmptyText)
		case !e.Color.Valid():
			return nil, fmt.Errorf("entry %q: %w: %q", e.ID, ErrUnknownColor, e.Color)
		}
		if prev, ok := c.index[e.ID]; ok {
			return nil, fmt.Errorf("entry %d: %w %q (first at %d)", i, ErrDuplicateID, e.ID, prev)
		}
		c.index[e.ID] = i
	}

	return c, nil
}

// MustNew is like New but panics on invalid entries
func MustNew(entries []model.CatalogEntry) *Catalog {
	c, err := New(entries)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in declaration order
func (c *Catalog) Entries() []model.CatalogEntry {
	out := make([]model.CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// At returns the i-th entry
func (c *Catalog) At(i int) model.CatalogEntry {
	return c.entries[i]
}

// Lookup finds an entry by id
func (c *Catalog) Lookup(id string) (model.CatalogEntry, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.CatalogEntry{}, false
	}
	return c.entries[i], true
}

// Contains returns true if id is part of the catalog
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// file is the on-disk layout of a catalog override
type file struct {
	Notes []model.CatalogEntry `yaml:"notes"`
}

// LoadFile reads a YAML catalog from path
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	c, err := New(f.Notes)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// Load returns the catalog at path, or the built-in catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
