package model

import "time"

// CatalogEntry is a note that can be revealed from the jar
type CatalogEntry struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Text      string    `json:"text" yaml:"text"`
	Author    string    `json:"author,omitempty" yaml:"author,omitempty"`
	ImagePath string    `json:"imagePath,omitempty" yaml:"image_path,omitempty"`
	Color     NoteColor `json:"color" yaml:"color"`
}

// OpenedNote is a catalog entry captured at the moment it was revealed
type OpenedNote struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text"`
	Author    string    `json:"author,omitempty"`
	ImagePath string    `json:"imagePath,omitempty"`
	Color     NoteColor `json:"color"`
	OpenedAt  int64     `json:"openedAt"` // Unix milliseconds
}

// Open copies the entry into an OpenedNote stamped with at
func (e CatalogEntry) Open(at time.Time) OpenedNote {
	return OpenedNote{
		ID:        e.ID,
		Title:     e.Title,
		Text:      e.Text,
		Author:    e.Author,
		ImagePath: e.ImagePath,
		Color:     e.Color,
		OpenedAt:  at.UnixMilli(),
	}
}

// OpenedTime returns OpenedAt as a time.Time
func (n *OpenedNote) OpenedTime() time.Time {
	return time.UnixMilli(n.OpenedAt)
}

// HasImage returns true if the note carries an image
func (n *OpenedNote) HasImage() bool {
	return n.ImagePath != ""
}
