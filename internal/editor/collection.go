package editor

import (
	"github.com/avoronov/notka/models"
)

// Collection is the client-held ordered copy of the user's notes, newest
// created first. It is updated from mutation responses rather than re-fetched
// after every call, and it never contains two entries with the same id.
//
// Collection is not safe for concurrent use; all mutations happen on the
// single UI event loop.
type Collection struct {
	notes []models.Note
}

// Reset replaces the whole collection with notes as returned by the list
// endpoint. Duplicate ids keep the first occurrence.
func (c *Collection) Reset(notes []models.Note) {
	c.notes = c.notes[:0]
	seen := make(map[int64]struct{}, len(notes))
	for _, n := range notes {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		seen[n.ID] = struct{}{}
		c.notes = append(c.notes, n)
	}
}

// All returns the cached notes in order. The returned slice is shared with
// the collection and must not be mutated by the caller.
func (c *Collection) All() []models.Note {
	return c.notes
}

// Len returns the number of cached notes.
func (c *Collection) Len() int {
	return len(c.notes)
}

// At returns the note at position i.
func (c *Collection) At(i int) (models.Note, bool) {
	if i < 0 || i >= len(c.notes) {
		return models.Note{}, false
	}
	return c.notes[i], true
}

// Get returns the cached note with the given id.
func (c *Collection) Get(id int64) (models.Note, bool) {
	for _, n := range c.notes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Note{}, false
}

// Prepend inserts a freshly created note at the head of the collection. If
// an entry with the same id already exists (two responses for the same note
// racing), the existing entry is overwritten in place instead: last response
// wins, no duplicate is ever introduced.
func (c *Collection) Prepend(note models.Note) {
	for i, n := range c.notes {
		if n.ID == note.ID {
			c.notes[i] = note
			return
		}
	}
	c.notes = append([]models.Note{note}, c.notes...)
}

// Replace overwrites the entry with note.ID, keeping its position and the
// relative order of all other entries. Returns false when no entry with
// that id is cached (e.g. it was deleted while the update was in flight).
func (c *Collection) Replace(note models.Note) bool {
	for i, n := range c.notes {
		if n.ID == note.ID {
			c.notes[i] = note
			return true
		}
	}
	return false
}

// Remove deletes the entry with the given id, preserving the order of the
// remaining entries. Returns false when the id is not cached.
func (c *Collection) Remove(id int64) bool {
	for i, n := range c.notes {
		if n.ID == id {
			c.notes = append(c.notes[:i], c.notes[i+1:]...)
			return true
		}
	}
	return false
}
