package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Candidate is a track returned by the remote catalog that is not yet part of the collection.
type Candidate struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Album   string `json:"album,omitempty"`
	Genre   string `json:"genre,omitempty"`
	Artwork string `json:"artwork,omitempty"` // artwork URL
}

// Song is a tracked song in the practice collection.
//
// Title, Artist, Album, Genre, Artwork, DateAdded, and Links are fixed at creation.
// Sections holds the completed subset of Structure with set semantics.
type Song struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Artist     string     `json:"artist"`
	Album      string     `json:"album"`
	Genre      string     `json:"genre"`
	Artwork    string     `json:"artwork"`
	Status     Status     `json:"status"`
	Difficulty Difficulty `json:"difficulty"`
	Notes      string     `json:"notes"`
	DateAdded  time.Time  `json:"date_added"`
	Structure  []string   `json:"structure"`
	Sections   []string   `json:"sections"`
	Links      Links      `json:"links"`
}

// NewSong builds a song from a catalog candidate with default status, difficulty, and a structure looked up in structures.
func NewSong(id string, c Candidate, added time.Time, structures map[string][]string) Song {
	return Song{
		ID:         id,
		Title:      c.Title,
		Artist:     c.Artist,
		Album:      c.Album,
		Genre:      c.Genre,
		Artwork:    c.Artwork,
		Status:     NotStarted,
		Difficulty: Medium,
		DateAdded:  added,
		Structure:  lookupStructure(structures, c.Title),
		Sections:   []string{},
		Links:      NewLinks(c.Title, c.Artist),
	}
}

// Validate checks the fields every tracked song must have.
func (s Song) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("song ID is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("song title is required")
	}
	if !s.Status.Valid() {
		return fmt.Errorf("invalid status %d", s.Status)
	}
	if !s.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %d", s.Difficulty)
	}
	return nil
}

// IsComplete reports whether the named section is marked done.
func (s Song) IsComplete(section string) bool {
	return slices.Contains(s.Sections, section)
}

// HasSection reports whether the structure contains name.
func (s Song) HasSection(name string) bool {
	return slices.Contains(s.Structure, name)
}

// Clone returns a copy whose slices do not share backing arrays with s.
func (s Song) Clone() Song {
	s.Structure = slices.Clone(s.Structure)
	s.Sections = slices.Clone(s.Sections)
	return s
}
