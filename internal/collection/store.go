package collection

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/woodshed/internal/models"
	"github.com/desertthunder/woodshed/internal/shared"
)

// Store is the authoritative registry of tracked songs.
type Store struct {
	mu      sync.RWMutex
	songs   []*models.Song
	version uint64

	now        func() time.Time
	newID      func() string
	structures map[string][]string
	logger     *log.Logger

	subMu   sync.Mutex
	subs    map[int]Listener
	nextSub int
}

// Option configures a [Store].
type Option func(*Store)

// WithClock sets the time source used for DateAdded.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the function used to mint song ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger for store diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithStructures replaces the known structure table.
func WithStructures(structures map[string][]string) Option {
	return func(s *Store) { s.structures = structures }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		songs:      []*models.Song{},
		now:        time.Now,
		newID:      shared.GenerateID,
		structures: models.KnownStructures,
		subs:       map[int]Listener{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Subscribe registers fn for every subsequent event and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) emit(e Event) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn(e)
	}
}

// Add tracks a new song built from c.
//
// A blank title returns [shared.ErrEmptyInput] with no event. A case-insensitive (title, artist)
// match returns [shared.ErrDuplicateSong] and emits [EventDuplicateRejected].
func (s *Store) Add(c models.Candidate) (models.Song, error) {
	if strings.TrimSpace(c.Title) == "" {
		return models.Song{}, fmt.Errorf("%w: title is required", shared.ErrEmptyInput)
	}

	key := shared.NormalizeTrackKey(c.Title, c.Artist)

	s.mu.Lock()
	for _, existing := range s.songs {
		if shared.NormalizeTrackKey(existing.Title, existing.Artist) == key {
			dup := existing.Clone()
			s.mu.Unlock()

			s.logger.Debug("duplicate song rejected", "title", c.Title, "artist", c.Artist)
			s.emit(Event{Kind: EventDuplicateRejected, Song: dup, Candidate: c})
			return models.Song{}, fmt.Errorf("%w: %s by %s", shared.ErrDuplicateSong, c.Title, c.Artist)
		}
	}

	added := s.now()
	if n := len(s.songs); n > 0 && added.Before(s.songs[n-1].DateAdded) {
		added = s.songs[n-1].DateAdded
	}

	song := models.NewSong(s.newID(), c, added, s.structures)
	next := make([]*models.Song, len(s.songs), len(s.songs)+1)
	copy(next, s.songs)
	s.songs = append(next, &song)
	s.version++
	out := song.Clone()
	s.mu.Unlock()

	s.logger.Info("song added", "id", out.ID, "title", out.Title, "artist", out.Artist)
	s.emit(Event{Kind: EventSongAdded, Song: out, Candidate: c})
	return out, nil
}

// replace applies fn to a copy of the song with id and swaps the copy in.
// It returns false without mutating when id is unknown or fn rejects the change.
func (s *Store) replace(id string, kind EventKind, detail string, fn func(*models.Song) bool) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Debug("update ignored for unknown song", "id", id, "kind", kind)
		return false
	}

	updated := s.songs[idx].Clone()
	if !fn(&updated) {
		s.mu.Unlock()
		return false
	}

	next := slices.Clone(s.songs)
	next[idx] = &updated
	s.songs = next
	out := updated.Clone()
	s.mu.Unlock()

	s.emit(Event{Kind: kind, Song: out, Detail: detail})
	return true
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.songs, func(song *models.Song) bool { return song.ID == id })
}

// UpdateStatus sets the practice status of the song with id.
func (s *Store) UpdateStatus(id string, status models.Status) bool {
	if !status.Valid() {
		return false
	}
	return s.replace(id, EventStatusChanged, status.String(), func(song *models.Song) bool {
		song.Status = status
		return true
	})
}

// UpdateDifficulty sets the difficulty of the song with id.
func (s *Store) UpdateDifficulty(id string, difficulty models.Difficulty) bool {
	if !difficulty.Valid() {
		return false
	}
	return s.replace(id, EventDifficultyChanged, difficulty.String(), func(song *models.Song) bool {
		song.Difficulty = difficulty
		return true
	})
}

// UpdateNotes replaces the free text notes of the song with id.
func (s *Store) UpdateNotes(id, notes string) bool {
	return s.replace(id, EventNotesChanged, "", func(song *models.Song) bool {
		song.Notes = notes
		return true
	})
}

// AppendSection adds a section named name (trimmed) to the end of the structure.
// Duplicate names are allowed.
func (s *Store) AppendSection(id, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return s.replace(id, EventStructureChanged, "+"+name, func(song *models.Song) bool {
		song.Structure = append(song.Structure, name)
		return true
	})
}

// RemoveLastSection drops the final structure entry. An empty structure is left as is.
func (s *Store) RemoveLastSection(id string) bool {
	var removed string
	return s.replace(id, EventStructureChanged, "", func(song *models.Song) bool {
		n := len(song.Structure)
		if n == 0 {
			return false
		}
		removed = song.Structure[n-1]
		song.Structure = song.Structure[:n-1]
		if !slices.Contains(song.Structure, removed) {
			song.Sections = slices.DeleteFunc(song.Sections, func(sec string) bool { return sec == removed })
		}
		return true
	})
}

// ToggleSection marks name complete or incomplete. Names missing from the structure are rejected.
func (s *Store) ToggleSection(id, name string, complete bool) bool {
	detail := name + " incomplete"
	if complete {
		detail = name + " complete"
	}
	return s.replace(id, EventSectionToggled, detail, func(song *models.Song) bool {
		if !song.HasSection(name) {
			return false
		}
		has := song.IsComplete(name)
		switch {
		case complete && !has:
			song.Sections = append(song.Sections, name)
		case !complete && has:
			song.Sections = slices.DeleteFunc(song.Sections, func(sec string) bool { return sec == name })
		}
		return true
	})
}

// Get returns a copy of the song with id.
func (s *Store) Get(id string) (models.Song, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(id); idx >= 0 {
		return s.songs[idx].Clone(), true
	}
	return models.Song{}, false
}

// Lookup is [Store.Get] with an error for callers that want one.
func (s *Store) Lookup(id string) (models.Song, error) {
	song, ok := s.Get(id)
	if !ok {
		return models.Song{}, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}
	return song, nil
}

// Songs returns a snapshot of the collection in insertion order.
func (s *Store) Songs() []models.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Song, len(s.songs))
	for i, song := range s.songs {
		out[i] = song.Clone()
	}
	return out
}

// Len returns the number of tracked songs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.songs)
}

// Version changes whenever a song is added.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
