package collection

import "github.com/desertthunder/woodshed/internal/models"

// EventKind identifies what changed in the store.
type EventKind int

const (
	EventSongAdded EventKind = iota
	EventDuplicateRejected
	EventStatusChanged
	EventDifficultyChanged
	EventNotesChanged
	EventStructureChanged
	EventSectionToggled
)

// String returns the snake_case name stored in the activity journal.
func (k EventKind) String() string {
	switch k {
	case EventSongAdded:
		return "song_added"
	case EventDuplicateRejected:
		return "duplicate_rejected"
	case EventStatusChanged:
		return "status_changed"
	case EventDifficultyChanged:
		return "difficulty_changed"
	case EventNotesChanged:
		return "notes_changed"
	case EventStructureChanged:
		return "structure_changed"
	case EventSectionToggled:
		return "section_toggled"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a mutation completes.
//
// Song is the state after the change. For [EventDuplicateRejected] it is the existing song
// that blocked the add, and Candidate holds the rejected input.
type Event struct {
	Kind      EventKind
	Song      models.Song
	Candidate models.Candidate
	Detail    string
}

// Listener receives store events synchronously on the mutating goroutine.
type Listener func(Event)
