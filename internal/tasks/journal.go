package tasks

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/woodshed/internal/collection"
	"github.com/desertthunder/woodshed/internal/models"
)

// ActivityWriter persists journal entries.
type ActivityWriter interface {
	Create(activity *models.Activity) error
}

// Journal records store events as activity entries.
type Journal struct {
	writer    ActivityWriter
	sessionID string
	logger    *log.Logger

	mu       sync.Mutex
	recorded int
	failed   int
}

// NewJournal creates a journal that tags every entry with sessionID.
func NewJournal(writer ActivityWriter, sessionID string, logger *log.Logger) *Journal {
	if logger == nil {
		logger = log.Default()
	}
	return &Journal{writer: writer, sessionID: sessionID, logger: logger}
}

// Attach subscribes the journal to store and returns the unsubscribe function.
func (j *Journal) Attach(store *collection.Store) func() {
	return store.Subscribe(j.Record)
}

// Record writes one entry for e. Errors are logged and counted.
func (j *Journal) Record(e collection.Event) {
	title, artist := e.Song.Title, e.Song.Artist
	if e.Kind == collection.EventDuplicateRejected {
		title, artist = e.Candidate.Title, e.Candidate.Artist
	}

	activity := models.NewActivity(0, e.Kind.String(), e.Song.ID, title, artist, e.Detail)
	activity.SetSessionID(j.sessionID)

	err := j.writer.Create(activity)

	j.mu.Lock()
	defer j.mu.Unlock()
	if err != nil {
		j.failed++
		j.logger.Error("failed to record activity", "kind", e.Kind, "song", e.Song.ID, "error", err)
		return
	}
	j.recorded++
}

// Counts returns how many entries were written and how many failed.
func (j *Journal) Counts() (recorded, failed int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.recorded, j.failed
}
