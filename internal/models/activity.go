package models

import (
	"fmt"
	"time"
)

// Activity is a journal entry for one change to the collection.
type Activity struct {
	id        string
	sequence  int
	kind      string
	songID    string
	title     string
	artist    string
	detail    string
	sessionID string
	createdAt time.Time
}

// NewActivity creates an activity entry. The ID is assigned by the repository.
func NewActivity(sequence int, kind, songID, title, artist, detail string) *Activity {
	return &Activity{
		sequence:  sequence,
		kind:      kind,
		songID:    songID,
		title:     title,
		artist:    artist,
		detail:    detail,
		createdAt: time.Now(),
	}
}

func (a *Activity) ID() string { return a.id }
func (a *Activity) Sequence() int { return a.sequence }
func (a *Activity) Kind() string { return a.kind }
func (a *Activity) SongID() string { return a.songID }
func (a *Activity) Title() string { return a.title }
func (a *Activity) Artist() string { return a.artist }
func (a *Activity) Detail() string { return a.detail }
func (a *Activity) SessionID() string { return a.sessionID }
func (a *Activity) CreatedAt() time.Time { return a.createdAt }

func (a *Activity) SetID(id string) { a.id = id }
func (a *Activity) SetSequence(seq int) { a.sequence = seq }
func (a *Activity) SetSessionID(id string) { a.sessionID = id }
func (a *Activity) SetCreatedAt(createdAt time.Time) { a.createdAt = createdAt }

// Validate checks required fields.
func (a *Activity) Validate() error {
	if a.id == "" {
		return fmt.Errorf("activity ID is required")
	}
	if a.kind == "" {
		return fmt.Errorf("activity kind is required")
	}
	return nil
}

// PracticeSession groups the activity of one application run.
type PracticeSession struct {
	id        string
	startedAt time.Time
	endedAt   *time.Time
}

// NewPracticeSession starts a session at the current time.
func NewPracticeSession() *PracticeSession {
	return &PracticeSession{startedAt: time.Now()}
}

func (s *PracticeSession) ID() string { return s.id }
func (s *PracticeSession) CreatedAt() time.Time { return s.startedAt }
func (s *PracticeSession) EndedAt() *time.Time { return s.endedAt }
func (s *PracticeSession) SetID(id string) { s.id = id }
func (s *PracticeSession) SetStartedAt(t time.Time) { s.startedAt = t }
func (s *PracticeSession) SetEndedAt(t *time.Time) { s.endedAt = t }

// Ended reports whether the session has been closed.
func (s *PracticeSession) Ended() bool { return s.endedAt != nil }

// Validate checks required fields.
func (s *PracticeSession) Validate() error {
	if s.id == "" {
		return fmt.Errorf("session ID is required")
	}
	if s.endedAt != nil && s.endedAt.Before(s.startedAt) {
		return fmt.Errorf("session cannot end before it starts")
	}
	return nil
}
