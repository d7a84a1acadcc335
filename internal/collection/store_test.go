package collection

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/desertthunder/woodshed/internal/models"
	"github.com/desertthunder/woodshed/internal/shared"
)

// newTestStore returns a store with sequential ids and a clock that advances one hour per call.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	calls := 0
	n := 0
	return New(
		WithClock(func() time.Time {
			calls++
			return base.Add(time.Duration(calls) * time.Hour)
		}),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("song-%d", n)
		}),
	)
}

func (s *Store) entries() []*models.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.songs
}

func breed() models.Candidate {
	return models.Candidate{Title: "Breed", Artist: "Nirvana", Album: "Nevermind", Genre: "Rock", Artwork: "https://example.com/breed.jpg"}
}

func TestStoreAdd(t *testing.T) {
	t.Run("builds song with defaults", func(t *testing.T) {
		store := newTestStore(t)

		song, err := store.Add(breed())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if song.ID != "song-1" {
			t.Errorf("expected id song-1, got %s", song.ID)
		}
		if song.Status != models.NotStarted || song.Difficulty != models.Medium {
			t.Errorf("unexpected defaults: %v %v", song.Status, song.Difficulty)
		}
		if song.Album != "Nevermind" || song.Genre != "Rock" || song.Artwork == "" {
			t.Errorf("candidate fields not copied: %+v", song)
		}
		if store.Len() != 1 {
			t.Errorf("expected 1 song, got %d", store.Len())
		}
	})

	t.Run("blank title is rejected silently", func(t *testing.T) {
		store := newTestStore(t)
		var events []Event
		store.Subscribe(func(e Event) { events = append(events, e) })

		for _, title := range []string{"", "   "} {
			_, err := store.Add(models.Candidate{Title: title, Artist: "Nirvana"})
			if !errors.Is(err, shared.ErrEmptyInput) {
				t.Errorf("expected ErrEmptyInput, got %v", err)
			}
		}
		if store.Len() != 0 {
			t.Errorf("expected empty store, got %d", store.Len())
		}
		if len(events) != 0 {
			t.Errorf("expected no events, got %d", len(events))
		}
	})

	t.Run("structure from known table", func(t *testing.T) {
		store := newTestStore(t)

		b, _ := store.Add(breed())
		if len(b.Structure) != 9 {
			t.Fatalf("expected 9 sections, got %d", len(b.Structure))
		}
		want := []string{"Intro", "Verse 1", "Chorus", "Verse 2", "Chorus", "Bridge", "Verse 3", "Chorus 3", "Outro"}
		if !slices.Equal(b.Structure, want) {
			t.Errorf("unexpected structure %v", b.Structure)
		}

		other, _ := store.Add(models.Candidate{Title: "Lithium", Artist: "Nirvana"})
		if !slices.Equal(other.Structure, []string{"Intro"}) {
			t.Errorf("expected [Intro], got %v", other.Structure)
		}
	})

	t.Run("custom structures", func(t *testing.T) {
		store := New(WithStructures(map[string][]string{"polly": {"Intro", "Verse"}}))

		song, _ := store.Add(models.Candidate{Title: "Polly", Artist: "Nirvana"})
		if len(song.Structure) != 2 {
			t.Errorf("expected custom structure, got %v", song.Structure)
		}
	})

	t.Run("date added never goes backwards", func(t *testing.T) {
		times := []time.Time{
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		i := 0
		store := New(WithClock(func() time.Time { ts := times[i]; i++; return ts }))

		first, _ := store.Add(models.Candidate{Title: "A", Artist: "X"})
		second, _ := store.Add(models.Candidate{Title: "B", Artist: "X"})
		if second.DateAdded.Before(first.DateAdded) {
			t.Errorf("DateAdded went backwards: %v then %v", first.DateAdded, second.DateAdded)
		}
	})
}

func TestStoreDuplicates(t *testing.T) {
	tests := []struct {
		name   string
		second models.Candidate
	}{
		{"exact", breed()},
		{"case insensitive", models.Candidate{Title: "bReEd", Artist: "NIRVANA"}},
		{"different album", models.Candidate{Title: "Breed", Artist: "Nirvana", Album: "Live"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			var kinds []EventKind
			store.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })

			if _, err := store.Add(breed()); err != nil {
				t.Fatalf("first add failed: %v", err)
			}
			_, err := store.Add(tt.second)
			if !errors.Is(err, shared.ErrDuplicateSong) {
				t.Errorf("expected ErrDuplicateSong, got %v", err)
			}
			if store.Len() != 1 {
				t.Errorf("expected 1 song, got %d", store.Len())
			}
			if !slices.Equal(kinds, []EventKind{EventSongAdded, EventDuplicateRejected}) {
				t.Errorf("unexpected events %v", kinds)
			}
		})
	}

	t.Run("inner whitespace differs", func(t *testing.T) {
		store := newTestStore(t)
		if _, err := store.Add(models.Candidate{Title: "Let It Be", Artist: "The Beatles"}); err != nil {
			t.Fatal(err)
		}
		if _, err := store.Add(models.Candidate{Title: "Let  It Be", Artist: "The Beatles"}); err != nil {
			t.Errorf("expected distinct song, got %v", err)
		}
		if store.Len() != 2 {
			t.Errorf("expected 2 songs, got %d", store.Len())
		}
	})

	t.Run("same title different artist is allowed", func(t *testing.T) {
		store := newTestStore(t)
		store.Add(breed())
		if _, err := store.Add(models.Candidate{Title: "Breed", Artist: "Cover Band"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if store.Len() != 2 {
			t.Errorf("expected 2 songs, got %d", store.Len())
		}
	})
}

func TestStoreEndToEnd(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Add(breed())
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	_, err = store.Add(breed())
	if !errors.Is(err, shared.ErrDuplicateSong) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	if store.Len() != 1 {
		t.Errorf("expected collection size 1, got %d", store.Len())
	}
	got, ok := store.Get(first.ID)
	if !ok {
		t.Fatal("first song missing")
	}
	if len(got.Structure) != 9 {
		t.Errorf("expected structure length 9, got %d", len(got.Structure))
	}
}

func TestStoreUpdates(t *testing.T) {
	t.Run("updates keep id and leave other songs untouched", func(t *testing.T) {
		store := newTestStore(t)
		a, _ := store.Add(breed())
		b, _ := store.Add(models.Candidate{Title: "Lithium", Artist: "Nirvana"})
		before := store.entries()

		if !store.UpdateStatus(a.ID, models.Mastered) {
			t.Error("UpdateStatus should report found")
		}
		if !store.UpdateDifficulty(a.ID, models.Expert) {
			t.Error("UpdateDifficulty should report found")
		}
		if !store.UpdateNotes(a.ID, "watch the bridge") {
			t.Error("UpdateNotes should report found")
		}

		after := store.entries()
		if after[1] != before[1] {
			t.Error("untouched song should keep pointer identity")
		}
		if after[0] == before[0] {
			t.Error("updated song should be a new entry")
		}
		if before[0].Status != models.NotStarted {
			t.Error("previous snapshot entry must not be mutated")
		}

		got, _ := store.Get(a.ID)
		if got.ID != a.ID || got.Status != models.Mastered || got.Difficulty != models.Expert || got.Notes != "watch the bridge" {
			t.Errorf("unexpected song after updates: %+v", got)
		}
		if got.Title != a.Title || !got.DateAdded.Equal(a.DateAdded) || got.Links != a.Links {
			t.Error("immutable fields changed")
		}

		other, _ := store.Get(b.ID)
		if other.Status != models.NotStarted || other.Notes != "" {
			t.Errorf("other song changed: %+v", other)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		store := newTestStore(t)
		store.Add(breed())
		snapshot := store.Songs()
		version := store.Version()

		if store.UpdateNotes("nonexistent-id", "x") {
			t.Error("expected false for unknown id")
		}
		if store.UpdateStatus("nonexistent-id", models.Mastered) {
			t.Error("expected false for unknown id")
		}
		if store.ToggleSection("nonexistent-id", "Intro", true) {
			t.Error("expected false for unknown id")
		}

		after := store.Songs()
		if len(after) != len(snapshot) || after[0].Notes != snapshot[0].Notes || after[0].Status != snapshot[0].Status {
			t.Error("collection changed after update on unknown id")
		}
		if store.Version() != version {
			t.Error("version changed after no-op")
		}
	})

	t.Run("invalid enum values are rejected", func(t *testing.T) {
		store := newTestStore(t)
		song, _ := store.Add(breed())

		if store.UpdateStatus(song.ID, models.Status(42)) {
			t.Error("expected invalid status to be rejected")
		}
		if store.UpdateDifficulty(song.ID, models.Difficulty(-3)) {
			t.Error("expected invalid difficulty to be rejected")
		}
	})

	t.Run("events carry the new state", func(t *testing.T) {
		store := newTestStore(t)
		song, _ := store.Add(breed())

		var got []Event
		unsubscribe := store.Subscribe(func(e Event) { got = append(got, e) })
		store.UpdateStatus(song.ID, models.InProgress)
		unsubscribe()
		store.UpdateStatus(song.ID, models.Mastered)

		if len(got) != 1 {
			t.Fatalf("expected 1 event before unsubscribe, got %d", len(got))
		}
		if got[0].Kind != EventStatusChanged || got[0].Song.Status != models.InProgress || got[0].Detail != "In Progress" {
			t.Errorf("unexpected event %+v", got[0])
		}
	})
}

func TestStoreSections(t *testing.T) {
	t.Run("append trims and allows duplicates", func(t *testing.T) {
		store := newTestStore(t)
		song, _ := store.Add(models.Candidate{Title: "Lithium", Artist: "Nirvana"})

		if !store.AppendSection(song.ID, "  Chorus ") || !store.AppendSection(song.ID, "Chorus") {
			t.Fatal("append should succeed")
		}
		if store.AppendSection(song.ID, "   ") {
			t.Error("blank name should be rejected")
		}

		got, _ := store.Get(song.ID)
		if !slices.Equal(got.Structure, []string{"Intro", "Chorus", "Chorus"}) {
			t.Errorf("unexpected structure %v", got.Structure)
		}
	})

	t.Run("remove last on empty structure", func(t *testing.T) {
		store := newTestStore(t)
		song, _ := store.Add(models.Candidate{Title: "Lithium", Artist: "Nirvana"})

		if !store.RemoveLastSection(song.ID) {
			t.Error("removing the only section should succeed")
		}
		if store.RemoveLastSection(song.ID) {
			t.Error("removing from empty structure should report false")
		}

		got, _ := store.Get(song.ID)
		if len(got.Structure) != 0 {
			t.Errorf("expected empty structure, got %v", got.Structure)
		}
	})

	t.Run("remove last drops orphaned completion", func(t *testing.T) {
		store := newTestStore(t)
		song, _ := store.Add(breed())
		store.ToggleSection(song.ID, "Outro", true)
		store.ToggleSection(song.ID, "Chorus", true)

		store.RemoveLastSection(song.ID)
		got, _ := store.Get(song.ID)
		if got.IsComplete("Outro") {
			t.Error("Outro completion should be dropped with the section")
		}
		if !got.IsComplete("Chorus") {
			t.Error("Chorus completion should remain")
		}
	})

	t.Run("toggle is a set", func(t *testing.T) {
		store := newTestStore(t)
		song, _ := store.Add(breed())

		store.ToggleSection(song.ID, "Bridge", true)
		store.ToggleSection(song.ID, "Bridge", true)

		got, _ := store.Get(song.ID)
		count := 0
		for _, s := range got.Sections {
			if s == "Bridge" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected Bridge once, got %d in %v", count, got.Sections)
		}

		store.ToggleSection(song.ID, "Bridge", false)
		store.ToggleSection(song.ID, "Bridge", false)
		got, _ = store.Get(song.ID)
		if got.IsComplete("Bridge") {
			t.Error("Bridge should be incomplete")
		}
	})

	t.Run("toggle rejects names outside structure", func(t *testing.T) {
		store := newTestStore(t)
		song, _ := store.Add(breed())

		if store.ToggleSection(song.ID, "Guitar Solo", true) {
			t.Error("expected unknown section to be rejected")
		}
		got, _ := store.Get(song.ID)
		if len(got.Sections) != 0 {
			t.Errorf("expected no completed sections, got %v", got.Sections)
		}
	})

	t.Run("snapshots are isolated", func(t *testing.T) {
		store := newTestStore(t)
		song, _ := store.Add(breed())

		snap := store.Songs()
		snap[0].Structure[0] = "mutated"
		store.AppendSection(song.ID, "Coda")

		got, _ := store.Get(song.ID)
		if got.Structure[0] != "Intro" {
			t.Error("snapshot mutation leaked into the store")
		}
		if len(snap[0].Structure) != 9 {
			t.Error("store mutation leaked into an earlier snapshot")
		}
	})
}

func TestStoreVersionAndLookup(t *testing.T) {
	store := newTestStore(t)
	v0 := store.Version()

	song, _ := store.Add(breed())
	if store.Version() == v0 {
		t.Error("version should change on add")
	}

	v1 := store.Version()
	store.UpdateNotes(song.ID, "notes")
	if store.Version() != v1 {
		t.Error("version should not change on field updates")
	}

	if _, err := store.Lookup("missing"); !errors.Is(err, shared.ErrSongNotFound) {
		t.Errorf("expected ErrSongNotFound, got %v", err)
	}
	if got, err := store.Lookup(song.ID); err != nil || got.ID != song.ID {
		t.Errorf("Lookup(%s) = %v, %v", song.ID, got.ID, err)
	}
}

func TestEventKindString(t *testing.T) {
	if EventSongAdded.String() != "song_added" || EventSectionToggled.String() != "section_toggled" {
		t.Error("unexpected event kind names")
	}
	if EventKind(99).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
}
