package collection

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/desertthunder/woodshed/internal/models"
)

var day = 24 * time.Hour

func song(id, title, artist, album, genre string, added time.Time) models.Song {
	s := models.NewSong(id, models.Candidate{Title: title, Artist: artist, Album: album, Genre: genre}, added, nil)
	return s
}

func ids(songs []models.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	songs := []models.Song{
		song("1", "Breed", "Nirvana", "Nevermind", "Rock", base),
		song("2", "Teardrop", "Massive Attack", "Mezzanine", "Trip-Hop", base),
		song("3", "Black", "Pearl Jam", "Ten", "Grunge", base),
	}
	songs[0].Status = models.Mastered
	songs[1].Status = models.InProgress
	songs[2].Status = models.Mastered
	songs[1].Difficulty = models.Hard

	mastered := models.Mastered
	hard := models.Hard
	notStarted := models.NotStarted

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"empty criteria returns all", Criteria{}, []string{"1", "2", "3"}},
		{"status filter keeps order", Criteria{Status: &mastered}, []string{"1", "3"}},
		{"title substring ignores case", Criteria{Query: "BREED"}, []string{"1"}},
		{"artist substring", Criteria{Query: "attack"}, []string{"2"}},
		{"genre substring", Criteria{Query: "grun"}, []string{"3"}},
		{"album is not searched", Criteria{Query: "nevermind"}, []string{}},
		{"difficulty filter", Criteria{Difficulty: &hard}, []string{"2"}},
		{"combined filters", Criteria{Query: "pearl", Status: &mastered}, []string{"3"}},
		{"no match", Criteria{Status: &notStarted}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(songs, tt.criteria))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSort(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2, t3 := t1.Add(day), t1.Add(2*day)
	songs := []models.Song{
		song("b", "breed", "Nirvana", "Nevermind", "", t2),
		song("c", "Come As You Are", "Nirvana", "Nevermind", "", t3),
		song("a", "About a Girl", "Nirvana", "Bleach", "", t1),
	}

	t.Run("recently added is newest first", func(t *testing.T) {
		got := ids(Sort(songs, SortRecentlyAdded))
		if !slices.Equal(got, []string{"c", "b", "a"}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("title ascending ignores case", func(t *testing.T) {
		got := ids(Sort(songs, SortTitle))
		if !slices.Equal(got, []string{"a", "b", "c"}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("equal keys are stable", func(t *testing.T) {
		got := ids(Sort(songs, SortArtist))
		if !slices.Equal(got, []string{"b", "c", "a"}) {
			t.Errorf("got %v", got)
		}

		got = ids(Sort(songs, SortAlbum))
		if !slices.Equal(got, []string{"a", "b", "c"}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("accented titles collate with their base letter", func(t *testing.T) {
		in := []models.Song{
			song("z", "Zebra", "", "", "", t1),
			song("e", "Éclair", "", "", "", t1),
			song("f", "Fade", "", "", "", t1),
		}
		got := ids(Sort(in, SortTitle))
		if !slices.Equal(got, []string{"e", "f", "z"}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		before := ids(songs)
		Sort(songs, SortTitle)
		if !slices.Equal(ids(songs), before) {
			t.Error("Sort mutated its input")
		}
	})
}

func TestSortKey(t *testing.T) {
	if SortAlbum.Next() != SortRecentlyAdded {
		t.Error("sort key should wrap")
	}
	for _, k := range SortKeys {
		parsed, err := ParseSortKey(k.String())
		if err != nil || parsed != k {
			t.Errorf("ParseSortKey(%q) = %v, %v", k.String(), parsed, err)
		}
	}
	if _, err := ParseSortKey("bpm"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestRecent(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	var songs []models.Song
	offsets := []time.Duration{0, 23 * time.Hour, 25 * time.Hour, 3 * day, 10 * day, 30 * day, -2 * time.Hour}
	for i, off := range offsets {
		songs = append(songs, song(string(rune('a'+i)), "Song", "Artist", "", "", now.Add(-off)))
	}

	got := Recent(songs, now, 0)
	if len(got) != DefaultRecentLimit {
		t.Fatalf("expected %d entries, got %d", DefaultRecentLimit, len(got))
	}

	wantIDs := []string{"g", "a", "b", "c", "d"}
	wantLabels := []string{"Today", "Today", "Today", "1 day ago", "3 days ago"}
	for i, e := range got {
		if e.Song.ID != wantIDs[i] {
			t.Errorf("entry %d: expected %s, got %s", i, wantIDs[i], e.Song.ID)
		}
		if e.Label != wantLabels[i] {
			t.Errorf("entry %d: expected label %q, got %q", i, wantLabels[i], e.Label)
		}
	}

	if n := len(Recent(songs, now, 2)); n != 2 {
		t.Errorf("expected limit 2, got %d", n)
	}
	if n := len(Recent(nil, now, 5)); n != 0 {
		t.Errorf("expected empty result, got %d", n)
	}
}

func TestDaysAgoLabel(t *testing.T) {
	tests := map[int]string{0: "Today", 1: "1 day ago", 2: "2 days ago", 45: "45 days ago"}
	for days, want := range tests {
		if got := DaysAgoLabel(days); got != want {
			t.Errorf("DaysAgoLabel(%d) = %q, want %q", days, got, want)
		}
	}
}

func TestHighlighter(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var songs []models.Song
	for i := range 10 {
		songs = append(songs, song(string(rune('a'+i)), "Song", "Artist", "", "", base))
	}

	t.Run("samples up to the limit without repeats", func(t *testing.T) {
		h := NewHighlighter(6, rand.New(rand.NewPCG(1, 2)))
		got := ids(h.Sample(songs, 1))
		if len(got) != 6 {
			t.Fatalf("expected 6 highlights, got %d", len(got))
		}
		seen := map[string]bool{}
		for _, id := range got {
			if seen[id] {
				t.Errorf("duplicate highlight %s", id)
			}
			seen[id] = true
		}
	})

	t.Run("stable until version changes", func(t *testing.T) {
		h := NewHighlighter(3, rand.New(rand.NewPCG(7, 7)))
		first := ids(h.Sample(songs, 1))
		for range 5 {
			if again := ids(h.Sample(songs, 1)); !slices.Equal(first, again) {
				t.Fatalf("sample changed without a version change: %v vs %v", first, again)
			}
		}

		changed := false
		for v := uint64(2); v < 20; v++ {
			if !slices.Equal(first, ids(h.Sample(songs, v))) {
				changed = true
				break
			}
		}
		if !changed {
			t.Error("expected a new sample after version changes")
		}
	})

	t.Run("reflects edits to sampled songs", func(t *testing.T) {
		h := NewHighlighter(10, rand.New(rand.NewPCG(3, 4)))
		h.Sample(songs, 1)

		edited := slices.Clone(songs)
		edited[0].Status = models.Mastered
		for _, s := range h.Sample(edited, 1) {
			if s.ID == "a" && s.Status != models.Mastered {
				t.Error("expected the edited song state")
			}
		}
	})

	t.Run("small collections", func(t *testing.T) {
		h := NewHighlighter(0, nil)
		if got := h.Sample(songs[:2], 1); len(got) != 2 {
			t.Errorf("expected 2, got %d", len(got))
		}
		if got := h.Sample(nil, 2); len(got) != 0 {
			t.Errorf("expected 0, got %d", len(got))
		}
	})
}

func TestStats(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := models.NewSong("1", models.Candidate{Title: "Breed", Artist: "Nirvana"}, base, models.KnownStructures)
	b.Sections = []string{"Chorus", "Intro"}
	b.Status = models.InProgress
	l := song("2", "Lithium", "Nirvana", "", "", base.Add(day))
	l.Status = models.Mastered
	l.Difficulty = models.Hard

	sum := Stats([]models.Song{b, l})
	if sum.Total != 2 {
		t.Errorf("expected total 2, got %d", sum.Total)
	}
	if sum.ByStatus[models.InProgress] != 1 || sum.ByStatus[models.Mastered] != 1 || sum.ByStatus[models.NotStarted] != 0 {
		t.Errorf("unexpected status counts %v", sum.ByStatus)
	}
	if sum.ByDifficulty[models.Medium] != 1 || sum.ByDifficulty[models.Hard] != 1 {
		t.Errorf("unexpected difficulty counts %v", sum.ByDifficulty)
	}
	if sum.Sections != 10 {
		t.Errorf("expected 10 sections, got %d", sum.Sections)
	}
	// Chorus appears twice in the structure
	if sum.CompletedSections != 3 {
		t.Errorf("expected 3 completed, got %d", sum.CompletedSections)
	}
	if sum.Completion() != 0.3 {
		t.Errorf("expected completion 0.3, got %v", sum.Completion())
	}

	if Progress(b) != 3.0/9.0 {
		t.Errorf("unexpected progress %v", Progress(b))
	}
	if Progress(models.Song{}) != 0 {
		t.Error("empty structure should have zero progress")
	}
	if (Summary{}).Completion() != 0 {
		t.Error("empty summary should have zero completion")
	}
}

func TestStatusProgress(t *testing.T) {
	if StatusProgress(models.NotStarted) != 0.25 || StatusProgress(models.InProgress) != 0.5 || StatusProgress(models.Mastered) != 1 {
		t.Error("unexpected status progress widths")
	}
}

func TestContinueTarget(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := song("a", "A", "X", "", "", base)
	b := song("b", "B", "X", "", "", base.Add(day))
	c := song("c", "C", "X", "", "", base.Add(2*day))

	if _, ok := ContinueTarget(nil); ok {
		t.Error("expected no target for empty collection")
	}
	if got, _ := ContinueTarget([]models.Song{a, b, c}); got.ID != "a" {
		t.Errorf("expected first song fallback, got %s", got.ID)
	}

	a.Status = models.InProgress
	b.Status = models.InProgress
	if got, _ := ContinueTarget([]models.Song{a, b, c}); got.ID != "b" {
		t.Errorf("expected most recent in progress song, got %s", got.ID)
	}
}
