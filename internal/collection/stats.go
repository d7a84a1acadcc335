package collection

import "github.com/desertthunder/woodshed/internal/models"

// Summary aggregates the collection for the Insights tab.
type Summary struct {
	Total             int
	ByStatus          map[models.Status]int
	ByDifficulty      map[models.Difficulty]int
	Sections          int
	CompletedSections int
}

// Completion is the share of all structure sections marked complete.
func (s Summary) Completion() float64 {
	if s.Sections == 0 {
		return 0
	}
	return float64(s.CompletedSections) / float64(s.Sections)
}

// Stats counts songs per status and difficulty along with section totals.
func Stats(songs []models.Song) Summary {
	sum := Summary{
		Total:        len(songs),
		ByStatus:     make(map[models.Status]int, len(models.Statuses)),
		ByDifficulty: make(map[models.Difficulty]int, len(models.Difficulties)),
	}
	for _, st := range models.Statuses {
		sum.ByStatus[st] = 0
	}
	for _, d := range models.Difficulties {
		sum.ByDifficulty[d] = 0
	}

	for _, song := range songs {
		sum.ByStatus[song.Status]++
		sum.ByDifficulty[song.Difficulty]++
		sum.Sections += len(song.Structure)
		sum.CompletedSections += completedCount(song)
	}
	return sum
}

// Progress is the fraction of a song's structure marked complete.
func Progress(song models.Song) float64 {
	if len(song.Structure) == 0 {
		return 0
	}
	return float64(completedCount(song)) / float64(len(song.Structure))
}

// StatusProgress maps a status to the width of its progress bar.
func StatusProgress(status models.Status) float64 {
	switch status {
	case models.InProgress:
		return 0.5
	case models.Mastered:
		return 1
	default:
		return 0.25
	}
}

// completedCount counts structure positions whose name is marked complete,
// so a repeated "Chorus" counts once per occurrence.
func completedCount(song models.Song) int {
	n := 0
	for _, name := range song.Structure {
		if song.IsComplete(name) {
			n++
		}
	}
	return n
}

// ContinueTarget picks the song for "Continue Practice": the most recently added
// InProgress song, else the first song in the collection.
func ContinueTarget(songs []models.Song) (models.Song, bool) {
	if len(songs) == 0 {
		return models.Song{}, false
	}
	for _, song := range Sort(songs, SortRecentlyAdded) {
		if song.Status == models.InProgress {
			return song, true
		}
	}
	return songs[0], true
}
