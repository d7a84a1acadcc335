package collection

import (
	"strings"

	"github.com/desertthunder/woodshed/internal/models"
)

// Criteria selects songs for the library view. A nil Status or Difficulty means "All".
type Criteria struct {
	Query      string
	Status     *models.Status
	Difficulty *models.Difficulty
}

// Matches reports whether song passes every criterion.
func (c Criteria) Matches(song models.Song) bool {
	if q := strings.ToLower(c.Query); q != "" {
		if !strings.Contains(strings.ToLower(song.Title), q) &&
			!strings.Contains(strings.ToLower(song.Artist), q) &&
			!strings.Contains(strings.ToLower(song.Genre), q) {
			return false
		}
	}
	if c.Status != nil && *c.Status != song.Status {
		return false
	}
	if c.Difficulty != nil && *c.Difficulty != song.Difficulty {
		return false
	}
	return true
}

// Filter returns the songs matching c in their original relative order.
func Filter(songs []models.Song, c Criteria) []models.Song {
	out := make([]models.Song, 0, len(songs))
	for _, song := range songs {
		if c.Matches(song) {
			out = append(out, song)
		}
	}
	return out
}
