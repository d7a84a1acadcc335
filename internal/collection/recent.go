package collection

import (
	"fmt"
	"time"

	"github.com/desertthunder/woodshed/internal/models"
)

// DefaultRecentLimit is the size of the Home tab activity list.
const DefaultRecentLimit = 5

// RecentEntry is a song with its age relative to a reference time.
type RecentEntry struct {
	Song    models.Song
	DaysAgo int
	Label   string
}

// Recent returns up to limit songs, newest first, labeled with how many whole days ago they were added.
// A non-positive limit uses [DefaultRecentLimit].
func Recent(songs []models.Song, now time.Time, limit int) []RecentEntry {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	sorted := Sort(songs, SortRecentlyAdded)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]RecentEntry, len(sorted))
	for i, song := range sorted {
		days := DaysBetween(song.DateAdded, now)
		out[i] = RecentEntry{Song: song, DaysAgo: days, Label: DaysAgoLabel(days)}
	}
	return out
}

// DaysBetween is floor((now - then) / 24h), never negative.
func DaysBetween(then, now time.Time) int {
	d := now.Sub(then)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// DaysAgoLabel renders "Today", "1 day ago", or "n days ago".
func DaysAgoLabel(days int) string {
	switch days {
	case 0:
		return "Today"
	case 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
