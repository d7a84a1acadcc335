package collection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/woodshed/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey orders the library view.
type SortKey int

const (
	SortRecentlyAdded SortKey = iota
	SortTitle
	SortArtist
	SortAlbum
)

// SortKeys lists every [SortKey] in the order the UI cycles through them.
var SortKeys = []SortKey{SortRecentlyAdded, SortTitle, SortArtist, SortAlbum}

func (k SortKey) String() string {
	switch k {
	case SortRecentlyAdded:
		return "Recently Added"
	case SortTitle:
		return "Title"
	case SortArtist:
		return "Artist"
	case SortAlbum:
		return "Album"
	default:
		return ""
	}
}

// Next cycles to the following key.
func (k SortKey) Next() SortKey { return (k + 1) % SortKey(len(SortKeys)) }

// ParseSortKey accepts display names and short forms like "recent".
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "recentlyadded", "recent", "added", "":
		return SortRecentlyAdded, nil
	case "title":
		return SortTitle, nil
	case "artist":
		return SortArtist, nil
	case "album":
		return SortAlbum, nil
	}
	return 0, fmt.Errorf("unknown sort key %q", s)
}

// Sort returns a new slice ordered by key. Equal keys keep their input order.
//
// RecentlyAdded is newest first. Title, Artist, and Album ascend using English collation.
func Sort(songs []models.Song, key SortKey) []models.Song {
	out := slices.Clone(songs)

	if key == SortRecentlyAdded {
		slices.SortStableFunc(out, func(a, b models.Song) int {
			return b.DateAdded.Compare(a.DateAdded)
		})
		return out
	}

	field := func(s models.Song) string { return s.Title }
	switch key {
	case SortArtist:
		field = func(s models.Song) string { return s.Artist }
	case SortAlbum:
		field = func(s models.Song) string { return s.Album }
	}

	col := collate.New(language.English, collate.IgnoreCase)
	slices.SortStableFunc(out, func(a, b models.Song) int {
		return col.CompareString(field(a), field(b))
	})
	return out
}
