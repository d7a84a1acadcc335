package collection

import (
	"math/rand/v2"

	"github.com/desertthunder/woodshed/internal/models"
)

// DefaultHighlightLimit is the number of songs shown in the Home tab highlights.
const DefaultHighlightLimit = 6

// Highlighter keeps a random sample of the collection that only changes when membership does.
//
// Edits to a song already in the sample are reflected on the next call; the chosen ids stay put.
type Highlighter struct {
	limit   int
	rng     *rand.Rand
	version uint64
	primed  bool
	ids     []string
}

// NewHighlighter creates a highlighter that samples up to limit songs using rng.
// A nil rng uses a randomly seeded source.
func NewHighlighter(limit int, rng *rand.Rand) *Highlighter {
	if limit <= 0 {
		limit = DefaultHighlightLimit
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Highlighter{limit: limit, rng: rng}
}

// Sample returns the current highlight songs, resampling when version differs from the last call.
func (h *Highlighter) Sample(songs []models.Song, version uint64) []models.Song {
	if !h.primed || version != h.version {
		h.resample(songs)
		h.version = version
		h.primed = true
	}

	byID := make(map[string]models.Song, len(songs))
	for _, s := range songs {
		byID[s.ID] = s
	}

	out := make([]models.Song, 0, len(h.ids))
	for _, id := range h.ids {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

func (h *Highlighter) resample(songs []models.Song) {
	perm := h.rng.Perm(len(songs))
	n := min(h.limit, len(songs))

	h.ids = make([]string, n)
	for i := range n {
		h.ids[i] = songs[perm[i]].ID
	}
}
