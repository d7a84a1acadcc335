package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/woodshed/internal/collection"
	"github.com/desertthunder/woodshed/internal/models"
)

var (
	_ list.Item = candidateItem{}
	_ list.Item = songItem{}
)

// candidateItem wraps [models.Candidate] to implement [list.Item].
type candidateItem struct {
	candidate models.Candidate
}

func (i candidateItem) FilterValue() string { return i.candidate.Title }
func (i candidateItem) Title() string       { return i.candidate.Title }
func (i candidateItem) Description() string {
	desc := i.candidate.Artist
	if i.candidate.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.candidate.Album)
	}
	if i.candidate.Genre != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.candidate.Genre)
	}
	return desc
}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	return fmt.Sprintf("%s • %s • %s • %d%%",
		i.song.Artist,
		styles.Status(i.song.Status),
		i.song.Difficulty,
		int(collection.Progress(i.song)*100),
	)
}

func candidateItems(cs []models.Candidate) []list.Item {
	items := make([]list.Item, len(cs))
	for i, c := range cs {
		items[i] = candidateItem{candidate: c}
	}
	return items
}

func songItems(songs []models.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s}
	}
	return items
}

func newList(title string, items []list.Item, width, height int) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
