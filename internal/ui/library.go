package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/woodshed/internal/collection"
	"github.com/desertthunder/woodshed/internal/models"
)

func (m *Model) criteria() collection.Criteria {
	return collection.Criteria{
		Query:      m.queryInput.Value(),
		Status:     m.statusF,
		Difficulty: m.difficultyF,
	}
}

// visibleSongs is the filtered, sorted library projection.
func (m *Model) visibleSongs() []models.Song {
	return collection.Sort(collection.Filter(m.store.Songs(), m.criteria()), m.sortKey)
}

func (m *Model) refreshLibrary() {
	idx := m.library.Index()
	m.library.SetItems(songItems(m.visibleSongs()))
	if n := len(m.library.Items()); n > 0 {
		m.library.Select(min(idx, n-1))
	}
}

// nextStatusFilter cycles All → Not Started → In Progress → Mastered → All.
func nextStatusFilter(cur *models.Status) *models.Status {
	if cur == nil {
		s := models.Statuses[0]
		return &s
	}
	if int(*cur) == len(models.Statuses)-1 {
		return nil
	}
	s := *cur + 1
	return &s
}

// nextDifficultyFilter cycles All → Easy → Medium → Hard → Expert → All.
func nextDifficultyFilter(cur *models.Difficulty) *models.Difficulty {
	if cur == nil {
		d := models.Difficulties[0]
		return &d
	}
	if int(*cur) == len(models.Difficulties)-1 {
		return nil
	}
	d := *cur + 1
	return &d
}

func (m *Model) selectedSong() (models.Song, bool) {
	item, ok := m.library.SelectedItem().(songItem)
	if !ok {
		return models.Song{}, false
	}
	return item.song, true
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.search):
		return m.queryInput.Focus()
	case key.Matches(msg, m.keys.back):
		m.queryInput.SetValue("")
		m.statusF, m.difficultyF = nil, nil
		m.refreshLibrary()
		return nil
	case key.Matches(msg, m.keys.sort):
		m.sortKey = m.sortKey.Next()
		m.refreshLibrary()
		return nil
	case key.Matches(msg, m.keys.statusF):
		m.statusF = nextStatusFilter(m.statusF)
		m.refreshLibrary()
		return nil
	case key.Matches(msg, m.keys.difficultyF):
		m.difficultyF = nextDifficultyFilter(m.difficultyF)
		m.refreshLibrary()
		return nil
	case key.Matches(msg, m.keys.enter):
		if song, ok := m.selectedSong(); ok {
			return m.focusSong(song.ID)
		}
		return nil
	case key.Matches(msg, m.keys.status):
		if song, ok := m.selectedSong(); ok {
			m.store.UpdateStatus(song.ID, song.Status.Next())
		}
		return nil
	case key.Matches(msg, m.keys.difficulty):
		if song, ok := m.selectedSong(); ok {
			m.store.UpdateDifficulty(song.ID, song.Difficulty.Next())
		}
		return nil
	}

	var cmd tea.Cmd
	m.library, cmd = m.library.Update(msg)
	return cmd
}
