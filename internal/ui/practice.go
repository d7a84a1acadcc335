package ui

import (
	"path/filepath"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/woodshed/internal/collection"
	"github.com/desertthunder/woodshed/internal/models"
	"github.com/desertthunder/woodshed/internal/tasks"
)

// focusSong switches to the Progress tab with id selected.
func (m *Model) focusSong(id string) tea.Cmd {
	m.focusID = id
	m.sectionCursor = 0
	return m.switchTab(ProgressTab)
}

// focused returns the song shown on the Progress tab.
func (m *Model) focused() (models.Song, bool) {
	if m.focusID == "" {
		return models.Song{}, false
	}
	return m.store.Get(m.focusID)
}

// ensureFocus falls back to the first song when nothing (or a missing song) is focused.
func (m *Model) ensureFocus() {
	if _, ok := m.focused(); ok {
		return
	}
	songs := m.store.Songs()
	if len(songs) == 0 {
		m.focusID = ""
		return
	}
	m.focusID = songs[0].ID
	m.sectionCursor = 0
}

// stepSong moves focus by delta through the collection in insertion order, wrapping.
func (m *Model) stepSong(delta int) {
	songs := m.store.Songs()
	if len(songs) == 0 {
		return
	}
	idx := slices.IndexFunc(songs, func(s models.Song) bool { return s.ID == m.focusID })
	idx = (max(idx, 0) + delta + len(songs)) % len(songs)
	m.focusID = songs[idx].ID
	m.sectionCursor = 0
}

func (m *Model) saveNotes() {
	m.editingNotes = false
	m.notes.Blur()
	if song, ok := m.focused(); ok && song.Notes != m.notes.Value() {
		m.store.UpdateNotes(song.ID, m.notes.Value())
	}
}

// submitSection appends the typed name to the focused song. Blank names are ignored by the store.
func (m *Model) submitSection() {
	if song, ok := m.focused(); ok && m.store.AppendSection(song.ID, m.sectionInput.Value()) {
		m.sectionCursor = len(song.Structure)
	}
	m.closeSectionInput()
}

func (m *Model) closeSectionInput() {
	m.sectionInput.Blur()
	m.sectionInput.Reset()
}

func (m *Model) handleProgressKeys(msg tea.KeyMsg) tea.Cmd {
	song, ok := m.focused()
	if !ok {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.up):
		m.sectionCursor = max(m.sectionCursor-1, 0)
	case key.Matches(msg, m.keys.down):
		m.sectionCursor = min(m.sectionCursor+1, max(len(song.Structure)-1, 0))
	case key.Matches(msg, m.keys.toggle):
		if m.sectionCursor < len(song.Structure) {
			name := song.Structure[m.sectionCursor]
			m.store.ToggleSection(song.ID, name, !song.IsComplete(name))
		}
	case key.Matches(msg, m.keys.addSection):
		m.sectionInput.Reset()
		return m.sectionInput.Focus()
	case key.Matches(msg, m.keys.dropSection):
		if m.store.RemoveLastSection(song.ID) {
			m.sectionCursor = min(m.sectionCursor, max(len(song.Structure)-2, 0))
		}
	case key.Matches(msg, m.keys.status):
		m.store.UpdateStatus(song.ID, song.Status.Next())
	case key.Matches(msg, m.keys.difficulty):
		m.store.UpdateDifficulty(song.ID, song.Difficulty.Next())
	case key.Matches(msg, m.keys.notes):
		m.editingNotes = true
		m.notes.SetValue(song.Notes)
		return m.notes.Focus()
	case key.Matches(msg, m.keys.prevSong):
		m.stepSong(-1)
	case key.Matches(msg, m.keys.nextSong):
		m.stepSong(1)
	case key.Matches(msg, m.keys.open):
		return m.openLinks(song)
	case key.Matches(msg, m.keys.back):
		return m.switchTab(LibraryTab)
	}
	return nil
}

// homeSongs is the list the Home cursor moves over: recent songs then highlights.
func (m *Model) homeSongs() []models.Song {
	songs := m.store.Songs()
	out := make([]models.Song, 0)
	for _, r := range collection.Recent(songs, m.now(), m.cfg.Library.RecentLimit) {
		out = append(out, r.Song)
	}
	return append(out, m.highlighter.Sample(songs, m.store.Version())...)
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) tea.Cmd {
	songs := m.homeSongs()
	switch {
	case key.Matches(msg, m.keys.up):
		m.homeCursor = max(m.homeCursor-1, 0)
	case key.Matches(msg, m.keys.down):
		m.homeCursor = min(m.homeCursor+1, max(len(songs)-1, 0))
	case key.Matches(msg, m.keys.enter):
		if m.homeCursor < len(songs) {
			return m.focusSong(songs[m.homeCursor].ID)
		}
	case key.Matches(msg, m.keys.cont):
		if song, ok := collection.ContinueTarget(m.store.Songs()); ok {
			return m.focusSong(song.ID)
		}
		return m.notify(noticeInfo, "Add a song from Search to start practicing")
	case key.Matches(msg, m.keys.search):
		m.tab = SearchTab
		return m.searchInput.Focus()
	}
	return nil
}

func (m *Model) handleProfileKeys(msg tea.KeyMsg) tea.Cmd {
	if !key.Matches(msg, m.keys.export) || m.exporting {
		return nil
	}
	if m.exporter == nil {
		return m.notify(noticeError, "Export is not available")
	}

	m.exporting = true
	exporter, ctx := m.exporter, m.ctx
	songs := m.store.Songs()
	opts := tasks.BulkExportOpts{
		OutputDir: m.exportDir(),
		Title:     m.sheetTitle(),
	}
	return func() tea.Msg {
		result, err := exporter.Export(ctx, nil, songs, opts)
		return exportDoneMsg(result, err)
	}
}

func (m *Model) exportDir() string {
	if m.cfg.Library.ExportDir == "" {
		return ""
	}
	return filepath.Join(m.cfg.Library.ExportDir, m.now().Format("20060102-150405"))
}

func (m *Model) sheetTitle() string {
	if m.cfg.Profile.Name == "" {
		return "Practice Sheet"
	}
	return m.cfg.Profile.Name + "'s Practice Sheet"
}
