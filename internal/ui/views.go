package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/woodshed/internal/collection"
	"github.com/desertthunder/woodshed/internal/models"
)

const barWidth = 24

// View renders the tab bar, the active panel, the notification and help.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(renderTabs(m.tab))
	b.WriteString("\n\n")

	switch m.tab {
	case HomeTab:
		b.WriteString(m.renderHome())
	case SearchTab:
		b.WriteString(m.renderSearch())
	case LibraryTab:
		b.WriteString(m.renderLibrary())
	case ProgressTab:
		b.WriteString(m.renderProgress())
	case InsightsTab:
		b.WriteString(m.renderInsights())
	case ProfileTab:
		b.WriteString(m.renderProfile())
	}

	if m.notice != nil {
		b.WriteString("\n\n")
		b.WriteString(m.notice.View())
	}

	b.WriteString("\n\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(append(m.keys.tabKeys(m.tab), m.keys.help)))
	}
	return b.String()
}

func (m *Model) renderHome() string {
	songs := m.store.Songs()
	summary := collection.Stats(songs)

	var b strings.Builder
	b.WriteString(styles.title.Render("Woodshed"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d songs • %d mastered • %d in progress\n\n",
		summary.Total, summary.ByStatus[models.Mastered], summary.ByStatus[models.InProgress])

	if len(songs) == 0 {
		b.WriteString(styles.muted.Render("Nothing here yet. Press / to search for a song."))
		return b.String()
	}

	cursor := 0
	line := func(song models.Song, suffix string) {
		prefix := "  "
		text := fmt.Sprintf("%s - %s", song.Title, song.Artist)
		if cursor == m.homeCursor {
			prefix = "> "
			text = styles.selected.Render(text)
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, text, suffix)
		cursor++
	}

	b.WriteString(styles.ok.Render("Recently Added"))
	b.WriteString("\n")
	for _, r := range collection.Recent(songs, m.now(), m.cfg.Library.RecentLimit) {
		line(r.Song, styles.muted.Render(r.Label))
	}

	b.WriteString("\n")
	b.WriteString(styles.ok.Render("Highlights"))
	b.WriteString("\n")
	for _, song := range m.highlighter.Sample(songs, m.store.Version()) {
		line(song, styles.Status(song.Status))
	}

	if target, ok := collection.ContinueTarget(songs); ok {
		fmt.Fprintf(&b, "\n%s %s - %s", styles.help.Render("c: continue practice →"), target.Title, target.Artist)
	}
	return b.String()
}

func (m *Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	switch {
	case m.searching:
		fmt.Fprintf(&b, "%s Searching for %q...", m.spinner.View(), m.lastTerm)
	case len(m.results.Items()) == 0:
		b.WriteString(styles.muted.Render("Type a song or artist and press enter."))
	default:
		b.WriteString(m.results.View())
		if item, ok := m.results.SelectedItem().(candidateItem); ok && item.candidate.Artwork != "" {
			b.WriteString("\n")
			b.WriteString(styles.muted.Render("Artwork: " + item.candidate.Artwork))
		}
	}
	return b.String()
}

func (m *Model) renderLibrary() string {
	status, difficulty := "All", "All"
	if m.statusF != nil {
		status = m.statusF.String()
	}
	if m.difficultyF != nil {
		difficulty = m.difficultyF.String()
	}

	filters := styles.muted.Render(fmt.Sprintf("Status: %s • Difficulty: %s • Sort: %s", status, difficulty, m.sortKey))

	body := m.library.View()
	if len(m.library.Items()) == 0 {
		body = styles.muted.Render("No songs match.")
	}
	return fmt.Sprintf("%s\n%s\n\n%s", m.queryInput.View(), filters, body)
}

func (m *Model) renderProgress() string {
	song, ok := m.focused()
	if !ok {
		return styles.muted.Render("Pick a song from the Library or Home tab to track progress.")
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("%s - %s", song.Title, song.Artist)))
	b.WriteString("\n")
	if song.Album != "" {
		fmt.Fprintf(&b, "%s\n", styles.muted.Render(song.Album))
	}
	fmt.Fprintf(&b, "Status: %s  Difficulty: %s\n", styles.Status(song.Status), song.Difficulty)
	fmt.Fprintf(&b, "%s\n", styles.StatusBar(song.Status, collection.StatusProgress(song.Status), barWidth))
	fmt.Fprintf(&b, "%s %d%%\n\n", styles.Bar(collection.Progress(song), barWidth, styles.accent), int(collection.Progress(song)*100))

	for i, name := range song.Structure {
		box := "[ ]"
		if song.IsComplete(name) {
			box = styles.ok.Render("[x]")
		}
		label := name
		prefix := "  "
		if i == m.sectionCursor {
			prefix = "> "
			label = styles.selected.Render(name)
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, box, label)
	}
	if m.sectionInput.Focused() {
		fmt.Fprintf(&b, "%s\n%s\n", m.sectionInput.View(), styles.help.Render("enter: add section • esc: cancel"))
	}

	b.WriteString("\n")
	if m.editingNotes {
		b.WriteString(m.notes.View())
		b.WriteString("\n")
		b.WriteString(styles.help.Render("esc: save notes"))
	} else if song.Notes != "" {
		b.WriteString(lipgloss.NewStyle().Italic(true).Render(song.Notes))
	} else {
		b.WriteString(styles.muted.Render("No notes yet. Press n to write some."))
	}

	b.WriteString("\n\n")
	for _, l := range song.Links.All() {
		fmt.Fprintf(&b, "%s %s\n", styles.muted.Render(l[0]+":"), l[1])
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderInsights() string {
	summary := collection.Stats(m.store.Songs())

	var b strings.Builder
	b.WriteString(styles.title.Render("Insights"))
	b.WriteString("\n")

	for _, s := range models.Statuses {
		ratio := 0.0
		if summary.Total > 0 {
			ratio = float64(summary.ByStatus[s]) / float64(summary.Total)
		}
		fmt.Fprintf(&b, "%-12s %s %d\n", s, styles.StatusBar(s, ratio, barWidth), summary.ByStatus[s])
	}
	fmt.Fprintf(&b, "%-12s %s %d/%d\n\n", "Sections", styles.Bar(summary.Completion(), barWidth, styles.accent),
		summary.CompletedSections, summary.Sections)

	for _, d := range models.Difficulties {
		fmt.Fprintf(&b, "%s: %d  ", d, summary.ByDifficulty[d])
	}
	b.WriteString("\n\n")

	b.WriteString(styles.ok.Render("Session activity"))
	b.WriteString("\n")
	switch {
	case m.activityErr != nil:
		b.WriteString(styles.err.Render("Could not load activity: " + m.activityErr.Error()))
	case len(m.entries) == 0:
		b.WriteString(styles.muted.Render("No activity yet."))
	default:
		for i := len(m.entries) - 1; i >= 0; i-- {
			a := m.entries[i]
			fmt.Fprintf(&b, "%s %-18s %s - %s %s\n",
				styles.muted.Render(a.CreatedAt().Format("15:04")), a.Kind(), a.Title(), a.Artist(),
				styles.muted.Render(a.Detail()))
		}
		b.WriteString(styles.muted.Render(countsLine(m.counts)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func countsLine(counts map[string]int) string {
	kinds := []collection.EventKind{
		collection.EventSongAdded,
		collection.EventDuplicateRejected,
		collection.EventStatusChanged,
		collection.EventSectionToggled,
	}
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s: %d", k, counts[k.String()]))
	}
	return strings.Join(parts, " • ")
}

func (m *Model) renderProfile() string {
	name := m.cfg.Profile.Name
	if name == "" {
		name = "Guitarist"
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(name))
	b.WriteString("\n")
	if m.cfg.Profile.Instrument != "" {
		fmt.Fprintf(&b, "Instrument: %s\n", m.cfg.Profile.Instrument)
	}
	summary := collection.Stats(m.store.Songs())
	fmt.Fprintf(&b, "Liked songs: %d\nMastered: %d\n\n", summary.Total, summary.ByStatus[models.Mastered])

	switch {
	case m.exporting:
		b.WriteString("Exporting...")
	case m.exportErr != nil:
		b.WriteString(styles.err.Render("Export failed: " + m.exportErr.Error()))
	case m.export != nil:
		fmt.Fprintf(&b, "%s %d/%d formats written to %s",
			styles.ok.Render("✓"), m.export.SuccessfulExports, len(m.export.Results), m.export.OutputDirectory)
	default:
		b.WriteString(styles.muted.Render("Press e to export your library."))
	}
	return b.String()
}
