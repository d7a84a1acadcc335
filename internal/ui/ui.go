package ui

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/woodshed/internal/collection"
	"github.com/desertthunder/woodshed/internal/models"
	"github.com/desertthunder/woodshed/internal/shared"
	"github.com/desertthunder/woodshed/internal/tasks"
)

// ActivityReader reads the session journal for the Insights tab.
type ActivityReader interface {
	List(criteria map[string]any) ([]*models.Activity, error)
	CountByKind() (map[string]int, error)
}

// Deps holds everything the TUI talks to.
type Deps struct {
	Store    *collection.Store
	Searcher *tasks.Searcher
	Activity ActivityReader
	Exporter *tasks.Exporter
	Config   shared.Config
	Logger   *log.Logger

	Now     func() time.Time   // defaults to time.Now
	OpenURL func(string) error // defaults to shared.OpenBrowser
	Rand    *rand.Rand         // highlight sampling, random when nil
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	store    *collection.Store
	searcher *tasks.Searcher
	activity ActivityReader
	exporter *tasks.Exporter
	cfg      shared.Config
	logger   *log.Logger
	now      func() time.Time
	openURL  func(string) error

	tab      Tab
	width    int
	height   int
	keys     keyMap
	help     help.Model
	showHelp bool

	pending     []collection.Event
	unsubscribe func()

	notice         *notification
	noticeSeq      int
	noticeDuration time.Duration

	// Search
	searchInput textinput.Model
	results     list.Model
	searching   bool
	spinner     spinner.Model
	lastTerm    string

	// Library
	queryInput  textinput.Model
	library     list.Model
	statusF     *models.Status
	difficultyF *models.Difficulty
	sortKey     collection.SortKey

	// Home
	homeCursor  int
	highlighter *collection.Highlighter

	// Progress
	focusID       string
	sectionCursor int
	notes         textarea.Model
	editingNotes  bool
	sectionInput  textinput.Model

	// Insights
	entries     []*models.Activity
	counts      map[string]int
	activityErr error

	// Profile
	exporting bool
	export    *tasks.BulkExportResult
	exportErr error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.OpenURL == nil {
		deps.OpenURL = shared.OpenBrowser
	}
	if deps.Store == nil {
		deps.Store = collection.New()
	}

	search := textinput.New()
	search.Placeholder = "Search songs or artists"
	search.CharLimit = 120
	search.Focus()

	query := textinput.New()
	query.Placeholder = "Filter by title, artist or genre"
	query.CharLimit = 120

	section := textinput.New()
	section.Placeholder = "Section name, e.g. Solo"
	section.CharLimit = 60

	notes := textarea.New()
	notes.Placeholder = "Practice notes"
	notes.ShowLineNumbers = false
	notes.SetHeight(4)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:            ctx,
		store:          deps.Store,
		searcher:       deps.Searcher,
		activity:       deps.Activity,
		exporter:       deps.Exporter,
		cfg:            deps.Config,
		logger:         deps.Logger,
		now:            deps.Now,
		openURL:        deps.OpenURL,
		tab:            HomeTab,
		keys:           newKeyMap(),
		help:           help.New(),
		noticeDuration: deps.Config.Notifications.Duration(),
		searchInput:    search,
		queryInput:     query,
		notes:          notes,
		sectionInput:   section,
		spinner:        sp,
		results:        newList("Results", nil, 0, 0),
		library:        newList("Liked Songs", nil, 0, 0),
		highlighter:    collection.NewHighlighter(deps.Config.Library.HighlightLimit, deps.Rand),
	}
	if key, err := collection.ParseSortKey(deps.Config.Library.DefaultSort); err == nil {
		m.sortKey = key
	} else {
		m.logger.Warn("ignoring library sort", "err", err)
	}
	m.unsubscribe = m.store.Subscribe(func(e collection.Event) {
		m.pending = append(m.pending, e)
	})
	m.refreshLibrary()
	return m
}

// Close detaches the model from the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Tab reports the active tab.
func (m *Model) Tab() Tab { return m.tab }

// Init starts the cursor blink for the focused input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, tea.Batch(cmd, m.drainEvents())
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.SetSize(msg.Width-4, max(msg.Height-12, 4))
		m.library.SetSize(msg.Width-4, max(msg.Height-12, 4))
		m.notes.SetWidth(max(msg.Width-8, 20))
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case Msg:
		return m.handleMsg(msg)

	case spinner.TickMsg:
		if !m.searching {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}

	return m.updateFocused(msg)
}

func (m *Model) handleMsg(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgSearchDone:
		return m.handleSearchDone(msg.data.(tasks.SearchOutcome))
	case MsgDismissNotification:
		m.dismiss(msg.data.(int))
	case MsgActivityLoaded:
		d := msg.data.(activityData)
		m.entries, m.counts, m.activityErr = d.entries, d.counts, d.err
	case MsgExportDone:
		d := msg.data.(exportData)
		m.exporting = false
		m.export, m.exportErr = d.result, d.err
		if d.err != nil {
			return m.notify(noticeError, "Export failed: "+d.err.Error())
		}
		return m.notify(noticeSuccess, "Exported to "+d.result.OutputDirectory)
	case MsgLinkOpened:
		if err, _ := msg.data.(error); err != nil {
			return m.notify(noticeError, "Could not open link: "+err.Error())
		}
	}
	return nil
}

// editing reports whether a text input currently owns the keyboard.
func (m *Model) editing() bool {
	switch m.tab {
	case SearchTab:
		return m.searchInput.Focused()
	case LibraryTab:
		return m.queryInput.Focused()
	case ProgressTab:
		return m.editingNotes || m.sectionInput.Focused()
	}
	return false
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.editing() {
		return m.handleEditingKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.help):
		m.showHelp = !m.showHelp
		return nil
	case key.Matches(msg, m.keys.nextTab):
		return m.switchTab(m.tab.Next())
	case key.Matches(msg, m.keys.prevTab):
		return m.switchTab(m.tab.Prev())
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] < '1'+byte(len(Tabs)) {
		return m.switchTab(Tabs[s[0]-'1'])
	}

	switch m.tab {
	case HomeTab:
		return m.handleHomeKeys(msg)
	case SearchTab:
		return m.handleSearchKeys(msg)
	case LibraryTab:
		return m.handleLibraryKeys(msg)
	case ProgressTab:
		return m.handleProgressKeys(msg)
	case ProfileTab:
		return m.handleProfileKeys(msg)
	}
	return nil
}

func (m *Model) handleEditingKey(msg tea.KeyMsg) tea.Cmd {
	switch m.tab {
	case SearchTab:
		switch msg.Type {
		case tea.KeyEnter:
			m.searchInput.Blur()
			return m.startSearch(m.searchInput.Value())
		case tea.KeyEsc:
			m.searchInput.Blur()
			return nil
		}
	case LibraryTab:
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.queryInput.Blur()
			return nil
		}
	case ProgressTab:
		if m.sectionInput.Focused() {
			switch msg.Type {
			case tea.KeyEnter:
				m.submitSection()
				return nil
			case tea.KeyEsc:
				m.closeSectionInput()
				return nil
			}
		} else if msg.Type == tea.KeyEsc {
			m.saveNotes()
			return nil
		}
	}

	cmd := m.updateFocused(msg)
	if m.tab == LibraryTab {
		m.refreshLibrary()
	}
	return cmd
}

// updateFocused forwards msg to the component that currently has focus.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.tab {
	case SearchTab:
		if m.searchInput.Focused() {
			m.searchInput, cmd = m.searchInput.Update(msg)
		} else {
			m.results, cmd = m.results.Update(msg)
		}
	case LibraryTab:
		if m.queryInput.Focused() {
			m.queryInput, cmd = m.queryInput.Update(msg)
		} else {
			m.library, cmd = m.library.Update(msg)
		}
	case ProgressTab:
		if m.sectionInput.Focused() {
			m.sectionInput, cmd = m.sectionInput.Update(msg)
		} else if m.editingNotes {
			m.notes, cmd = m.notes.Update(msg)
		}
	}
	return cmd
}

func (m *Model) switchTab(t Tab) tea.Cmd {
	if m.editingNotes {
		m.saveNotes()
	}
	m.closeSectionInput()
	m.tab = t

	switch t {
	case LibraryTab:
		m.refreshLibrary()
	case ProgressTab:
		m.ensureFocus()
	case InsightsTab:
		return m.loadActivity()
	}
	return nil
}

// drainEvents turns store events collected during the last update into UI reactions.
func (m *Model) drainEvents() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	events := m.pending
	m.pending = nil

	var cmds []tea.Cmd
	for _, e := range events {
		switch e.Kind {
		case collection.EventSongAdded:
			m.tab = SearchTab
			m.searchInput.Blur()
			cmds = append(cmds, m.notify(noticeSuccess, textAdded))
		case collection.EventDuplicateRejected:
			cmds = append(cmds, m.notify(noticeError, textDuplicate))
		}
		m.logger.Debug("store event", "kind", e.Kind, "song", e.Song.ID, "detail", e.Detail)
	}
	m.refreshLibrary()
	return tea.Batch(cmds...)
}

func (m *Model) loadActivity() tea.Cmd {
	if m.activity == nil {
		return nil
	}
	reader := m.activity
	return func() tea.Msg {
		entries, err := reader.List(map[string]any{"limit": 10})
		if err != nil {
			return activityLoadedMsg(nil, nil, err)
		}
		counts, err := reader.CountByKind()
		return activityLoadedMsg(entries, counts, err)
	}
}

func (m *Model) openLinks(song models.Song) tea.Cmd {
	open := m.openURL
	links := song.Links.All()
	return func() tea.Msg {
		for _, l := range links {
			if err := open(l[1]); err != nil {
				return linkOpenedMsg(err)
			}
		}
		return linkOpenedMsg(nil)
	}
}
