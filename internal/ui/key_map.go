package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	nextTab     key.Binding
	prevTab     key.Binding
	up          key.Binding
	down        key.Binding
	prevSong    key.Binding
	nextSong    key.Binding
	enter       key.Binding
	back        key.Binding
	search      key.Binding
	add         key.Binding
	status      key.Binding
	difficulty  key.Binding
	notes       key.Binding
	addSection  key.Binding
	dropSection key.Binding
	toggle      key.Binding
	open        key.Binding
	sort        key.Binding
	statusF     key.Binding
	difficultyF key.Binding
	cont        key.Binding
	export      key.Binding
	help        key.Binding
	quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		nextTab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		prevTab:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		prevSong:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev song")),
		nextSong:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next song")),
		enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		status:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		difficulty:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		notes:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes")),
		addSection:  key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add section")),
		dropSection: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "remove last")),
		toggle:      key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		open:        key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "open links")),
		sort:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort")),
		statusF:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter")),
		difficultyF: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "difficulty filter")),
		cont:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue practice")),
		export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.nextTab, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.nextTab, k.prevTab, k.up, k.down, k.enter, k.back},
		{k.search, k.add, k.sort, k.statusF, k.difficultyF},
		{k.status, k.difficulty, k.notes, k.addSection, k.dropSection, k.toggle},
		{k.prevSong, k.nextSong, k.open, k.cont, k.export, k.quit},
	}
}

// tabKeys returns the bindings shown under the active tab.
func (k keyMap) tabKeys(t Tab) []key.Binding {
	switch t {
	case HomeTab:
		return []key.Binding{k.up, k.down, k.enter, k.cont, k.quit}
	case SearchTab:
		return []key.Binding{k.search, k.add, k.up, k.down, k.back, k.quit}
	case LibraryTab:
		return []key.Binding{k.search, k.enter, k.sort, k.statusF, k.difficultyF, k.status, k.difficulty, k.quit}
	case ProgressTab:
		return []key.Binding{k.toggle, k.addSection, k.dropSection, k.notes, k.status, k.difficulty, k.prevSong, k.nextSong, k.open}
	case ProfileTab:
		return []key.Binding{k.export, k.quit}
	default:
		return []key.Binding{k.nextTab, k.quit}
	}
}
