package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/woodshed/internal/shared"
	"github.com/desertthunder/woodshed/internal/tasks"
)

// startSearch numbers a new request and runs it off the update loop.
// Blank terms clear the results without contacting the catalog.
func (m *Model) startSearch(term string) tea.Cmd {
	term = strings.TrimSpace(term)
	m.lastTerm = term
	if term == "" {
		m.searching = false
		m.results.SetItems(nil)
		return nil
	}
	if m.searcher == nil {
		return m.notify(noticeError, textFailed+shared.ErrServiceUnavailable.Error())
	}

	gen := m.searcher.Begin()
	m.searching = true
	searcher, ctx := m.searcher, m.ctx

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return searchDoneMsg(searcher.Run(ctx, gen, term))
	})
}

// handleSearchDone applies an outcome unless a newer request has been issued since.
func (m *Model) handleSearchDone(o tasks.SearchOutcome) tea.Cmd {
	if m.searcher == nil || !m.searcher.IsCurrent(o.Generation) {
		m.logger.Debug("discarding stale search", "generation", o.Generation, "term", o.Term)
		return nil
	}

	m.searching = false
	m.results.SetItems(candidateItems(o.Results))
	m.results.ResetSelected()

	switch {
	case o.Failed():
		m.logger.Warn("search failed", "term", o.Term, "err", o.Err)
		return m.notify(noticeError, textFailed+searchErrorText(o.Err))
	case o.Empty():
		return m.notify(noticeInfo, textNoResults)
	}
	return nil
}

func searchErrorText(err error) string {
	if errors.Is(err, shared.ErrTimeout) {
		return "request timed out"
	}
	return err.Error()
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.search):
		return m.searchInput.Focus()
	case key.Matches(msg, m.keys.back):
		m.searchInput.SetValue("")
		return m.searchInput.Focus()
	case key.Matches(msg, m.keys.add), key.Matches(msg, m.keys.enter):
		m.addSelected()
		return nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return cmd
}

// addSelected adds the highlighted candidate; the store event drives the notification.
func (m *Model) addSelected() {
	item, ok := m.results.SelectedItem().(candidateItem)
	if !ok {
		return
	}
	if _, err := m.store.Add(item.candidate); err != nil {
		m.logger.Debug("add rejected", "title", item.candidate.Title, "err", err)
	}
}
