package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/woodshed/internal/models"
	"github.com/desertthunder/woodshed/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSearchDone MsgKind = iota
	MsgDismissNotification
	MsgActivityLoaded
	MsgExportDone
	MsgLinkOpened
)

// searchDoneMsg is the constructor for [MsgSearchDone]
func searchDoneMsg(outcome tasks.SearchOutcome) Msg {
	return Msg{kind: MsgSearchDone, data: outcome}
}

// dismissMsg is the constructor for [MsgDismissNotification]
func dismissMsg(id int) Msg {
	return Msg{kind: MsgDismissNotification, data: id}
}

type activityData struct {
	entries []*models.Activity
	counts  map[string]int
	err     error
}

// activityLoadedMsg is the constructor for [MsgActivityLoaded]
func activityLoadedMsg(entries []*models.Activity, counts map[string]int, err error) Msg {
	return Msg{kind: MsgActivityLoaded, data: activityData{entries, counts, err}}
}

type exportData struct {
	result *tasks.BulkExportResult
	err    error
}

// exportDoneMsg is the constructor for [MsgExportDone]
func exportDoneMsg(result *tasks.BulkExportResult, err error) Msg {
	return Msg{kind: MsgExportDone, data: exportData{result, err}}
}

// linkOpenedMsg is the constructor for [MsgLinkOpened]
func linkOpenedMsg(err error) Msg {
	return Msg{kind: MsgLinkOpened, data: err}
}
