package ui

import "strings"

// Tab is the active panel of the TUI.
type Tab int

const (
	HomeTab Tab = iota
	SearchTab
	LibraryTab
	ProgressTab
	InsightsTab
	ProfileTab
)

// Tabs lists every [Tab] in display order.
var Tabs = []Tab{HomeTab, SearchTab, LibraryTab, ProgressTab, InsightsTab, ProfileTab}

func (t Tab) String() string {
	switch t {
	case HomeTab:
		return "Home"
	case SearchTab:
		return "Search"
	case LibraryTab:
		return "Library"
	case ProgressTab:
		return "Progress"
	case InsightsTab:
		return "Insights"
	case ProfileTab:
		return "Profile"
	default:
		return ""
	}
}

// Next cycles forward, wrapping around.
func (t Tab) Next() Tab { return (t + 1) % Tab(len(Tabs)) }

// Prev cycles backward, wrapping around.
func (t Tab) Prev() Tab { return (t + Tab(len(Tabs)) - 1) % Tab(len(Tabs)) }

func renderTabs(active Tab) string {
	parts := make([]string, len(Tabs))
	for i, t := range Tabs {
		label := string(rune('1'+i)) + " " + t.String()
		if t == active {
			parts[i] = styles.activeTab.Render(label)
		} else {
			parts[i] = styles.tab.Render(label)
		}
	}
	return strings.Join(parts, " ")
}
