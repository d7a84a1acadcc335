package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/woodshed/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF4D4D", "#FFB000", "#626262")

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

var _ Painter = (*Palette)(nil)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title     lipgloss.Style
	ok        lipgloss.Style
	err       lipgloss.Style
	warn      lipgloss.Style
	help      lipgloss.Style
	muted     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	notice    lipgloss.Style
	selected  lipgloss.Style

	accent lipgloss.Color
	status map[models.Status]lipgloss.Color
}

func NewPalette(t, s, e, w, h string) *Palette {
	accent := lipgloss.Color(t)
	return &Palette{
		title:     NewBold(t).MarginBottom(1),
		ok:        NewBold(s),
		err:       NewBold(e),
		warn:      NewStyle(w),
		help:      NewEm(h),
		muted:     NewStyle(h),
		tab:       NewStyle(h).Padding(0, 1),
		activeTab: NewBold("#FFFFFF").Background(accent).Padding(0, 1),
		notice:    lipgloss.NewStyle().Padding(0, 1).Bold(true),
		selected:  NewBold(t),
		accent:    accent,
		status: map[models.Status]lipgloss.Color{
			models.NotStarted: lipgloss.Color(e),
			models.InProgress: lipgloss.Color(w),
			models.Mastered:   lipgloss.Color(s),
		},
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

// Status renders the status name in its color: red, yellow, or green.
func (p *Palette) Status(s models.Status) string {
	return p.As(s.String(), p.status[s])
}

// Bar renders a ratio in [0, 1] as a fixed-width bar tinted with c.
func (p *Palette) Bar(ratio float64, width int, c lipgloss.Color) string {
	ratio = min(max(ratio, 0), 1)
	filled := int(ratio*float64(width) + 0.5)
	return p.As(strings.Repeat("█", filled), c) + p.muted.Render(strings.Repeat("░", width-filled))
}

// StatusBar renders the progress bar for a status using its color.
func (p *Palette) StatusBar(s models.Status, ratio float64, width int) string {
	return p.Bar(ratio, width, p.status[s])
}
