package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/notejar/internal/model"
)

// UI colors
var (
	Primary   = lipgloss.Color("#f59e0b")
	Secondary = lipgloss.Color("#6C757D")
	Text      = lipgloss.Color("#FFFFFF")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Glass     = lipgloss.Color("#9ecbd6")
	Ink       = lipgloss.Color("#1f2937")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	JarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Glass).
			Padding(1, 4)

	JarFocusedStyle = JarStyle.
			BorderForeground(Primary)

	JarDisabledStyle = JarStyle.
				BorderForeground(Border).
				Faint(true)

	GalleryStyle = lipgloss.NewStyle().
			Padding(1, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// NoteTileStyle returns the gallery tile style for a note color
func NoteTileStyle(c model.NoteColor, selected bool) lipgloss.Style {
	tok := c.Tokens()
	s := lipgloss.NewStyle().
		Width(tileWidth).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(tok.Lines)).
		Background(lipgloss.Color(tok.PaperDark)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(tok.Border))
	if selected {
		s = s.Bold(true).
			Background(lipgloss.Color(tok.Paper)).
			BorderStyle(lipgloss.ThickBorder())
	}
	return s
}

// NotePaperStyle returns the detail view style for a note color
func NotePaperStyle(c model.NoteColor) lipgloss.Style {
	tok := c.Tokens()
	return ModalStyle.
		Foreground(Ink).
		Background(lipgloss.Color(tok.Paper)).
		BorderForeground(lipgloss.Color(tok.Border))
}
