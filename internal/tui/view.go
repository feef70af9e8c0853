package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/notejar/internal/jar"
	"github.com/existflow/notejar/internal/model"
)

const (
	tileWidth  = 14
	modalWidth = 56
)

var jarArt = []string{
	"  ________  ",
	" [________] ",
	" |        | ",
	" |  ~~~~  | ",
	" | ~~~~~~ | ",
	" |~~~~~~~~| ",
	" '--------' ",
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.mode == ModeHelp {
		return m.renderHelp()
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		m.renderHeader(),
		m.renderJar(),
		m.renderGallery(),
	)
	content = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content)

	if s := m.jar.Session(); s.ModalOpen && s.Selected != nil {
		content = lipgloss.Place(
			m.width, max(m.height-2, 1),
			lipgloss.Center, lipgloss.Center,
			m.renderModal(*s.Selected),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

func (m Model) renderHeader() string {
	return HeaderStyle.Render("Note Jar")
}

func (m Model) renderJar() string {
	s := m.jar.Session()

	body := strings.Join(jarArt, "\n")
	if s.Shaking {
		// tilt the jar by shifting alternate rows
		lines := make([]string, len(jarArt))
		for i, l := range jarArt {
			if (i+s.Shakes)%2 == 0 {
				lines[i] = " " + l
			} else {
				lines[i] = l + " "
			}
		}
		body = strings.Join(lines, "\n")
	}

	dots := make([]string, jar.ClickThreshold)
	for i := range dots {
		dots[i] = "○"
		if i < s.Clicks {
			dots[i] = "●"
		}
	}
	body += "\n\n" + lipgloss.PlaceHorizontal(lipgloss.Width(jarArt[0]), lipgloss.Center, strings.Join(dots, " "))

	style := JarStyle
	switch {
	case !m.jar.CanActivate():
		style = JarDisabledStyle
	case m.pane == PaneJar:
		style = JarFocusedStyle
	}

	caption := fmt.Sprintf("%d of %d opened", len(m.jar.History()), m.jar.Catalog().Len())
	switch m.jar.State() {
	case jar.StateRevealing:
		caption = "Something is coming out..."
	case jar.StateRevealed:
		if s.LastRevealed != nil {
			caption = "You drew: " + truncate(noteLabel(*s.LastRevealed, 0), 24)
		}
	}
	if m.jar.Exhausted() && m.jar.State() != jar.StateRevealed {
		caption = "The jar is empty"
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		style.Render(body),
		HelpStyle.Render(caption),
	)
}

func (m Model) renderGallery() string {
	notes := m.gallery()
	if len(notes) == 0 {
		return GalleryStyle.Render(HelpStyle.Render("No notes opened yet. Shake the jar!"))
	}

	var rows []string
	var row []string
	for i, n := range notes {
		selected := m.pane == PaneGallery && i == clamp(m.galleryCursor, len(notes))
		label := truncate(noteLabel(n, len(notes)-i), tileWidth-2)
		row = append(row, NoteTileStyle(n.Color, selected).Render(label))
		if len(row) == galleryColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(Primary).
		Render(fmt.Sprintf("Opened notes (%d)", len(notes)))
	return GalleryStyle.Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{title, ""}, rows...)...))
}

func (m Model) renderModal(n model.OpenedNote) string {
	width := min(modalWidth, max(m.width-8, 20))
	paper := NotePaperStyle(n.Color).Width(width)
	inner := width - paper.GetHorizontalFrameSize()

	var parts []string
	if n.HasImage() {
		parts = append(parts, lipgloss.NewStyle().Italic(true).
			Render("[image: "+m.imagePath(n.ImagePath)+"]"), "")
	}
	if n.Title != "" {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Render(n.Title), "")
	}
	parts = append(parts, lipgloss.NewStyle().Width(inner).Render(n.Text))
	if n.Author != "" {
		parts = append(parts, "", lipgloss.NewStyle().Italic(true).Width(inner).
			Align(lipgloss.Right).Render("— "+n.Author))
	}
	parts = append(parts, "", HelpStyle.Render(
		"opened "+n.OpenedTime().Format("Jan 2, 2006 15:04")+"  ·  esc close"))

	return paper.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderStatusBar() string {
	left := m.message
	if left == "" {
		left = m.help.ShortHelpView(keys.ShortHelp())
	}
	return StatusBarStyle.Width(m.width).Render(left)
}

func (m Model) renderHelp() string {
	title := HeaderStyle.Render("Note Jar — keys")
	body := m.help.FullHelpView(keys.FullHelp())
	hint := HelpStyle.Render("press any key to return")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		ModalStyle.BorderForeground(Primary).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint)))
}

func (m Model) imagePath(name string) string {
	if m.publicDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.publicDir, name)
}

// noteLabel is the short name of a note: its title, or its position
func noteLabel(n model.OpenedNote, pos int) string {
	if n.Title != "" {
		return n.Title
	}
	if pos > 0 {
		return fmt.Sprintf("Note #%d", pos)
	}
	return n.ID
}
