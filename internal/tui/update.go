package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/notejar/internal/jar"
	"github.com/existflow/notejar/internal/logger"
)

// galleryColumns is the number of tiles per gallery row
const galleryColumns = 4

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case timerMsg:
		wasOpen := m.jar.Session().ModalOpen
		m.jar.Handle(jar.Event(msg))
		if s := m.jar.Session(); !wasOpen && s.ModalOpen && s.LastRevealed != nil {
			m.message = "A note tumbles out of the jar!"
			m.galleryCursor = 0
		}
		return m, m.sched.drain()

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.jar.Session().ModalOpen {
			return m.handleModalKeys(msg)
		}

		if m.mode == ModeHelp {
			m.mode = ModeNormal
			return m, nil
		}

		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleModalKeys handles key presses while a note is open
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Open),
		key.Matches(msg, keys.Shake), key.Matches(msg, keys.Quit):
		m.jar.CloseDetail()
	}
	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneJar && len(m.jar.History()) > 0 {
			m.pane = PaneGallery
		} else {
			m.pane = PaneJar
		}

	case key.Matches(msg, keys.Reset):
		m.jar.Reset()
		m.pane = PaneJar
		logger.Debug("Jar reset")

	case key.Matches(msg, keys.Shake):
		m.handleShake()

	case key.Matches(msg, keys.Open):
		if m.pane == PaneGallery {
			m.handleOpen()
		} else {
			m.handleShake()
		}

	case key.Matches(msg, keys.Left):
		m.moveGallery(-1)
	case key.Matches(msg, keys.Right):
		m.moveGallery(1)
	case key.Matches(msg, keys.Up):
		m.moveGallery(-galleryColumns)
	case key.Matches(msg, keys.Down):
		m.moveGallery(galleryColumns)
	}

	return m, m.sched.drain()
}

func (m *Model) handleShake() {
	if m.jar.Activate() {
		s := m.jar.Session()
		if s.Clicks < jar.ClickThreshold {
			m.message = fmt.Sprintf("Shake %d more time(s)...", jar.ClickThreshold-s.Clicks)
		}
		return
	}

	switch {
	case m.jar.Exhausted():
		m.message = "The jar is empty. Every note has been opened."
	case m.jar.State() == jar.StateRevealed:
		m.message = "Press r to draw another note."
	}
}

func (m *Model) handleOpen() {
	note, ok := m.currentGalleryNote()
	if !ok {
		return
	}
	m.jar.OpenDetail(note)
	logger.Debug("Opened note from gallery", logger.F("note", note.ID))
}

func (m *Model) moveGallery(delta int) {
	if m.pane != PaneGallery {
		return
	}
	m.galleryCursor = clamp(m.galleryCursor+delta, len(m.jar.History()))
}
