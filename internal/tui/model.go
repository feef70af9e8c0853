package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/notejar/internal/catalog"
	"github.com/existflow/notejar/internal/jar"
	"github.com/existflow/notejar/internal/logger"
	"github.com/existflow/notejar/internal/model"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneJar Pane = iota
	PaneGallery
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp
)

// timerMsg carries a jar event back into the update loop once its delay
// has elapsed
type timerMsg jar.Event

// cmdScheduler turns scheduled jar events into tea.Tick commands. Commands
// are collected during an update and returned from it.
type cmdScheduler struct {
	cmds []tea.Cmd
}

func (s *cmdScheduler) Schedule(delay time.Duration, ev jar.Event) {
	s.cmds = append(s.cmds, tea.Tick(delay, func(time.Time) tea.Msg {
		return timerMsg(ev)
	}))
}

func (s *cmdScheduler) drain() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmd := tea.Batch(s.cmds...)
	s.cmds = nil
	return cmd
}

// Model is the main TUI model
type Model struct {
	jar   *jar.Controller
	sched *cmdScheduler

	publicDir string

	// UI state
	width         int
	height        int
	pane          Pane
	mode          Mode
	galleryCursor int
	help          help.Model

	message string
}

// NewModel creates a new TUI model. opts.Scheduler is replaced by the
// model's own scheduler.
func NewModel(cat *catalog.Catalog, opts jar.Options, publicDir string) Model {
	logger.Info("Initializing TUI model")

	sched := &cmdScheduler{}
	opts.Scheduler = sched

	m := Model{
		jar:       jar.New(cat, opts),
		sched:     sched,
		publicDir: publicDir,
		pane:      PaneJar,
		mode:      ModeNormal,
		help:      help.New(),
	}

	logger.Debug("TUI model initialized",
		logger.F("catalog", cat.Len()),
		logger.F("opened", len(m.jar.History())))
	return m
}

// Controller exposes the underlying jar
func (m Model) Controller() *jar.Controller {
	return m.jar
}

func (m *Model) gallery() []model.OpenedNote {
	return m.jar.Gallery()
}

func (m *Model) currentGalleryNote() (model.OpenedNote, bool) {
	g := m.gallery()
	if len(g) == 0 {
		return model.OpenedNote{}, false
	}
	return g[clamp(m.galleryCursor, len(g))], true
}
