// Package jar implements the note jar: a click-driven state machine that
// reveals catalog notes one at a time and records them in a persisted
// history.
//
// A Controller is not safe for concurrent use. All methods, including
// Handle for fired timer events, must be called from one goroutine; the TUI
// uses the bubbletea update loop and the HTTP server uses Loop.
package jar

import (
	"errors"
	"time"

	"github.com/existflow/notejar/internal/catalog"
	"github.com/existflow/notejar/internal/history"
	"github.com/existflow/notejar/internal/logger"
	"github.com/existflow/notejar/internal/model"
)

// Timing of the jar interaction
const (
	ClickThreshold = 3
	ShakeDuration  = 500 * time.Millisecond
	RevealDelay    = 600 * time.Millisecond
)

// State is the phase of the current reveal cycle
type State int

const (
	StateIdle State = iota
	StateShaking
	StateRevealing
	StateRevealed
)

// String returns the lower-case state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateShaking:
		return "shaking"
	case StateRevealing:
		return "revealing"
	case StateRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// EventKind identifies a delayed transition
type EventKind int

const (
	EventShakeEnd EventKind = iota
	EventReveal
)

// Event is a delayed transition handed to a Scheduler and fed back through
// Controller.Handle once its delay has elapsed.
type Event struct {
	Kind  EventKind
	Cycle uint64 // reset generation the event was scheduled in
	Seq   int    // shake number within the cycle, for EventShakeEnd
}

// Scheduler delivers ev back to the controller after delay
type Scheduler interface {
	Schedule(delay time.Duration, ev Event)
}

// SchedulerFunc adapts a function to Scheduler
type SchedulerFunc func(delay time.Duration, ev Event)

// Schedule calls f
func (f SchedulerFunc) Schedule(delay time.Duration, ev Event) { f(delay, ev) }

// Session is the ephemeral, per-run jar state. It is never persisted.
type Session struct {
	Clicks       int
	Shakes       int // shakes started in the current cycle
	Shaking      bool
	Revealing    bool
	Revealed     bool
	LastRevealed *model.OpenedNote // note revealed in the current cycle
	Selected     *model.OpenedNote // note shown in the detail view
	ModalOpen    bool

	cycle uint64
}

// Options configures a Controller
type Options struct {
	Storage   history.Storage // defaults to an in-memory store
	Key       string          // defaults to history.DefaultKey
	Scheduler Scheduler       // required
	Clock     func() time.Time
	Logger    *logger.Logger // defaults to the global logger

	// CancelRevealOnReset drops a reveal that fires after the jar was reset.
	// When false a pending reveal still completes and opens the detail view.
	CancelRevealOnReset bool
}

// Controller owns the catalog, the opened-note history and the session
type Controller struct {
	catalog *catalog.Catalog
	storage history.Storage
	key     string
	sched   Scheduler
	clock   func() time.Time
	log     *logger.Logger
	cancel  bool

	history []model.OpenedNote
	opened  map[string]bool
	session Session
}

// New creates a controller and loads the persisted history
func New(cat *catalog.Catalog, opts Options) *Controller {
	c := &Controller{
		catalog: cat,
		storage: opts.Storage,
		key:     opts.Key,
		sched:   opts.Scheduler,
		clock:   opts.Clock,
		log:     opts.Logger,
		cancel:  opts.CancelRevealOnReset,
	}
	if c.storage == nil {
		c.storage = history.NewMemory()
	}
	if c.key == "" {
		c.key = history.DefaultKey
	}
	if c.sched == nil {
		panic("jar: Options.Scheduler is required")
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	if c.log == nil {
		c.log = logger.Default()
	}

	c.LoadHistory()
	return c
}

// LoadHistory replaces the in-memory history with the persisted one.
// Missing or malformed data yields an empty history.
func (c *Controller) LoadHistory() {
	notes, err := history.Load(c.storage, c.key)
	switch {
	case errors.Is(err, history.ErrNotFound):
		c.log.Debug("No saved notes", logger.F("key", c.key))
	case err != nil:
		c.log.Warn("Error loading saved notes, starting empty",
			logger.F("key", c.key), logger.F("error", err))
	}

	c.history = notes
	c.opened = make(map[string]bool, len(notes))
	for _, n := range notes {
		c.opened[n.ID] = true
	}
	c.log.Info("History loaded", logger.F("opened", len(c.history)), logger.F("catalog", c.catalog.Len()))
}

// persist writes the whole history. Failures are logged; the in-memory
// history stays authoritative and the next write replaces whatever is stored.
func (c *Controller) persist() {
	if err := history.Save(c.storage, c.key, c.history); err != nil {
		c.log.Error("Error saving notes", logger.F("key", c.key), logger.F("error", err))
	}
}

// NextUnopened returns the first catalog entry, in declaration order, that
// is not in the history
func (c *Controller) NextUnopened() (model.CatalogEntry, bool) {
	for _, e := range c.catalog.Entries() {
		if !c.opened[e.ID] {
			return e, true
		}
	}
	return model.CatalogEntry{}, false
}

// Exhausted returns true once every catalog entry has been opened
func (c *Controller) Exhausted() bool {
	_, ok := c.NextUnopened()
	return !ok
}

// Remaining returns the number of catalog entries not yet opened
func (c *Controller) Remaining() int {
	n := 0
	for _, e := range c.catalog.Entries() {
		if !c.opened[e.ID] {
			n++
		}
	}
	return n
}

// CanActivate reports whether a click on the jar would do anything
func (c *Controller) CanActivate() bool {
	return !c.session.Revealed && !c.session.Revealing && !c.Exhausted()
}

// Activate registers one click on the jar. It returns false when the click
// was ignored.
func (c *Controller) Activate() bool {
	if !c.CanActivate() {
		return false
	}

	c.session.Clicks++
	c.session.Shakes++
	c.session.Shaking = true
	c.sched.Schedule(ShakeDuration, Event{Kind: EventShakeEnd, Cycle: c.session.cycle, Seq: c.session.Shakes})

	if c.session.Clicks >= ClickThreshold {
		c.session.Revealing = true
		c.sched.Schedule(RevealDelay, Event{Kind: EventReveal, Cycle: c.session.cycle})
		c.log.Debug("Reveal scheduled", logger.F("clicks", c.session.Clicks))
	}

	return true
}

// Handle applies a fired timer event
func (c *Controller) Handle(ev Event) {
	switch ev.Kind {
	case EventShakeEnd:
		// Only the most recent shake ends the animation.
		if ev.Cycle == c.session.cycle && ev.Seq == c.session.Shakes {
			c.session.Shaking = false
		}
	case EventReveal:
		c.reveal(ev)
	}
}

func (c *Controller) reveal(ev Event) {
	if ev.Cycle != c.session.cycle {
		if c.cancel {
			c.log.Debug("Dropping reveal scheduled before reset", logger.F("cycle", ev.Cycle))
			return
		}
	} else {
		c.session.Revealing = false
	}

	entry, ok := c.NextUnopened()
	if !ok {
		c.log.Debug("Reveal skipped, no unopened notes")
		return
	}

	note := entry.Open(c.clock())
	c.history = append(c.history, note)
	c.opened[note.ID] = true
	c.persist()

	c.session.Revealed = true
	c.session.LastRevealed = &note
	c.OpenDetail(note)

	c.log.Info("Note revealed", logger.F("note", note.ID), logger.F("remaining", c.Remaining()))
}

// Reset starts a new reveal cycle. The history is left untouched.
func (c *Controller) Reset() {
	c.session = Session{cycle: c.session.cycle + 1}
}

// OpenDetail shows note in the detail view
func (c *Controller) OpenDetail(note model.OpenedNote) {
	c.session.Selected = &note
	c.session.ModalOpen = true
}

// OpenDetailByID shows the opened note with id. It returns false if id is
// not in the history.
func (c *Controller) OpenDetailByID(id string) bool {
	for _, n := range c.history {
		if n.ID == id {
			c.OpenDetail(n)
			return true
		}
	}
	return false
}

// CloseDetail hides the detail view
func (c *Controller) CloseDetail() {
	c.session.ModalOpen = false
	c.session.Selected = nil
}

// State returns the phase of the current cycle
func (c *Controller) State() State {
	switch {
	case c.session.Revealed:
		return StateRevealed
	case c.session.Revealing:
		return StateRevealing
	case c.session.Shaking:
		return StateShaking
	default:
		return StateIdle
	}
}

// Session returns a copy of the session state
func (c *Controller) Session() Session {
	return c.session
}

// History returns the opened notes in reveal order
func (c *Controller) History() []model.OpenedNote {
	out := make([]model.OpenedNote, len(c.history))
	copy(out, c.history)
	return out
}

// Gallery returns the opened notes newest first
func (c *Controller) Gallery() []model.OpenedNote {
	out := make([]model.OpenedNote, len(c.history))
	for i, n := range c.history {
		out[len(c.history)-1-i] = n
	}
	return out
}

// Catalog returns the catalog the controller reveals from
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}
