package jar

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/existflow/notejar/internal/catalog"
	"github.com/existflow/notejar/internal/history"
	"github.com/existflow/notejar/internal/logger"
	"github.com/existflow/notejar/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimers is a manual clock plus scheduler. Events fire only when the
// test advances time.
type fakeTimers struct {
	now     time.Time
	pending []pendingEvent
	seq     int
}

type pendingEvent struct {
	due time.Time
	seq int
	ev  Event
}

func newFakeTimers() *fakeTimers {
	return &fakeTimers{now: time.Date(2024, 12, 25, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeTimers) Schedule(delay time.Duration, ev Event) {
	f.seq++
	f.pending = append(f.pending, pendingEvent{due: f.now.Add(delay), seq: f.seq, ev: ev})
}

func (f *fakeTimers) Now() time.Time { return f.now }

// advance moves the clock forward and fires every event that came due, in
// due order.
func (f *fakeTimers) advance(c *Controller, d time.Duration) {
	target := f.now.Add(d)
	for {
		sort.SliceStable(f.pending, func(i, j int) bool {
			if f.pending[i].due.Equal(f.pending[j].due) {
				return f.pending[i].seq < f.pending[j].seq
			}
			return f.pending[i].due.Before(f.pending[j].due)
		})
		if len(f.pending) == 0 || f.pending[0].due.After(target) {
			break
		}
		p := f.pending[0]
		f.pending = f.pending[1:]
		f.now = p.due
		c.Handle(p.ev)
	}
	f.now = target
}

func (f *fakeTimers) count(kind EventKind) int {
	n := 0
	for _, p := range f.pending {
		if p.ev.Kind == kind {
			n++
		}
	}
	return n
}

func testCatalog(n int) *catalog.Catalog {
	entries := make([]model.CatalogEntry, n)
	for i := range entries {
		entries[i] = model.CatalogEntry{
			ID:    fmt.Sprintf("note-%d", i+1),
			Title: fmt.Sprintf("Title %d", i+1),
			Text:  fmt.Sprintf("Body %d", i+1),
			Color: model.Colors[i%len(model.Colors)],
		}
	}
	return catalog.MustNew(entries)
}

type harness struct {
	ctrl    *Controller
	timers  *fakeTimers
	storage *history.Memory
	logs    *bytes.Buffer
}

func newHarness(t *testing.T, cat *catalog.Catalog, mutate ...func(*Options)) *harness {
	t.Helper()
	return newHarnessWithStorage(t, cat, history.NewMemory(), mutate...)
}

func newHarnessWithStorage(t *testing.T, cat *catalog.Catalog, storage *history.Memory, mutate ...func(*Options)) *harness {
	t.Helper()
	var buf bytes.Buffer
	log, err := logger.New(logger.Config{Level: logger.DEBUG, Output: &buf})
	require.NoError(t, err)

	timers := newFakeTimers()
	opts := Options{
		Storage:   storage,
		Scheduler: timers,
		Clock:     timers.Now,
		Logger:    log,
	}
	for _, m := range mutate {
		m(&opts)
	}
	return &harness{ctrl: New(cat, opts), timers: timers, storage: storage, logs: &buf}
}

func (h *harness) clickN(n int) {
	for i := 0; i < n; i++ {
		h.ctrl.Activate()
	}
}

func (h *harness) settle() {
	h.timers.advance(h.ctrl, RevealDelay+ShakeDuration)
}

func ids(notes []model.OpenedNote) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestSingleNoteScenario(t *testing.T) {
	h := newHarness(t, testCatalog(1))

	h.clickN(3)
	assert.Equal(t, StateRevealing, h.ctrl.State())
	assert.Empty(t, h.ctrl.History(), "reveal must wait for the delay")

	h.timers.advance(h.ctrl, RevealDelay)

	got := h.ctrl.History()
	require.Len(t, got, 1)
	assert.Equal(t, "note-1", got[0].ID)
	assert.Equal(t, h.timers.now.UnixMilli(), got[0].OpenedAt)

	s := h.ctrl.Session()
	assert.True(t, s.ModalOpen)
	require.NotNil(t, s.Selected)
	assert.Equal(t, "note-1", s.Selected.ID)
	require.NotNil(t, s.LastRevealed)
	assert.Equal(t, "note-1", s.LastRevealed.ID)
	assert.Equal(t, StateRevealed, h.ctrl.State())
	assert.False(t, h.ctrl.CanActivate())
	assert.True(t, h.ctrl.Exhausted())

	stored, err := history.Load(h.storage, history.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestBelowThreshold(t *testing.T) {
	h := newHarness(t, testCatalog(2))

	h.clickN(2)
	assert.Equal(t, 2, h.timers.count(EventShakeEnd))
	assert.Equal(t, 0, h.timers.count(EventReveal))
	assert.Equal(t, StateShaking, h.ctrl.State())

	h.settle()

	s := h.ctrl.Session()
	assert.Equal(t, 2, s.Shakes)
	assert.Equal(t, 2, s.Clicks)
	assert.False(t, s.Shaking)
	assert.False(t, s.ModalOpen)
	assert.Empty(t, h.ctrl.History())
	assert.Equal(t, StateIdle, h.ctrl.State())
	assert.Equal(t, 0, h.storage.Writes())
}

func TestShakeClearsAfterLastClick(t *testing.T) {
	h := newHarness(t, testCatalog(2))

	h.ctrl.Activate()
	h.timers.advance(h.ctrl, 300*time.Millisecond)
	h.ctrl.Activate()

	// first shake's timer fires, second shake still running
	h.timers.advance(h.ctrl, 250*time.Millisecond)
	assert.True(t, h.ctrl.Session().Shaking)

	h.timers.advance(h.ctrl, 300*time.Millisecond)
	assert.False(t, h.ctrl.Session().Shaking)
}

func TestClicksWhileRevealingAreIgnored(t *testing.T) {
	h := newHarness(t, testCatalog(3))

	h.clickN(3)
	assert.False(t, h.ctrl.Activate())
	assert.False(t, h.ctrl.Activate())
	assert.Equal(t, 1, h.timers.count(EventReveal))

	h.settle()
	assert.Equal(t, []string{"note-1"}, ids(h.ctrl.History()))
}

func TestRevealedCycleIgnoresClicksUntilReset(t *testing.T) {
	h := newHarness(t, testCatalog(3))

	h.clickN(3)
	h.settle()
	writes := h.storage.Writes()

	assert.False(t, h.ctrl.Activate())
	h.settle()
	assert.Equal(t, writes, h.storage.Writes())

	h.ctrl.Reset()
	s := h.ctrl.Session()
	assert.Equal(t, 0, s.Clicks)
	assert.False(t, s.ModalOpen)
	assert.Nil(t, s.Selected)
	assert.Nil(t, s.LastRevealed)
	assert.Equal(t, StateIdle, h.ctrl.State())
	assert.Len(t, h.ctrl.History(), 1, "reset must not touch history")

	h.clickN(3)
	h.settle()
	assert.Equal(t, []string{"note-1", "note-2"}, ids(h.ctrl.History()))
}

func TestRevealsInCatalogOrderUntilExhausted(t *testing.T) {
	h := newHarness(t, testCatalog(4))

	for i := 0; i < 6; i++ {
		h.clickN(3)
		h.settle()
		h.ctrl.Reset()
	}

	assert.Equal(t, []string{"note-1", "note-2", "note-3", "note-4"}, ids(h.ctrl.History()))
	assert.Equal(t, []string{"note-4", "note-3", "note-2", "note-1"}, ids(h.ctrl.Gallery()))
	assert.True(t, h.ctrl.Exhausted())
	assert.Equal(t, 0, h.ctrl.Remaining())
	assert.False(t, h.ctrl.CanActivate())
}

func TestExhaustedActivationHasNoEffect(t *testing.T) {
	h := newHarness(t, testCatalog(1))
	h.clickN(3)
	h.settle()
	h.ctrl.Reset()

	before := h.ctrl.Session()
	assert.False(t, h.ctrl.Activate())
	assert.Equal(t, before, h.ctrl.Session())
	assert.Empty(t, h.timers.pending)
}

func TestSkipsIdsAlreadyInHistory(t *testing.T) {
	storage := history.NewMemory()
	require.NoError(t, history.Save(storage, history.DefaultKey, []model.OpenedNote{
		{ID: "note-2", Text: "Body 2", Color: model.ColorPink, OpenedAt: 1},
	}))

	h := newHarnessWithStorage(t, testCatalog(3), storage)
	assert.Equal(t, 2, h.ctrl.Remaining())

	next, ok := h.ctrl.NextUnopened()
	require.True(t, ok)
	assert.Equal(t, "note-1", next.ID)

	for i := 0; i < 2; i++ {
		h.clickN(3)
		h.settle()
		h.ctrl.Reset()
	}
	assert.Equal(t, []string{"note-2", "note-1", "note-3"}, ids(h.ctrl.History()))
}

func TestReloadRoundTrip(t *testing.T) {
	storage := history.NewMemory()
	h := newHarnessWithStorage(t, testCatalog(3), storage)
	h.clickN(3)
	h.settle()
	h.ctrl.Reset()
	h.clickN(3)
	h.settle()
	want := h.ctrl.History()

	fresh := newHarnessWithStorage(t, testCatalog(3), storage)
	assert.Equal(t, want, fresh.ctrl.History())

	s := fresh.ctrl.Session()
	assert.Equal(t, 0, s.Clicks)
	assert.False(t, s.ModalOpen)
	assert.Nil(t, s.Selected)
	assert.Equal(t, StateIdle, fresh.ctrl.State())
}

func TestMalformedStorageStartsEmpty(t *testing.T) {
	storage := history.NewMemory()
	require.NoError(t, storage.Set(history.DefaultKey, `"a string, not an array"`))

	var h *harness
	require.NotPanics(t, func() {
		h = newHarnessWithStorage(t, testCatalog(2), storage)
	})
	assert.Empty(t, h.ctrl.History())
	assert.Contains(t, h.logs.String(), "Error loading saved notes")

	h.clickN(3)
	h.settle()
	assert.Equal(t, []string{"note-1"}, ids(h.ctrl.History()))
}

func TestCustomStorageKey(t *testing.T) {
	h := newHarness(t, testCatalog(1), func(o *Options) { o.Key = "other" })
	h.clickN(3)
	h.settle()

	_, ok, _ := h.storage.Get(history.DefaultKey)
	assert.False(t, ok)
	_, ok, _ = h.storage.Get("other")
	assert.True(t, ok)
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	h := newHarness(t, testCatalog(2))
	h.storage.FailWrites(errors.New("quota exceeded"))

	h.clickN(3)
	h.settle()

	assert.Equal(t, []string{"note-1"}, ids(h.ctrl.History()))
	assert.True(t, h.ctrl.Session().ModalOpen)
	assert.Contains(t, h.logs.String(), "Error saving notes")

	// next successful write carries the full history
	h.storage.FailWrites(nil)
	h.ctrl.Reset()
	h.clickN(3)
	h.settle()

	stored, err := history.Load(h.storage, history.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"note-1", "note-2"}, ids(stored))
}

func TestRevealSkippedWhenExhaustedAtFireTime(t *testing.T) {
	storage := history.NewMemory()
	h := newHarnessWithStorage(t, testCatalog(1), storage)

	h.clickN(3)
	// another writer exhausts the catalog before the reveal fires
	h.ctrl.history = append(h.ctrl.history, model.OpenedNote{ID: "note-1", Text: "Body 1", Color: model.ColorYellow})
	h.ctrl.opened["note-1"] = true

	h.settle()
	assert.Len(t, h.ctrl.History(), 1)
	assert.False(t, h.ctrl.Session().ModalOpen)
	assert.Equal(t, 0, storage.Writes())
	assert.Contains(t, h.logs.String(), "Reveal skipped")
}

func TestRevealAfterResetCompletesByDefault(t *testing.T) {
	h := newHarness(t, testCatalog(2))

	h.clickN(3)
	h.ctrl.Reset()
	assert.Equal(t, StateIdle, h.ctrl.State())

	h.settle()
	assert.Equal(t, []string{"note-1"}, ids(h.ctrl.History()))
	assert.True(t, h.ctrl.Session().ModalOpen)
	assert.Equal(t, StateRevealed, h.ctrl.State())
}

func TestRevealAfterResetDroppedWhenConfigured(t *testing.T) {
	h := newHarness(t, testCatalog(2), func(o *Options) { o.CancelRevealOnReset = true })

	h.clickN(3)
	h.ctrl.Reset()
	h.settle()

	assert.Empty(t, h.ctrl.History())
	assert.False(t, h.ctrl.Session().ModalOpen)
	assert.Equal(t, StateIdle, h.ctrl.State())

	h.clickN(3)
	h.settle()
	assert.Equal(t, []string{"note-1"}, ids(h.ctrl.History()))
}

func TestStaleRevealDoesNotDuplicate(t *testing.T) {
	h := newHarness(t, testCatalog(3))

	h.clickN(3)
	h.ctrl.Reset()
	h.clickN(3) // second cycle with its own pending reveal
	h.settle()

	assert.Equal(t, []string{"note-1", "note-2"}, ids(h.ctrl.History()))
}

func TestDetailView(t *testing.T) {
	h := newHarness(t, testCatalog(2))
	h.clickN(3)
	h.settle()
	h.ctrl.CloseDetail()

	s := h.ctrl.Session()
	assert.False(t, s.ModalOpen)
	assert.Nil(t, s.Selected)
	assert.Equal(t, StateRevealed, h.ctrl.State(), "detail view is independent of the reveal cycle")

	assert.True(t, h.ctrl.OpenDetailByID("note-1"))
	assert.True(t, h.ctrl.Session().ModalOpen)
	assert.Equal(t, "note-1", h.ctrl.Session().Selected.ID)

	assert.False(t, h.ctrl.OpenDetailByID("note-2"), "unopened notes have no detail view")
	assert.Equal(t, "note-1", h.ctrl.Session().Selected.ID)
}

func TestSnapshot(t *testing.T) {
	h := newHarness(t, testCatalog(2))
	h.ctrl.Activate()

	snap := h.ctrl.Snapshot()
	assert.Equal(t, "shaking", snap.State)
	assert.Equal(t, 1, snap.Clicks)
	assert.True(t, snap.CanActivate)
	assert.Equal(t, 2, snap.Remaining)
	assert.Nil(t, snap.Selected)

	h.clickN(2)
	h.settle()
	snap = h.ctrl.Snapshot()
	assert.Equal(t, "revealed", snap.State)
	assert.Equal(t, 1, snap.Opened)
	require.NotNil(t, snap.Selected)
	snap.Selected.ID = "mutated"
	assert.Equal(t, "note-1", h.ctrl.Session().Selected.ID)
}

func TestHistoryIsACopy(t *testing.T) {
	h := newHarness(t, testCatalog(1))
	h.clickN(3)
	h.settle()

	got := h.ctrl.History()
	got[0].ID = "mutated"
	assert.Equal(t, "note-1", h.ctrl.History()[0].ID)
}

func TestNewRequiresScheduler(t *testing.T) {
	assert.Panics(t, func() { New(testCatalog(1), Options{}) })
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "revealing", StateRevealing.String())
	assert.Equal(t, "unknown", State(99).String())
}
