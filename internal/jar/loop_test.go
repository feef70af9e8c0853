package jar

import (
	"context"
	"testing"
	"time"

	"github.com/existflow/notejar/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_RevealsWithRealTimers(t *testing.T) {
	storage := history.NewMemory()
	l := NewLoop(testCatalog(2), Options{Storage: storage})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	for i := 0; i < ClickThreshold; i++ {
		require.NoError(t, l.Do(ctx, func(c *Controller) { c.Activate() }))
	}

	assert.Eventually(t, func() bool {
		var snap Snapshot
		if err := l.Do(ctx, func(c *Controller) { snap = c.Snapshot() }); err != nil {
			return false
		}
		return snap.State == StateRevealed.String() && snap.ModalOpen && !snap.Shaking
	}, 3*time.Second, 20*time.Millisecond)

	stored, err := history.Load(storage, history.DefaultKey)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "note-1", stored[0].ID)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.ErrorIs(t, l.Do(context.Background(), func(*Controller) {}), ErrLoopStopped)
}

func TestLoop_DoHonorsContext(t *testing.T) {
	l := NewLoop(testCatalog(1), Options{})

	// loop not running, so the op can never be accepted
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Do(ctx, func(*Controller) {}), context.DeadlineExceeded)
}
