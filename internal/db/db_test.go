package db

import (
	"path/filepath"
	"testing"

	"github.com/existflow/notejar/internal/history"
	"github.com/existflow/notejar/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ history.Storage = (*DB)(nil)

func openTemp(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "notejar.db")
	d, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d, path
}

func TestKV(t *testing.T) {
	d, _ := openTemp(t)

	_, ok, err := d.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.Set("k", "one"))
	require.NoError(t, d.Set("k", "two"))

	v, ok, err := d.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)

	require.NoError(t, d.Delete("k"))
	require.NoError(t, d.Delete("k"))
	_, ok, err = d.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistorySurvivesReopen(t *testing.T) {
	d, path := openTemp(t)
	assert.Equal(t, path, d.Path())

	notes := []model.OpenedNote{
		{ID: "note-1", Title: "Top Chef", Text: "hi", Color: model.ColorYellow, OpenedAt: 1700000000000},
	}
	require.NoError(t, history.Save(d, history.DefaultKey, notes))
	require.NoError(t, d.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := history.Load(reopened, history.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, notes, got)
}
