package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.json")
	w := NewWatcher(path, time.Hour, nil)
	assert.False(t, w.Check(), "missing file")

	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	assert.True(t, w.Check(), "file appeared")
	assert.False(t, w.Check(), "baseline moved")

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.True(t, w.Check())
}

func TestWatcherCallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	changed := make(chan struct{}, 1)
	w := NewWatcher(path, 10*time.Millisecond, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	w.Start()
	defer w.Stop()

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
	w.Stop()
}

func TestWatcherStartTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	changed := make(chan struct{}, 8)
	w := NewWatcher(path, 5*time.Millisecond, func() { changed <- struct{}{} })
	w.Start()
	w.Start()
	w.Stop()

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, changed, "no goroutine survives Stop")
}
