package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/repo/.git/index", true},
		{"/repo/.git/HEAD", true},
		{"/repo/.git/refs/heads/main", true},
		{"/repo/.git/index.lock", false},
		{"/repo/.git/refs/heads/main.lock", false},
		{"/repo/.git/.COMMIT_EDITMSG.swp", false},
		{"/repo/.git/COMMIT_EDITMSG", false},
		{"/repo/.git/gc.log", false},
		{"/repo/.git/fsmonitor--daemon.ipc", false},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.path))
		})
	}
}

func TestWatchDirs(t *testing.T) {
	gitDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs", "heads"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs", "remotes", "origin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "refs", "remotes", "HEAD"), nil, 0o644))

	assert.Equal(t, []string{
		gitDir,
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "remotes"),
		filepath.Join(gitDir, "refs", "remotes", "origin"),
	}, watchDirs(gitDir))
}

func TestNew_NothingToWatch(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), time.Millisecond, slog.New(slog.DiscardHandler))
	assert.ErrorContains(t, err, "nothing to watch")
}

func TestWatcher_DebouncesIndexWrites(t *testing.T) {
	gitDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs", "heads"), 0o755))

	w, err := New(gitDir, 20*time.Millisecond, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	// Lock files alone never fire.
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "index.lock"), []byte("x"), 0o644))
	select {
	case <-w.Events():
		t.Fatal("unexpected event for a lock file")
	case <-time.After(150 * time.Millisecond):
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(gitDir, "index"), []byte{byte(i)}, 0o644))
	}
	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("no event after index write")
	}
}
