package payments

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payments.yaml")
	require.NoError(t, os.WriteFile(path, seedYAML, 0o644))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, seedYAML, 0o644))

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payments.yaml")
	require.NoError(t, os.WriteFile(path, seedYAML, 0o644))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))

	select {
	case <-w.Changes():
		t.Fatal("unexpected notification for a sibling file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CloseClosesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payments.yaml")
	require.NoError(t, os.WriteFile(path, seedYAML, 0o644))

	w, err := NewWatcher(path, 0)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Changes()
	require.False(t, ok)
}

func TestNewWatcher_Errors(t *testing.T) {
	_, err := NewWatcher("", 0)
	require.Error(t, err)

	_, err = NewWatcher(filepath.Join(t.TempDir(), "missing-dir", "payments.yaml"), 0)
	require.Error(t, err)
}
