package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fivemoreminix/moledit/pkg/syntax"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := NewWatcher(path, 50*time.Millisecond)
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1"), 0644))
	onChange := startWatcher(t, path)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("version: %d", i)), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_SeesAtomicSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, Save(syntax.NewDefaultRegistry(), path))
	onChange := startWatcher(t, path)

	reg := syntax.NewDefaultRegistry()
	require.NoError(t, reg.AddKeyword("io", "루루"))
	require.NoError(t, Save(reg, path))

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification after save")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("version: 1"), 0644))
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0644))
	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(other, []byte("changed"), 0644))

	select {
	case <-onChange:
		t.Fatal("unexpected notification for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}
