package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/remiges-tech/logharbour/logharbour"
	"github.com/stretchr/testify/require"
)

func testLogger() *logharbour.Logger {
	lctx := logharbour.NewLoggerContext(logharbour.DefaultPriority)
	return logharbour.NewLogger(lctx, "WatcherTest", io.Discard)
}

func TestWatcherProcessesMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "incoming"), 0o755))
	src := "supply,100\nbuy,40"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "incoming", "txns.csv"), []byte(src), 0o644))

	w := NewWatcher(Config{
		WatchDirs:     []string{dir},
		Patterns:      []string{"**/*.csv"},
		SleepInterval: time.Second,
	}, testLogger(), nil)

	w.processAll(context.Background())

	written, err := os.ReadFile(filepath.Join(dir, "incoming", "txns.csv.report"))
	require.NoError(t, err)
	require.Equal(t, "supply,100\nbuy,40\nresult,60", string(written))
}

func TestWatcherSkipsAlreadyProcessedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "txns.csv")
	require.NoError(t, os.WriteFile(path, []byte("supply,1"), 0o644))

	w := NewWatcher(Config{
		WatchDirs: []string{dir},
		Patterns:  []string{"*.csv"},
	}, testLogger(), nil)

	w.processAll(context.Background())

	reportPath := path + ".report"
	fi1, err := os.Stat(reportPath)
	require.NoError(t, err)

	// A second cycle must not rewrite the report for an unchanged source.
	w.processAll(context.Background())
	fi2, err := os.Stat(reportPath)
	require.NoError(t, err)
	require.Equal(t, fi1.ModTime(), fi2.ModTime())
}

func TestWatcherReprocessesModifiedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "txns.csv")
	require.NoError(t, os.WriteFile(path, []byte("supply,1"), 0o644))

	w := NewWatcher(Config{
		WatchDirs: []string{dir},
		Patterns:  []string{"*.csv"},
	}, testLogger(), nil)

	w.processAll(context.Background())

	// Modify the source with a clearly different mtime.
	require.NoError(t, os.WriteFile(path, []byte("supply,5\nbuy,2"), 0o644))
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	w.processAll(context.Background())

	written, err := os.ReadFile(path + ".report")
	require.NoError(t, err)
	require.Equal(t, "supply,5\nbuy,2\nresult,3", string(written))
}

func TestWatcherIgnoresReportOutputs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "txns.csv"), []byte("supply,1"), 0o644))

	w := NewWatcher(Config{
		WatchDirs: []string{dir},
		Patterns:  []string{"*"},
	}, testLogger(), nil)

	// Two cycles: the report produced by the first must not be picked up
	// as an input by the second.
	w.processAll(context.Background())
	w.processAll(context.Background())

	_, err := os.Stat(filepath.Join(dir, "txns.csv.report.report"))
	require.True(t, os.IsNotExist(err))
}

func TestWatcherSkipsTooYoungFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "txns.csv"), []byte("supply,1"), 0o644))

	w := NewWatcher(Config{
		WatchDirs:   []string{dir},
		Patterns:    []string{"*.csv"},
		FileAgeSecs: 3600,
	}, testLogger(), nil)

	w.processAll(context.Background())

	_, err := os.Stat(filepath.Join(dir, "txns.csv.report"))
	require.True(t, os.IsNotExist(err))
}

func TestWatcherRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(Config{
		WatchDirs:     []string{t.TempDir()},
		Patterns:      []string{"*.csv"},
		SleepInterval: 10 * time.Millisecond,
	}, testLogger(), nil)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
