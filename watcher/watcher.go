// Package watcher implements a polling daemon that monitors directories
// for incoming transaction logs and generates the statistics report for
// each file it finds.
//
// The watcher periodically scans the configured directories for files
// matching the configured glob patterns, skips files that are too young or
// already processed, and writes each file's report next to it with the
// configured suffix. Report outputs are never picked up as inputs.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/remiges-tech/logharbour/logharbour"

	"github.com/remiges-tech/tally/metrics"
	"github.com/remiges-tech/tally/objstore"
	"github.com/remiges-tech/tally/report"
)

// MetricFilesProcessed counts transaction files picked up by the watcher.
const MetricFilesProcessed = "tally_watcher_files_processed_total"

const defaultReportSuffix = ".report"

// Config holds the configuration for the watcher daemon.
type Config struct {
	WatchDirs     []string      // directories to monitor for incoming files
	Patterns      []string      // doublestar patterns, relative to each watch dir
	SleepInterval time.Duration // duration to wait between polling cycles
	FileAgeSecs   int           // minimum age of files to be processed
	ReportSuffix  string        // suffix appended to the source name for the report object
	Strict        bool          // strict malformed-line handling for the pipeline
}

// Watcher monitors directories and runs the report pipeline on matching
// files. Each watch directory is served by a Generator over a filesystem
// object store rooted at that directory.
type Watcher struct {
	config    Config
	logger    *logharbour.Logger
	metrics   metrics.Metrics
	gens      map[string]*report.Generator
	processed map[string]time.Time // file path -> mtime at processing
	mu        sync.Mutex           // protects processed
}

// NewWatcher creates and returns a new Watcher. The metrics recorder may
// be nil.
func NewWatcher(config Config, logger *logharbour.Logger, m metrics.Metrics) *Watcher {
	if config.ReportSuffix == "" {
		config.ReportSuffix = defaultReportSuffix
	}

	gens := make(map[string]*report.Generator, len(config.WatchDirs))
	for _, dir := range config.WatchDirs {
		store := objstore.NewFSObjectStore(dir)
		gens[dir] = report.NewGenerator(store, logger, m, report.GeneratorConfig{Strict: config.Strict})
	}

	return &Watcher{
		config:    config,
		logger:    logger,
		metrics:   m,
		gens:      gens,
		processed: make(map[string]time.Time),
	}
}

// Run starts the polling loop. It returns when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info().LogActivity("Starting transaction file watcher", map[string]any{
		"watch_dirs": w.config.WatchDirs,
		"patterns":   w.config.Patterns,
	})
	for {
		w.processAll(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.config.SleepInterval):
		}
	}
}

// processAll runs one polling cycle over all watch dirs and patterns.
// Failures on individual files are logged and do not stop the cycle.
func (w *Watcher) processAll(ctx context.Context) {
	for _, dir := range w.config.WatchDirs {
		for _, pattern := range w.config.Patterns {
			if err := w.processPattern(ctx, dir, pattern); err != nil {
				w.logger.Error(err).LogActivity("Error processing pattern", map[string]any{
					"dir":     dir,
					"pattern": pattern,
				})
			}
		}
	}
}

// processPattern finds and processes all files matching pattern under dir.
// doublestar is used instead of filepath.Glob so patterns may span
// directory levels with '**'.
func (w *Watcher) processPattern(ctx context.Context, dir, pattern string) error {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return fmt.Errorf("error globbing pattern %s in directory %s: %w", pattern, dir, err)
	}

	for _, rel := range matches {
		if strings.HasSuffix(rel, w.config.ReportSuffix) {
			continue
		}
		if err := w.processFile(ctx, dir, rel); err != nil {
			w.logger.Error(err).LogActivity("Error processing file", map[string]any{
				"dir":  dir,
				"file": rel,
			})
		}
	}

	return nil
}

// processFile runs the pipeline for a single matched file if it is old
// enough and not yet processed in its current version.
func (w *Watcher) processFile(ctx context.Context, dir, rel string) error {
	path := filepath.Join(dir, rel)
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return nil
	}
	if time.Since(fi.ModTime()) < time.Duration(w.config.FileAgeSecs)*time.Second {
		return nil
	}

	w.mu.Lock()
	seen, done := w.processed[path]
	w.mu.Unlock()
	if done && seen.Equal(fi.ModTime()) {
		return nil
	}

	rep, err := w.gens[dir].GetStatistic(ctx, rel, rel+w.config.ReportSuffix)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.processed[path] = fi.ModTime()
	w.mu.Unlock()

	w.logger.Info().LogActivity("Processed incoming transaction file", map[string]any{
		"file":   rel,
		"supply": rep.Supply,
		"buy":    rep.Buy,
		"result": rep.Result,
	})
	if w.metrics != nil {
		w.metrics.Record(MetricFilesProcessed, 1)
	}

	return nil
}
