package tasks

import (
	"path/filepath"
	"time"
)

// Config holds configuration for the task queue system.
type Config struct {
	// DatabasePath is the SQLite file holding the queue. Empty derives it from
	// the main database path. See DatabasePathFor.
	DatabasePath string

	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often to clean up completed tasks. Default: 1h
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: 1 * time.Hour,
	}
}

// DatabasePathFor returns the queue database stored alongside mainDBPath with
// a "-tasks" suffix: ./copywriting.db -> ./copywriting-tasks.db.
func DatabasePathFor(mainDBPath string) string {
	dir := filepath.Dir(mainDBPath)
	base := filepath.Base(mainDBPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	return filepath.Join(dir, name+"-tasks"+ext)
}
