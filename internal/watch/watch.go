// Package watch reports changes to the files u8scan is asked to validate.
//
// FSNotifyWatcher delivers raw file system events, DebouncedWatcher
// coalesces bursts of writes to the same file, and IgnorePatterns filters
// paths with gitignore-style rules, both while watching and while
// expanding directory arguments.
package watch

import (
	"errors"
	"strings"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already being watched")
	ErrNotWatching     = errors.New("path is not being watched")
	ErrPathNotExist    = errors.New("path does not exist")
)

// Op is a set of file system operations.
type Op uint32

const (
	// OpCreate indicates a file or directory was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
)

// String returns the operations joined with "|".
func (op Op) String() string {
	if op == 0 {
		return "NONE"
	}
	var parts []string
	for _, o := range []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
	} {
		if op.Has(o.op) {
			parts = append(parts, o.name)
		}
	}
	return strings.Join(parts, "|")
}

// Has reports whether op includes o.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Rescan reports whether the file may have new content worth validating.
func (op Op) Rescan() bool {
	return op&(OpCreate|OpWrite) != 0
}

// Event is a change to a single path.
type Event struct {
	// Path is the absolute path of the affected file or directory.
	Path string
	// Op is the set of operations observed.
	Op Op
	// Timestamp is when the most recent operation was observed.
	Timestamp time.Time
}

// Watcher monitors file system changes.
type Watcher interface {
	// Watch starts watching a single file or directory.
	Watch(path string) error

	// WatchRecursive watches a directory and every subdirectory that is
	// not ignored. A file path is watched on its own.
	WatchRecursive(path string) error

	// Unwatch stops watching a path.
	Unwatch(path string) error

	// Events returns the event channel. It is closed by Close.
	Events() <-chan Event

	// Errors returns the error channel. It is closed by Close.
	Errors() <-chan error

	// Close stops the watcher and releases its resources.
	Close() error

	// IsWatching reports whether path is being watched.
	IsWatching(path string) bool
}

// Config holds watcher options.
type Config struct {
	// BufferSize is the size of the event and error channels.
	BufferSize int

	// Ignore filters events and recursive watches. Nil ignores nothing.
	Ignore *IgnorePatterns
}

// Option configures a watcher.
type Option func(*Config)

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) Option {
	return func(c *Config) {
		c.BufferSize = size
	}
}

// WithIgnore sets the ignore patterns.
func WithIgnore(ip *IgnorePatterns) Option {
	return func(c *Config) {
		c.Ignore = ip
	}
}

const defaultBufferSize = 100
