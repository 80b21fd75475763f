// Package report renders scan results as text, JSON or YAML.
package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/bytecursor/internal/scan"
)

// ErrUnknownFormat is returned by ForName for unrecognized format names.
var ErrUnknownFormat = errors.New("unknown report format")

// FileResult is the outcome of scanning one file.
type FileResult struct {
	Path   string
	Result scan.Result
	// Err is set when the file could not be read or the scan was
	// interrupted. Result may then be partial.
	Err error
}

// Report collects the results of one run.
type Report struct {
	RunID    uuid.UUID
	Started  time.Time
	Duration time.Duration
	Files    []FileResult
}

// New creates an empty report for a run starting now.
func New() *Report {
	return &Report{
		RunID:   uuid.New(),
		Started: time.Now(),
	}
}

// Add appends the result for path.
func (r *Report) Add(path string, res scan.Result, err error) {
	r.Files = append(r.Files, FileResult{Path: path, Result: res, Err: err})
}

// Finish records the run duration.
func (r *Report) Finish() {
	r.Duration = time.Since(r.Started)
}

// HasDiagnostics reports whether any file contained malformed sequences.
func (r *Report) HasDiagnostics() bool {
	for _, f := range r.Files {
		if !f.Result.Valid() {
			return true
		}
	}
	return false
}

// HasErrors reports whether any file failed to scan.
func (r *Report) HasErrors() bool {
	for _, f := range r.Files {
		if f.Err != nil {
			return true
		}
	}
	return false
}

// Summary aggregates the statistics of every file.
type Summary struct {
	Files        int
	InvalidFiles int
	FailedFiles  int
	Bytes        int
	Chars        int
	Lines        int
	Invalid      int
}

// Summary totals the report.
func (r *Report) Summary() Summary {
	s := Summary{Files: len(r.Files)}
	for _, f := range r.Files {
		st := f.Result.Stats
		s.Bytes += st.Bytes
		s.Chars += st.Chars
		s.Lines += st.Lines
		s.Invalid += st.Invalid
		if st.Invalid > 0 {
			s.InvalidFiles++
		}
		if f.Err != nil {
			s.FailedFiles++
		}
	}
	return s
}

// Formatter writes a report.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// Options configures the formatter returned by ForName.
type Options struct {
	// Color enables ANSI color in text output.
	Color bool
	// Excerpt prints the offending source line under each text diagnostic.
	Excerpt bool
	// Indent pretty-prints JSON output.
	Indent bool
}

// ForName returns the formatter for "text", "json" or "yaml".
func ForName(name string, opts Options) (Formatter, error) {
	switch name {
	case "text", "":
		return &TextFormatter{Color: opts.Color, Excerpt: opts.Excerpt}, nil
	case "json":
		return &JSONFormatter{Indent: opts.Indent}, nil
	case "yaml":
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}
