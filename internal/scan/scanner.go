package scan

import (
	"context"
	"fmt"
	"os"

	"github.com/dshills/bytecursor/internal/logging"
)

// ctxCheckInterval is the number of lines scanned between context checks.
const ctxCheckInterval = 1024

// Options configures a Scanner.
type Options struct {
	// Policy selects how scanning resumes after a malformed sequence.
	Policy Policy
	// MaxDiagnostics caps the diagnostics kept per buffer. Zero means no cap.
	MaxDiagnostics int
	// CollectLines keeps a Line record for every line of the buffer.
	CollectLines bool
}

// DefaultOptions returns the default scanner options.
func DefaultOptions() Options {
	return Options{
		Policy:         PolicyResync,
		MaxDiagnostics: 100,
	}
}

// Scanner validates buffers and files.
// A Scanner holds no per-scan state and may be shared between goroutines.
type Scanner struct {
	opts Options
	log  *logging.Logger
}

// New creates a scanner. A nil logger discards output.
func New(opts Options, log *logging.Logger) *Scanner {
	if log == nil {
		log = logging.Nop()
	}
	return &Scanner{
		opts: opts,
		log:  log.WithComponent("scan"),
	}
}

// Options returns the scanner's options.
func (s *Scanner) Options() Options {
	return s.opts
}

// Scan validates buf. Line texts in the result alias buf.
func (s *Scanner) Scan(buf []byte) Result {
	res, _ := s.ScanContext(context.Background(), buf)
	return res
}

// ScanContext validates buf, returning early with ctx.Err() if ctx is
// cancelled. The partial result is returned alongside the error.
func (s *Scanner) ScanContext(ctx context.Context, buf []byte) (Result, error) {
	res := Result{Source: buf}
	r := NewLineReader(buf, s.opts.Policy)

	for r.Next() {
		if r.Line().No%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				res.Stats = r.Stats()
				return res, err
			}
		}

		for _, d := range r.Diagnostics() {
			if s.opts.MaxDiagnostics > 0 && len(res.Diagnostics) >= s.opts.MaxDiagnostics {
				res.Truncated = true
				break
			}
			res.Diagnostics = append(res.Diagnostics, d)
		}

		if s.opts.CollectLines {
			res.Lines = append(res.Lines, r.Line())
		}
	}

	res.Stats = r.Stats()
	res.Aborted = r.Aborted()

	s.log.Debug("scanned %d bytes: %d chars, %d lines, %d invalid (%s endings)",
		res.Stats.Bytes, res.Stats.Chars, res.Stats.Lines, res.Stats.Invalid, res.Stats.LineEnding())

	return res, nil
}

// ScanFile reads and validates the file at path.
func (s *Scanner) ScanFile(ctx context.Context, path string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}

	res, err := s.ScanContext(ctx, data)
	if err != nil {
		return res, fmt.Errorf("scanning %s: %w", path, err)
	}

	if !res.Valid() {
		s.log.WithField("path", path).Info("%d malformed sequences", res.Stats.Invalid)
	}
	return res, nil
}
