package scan

import (
	"errors"
	"fmt"

	"github.com/dshills/bytecursor/cursor"
)

// ErrUnknownPolicy is returned by ParsePolicy for unrecognized names.
var ErrUnknownPolicy = errors.New("unknown recovery policy")

// Policy selects how scanning resumes after a malformed sequence.
type Policy int

const (
	// PolicyResync re-examines a misplaced non-continuation byte as a lead byte.
	PolicyResync Policy = iota
	// PolicySkip resumes where validation stopped.
	PolicySkip
	// PolicyAbort stops at the first diagnostic.
	PolicyAbort
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyResync:
		return "resync"
	case PolicySkip:
		return "skip"
	case PolicyAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "resync", "":
		return PolicyResync, nil
	case "skip":
		return PolicySkip, nil
	case "abort":
		return PolicyAbort, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Terminator identifies the line terminator that ended a line.
type Terminator uint8

const (
	// TermNone marks the last line of a buffer without a trailing terminator.
	TermNone Terminator = iota
	TermLF
	TermCR
	TermCRLF
)

// String returns the terminator as it appears in the buffer.
func (t Terminator) String() string {
	switch t {
	case TermLF:
		return "\n"
	case TermCR:
		return "\r"
	case TermCRLF:
		return "\r\n"
	default:
		return ""
	}
}

// Name returns a short name suitable for reports.
func (t Terminator) Name() string {
	switch t {
	case TermLF:
		return "lf"
	case TermCR:
		return "cr"
	case TermCRLF:
		return "crlf"
	default:
		return "none"
	}
}

// Line is one logical line of a buffer.
type Line struct {
	// No is the 1-based line number.
	No int
	// Start and End are the byte offsets of Text within the buffer.
	Start, End int
	// Text is the line content without its terminator. It aliases the
	// scanned buffer and is only valid UTF-8 when Valid is true.
	Text string
	// Terminator is the line ending that closed the line.
	Terminator Terminator
	// Valid reports whether the line contained no malformed sequences.
	Valid bool
}

// Diagnostic describes one malformed sequence.
type Diagnostic struct {
	// Offset is the byte offset of the sequence's lead byte.
	Offset int
	// End is the offset just past the last byte examined.
	End int
	// Line and Column locate the sequence, both 1-based. Column counts
	// logical characters, not bytes.
	Line, Column int
	// Index is the cursor's logical index after the failing advance.
	Index int64
	// Err is the validation failure.
	Err cursor.Error
	// Lead is the first byte of the malformed sequence.
	Lead byte
}

// String formats the diagnostic as "line:col: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s (lead byte 0x%02X at offset %d)", d.Line, d.Column, d.Err.Error(), d.Lead, d.Offset)
}

// Stats summarizes a scanned buffer.
type Stats struct {
	Bytes   int
	Chars   int
	Lines   int
	LF      int
	CR      int
	CRLF    int
	Invalid int
}

// LineEnding classifies the terminators seen: "none", "lf", "cr", "crlf"
// or "mixed".
func (s Stats) LineEnding() string {
	kinds := 0
	name := "none"
	for _, k := range []struct {
		n    int
		name string
	}{{s.LF, "lf"}, {s.CR, "cr"}, {s.CRLF, "crlf"}} {
		if k.n > 0 {
			kinds++
			name = k.name
		}
	}
	if kinds > 1 {
		return "mixed"
	}
	return name
}

// Result is the outcome of scanning one buffer.
type Result struct {
	Stats       Stats
	Diagnostics []Diagnostic
	// Truncated reports that diagnostics beyond Options.MaxDiagnostics
	// were dropped. Stats.Invalid still counts them.
	Truncated bool
	// Aborted reports that PolicyAbort stopped the scan early.
	Aborted bool
	// Lines holds every line when Options.CollectLines is set.
	Lines []Line
	// Source is the scanned buffer.
	Source []byte
}

// Valid reports whether the buffer contained no malformed sequences.
func (r Result) Valid() bool {
	return r.Stats.Invalid == 0
}
