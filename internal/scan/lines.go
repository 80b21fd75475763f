package scan

import (
	"errors"
	"fmt"

	"github.com/dshills/bytecursor/cursor"
)

// LineReader iterates over the logical lines of a buffer, validating each
// character as it goes.
//
//	r := scan.NewLineReader(buf, scan.PolicyResync)
//	for r.Next() {
//		line := r.Line()
//		for _, d := range r.Diagnostics() {
//			...
//		}
//	}
type LineReader struct {
	c       *cursor.Cursor
	policy  Policy
	line    Line
	diags   []Diagnostic
	stats   Stats
	done    bool
	aborted bool
}

// NewLineReader creates a reader positioned before the first line of buf.
func NewLineReader(buf []byte, policy Policy) *LineReader {
	return &LineReader{
		c:      cursor.New(buf),
		policy: policy,
		stats:  Stats{Bytes: len(buf)},
	}
}

// Next advances to the next line. It returns false when the buffer is
// exhausted or PolicyAbort stopped the reader. An empty buffer has no lines,
// and a trailing terminator does not start another line.
func (r *LineReader) Next() bool {
	if r.done || !r.c.HasNext() {
		r.done = true
		return false
	}

	r.diags = r.diags[:0]
	r.stats.Lines++
	r.line = Line{No: r.stats.Lines, Start: r.c.Offset()}

	rec := r.c.BeginRecording()
	r.line.Valid = r.readText(rec.Cursor())
	r.line.End = r.c.Offset()
	r.line.Text = rec.Stop()

	if r.aborted {
		r.done = true
		return true
	}
	r.line.Terminator = r.readTerminator()
	return true
}

// Line returns the current line.
func (r *LineReader) Line() Line {
	return r.line
}

// Diagnostics returns the malformed sequences found on the current line.
// The slice is reused by the next call to Next.
func (r *LineReader) Diagnostics() []Diagnostic {
	return r.diags
}

// Stats returns the statistics accumulated so far.
func (r *LineReader) Stats() Stats {
	return r.stats
}

// Aborted reports whether PolicyAbort stopped the reader.
func (r *LineReader) Aborted() bool {
	return r.aborted
}

// readText advances c up to the next line terminator or the end of the
// buffer, recording a diagnostic for every malformed sequence. It reports
// whether the text was well formed.
func (r *LineReader) readText(c *cursor.Cursor) bool {
	valid := true
	col := 1

	for c.HasNext() {
		lead := c.PeekUnchecked()
		if lead == '\r' || lead == '\n' {
			break
		}

		offset := c.Offset()
		err := c.AdvanceChar()
		if err == nil {
			r.stats.Chars++
			col++
			continue
		}

		var e cursor.Error
		errors.As(err, &e)

		valid = false
		r.stats.Invalid++
		r.diags = append(r.diags, Diagnostic{
			Offset: offset,
			End:    c.Offset(),
			Line:   r.line.No,
			Column: col,
			Index:  c.Index(),
			Err:    e,
			Lead:   lead,
		})
		col++

		switch {
		case r.policy == PolicyAbort:
			r.aborted = true
			return false
		case r.policy == PolicyResync && e.IsInvalid():
			// The offending byte may start a sequence of its own, or be
			// the terminator that ends this line.
			c.RewindLFN()
		}
	}

	return valid
}

// readTerminator consumes the line terminator at the cursor, if any.
func (r *LineReader) readTerminator() Terminator {
	lead, ok := r.c.Peek()
	if !ok {
		return TermNone
	}

	before := r.c.Offset()
	if err := r.c.AdvanceChar(); err != nil {
		// Callers only stop at CR or LF, which always decode.
		panic(fmt.Errorf("scan: terminator at offset %d: %w", before, err))
	}
	r.stats.Chars++

	switch {
	case lead == '\n':
		r.stats.LF++
		return TermLF
	case r.c.Offset()-before == 2:
		r.stats.CRLF++
		return TermCRLF
	default:
		r.stats.CR++
		return TermCR
	}
}
