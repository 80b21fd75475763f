package cursor

import "unsafe"

// Cursor tracks a position within an immutable byte buffer.
//
// The position always satisfies 0 <= Offset() <= Len(). Index counts logical
// advances: one per raw byte step, one per NextLFN call and one per
// AdvanceChar call. Rewinds decrement it, so it may go negative when raw
// rewinds undo normalized advances.
type Cursor struct {
	st    *state
	owner *Recorder // recording this handle belongs to; nil for the root handle
	own   state
}

// state is the traversal state shared by a Cursor and the handles of the
// Recorders opened on it.
type state struct {
	buf    []byte
	pos    int
	index  int64
	holder *Recorder // innermost open recording, nil when none
}

// New creates a cursor at the start of buf.
// The cursor never copies buf; buf must not be modified while the cursor or
// any text captured from it is in use.
func New(buf []byte) *Cursor {
	c := &Cursor{own: state{buf: buf}}
	c.st = &c.own
	return c
}

// FromString creates a cursor over the bytes of s without copying them.
func FromString(s string) *Cursor {
	return New(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// AsSlice returns the full underlying buffer.
func (c *Cursor) AsSlice() []byte {
	return c.st.buf
}

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.st.buf)
}

// Offset returns the current byte offset from the start of the buffer.
func (c *Cursor) Offset() int {
	return c.st.pos
}

// Index returns the logical advance counter.
func (c *Cursor) Index() int64 {
	return c.st.index
}

// HasNext reports whether there is a byte at the current position.
func (c *Cursor) HasNext() bool {
	return c.st.hasNext()
}

// CanRewind reports whether the cursor is past the start of the buffer.
func (c *Cursor) CanRewind() bool {
	return c.st.canRewind()
}

// Peek returns the byte at the current position without moving.
// Returns false at the end of the buffer.
func (c *Cursor) Peek() (byte, bool) {
	return c.st.peek()
}

// PeekUnchecked returns the byte at the current position without moving.
//
// The caller must ensure HasNext() is true.
func (c *Cursor) PeekUnchecked() byte {
	return c.st.peekUnchecked()
}

// Next returns the byte at the current position and advances past it.
// Does not normalize line terminators. Returns false at the end of the buffer.
func (c *Cursor) Next() (byte, bool) {
	c.guard()
	b, ok := c.st.read()
	if ok {
		c.st.index++
	}
	return b, ok
}

// NextUnchecked returns the byte at the current position and advances past it.
//
// The caller must ensure HasNext() is true.
func (c *Cursor) NextUnchecked() byte {
	c.guard()
	b := c.st.peekUnchecked()
	c.st.advanceUnchecked()
	return b
}

// Advance moves forward one byte. Saturates at the end of the buffer.
func (c *Cursor) Advance() {
	c.guard()
	if c.st.hasNext() {
		c.st.advanceUnchecked()
	}
}

// AdvanceUnchecked moves forward one byte.
//
// The caller must ensure HasNext() is true.
func (c *Cursor) AdvanceUnchecked() {
	c.guard()
	c.st.advanceUnchecked()
}

// Rewind moves back one byte. Saturates at the start of the buffer.
func (c *Cursor) Rewind() {
	c.guard()
	if c.st.canRewind() {
		c.st.rewindUnchecked()
	}
}

// RewindUnchecked moves back one byte.
//
// The caller must ensure CanRewind() is true.
func (c *Cursor) RewindUnchecked() {
	c.guard()
	c.st.rewindUnchecked()
}

// guard panics when another handle holds the cursor.
func (c *Cursor) guard() {
	if c.st.holder != c.owner {
		panic(ErrCursorBorrowed)
	}
}

func (s *state) hasNext() bool {
	return s.pos < len(s.buf)
}

func (s *state) canRewind() bool {
	return s.pos > 0
}

func (s *state) peek() (byte, bool) {
	if !s.hasNext() {
		return 0, false
	}
	return s.buf[s.pos], true
}

func (s *state) peekUnchecked() byte {
	if debugAssertions && !s.hasNext() {
		panic(ErrPrecondition)
	}
	return s.buf[s.pos]
}

// read returns the next byte and moves past it without touching index.
func (s *state) read() (byte, bool) {
	if !s.hasNext() {
		return 0, false
	}
	b := s.buf[s.pos]
	s.pos++
	return b, true
}

func (s *state) advanceUnchecked() {
	if debugAssertions && !s.hasNext() {
		panic(ErrPrecondition)
	}
	// The index expression keeps pos within the buffer in every build.
	_ = s.buf[s.pos]
	s.index++
	s.pos++
}

func (s *state) rewindUnchecked() {
	if debugAssertions && !s.canRewind() {
		panic(ErrPrecondition)
	}
	_ = s.buf[s.pos-1]
	s.index--
	s.pos--
}
