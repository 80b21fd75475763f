package cursor

// NextLFN returns the next byte and advances past it, normalizing line
// terminators: CR, LF and CRLF are all reported as a single LF. A CRLF pair
// moves the cursor two bytes but counts as one logical advance.
// Returns false at the end of the buffer.
func (c *Cursor) NextLFN() (byte, bool) {
	c.guard()
	b, ok := c.st.readLFN()
	if ok {
		c.st.index++
	}
	return b, ok
}

// RewindLFN moves back one logical unit, undoing a NextLFN. A CRLF pair
// before the cursor is stepped over as one unit. No-op at the start of the
// buffer.
func (c *Cursor) RewindLFN() {
	c.guard()
	s := c.st
	if !s.canRewind() {
		return
	}
	s.index--
	s.pos--
	if s.buf[s.pos] == '\n' && s.pos > 0 && s.buf[s.pos-1] == '\r' {
		s.pos--
	}
}

// readLFN is read with line terminator normalization.
func (s *state) readLFN() (byte, bool) {
	b, ok := s.read()
	if !ok || b != '\r' {
		return b, ok
	}
	if s.hasNext() && s.buf[s.pos] == '\n' {
		s.pos++
	}
	return '\n', true
}
