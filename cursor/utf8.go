package cursor

// utf8CharWidth maps a lead byte to the length of the sequence it starts.
// Zero marks bytes that cannot start a sequence: continuation bytes, the
// overlong leads 0xC0 and 0xC1, and 0xF5 through 0xFF.
var utf8CharWidth = [256]uint8{
	// 1  2  3  4  5  6  7  8  9  A  B  C  D  E  F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 1
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 2
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 3
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 4
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 5
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 6
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 7
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 8
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 9
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // A
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // B
	0, 0, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, // C
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, // D
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, // E
	4, 4, 4, 4, 4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // F
}

// SequenceWidth returns the length of the UTF-8 sequence started by lead,
// or 0 if lead cannot start a sequence.
func SequenceWidth(lead byte) int {
	return int(utf8CharWidth[lead])
}

// IsContinuation reports whether b has the continuation bit pattern 10xxxxxx.
func IsContinuation(b byte) bool {
	return b&0b1100_0000 == 0b1000_0000
}

// AdvanceChar consumes one UTF-8 encoded character, or one CR, LF or CRLF
// line terminator, and counts it as a single logical advance.
//
// At the end of the buffer it succeeds without moving. On failure it returns
// an Error and leaves the cursor just past the last byte examined, so the
// caller decides how to resume.
func (c *Cursor) AdvanceChar() error {
	c.guard()
	return c.st.advanceChar()
}

// AdvanceCharUnchecked skips one character using only the width of its lead
// byte, without validating continuation bytes.
//
// The caller must ensure HasNext() is true and that a well-formed sequence
// starts at the current position. A byte that cannot start a sequence is
// skipped alone, and a truncated sequence stops at the end of the buffer.
func (c *Cursor) AdvanceCharUnchecked() {
	c.guard()
	s := c.st
	w := int(utf8CharWidth[s.peekUnchecked()])
	if w == 0 {
		w = 1
	}
	s.index++
	s.pos = min(s.pos+w, len(s.buf))
}

func (s *state) advanceChar() error {
	s.index++

	lead, ok := s.read()
	if !ok {
		return nil
	}

	switch utf8CharWidth[lead] {
	case 0:
		return ErrEncounteredContinuationByte
	case 1:
		if lead == '\r' && s.hasNext() && s.buf[s.pos] == '\n' {
			s.pos++
		}
		return nil
	case 2:
		return s.expectContinuation(ErrMissing2ndOf2, ErrInvalid2ndOf2)
	case 3:
		if err := s.expectContinuation(ErrMissing2ndOf3, ErrInvalid2ndOf3); err != nil {
			return err
		}
		return s.expectContinuation(ErrMissing3rdOf3, ErrInvalid3rdOf3)
	default:
		if err := s.expectContinuation(ErrMissing2ndOf4, ErrInvalid2ndOf4); err != nil {
			return err
		}
		if err := s.expectContinuation(ErrMissing3rdOf4, ErrInvalid3rdOf4); err != nil {
			return err
		}
		return s.expectContinuation(ErrMissing4thOf4, ErrInvalid4thOf4)
	}
}

// expectContinuation reads one byte through the line terminator normalizing
// reader and requires it to be a continuation byte.
func (s *state) expectContinuation(missing, invalid Error) error {
	b, ok := s.readLFN()
	if !ok {
		return missing
	}
	if !IsContinuation(b) {
		return invalid
	}
	return nil
}
