package cursor

import "unsafe"

// Recorder captures the bytes traversed between BeginRecording and Stop.
//
// While a Recorder is open it holds its Cursor exclusively: the handle
// returned by Cursor is the only one that may navigate. Recordings nest;
// stopping an inner recording hands the cursor back to the outer one.
type Recorder struct {
	handle Cursor
	start  int
	parent *Recorder
	open   bool
}

// BeginRecording opens a Recorder at the current position.
// Navigate through the Recorder's Cursor until Stop is called.
func (c *Cursor) BeginRecording() *Recorder {
	c.guard()
	r := &Recorder{
		start:  c.st.pos,
		parent: c.st.holder,
		open:   true,
	}
	r.handle = Cursor{st: c.st, owner: r}
	c.st.holder = r
	return r
}

// Cursor returns the handle used to navigate during the recording.
// The handle is unusable after Stop.
func (r *Recorder) Cursor() *Cursor {
	return &r.handle
}

// Start returns the byte offset at which the recording began.
func (r *Recorder) Start() int {
	return r.start
}

// Stop ends the recording and returns the bytes between the start position
// and the current position as a string. Backward recordings are supported;
// the range always runs from the lower to the higher offset.
//
// The string aliases the cursor's buffer. It is only valid UTF-8 if every
// byte in the range was traversed by AdvanceChar without error.
func (r *Recorder) Stop() string {
	s := r.handle.st
	if !r.open || s.holder != r {
		panic(ErrRecorderInactive)
	}
	r.open = false
	s.holder = r.parent

	lo, hi := r.start, s.pos
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return ""
	}
	b := s.buf[lo:hi]
	return unsafe.String(unsafe.SliceData(b), len(b))
}
