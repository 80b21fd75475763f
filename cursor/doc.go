// Package cursor provides a position-tracked cursor over an immutable byte
// buffer, the innermost primitive beneath a lexer or parser.
//
// A Cursor walks its buffer one logical unit at a time. Three layers of
// navigation are available:
//
//   - Raw byte navigation: Peek, Next, Advance, Rewind and their unchecked
//     counterparts.
//   - Line-terminator normalized navigation: NextLFN and RewindLFN collapse
//     CR, LF and CRLF into a single logical LF.
//   - UTF-8 validating navigation: AdvanceChar consumes exactly one encoded
//     character and reports precisely why a sequence is malformed.
//
// A Recorder captures the text traversed between two points without copying:
//
//	c := cursor.New(src)
//	rec := c.BeginRecording()
//	rc := rec.Cursor()
//	for rc.HasNext() {
//		if err := rc.AdvanceChar(); err != nil {
//			break
//		}
//	}
//	text := rec.Stop() // aliases src
//
// While a Recorder is open, the Cursor it was created from rejects
// navigation by panicking with ErrCursorBorrowed; all movement goes through
// the Recorder's handle. The buffer must outlive the Cursor and every string
// returned by Stop, and must not be modified while either is in use.
//
// Methods suffixed with Unchecked skip the bounds test of their checked
// counterpart. Their preconditions are part of the contract. A violated
// precondition surfaces as a runtime bounds panic rather than silent
// corruption, and builds with the cursordebug tag assert every precondition
// explicitly.
//
// A Cursor is not safe for concurrent use.
package cursor
