package cursor

import "errors"

// Misuse errors. These report programming errors and are raised as panics.
var (
	// ErrCursorBorrowed indicates navigation through a Cursor handle while a
	// Recorder holds it exclusively.
	ErrCursorBorrowed = errors.New("cursor: navigation while a recorder holds the cursor")

	// ErrRecorderInactive indicates Stop on a Recorder that was already
	// stopped or is not the innermost open recording.
	ErrRecorderInactive = errors.New("cursor: recorder is not the active recording")

	// ErrPrecondition indicates an unchecked method was called with its
	// precondition violated. Only raised in cursordebug builds.
	ErrPrecondition = errors.New("cursor: unchecked precondition violated")
)

// Error is a UTF-8 validation failure reported by AdvanceChar.
//
// Error values are comparable and carry no payload beyond their kind.
// The zero value is not a valid Error.
type Error uint8

// Validation failures, one per malformation AdvanceChar can observe.
const (
	// ErrEncounteredContinuationByte: a continuation byte (or a byte that can
	// never start a sequence) where a lead byte was expected.
	ErrEncounteredContinuationByte Error = iota + 1

	ErrMissing2ndOf2
	ErrInvalid2ndOf2

	ErrMissing2ndOf3
	ErrInvalid2ndOf3
	ErrMissing3rdOf3
	ErrInvalid3rdOf3

	ErrMissing2ndOf4
	ErrInvalid2ndOf4
	ErrMissing3rdOf4
	ErrInvalid3rdOf4
	ErrMissing4thOf4
	ErrInvalid4thOf4
)

type errorInfo struct {
	name    string
	seqLen  uint8
	bytePos uint8
	missing bool
	msg     string
}

var errorTable = [...]errorInfo{
	ErrEncounteredContinuationByte: {"EncounteredContinuationByte", 1, 1, false, "encountered a continuation byte where a lead byte was expected"},
	ErrMissing2ndOf2:               {"Missing2ndOf2", 2, 2, true, "input ended before the 2nd byte of a 2-byte sequence"},
	ErrInvalid2ndOf2:               {"Invalid2ndOf2", 2, 2, false, "2nd byte of a 2-byte sequence is not a continuation byte"},
	ErrMissing2ndOf3:               {"Missing2ndOf3", 3, 2, true, "input ended before the 2nd byte of a 3-byte sequence"},
	ErrInvalid2ndOf3:               {"Invalid2ndOf3", 3, 2, false, "2nd byte of a 3-byte sequence is not a continuation byte"},
	ErrMissing3rdOf3:               {"Missing3rdOf3", 3, 3, true, "input ended before the 3rd byte of a 3-byte sequence"},
	ErrInvalid3rdOf3:               {"Invalid3rdOf3", 3, 3, false, "3rd byte of a 3-byte sequence is not a continuation byte"},
	ErrMissing2ndOf4:               {"Missing2ndOf4", 4, 2, true, "input ended before the 2nd byte of a 4-byte sequence"},
	ErrInvalid2ndOf4:               {"Invalid2ndOf4", 4, 2, false, "2nd byte of a 4-byte sequence is not a continuation byte"},
	ErrMissing3rdOf4:               {"Missing3rdOf4", 4, 3, true, "input ended before the 3rd byte of a 4-byte sequence"},
	ErrInvalid3rdOf4:               {"Invalid3rdOf4", 4, 3, false, "3rd byte of a 4-byte sequence is not a continuation byte"},
	ErrMissing4thOf4:               {"Missing4thOf4", 4, 4, true, "input ended before the 4th byte of a 4-byte sequence"},
	ErrInvalid4thOf4:               {"Invalid4thOf4", 4, 4, false, "4th byte of a 4-byte sequence is not a continuation byte"},
}

// Valid reports whether e is one of the defined validation failures.
func (e Error) Valid() bool {
	return e >= ErrEncounteredContinuationByte && e <= ErrInvalid4thOf4
}

// Error implements the error interface.
func (e Error) Error() string {
	if !e.Valid() {
		return "utf8: unknown error"
	}
	return "utf8: " + errorTable[e].msg
}

// String returns the kind name, e.g. "Missing2ndOf3".
func (e Error) String() string {
	if !e.Valid() {
		return "Unknown"
	}
	return errorTable[e].name
}

// IsMissing reports whether the input ended while a continuation byte was
// still expected.
func (e Error) IsMissing() bool {
	return e.Valid() && errorTable[e].missing
}

// IsInvalid reports whether a byte was present but had the wrong bit
// pattern. ErrEncounteredContinuationByte is neither missing nor invalid.
func (e Error) IsInvalid() bool {
	return e.Valid() && e != ErrEncounteredContinuationByte && !errorTable[e].missing
}

// SequenceLen returns the length of the sequence announced by the lead byte,
// or 1 for ErrEncounteredContinuationByte.
func (e Error) SequenceLen() int {
	if !e.Valid() {
		return 0
	}
	return int(errorTable[e].seqLen)
}

// BytePos returns the 1-based position within the sequence of the byte that
// failed validation.
func (e Error) BytePos() int {
	if !e.Valid() {
		return 0
	}
	return int(errorTable[e].bytePos)
}
