package cursor

import (
	"errors"
	"testing"
)

func TestSequenceWidth(t *testing.T) {
	tests := []struct {
		lo, hi byte
		want   int
	}{
		{0x00, 0x7F, 1},
		{0x80, 0xBF, 0},
		{0xC0, 0xC1, 0},
		{0xC2, 0xDF, 2},
		{0xE0, 0xEF, 3},
		{0xF0, 0xF4, 4},
		{0xF5, 0xFF, 0},
	}

	for _, tt := range tests {
		for b := int(tt.lo); b <= int(tt.hi); b++ {
			if got := SequenceWidth(byte(b)); got != tt.want {
				t.Errorf("SequenceWidth(%#02x) = %d, want %d", b, got, tt.want)
			}
		}
	}
}

func TestAdvanceChar(t *testing.T) {
	tests := []struct {
		name       string
		input      []byte
		wantErr    Error // 0 means success
		wantOffset int
	}{
		{"end of input", nil, 0, 0},
		{"ascii", []byte("A"), 0, 1},
		{"lf", []byte("\n"), 0, 1},
		{"lone cr", []byte("\rA"), 0, 1},
		{"crlf", []byte("\r\n"), 0, 2},
		{"continuation as lead", []byte{0x80}, ErrEncounteredContinuationByte, 1},
		{"overlong lead", []byte{0xC0, 0x80}, ErrEncounteredContinuationByte, 1},
		{"lead above f4", []byte{0xF5, 0x80}, ErrEncounteredContinuationByte, 1},

		{"2 byte valid", []byte{0xC2, 0xA9}, 0, 2},
		{"2 byte missing 2nd", []byte{0xC2}, ErrMissing2ndOf2, 1},
		{"2 byte invalid 2nd", []byte{0xC2, 0x41}, ErrInvalid2ndOf2, 2},

		{"3 byte valid", []byte{0xE2, 0x82, 0xAC}, 0, 3},
		{"3 byte missing 2nd", []byte{0xE2}, ErrMissing2ndOf3, 1},
		{"3 byte invalid 2nd", []byte{0xE2, 0x28}, ErrInvalid2ndOf3, 2},
		{"3 byte missing 3rd", []byte{0xE2, 0x82}, ErrMissing3rdOf3, 2},
		{"3 byte invalid 3rd", []byte{0xE2, 0x82, 0x28}, ErrInvalid3rdOf3, 3},

		{"4 byte valid", []byte{0xF0, 0x9F, 0x92, 0xA9}, 0, 4},
		{"4 byte missing 2nd", []byte{0xF0}, ErrMissing2ndOf4, 1},
		{"4 byte invalid 2nd", []byte{0xF0, 0x28}, ErrInvalid2ndOf4, 2},
		{"4 byte missing 3rd", []byte{0xF0, 0x9F}, ErrMissing3rdOf4, 2},
		{"4 byte invalid 3rd", []byte{0xF0, 0x9F, 0x28}, ErrInvalid3rdOf4, 3},
		{"4 byte missing 4th", []byte{0xF0, 0x9F, 0x92}, ErrMissing4thOf4, 3},
		{"4 byte invalid 4th", []byte{0xF0, 0x9F, 0x92, 0x28}, ErrInvalid4thOf4, 4},

		{"invalid cr consumes crlf", []byte{0xC2, '\r', '\n', 'x'}, ErrInvalid2ndOf2, 3},
		{"invalid stops before rest", []byte{0xE2, 0x41, 0x82, 0xAC}, ErrInvalid2ndOf3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.input)
			err := c.AdvanceChar()

			if tt.wantErr == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if c.Offset() != tt.wantOffset {
				t.Errorf("offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
			if c.Index() != 1 {
				t.Errorf("index = %d, want 1", c.Index())
			}
		})
	}
}

func TestAdvanceCharErrorAs(t *testing.T) {
	c := New([]byte{0xE2, 0x82})
	err := c.AdvanceChar()

	var e Error
	if !errors.As(err, &e) {
		t.Fatalf("errors.As failed for %v", err)
	}
	if e != ErrMissing3rdOf3 {
		t.Errorf("got %v, want %v", e, ErrMissing3rdOf3)
	}
}

func TestAdvanceCharWalk(t *testing.T) {
	input := "héllo €\r\n😀\rz"
	c := FromString(input)

	var calls int64
	for c.HasNext() {
		if err := c.AdvanceChar(); err != nil {
			t.Fatalf("unexpected error at offset %d: %v", c.Offset(), err)
		}
		calls++
	}

	// h é l l o ' ' € CRLF 😀 CR z
	if calls != 11 {
		t.Errorf("calls = %d, want 11", calls)
	}
	if c.Index() != calls {
		t.Errorf("index = %d, want %d", c.Index(), calls)
	}
	if c.Offset() != len(input) {
		t.Errorf("offset = %d, want %d", c.Offset(), len(input))
	}
}

func TestAdvanceCharAtEndCountsIndex(t *testing.T) {
	c := New(nil)
	for i := 0; i < 3; i++ {
		if err := c.AdvanceChar(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if c.Index() != 3 || c.Offset() != 0 {
		t.Errorf("got index=%d offset=%d, want 3, 0", c.Index(), c.Offset())
	}
}

func TestAdvanceCharUnchecked(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		offsets []int
	}{
		{"mixed widths", "é€😀a", []int{2, 5, 9, 10}},
		{"stray continuation", "\x80a", []int{1, 2}},
		{"truncated clamps", "\xF0\x9F", []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromString(tt.input)
			for i, want := range tt.offsets {
				c.AdvanceCharUnchecked()
				if c.Offset() != want {
					t.Errorf("step %d: offset = %d, want %d", i, c.Offset(), want)
				}
			}
			if c.Index() != int64(len(tt.offsets)) {
				t.Errorf("index = %d, want %d", c.Index(), len(tt.offsets))
			}
		})
	}
}

func TestErrorMetadata(t *testing.T) {
	tests := []struct {
		err     Error
		name    string
		seqLen  int
		bytePos int
		missing bool
		invalid bool
	}{
		{ErrEncounteredContinuationByte, "EncounteredContinuationByte", 1, 1, false, false},
		{ErrMissing2ndOf2, "Missing2ndOf2", 2, 2, true, false},
		{ErrInvalid2ndOf2, "Invalid2ndOf2", 2, 2, false, true},
		{ErrMissing2ndOf3, "Missing2ndOf3", 3, 2, true, false},
		{ErrInvalid2ndOf3, "Invalid2ndOf3", 3, 2, false, true},
		{ErrMissing3rdOf3, "Missing3rdOf3", 3, 3, true, false},
		{ErrInvalid3rdOf3, "Invalid3rdOf3", 3, 3, false, true},
		{ErrMissing2ndOf4, "Missing2ndOf4", 4, 2, true, false},
		{ErrInvalid2ndOf4, "Invalid2ndOf4", 4, 2, false, true},
		{ErrMissing3rdOf4, "Missing3rdOf4", 4, 3, true, false},
		{ErrInvalid3rdOf4, "Invalid3rdOf4", 4, 3, false, true},
		{ErrMissing4thOf4, "Missing4thOf4", 4, 4, true, false},
		{ErrInvalid4thOf4, "Invalid4thOf4", 4, 4, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.err.Valid() {
				t.Fatal("expected valid error")
			}
			if got := tt.err.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.err.SequenceLen(); got != tt.seqLen {
				t.Errorf("SequenceLen() = %d, want %d", got, tt.seqLen)
			}
			if got := tt.err.BytePos(); got != tt.bytePos {
				t.Errorf("BytePos() = %d, want %d", got, tt.bytePos)
			}
			if got := tt.err.IsMissing(); got != tt.missing {
				t.Errorf("IsMissing() = %v, want %v", got, tt.missing)
			}
			if got := tt.err.IsInvalid(); got != tt.invalid {
				t.Errorf("IsInvalid() = %v, want %v", got, tt.invalid)
			}
			if tt.err.Error() == "" {
				t.Error("Error() should not be empty")
			}
		})
	}
}

func TestErrorZeroValue(t *testing.T) {
	var e Error
	if e.Valid() {
		t.Error("zero Error should not be valid")
	}
	if e.Error() != "utf8: unknown error" {
		t.Errorf("Error() = %q", e.Error())
	}
	if e.SequenceLen() != 0 || e.BytePos() != 0 || e.IsMissing() || e.IsInvalid() {
		t.Error("zero Error should carry no metadata")
	}
}
