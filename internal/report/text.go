package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dshills/bytecursor/internal/scan"
)

// tabWidth is the number of columns a tab expands to in excerpts.
const tabWidth = 4

// TextFormatter writes one "path:line:col: message" line per diagnostic
// followed by a summary.
type TextFormatter struct {
	Color   bool
	Excerpt bool
}

// Format writes r to w.
func (f *TextFormatter) Format(w io.Writer, r *Report) error {
	ew := &errWriter{w: w}

	for _, file := range r.Files {
		f.formatFile(ew, file)
	}
	f.formatSummary(ew, r.Summary())

	return ew.err
}

func (f *TextFormatter) formatFile(w *errWriter, file FileResult) {
	if file.Err != nil {
		w.printf("%s: %s %v\n", f.paint(ansiBold, file.Path), f.paint(ansiRed, "error:"), file.Err)
	}

	res := file.Result
	if res.Lines != nil {
		f.formatLines(w, file.Path, res.Lines)
	}
	for _, d := range res.Diagnostics {
		loc := fmt.Sprintf("%s:%d:%d:", file.Path, d.Line, d.Column)
		w.printf("%s %s (lead byte 0x%02X at offset %d)\n",
			f.paint(ansiBold, loc), f.paint(ansiRed, d.Err.Error()), d.Lead, d.Offset)

		if f.Excerpt {
			if line, pad, ok := excerpt(res.Source, d); ok {
				w.printf("    %s\n    %s%s\n", line, strings.Repeat(" ", pad), f.paint(ansiGreen, "^"))
			}
		}
	}

	if res.Truncated {
		more := res.Stats.Invalid - len(res.Diagnostics)
		w.printf("%s: %s\n", file.Path, f.paint(ansiYel, fmt.Sprintf("%d more diagnostics not shown", more)))
	}
	if res.Aborted {
		w.printf("%s: %s\n", file.Path, f.paint(ansiYel, "scan stopped at first malformed sequence"))
	}
}

// formatLines lists the line table collected for a file.
func (f *TextFormatter) formatLines(w *errWriter, path string, lines []scan.Line) {
	for _, l := range lines {
		state := "ok"
		if !l.Valid {
			state = f.paint(ansiRed, "invalid")
		}
		w.printf("%s:%d: bytes %d-%d %s %s\n", path, l.No, l.Start, l.End, l.Terminator.Name(), state)
	}
}

func (f *TextFormatter) formatSummary(w *errWriter, s Summary) {
	p := message.NewPrinter(language.English)
	line := p.Sprintf("%d files, %d lines, %d bytes: %d malformed sequences in %d files",
		s.Files, s.Lines, s.Bytes, s.Invalid, s.InvalidFiles)
	if s.FailedFiles > 0 {
		line += p.Sprintf(", %d files failed", s.FailedFiles)
	}

	color := ansiGreen
	if s.Invalid > 0 || s.FailedFiles > 0 {
		color = ansiRed
	}
	w.printf("%s\n", f.paint(color, line))
}

func (f *TextFormatter) paint(color, s string) string {
	if !f.Color {
		return s
	}
	return color + s + ansiReset
}

// excerpt returns the source line containing d, made printable, and the
// display column of d within it.
func excerpt(src []byte, d scan.Diagnostic) (string, int, bool) {
	if src == nil || d.Offset > len(src) {
		return "", 0, false
	}

	start := d.Offset
	for start > 0 && src[start-1] != '\n' && src[start-1] != '\r' {
		start--
	}
	end := d.Offset
	for end < len(src) && src[end] != '\n' && src[end] != '\r' {
		end++
	}

	prefix := printable(src[start:d.Offset])
	return printable(src[start:end]), uniseg.StringWidth(prefix), true
}

// printable replaces every invalid byte with U+FFFD and expands tabs, so
// that the widths of a line and of its prefixes agree.
func printable(b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		switch {
		case r == utf8.RuneError && size == 1:
			sb.WriteRune(utf8.RuneError)
		case r == '\t':
			sb.WriteString(strings.Repeat(" ", tabWidth))
		default:
			sb.Write(b[:size])
		}
		b = b[size:]
	}
	return sb.String()
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
