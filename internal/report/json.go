package report

import (
	"fmt"
	"io"
	"time"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/bytecursor/internal/scan"
)

// JSONFormatter writes the report as a single JSON document:
//
//	{"runId": "...", "started": "...", "durationMs": 3,
//	 "summary": {...}, "files": [{"path": "...", "diagnostics": [...]}]}
type JSONFormatter struct {
	// Indent pretty-prints the document.
	Indent bool
}

// Format writes r to w.
func (f *JSONFormatter) Format(w io.Writer, r *Report) error {
	doc, err := buildJSON(r)
	if err != nil {
		return fmt.Errorf("building json report: %w", err)
	}

	out := []byte(doc)
	if f.Indent {
		out = pretty.Pretty(out)
	} else {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}

// jsonBuilder threads the first sjson error through a sequence of sets.
type jsonBuilder struct {
	doc string
	err error
}

func (b *jsonBuilder) set(path string, value any) {
	if b.err == nil {
		b.doc, b.err = sjson.Set(b.doc, path, value)
	}
}

func (b *jsonBuilder) setRaw(path, raw string) {
	if b.err == nil {
		b.doc, b.err = sjson.SetRaw(b.doc, path, raw)
	}
}

func buildJSON(r *Report) (string, error) {
	b := &jsonBuilder{doc: "{}"}
	b.set("runId", r.RunID.String())
	b.set("started", r.Started.Format(time.RFC3339Nano))
	b.set("durationMs", r.Duration.Milliseconds())

	s := r.Summary()
	b.set("summary.files", s.Files)
	b.set("summary.invalidFiles", s.InvalidFiles)
	b.set("summary.failedFiles", s.FailedFiles)
	b.set("summary.bytes", s.Bytes)
	b.set("summary.chars", s.Chars)
	b.set("summary.lines", s.Lines)
	b.set("summary.invalid", s.Invalid)

	b.setRaw("files", "[]")
	for _, file := range r.Files {
		fileDoc, err := fileJSON(file)
		if err != nil {
			return "", err
		}
		b.setRaw("files.-1", fileDoc)
	}
	return b.doc, b.err
}

func fileJSON(file FileResult) (string, error) {
	res := file.Result
	b := &jsonBuilder{doc: "{}"}
	b.set("path", file.Path)
	if file.Err != nil {
		b.set("error", file.Err.Error())
	}
	b.set("valid", res.Valid())
	b.set("stats.bytes", res.Stats.Bytes)
	b.set("stats.chars", res.Stats.Chars)
	b.set("stats.lines", res.Stats.Lines)
	b.set("stats.invalid", res.Stats.Invalid)
	b.set("stats.lineEnding", res.Stats.LineEnding())
	b.set("truncated", res.Truncated)
	b.set("aborted", res.Aborted)

	b.setRaw("diagnostics", "[]")
	for _, d := range res.Diagnostics {
		b.setRaw("diagnostics.-1", diagnosticJSON(d))
	}

	if res.Lines != nil {
		b.setRaw("lines", "[]")
		for _, l := range res.Lines {
			b.setRaw("lines.-1", lineJSON(l))
		}
	}
	return b.doc, b.err
}

func lineJSON(l scan.Line) string {
	b := &jsonBuilder{doc: "{}"}
	b.set("no", l.No)
	b.set("start", l.Start)
	b.set("end", l.End)
	b.set("terminator", l.Terminator.Name())
	b.set("valid", l.Valid)
	return b.doc
}

// diagnosticJSON cannot fail: every path is a plain key.
func diagnosticJSON(d scan.Diagnostic) string {
	b := &jsonBuilder{doc: "{}"}
	b.set("line", d.Line)
	b.set("column", d.Column)
	b.set("offset", d.Offset)
	b.set("end", d.End)
	b.set("index", d.Index)
	b.set("lead", int(d.Lead))
	b.set("kind", d.Err.String())
	b.set("message", d.Err.Error())
	return b.doc
}
