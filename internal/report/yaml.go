package report

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter writes the report as a YAML document with the same shape
// as the JSON output.
type YAMLFormatter struct{}

type yamlReport struct {
	RunID      string     `yaml:"runId"`
	Started    string     `yaml:"started"`
	DurationMs int64      `yaml:"durationMs"`
	Summary    yamlTotals `yaml:"summary"`
	Files      []yamlFile `yaml:"files"`
}

type yamlTotals struct {
	Files        int `yaml:"files"`
	InvalidFiles int `yaml:"invalidFiles"`
	FailedFiles  int `yaml:"failedFiles"`
	Bytes        int `yaml:"bytes"`
	Chars        int `yaml:"chars"`
	Lines        int `yaml:"lines"`
	Invalid      int `yaml:"invalid"`
}

type yamlFile struct {
	Path        string           `yaml:"path"`
	Error       string           `yaml:"error,omitempty"`
	Valid       bool             `yaml:"valid"`
	Stats       yamlStats        `yaml:"stats"`
	Truncated   bool             `yaml:"truncated"`
	Aborted     bool             `yaml:"aborted"`
	Diagnostics []yamlDiagnostic `yaml:"diagnostics"`
	Lines       []yamlLine       `yaml:"lines,omitempty"`
}

type yamlLine struct {
	No         int    `yaml:"no"`
	Start      int    `yaml:"start"`
	End        int    `yaml:"end"`
	Terminator string `yaml:"terminator"`
	Valid      bool   `yaml:"valid"`
}

type yamlStats struct {
	Bytes      int    `yaml:"bytes"`
	Chars      int    `yaml:"chars"`
	Lines      int    `yaml:"lines"`
	Invalid    int    `yaml:"invalid"`
	LineEnding string `yaml:"lineEnding"`
}

type yamlDiagnostic struct {
	Line    int    `yaml:"line"`
	Column  int    `yaml:"column"`
	Offset  int    `yaml:"offset"`
	End     int    `yaml:"end"`
	Index   int64  `yaml:"index"`
	Lead    int    `yaml:"lead"`
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
}

// Format writes r to w.
func (f *YAMLFormatter) Format(w io.Writer, r *Report) error {
	s := r.Summary()
	doc := yamlReport{
		RunID:      r.RunID.String(),
		Started:    r.Started.Format(time.RFC3339Nano),
		DurationMs: r.Duration.Milliseconds(),
		Summary:    yamlTotals(s),
		Files:      make([]yamlFile, 0, len(r.Files)),
	}

	for _, file := range r.Files {
		res := file.Result
		yf := yamlFile{
			Path:  file.Path,
			Valid: res.Valid(),
			Stats: yamlStats{
				Bytes:      res.Stats.Bytes,
				Chars:      res.Stats.Chars,
				Lines:      res.Stats.Lines,
				Invalid:    res.Stats.Invalid,
				LineEnding: res.Stats.LineEnding(),
			},
			Truncated:   res.Truncated,
			Aborted:     res.Aborted,
			Diagnostics: make([]yamlDiagnostic, 0, len(res.Diagnostics)),
		}
		if file.Err != nil {
			yf.Error = file.Err.Error()
		}
		for _, d := range res.Diagnostics {
			yf.Diagnostics = append(yf.Diagnostics, yamlDiagnostic{
				Line:    d.Line,
				Column:  d.Column,
				Offset:  d.Offset,
				End:     d.End,
				Index:   d.Index,
				Lead:    int(d.Lead),
				Kind:    d.Err.String(),
				Message: d.Err.Error(),
			})
		}
		for _, l := range res.Lines {
			yf.Lines = append(yf.Lines, yamlLine{
				No:         l.No,
				Start:      l.Start,
				End:        l.End,
				Terminator: l.Terminator.Name(),
				Valid:      l.Valid,
			})
		}
		doc.Files = append(doc.Files, yf)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
