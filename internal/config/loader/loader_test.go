package loader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func TestTOMLLoader_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"u8scan.toml": {Data: []byte(`
[scan]
policy = "skip"
maxDiagnostics = 50

[output]
format = "json"
`)},
	}

	config, err := NewTOMLLoaderWithFS(fsys, "u8scan.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := GetByPath(config, "scan.policy"); !ok || val != "skip" {
		t.Errorf("scan.policy = %v, want 'skip'", val)
	}
	if val, ok := GetByPath(config, "scan.maxDiagnostics"); !ok || val != int64(50) {
		t.Errorf("scan.maxDiagnostics = %v (%T), want 50", val, val)
	}
	if val, ok := GetByPath(config, "output.format"); !ok || val != "json" {
		t.Errorf("output.format = %v, want 'json'", val)
	}
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(fstest.MapFS{}, "missing.toml").Load()
	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config for missing file, got %v", config)
	}
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.toml": {Data: []byte("[scan\npolicy = ")},
	}

	_, err := NewTOMLLoaderWithFS(fsys, "bad.toml").Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Path != "bad.toml" {
		t.Errorf("Path = %q, want %q", pe.Path, "bad.toml")
	}
	if pe.Line == 0 {
		t.Error("expected a line number in the parse error")
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[logging]\nlevel = \"debug\"\n"))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if val, _ := GetByPath(config, "logging.level"); val != "debug" {
		t.Errorf("logging.level = %v, want 'debug'", val)
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"u8scan.yaml": {Data: []byte(`
scan:
  policy: abort
  lines: true
watch:
  ignore:
    - "*.bin"
    - vendor/
`)},
	}

	config, err := NewYAMLLoaderWithFS(fsys, "u8scan.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, _ := GetByPath(config, "scan.policy"); val != "abort" {
		t.Errorf("scan.policy = %v, want 'abort'", val)
	}
	if val, _ := GetByPath(config, "scan.lines"); val != true {
		t.Errorf("scan.lines = %v, want true", val)
	}
	ignore, _ := GetByPath(config, "watch.ignore")
	list, ok := ignore.([]any)
	if !ok || len(list) != 2 || list[1] != "vendor/" {
		t.Errorf("watch.ignore = %v, want [*.bin vendor/]", ignore)
	}
}

func TestYAMLLoader_Empty(t *testing.T) {
	fsys := fstest.MapFS{"empty.yml": {Data: []byte("")}}
	config, err := NewYAMLLoaderWithFS(fsys, "empty.yml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("expected empty map, got %v", config)
	}
}

func TestYAMLLoader_LoadInvalid(t *testing.T) {
	fsys := fstest.MapFS{"bad.yaml": {Data: []byte("scan: [unclosed")}}
	_, err := NewYAMLLoaderWithFS(fsys, "bad.yaml").Load()

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestForPath(t *testing.T) {
	fsys := fstest.MapFS{}
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"a.toml", "toml", false},
		{"a.yaml", "yaml", false},
		{"a.YML", "yaml", false},
		{"config", "toml", false},
		{"a.json", "", true},
	}

	for _, tt := range tests {
		l, err := ForPath(fsys, tt.path)
		if tt.wantErr {
			var ue *UnsupportedFormatError
			if !errors.As(err, &ue) {
				t.Errorf("ForPath(%q): expected UnsupportedFormatError, got %v", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForPath(%q): unexpected error %v", tt.path, err)
			continue
		}
		switch l.(type) {
		case *TOMLLoader:
			if tt.want != "toml" {
				t.Errorf("ForPath(%q) = TOML loader, want %s", tt.path, tt.want)
			}
		case *YAMLLoader:
			if tt.want != "yaml" {
				t.Errorf("ForPath(%q) = YAML loader, want %s", tt.path, tt.want)
			}
		}
	}
}

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("U8SCAN_LOG_LEVEL", "debug")
	t.Setenv("U8SCAN_MAX", "7")
	t.Setenv("U8SCAN_WATCH_DEBOUNCE", "250ms")
	t.Setenv("U8SCAN_WATCH_IGNORE", "*.log, build/")

	config, err := NewEnvLoader(DefaultEnvPrefix).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, _ := GetByPath(config, "logging.level"); val != "debug" {
		t.Errorf("logging.level = %v, want 'debug'", val)
	}
	if val, _ := GetByPath(config, "scan.maxDiagnostics"); val != int64(7) {
		t.Errorf("scan.maxDiagnostics = %v (%T), want 7", val, val)
	}
	if val, _ := GetByPath(config, "watch.debounce"); val != 250*time.Millisecond {
		t.Errorf("watch.debounce = %v, want 250ms", val)
	}
	ignore, _ := GetByPath(config, "watch.ignore")
	if list, ok := ignore.([]any); !ok || len(list) != 2 || list[0] != "*.log" {
		t.Errorf("watch.ignore = %v, want [*.log build/]", ignore)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	tests := []struct {
		env  string
		want string
	}{
		{"U8SCAN_SCAN_POLICY", "scan.policy"},
		{"U8SCAN_SCAN_MAX_DIAGNOSTICS", "scan.maxDiagnostics"},
		{"U8SCAN_OUTPUT_EXCERPT", "output.excerpt"},
		{"U8SCAN_VERBOSE", "verbose"},
	}

	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"", ""},
		{"true", true},
		{"OFF", false},
		{"42", int64(42)},
		{"1s", time.Second},
		{"text", "text"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.input); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"scan":   map[string]any{"policy": "resync", "maxDiagnostics": int64(10)},
		"output": map[string]any{"format": "text"},
	}
	src := map[string]any{
		"scan":    map[string]any{"policy": "skip"},
		"logging": map[string]any{"level": "warn"},
	}

	merged := DeepMerge(dst, src)

	if val, _ := GetByPath(merged, "scan.policy"); val != "skip" {
		t.Errorf("scan.policy = %v, want 'skip'", val)
	}
	if val, _ := GetByPath(merged, "scan.maxDiagnostics"); val != int64(10) {
		t.Errorf("scan.maxDiagnostics = %v, want 10", val)
	}
	if val, _ := GetByPath(merged, "output.format"); val != "text" {
		t.Errorf("output.format = %v, want 'text'", val)
	}
	if val, _ := GetByPath(merged, "logging.level"); val != "warn" {
		t.Errorf("logging.level = %v, want 'warn'", val)
	}
}
