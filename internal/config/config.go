package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dshills/bytecursor/internal/config/loader"
)

// Section structs are plain snapshots; the CLI overrides fields after Load.

// ScanConfig controls how files are validated.
type ScanConfig struct {
	// Policy is the recovery policy after a malformed sequence
	// ("resync", "skip", "abort").
	Policy string

	// MaxDiagnostics caps diagnostics per file. Zero means unlimited.
	MaxDiagnostics int

	// Lines collects per-line records in addition to diagnostics.
	Lines bool
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Format is the report format ("text", "json", "yaml").
	Format string

	// Color controls ANSI color in text output ("auto", "always", "never").
	Color string

	// Excerpt prints the offending source line under each diagnostic.
	Excerpt bool
}

// LoggingConfig controls diagnostic logging of the tool itself.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce coalesces bursts of file events.
	Debounce time.Duration

	// Ignore holds gitignore-style patterns excluded from directory walks
	// and watch events.
	Ignore []string
}

// Config is the complete u8scan configuration.
type Config struct {
	Scan    ScanConfig
	Output  OutputConfig
	Logging LoggingConfig
	Watch   WatchConfig
}

var (
	validPolicies = []string{"resync", "skip", "abort"}
	validFormats  = []string{"text", "json", "yaml"}
	validColors   = []string{"auto", "always", "never"}
	validLevels   = []string{"debug", "info", "warn", "warning", "error"}
)

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			Policy:         "resync",
			MaxDiagnostics: 100,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   "auto",
			Excerpt: true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
			Ignore:   []string{".git/"},
		},
	}
}

// Load builds a configuration from defaults, the file at path (if path is
// non-empty and the file exists) and the environment (if env is non-nil).
func Load(fsys loader.FileSystem, path string, env *loader.EnvLoader) (Config, error) {
	merged := make(map[string]any)

	if path != "" {
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return Config{}, err
		}
		fileCfg, err := l.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, fileCfg)
	}

	if env != nil {
		envCfg, err := env.Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envCfg)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// FromMap applies the settings present in m on top of the defaults.
func FromMap(m map[string]any) (Config, error) {
	cfg := Default()
	var errs []error

	apply := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	apply(setString(m, "scan.policy", &cfg.Scan.Policy))
	apply(setInt(m, "scan.maxDiagnostics", &cfg.Scan.MaxDiagnostics))
	apply(setBool(m, "scan.lines", &cfg.Scan.Lines))
	apply(setString(m, "output.format", &cfg.Output.Format))
	apply(setString(m, "output.color", &cfg.Output.Color))
	apply(setBool(m, "output.excerpt", &cfg.Output.Excerpt))
	apply(setString(m, "logging.level", &cfg.Logging.Level))
	apply(setDuration(m, "watch.debounce", &cfg.Watch.Debounce))
	apply(setStringSlice(m, "watch.ignore", &cfg.Watch.Ignore))

	return cfg, errors.Join(errs...)
}

// Validate checks every setting against its domain.
func (c Config) Validate() error {
	var errs []error
	check := func(path, value string, allowed []string) {
		if !slices.Contains(allowed, value) {
			errs = append(errs, &ValidationError{Path: path, Value: value, Message: fmt.Sprintf("must be one of %v", allowed)})
		}
	}

	check("scan.policy", c.Scan.Policy, validPolicies)
	check("output.format", c.Output.Format, validFormats)
	check("output.color", c.Output.Color, validColors)
	check("logging.level", c.Logging.Level, validLevels)

	if c.Scan.MaxDiagnostics < 0 {
		errs = append(errs, &ValidationError{Path: "scan.maxDiagnostics", Value: c.Scan.MaxDiagnostics, Message: "must not be negative"})
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, &ValidationError{Path: "watch.debounce", Value: c.Watch.Debounce, Message: "must not be negative"})
	}

	return errors.Join(errs...)
}

func setString(m map[string]any, path string, dst *string) error {
	v, ok := loader.GetByPath(m, path)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	*dst = s
	return nil
}

func setInt(m map[string]any, path string, dst *int) error {
	v, ok := loader.GetByPath(m, path)
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case int:
		*dst = val
	case int64:
		*dst = int(val)
	case uint64:
		*dst = int(val)
	case float64:
		*dst = int(val)
	default:
		return &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
	return nil
}

func setBool(m map[string]any, path string, dst *bool) error {
	v, ok := loader.GetByPath(m, path)
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	*dst = b
	return nil
}

// setDuration accepts a time.Duration, a duration string, or an integer
// number of milliseconds.
func setDuration(m map[string]any, path string, dst *time.Duration) error {
	v, ok := loader.GetByPath(m, path)
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case time.Duration:
		*dst = val
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return &ValidationError{Path: path, Value: val, Message: err.Error()}
		}
		*dst = d
	case int:
		*dst = time.Duration(val) * time.Millisecond
	case int64:
		*dst = time.Duration(val) * time.Millisecond
	default:
		return &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
	}
	return nil
}

func setStringSlice(m map[string]any, path string, dst *[]string) error {
	v, ok := loader.GetByPath(m, path)
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case []string:
		*dst = val
	case string:
		*dst = []string{val}
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			result[i] = s
		}
		*dst = result
	default:
		return &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
	return nil
}

// typeName returns a human-readable type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
