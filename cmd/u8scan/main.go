// Package main is the entry point for u8scan, a UTF-8 validator for text
// files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/bytecursor/internal/config"
	"github.com/dshills/bytecursor/internal/config/loader"
	"github.com/dshills/bytecursor/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK          = 0
	exitDiagnostics = 1
	exitError       = 2
)

// defaultConfigPath is read when -config is not given. It may be absent.
const defaultConfigPath = ".u8scan.toml"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, usage, err := parseFlags(args, stderr)
	if err != nil {
		return exitError
	}

	if opts.showHelp {
		usage()
		return exitOK
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "u8scan %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}
	if len(opts.paths) == 0 {
		fmt.Fprintf(stderr, "Error: no files or directories given\n\n")
		usage()
		return exitError
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid configuration: %v\n", err)
		return exitError
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Output: stderr,
		Prefix: "u8scan",
	})

	a, err := newApp(cfg, stdout, log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.watch {
		return a.watch(ctx, opts.paths)
	}
	return a.scanOnce(ctx, opts.paths)
}

// options holds the parsed command line.
type options struct {
	configPath string
	format     string
	policy     string
	color      string
	logLevel   string
	max        int
	excerpt    bool
	lines      bool
	watch      bool

	showVersion bool
	showHelp    bool

	// set records which settings were given explicitly, by long name.
	set   map[string]bool
	paths []string
}

// shorthands maps short flag names to their long forms.
var shorthands = map[string]string{
	"c": "config",
	"f": "format",
	"w": "watch",
	"v": "version",
	"h": "help",
}

func parseFlags(args []string, stderr io.Writer) (*options, func(), error) {
	opts := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("u8scan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.format, "format", "text", "Report format (text, json, yaml)")
	fs.StringVar(&opts.format, "f", "text", "Report format (shorthand)")
	fs.StringVar(&opts.policy, "policy", "resync", "Recovery after a malformed sequence (resync, skip, abort)")
	fs.IntVar(&opts.max, "max", 100, "Maximum diagnostics per file (0 for no limit)")
	fs.StringVar(&opts.color, "color", "auto", "Color text output (auto, always, never)")
	fs.BoolVar(&opts.excerpt, "excerpt", true, "Show the offending line under each diagnostic")
	fs.BoolVar(&opts.lines, "lines", false, "Include a per-line table in the report")
	fs.BoolVar(&opts.watch, "watch", false, "Rescan files as they change")
	fs.BoolVar(&opts.watch, "w", false, "Rescan files as they change (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&opts.showHelp, "help", false, "Show help message")
	fs.BoolVar(&opts.showHelp, "h", false, "Show help message (shorthand)")

	usage := func() {
		out := fs.Output()
		fmt.Fprintf(out, "u8scan - validate UTF-8 text files\n\n")
		fmt.Fprintf(out, "Usage: u8scan [options] <file|dir>...\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExit status: 0 all valid, 1 malformed sequences found, 2 error.\n")
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  u8scan notes.txt             Check one file\n")
		fmt.Fprintf(out, "  u8scan -f json ./docs        Check a tree, JSON report\n")
		fmt.Fprintf(out, "  u8scan -w -policy skip src   Recheck files as they change\n")
	}
	fs.Usage = usage

	if err := fs.Parse(args); err != nil {
		return nil, usage, err
	}

	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := shorthands[name]; ok {
			name = long
		}
		opts.set[name] = true
	})
	opts.paths = fs.Args()

	return opts, usage, nil
}

// loadConfig layers defaults, the config file, U8SCAN_* variables and the
// flags given on the command line.
func loadConfig(opts *options) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = defaultConfigPath
	} else if _, err := os.Stat(path); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(loader.DefaultFS(), path, loader.NewEnvLoader(loader.DefaultEnvPrefix))
	if err != nil {
		return config.Config{}, err
	}

	if opts.set["format"] {
		cfg.Output.Format = opts.format
	}
	if opts.set["policy"] {
		cfg.Scan.Policy = opts.policy
	}
	if opts.set["max"] {
		cfg.Scan.MaxDiagnostics = opts.max
	}
	if opts.set["color"] {
		cfg.Output.Color = opts.color
	}
	if opts.set["excerpt"] {
		cfg.Output.Excerpt = opts.excerpt
	}
	if opts.set["lines"] {
		cfg.Scan.Lines = opts.lines
	}
	if opts.set["log-level"] {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// isInterrupt reports whether err comes from the signal context.
func isInterrupt(err error) bool {
	return errors.Is(err, context.Canceled)
}
