package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/bytecursor/internal/config"
	"github.com/dshills/bytecursor/internal/logging"
	"github.com/dshills/bytecursor/internal/report"
	"github.com/dshills/bytecursor/internal/scan"
	"github.com/dshills/bytecursor/internal/watch"
)

// app runs scans for one invocation of the command.
type app struct {
	cfg       config.Config
	scanner   *scan.Scanner
	formatter report.Formatter
	ignore    *watch.IgnorePatterns
	out       io.Writer
	log       *logging.Logger
}

func newApp(cfg config.Config, out io.Writer, log *logging.Logger) (*app, error) {
	policy, err := scan.ParsePolicy(cfg.Scan.Policy)
	if err != nil {
		return nil, err
	}
	mode, err := report.ParseColorMode(cfg.Output.Color)
	if err != nil {
		return nil, err
	}

	formatter, err := report.ForName(cfg.Output.Format, report.Options{
		Color:   report.ShouldColor(mode, fdOf(out)),
		Excerpt: cfg.Output.Excerpt,
		Indent:  true,
	})
	if err != nil {
		return nil, err
	}

	ignore, err := watch.NewIgnorePatterns(cfg.Watch.Ignore...)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg: cfg,
		scanner: scan.New(scan.Options{
			Policy:         policy,
			MaxDiagnostics: cfg.Scan.MaxDiagnostics,
			CollectLines:   cfg.Scan.Lines,
		}, log),
		formatter: formatter,
		ignore:    ignore,
		out:       out,
		log:       log,
	}, nil
}

// fdOf returns the descriptor behind w, or -1 if w is not a file.
func fdOf(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		return int(f.Fd())
	}
	return -1
}

// scanOnce scans every path, writes the report and returns the exit code.
func (a *app) scanOnce(ctx context.Context, paths []string) int {
	rep, err := a.scanPaths(ctx, paths)
	if err != nil {
		a.log.Warn("scan interrupted: %v", err)
		return exitError
	}
	return a.write(rep)
}

func (a *app) scanPaths(ctx context.Context, paths []string) (*report.Report, error) {
	rep := report.New()
	for _, arg := range paths {
		files, err := a.expand(arg)
		if err != nil {
			rep.Add(arg, scan.Result{}, err)
			continue
		}
		for _, file := range files {
			res, err := a.scanner.ScanFile(ctx, file)
			if isInterrupt(err) {
				return rep, err
			}
			rep.Add(file, res, err)
		}
	}
	rep.Finish()
	return rep, nil
}

// expand returns the regular files named by arg. Directories are walked
// and filtered by the ignore patterns; a file named explicitly is always
// included.
func (a *app) expand(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{arg}, nil
	}

	var files []string
	err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != arg && a.ignore.MatchRelative(path, arg, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", arg, err)
	}

	a.log.Debug("%s: %d files", arg, len(files))
	return files, nil
}

// write renders rep and maps it to an exit code.
func (a *app) write(rep *report.Report) int {
	if err := a.formatter.Format(a.out, rep); err != nil {
		a.log.Error("writing report: %v", err)
		return exitError
	}
	return exitCode(rep)
}

func exitCode(rep *report.Report) int {
	switch {
	case rep.HasErrors():
		return exitError
	case rep.HasDiagnostics():
		return exitDiagnostics
	default:
		return exitOK
	}
}

// watch scans paths once, then rescans each file that changes until ctx
// is cancelled. It returns the exit code of the most recent report.
func (a *app) watch(ctx context.Context, paths []string) int {
	code := a.scanOnce(ctx, paths)
	if ctx.Err() != nil {
		return code
	}

	fsw, err := watch.NewFSNotifyWatcher(watch.WithIgnore(a.ignore))
	if err != nil {
		a.log.Error("starting watcher: %v", err)
		return exitError
	}
	w := watch.NewDebouncedWatcher(fsw, a.cfg.Watch.Debounce)
	defer w.Close()

	for _, p := range paths {
		if err := w.WatchRecursive(p); err != nil {
			a.log.WithField("path", p).Warn("not watching: %v", err)
		}
	}
	a.log.Info("watching %d paths", len(paths))

	for {
		select {
		case <-ctx.Done():
			return code

		case ev, ok := <-w.Events():
			if !ok {
				return code
			}
			if next, rescanned := a.rescan(ctx, ev); rescanned {
				code = next
			}

		case err, ok := <-w.Errors():
			if !ok {
				return code
			}
			a.log.Warn("watch: %v", err)
		}
	}
}

// rescan scans the file behind ev and writes a one-file report.
func (a *app) rescan(ctx context.Context, ev watch.Event) (int, bool) {
	if !ev.Op.Rescan() {
		return 0, false
	}
	info, err := os.Stat(ev.Path)
	if err != nil || !info.Mode().IsRegular() {
		return 0, false
	}

	a.log.WithField("op", ev.Op).Debug("rescanning %s", ev.Path)

	rep := report.New()
	res, err := a.scanner.ScanFile(ctx, ev.Path)
	if isInterrupt(err) {
		return 0, false
	}
	if errors.Is(err, fs.ErrNotExist) {
		// Removed between the event and the read.
		return 0, false
	}
	rep.Add(ev.Path, res, err)
	rep.Finish()
	return a.write(rep), true
}
