// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.astrophena.name/credit/cli"
	"go.astrophena.name/credit/config"
	"go.astrophena.name/credit/header"
	"go.astrophena.name/credit/internal/discover"
	"go.astrophena.name/credit/internal/report"
	"go.astrophena.name/credit/internal/watch"
	"go.astrophena.name/credit/lang"
	"go.astrophena.name/credit/logger"
	"go.astrophena.name/credit/systemd"
)

func main() { cli.Main(new(app)) }

// errFailed is returned when some files could not be processed.
var errFailed = errors.New("some files could not be processed")

type app struct {
	// flags
	dir         string
	file        string
	language    string
	force       bool
	yes         bool
	noRecursive bool
	preview     bool
	name        string
	handle      string
	setup       bool
	showConfig  bool
	info        bool
	watch       bool

	// for tests
	now      func() time.Time
	debounce time.Duration
	ready    chan struct{} // closed when watch mode starts waiting for events
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.dir, "dir", "", "Source `directory` (alternative to the positional argument).")
	fs.StringVar(&a.file, "file", "", "Process a single `file`.")
	fs.StringVar(&a.language, "lang", "", "Only process files of this `language`.")
	fs.BoolVar(&a.force, "force", false, "Update notices even if the year is current.")
	fs.BoolVar(&a.yes, "yes", false, "Skip the confirmation prompt.")
	fs.BoolVar(&a.noRecursive, "no-recursive", false, "Don't descend into subdirectories.")
	fs.BoolVar(&a.preview, "preview", false, "Print what would change without writing anything.")
	fs.StringVar(&a.name, "name", "", "Override the copyright holder `name` for this run.")
	fs.StringVar(&a.handle, "handle", "", "Override the copyright holder `handle` for this run.")
	fs.BoolVar(&a.setup, "setup", false, "Prompt for settings and save them to the config file.")
	fs.BoolVar(&a.showConfig, "config", false, "Print the effective configuration.")
	fs.BoolVar(&a.info, "info", false, "Print supported languages and file extensions.")
	fs.BoolVar(&a.watch, "watch", false, "Keep running and reconcile files as they change.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	p := report.New(env.Stdout)

	if len(env.Args) > 1 {
		return fmt.Errorf("%w: at most one directory can be given", cli.ErrInvalidArgs)
	}
	if a.watch && (a.preview || a.file != "") {
		return fmt.Errorf("%w: -watch can't be combined with -preview or -file", cli.ErrInvalidArgs)
	}
	if a.info {
		p.Languages()
		return nil
	}

	cfgPath, err := config.Path(env.Getenv)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	dir := a.dir
	if len(env.Args) == 1 {
		dir = env.Args[0]
	}
	settings := config.Resolve(cfg, config.Overrides{Name: a.name, Handle: a.handle, Directory: dir})

	switch {
	case a.showConfig:
		p.Config(settings, cfgPath)
		return nil
	case a.setup:
		return a.runSetup(env, cfgPath, cfg, settings)
	}

	opts := discover.Options{
		Extensions: lang.AllExtensions(),
		Recursive:  !a.noRecursive,
		Exclude:    settings.Exclude,
	}
	if a.language != "" {
		l, err := lang.Parse(a.language)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrInvalidArgs, err)
		}
		opts.Extensions = l.Extensions()
	}

	files, err := a.files(settings.Directory, opts)
	if err != nil {
		return err
	}

	year := a.year()
	rec := header.New(header.Config{
		Identity: header.Identity{Name: settings.Name, Handle: settings.Handle},
		Year:     year,
		Force:    a.force,
	})

	if len(files) == 0 {
		fmt.Fprintf(env.Stdout, "No matching files found in %s.\n", settings.Directory)
	} else {
		fmt.Fprintf(env.Stdout, "Found %d files to process.\n", len(files))

		if a.preview {
			a.runPreview(p, rec.Config(), files)
			return nil
		}

		if !a.yes {
			ok, err := env.Confirm("Do you want to process these files?")
			if err != nil {
				return err
			}
			if !ok {
				env.Logf("Operation cancelled.")
				return nil
			}
		}

		if err := a.process(ctx, p, rec, files); err != nil {
			return err
		}
	}

	if a.watch {
		return a.runWatch(ctx, p, rec, settings.Directory, opts)
	}
	return nil
}

func (a *app) year() int {
	if a.now != nil {
		return a.now().Year()
	}
	return time.Now().Year()
}

// files returns the files to process: either the single -file or the
// matching files in dir.
func (a *app) files(dir string, opts discover.Options) ([]string, error) {
	if a.file != "" {
		fi, err := os.Stat(a.file)
		if err != nil || !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s is not a valid file", cli.ErrInvalidArgs, a.file)
		}
		return []string{a.file}, nil
	}
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a valid directory", cli.ErrInvalidArgs, dir)
	}
	return discover.Find(dir, opts)
}

func (a *app) runSetup(env *cli.Env, path string, cfg config.File, s config.Settings) error {
	name, err := env.Prompt("Enter your name", s.Name)
	if err != nil {
		return err
	}
	handle, err := env.Prompt("Enter your handle", s.Handle)
	if err != nil {
		return err
	}
	dir, err := env.Prompt("Enter default directory", s.Directory)
	if err != nil {
		return err
	}
	cfg.Name, cfg.Handle, cfg.Directory = name, handle, dir
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "Configuration saved to %s\n", path)
	return nil
}

func (a *app) runPreview(p *report.Printer, cfg header.Config, files []string) {
	cfg.DryRun = true
	rec := header.New(cfg)
	changes := make([]report.Change, 0, len(files))
	for _, f := range files {
		res, err := rec.ReconcileFile(f)
		changes = append(changes, report.Change{Path: f, Result: res, Err: err})
	}
	p.Preview(changes, cfg.Year)
}

// process reconciles files one by one. Failures of single files are
// counted and reported, and make process return an error after the
// summary is printed.
func (a *app) process(ctx context.Context, p *report.Printer, rec *header.Reconciler, files []string) error {
	var stats report.Stats
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.reconcile(ctx, p, rec, f, &stats)
	}
	p.Summary(stats)
	if stats.Failed() {
		return fmt.Errorf("%w: %d of %d failed", errFailed, stats.Errors, stats.Total)
	}
	return nil
}

func (a *app) reconcile(ctx context.Context, p *report.Printer, rec *header.Reconciler, path string, stats *report.Stats) {
	res, err := rec.ReconcileFile(path)
	stats.Record(res.Outcome)
	p.Progress(path, res, err, rec.Config().Year)
	if err != nil {
		logger.Error(ctx, "cannot process file", slog.String("path", path), logger.Err(err))
		return
	}
	logger.Debug(ctx, "processed file",
		slog.String("path", path),
		slog.String("lang", res.Language.String()),
		slog.String("outcome", res.Outcome.String()),
	)
}

func (a *app) runWatch(ctx context.Context, p *report.Printer, rec *header.Reconciler, dir string, opts discover.Options) error {
	var stats report.Stats
	w, err := watch.New(dir, opts, a.debounce, func(ctx context.Context, path string) {
		a.reconcile(ctx, p, rec, path, &stats)
		systemd.Notify(ctx, systemd.Status(fmt.Sprintf("%d files processed, %d failed", stats.Total, stats.Errors)))
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	logger.Info(ctx, "watching for changes", slog.String("dir", dir))
	systemd.Notify(ctx, systemd.Ready)
	defer systemd.Notify(ctx, systemd.Stopping)
	systemd.Watchdog(ctx)
	if a.ready != nil {
		close(a.ready)
	}
	return w.Run(ctx)
}
