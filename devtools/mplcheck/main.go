// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"go.astrophena.name/mplcheck/cli"
	"go.astrophena.name/mplcheck/config"
	"go.astrophena.name/mplcheck/discover"
	"go.astrophena.name/mplcheck/header"
	"go.astrophena.name/mplcheck/logger"
	"go.astrophena.name/mplcheck/report"
	"go.astrophena.name/mplcheck/source"
)

func main() { cli.Main(new(app)) }

// errMissing is returned when at least one file lacks the header.
var errMissing = errors.New("missing MPL license header")

// debounce is how long watch mode waits for changes to settle.
const debounce = 200 * time.Millisecond

type app struct {
	configPath string
	format     report.Format
	fix        bool
	watch      bool
	workers    int
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.configPath, "config", config.DefaultPath, "Read configuration from `file` (a txtar archive or YAML).")
	a.format = report.Text
	fs.Var(&a.format, "format", "Output `format`: text, json or html.")
	fs.BoolVar(&a.fix, "fix", false, "Prepend the license header to files that have no leading comment.")
	fs.BoolVar(&a.watch, "watch", false, "Check again whenever a source file changes.")
	fs.IntVar(&a.workers, "j", 0, "Check up to `n` files in parallel (default: from config, or one per CPU).")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.workers < 0 {
		return fmt.Errorf("%w: -j must not be negative", cli.ErrInvalidArgs)
	}
	if a.workers == 0 {
		a.workers = cfg.Workers
	}
	if a.workers == 0 {
		a.workers = runtime.GOMAXPROCS(0)
	}

	roots := env.Args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	if a.watch {
		return a.watchLoop(ctx, env.Stdout, roots, cfg)
	}

	res, err := a.run(ctx, env.Stdout, roots, cfg)
	if err != nil {
		return err
	}
	if n := len(res.missing); n > 0 {
		return fmt.Errorf("%d of %d files: %w", n, res.checked, errMissing)
	}
	return nil
}

type result struct {
	checked int
	missing []report.Finding
}

// run performs one complete check of roots and writes the report to w. Every
// run starts with no checked units.
func (a *app) run(ctx context.Context, w io.Writer, roots []string, cfg *config.Config) (*result, error) {
	files, err := discover.Files(roots, cfg)
	if err != nil {
		return nil, err
	}

	p := source.NewProvider()
	c := header.New(header.DefaultConfig())
	col := report.NewCollector(p)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for _, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			decl, err := p.Load(file)
			if err != nil {
				return err
			}
			_, err = c.Check(gctx, p, col, decl)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &result{checked: c.Checked().Len(), missing: col.Findings()}
	logger.Debug(ctx, "checked files",
		slog.Int("files", len(files)),
		slog.Int("units", res.checked),
		slog.Int("missing", len(res.missing)),
	)

	if a.fix {
		res.missing, err = fixAll(ctx, res.missing)
		if err != nil {
			return nil, err
		}
	}

	if err := a.format.Write(ctx, w, res.missing); err != nil {
		return nil, err
	}
	return res, nil
}

// fixAll prepends the template to every fixable file and returns the
// findings it could not fix.
func fixAll(ctx context.Context, findings []report.Finding) ([]report.Finding, error) {
	var remaining []report.Finding
	for _, f := range findings {
		if !f.Fixable {
			remaining = append(remaining, f)
			continue
		}
		if err := prependHeader(f.File); err != nil {
			return nil, err
		}
		logger.Info(ctx, "added license header", slog.String("file", f.File))
	}
	return remaining, nil
}

func prependHeader(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(header.Template)
	buf.WriteString("\n\n")
	buf.Write(bytes.TrimLeft(content, "\r\n\t "))

	return os.WriteFile(path, buf.Bytes(), info.Mode().Perm())
}

func (a *app) watchLoop(ctx context.Context, w io.Writer, roots []string, cfg *config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	addDirs := func() error {
		dirs, err := discover.Dirs(roots, cfg)
		if err != nil {
			return err
		}
		for _, dir := range dirs {
			if err := watcher.Add(dir); err != nil {
				return err
			}
		}
		return nil
	}
	check := func() {
		res, err := a.run(ctx, w, roots, cfg)
		if err != nil {
			logger.Error(ctx, "check failed", slog.Any("err", err))
			return
		}
		logger.Info(ctx, "checked",
			slog.Int("files", res.checked),
			slog.Int("missing", len(res.missing)),
		)
	}

	if err := addDirs(); err != nil {
		return err
	}
	check()

	var settled <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if relevant(ev) {
				settled = time.After(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, "watch error", slog.Any("err", err))
		case <-settled:
			settled = nil
			if err := addDirs(); err != nil {
				logger.Warn(ctx, "watching new directories failed", slog.Any("err", err))
			}
			check()
		}
	}
}

// relevant reports whether ev may change the outcome of a check.
func relevant(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return false
	}
	if source.ForPath(ev.Name) != nil {
		return true
	}
	// A new directory may hold new source files.
	return ev.Has(fsnotify.Create)
}
