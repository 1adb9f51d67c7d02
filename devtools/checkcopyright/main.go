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
	"time"

	"go.astrophena.name/copyright/cli"
	"go.astrophena.name/copyright/internal/git"
	"go.astrophena.name/copyright/logger"
	"go.astrophena.name/copyright/notice"
)

func main() { cli.Main(new(app)) }

var errCheckFailed = errors.New("copyright check failed")

type app struct {
	owner      string
	checkOnly  bool
	year       int
	configPath string
	noVCS      bool
	verbose    bool

	// changes replaces the Git status check in tests.
	changes notice.ChangeDetector
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.owner, "owner", "", "Copyright `owner` named in notices.")
	fs.BoolVar(&a.checkOnly, "n", false, "Only report missing or out-of-date notices, without changing files.")
	fs.IntVar(&a.year, "year", 0, "Current `year` (default: the current year).")
	fs.StringVar(&a.configPath, "config", "", "Path to the configuration `file` (default: "+defaultConfigPath+").")
	fs.BoolVar(&a.noVCS, "no-vcs", false, "Check all files, not just those with uncommitted changes.")
	fs.BoolVar(&a.verbose, "v", false, "Enable verbose logging.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	l := logger.New(nil)
	l.Attach(logger.NewConsoleHandler(env.Stderr, l.Level, env.StderrIsTerminal()))
	if a.verbose {
		l.Level.Set(slog.LevelDebug)
	}
	ctx = logger.Put(ctx, l)

	configPath, explicit := a.configPath, a.configPath != ""
	if !explicit {
		configPath = defaultConfigPath
	}
	cfg, err := loadConfig(configPath, explicit)
	if err != nil {
		return err
	}

	owner := a.owner
	if owner == "" {
		owner = cfg.owner
	}
	if owner == "" {
		return fmt.Errorf("%w: -owner is required", cli.ErrInvalidArgs)
	}

	year := a.year
	if year == 0 {
		year = time.Now().Year()
	}

	checker := &notice.Checker{
		Owner:     owner,
		Year:      year,
		CheckOnly: a.checkOnly,
		Styles:    cfg.styles,
	}
	switch {
	case a.noVCS:
	case a.changes != nil:
		checker.Changes = a.changes
	default:
		checker.Changes = git.NewStatus()
	}

	targets, err := expandPaths(ctx, env.Args)
	if err != nil {
		return err
	}

	var failed int
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cfg.isExcluded(t.path) {
			logger.Debug(ctx, "excluded", slog.String("path", t.path))
			continue
		}
		if t.walked {
			if _, ok := cfg.styles.Lookup(t.path); !ok {
				logger.Debug(ctx, "unsupported file type", slog.String("path", t.path))
				continue
			}
		}

		res, err := checker.Check(ctx, t.path)
		if err != nil {
			logger.Error(ctx, "check failed", slog.String("path", t.path), slog.Any("err", err))
			failed++
			continue
		}
		if !a.report(env, res) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", errCheckFailed, failed, len(targets))
	}
	return nil
}

// report prints the verdict for res and reports whether the file passed.
func (a *app) report(env *cli.Env, res notice.Result) bool {
	switch {
	case res.Outcome == notice.Unsupported:
		env.Printf("Missing copyright for file %s", res.Path)
		return false
	case res.Stale() && a.checkOnly:
		env.Printf("Copyright is out-of-date: %s", res.Path)
		return false
	case res.Outcome == notice.Added:
		env.Printf("Adding copyright to %s", res.Path)
	case res.Outcome == notice.Updated:
		env.Printf("Updating copyright: %s", res.Path)
	}
	return true
}
