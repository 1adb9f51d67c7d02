// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package git queries the status of files in Git work trees.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.astrophena.name/copyright/logger"
	"go.astrophena.name/copyright/syncx"
)

// Error is returned when a git command fails.
type Error struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

type executor interface {
	execute(ctx context.Context, dir string, args ...string) ([]byte, error)
}

type realExecutor struct{}

func (realExecutor) execute(ctx context.Context, dir string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, &Error{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return out, nil
}

// Status reports whether files have uncommitted changes. Files that are not
// inside a Git work tree are always reported as changed.
//
// A Status is safe for concurrent use.
type Status struct {
	exec executor
	// roots maps directories to the top level of their work tree, or to ""
	// when they are not in one.
	roots syncx.Map[string, string]
}

// NewStatus returns a Status that runs the git binary found in $PATH.
func NewStatus() *Status {
	return &Status{exec: realExecutor{}}
}

// HasUncommittedChanges reports whether path differs from HEAD, is staged, or
// is untracked. It returns an error if path does not exist.
func (s *Status) HasUncommittedChanges(ctx context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	dir := filepath.Dir(abs)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	root, err := s.Root(ctx, dir)
	if err != nil {
		return false, err
	}
	if root == "" {
		logger.Debug(ctx, "not in a git work tree", slog.String("path", path))
		return true, nil
	}

	out, err := s.exec.execute(ctx, root,
		"status", "--porcelain", "-z", "--untracked-files=all", "--",
		filepath.Join(dir, filepath.Base(abs)),
	)
	if err != nil {
		return false, err
	}
	return len(out) > 0, nil
}

// Root returns the top level of the work tree containing dir, or "" if dir is
// not inside one.
func (s *Status) Root(ctx context.Context, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return s.roots.Compute(abs, func() (string, error) { return s.toplevel(ctx, abs) })
}

func (s *Status) toplevel(ctx context.Context, dir string) (string, error) {
	out, err := s.exec.execute(ctx, dir, "rev-parse", "--show-toplevel")
	if err == nil {
		return strings.TrimSpace(string(out)), nil
	}
	if outsideWorkTree(err) {
		return "", nil
	}
	return "", err
}

// outsideWorkTree reports whether err means that no repository can be
// consulted: git is not installed, the directory does not exist or is not in
// a work tree.
func outsideWorkTree(err error) bool {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return true
	}
	var gerr *Error
	return errors.As(err, &gerr) && strings.Contains(gerr.Stderr, "not a git repository")
}
