// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package notice

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"go.astrophena.name/copyright/logger"
)

// ChangeDetector reports whether a file has uncommitted changes in version
// control.
type ChangeDetector interface {
	HasUncommittedChanges(ctx context.Context, path string) (bool, error)
}

// ChangeDetectorFunc is an adapter to allow the use of ordinary functions as
// a [ChangeDetector].
type ChangeDetectorFunc func(ctx context.Context, path string) (bool, error)

// HasUncommittedChanges calls f.
func (f ChangeDetectorFunc) HasUncommittedChanges(ctx context.Context, path string) (bool, error) {
	return f(ctx, path)
}

// FS reads and writes whole files.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OSFS is the operating system's file system. Writes replace the file
// atomically and keep its permissions.
type OSFS struct{}

// ReadFile calls [os.ReadFile].
func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// WriteFile atomically replaces the contents of path with data. If path is
// a symbolic link, the file it points to is replaced and the link is kept.
func (OSFS) WriteFile(path string, data []byte) error {
	path, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return err
	}
	return os.Chmod(path, info.Mode().Perm())
}

// Checker brings notices of individual files up to date.
type Checker struct {
	// Owner is the copyright holder named in notices.
	Owner string
	// Year is the current year.
	Year int
	// CheckOnly disables writing. Outcomes are still computed.
	CheckOnly bool
	// Styles resolves comment dialects. If nil, the built-in table is used.
	Styles *Table
	// Changes gates modifications on version control status. If nil, every
	// file is considered changed.
	Changes ChangeDetector
	// FS is used to access files. If nil, OSFS is used.
	FS FS
}

// Check processes the file at path. Files of unsupported types and files
// without uncommitted changes are not read.
func (c *Checker) Check(ctx context.Context, path string) (Result, error) {
	res := Result{Path: path}

	styles := c.Styles
	if styles == nil {
		styles = defaultTable
	}
	s, ok := styles.Lookup(path)
	if !ok {
		res.Outcome = Unsupported
		return res, nil
	}

	if c.Changes != nil {
		changed, err := c.Changes.HasUncommittedChanges(ctx, path)
		if err != nil {
			return res, fmt.Errorf("checking version control status of %s: %w", path, err)
		}
		if !changed {
			logger.Debug(ctx, "no uncommitted changes, skipping", slog.String("path", path))
			res.Outcome = SkippedNoChanges
			return res, nil
		}
	}

	fsys := c.FS
	if fsys == nil {
		fsys = OSFS{}
	}
	text, err := fsys.ReadFile(path)
	if err != nil {
		return res, err
	}

	pre, m := Locate(text, s, c.Owner)
	res.Match = m
	res.Text, res.Outcome = Fix(text, s, pre, m, c.Owner, c.Year)
	if m != nil {
		logger.Debug(ctx, "found notice",
			slog.String("path", path),
			slog.String("years", m.Years.String()),
			slog.Int("offset", m.Start),
		)
	}

	if res.Outcome == Unchanged || c.CheckOnly {
		return res, nil
	}
	if err := fsys.WriteFile(path, res.Text); err != nil {
		return res, fmt.Errorf("writing %s: %w", path, err)
	}
	res.Written = true
	return res, nil
}
