// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/boyter/gocodewalker"

	"go.astrophena.name/copyright/logger"
)

type target struct {
	path string
	// walked is true for files found by walking a directory argument.
	walked bool
}

// expandPaths replaces directory arguments with the files inside them.
// Arguments that cannot be stated are kept, so that the error is reported for
// that file.
func expandPaths(ctx context.Context, args []string) ([]target, error) {
	var targets []target
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			targets = append(targets, target{path: arg})
			continue
		}
		files, err := walk(ctx, arg)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			targets = append(targets, target{path: f, walked: true})
		}
	}
	return targets, nil
}

func walk(ctx context.Context, dir string) ([]string, error) {
	queue := make(chan *gocodewalker.File, 100)

	walker := gocodewalker.NewFileWalker(dir, queue)
	walker.IncludeHidden = true
	walker.ExcludeDirectory = []string{".git"}
	walker.SetErrorHandler(warnAndContinue(ctx))

	errc := make(chan error, 1)
	go func() { errc <- walker.Start() }()

	var files []string
	for f := range queue {
		files = append(files, f.Location)
	}
	if err := <-errc; err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	slices.Sort(files)
	return files, nil
}

// warnAndContinue returns a walker error handler that logs unreadable
// entries and keeps walking.
func warnAndContinue(ctx context.Context) func(error) bool {
	return func(err error) bool {
		logger.Warn(ctx, "skipping unreadable path", slog.Any("err", err))
		return true
	}
}
