// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Checkcopyright adds or updates copyright notices in the specified files.

Usage:

	checkcopyright [flags] -owner <owner> <path>...

Each file must carry a notice of the form

	Copyright (c) <years> by <owner>. All rights reserved.

wrapped in a comment appropriate for its type. A file without a notice gets
one inserted at the top, after any shebang and encoding declaration lines. A
notice whose last year is not the current one is updated, turning a single
year into a range ending in the current year. Only the first notice in a file
is considered.

Files without uncommitted changes in Git are skipped, so notices are only
touched in files that are being changed anyway. Directory arguments are walked
recursively, honoring .gitignore files.

With -n, no files are written, and the program exits with a non-zero status
if any notice is missing or out of date. Files of unsupported types always
make the program exit with a non-zero status.

The tool reads an optional .devtools/config.txtar file in the current
directory. This file is a txtar archive and can contain the following files:

  - copyright/owner: The default owner, used when -owner is not given.
  - copyright/exclusions.json: A JSON array of glob patterns (with ** support)
    of paths to skip.
  - copyright/styles.json: A JSON array of comment styles for additional file
    types. Each object has either an "ext" (e.g. ".vue") or a "name" (e.g.
    "BUILD") field, and either a "family" ("hash", "block", "double-dash" or
    "markdown") or the "open", "line" and "close" fields.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/copyright/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
