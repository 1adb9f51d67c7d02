// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package notice finds, adds and updates copyright notices of the form
//
//	Copyright (c) <years> by <owner>. All rights reserved.
//
// in source files.
//
// A file's comment dialect is resolved from its name with a [Table]. [Locate]
// then finds the leading [Preamble] (shebang and encoding lines) and the first
// notice for the owner, and [Fix] computes the new file content. [Checker]
// runs the whole pipeline for one file on disk.
//
// Only the first notice for the owner is ever examined or rewritten. Later
// notices, including stale ones, are left as they are.
package notice

import (
	"fmt"
	"strconv"
)

// Years is the year expression of a notice: a single year, or a range when
// End is not zero.
type Years struct {
	Start int
	End   int
}

// Last returns the most recent year covered.
func (y Years) Last() int {
	if y.End != 0 {
		return y.End
	}
	return y.Start
}

// String formats the years as they appear in a notice, e.g. "2000" or
// "2000, 2026".
func (y Years) String() string {
	if y.End == 0 {
		return strconv.Itoa(y.Start)
	}
	return fmt.Sprintf("%d, %d", y.Start, y.End)
}

// Phrase returns the notice text for years and owner.
func Phrase(years Years, owner string) string {
	return fmt.Sprintf("Copyright (c) %s by %s. All rights reserved.", years, owner)
}

// Outcome is the verdict for a single file.
type Outcome int

const (
	// Unchanged means the file already has an up-to-date notice.
	Unchanged Outcome = iota
	// Added means the file had no notice and one was (or would be) inserted.
	Added
	// Updated means the file had a stale notice whose years were (or would
	// be) extended to the current year.
	Updated
	// Unsupported means the file type has no known comment dialect.
	Unsupported
	// SkippedNoChanges means version control reported no uncommitted
	// changes, so the file was not inspected.
	SkippedNoChanges
)

var outcomeNames = [...]string{
	Unchanged:        "unchanged",
	Added:            "added",
	Updated:          "updated",
	Unsupported:      "unsupported",
	SkippedNoChanges: "skipped",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
	return outcomeNames[o]
}

// Result describes what happened to a file.
type Result struct {
	Path    string
	Outcome Outcome
	// Match is the notice found in the file, if any.
	Match *Match
	// Text is the resulting file content. It is nil when the file was not
	// read.
	Text []byte
	// Written reports whether Text was written back to the file.
	Written bool
}

// Stale reports whether the file lacks an up-to-date notice.
func (r Result) Stale() bool {
	return r.Outcome == Added || r.Outcome == Updated
}
