// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Pre-commit installs and runs a Git pre-commit hook.

On its first run in a non-CI environment inside a Git work tree, it creates the
.git/hooks/pre-commit script. This script calls 'go tool pre-commit' again, so
the checks run on every subsequent commit.

Checks are configured through the .devtools/config.txtar archive, the same file
checkcopyright reads its settings from. The archive can contain a
pre-commit.json file with a JSON array of check objects, each with the
following fields:

  - run: A string array where the first element is the command to run and the
    rest are its arguments (e.g., ["go", "test", "./..."]).
  - skip_in_ci: If true, the check is skipped when the CI environment
    variable is set to "true".
  - only_in_ci: If true, the check only runs when the CI environment variable
    is set to "true".

Without a pre-commit.json file, and if the archive sets copyright/owner, the
only check is

	go tool checkcopyright -n .

which reports missing or out-of-date copyright notices in files with
uncommitted changes. Otherwise nothing is checked.

Pre-commit always runs from the top level of the Git work tree, so it can be
started from any subdirectory.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/copyright/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
