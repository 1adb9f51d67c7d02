// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/term"
	"golang.org/x/tools/txtar"

	"go.astrophena.name/copyright/cli"
	"go.astrophena.name/copyright/internal/git"
)

const (
	configPath      = ".devtools/config.txtar"
	hookShellScript = `#!/bin/sh
echo "==> Running pre-commit check..."
go tool pre-commit
`
)

var defaultChecks = []check{
	{Run: []string{"go", "tool", "checkcopyright", "-n", "."}},
}

type check struct {
	Run      []string `json:"run"`
	SkipInCI bool     `json:"skip_in_ci"`
	OnlyInCI bool     `json:"only_in_ci"`
}

// loadChecks reads the checks configured in the archive at path. Without a
// pre-commit.json file, the copyright check runs if an owner is configured
// for it, and nothing runs otherwise.
func loadChecks(path string) ([]check, error) {
	ar, err := txtar.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var hasOwner bool
	for _, f := range ar.Files {
		switch f.Name {
		case "copyright/owner":
			hasOwner = strings.TrimSpace(string(f.Data)) != ""
		case "pre-commit.json":
			var checks []check
			if err := json.Unmarshal(f.Data, &checks); err != nil {
				return nil, fmt.Errorf("%s: %s: %w", path, f.Name, err)
			}
			for i, c := range checks {
				if len(c.Run) == 0 {
					return nil, fmt.Errorf("%s: %s: check %d has nothing to run", path, f.Name, i)
				}
			}
			return checks, nil
		}
	}
	if hasOwner {
		return defaultChecks, nil
	}
	return nil, nil
}

func main() { cli.Main(cli.AppFunc(run)) }

func run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	// Like the hook itself, work from the top of the work tree.
	root, err := git.NewStatus().Root(ctx, ".")
	if err != nil {
		return err
	}
	if root != "" {
		if err := os.Chdir(root); err != nil {
			return err
		}
	}

	checks, err := loadChecks(configPath)
	if err != nil {
		return err
	}

	isCI := env.Getenv("CI") == "true"

	if !isCI {
		installed, err := installHook()
		if err != nil {
			return err
		}
		if installed {
			env.Logf("Installed the pre-commit hook.")
		}
	}

	var selected []check
	for _, c := range checks {
		if isCI && c.SkipInCI {
			continue
		}
		if !isCI && c.OnlyInCI {
			continue
		}
		selected = append(selected, c)
	}
	if len(selected) == 0 {
		env.Logf("No checks to run. Configure them in %s.", configPath)
		return nil
	}

	width := terminalWidth(env)
	for i, c := range selected {
		env.Printf("%s", progressMessage(i+1, len(selected), c.Run, width))
		if err := c.run(ctx); err != nil {
			return err
		}
	}
	return nil
}

// installHook writes the hook script unless one already exists. Outside of a
// Git work tree it does nothing.
func installHook() (installed bool, err error) {
	if info, err := os.Stat(".git"); err != nil || !info.IsDir() {
		return false, nil
	}
	hookPath := filepath.Join(".git", "hooks", "pre-commit")
	if _, err := os.Stat(hookPath); !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(hookPath, []byte(hookShellScript), 0o755); err != nil {
		return false, err
	}
	return true, nil
}

func (c check) run(ctx context.Context) error {
	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Run[0], c.Run[1:]...)
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("check %q failed: %w:\n%v", c.Run, err, buf.String())
	}
	return nil
}

func terminalWidth(env *cli.Env) int {
	f, ok := env.Stdout.(*os.File)
	if !ok || !cli.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// progressMessage fits the progress line into width columns by shortening the
// command. A width of zero or less means no limit.
func progressMessage(current, total int, command []string, width int) string {
	prefix := fmt.Sprintf("[%d/%d] Running check ", current, total)
	cmd := strings.Join(command, " ")
	if width <= 0 || len(prefix)+len(cmd) <= width {
		return prefix + cmd
	}
	room := width - len(prefix)
	switch {
	case room <= 0:
		return prefix
	case room <= len("..."):
		return prefix + cmd[:room]
	default:
		return prefix + cmd[:room-len("...")] + "..."
	}
}
