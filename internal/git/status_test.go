// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package git

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/copyright/testutil"
)

type call struct {
	dir  string
	args string
}

type fakeExecutor struct {
	calls   []call
	results map[string]fakeResult
}

type fakeResult struct {
	out string
	err error
}

func (f *fakeExecutor) execute(ctx context.Context, dir string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{dir, strings.Join(args, " ")})
	res, ok := f.results[args[0]]
	if !ok {
		return nil, errors.New("unexpected command " + args[0])
	}
	return []byte(res.out), res.err
}

func TestHasUncommittedChanges(t *testing.T) {
	dir := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	path := filepath.Join(dir, "a.py")
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	notRepo := &Error{
		Args:   []string{"rev-parse", "--show-toplevel"},
		Stderr: "fatal: not a git repository (or any of the parent directories): .git",
		Err:    errors.New("exit status 128"),
	}
	errBroken := errors.New("broken")

	cases := map[string]struct {
		results map[string]fakeResult
		want    bool
		wantErr error
	}{
		"modified": {
			results: map[string]fakeResult{
				"rev-parse": {out: dir + "\n"},
				"status":    {out: " M a.py\x00"},
			},
			want: true,
		},
		"untracked": {
			results: map[string]fakeResult{
				"rev-parse": {out: dir + "\n"},
				"status":    {out: "?? a.py\x00"},
			},
			want: true,
		},
		"clean": {
			results: map[string]fakeResult{
				"rev-parse": {out: dir + "\n"},
				"status":    {out: ""},
			},
			want: false,
		},
		"not a repository": {
			results: map[string]fakeResult{
				"rev-parse": {err: notRepo},
			},
			want: true,
		},
		"git not installed": {
			results: map[string]fakeResult{
				"rev-parse": {err: &Error{Args: []string{"rev-parse"}, Err: exec.ErrNotFound}},
			},
			want: true,
		},
		"rev-parse failure": {
			results: map[string]fakeResult{
				"rev-parse": {err: errBroken},
			},
			wantErr: errBroken,
		},
		"status failure": {
			results: map[string]fakeResult{
				"rev-parse": {out: dir + "\n"},
				"status":    {err: errBroken},
			},
			wantErr: errBroken,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := &Status{exec: &fakeExecutor{results: tc.results}}
			got, err := s.HasUncommittedChanges(context.Background(), path)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want error %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestRootIsCached(t *testing.T) {
	dir := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	fe := &fakeExecutor{results: map[string]fakeResult{
		"rev-parse": {out: dir + "\n"},
		"status":    {out: ""},
	}}
	s := &Status{exec: fe}
	for _, name := range []string{"a.py", "b.py", "c.py"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := s.HasUncommittedChanges(context.Background(), filepath.Join(dir, name)); err != nil {
			t.Fatal(err)
		}
	}

	testutil.AssertEqual(t, len(fe.calls), 4)
	testutil.AssertEqual(t, fe.calls[0], call{dir, "rev-parse --show-toplevel"})
	testutil.AssertEqual(t, fe.calls[3], call{dir, "status --porcelain -z --untracked-files=all -- " + filepath.Join(dir, "c.py")})
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Args: []string{"status"}, Stderr: "fatal: bad", Err: errors.New("exit status 128")}
	testutil.AssertEqual(t, err.Error(), "git status: exit status 128: fatal: bad")
}

func TestStatusRealRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}

	dir := t.TempDir()
	git := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{
			"-c", "user.name=Test",
			"-c", "user.email=test@example.com",
			"-c", "commit.gpgsign=false",
		}, args...)...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	git("init", "-q")
	write("committed.py", "x = 1\n")
	git("add", "committed.py")
	git("commit", "-q", "-m", "initial")
	write("untracked.py", "y = 2\n")

	s := NewStatus()
	check := func(name string, want bool) {
		t.Helper()
		got, err := s.HasUncommittedChanges(context.Background(), filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("HasUncommittedChanges(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("HasUncommittedChanges(%q) = %v, want %v", name, got, want)
		}
	}

	check("committed.py", false)
	check("untracked.py", true)

	write("committed.py", "x = 2\n")
	check("committed.py", true)

	if _, err := s.HasUncommittedChanges(context.Background(), filepath.Join(dir, "gone.py")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("HasUncommittedChanges(gone.py) = %v, want fs.ErrNotExist", err)
	}
}

func TestStatusOutsideRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.py")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s := &Status{exec: &fakeExecutor{results: map[string]fakeResult{
		"rev-parse": {err: &Error{Err: errors.New("exit status 128"), Stderr: "fatal: not a git repository"}},
	}}}
	got, err := s.HasUncommittedChanges(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, got, true)
}

func TestStatusMissingFile(t *testing.T) {
	fe := &fakeExecutor{results: map[string]fakeResult{
		"rev-parse": {out: "/\n"},
		"status":    {out: ""},
	}}
	s := &Status{exec: fe}
	_, err := s.HasUncommittedChanges(context.Background(), filepath.Join(t.TempDir(), "gone.py"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want fs.ErrNotExist, got %v", err)
	}
	testutil.AssertEqual(t, len(fe.calls), 0)
}

func TestRoot(t *testing.T) {
	dir := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	fe := &fakeExecutor{results: map[string]fakeResult{"rev-parse": {out: dir + "\n"}}}
	s := &Status{exec: fe}
	for range 2 {
		root, err := s.Root(context.Background(), sub)
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, root, dir)
	}
	testutil.AssertEqual(t, fe.calls, []call{{sub, "rev-parse --show-toplevel"}})

	s = &Status{exec: &fakeExecutor{results: map[string]fakeResult{
		"rev-parse": {err: &Error{Err: errors.New("exit status 128"), Stderr: "fatal: not a git repository"}},
	}}}
	root, err := s.Root(context.Background(), sub)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, root, "")
}
