// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package notice

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"go.astrophena.name/copyright/testutil"
)

type memFS struct {
	files  map[string]string
	reads  int
	writes int
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.reads++
	s, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(s), nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	m.writes++
	m.files[path] = string(data)
	return nil
}

func changes(changed bool) ChangeDetector {
	return ChangeDetectorFunc(func(context.Context, string) (bool, error) { return changed, nil })
}

func TestCheck(t *testing.T) {
	const stale = "#\n# Copyright (c) 2000 by fake. All rights reserved.\n#\n"
	cases := map[string]struct {
		path      string
		content   string
		checkOnly bool
		changes   ChangeDetector

		wantOutcome Outcome
		wantContent string
		wantWritten bool
		wantReads   int
	}{
		"updates stale notice": {
			path:        "a.py",
			content:     stale,
			wantOutcome: Updated,
			wantContent: "#\n# Copyright (c) 2000, 2026 by fake. All rights reserved.\n#\n",
			wantWritten: true,
			wantReads:   1,
		},
		"adds missing notice": {
			path:        "a.py",
			content:     "x = 1\n",
			wantOutcome: Added,
			wantContent: hashNotice2026 + "\nx = 1\n",
			wantWritten: true,
			wantReads:   1,
		},
		"leaves current notice": {
			path:        "a.py",
			content:     hashNotice2026,
			wantOutcome: Unchanged,
			wantContent: hashNotice2026,
			wantReads:   1,
		},
		"check only": {
			path:        "a.py",
			content:     stale,
			checkOnly:   true,
			wantOutcome: Updated,
			wantContent: stale,
			wantReads:   1,
		},
		"check only missing": {
			path:        "a.py",
			content:     "x = 1\n",
			checkOnly:   true,
			wantOutcome: Added,
			wantContent: "x = 1\n",
			wantReads:   1,
		},
		"unsupported": {
			path:        "a.fake",
			content:     "hello world",
			wantOutcome: Unsupported,
			wantContent: "hello world",
			wantReads:   0,
		},
		"no uncommitted changes": {
			path:        "a.py",
			content:     stale,
			changes:     changes(false),
			wantOutcome: SkippedNoChanges,
			wantContent: stale,
			wantReads:   0,
		},
		"uncommitted changes": {
			path:        "a.py",
			content:     stale,
			changes:     changes(true),
			wantOutcome: Updated,
			wantContent: "#\n# Copyright (c) 2000, 2026 by fake. All rights reserved.\n#\n",
			wantWritten: true,
			wantReads:   1,
		},
		"unsupported before version control": {
			path: "a.fake",
			changes: ChangeDetectorFunc(func(context.Context, string) (bool, error) {
				return false, errors.New("must not be called")
			}),
			wantOutcome: Unsupported,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fsys := &memFS{files: map[string]string{tc.path: tc.content}}
			c := &Checker{
				Owner:     owner,
				Year:      year,
				CheckOnly: tc.checkOnly,
				Changes:   tc.changes,
				FS:        fsys,
			}
			res, err := c.Check(context.Background(), tc.path)
			if err != nil {
				t.Fatalf("Check(%q): %v", tc.path, err)
			}
			testutil.AssertEqual(t, res.Outcome, tc.wantOutcome)
			testutil.AssertEqual(t, res.Written, tc.wantWritten)
			testutil.AssertText(t, fsys.files[tc.path], tc.wantContent)
			testutil.AssertEqual(t, fsys.reads, tc.wantReads)
			if !tc.wantWritten {
				testutil.AssertEqual(t, fsys.writes, 0)
			}
		})
	}
}

func TestCheckErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		c := &Checker{Owner: owner, Year: year, FS: &memFS{files: map[string]string{}}}
		_, err := c.Check(context.Background(), "missing.py")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("want fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("version control failure", func(t *testing.T) {
		errGit := errors.New("git exploded")
		c := &Checker{
			Owner: owner,
			Year:  year,
			FS:    &memFS{files: map[string]string{"a.py": ""}},
			Changes: ChangeDetectorFunc(func(context.Context, string) (bool, error) {
				return false, errGit
			}),
		}
		_, err := c.Check(context.Background(), "a.py")
		if !errors.Is(err, errGit) {
			t.Fatalf("want %v, got %v", errGit, err)
		}
	})
}

func TestCheckCustomTable(t *testing.T) {
	tbl := NewTable()
	tbl.AddExt(".fake", Block)
	fsys := &memFS{files: map[string]string{"a.fake": "blob"}}
	c := &Checker{Owner: owner, Year: year, Styles: tbl, FS: fsys}
	res, err := c.Check(context.Background(), "a.fake")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, res.Outcome, Added)
	testutil.AssertText(t, fsys.files["a.fake"], "/*\n * Copyright (c) 2026 by fake. All rights reserved.\n */\n\nblob")
}

func TestOSFS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho hi\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	c := &Checker{Owner: owner, Year: year}
	res, err := c.Check(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, res.Written, true)

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertText(t, string(got), "#!/bin/sh\n"+hashNotice2026+"\necho hi\n")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, info.Mode().Perm(), os.FileMode(0o755))
}

func TestOSFSKeepsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.py")
	link := filepath.Join(dir, "link.py")
	if err := os.WriteFile(target, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("real.py", link); err != nil {
		t.Skipf("symlinks are not supported: %v", err)
	}

	if err := (OSFS{}).WriteFile(link, []byte("x = 2\n")); err != nil {
		t.Fatal(err)
	}

	info, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		t.Fatalf("%s is no longer a symbolic link (mode %v)", link, info.Mode())
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertText(t, string(got), "x = 2\n")
}

func TestOutcomeString(t *testing.T) {
	testutil.AssertEqual(t, Added.String(), "added")
	testutil.AssertEqual(t, SkippedNoChanges.String(), "skipped")
	testutil.AssertEqual(t, Outcome(42).String(), "Outcome(42)")
}
