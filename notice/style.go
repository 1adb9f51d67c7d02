// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package notice

import (
	"path/filepath"
	"strings"
)

// Style is a comment dialect used to wrap a notice.
type Style struct {
	// Open is the first line of the notice block.
	Open string
	// Line prefixes the line holding the notice.
	Line string
	// Close is the last line of the notice block.
	Close string
	// Markup styles render the notice as a single Markdown link reference
	// definition instead of a comment block.
	Markup bool
}

// Comment dialects.
var (
	Hash       = Style{Open: "#", Line: "#", Close: "#"}
	Block      = Style{Open: "/*", Line: " *", Close: " */"}
	DoubleDash = Style{Open: "--", Line: "--", Close: "--"}
	Markdown   = Style{Markup: true}
)

// Families maps dialect names, as used in configuration, to styles.
var Families = map[string]Style{
	"hash":        Hash,
	"block":       Block,
	"double-dash": DoubleDash,
	"markdown":    Markdown,
}

// Render returns the complete notice block, ending with a newline.
func (s Style) Render(years Years, owner string) string {
	if s.Markup {
		return "[//]: # (" + escapeParens(Phrase(years, owner)) + ")\n"
	}
	return s.Open + "\n" + s.Line + " " + Phrase(years, owner) + "\n" + s.Close + "\n"
}

// Markdown link reference titles end at the first unescaped parenthesis.
func escapeParens(s string) string {
	return strings.NewReplacer("(", `\(`, ")", `\)`).Replace(s)
}

var basenames = map[string]Style{
	"Dockerfile":     Hash,
	"Makefile":       Hash,
	"CODEOWNERS":     Hash,
	".gitignore":     Hash,
	".dockerignore":  Hash,
	".gitattributes": Hash,
	".editorconfig":  Hash,
	"Jenkinsfile":    Block,
}

var extensions = map[string]Style{
	".py":         Hash,
	".pyi":        Hash,
	".sh":         Hash,
	".bash":       Hash,
	".zsh":        Hash,
	".rb":         Hash,
	".pl":         Hash,
	".pm":         Hash,
	".r":          Hash,
	".R":          Hash,
	".yaml":       Hash,
	".yml":        Hash,
	".toml":       Hash,
	".tf":         Hash,
	".cfg":        Hash,
	".conf":       Hash,
	".mk":         Hash,
	".cmake":      Hash,
	".properties": Hash,
	".ps1":        Hash,
	".nix":        Hash,
	".bzl":        Hash,
	".star":       Hash,

	".c":      Block,
	".h":      Block,
	".cc":     Block,
	".cpp":    Block,
	".cxx":    Block,
	".hpp":    Block,
	".java":   Block,
	".groovy": Block,
	".gradle": Block,
	".kt":     Block,
	".kts":    Block,
	".scala":  Block,
	".js":     Block,
	".mjs":    Block,
	".cjs":    Block,
	".jsx":    Block,
	".ts":     Block,
	".tsx":    Block,
	".go":     Block,
	".rs":     Block,
	".swift":  Block,
	".cs":     Block,
	".css":    Block,
	".scss":   Block,
	".less":   Block,
	".php":    Block,
	".proto":  Block,

	".lua": DoubleDash,
	".sql": DoubleDash,
	".hs":  DoubleDash,
	".elm": DoubleDash,
	".ada": DoubleDash,

	".md":       Markdown,
	".markdown": Markdown,
}

// Table maps file names to comment dialects. Exact basenames take precedence
// over extensions. Lookups are case-sensitive.
type Table struct {
	names map[string]Style
	exts  map[string]Style
}

// NewTable returns a table holding the built-in dialects.
func NewTable() *Table {
	t := &Table{
		names: make(map[string]Style, len(basenames)),
		exts:  make(map[string]Style, len(extensions)),
	}
	for k, v := range basenames {
		t.names[k] = v
	}
	for k, v := range extensions {
		t.exts[k] = v
	}
	return t
}

// AddName registers a dialect for files with the exact basename name.
func (t *Table) AddName(name string, s Style) { t.names[name] = s }

// AddExt registers a dialect for files with extension ext, including the
// leading dot.
func (t *Table) AddExt(ext string, s Style) { t.exts[ext] = s }

// Lookup returns the dialect for path. ok is false if the file type is
// unsupported.
func (t *Table) Lookup(path string) (s Style, ok bool) {
	base := filepath.Base(path)
	if s, ok := t.names[base]; ok {
		return s, true
	}
	ext := filepath.Ext(base)
	if ext == "" {
		return Style{}, false
	}
	s, ok = t.exts[ext]
	return s, ok
}

var defaultTable = NewTable()

// Lookup returns the built-in dialect for path.
func Lookup(path string) (Style, bool) { return defaultTable.Lookup(path) }
