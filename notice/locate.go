// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package notice

import (
	"bytes"
	"regexp"
	"strconv"

	"go.astrophena.name/copyright/syncx"
)

// Preamble holds the leading lines that must stay at the top of a file.
// Each line includes its line break, if it had one.
type Preamble struct {
	Shebang  string
	Encoding string
}

// Len returns the length of the preamble in bytes.
func (p Preamble) Len() int { return len(p.Shebang) + len(p.Encoding) }

// See PEP 263.
var encodingRe = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*[-\w.]+`)

// DetectPreamble returns the shebang and encoding declaration at the start of
// text. The encoding line is recognized on the first line, or on the second
// one after a shebang.
func DetectPreamble(text []byte) Preamble {
	var p Preamble
	line, rest := nextLine(text)
	if bytes.HasPrefix(line, []byte("#!")) {
		p.Shebang = string(line)
		line, _ = nextLine(rest)
	}
	if encodingRe.Match(line) {
		p.Encoding = string(line)
	}
	return p
}

func nextLine(text []byte) (line, rest []byte) {
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		return text[:i+1], text[i+1:]
	}
	return text, nil
}

// Match is a notice found in a file. Offsets are byte offsets into the file.
type Match struct {
	// Start and End delimit the notice phrase. For Markdown, they include
	// the surrounding link reference syntax.
	Start, End int
	// YearsStart and YearsEnd delimit the year expression.
	YearsStart, YearsEnd int
	Owner                string
	Years                Years
}

type patternKey struct {
	style Style
	owner string
}

var patterns syncx.Map[patternKey, *regexp.Regexp]

const yearsExpr = `(\d{4})(?:, (\d{4}))?`

// pattern matches the notice phrase for owner. Outside of Markdown, the
// phrase must be followed by a line break, so a stray notice at the very end
// of a file is not taken for the file's header.
func (s Style) pattern(owner string) *regexp.Regexp {
	re, _ := patterns.Compute(patternKey{s, owner}, func() (*regexp.Regexp, error) {
		const head = "Copyright (c) "
		tail := " by " + owner + ". All rights reserved."
		if s.Markup {
			return regexp.MustCompile(`(?m)^` +
				regexp.QuoteMeta("[//]: # ("+escapeParens(head)) +
				yearsExpr +
				`(` + regexp.QuoteMeta(escapeParens(tail)+")") + `)`), nil
		}
		return regexp.MustCompile(regexp.QuoteMeta(head) +
			yearsExpr +
			`(` + regexp.QuoteMeta(tail) + `)` +
			`[ \t]*\r?\n`), nil
	})
	return re
}

// Locate returns the preamble of text and the first notice for owner, or nil
// if there is none. The search covers the whole text after the preamble, and
// the notice may be written in any comment style, except for Markdown, which
// only recognizes its own link reference form. Notices with a malformed year
// range are ignored.
func Locate(text []byte, s Style, owner string) (Preamble, *Match) {
	var pre Preamble
	if !s.Markup {
		pre = DetectPreamble(text)
	}
	re := s.pattern(owner)
	// The match may include the line break, so resume right after the
	// notice text of a rejected candidate.
	for off := pre.Len(); off < len(text); {
		loc := re.FindSubmatchIndex(text[off:])
		if loc == nil {
			break
		}
		if m, ok := newMatch(text[off:], loc, owner); ok {
			m.Start += off
			m.End += off
			m.YearsStart += off
			m.YearsEnd += off
			return pre, m
		}
		off += loc[7]
	}
	return pre, nil
}

func newMatch(text []byte, loc []int, owner string) (*Match, bool) {
	// loc holds the whole match, the start year, the end year and the tail.
	m := &Match{
		Start:      loc[0],
		End:        loc[7],
		YearsStart: loc[2],
		YearsEnd:   loc[3],
		Owner:      owner,
	}
	var err error
	if m.Years.Start, err = strconv.Atoi(string(text[loc[2]:loc[3]])); err != nil {
		return nil, false
	}
	if loc[4] >= 0 {
		if m.Years.End, err = strconv.Atoi(string(text[loc[4]:loc[5]])); err != nil {
			return nil, false
		}
		if m.Years.End < m.Years.Start {
			return nil, false
		}
		m.YearsEnd = loc[5]
	}
	return m, true
}
