// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package notice

import "bytes"

// Fix returns text with an up-to-date notice for owner and year, along with
// the outcome. pre and m must come from [Locate] on the same text.
//
// Without a match, a new notice block is inserted right after the preamble,
// separated from the following content by one blank line. A stale match has
// its year expression replaced by "<start>, <year>"; nothing else in the file
// changes. A current match leaves text untouched.
func Fix(text []byte, s Style, pre Preamble, m *Match, owner string, year int) ([]byte, Outcome) {
	if m == nil {
		return insert(text, s, pre, owner, year), Added
	}
	if m.Years.Last() >= year {
		return text, Unchanged
	}
	years := Years{Start: m.Years.Start, End: year}.String()
	out := make([]byte, 0, len(text)-(m.YearsEnd-m.YearsStart)+len(years))
	out = append(out, text[:m.YearsStart]...)
	out = append(out, years...)
	out = append(out, text[m.YearsEnd:]...)
	return out, Updated
}

func insert(text []byte, s Style, pre Preamble, owner string, year int) []byte {
	block := s.Render(Years{Start: year}, owner)
	n := pre.Len()
	rest := text[n:]

	var buf bytes.Buffer
	buf.Grow(len(text) + len(block) + 2)
	buf.Write(text[:n])
	if n > 0 && text[n-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(block)
	if len(rest) > 0 {
		if !startsWithLineBreak(rest) {
			buf.WriteByte('\n')
		}
		buf.Write(rest)
	}
	return buf.Bytes()
}

func startsWithLineBreak(b []byte) bool {
	return bytes.HasPrefix(b, []byte("\n")) || bytes.HasPrefix(b, []byte("\r\n"))
}
