package token

import "strings"

// Line is one physical source line: the count of leading tabs and the
// body that follows them. Spaces never count as indentation.
type Line struct {
	Depth int
	Body  string
	Pos   *Pos
}

// Blank reports whether the body is empty or only spaces and tabs.
func (l *Line) Blank() bool {
	return strings.Trim(l.Body, " \t") == ""
}

// SplitLines splits d on LF, dropping a trailing CR per segment and
// skipping fully empty segments. A trailing segment without a
// terminating LF is kept. Positions number physical lines from 1,
// counting the skipped ones.
func SplitLines(d []byte, file string) []Line {
	var res []Line
	s := string(d)
	ln := 0
	for s != "" {
		ln++
		seg := s
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			seg = s[:i]
			s = s[i+1:]
		} else {
			s = ""
		}
		seg = strings.TrimSuffix(seg, "\r")
		if seg == "" {
			continue
		}
		res = append(res, newLine(seg, ln, file))
	}
	return res
}

func newLine(seg string, ln int, file string) Line {
	depth := 0
	for depth < len(seg) && seg[depth] == '\t' {
		depth++
	}
	return Line{Depth: depth, Body: seg[depth:], Pos: &Pos{Line: ln, File: file}}
}
