package eval

import "strings"

const varOpen = "#{"

// Interpolate substitutes #{name} occurrences in s with the variable's
// value. Unknown names stay as written, and substituted text is not
// rescanned.
func Interpolate(ctx *Context, s string) string {
	if !strings.Contains(s, varOpen) {
		return s
	}
	var b strings.Builder
	for {
		i := strings.Index(s, varOpen)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		j := strings.IndexByte(s[i:], '}')
		if j < 0 {
			b.WriteString(s)
			return b.String()
		}
		name := s[i+len(varOpen) : i+j]
		b.WriteString(s[:i])
		if ctx.HasVar(name) {
			b.WriteString(ctx.Var(name))
		} else {
			b.WriteString(s[i : i+j+1])
		}
		s = s[i+j+1:]
	}
}
