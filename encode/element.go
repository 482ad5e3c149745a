package encode

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pugfmt/go-pug/eval"
	"github.com/pugfmt/go-pug/ir"
)

var (
	tagRe   = regexp.MustCompile(`^([#.]?[A-Za-z_-][A-Za-z0-9_-]*)`)
	idRe    = regexp.MustCompile(`^#([A-Za-z_-][A-Za-z0-9_-]*)`)
	classRe = regexp.MustCompile(`^\.([A-Za-z_-][A-Za-z0-9_-]*)`)
	attrRe  = regexp.MustCompile(`^([A-Za-z_-][A-Za-z0-9_-]*)(=['"][^'"]*['"])?[ ,]*`)
)

type textMode int

const (
	textPlain textMode = iota
	textEscape
	textRaw
)

// segment is one step of an element head's ": " chain.
type segment struct {
	rest  string // remainder of the chain
	out   string // rendered open tag, possibly with inline text
	close string // tag to close later, empty for void tags and doctype
}

// element renders a plain element line: the open tags across the ": "
// chain, the children, then the close tags in reverse. Inline text
// keeps its close tags on the same line; block children push them onto
// indented lines of their own.
func (es *EncState) element(ctx *eval.Context, line *ir.Node) (string, *eval.Context, error) {
	if line.Body == ir.RawHTMLMark {
		// children pass through as-is
		var b strings.Builder
		for _, child := range line.Children {
			b.WriteString(child.Tabs())
			b.WriteString(child.Body)
			b.WriteByte('\n')
		}
		return b.String(), ctx, nil
	}
	var (
		b    strings.Builder
		tags []string
		s    = line.Body
	)
	for first := true; s != ""; first = false {
		seg, err := openElement(ctx, s, line, first)
		if err != nil {
			return "", nil, err
		}
		if seg.close != "" {
			tags = append(tags, seg.close)
		}
		b.WriteString(eval.Interpolate(ctx, seg.out))
		s = seg.rest
	}
	folded := line.Folded(false)
	block := len(line.Children) > 0
	if block && !folded && line.Body != "" {
		b.WriteByte('\n')
	}
	cs, ctx, err := es.children(ctx, line.Children)
	if err != nil {
		return "", nil, err
	}
	b.WriteString(cs)
	for i := len(tags) - 1; i >= 0; i-- {
		if block && !folded {
			b.WriteString(line.Tabs())
		}
		b.WriteString("</" + tags[i] + ">")
		if block && !folded {
			b.WriteByte('\n')
		}
	}
	if !block && !folded && line.Body != "" {
		b.WriteByte('\n')
	}
	if line.Folding {
		b.WriteByte('\n')
	}
	return b.String(), ctx, nil
}

// openElement renders one chain segment:
//
//	tag#id.cls.cls(attr, attr="v")  then  ': ' chain | '=' text | '!=' text | ' ' text
//
// in exactly that order. A head starting with '.' or '#' gets the
// implied div tag.
func openElement(ctx *eval.Context, s string, line *ir.Node, withTabs bool) (segment, error) {
	if m := doctypeRe.FindStringSubmatch(s); m != nil {
		return segment{out: "<!DOCTYPE " + m[1] + ">"}, nil
	}
	m := tagRe.FindStringSubmatch(s)
	if m == nil {
		return segment{}, fmt.Errorf("%w: %q at %s", ErrElement, s, line.Pos)
	}
	tag := m[1]
	void := voidTags[tag]
	var b strings.Builder
	if withTabs && !line.Folded(true) {
		b.WriteString(line.Tabs())
	}
	b.WriteByte('<')
	if tag[0] == '.' || tag[0] == '#' {
		// the div tag may be omitted
		tag = "div"
		b.WriteString(tag)
	} else {
		b.WriteString(tag)
		s = s[len(tag):]
	}
	closeTag := tag
	if void {
		closeTag = ""
	}
	if s == "" || strings.HasPrefix(s, ": ") {
		b.WriteString(openEnd(void))
		return segment{rest: strings.TrimPrefix(s, ": "), out: b.String(), close: closeTag}, nil
	}
	if m := idRe.FindStringSubmatch(s); m != nil {
		b.WriteString(` id="` + m[1] + `"`)
		s = s[len(m[0]):]
	}
	if strings.HasPrefix(s, ".") {
		b.WriteString(` class="`)
		first := true
		for {
			m := classRe.FindStringSubmatch(s)
			if m == nil {
				break
			}
			if !first {
				b.WriteByte(' ')
			}
			b.WriteString(m[1])
			first = false
			s = s[len(m[0]):]
		}
		b.WriteByte('"')
	}
	if strings.HasPrefix(s, "(") {
		s = s[1:]
		for {
			m := attrRe.FindStringSubmatch(s)
			if m == nil {
				break
			}
			b.WriteByte(' ')
			b.WriteString(m[1])
			if param := m[2]; len(param) > 1 {
				if param[1] != param[len(param)-1] {
					return segment{}, fmt.Errorf("%w: mismatched quotes at %s", ErrAttr, line.Pos)
				}
				b.WriteString(`="` + param[2:len(param)-1] + `"`)
			}
			s = s[len(m[0]):]
		}
		if !strings.HasPrefix(s, ")") {
			return segment{}, fmt.Errorf("%w: unbalanced attributes at %s", ErrAttr, line.Pos)
		}
		s = s[1:]
	}
	b.WriteString(openEnd(void))
	if strings.HasPrefix(s, ": ") {
		return segment{rest: s[2:], out: b.String(), close: closeTag}, nil
	}
	mode := textPlain
	switch {
	case strings.HasPrefix(s, "!="):
		mode = textRaw
		s = s[2:]
	case strings.HasPrefix(s, "="):
		mode = textEscape
		s = s[1:]
	}
	c := strings.TrimPrefix(s, " ")
	b.WriteString(inlineText(ctx, c, mode))
	return segment{out: b.String(), close: closeTag}, nil
}

func openEnd(void bool) string {
	if void {
		return " />"
	}
	return ">"
}

// inlineText renders inline content. Content after = or != that
// resolves as an operand renders its value, so `title= "x"` emits x and
// `li= x` reads the variable; anything else stays literal. Only =
// output is HTML escaped.
func inlineText(ctx *eval.Context, c string, mode textMode) string {
	if mode == textPlain {
		return c
	}
	if op, err := eval.ToOperand(ctx, c); err == nil {
		c = op.String()
	}
	if mode == textEscape {
		return Escape(c)
	}
	return c
}
