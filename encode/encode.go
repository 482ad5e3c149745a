package encode

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pugfmt/go-pug/debug"
	"github.com/pugfmt/go-pug/eval"
	"github.com/pugfmt/go-pug/ir"
	"github.com/pugfmt/go-pug/parse"
	"github.com/pugfmt/go-pug/source"
)

// DefaultMaxInclude bounds include/extends nesting when no option
// overrides it.
const DefaultMaxInclude = 64

type EncState struct {
	base       string
	loader     source.Loader
	maxInclude int

	depth int // current include nesting
}

var (
	doctypeRe = regexp.MustCompile(`^[dD][oO][cC][tT][yY][pP][eE] ([A-Za-z0-9_]+)$`)
	commentRe = regexp.MustCompile(`^//-[ \t]?(.*)$`)
	includeRe = regexp.MustCompile(`^include[ \t]+([^ ]+)$`)
	extendsRe = regexp.MustCompile(`^extends[ \t]+([^ ]+)$`)
	blockRe   = regexp.MustCompile(`^block[ \t]+([^ ]+)$`)
	ifRe      = regexp.MustCompile(`^if[ \t]+(.*)$`)
	elifRe    = regexp.MustCompile(`^else[ \t]+if[ \t]+(.*)$`)
	elseRe    = regexp.MustCompile(`^else[ \t]*$`)
	caseRe    = regexp.MustCompile(`^case[ \t]+([A-Za-z_-][A-Za-z0-9_-]*)$`)
	whenRe    = regexp.MustCompile(`^when[ \t]+(["'])([A-Za-z_-][A-Za-z0-9_-]*)(["'])$`)
	breakRe   = regexp.MustCompile(`^-[ \t]+break$`)
	forRe     = regexp.MustCompile(`^-[ \t]+for[ \t]*\([ \t]*var[ \t]+([A-Za-z_-][A-Za-z0-9_-]*)[ \t]*=[ \t]*([^;]+);[ \t]*([ \tA-Za-z0-9_+*/%=<>!-]*);[ \t]*([ \tA-Za-z0-9_+*/%=<>!-]*)\)$`)
	eachRe    = regexp.MustCompile(`^each[ \t]+([A-Za-z_-][A-Za-z0-9_-]*)[ \t]*in[ \t]*\[([^\]]*)\]$`)
	varRe     = regexp.MustCompile(`^-[ \t]+var[ \t]+([A-Za-z_-][A-Za-z0-9_-]*)[ \t]*=[ \t]*([^;]+)$`)
	constRe   = regexp.MustCompile(`^-[ \t]+const[ \t]+([A-Za-z_-][A-Za-z0-9_-]*)[ \t]*=[ \t]*([^;]+)$`)
)

const defaultBody = "default"

// Encode renders node under a fresh context and writes the HTML to w.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	out, _, err := String(node, eval.NewContext(), opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// String renders node under ctx and returns the HTML together with the
// context as it stands after the last line.
func String(node *ir.Node, ctx *eval.Context, opts ...EncodeOption) (string, *eval.Context, error) {
	es := &EncState{
		loader:     source.OSLoader{},
		maxInclude: DefaultMaxInclude,
	}
	for _, opt := range opts {
		opt(es)
	}
	return es.line(ctx, node)
}

// line dispatches one node. Directives are tried in priority order;
// whatever matches nothing renders as an element.
func (es *EncState) line(ctx *eval.Context, line *ir.Node) (string, *eval.Context, error) {
	if line == nil {
		return "", ctx, nil
	}
	s := line.Body
	if strings.HasPrefix(s, ir.FoldMark) {
		return eval.Interpolate(ctx, s[len(ir.FoldMark):]), ctx, nil
	}
	if m := commentRe.FindStringSubmatch(s); m != nil {
		return line.Tabs() + "<!-- " + eval.Interpolate(ctx, m[1]) + " -->\n", ctx, nil
	}
	if m := includeRe.FindStringSubmatch(s); m != nil {
		return es.include(ctx, line, m[1])
	}
	if m := extendsRe.FindStringSubmatch(s); m != nil {
		// extends shares include's mechanics; the override half lives
		// in the block directive below
		return es.include(ctx, line, m[1])
	}
	if m := blockRe.FindStringSubmatch(s); m != nil {
		name := m[1]
		if ctx.HasBlock(name) {
			return es.children(ctx, ctx.Block(name).Children)
		}
		return "", ctx.SetBlock(name, line), nil
	}
	if m := ifRe.FindStringSubmatch(s); m != nil {
		return es.ifChain(ctx, line, m[1])
	}
	if elifRe.MatchString(s) || elseRe.MatchString(s) {
		// consumed by the owning if
		return "", ctx, nil
	}
	if m := caseRe.FindStringSubmatch(s); m != nil {
		return es.caseOf(ctx, line, m[1])
	}
	if m := forRe.FindStringSubmatch(s); m != nil {
		return es.forLoop(ctx, line, m[1], m[2], m[3], m[4])
	}
	if m := eachRe.FindStringSubmatch(s); m != nil {
		return es.each(ctx, line, m[1], m[2])
	}
	if m := varRe.FindStringSubmatch(s); m != nil {
		return "", setVar(ctx, m[1], m[2]), nil
	}
	if m := constRe.FindStringSubmatch(s); m != nil {
		return "", setVar(ctx, m[1], m[2]), nil
	}
	return es.element(ctx, line)
}

// children renders a node sequence, threading the context from one
// sibling to the next.
func (es *EncState) children(ctx *eval.Context, children []*ir.Node) (string, *eval.Context, error) {
	var b strings.Builder
	for _, child := range children {
		s, c, err := es.line(ctx, child)
		if err != nil {
			return "", nil, err
		}
		ctx = c
		b.WriteString(s)
	}
	return b.String(), ctx, nil
}

func (es *EncState) include(ctx *eval.Context, line *ir.Node, name string) (string, *eval.Context, error) {
	if es.depth >= es.maxInclude {
		return "", nil, fmt.Errorf("%w (%d) at %s", ErrIncludeDepth, es.maxInclude, line.Pos)
	}
	path := es.loader.Sibling(es.base, name)
	if debug.Include() {
		debug.Logf("include %s at %s\n", path, line.Pos)
	}
	d, err := es.loader.Load(path)
	if err != nil {
		return "", nil, err
	}
	sub, err := parse.Parse(d, parse.WithBaseDepth(line.Depth), parse.WithFilename(path))
	if err != nil {
		return "", nil, err
	}
	es.depth++
	defer func() { es.depth-- }()
	return es.line(ctx, sub)
}

func (es *EncState) ifChain(ctx *eval.Context, line *ir.Node, cond string) (string, *eval.Context, error) {
	// side effects of conditions are dropped
	ok, _, err := eval.Evaluate(ctx, cond)
	if err != nil {
		return "", nil, fmt.Errorf("%w at %s", err, line.Pos)
	}
	if ok {
		return es.children(ctx, line.Children)
	}
	if line.Parent == nil {
		return "", nil, fmt.Errorf("%w: dangling if at %s", ErrElse, line.Pos)
	}
	var (
		elifs    []*ir.Node
		elseNode *ir.Node
	)
	for _, sib := range siblingsAfter(line) {
		if elifRe.MatchString(sib.Body) {
			if elseNode != nil {
				return "", nil, fmt.Errorf("%w: else if after else at %s", ErrElse, sib.Pos)
			}
			elifs = append(elifs, sib)
			continue
		}
		if elseRe.MatchString(sib.Body) {
			if elseNode != nil {
				return "", nil, fmt.Errorf("%w: repeated else at %s", ErrElse, sib.Pos)
			}
			elseNode = sib
			continue
		}
		break
	}
	for _, elif := range elifs {
		m := elifRe.FindStringSubmatch(elif.Body)
		ok, _, err := eval.Evaluate(ctx, m[1])
		if err != nil {
			return "", nil, fmt.Errorf("%w at %s", err, elif.Pos)
		}
		if ok {
			return es.children(ctx, elif.Children)
		}
	}
	if elseNode != nil {
		return es.children(ctx, elseNode.Children)
	}
	return "", ctx, nil
}

func siblingsAfter(line *ir.Node) []*ir.Node {
	sibs := line.Parent.Children
	for i, sib := range sibs {
		if sib == line {
			return sibs[i+1:]
		}
	}
	return nil
}

func (es *EncState) caseOf(ctx *eval.Context, line *ir.Node, name string) (string, *eval.Context, error) {
	v := name
	if ctx.HasVar(name) {
		v = ctx.Var(name)
	}
	// the empty label stands for default
	type arm struct {
		label string
		node  *ir.Node
	}
	var arms []arm
	has := func(label string) bool {
		for _, a := range arms {
			if a.label == label {
				return true
			}
		}
		return false
	}
	for _, child := range line.Children {
		if child.Body == defaultBody {
			if has("") {
				return "", nil, fmt.Errorf("%w: repeated default at %s", ErrCase, child.Pos)
			}
			arms = append(arms, arm{node: child})
			continue
		}
		m := whenRe.FindStringSubmatch(child.Body)
		if m == nil {
			return "", nil, fmt.Errorf("%w: %q at %s", ErrCase, child.Body, child.Pos)
		}
		if m[1] != m[3] {
			return "", nil, fmt.Errorf("%w: mismatched quotes at %s", ErrCase, child.Pos)
		}
		if has(m[2]) {
			return "", nil, fmt.Errorf("%w: repeated label %q at %s", ErrCase, m[2], child.Pos)
		}
		arms = append(arms, arm{label: m[2], node: child})
	}
	label := ""
	switch {
	case has(v):
		label = v
	case has(""):
	default:
		return "", ctx, nil
	}
	start := 0
	for i, a := range arms {
		if a.label == label {
			start = i
			break
		}
	}
	// an armless branch falls through to the next one
	for i := start; i < len(arms); i++ {
		ch := arms[i].node.Children
		if len(ch) == 0 {
			continue
		}
		if breakRe.MatchString(ch[0].Body) {
			break
		}
		return es.children(ctx, ch)
	}
	return "", ctx, nil
}

func (es *EncState) forLoop(ctx *eval.Context, line *ir.Node, name, initial, cond, step string) (string, *eval.Context, error) {
	inner := ctx
	v, err := eval.ToOperand(inner, initial)
	if err != nil {
		return "", nil, fmt.Errorf("%w at %s", err, line.Pos)
	}
	inner = inner.Set(name, v.String())
	var b strings.Builder
	for {
		ok, _, err := eval.Evaluate(inner, cond)
		if err != nil {
			return "", nil, fmt.Errorf("%w at %s", err, line.Pos)
		}
		if !ok {
			break
		}
		s, c, err := es.children(inner, line.Children)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(s)
		_, c, err = eval.Evaluate(c, step)
		if err != nil {
			return "", nil, fmt.Errorf("%w at %s", err, line.Pos)
		}
		inner = c
	}
	// the loop variable and its changes stay local
	return b.String(), ctx, nil
}

func (es *EncState) each(ctx *eval.Context, line *ir.Node, name, csv string) (string, *eval.Context, error) {
	items, err := splitEach(csv, line)
	if err != nil {
		return "", nil, err
	}
	if len(items) == 0 {
		return "", ctx, nil
	}
	var b strings.Builder
	for _, item := range items {
		ctx = ctx.Set(name, item)
		s, c, err := es.children(ctx, line.Children)
		if err != nil {
			return "", nil, err
		}
		ctx = c
		b.WriteString(s)
	}
	return b.String(), ctx, nil
}

func splitEach(csv string, line *ir.Node) ([]string, error) {
	parts := strings.Split(csv, ",")
	if parts[len(parts)-1] == "" {
		// a single trailing empty segment comes from [] or a trailing comma
		parts = parts[:len(parts)-1]
	}
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.Trim(part, " \t")
		if item == "" {
			return nil, fmt.Errorf("%w: empty element at %s", ErrEach, line.Pos)
		}
		if item[0] == '"' || item[0] == '\'' {
			if len(item) < 2 || item[0] != item[len(item)-1] {
				return nil, fmt.Errorf("%w: mismatched quotes at %s", ErrEach, line.Pos)
			}
			item = item[1 : len(item)-1]
		}
		items = append(items, item)
	}
	return items, nil
}

// setVar implements - var and - const: one pair of matching surrounding
// quotes is stripped, everything else is stored verbatim.
func setVar(ctx *eval.Context, name, value string) *eval.Context {
	if len(value) >= 2 {
		if q := value[0]; (q == '"' || q == '\'') && value[len(value)-1] == q {
			value = value[1 : len(value)-1]
		}
	}
	return ctx.Set(name, value)
}
