package encode

import (
	"errors"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/pugfmt/go-pug/eval"
	"github.com/pugfmt/go-pug/parse"
	"github.com/pugfmt/go-pug/source"
)

func render(t *testing.T, src string, opts ...EncodeOption) string {
	t.Helper()
	root, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, _, err := String(root, eval.NewContext(), opts...)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return out
}

func renderErr(t *testing.T, src string, opts ...EncodeOption) error {
	t.Helper()
	root, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, _, err = String(root, eval.NewContext(), opts...)
	if err == nil {
		t.Fatalf("no error for %q", src)
	}
	return err
}

type encodeTest struct {
	name string
	in   string
	want string
}

func TestEncode(t *testing.T) {
	ets := []encodeTest{
		{
			name: "tag chain",
			in:   "html\n\thead\n\t\ttitle= \"x\"\n\tbody\n\t\tp Hello\n",
			want: "<html>\n\t<head>\n\t\t<title>x</title>\n\t</head>\n\t<body>\n\t\t<p>Hello</p>\n\t</body>\n</html>\n",
		},
		{
			name: "classes and id",
			in:   "div#main.a.b\n\tspan.c hi\n",
			want: "<div id=\"main\" class=\"a b\">\n\t<span class=\"c\">hi</span>\n</div>\n",
		},
		{
			name: "doctype and void tags",
			in:   "doctype html\nimg(src=\"a.png\")\nbr\n",
			want: "<!DOCTYPE html>\n<img src=\"a.png\" />\n<br />\n",
		},
		{
			name: "each",
			in:   "ul\n\teach x in [a,\"b\",c]\n\t\tli= x\n",
			want: "<ul>\n\t\t<li>a</li>\n\t\t<li>b</li>\n\t\t<li>c</li>\n</ul>\n",
		},
		{
			name: "if elif else",
			in:   "- var n = 2\nif n == 1\n\tp one\nelse if n == 2\n\tp two\nelse\n\tp other\n",
			want: "\t<p>two</p>\n",
		},
		{
			name: "if truthy skips chain",
			in:   "- var n = 1\nif n == 1\n\tp one\nelse if n == 2\n\tp two\nelse\n\tp other\n",
			want: "\t<p>one</p>\n",
		},
		{
			name: "folding",
			in:   "p\n\t| hello\n\t| world\n",
			want: "<p>helloworld</p>\n",
		},
		{
			name: "folding with element",
			in:   "p\n\t| hello \n\ta world\n",
			want: "<p>hello <a>world</a></p>\n",
		},
		{
			name: "inline chain",
			in:   "li: a Home\n",
			want: "<li><a>Home</a></li>\n",
		},
		{
			name: "empty element",
			in:   "p\n",
			want: "<p></p>\n",
		},
		{
			name: "attributes without values",
			in:   "input(type=\"checkbox\", checked)\n",
			want: "<input type=\"checkbox\" checked />\n",
		},
		{
			name: "escaped inline text",
			in:   "p= \"<b>\"\n",
			want: "<p>&lt;b&gt;</p>\n",
		},
		{
			name: "raw inline text",
			in:   "p!= \"<b>\"\n",
			want: "<p><b></p>\n",
		},
		{
			name: "variable value with a space",
			in:   "- var s = \"hello world\"\np= s\n",
			want: "<p>hello world</p>\n",
		},
		{
			name: "const",
			in:   "- const s = 'quoted'\np= s\n",
			want: "<p>quoted</p>\n",
		},
		{
			name: "interpolation",
			in:   "- var name = World\np Hello #{name}!\n",
			want: "<p>Hello World!</p>\n",
		},
		{
			name: "comment",
			in:   "- var name = World\n//- note #{name}\n",
			want: "<!-- note World -->\n",
		},
		{
			name: "raw comment dropped",
			in:   "// gone\np kept\n",
			want: "<p>kept</p>\n",
		},
		{
			name: "raw html",
			in:   "div\n\t.\n\t\t<b>B</b>\n",
			want: "<div>\n\t\t<b>B</b>\n</div>\n",
		},
		{
			name: "for loop stays local",
			in:   "- for (var i = 0; i < 3; i += 1)\n\tp= i\np= i\n",
			want: "\t<p>0</p>\n\t<p>1</p>\n\t<p>2</p>\n<p>i</p>\n",
		},
		{
			name: "each retains its context",
			in:   "ul\n\teach x in [a,b]\n\t\tli= x\np= x\n",
			want: "<ul>\n\t\t<li>a</li>\n\t\t<li>b</li>\n</ul>\n<p>b</p>\n",
		},
		{
			name: "each over empty list",
			in:   "ul\n\teach x in []\n\t\tli= x\n",
			want: "<ul>\n</ul>\n",
		},
		{
			name: "case",
			in:   "- var x = b\ncase x\n\twhen \"a\"\n\t\tp A\n\twhen \"b\"\n\t\tp B\n\tdefault\n\t\tp D\n",
			want: "\t\t<p>B</p>\n",
		},
		{
			name: "case fallthrough",
			in:   "- var x = a\ncase x\n\twhen \"a\"\n\twhen \"b\"\n\t\tp AB\n",
			want: "\t\t<p>AB</p>\n",
		},
		{
			name: "case break",
			in:   "- var x = a\ncase x\n\twhen \"a\"\n\t\t- break\n\tdefault\n\t\tp D\n",
			want: "",
		},
		{
			name: "case default",
			in:   "- var x = zz\ncase x\n\twhen \"a\"\n\t\tp A\n\tdefault\n\t\tp D\n",
			want: "\t\t<p>D</p>\n",
		},
		{
			name: "block stores then replays",
			in:   "block greeting\n\tp Hi\nblock greeting\n",
			want: "\t<p>Hi</p>\n",
		},
		{
			name: "crlf input",
			in:   "p Hi\r\n",
			want: "<p>Hi</p>\n",
		},
		{
			name: "assignment condition keeps outer variables",
			in:   "- var i = 4\nif i /= 2\n\tp ok\np= i\n",
			want: "\t<p>ok</p>\n<p>4</p>\n",
		},
	}
	for _, et := range ets {
		t.Run(et.name, func(t *testing.T) {
			got := render(t, et.in)
			if got != et.want {
				dmp := diffmatchpatch.New()
				diffs := dmp.DiffMain(et.want, got, false)
				t.Errorf("output mismatch (want vs got):\n%s", dmp.DiffPrettyText(diffs))
			}
		})
	}
}

func TestEncodeInclude(t *testing.T) {
	files := source.MapLoader{
		"dir/main.pug": "html\n\tinclude nav.pug\n",
		"dir/nav.pug":  "p Nav\n",
	}
	got := render(t, string(mustLoad(t, files, "dir/main.pug")),
		EncodeLoader(files), EncodeBase("dir/main.pug"))
	want := "<html>\n\t<p>Nav</p>\n</html>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeExtends(t *testing.T) {
	files := source.MapLoader{
		"dir/page.pug":   "block content\n\tp Page\nextends layout.pug\n",
		"dir/layout.pug": "html\n\tblock content\n",
	}
	got := render(t, string(mustLoad(t, files, "dir/page.pug")),
		EncodeLoader(files), EncodeBase("dir/page.pug"))
	want := "<html>\n\t<p>Page</p>\n</html>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeIncludeDepth(t *testing.T) {
	files := source.MapLoader{
		"dir/a.pug": "include a.pug\n",
	}
	root, err := parse.Parse(mustLoad(t, files, "dir/a.pug"))
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = String(root, eval.NewContext(),
		EncodeLoader(files), EncodeBase("dir/a.pug"), EncodeMaxInclude(4))
	if !errors.Is(err, ErrIncludeDepth) {
		t.Fatalf("got %v, want ErrIncludeDepth", err)
	}
}

func TestEncodeIncludeMissing(t *testing.T) {
	files := source.MapLoader{
		"dir/a.pug": "include nope.pug\n",
	}
	root, err := parse.Parse(mustLoad(t, files, "dir/a.pug"))
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = String(root, eval.NewContext(),
		EncodeLoader(files), EncodeBase("dir/a.pug"))
	var ioErr *source.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("got %v, want *source.IOError", err)
	}
}

func mustLoad(t *testing.T, files source.MapLoader, path string) []byte {
	t.Helper()
	d, err := files.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestEncodeErrs(t *testing.T) {
	ets := []struct {
		name string
		in   string
		want error
	}{
		{"bad element head", "%bad\n", ErrElement},
		{"unbalanced attributes", "a(href=\"x\n", ErrAttr},
		{"unknown condition variable", "if x == 1\n\tp x\n", eval.ErrOperand},
		{"bare condition", "- var x = 1\nif x\n\tp x\n", eval.ErrExpression},
		{"repeated default", "case x\n\tdefault\n\t\tp A\n\tdefault\n\t\tp B\n", ErrCase},
		{"when quote mismatch", "case x\n\twhen \"a'\n\t\tp A\n", ErrCase},
		{"stray case child", "case x\n\tp A\n", ErrCase},
		{"empty each element", "each x in [a,,b]\n\tp= x\n", ErrEach},
		{"zero division", "- var i = 1\nif i /= 0\n\tp x\n", eval.ErrZeroDivision},
		{"compound without target", "if i += 1\n\tp x\n", eval.ErrAssign},
	}
	for _, et := range ets {
		t.Run(et.name, func(t *testing.T) {
			err := renderErr(t, et.in)
			if !errors.Is(err, et.want) {
				t.Errorf("got %v, want %v", err, et.want)
			}
		})
	}
}

func TestEscape(t *testing.T) {
	if got := Escape(`<>&"'`); got != "&lt;&gt;&amp;&quot;&#39;" {
		t.Errorf("got %q", got)
	}
	// double escaping composes deterministically
	once := Escape("<")
	if got := Escape(once); got != "&amp;lt;" {
		t.Errorf("got %q", got)
	}
}

func TestBalancedTags(t *testing.T) {
	src := "html\n\tbody\n\t\tdiv#a.x\n\t\t\tul\n\t\t\t\teach i in [1,2]\n\t\t\t\t\tli= i\n\t\tbr\n"
	out := render(t, src)
	for _, tag := range []string{"html", "body", "div", "ul", "li"} {
		opens := strings.Count(out, "<"+tag)
		closes := strings.Count(out, "</"+tag+">")
		if opens != closes {
			t.Errorf("tag %s: %d opens, %d closes\n%s", tag, opens, closes, out)
		}
	}
	if !strings.Contains(out, "<br />") || strings.Contains(out, "</br>") {
		t.Errorf("void tag mishandled:\n%s", out)
	}
}
