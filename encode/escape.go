package encode

import "strings"

var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape applies the HTML escape table to s.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// voidTags cannot have children and render self-closing.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}
