package ir

import (
	"fmt"
	"io"
	"strings"
)

const dumpLimit = 16

// Dump writes the line tree in an indented summary form, eliding long
// bodies. It is a debugging aid wired to the CLI's -dump flag.
func Dump(w io.Writer, node *Node, nest int) {
	if node == nil {
		return
	}
	body := node.Body
	if len(body) > 2*dumpLimit {
		body = body[:dumpLimit] + " ... " + body[len(body)-dumpLimit:]
	}
	fmt.Fprintf(w, "%s%s:%d", strings.Repeat("\t", nest), body, node.Depth)
	if len(node.Children) == 0 {
		fmt.Fprintln(w, "{}")
		return
	}
	fmt.Fprintln(w, "{")
	for _, child := range node.Children {
		Dump(w, child, nest+1)
	}
	fmt.Fprintf(w, "%s}\n", strings.Repeat("\t", nest))
}
