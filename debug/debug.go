package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Tree    bool
	Eval    bool
	Include bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tree = boolEnv("PUG_DEBUG_TREE")
	d.Eval = boolEnv("PUG_DEBUG_EVAL")
	d.Include = boolEnv("PUG_DEBUG_INCLUDE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tree() bool {
	return d.Tree
}
func Eval() bool {
	return d.Eval
}
func Include() bool {
	return d.Include
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
