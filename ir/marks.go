package ir

// Source markers recognized during tree building and dispatch.
const (
	// FoldMark starts a folding line whose text joins its parent's
	// output without indentation or trailing newlines.
	FoldMark = "| "
	// CommentMark starts a comment that survives into the HTML.
	CommentMark = "//-"
	// RawCommentMark starts a comment dropped during tree building.
	RawCommentMark = "//"
	// RawHTMLMark is the line body under which children pass through
	// uninterpreted.
	RawHTMLMark = "."
)
