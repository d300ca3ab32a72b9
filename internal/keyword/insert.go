package keyword

import (
	"fmt"
	"strings"
)

// CommentSyntax describes how a comment is opened and, for block-only
// languages, closed.
type CommentSyntax struct {
	Start string
	End   string
}

// Insertion formats keyword for insertion at point. Inside a comment only
// the keyword and a colon are produced; elsewhere the comment leader is
// added too.
func (c Config) Insertion(keyword string, syntax CommentSyntax, inComment bool) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", fmt.Errorf("empty keyword")
	}
	found := false
	for _, e := range c.LiteralEntries() {
		if e.Pattern == keyword {
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("%q is not a literal keyword of the current configuration", keyword)
	}
	body := keyword + ": "
	if inComment {
		return body, nil
	}
	if syntax.Start == "" {
		return "", fmt.Errorf("no comment syntax available")
	}
	if syntax.End == "" {
		return syntax.Start + " " + body, nil
	}
	return syntax.Start + " " + keyword + ": " + syntax.End, nil
}
