package editor

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags reduces pasted rich content to plain text. Title and subtitle
// fields never carry markup, so anything that looks like HTML is parsed and
// collapsed to its text content.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(textContent(root))
}
