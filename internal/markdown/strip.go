// Package markdown strips Markdown formatting from provider output.
// Presentational convenience for clients that render plain text.
package markdown

import (
	"regexp"
	"strings"
)

var (
	codeFence  = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\n?(.*?)```")
	inlineCode = regexp.MustCompile("`([^`]*)`")
	image      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	link       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	bold       = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	italic     = regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`)
	heading    = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	blockquote = regexp.MustCompile(`(?m)^>\s?`)
	listMarker = regexp.MustCompile(`(?m)^(\s*)[-*+]\s+`)
	horizRule  = regexp.MustCompile(`(?m)^(\*{3,}|-{3,}|_{3,})\s*$`)
)

// Strip removes common Markdown syntax, keeping the readable text.
func Strip(text string) string {
	t := codeFence.ReplaceAllString(text, "$1")
	t = inlineCode.ReplaceAllString(t, "$1")
	t = image.ReplaceAllString(t, "$1")
	t = link.ReplaceAllString(t, "$1")
	t = bold.ReplaceAllString(t, "$1$2")
	t = italic.ReplaceAllString(t, "$1$2")
	t = heading.ReplaceAllString(t, "")
	t = blockquote.ReplaceAllString(t, "")
	t = listMarker.ReplaceAllString(t, "$1")
	t = horizRule.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}
