package chunker

import (
	"regexp"
	"strings"
)

var (
	reHeading    = regexp.MustCompile(`(?m)^#{1,6}[ \t]*`)
	reLink       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	reBold       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reUnderscore = regexp.MustCompile(`_([^_]+)_`)
	reBlankRuns  = regexp.MustCompile(`\n{3,}`)
)

// CleanMarkdown strips heading markers, bold/italic markers and link
// syntax (keeping link text), and collapses runs of blank lines. Pure
// text transform; the result is what gets chunked and searched.
func CleanMarkdown(text string) string {
	text = reHeading.ReplaceAllString(text, "")
	text = reLink.ReplaceAllString(text, "$1")
	text = reBold.ReplaceAllString(text, "$1")
	text = reItalic.ReplaceAllString(text, "$1")
	text = reUnderscore.ReplaceAllString(text, "$1")
	text = reBlankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
