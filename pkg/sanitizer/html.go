package sanitizer

import (
	"html"
	"regexp"
)

var (
	styleBlockRegex  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	htmlCommentRegex = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// PlainText reduces HTML to readable text: scripts, styles, comments and tags are
// removed, entities unescaped and whitespace collapsed.
func PlainText(s string) string {
	return Apply(s,
		StripScriptTags,
		func(s string) string { return styleBlockRegex.ReplaceAllString(s, "") },
		func(s string) string { return htmlCommentRegex.ReplaceAllString(s, "") },
		StripTags,
		html.UnescapeString,
		RemoveExtraWhitespace,
	)
}

// SafeContent removes scripts and inline JavaScript while keeping markup.
var SafeContent = Compose(StripScriptTags, RemoveJavaScriptEvents)
