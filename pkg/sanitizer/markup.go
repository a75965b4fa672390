package sanitizer

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteStartTags calls fn for every start tag in s. Tags for which fn returns true
// are rendered again from the modified token; every other byte of s, comments and
// text included, is copied unchanged.
func RewriteStartTags(s string, fn func(tok *html.Token) bool) string {
	var b strings.Builder
	b.Grow(len(s))

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken, html.SelfClosingTagToken:
			// Token lowercases names inside the buffer Raw points to.
			raw := bytes.Clone(z.Raw())
			tok := z.Token()
			if fn(&tok) {
				b.WriteString(tok.String())
			} else {
				b.Write(raw)
			}
		default:
			b.Write(z.Raw())
		}
	}
}

// StripScriptTags removes <script> elements with their content.
func StripScriptTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	z := html.NewTokenizer(strings.NewReader(s))
	inScript := false
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return b.String()
		}
		raw := bytes.Clone(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Script {
				inScript = tt != html.EndTagToken
				continue
			}
		}
		if !inScript {
			b.Write(raw)
		}
	}
}

// RemoveJavaScriptEvents drops on* handler attributes and attributes holding a
// javascript: URL from element start tags. Text content is never touched.
func RemoveJavaScriptEvents(s string) string {
	return RewriteStartTags(s, func(tok *html.Token) bool {
		kept := tok.Attr[:0]
		for _, a := range tok.Attr {
			if strings.HasPrefix(a.Key, "on") || isJavaScriptURL(a.Val) {
				continue
			}
			kept = append(kept, a)
		}
		changed := len(kept) != len(tok.Attr)
		tok.Attr = kept
		return changed
	})
}

// isJavaScriptURL ignores whitespace and control characters the way browsers do
// when resolving the scheme.
func isJavaScriptURL(v string) bool {
	v = strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, v)
	return len(v) >= len("javascript:") && strings.EqualFold(v[:len("javascript:")], "javascript:")
}
