package content

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/contentkit/pkg/sanitizer"
)

// ReplacePlaceholders replaces the first "{{{img<i>}}}" with images[i], for each i.
func ReplacePlaceholders(content string, images []string) string {
	for i, img := range images {
		content = strings.Replace(content, "{{{img"+strconv.Itoa(i)+"}}}", img, 1)
	}
	return content
}

// AddBaseURL prefixes baseURL to every relative <img> src.
// Absolute http(s) sources and data URIs are left alone.
func AddBaseURL(content, baseURL string) string {
	if baseURL == "" {
		return content
	}
	return rewriteImageSources(content, func(src string) string {
		if isAbsolute(src) {
			return src
		}
		return baseURL + src
	})
}

// RemoveBaseURL turns <img> sources of the form baseURL + "/..." back into "/...".
func RemoveBaseURL(content, baseURL string) string {
	if baseURL == "" {
		return content
	}
	prefix := baseURL + "/"
	return rewriteImageSources(content, func(src string) string {
		if strings.HasPrefix(src, prefix) && len(src) > len(prefix) {
			return src[len(baseURL):]
		}
		return src
	})
}

// rewriteImageSources applies fn to the src value of every <img> tag. Only the
// tags whose src changes are re-rendered.
func rewriteImageSources(content string, fn func(string) string) string {
	return sanitizer.RewriteStartTags(content, func(tok *html.Token) bool {
		if tok.DataAtom != atom.Img {
			return false
		}
		for i, a := range tok.Attr {
			if a.Namespace != "" || a.Key != "src" {
				continue
			}
			v := fn(a.Val)
			if v == a.Val {
				return false
			}
			tok.Attr[i].Val = v
			return true
		}
		return false
	})
}

func isAbsolute(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:")
}
