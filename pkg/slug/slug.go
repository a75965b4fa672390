package slug

import (
	"crypto/rand"
	"strings"
	"unicode"

	"github.com/dmitrymomot/contentkit/pkg/sanitizer"
)

// DefaultPrefix starts every slug so it can be used as a path directly.
const DefaultPrefix = "/"

// Option configures the slug generation behavior.
type Option func(*config)

type config struct {
	prefix        string
	maxLength     int
	separator     string
	lowercase     bool
	stripChars    string
	customReplace map[string]string
	suffixLength  int
}

func defaultConfig() *config {
	return &config{
		prefix:    DefaultPrefix,
		separator: "-",
		lowercase: true,
	}
}

// WithPrefix replaces the default "/" prefix. An empty prefix is allowed.
func WithPrefix(p string) Option {
	return func(c *config) {
		c.prefix = p
	}
}

// MaxLength caps the slug body (without prefix) at n runes. Zero means no limit.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Separator sets the word separator. Default is "-".
func Separator(s string) Option {
	return func(c *config) {
		c.separator = s
	}
}

// Lowercase controls whether the slug is lowercased. Default is true.
func Lowercase(enabled bool) Option {
	return func(c *config) {
		c.lowercase = enabled
	}
}

// StripChars removes the given characters before slugification.
func StripChars(chars string) Option {
	return func(c *config) {
		c.stripChars = chars
	}
}

// CustomReplace applies replacements before slugification, e.g. {"&": "and"}.
func CustomReplace(replacements map[string]string) Option {
	return func(c *config) {
		c.customReplace = replacements
	}
}

// WithSuffix appends a random alphanumeric suffix of the given length.
func WithSuffix(length int) Option {
	return func(c *config) {
		c.suffixLength = length
	}
}

// Make turns a title into a path slug: "Tiếng Việt có dấu" → "/tieng-viet-co-dau".
//
// Tones and diacritics are removed, whitespace and hyphen runs become one separator,
// and any other character outside [a-zA-Z0-9] is dropped.
func Make(s string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	for old, repl := range cfg.customReplace {
		s = strings.ReplaceAll(s, old, repl)
	}
	for _, char := range cfg.stripChars {
		s = strings.ReplaceAll(s, string(char), "")
	}

	s = sanitizer.RemoveTones(s)

	var b strings.Builder
	b.Grow(len(s))

	pendingSep := false
	runeCount := 0
	sepLen := len([]rune(cfg.separator))

	for _, r := range s {
		if folded, ok := foldLetter(r); ok {
			r = folded
		}
		if cfg.lowercase {
			r = unicode.ToLower(r)
		}

		switch {
		case isASCIIAlnum(r):
			if pendingSep && runeCount > 0 {
				if cfg.maxLength > 0 && runeCount+sepLen >= cfg.maxLength {
					return finish(cfg, b.String())
				}
				b.WriteString(cfg.separator)
				runeCount += sepLen
			}
			pendingSep = false
			if cfg.maxLength > 0 && runeCount >= cfg.maxLength {
				return finish(cfg, b.String())
			}
			b.WriteRune(r)
			runeCount++
		case unicode.IsSpace(r) || r == '-':
			pendingSep = true
		}
	}

	return finish(cfg, b.String())
}

func finish(cfg *config, body string) string {
	if cfg.suffixLength > 0 {
		body = withSuffix(cfg, body)
	}
	return cfg.prefix + body
}

func withSuffix(cfg *config, body string) string {
	n := cfg.suffixLength
	if cfg.maxLength > 0 && n > cfg.maxLength {
		n = cfg.maxLength
	}
	suffix := generateSuffix(n, cfg.lowercase)

	if cfg.maxLength > 0 {
		sepLen := len([]rune(cfg.separator))
		room := cfg.maxLength - sepLen - n
		if room <= 0 {
			return suffix
		}
		if runes := []rune(body); len(runes) > room {
			body = strings.TrimSuffix(string(runes[:room]), cfg.separator)
		}
	}

	if body == "" {
		return suffix
	}
	return body + cfg.separator + suffix
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Letters that have no canonical decomposition.
var foldMap = map[rune]rune{
	'ø': 'o', 'Ø': 'O',
	'ł': 'l', 'Ł': 'L',
	'æ': 'a', 'Æ': 'A',
	'œ': 'o', 'Œ': 'O',
	'ß': 's',
}

func foldLetter(r rune) (rune, bool) {
	folded, ok := foldMap[r]
	return folded, ok
}

func generateSuffix(length int, lowercase bool) string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	const charsUpper = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	charset := chars
	if !lowercase {
		charset = charsUpper
	}

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		for i := range b {
			b[i] = charset[i%len(charset)]
		}
		return string(b)
	}

	for i := range b {
		b[i] = charset[b[i]%byte(len(charset))]
	}

	return string(b)
}
