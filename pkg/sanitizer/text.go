package sanitizer

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	tagRegex        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	strokeReplacer  = strings.NewReplacer("đ", "d", "Đ", "D")
)

// StripTags removes everything that looks like an HTML tag. Entities are left as is.
func StripTags(s string) string {
	return tagRegex.ReplaceAllString(s, "")
}

// CapitalizeFirst upper-cases the first letter and leaves the rest untouched.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// RemoveTones strips Vietnamese tone and vowel marks: "Tiếng Việt" → "Tieng Viet".
// đ and Đ, which have no decomposition, become d and D.
func RemoveTones(s string) string {
	// A transform.Chain keeps state, so it is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return strokeReplacer.Replace(out)
}

// ClassNames joins the truthy values with single spaces, skipping nil, false,
// empty strings and numeric zeros.
func ClassNames(values ...any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if !truthy(v) {
			continue
		}
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, " ")
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String() != ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return !rv.IsZero()
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	default:
		return true
	}
}

// MaxLength truncates s to maxLen runes.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// RemoveExtraWhitespace collapses whitespace runs into one space and trims.
func RemoveExtraWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// SingleLine joins lines with spaces and collapses whitespace.
func SingleLine(s string) string {
	return RemoveExtraWhitespace(s)
}
