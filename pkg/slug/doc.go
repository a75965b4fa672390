// Package slug builds URL path slugs from titles, with Vietnamese tone removal.
//
//	slug.Make("Tiếng Việt có dấu")                    // "/tieng-viet-co-dau"
//	slug.Make("Hello, World!", slug.WithPrefix(""))   // "hello-world"
//	slug.Make("Bài viết", slug.WithPrefix("/posts/")) // "/posts/bai-viet"
//
// Tones and diacritics are stripped through Unicode decomposition; đ/Đ and a few
// letters without a decomposition (ø, ł, æ, œ, ß) are folded explicitly. Whitespace
// and hyphen runs become one separator. Punctuation and any other character outside
// [a-zA-Z0-9] is dropped, so "$99.99" becomes "9999".
//
// Options:
//
//   - WithPrefix: replace the default "/" prefix (empty allowed)
//   - MaxLength: cap the body at n runes, prefix excluded
//   - Separator: word separator, "-" by default
//   - Lowercase: lowercase the result, enabled by default
//   - StripChars, CustomReplace: pre-processing
//   - WithSuffix: random alphanumeric suffix from crypto/rand
package slug
