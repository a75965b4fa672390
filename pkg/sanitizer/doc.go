// Package sanitizer holds small text helpers for rich content: tag stripping,
// Vietnamese tone removal, capitalization, class-name joining and script removal.
//
// Every helper is a pure func(string) string (or close to it), so they chain with
// Apply and Compose:
//
//	excerpt := sanitizer.Compose(
//		sanitizer.StripTags,
//		sanitizer.SingleLine,
//		func(s string) string { return sanitizer.MaxLength(s, 160) },
//	)
//
//	summary := excerpt(post.Body)
//
// None of the helpers return errors; on failure they return the input unchanged.
package sanitizer
