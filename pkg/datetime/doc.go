// Package datetime formats dates for Vietnamese-language content: relative "time ago"
// strings and the DD/MM/YYYY calendar format.
//
//	datetime.TimeAgo(post.PublishedAt, time.Now()) // "5 phút trước"
//	datetime.FormatVNDate(post.PublishedAt)        // "19/10/2026"
package datetime
