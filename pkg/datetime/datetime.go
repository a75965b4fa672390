package datetime

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrymomot/contentkit/pkg/sanitizer"
)

// VNDateLayout is DD/MM/YYYY.
const VNDateLayout = "02/01/2006"

const (
	day   = 24 * time.Hour
	month = 30 * day
	year  = 365 * day
)

// Same thresholds as the dayjs "vi" locale. Counts are truncated, not rounded.
var vnMagnitudes = []humanize.RelTimeMagnitude{
	{D: 45 * time.Second, Format: "vài giây %s", DivBy: time.Second},
	{D: 90 * time.Second, Format: "một phút %s", DivBy: time.Minute},
	{D: 45 * time.Minute, Format: "%d phút %s", DivBy: time.Minute},
	{D: 90 * time.Minute, Format: "một giờ %s", DivBy: time.Hour},
	{D: 22 * time.Hour, Format: "%d giờ %s", DivBy: time.Hour},
	{D: 36 * time.Hour, Format: "một ngày %s", DivBy: day},
	{D: 26 * day, Format: "%d ngày %s", DivBy: day},
	{D: 45 * day, Format: "một tháng %s", DivBy: month},
	{D: 320 * day, Format: "%d tháng %s", DivBy: month},
	{D: 548 * day, Format: "một năm %s", DivBy: year},
	{D: math.MaxInt64, Format: "%d năm %s", DivBy: year},
}

// Accepted by Parse, in order.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	VNDateLayout,
	"02/01/2006 15:04",
	time.RFC1123Z,
	time.RFC1123,
}

// TimeAgo describes t relative to now in Vietnamese, e.g. "Vài giây trước",
// "3 ngày trước" or "2 tháng tới". The first letter is capitalized.
func TimeAgo(t, now time.Time) string {
	return sanitizer.CapitalizeFirst(humanize.CustomRelTime(t, now, "trước", "tới", vnMagnitudes))
}

// ParseAndTimeAgo parses s with Parse and returns TimeAgo, or "" when s is not a date.
func ParseAndTimeAgo(s string, now time.Time) string {
	t, err := Parse(s)
	if err != nil {
		return ""
	}
	return TimeAgo(t, now)
}

// Parse reads ISO 8601 timestamps, plain dates and DD/MM/YYYY dates.
// Values without a zone are taken as UTC.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatVNDate formats t as DD/MM/YYYY.
func FormatVNDate(t time.Time) string {
	return t.Format(VNDateLayout)
}

// ParseVNDate parses a DD/MM/YYYY date in UTC.
func ParseVNDate(s string) (time.Time, error) {
	t, err := time.Parse(VNDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ToVNDate reformats any date Parse accepts as DD/MM/YYYY, or returns "".
func ToVNDate(s string) string {
	t, err := Parse(s)
	if err != nil {
		return ""
	}
	return FormatVNDate(t)
}
