package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/contentkit/pkg/sanitizer"
)

func TestStripTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello world", sanitizer.StripTags(`<p class="x">Hello <b>world</b></p>`))
	assert.Equal(t, "a &amp; b", sanitizer.StripTags("<i>a &amp; b</i>"))
	assert.Equal(t, "no tags", sanitizer.StripTags("no tags"))
	assert.Equal(t, "", sanitizer.StripTags(""))
	assert.Equal(t, "1 < 2", sanitizer.StripTags("1 < 2"))
}

func TestCapitalizeFirst(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello world", sanitizer.CapitalizeFirst("hello world"))
	assert.Equal(t, "Ăn cơm", sanitizer.CapitalizeFirst("ăn cơm"))
	assert.Equal(t, "ABC", sanitizer.CapitalizeFirst("ABC"))
	assert.Equal(t, "1st", sanitizer.CapitalizeFirst("1st"))
	assert.Equal(t, "", sanitizer.CapitalizeFirst(""))
}

func TestRemoveTones(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Tiếng Việt":           "Tieng Viet",
		"Đường phố Hà Nội":     "Duong pho Ha Noi",
		"đồng hồ":              "dong ho",
		"Café résumé":          "Cafe resume",
		"already plain":        "already plain",
		"":                     "",
		"Ủy ban nhân dân tỉnh": "Uy ban nhan dan tinh",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizer.RemoveTones(in), in)
	}
}

func TestClassNames(t *testing.T) {
	t.Parallel()

	var nilPtr *int
	active := true

	assert.Equal(t, "btn btn-primary", sanitizer.ClassNames("btn", "", nil, false, "btn-primary"))
	assert.Equal(t, "a 1 true", sanitizer.ClassNames("a", 0, 1, 0.0, active, nilPtr))
	assert.Equal(t, "", sanitizer.ClassNames())
	assert.Equal(t, "", sanitizer.ClassNames("", nil, false))
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Tiế", sanitizer.MaxLength("Tiếng", 3))
	assert.Equal(t, "short", sanitizer.MaxLength("short", 10))
	assert.Equal(t, "", sanitizer.MaxLength("anything", 0))
}

func TestRemoveExtraWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", sanitizer.RemoveExtraWhitespace("  a \t b\n\nc  "))
	assert.Equal(t, "a b", sanitizer.SingleLine("a\r\nb"))
}
