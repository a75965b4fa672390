package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contentkit/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		opts     []slug.Option
		expected string
	}{
		{name: "simple text", input: "Hello World", expected: "/hello-world"},
		{name: "punctuation is dropped", input: "Hello, World!", expected: "/hello-world"},
		{name: "numbers", input: "Product 123", expected: "/product-123"},
		{name: "multiple spaces", input: "Too    Many     Spaces", expected: "/too-many-spaces"},
		{name: "leading and trailing spaces", input: "  Trim Me  ", expected: "/trim-me"},
		{name: "special characters", input: "Price: $99.99", expected: "/price-9999"},
		{name: "hyphen runs collapse", input: "a -- b---c", expected: "/a-b-c"},
		{name: "leading and trailing hyphens", input: "-abc-", expected: "/abc"},
		{name: "empty string", input: "", expected: "/"},
		{name: "only special characters", input: "!@#$%^&*()", expected: "/"},
		{name: "vietnamese", input: "Tiếng Việt có dấu", expected: "/tieng-viet-co-dau"},
		{name: "vietnamese d with stroke", input: "Đường đến Đà Lạt", expected: "/duong-den-da-lat"},
		{name: "european diacritics", input: "Café résumé naïve", expected: "/cafe-resume-naive"},
		{name: "letters without decomposition", input: "Łódź Søren Straße", expected: "/lodz-soren-strase"},
		{name: "tabs and newlines", input: "one\ttwo\nthree", expected: "/one-two-three"},
		{name: "empty prefix", input: "Hello World", opts: []slug.Option{slug.WithPrefix("")}, expected: "hello-world"},
		{name: "custom prefix", input: "Bài viết mới", opts: []slug.Option{slug.WithPrefix("/posts/")}, expected: "/posts/bai-viet-moi"},
		{name: "keep case", input: "Hello World", opts: []slug.Option{slug.Lowercase(false)}, expected: "/Hello-World"},
		{name: "custom separator", input: "Hello World", opts: []slug.Option{slug.Separator("_")}, expected: "/hello_world"},
		{name: "empty separator", input: "Hello World", opts: []slug.Option{slug.Separator("")}, expected: "/helloworld"},
		{
			name:     "max length stops before a separator",
			input:    "This is a very long title that should be truncated",
			opts:     []slug.Option{slug.MaxLength(20)},
			expected: "/this-is-a-very-long",
		},
		{name: "max length cuts a word", input: "Hello World", opts: []slug.Option{slug.MaxLength(7)}, expected: "/hello-w"},
		{name: "strip chars", input: "Hello (World) [Test]", opts: []slug.Option{slug.StripChars("()[]")}, expected: "/hello-world-test"},
		{
			name:  "custom replace",
			input: "Rock & Roll @ Home",
			opts: []slug.Option{slug.CustomReplace(map[string]string{
				"&": "and",
				"@": "at",
			})},
			expected: "/rock-and-roll-at-home",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, slug.Make(tt.input, tt.opts...))
		})
	}
}

func TestMakeWithSuffix(t *testing.T) {
	t.Parallel()

	t.Run("suffix is appended after a separator", func(t *testing.T) {
		t.Parallel()
		result := slug.Make("Hello World", slug.WithSuffix(6))
		require.True(t, strings.HasPrefix(result, "/hello-world-"), result)
		suffix := strings.TrimPrefix(result, "/hello-world-")
		assert.Len(t, suffix, 6)
		for _, r := range suffix {
			assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'), "unexpected rune %q", r)
		}
	})

	t.Run("suffix only for empty body", func(t *testing.T) {
		t.Parallel()
		result := slug.Make("!!!", slug.WithSuffix(5))
		assert.Len(t, result, 6)
		assert.True(t, strings.HasPrefix(result, "/"))
	})

	t.Run("body shrinks to fit max length", func(t *testing.T) {
		t.Parallel()
		result := slug.Make("Hello Wonderful World", slug.WithSuffix(4), slug.MaxLength(12), slug.WithPrefix(""))
		assert.Len(t, []rune(result), 12)
		assert.True(t, strings.HasPrefix(result, "hello-w-"), result)
	})

	t.Run("suffix longer than max length", func(t *testing.T) {
		t.Parallel()
		result := slug.Make("Hello", slug.WithSuffix(10), slug.MaxLength(5), slug.WithPrefix(""))
		assert.Len(t, result, 5)
	})

	t.Run("suffixes differ", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, slug.Make("Same Title", slug.WithSuffix(8)), slug.Make("Same Title", slug.WithSuffix(8)))
	})

	t.Run("zero length adds nothing", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "/hello", slug.Make("Hello", slug.WithSuffix(0)))
	})
}

func TestMakeIsURLSafe(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Ăn uống & Sức khỏe: 10 mẹo <hay>",
		"日本語 タイトル",
		"emoji 🚀 launch",
		"   ",
	}
	for _, in := range inputs {
		out := slug.Make(in, slug.WithPrefix(""))
		for _, r := range out {
			assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-', "%q in %q", r, out)
		}
		assert.False(t, strings.HasPrefix(out, "-"), out)
		assert.False(t, strings.HasSuffix(out, "-"), out)
	}
}
