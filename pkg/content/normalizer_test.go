package content_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contentkit/pkg/content"
	"github.com/dmitrymomot/contentkit/pkg/datauri"
	"github.com/dmitrymomot/contentkit/pkg/imageconv"
)

// stubConverter maps input payloads to output payloads. Unknown payloads fail.
type stubConverter struct {
	mu    sync.Mutex
	out   map[string][]byte
	calls map[string]int
}

func newStub(pairs map[string][]byte) *stubConverter {
	return &stubConverter{out: pairs, calls: map[string]int{}}
}

func (s *stubConverter) Convert(_ context.Context, in *datauri.File, target imageconv.Format) (*datauri.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[string(in.Data)]++
	data, ok := s.out[string(in.Data)]
	if !ok {
		return nil, imageconv.ErrDecode
	}
	return &datauri.File{Name: "file." + target.Extension, MIMEType: target.MIMEType, Extension: target.Extension, Data: data}, nil
}

func uri(mime string, data string) string {
	return datauri.Encode([]byte(data), mime)
}

func TestNormalizer_ReplaceBase64Images(t *testing.T) {
	t.Parallel()

	pngRef := uri("image/png", "png-bytes")
	gifRef := uri("image/gif", "gif-bytes")
	webpOut := uri("image/webp", "webp-from-png")
	webpGif := uri("image/webp", "webp-from-gif")

	t.Run("every occurrence of a duplicate is replaced once converted", func(t *testing.T) {
		t.Parallel()
		stub := newStub(map[string][]byte{"png-bytes": []byte("webp-from-png")})
		n := content.NewNormalizer(stub)

		in := "<img src='" + pngRef + "'><p>x</p><img src=\"" + pngRef + "\">" + pngRef
		out, report := n.ReplaceBase64Images(context.Background(), in)

		assert.Equal(t, 3, strings.Count(out, webpOut))
		assert.NotContains(t, out, pngRef)
		assert.Equal(t, 1, stub.calls["png-bytes"])
		require.Len(t, report.Results, 1)
		assert.Equal(t, 1, report.Converted())
		assert.NoError(t, report.Err())
	})

	t.Run("content without references is unchanged", func(t *testing.T) {
		t.Parallel()
		stub := newStub(nil)
		n := content.NewNormalizer(stub)

		for _, in := range []string{"", "<p>plain</p>", "data:image/png,notbase64"} {
			out, report := n.ReplaceBase64Images(context.Background(), in)
			assert.Equal(t, in, out)
			assert.Empty(t, report.Results)
		}
		assert.Empty(t, stub.calls)
	})

	t.Run("failure substitutes null by default", func(t *testing.T) {
		t.Parallel()
		n := content.NewNormalizer(newStub(nil))

		out, report := n.ReplaceBase64Images(context.Background(), "<img src='"+pngRef+"'>")
		assert.Equal(t, "<img src='null'>", out)
		assert.Equal(t, 1, report.Failed())
		assert.ErrorIs(t, report.Err(), imageconv.ErrDecode)
		assert.ErrorIs(t, report.Results[0].Err, imageconv.ErrDecode)
	})

	t.Run("failure keeps the original reference", func(t *testing.T) {
		t.Parallel()
		n := content.NewNormalizer(newStub(nil), content.WithFailurePolicy(content.FailureKeepOriginal))

		in := "<img src='" + pngRef + "'>"
		out, report := n.ReplaceBase64Images(context.Background(), in)
		assert.Equal(t, in, out)
		assert.Equal(t, pngRef, report.Results[0].Replacement)
	})

	t.Run("one failure does not affect the others", func(t *testing.T) {
		t.Parallel()
		stub := newStub(map[string][]byte{"gif-bytes": []byte("webp-from-gif")})
		n := content.NewNormalizer(stub)

		in := pngRef + " " + gifRef + " " + pngRef
		out, report := n.ReplaceBase64Images(context.Background(), in)
		assert.Equal(t, "null "+webpGif+" null", out)
		assert.Equal(t, 1, report.Converted())
		assert.Equal(t, 1, report.Failed())
		assert.Equal(t, pngRef, report.Results[0].Ref)
		assert.Equal(t, gifRef, report.Results[1].Ref)
	})

	t.Run("target format", func(t *testing.T) {
		t.Parallel()
		stub := newStub(map[string][]byte{"png-bytes": []byte("jpeg")})
		n := content.NewNormalizer(stub, content.WithTarget(imageconv.JPEG))

		out, _ := n.ReplaceBase64Images(context.Background(), pngRef)
		assert.Equal(t, uri("image/jpeg", "jpeg"), out)
	})

	t.Run("non-image references fail as unsupported", func(t *testing.T) {
		t.Parallel()
		n := content.NewNormalizer(newStub(nil))

		out, report := n.ReplaceBase64Images(context.Background(), uri("text/plain", "hello"))
		assert.Equal(t, content.NullReplacement, out)
		assert.True(t, errors.Is(report.Err(), imageconv.ErrUnsupportedType))
	})

	t.Run("prefix references do not clobber longer ones", func(t *testing.T) {
		t.Parallel()
		short := "data:image/png;base64,AAAA"
		long := "data:image/png;base64,AAAABBBB"
		stub := newStub(map[string][]byte{
			"\x00\x00\x00":             []byte("S"),
			"\x00\x00\x00\x04\x10\x41": []byte("L"),
		})
		n := content.NewNormalizer(stub)

		out, report := n.ReplaceBase64Images(context.Background(), long+" "+short)
		require.Len(t, report.Results, 2)
		assert.Equal(t, uri("image/webp", "L")+" "+uri("image/webp", "S"), out)
	})

	t.Run("canceled context fails every reference", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		stub := newStub(map[string][]byte{"png-bytes": []byte("x")})
		n := content.NewNormalizer(stub)

		out, report := n.ReplaceBase64Images(ctx, pngRef)
		assert.Equal(t, "null", out)
		assert.ErrorIs(t, report.Err(), context.Canceled)
	})
}

func TestNormalizer_NativeBackend(t *testing.T) {
	t.Parallel()

	// 1×1 transparent PNG.
	const pixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

	n := content.NewNormalizer(imageconv.NewNativeConverter())
	out, report := n.ReplaceBase64Images(context.Background(), "<img src='"+pixel+"'>")
	require.NoError(t, report.Err())
	assert.True(t, strings.HasPrefix(out, "<img src='data:image/webp;base64,"))
	assert.True(t, strings.HasSuffix(out, "'>"))

	// Already normalized content stays WebP.
	again, report := n.ReplaceBase64Images(context.Background(), out)
	require.NoError(t, report.Err())
	assert.True(t, strings.HasPrefix(again, "<img src='data:image/webp;base64,"))
}

func TestNewNormalizer_NilConverter(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, content.ErrNilConverter, func() {
		content.NewNormalizer(nil)
	})
}
