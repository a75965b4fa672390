package imageconv

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyScriptError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  string
		want error
	}{
		{"exception \"Uncaught (in promise) Error: imageconv:decode\"", ErrDecode},
		{"exception \"Uncaught (in promise) Error: imageconv:encode\"", ErrEncode},
		{"exception \"Uncaught (in promise) Error: imageconv:type\"", ErrUnsupportedType},
		{"exception \"Uncaught (in promise) Error: imageconv:context\"", ErrBackendUnavailable},
		{"websocket: close 1006", ErrBackendUnavailable},
	}
	for _, tt := range tests {
		err := classifyScriptError(errors.New(tt.msg))
		assert.ErrorIs(t, err, tt.want, tt.msg)
	}
}

func TestScriptsMarkFetchFailuresAsDecode(t *testing.T) {
	t.Parallel()

	for _, s := range []string{convertScript, dimensionsScript} {
		assert.Contains(t, s, "catch {\n\t\tthrow new Error(\""+markerDecode+"\");")
	}
}

func TestBrowserConverter_UnfetchableSource(t *testing.T) {
	url := os.Getenv("IMAGECONV_CHROME_URL")
	if url == "" {
		t.Skip("IMAGECONV_CHROME_URL is not set")
	}

	c, err := NewBrowserConverter(context.Background(), WithRemoteURL(url), WithBrowserTimeout(10*time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	expr, err := script(convertScript, "data:image/png;base64,%%%", WebP.MIMEType, c.quality)
	require.NoError(t, err)

	var uri string
	err = c.eval(context.Background(), expr, &uri)
	assert.ErrorIs(t, err, ErrDecode)
	assert.True(t, IsBackendFailure(err))
	assert.False(t, errors.Is(err, ErrBackendUnavailable))
}
