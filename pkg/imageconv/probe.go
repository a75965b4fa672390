package imageconv

import (
	"context"
	"image"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxProbeBytes bounds how much of a response is read to find the image header.
const maxProbeBytes = 1 << 20

// HTTPProber checks image URLs over plain HTTP.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber returns a prober using client, or a client with a 30s timeout when nil.
func NewHTTPProber(client *http.Client) *HTTPProber {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPProber{client: client}
}

// IsValidURL reports whether url serves a loadable image. Any failure yields false.
func (p *HTTPProber) IsValidURL(ctx context.Context, url string) bool {
	if strings.TrimSpace(url) == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Accept", "image/*")

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxProbeBytes))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}

	// Vector images have no raster header to decode.
	if mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil && mt == "image/svg+xml" {
		return true
	}

	_, _, err = image.DecodeConfig(io.LimitReader(resp.Body, maxProbeBytes))
	return err == nil
}

// CacheBustURL prefixes relative urls with root and appends a millisecond timestamp
// query so browsers refetch the image.
func CacheBustURL(url, root string, now time.Time) string {
	if !strings.HasPrefix(url, "http") {
		url = root + "/" + url
	}
	return url + "?t=" + strconv.FormatInt(now.UnixMilli(), 10)
}
