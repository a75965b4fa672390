package imageconv

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dmitrymomot/contentkit/pkg/datauri"
)

type cached struct {
	next  Converter
	cache *lru.Cache[string, []byte]
}

// Cached keeps up to size converted payloads keyed by input content and target format.
// Failures are not cached. Payloads are copied in and out, so callers own what they get.
func Cached(next Converter, size int) (Converter, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("%w: cache size %d: %v", ErrInvalidConfig, size, err)
	}
	return &cached{next: next, cache: cache}, nil
}

func (c *cached) Convert(ctx context.Context, in *datauri.File, target Format) (*datauri.File, error) {
	if in == nil || len(in.Data) == 0 {
		return c.next.Convert(ctx, in, target)
	}

	key := cacheKey(in.Data, target)
	if data, ok := c.cache.Get(key); ok {
		return output(in, target, bytes.Clone(data)), nil
	}

	out, err := c.next.Convert(ctx, in, target)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, bytes.Clone(out.Data))
	return out, nil
}

func cacheKey(data []byte, target Format) string {
	sum := sha256.Sum256(data)
	return target.MIMEType + ":" + hex.EncodeToString(sum[:])
}
