package imageconv_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contentkit/pkg/imageconv"
	"github.com/dmitrymomot/contentkit/pkg/logger"
)

func TestSelectBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     imageconv.Config
		want    string
		wantErr error
	}{
		{"empty defaults to native", imageconv.Config{}, imageconv.BackendNative, nil},
		{"auto without browser", imageconv.Config{Backend: "auto"}, imageconv.BackendNative, nil},
		{"auto with browser", imageconv.Config{Backend: "auto", ChromeURL: "ws://127.0.0.1:9222"}, imageconv.BackendBrowser, nil},
		{"explicit native ignores browser url", imageconv.Config{Backend: "native", ChromeURL: "ws://x"}, imageconv.BackendNative, nil},
		{"explicit browser", imageconv.Config{Backend: " Browser "}, imageconv.BackendBrowser, nil},
		{"unknown", imageconv.Config{Backend: "gpu"}, "", imageconv.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := imageconv.SelectBackend(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("native with decorators", func(t *testing.T) {
		t.Parallel()
		reg := prometheus.NewRegistry()
		svc, err := imageconv.New(context.Background(),
			imageconv.Config{Backend: imageconv.BackendNative, Quality: 90, CacheSize: 4},
			imageconv.WithLogger(logger.Discard()),
			imageconv.WithMetrics(reg),
		)
		require.NoError(t, err)
		t.Cleanup(func() { _ = svc.Close() })

		assert.Equal(t, imageconv.BackendNative, svc.Name())

		in := pngFile(t, "hero", 6, 3)
		out, err := svc.Convert(context.Background(), in, imageconv.WebP)
		require.NoError(t, err)
		assert.Equal(t, "hero.webp", out.Name)

		size, err := svc.Dimensions(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, imageconv.Size{Width: 6, Height: 3}, size)

		families, err := reg.Gather()
		require.NoError(t, err)
		assert.NotEmpty(t, families)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Parallel()
		_, err := imageconv.New(context.Background(), imageconv.Config{Backend: "gpu"})
		assert.ErrorIs(t, err, imageconv.ErrInvalidConfig)
	})

	t.Run("negative cache size is ignored", func(t *testing.T) {
		t.Parallel()
		svc, err := imageconv.New(context.Background(), imageconv.Config{CacheSize: -1})
		require.NoError(t, err)
		assert.Equal(t, imageconv.BackendNative, svc.Name())
	})
}
