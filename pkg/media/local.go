package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps media on the local filesystem under baseDir and serves it
// from baseURL. Paths are confined to baseDir.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// LocalConfig configures LocalStorage.
type LocalConfig struct {
	Dir     string `env:"MEDIA_LOCAL_DIR" envDefault:"./uploads"`
	BaseURL string `env:"MEDIA_LOCAL_BASE_URL" envDefault:"/uploads/"`
}

// NewLocalStorage creates baseDir if needed.
func NewLocalStorage(cfg LocalConfig) (*LocalStorage, error) {
	if cfg.Dir == "" {
		return nil, ErrInvalidConfig
	}

	absDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	baseURL := cfg.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &LocalStorage{baseDir: absDir, baseURL: baseURL}, nil
}

// Upload writes data atomically: a temp file in the target directory is renamed into place.
func (s *LocalStorage) Upload(ctx context.Context, data []byte, folder, name string) (*Asset, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mimeType := detectMIME(data)
	key, ext := objectKey(folder, name, mimeType, data)

	absPath, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := os.Rename(tmp.Name(), absPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return &Asset{
		Key:       key,
		URL:       s.URL(key),
		MIMEType:  mimeType,
		Extension: ext,
		Size:      int64(len(data)),
	}, nil
}

// Remove deletes the file behind url. Missing files are not an error.
func (s *LocalStorage) Remove(ctx context.Context, url string) error {
	key, ok := s.KeyFromURL(url)
	if !ok {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	absPath, err := s.resolvePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrFailedToDelete, err)
	}
	return nil
}

// URL returns the public URL of key.
func (s *LocalStorage) URL(key string) string {
	return s.baseURL + strings.TrimPrefix(filepath.ToSlash(filepath.Clean(key)), "/")
}

// KeyFromURL strips the base URL and any query string.
func (s *LocalStorage) KeyFromURL(url string) (string, bool) {
	return keyFromURL(s.baseURL, url)
}

// resolvePath maps key inside baseDir, rejecting anything that escapes it.
func (s *LocalStorage) resolvePath(key string) (string, error) {
	absPath := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	return absPath, nil
}
