package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/dmitrymomot/contentkit/pkg/datauri"
	"github.com/dmitrymomot/contentkit/pkg/slug"
)

// Asset is an uploaded object.
type Asset struct {
	Key       string // storage key, e.g. "posts/cover-1a2b3c.webp"
	URL       string // public URL
	MIMEType  string
	Extension string
	Size      int64
}

// Storage hosts media files behind public URLs.
type Storage interface {
	// Upload stores data under folder. An empty name is derived from the content hash.
	Upload(ctx context.Context, data []byte, folder, name string) (*Asset, error)
	// Remove deletes the object a public URL points to. Empty URLs and URLs this
	// storage did not produce are ignored.
	Remove(ctx context.Context, url string) error
	// URL returns the public URL of key.
	URL(key string) string
	// KeyFromURL is the reverse of URL.
	KeyFromURL(url string) (string, bool)
}

// UploadDataURI decodes a data URI and uploads its payload.
func UploadDataURI(ctx context.Context, s Storage, uri, folder, name string) (*Asset, error) {
	f, err := datauri.Decode(uri)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = hashName(f.Data)
	}
	if f.Extension != "" {
		name = datauri.TrimExtension(name) + "." + f.Extension
	}
	return s.Upload(ctx, f.Data, folder, name)
}

// objectKey builds "<folder>/<name>.<ext>" from user input, keeping the name readable.
// Cleaning the folder as a rooted path removes any "..".
func objectKey(folder, name, mimeType string, data []byte) (key, ext string) {
	folder = strings.Trim(path.Clean("/"+folder), "/")

	ext = path.Ext(name)
	base := strings.TrimSuffix(path.Base(name), ext)
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = datauri.ExtensionFor(mimeType)
	}

	base = slug.Make(base, slug.WithPrefix(""), slug.MaxLength(80))
	if base == "" {
		base = hashName(data)
	}

	file := base
	if ext != "" {
		file += "." + ext
	}
	if folder == "" {
		return file, ext
	}
	return folder + "/" + file, ext
}

// detectMIME sniffs data and drops parameters such as charset.
func detectMIME(data []byte) string {
	mt := http.DetectContentType(data)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}

func hashName(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// publicIDPattern matches hosted-media URLs of the form ".../upload/v<version>/<id>.<ext>".
var publicIDPattern = regexp.MustCompile(`/upload/v\d+/(.*?)(?:\.\w+)?$`)

// PublicID extracts the versioned public ID from a hosted-media delivery URL:
// "https://res.example.com/demo/image/upload/v1712/posts/cover.webp" → "posts/cover".
func PublicID(url string) (string, bool) {
	m := publicIDPattern.FindStringSubmatch(url)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}
