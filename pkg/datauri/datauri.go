package datauri

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

// DefaultFileName is the base name given to decoded files.
const DefaultFileName = "file"

var (
	// Lenient on the MIME type, strict on the payload alphabet.
	embeddedPattern = regexp.MustCompile(`data:[^;]*?;base64,[A-Za-z0-9+/=]+`)
	prefixPattern   = regexp.MustCompile(`^data:([^;]*?);base64,`)
)

// File is an in-memory file decoded from (or destined for) a data URI.
type File struct {
	Name      string
	MIMEType  string
	Extension string // without the leading dot, may be empty
	Data      []byte
}

// Size returns the payload length in bytes.
func (f *File) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}

// BaseName returns the file name without its extension.
func (f *File) BaseName() string {
	if f == nil {
		return ""
	}
	return TrimExtension(f.Name)
}

// TrimExtension strips the last ".ext" suffix from name.
func TrimExtension(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 && !strings.Contains(name[i:], "/") {
		return name[:i]
	}
	return name
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	fileName string
}

// WithFileName overrides the base name of the decoded file. Empty names are ignored.
func WithFileName(name string) DecodeOption {
	return func(o *decodeOptions) {
		if name != "" {
			o.fileName = name
		}
	}
}

// Decode parses a base64 data URI into a File.
// The file is named "<name>.<ext>" where ext is looked up from the MIME type and may be empty.
func Decode(uri string, opts ...DecodeOption) (*File, error) {
	o := &decodeOptions{fileName: DefaultFileName}
	for _, opt := range opts {
		opt(o)
	}

	mimeType, data, err := parse(strings.TrimSpace(uri))
	if err != nil {
		return nil, err
	}

	ext := ExtensionFor(mimeType)
	return &File{
		Name:      o.fileName + "." + ext,
		MIMEType:  mimeType,
		Extension: ext,
		Data:      data,
	}, nil
}

// parse tries RFC 2397 first and falls back to the lenient prefix match for
// URIs the strict parser rejects (unpadded payloads, unusual media types).
func parse(uri string) (string, []byte, error) {
	if du, err := dataurl.DecodeString(uri); err == nil && du.Encoding == dataurl.EncodingBase64 {
		return du.MediaType.ContentType(), du.Data, nil
	}

	m := prefixPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", nil, ErrMalformedDataURI
	}

	payload := uri[len(m[0]):]
	if i := strings.IndexByte(payload, ','); i >= 0 {
		payload = payload[:i]
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return m[1], data, nil
}

// decodeBase64 tries standard then raw (no-padding) base64.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	return raw, err
}

// Encode wraps data into a data:<mime>;base64,<payload> string.
func Encode(data []byte, mimeType string) string {
	if isMediaType(mimeType) {
		return dataurl.New(data, mimeType).String()
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// EncodeFile encodes f using its own MIME type.
func EncodeFile(f *File) (string, error) {
	if f == nil {
		return "", ErrNilFile
	}
	return Encode(f.Data, f.MIMEType), nil
}

// dataurl.New panics on anything but a bare type/subtype pair.
func isMediaType(s string) bool {
	typ, sub, ok := strings.Cut(s, "/")
	if !ok || typ == "" || sub == "" {
		return false
	}
	return !strings.ContainsAny(s, ";, \t") && !strings.Contains(sub, "/")
}

// Extract returns every distinct data URI embedded in content, in first-seen order.
// The payload is not validated.
func Extract(content string) []string {
	if content == "" {
		return nil
	}

	matches := embeddedPattern.FindAllString(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	result := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		result = append(result, m)
	}
	return result
}

// DecodeAll decodes every URI, skipping the ones that fail.
func DecodeAll(uris []string) []*File {
	files := make([]*File, 0, len(uris))
	for _, uri := range uris {
		if f, err := Decode(uri); err == nil {
			files = append(files, f)
		}
	}
	return files
}
