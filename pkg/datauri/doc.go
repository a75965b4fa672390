// Package datauri converts between base64 data URIs and in-memory files.
//
// A data URI has the form data:<mime-type>;base64,<payload>. The package decodes such
// strings into a File (bytes, MIME type and a suggested file name), encodes bytes back
// into a data URI, and finds every embedded data URI inside a larger text blob such as
// an HTML article body.
//
// # Usage
//
//	import "github.com/dmitrymomot/contentkit/pkg/datauri"
//
//	for _, uri := range datauri.Extract(article.Body) {
//		f, err := datauri.Decode(uri)
//		if err != nil {
//			continue // not a well-formed data URI
//		}
//		fmt.Println(f.Name, f.MIMEType, f.Size())
//	}
//
//	uri := datauri.Encode(pngBytes, "image/png")
//
// # Extraction
//
// Extract is deliberately lenient: anything matching data:<mime>;base64,<payload> is
// returned as-is, without validating the payload. Duplicates are collapsed and the
// first-seen order is kept. One result can be a prefix of another, so substitute the
// longer ones first.
//
// # Error Handling
//
// Decode returns ErrMalformedDataURI when the data:<mime>;base64, prefix is missing and
// ErrInvalidPayload when the payload is not base64. Both padded and unpadded payloads
// are accepted.
package datauri
