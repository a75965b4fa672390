package datauri

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// ServeAttachment writes the payload of uri as a downloadable attachment.
// The file extension is taken from the MIME subtype, replacing any extension on fileName.
func ServeAttachment(w http.ResponseWriter, uri, fileName string) error {
	f, err := Decode(uri)
	if err != nil {
		return err
	}

	if fileName == "" {
		fileName = DefaultFileName
	}
	ext := f.MIMEType
	if _, sub, ok := strings.Cut(f.MIMEType, "/"); ok {
		ext = sub
	}
	name := TrimExtension(fileName) + "." + ext

	w.Header().Set("Content-Type", f.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(f.Data); err != nil {
		return fmt.Errorf("datauri: write attachment: %w", err)
	}
	return nil
}
