package datauri

import "strings"

// ImageType pairs an image MIME type with its canonical file extension.
type ImageType struct {
	MIMEType  string
	Extension string
}

// Known image types. The first entry for a MIME type wins on reverse lookup.
var (
	TypeJPEG = ImageType{MIMEType: "image/jpeg", Extension: "jpg"}
	TypePNG  = ImageType{MIMEType: "image/png", Extension: "png"}
	TypeGIF  = ImageType{MIMEType: "image/gif", Extension: "gif"}
	TypeWebP = ImageType{MIMEType: "image/webp", Extension: "webp"}
	TypeSVG  = ImageType{MIMEType: "image/svg+xml", Extension: "svg"}
	TypeBMP  = ImageType{MIMEType: "image/bmp", Extension: "bmp"}
	TypeTIFF = ImageType{MIMEType: "image/tiff", Extension: "tiff"}
	TypeICO  = ImageType{MIMEType: "image/x-icon", Extension: "ico"}
	TypeAVIF = ImageType{MIMEType: "image/avif", Extension: "avif"}
)

var imageTypes = []ImageType{
	TypeJPEG,
	{MIMEType: "image/jpg", Extension: "jpg"},
	TypePNG,
	TypeGIF,
	TypeWebP,
	TypeSVG,
	TypeBMP,
	TypeTIFF,
	TypeICO,
	{MIMEType: "image/vnd.microsoft.icon", Extension: "ico"},
	TypeAVIF,
}

// ImageTypes returns a copy of the known image type table.
func ImageTypes() []ImageType {
	out := make([]ImageType, len(imageTypes))
	copy(out, imageTypes)
	return out
}

// ExtensionFor returns the extension registered for mimeType, or "" when the type is unknown.
func ExtensionFor(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for _, t := range imageTypes {
		if t.MIMEType == mimeType {
			return t.Extension
		}
	}
	return ""
}

// IsImageType reports whether mimeType is one of the known image types.
func IsImageType(mimeType string) bool {
	return ExtensionFor(mimeType) != ""
}
