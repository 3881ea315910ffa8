package dirmeta

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format is the detected content format of a file.
type Format struct {
	MIME      string `json:"mime"`
	Extension string `json:"extension,omitempty"`
}

// UnknownFormat is used when detection was disabled or failed.
var UnknownFormat = Format{MIME: "application/octet-stream"}

// IsUnknown reports whether f carries no detected format.
func (f Format) IsUnknown() bool {
	return f.MIME == "" || f.MIME == UnknownFormat.MIME
}

// Is reports whether f is or inherits from the given MIME type, e.g. "text/plain".
func (f Format) Is(mime string) bool {
	return mimetype.EqualsAny(f.MIME, mime) || strings.HasPrefix(f.MIME, mime)
}

func (f Format) String() string {
	if f.MIME == "" {
		return UnknownFormat.MIME
	}
	return f.MIME
}

// DetectFormat sniffs the content of the file at path. It never fails: any
// error yields UnknownFormat.
func DetectFormat(path string) Format {
	m, err := mimetype.DetectFile(path)
	if err != nil || m == nil {
		return UnknownFormat
	}
	// Drop parameters such as "; charset=utf-8".
	mime, _, _ := strings.Cut(m.String(), ";")
	return Format{
		MIME:      strings.TrimSpace(mime),
		Extension: m.Extension(),
	}
}
