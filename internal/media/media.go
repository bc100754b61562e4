package media

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"

	mediaDatamodel "github.com/frahmantamala/sewa-portal/internal/core/datamodel/media"
)

type MediaAsset = mediaDatamodel.MediaAsset

const (
	KindMedia  = "media"
	KindReport = "report"

	DefaultGalleryLimit = 50
	MaxGalleryLimit     = 200

	// sniffLen is how much of a file http.DetectContentType looks at.
	sniffLen = 512

	maxFileNameLength = 100

	// MaxTitleLength caps the caption shown under a gallery item.
	MaxTitleLength = 200
)

// KindSpec describes what may be uploaded under one kind.
type KindSpec struct {
	Kind         string
	AllowedTypes []string
	MaxBytes     int64
}

var kinds = map[string]KindSpec{
	KindMedia: {
		Kind:         KindMedia,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "image/gif", "video/mp4"},
		MaxBytes:     10 << 20,
	},
	KindReport: {
		Kind:         KindReport,
		AllowedTypes: []string{"application/pdf"},
		MaxBytes:     20 << 20,
	},
}

// Kinds lists the upload kinds in a stable order.
func Kinds() []string {
	return []string{KindMedia, KindReport}
}

func LookupKind(kind string) (KindSpec, bool) {
	spec, ok := kinds[kind]
	return spec, ok
}

func (k KindSpec) Allows(contentType string) bool {
	for _, t := range k.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// SniffContentType returns the media type of data without parameters. The
// client-declared type is never consulted.
func SniffContentType(data []byte) string {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	detected := http.DetectContentType(data)
	mediaType, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return detected
	}
	return mediaType
}

// SanitizeFileName reduces name to a safe object-key suffix.
func SanitizeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}

	var sb strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(base) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '_':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}

	cleaned := strings.Trim(sb.String(), "-.")
	if len(cleaned) > maxFileNameLength {
		cleaned = cleaned[len(cleaned)-maxFileNameLength:]
	}
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

func ObjectKey(kind, id, fileName string) string {
	return fmt.Sprintf("%s/%s-%s", kind, id, SanitizeFileName(fileName))
}

// ClampLimit applies the gallery default and ceiling.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultGalleryLimit
	}
	if limit > MaxGalleryLimit {
		return MaxGalleryLimit
	}
	return limit
}
