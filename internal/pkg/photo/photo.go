// Package photo normalizes the two historically duplicated photo list fields
// of a tire request and validates base64 data-URL images.
package photo

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/slt-fleet/tireflow/internal/domain/model"
)

const dataURLPrefix = "data:image/"

// Consolidate merges two photo lists into one canonical ordered list: entries
// of the first list in order, followed by entries of the second list not
// already present. Input slices are not modified.
func Consolidate(primary, secondary []string) []string {
	merged := make([]string, 0, len(primary)+len(secondary))
	seen := make(map[string]struct{}, len(primary)+len(secondary))

	for _, p := range primary {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		merged = append(merged, p)
	}
	for _, p := range secondary {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		merged = append(merged, p)
	}

	return merged
}

// ConsolidateRequest writes the consolidated list back into both photo fields
// of the request. It mutates photo fields only; status and approval metadata
// are untouched.
func ConsolidateRequest(request *model.TireRequest) {
	if request == nil {
		return
	}
	merged := Consolidate(request.TirePhotoURLs, request.PhotoURLs)
	request.TirePhotoURLs = merged
	request.PhotoURLs = merged
}

// FilterValid splits the list into well-formed entries and malformed data-URL
// entries. Entries that are not data URLs at all (stored file paths or remote
// links) count as well-formed and pass through untouched.
func FilterValid(photos []string) (kept, dropped []string) {
	for _, p := range photos {
		if strings.HasPrefix(p, "data:") && !IsValidImage(p) {
			dropped = append(dropped, p)
			continue
		}
		kept = append(kept, p)
	}
	return kept, dropped
}

// IsValidImage reports whether the string is a well-formed base64 image data
// URL whose decoded payload carries a recognized image file signature.
// Malformed input of any kind yields false.
func IsValidImage(dataURL string) bool {
	if strings.TrimSpace(dataURL) == "" {
		return false
	}
	if !strings.HasPrefix(dataURL, dataURLPrefix) {
		return false
	}

	commaIndex := strings.IndexByte(dataURL, ',')
	if commaIndex == -1 || commaIndex == len(dataURL)-1 {
		return false
	}

	payload, err := base64.StdEncoding.DecodeString(dataURL[commaIndex+1:])
	if err != nil {
		return false
	}

	return HasImageSignature(payload)
}

// HasImageSignature checks the leading bytes against known image formats:
// JPEG, PNG, GIF and WebP.
func HasImageSignature(data []byte) bool {
	switch {
	case len(data) >= 3 && bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return true // JPEG
	case len(data) >= 4 && bytes.HasPrefix(data, []byte{0x89, 0x50, 0x4E, 0x47}):
		return true // PNG
	case len(data) >= 4 && bytes.HasPrefix(data, []byte{0x47, 0x49, 0x46, 0x38}):
		return true // GIF
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return true
	}
	return false
}
