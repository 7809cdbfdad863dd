// Package cover turns embedded pictures into resolved cover references.
package cover

import "strings"

const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEGIF  = "image/gif"
	MIMEBMP  = "image/bmp"
	MIMEWebP = "image/webp"
)

// SniffMIME detects an image MIME type from magic bytes. It returns "" for
// unrecognized data.
func SniffMIME(data []byte) string {
	if len(data) < 4 {
		return ""
	}

	switch {
	case data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return MIMEJPEG
	case data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G':
		return MIMEPNG
	case data[0] == 'G' && data[1] == 'I' && data[2] == 'F':
		return MIMEGIF
	case data[0] == 'B' && data[1] == 'M':
		return MIMEBMP
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return MIMEWebP
	}
	return ""
}

// NormalizeMIME cleans up a declared MIME type. Legacy markers such as "JPG"
// or "image/jpg" map to their proper names; a missing or non-MIME value is
// replaced by sniffing data, falling back to JPEG.
func NormalizeMIME(declared string, data []byte) string {
	m := strings.ToLower(strings.TrimSpace(declared))
	switch m {
	case "jpg", "jpeg", "image/jpg":
		return MIMEJPEG
	case "png":
		return MIMEPNG
	}
	if strings.Contains(m, "/") {
		return m
	}
	if sniffed := SniffMIME(data); sniffed != "" {
		return sniffed
	}
	return MIMEJPEG
}
