package mp3

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/simonhull/audiocatalog/internal/binary"
)

// Text encodings selected by the first byte of a text frame.
const (
	encLatin1  byte = 0
	encUTF16   byte = 1 // with byte-order mark
	encUTF16BE byte = 2 // without byte-order mark
	encUTF8    byte = 3
)

var errEmptyFrame = errors.New("empty text frame")

// decodeTextFrame decodes a text frame payload: an encoding byte followed by
// the encoded string.
func decodeTextFrame(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errEmptyFrame
	}
	return decodeText(data[1:], data[0])
}

// decodeText decodes data in the given ID3 text encoding, stopping at the
// first null terminator, and trims surrounding whitespace.
func decodeText(data []byte, enc byte) (string, error) {
	var dec *encoding.Decoder
	switch enc {
	case encLatin1:
		dec = charmap.ISO8859_1.NewDecoder()
	case encUTF16:
		dec = unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case encUTF16BE:
		dec = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case encUTF8:
		// decoded below
	default:
		return "", fmt.Errorf("unsupported text encoding %d", enc)
	}

	width := terminatorSize(enc)
	if end := binary.NullIndex(data, width); end >= 0 {
		data = data[:end]
	}
	if width == 2 && len(data)%2 == 1 {
		data = data[:len(data)-1]
	}

	if dec == nil {
		return strings.TrimSpace(string(data)), nil
	}
	out, err := dec.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// terminatorSize returns the width of a null terminator for the encoding.
func terminatorSize(enc byte) int {
	if enc == encUTF16 || enc == encUTF16BE {
		return 2
	}
	return 1
}
