package vorbis

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/simonhull/audiocatalog/internal/binary"
	"github.com/simonhull/audiocatalog/internal/cover"
	"github.com/simonhull/audiocatalog/internal/types"
)

// ParsePicture decodes a FLAC picture block (big-endian):
//   - 4 bytes: picture type (ignored)
//   - 4 bytes: MIME type length, then the MIME type
//   - 4 bytes: description length, then the description (skipped)
//   - 16 bytes: width, height, color depth, colors used (ignored)
//   - 4 bytes: image data length, then the image data
//
// The returned picture owns a copy of the image bytes. A missing MIME type
// is filled in by sniffing the image data.
func ParsePicture(data []byte) (*types.Picture, error) {
	c := binary.NewCursor(data)

	if err := c.Skip(4, "picture type"); err != nil {
		return nil, err
	}
	mimeLen, err := binary.Read[uint32](c, binary.BigEndian, "MIME length")
	if err != nil {
		return nil, err
	}
	mime, err := takeLen(c, mimeLen, "MIME type")
	if err != nil {
		return nil, err
	}
	descLen, err := binary.Read[uint32](c, binary.BigEndian, "description length")
	if err != nil {
		return nil, err
	}
	if _, err := takeLen(c, descLen, "description"); err != nil {
		return nil, err
	}
	if err := c.Skip(16, "picture dimensions"); err != nil {
		return nil, err
	}
	dataLen, err := binary.Read[uint32](c, binary.BigEndian, "picture data length")
	if err != nil {
		return nil, err
	}
	img, err := takeLen(c, dataLen, "picture data")
	if err != nil {
		return nil, err
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("picture block has no image data")
	}

	return &types.Picture{
		MIME: cover.NormalizeMIME(string(mime), img),
		Data: bytes.Clone(img),
	}, nil
}

// DecodeBlockPicture decodes a base64 METADATA_BLOCK_PICTURE comment value.
// Both padded and unpadded base64 are accepted.
func DecodeBlockPicture(value string) (*types.Picture, error) {
	value = strings.TrimSpace(value)
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(value, "="))
		if err != nil {
			return nil, fmt.Errorf("invalid base64 picture: %w", err)
		}
	}
	return ParsePicture(raw)
}

func takeLen(c *binary.Cursor, n uint32, what string) ([]byte, error) {
	if uint64(n) > uint64(c.Remaining()) {
		return nil, fmt.Errorf("%w: %s declares %d bytes, %d remaining",
			binary.ErrTruncated, what, n, c.Remaining())
	}
	return c.Take(int(n), what)
}
