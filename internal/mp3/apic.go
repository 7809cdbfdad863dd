package mp3

import (
	"bytes"
	"errors"

	"github.com/simonhull/audiocatalog/internal/binary"
	"github.com/simonhull/audiocatalog/internal/cover"
	"github.com/simonhull/audiocatalog/internal/types"
)

var errAPICNoImageData = errors.New("APIC frame has no image data")

// parseAPIC parses an attached picture frame:
//
//	[1 byte]              Text encoding
//	[null-terminated]     MIME type (Latin-1)
//	[1 byte]              Picture type (ignored)
//	[null-terminated]     Description (encoding-dependent terminator)
//	[remaining]           Picture data
func parseAPIC(data []byte) (*types.Picture, error) {
	c := binary.NewCursor(data)

	enc, err := binary.Read[uint8](c, binary.BigEndian, "APIC encoding")
	if err != nil {
		return nil, err
	}
	mime, err := c.TakeUntilNull(1, "APIC MIME type")
	if err != nil {
		return nil, err
	}
	if err := c.Skip(1, "APIC picture type"); err != nil {
		return nil, err
	}
	if _, err := c.TakeUntilNull(terminatorSize(enc), "APIC description"); err != nil {
		return nil, err
	}

	img := c.Rest()
	if len(img) == 0 {
		return nil, errAPICNoImageData
	}

	declared, _ := decodeText(mime, encLatin1)
	return &types.Picture{
		MIME: cover.NormalizeMIME(declared, img),
		Data: bytes.Clone(img),
	}, nil
}
