package cover

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/simonhull/audiocatalog/internal/types"
)

// Placeholder is the cover used for albums without an embedded picture.
func Placeholder() types.Cover {
	return types.Cover{Placeholder: true}
}

// Resolve converts a picture into a cover reference. Dimensions are read
// from the image header only; undecodable data keeps its bytes and MIME
// with zero dimensions. A nil or empty picture yields the placeholder.
func Resolve(pic *types.Picture) types.Cover {
	if pic == nil || len(pic.Data) == 0 {
		return Placeholder()
	}

	c := types.Cover{
		MIME: pic.MIME,
		Data: pic.Data,
		Size: len(pic.Data),
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(pic.Data))
	if err != nil {
		return c
	}
	c.Width, c.Height = cfg.Width, cfg.Height
	if c.MIME == "" {
		c.MIME = "image/" + format
	}
	return c
}
