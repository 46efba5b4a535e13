package scfile

import (
	"encoding/binary"
	"image"

	"github.com/Fred-31/SupercellSWF-OLD/texture"
	"golang.org/x/crypto/blake2b"
)

// Texture is an image referred to by the bitmaps of shapes.
type Texture struct {
	// Variant is the tag code of the texture, or 0 for the default.
	Variant uint8

	// Format is the pixel format in which the image is stored.
	Format texture.Format

	// Width and Height are the dimensions of the texture. When Image is not
	// nil, its bounds take precedence.
	Width, Height int

	// Image holds the decoded pixels. It is nil when the pixel data of a
	// decoded document was stored in an external texture file that was not
	// loaded.
	Image *texture.Image
}

// NewTexture returns a texture holding a copy of img. The pixel format is
// selected from the channel layout of the image.
func NewTexture(img image.Image) *Texture {
	m := texture.FromImage(img)
	return &Texture{
		Format: texture.DefaultFormat(m.Layout),
		Width:  m.Rect.Dx(),
		Height: m.Rect.Dy(),
		Image:  m,
	}
}

// Size returns the dimensions of the texture.
func (t *Texture) Size() (width, height int) {
	if t.Image != nil {
		return t.Image.Rect.Dx(), t.Image.Rect.Dy()
	}
	return t.Width, t.Height
}

// Blocked returns whether the texels of the texture are stored in the
// block-swizzled order.
func (t *Texture) Blocked() bool {
	return t.Variant == 27 || t.Variant == 28
}

// Digest returns a fingerprint of the format, dimensions, and pixels of the
// texture.
func (t *Texture) Digest() [blake2b.Size256]byte {
	w, h := t.Size()
	var header [9]byte
	header[0] = byte(t.Format)
	binary.LittleEndian.PutUint32(header[1:], uint32(w))
	binary.LittleEndian.PutUint32(header[5:], uint32(h))

	hash, _ := blake2b.New256(nil)
	hash.Write(header[:])
	if t.Image != nil {
		for y := 0; y < h; y++ {
			i := t.Image.PixOffset(t.Image.Rect.Min.X, t.Image.Rect.Min.Y+y)
			hash.Write(t.Image.Pix[i : i+w*t.Image.Layout.Channels()])
		}
	}
	var sum [blake2b.Size256]byte
	copy(sum[:], hash.Sum(nil))
	return sum
}
