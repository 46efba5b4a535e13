// Package texture implements the pixel formats used by texture tags, and the
// linear and block-swizzled orders in which texels are stored.
//
// A texture tag declares a Format and dimensions, followed by raw texel data.
// Decode converts such data into an Image, which holds one byte per channel
// in the channel layout of the format. Encode performs the reverse. Formats
// with fewer than 8 bits per channel are lossy; after one round trip through
// Encode and Decode, their data is stable.
package texture

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat indicates a pixel format code not known by the
	// codec.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
	// ErrShortData indicates that texel data ended before every pixel of the
	// image was read.
	ErrShortData = errors.New("texel data is shorter than the image")
	// ErrLayout indicates an image whose channel layout cannot be encoded with
	// a given format.
	ErrLayout = errors.New("image layout does not match pixel format")
)

// FormatError wraps an error produced while handling a certain format.
type FormatError struct {
	Format Format

	Cause error
}

func (err FormatError) Error() string {
	return fmt.Sprintf("pixel format %s: %s", err.Format, err.Cause)
}

func (err FormatError) Unwrap() error {
	return err.Cause
}

// Layout is the set of channels held by each pixel of an Image.
type Layout uint8

const (
	RGBA Layout = iota // Red, green, blue, alpha.
	RGB                // Red, green, blue.
	LA                 // Luminance, alpha.
	L                  // Luminance.
)

// Channels returns the number of bytes used by one pixel of the layout.
func (l Layout) Channels() int {
	switch l {
	case RGBA:
		return 4
	case RGB:
		return 3
	case LA:
		return 2
	case L:
		return 1
	}
	return 0
}

func (l Layout) String() string {
	switch l {
	case RGBA:
		return "RGBA"
	case RGB:
		return "RGB"
	case LA:
		return "LA"
	case L:
		return "L"
	}
	return fmt.Sprintf("Layout(%d)", uint8(l))
}

// Format is the code identifying how texels are packed.
type Format uint8

const (
	RGBA8888  Format = 0  // 8 bits per channel.
	RGBA8888b Format = 1  // Same packing as RGBA8888.
	RGBA4444  Format = 2  // 4 bits per channel.
	RGBA5551  Format = 3  // 5 bits per color channel, 1 alpha bit.
	RGB565    Format = 4  // 5, 6, and 5 bits per color channel.
	LA88      Format = 6  // Luminance in the low byte, alpha in the high byte.
	L8        Format = 10 // 8 bits of luminance.
)

// Valid returns whether the format is known.
func (f Format) Valid() bool {
	switch f {
	case RGBA8888, RGBA8888b, RGBA4444, RGBA5551, RGB565, LA88, L8:
		return true
	}
	return false
}

// Layout returns the channel layout of an Image decoded from the format.
func (f Format) Layout() Layout {
	switch f {
	case RGB565:
		return RGB
	case LA88:
		return LA
	case L8:
		return L
	}
	return RGBA
}

// Size returns the number of bytes occupied by one texel. Returns 0 if the
// format is not valid.
func (f Format) Size() int {
	switch f {
	case RGBA8888, RGBA8888b:
		return 4
	case RGBA4444, RGBA5551, RGB565, LA88:
		return 2
	case L8:
		return 1
	}
	return 0
}

// Lossless returns whether every channel of the format holds 8 bits.
func (f Format) Lossless() bool {
	switch f {
	case RGBA8888, RGBA8888b, LA88, L8:
		return true
	}
	return false
}

func (f Format) String() string {
	switch f {
	case RGBA8888:
		return "RGBA8888"
	case RGBA8888b:
		return "RGBA8888b"
	case RGBA4444:
		return "RGBA4444"
	case RGBA5551:
		return "RGBA5551"
	case RGB565:
		return "RGB565"
	case LA88:
		return "LA88"
	case L8:
		return "L8"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// DefaultFormat returns the format used to store an image of the given
// layout. Only RGB is stored lossily, since no format holds 8-bit RGB without
// alpha.
func DefaultFormat(l Layout) Format {
	switch l {
	case RGB:
		return RGB565
	case LA:
		return LA88
	case L:
		return L8
	}
	return RGBA8888
}
