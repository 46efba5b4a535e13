package texture

import (
	"encoding/binary"
	"image"
)

// Order is the sequence in which texels of an image are stored.
type Order uint8

const (
	// Linear stores texels row by row, top to bottom, left to right.
	Linear Order = iota
	// Blocked stores texels in square blocks of BlockSize pixels.
	Blocked
)

// BlockSize is the width and height of a block in the Blocked order.
const BlockSize = 32

// Walk calls fn with the coordinates of each pixel of a width by height
// image, in the sequence specified by order. Each coordinate is visited
// exactly once.
//
// In the Blocked order, each row of full blocks is visited left to right,
// followed by the columns that remain to the right of the full blocks, at full
// block height. The rows that remain below the full block rows are visited
// next, for each full block column, followed by the remaining corner. Within
// each region, pixels are visited row by row.
func Walk(width, height int, order Order, fn func(x, y int)) {
	if width <= 0 || height <= 0 {
		return
	}
	if order != Blocked {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				fn(x, y)
			}
		}
		return
	}

	const n = BlockSize
	cols, rows := width/n, height/n
	restX, restY := width%n, height%n
	edgeX, edgeY := width-restX, height-restY

	for by := 0; by < rows; by++ {
		for bx := 0; bx < cols; bx++ {
			for y := 0; y < n; y++ {
				for x := 0; x < n; x++ {
					fn(bx*n+x, by*n+y)
				}
			}
		}
		for y := 0; y < n; y++ {
			for x := 0; x < restX; x++ {
				fn(edgeX+x, by*n+y)
			}
		}
	}
	for bx := 0; bx < cols; bx++ {
		for y := 0; y < restY; y++ {
			for x := 0; x < n; x++ {
				fn(bx*n+x, edgeY+y)
			}
		}
	}
	for y := 0; y < restY; y++ {
		for x := 0; x < restX; x++ {
			fn(edgeX+x, edgeY+y)
		}
	}
}

// DataSize returns the number of bytes of texel data occupied by a width by
// height image of the given format.
func DataSize(f Format, width, height int) int {
	return f.Size() * width * height
}

// Decode converts texel data of the given format and dimensions, stored in
// the given order, into an Image. Bytes following the last texel are ignored.
func Decode(f Format, width, height int, data []byte, order Order) (*Image, error) {
	if !f.Valid() {
		return nil, FormatError{Format: f, Cause: ErrUnsupportedFormat}
	}
	if len(data) < DataSize(f, width, height) {
		return nil, FormatError{Format: f, Cause: ErrShortData}
	}

	m := NewImage(f.Layout(), image.Rect(0, 0, width, height))
	size := f.Size()
	i := 0
	Walk(width, height, order, func(x, y int) {
		decodeTexel(f, m.Texel(x, y), data[i:i+size])
		i += size
	})
	return m, nil
}

// Encode converts m into texel data of the given format, stored in the given
// order. The layout of m must match the layout of the format.
func Encode(f Format, m *Image, order Order) ([]byte, error) {
	if !f.Valid() {
		return nil, FormatError{Format: f, Cause: ErrUnsupportedFormat}
	}
	if m.Layout != f.Layout() {
		return nil, FormatError{Format: f, Cause: ErrLayout}
	}

	width, height := m.Rect.Dx(), m.Rect.Dy()
	data := make([]byte, DataSize(f, width, height))
	size := f.Size()
	i := 0
	Walk(width, height, order, func(x, y int) {
		encodeTexel(f, data[i:i+size], m.Texel(m.Rect.Min.X+x, m.Rect.Min.Y+y))
		i += size
	})
	return data, nil
}

func decodeTexel(f Format, dst, src []byte) {
	switch f {
	case RGBA8888, RGBA8888b:
		copy(dst, src[:4])
	case RGBA4444:
		p := binary.LittleEndian.Uint16(src)
		dst[0] = uint8(p>>12&0xF) << 4
		dst[1] = uint8(p>>8&0xF) << 4
		dst[2] = uint8(p>>4&0xF) << 4
		dst[3] = uint8(p&0xF) << 4
	case RGBA5551:
		p := binary.LittleEndian.Uint16(src)
		dst[0] = uint8(p>>11&0x1F) << 3
		dst[1] = uint8(p>>6&0x1F) << 3
		dst[2] = uint8(p>>1&0x1F) << 3
		dst[3] = uint8(p&0x1) << 7
	case RGB565:
		p := binary.LittleEndian.Uint16(src)
		dst[0] = uint8(p>>11&0x1F) << 3
		dst[1] = uint8(p>>5&0x3F) << 2
		dst[2] = uint8(p&0x1F) << 3
	case LA88:
		dst[0] = src[0]
		dst[1] = src[1]
	case L8:
		dst[0] = src[0]
	}
}

func encodeTexel(f Format, dst, src []byte) {
	switch f {
	case RGBA8888, RGBA8888b:
		copy(dst, src[:4])
	case RGBA4444:
		binary.LittleEndian.PutUint16(dst,
			uint16(src[0]>>4)<<12|
				uint16(src[1]>>4)<<8|
				uint16(src[2]>>4)<<4|
				uint16(src[3]>>4))
	case RGBA5551:
		binary.LittleEndian.PutUint16(dst,
			uint16(src[0]>>3)<<11|
				uint16(src[1]>>3)<<6|
				uint16(src[2]>>3)<<1|
				uint16(src[3]>>7))
	case RGB565:
		binary.LittleEndian.PutUint16(dst,
			uint16(src[0]>>3)<<11|
				uint16(src[1]>>2)<<5|
				uint16(src[2]>>3))
	case LA88:
		dst[0] = src[0]
		dst[1] = src[1]
	case L8:
		dst[0] = src[0]
	}
}
