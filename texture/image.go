package texture

import (
	"image"
	"image/color"
)

// Image is a decoded pixel buffer. Pixels are stored row by row, top to
// bottom, each holding Layout.Channels bytes.
type Image struct {
	Layout Layout
	Pix    []uint8
	Stride int // number of bytes per row
	Rect   image.Rectangle
}

// NewImage returns an Image of the given layout and bounds, with all channels
// set to zero.
func NewImage(l Layout, r image.Rectangle) *Image {
	n := l.Channels()
	return &Image{
		Layout: l,
		Pix:    make([]uint8, n*r.Dx()*r.Dy()),
		Stride: n * r.Dx(),
		Rect:   r,
	}
}

func (m *Image) ColorModel() color.Model {
	if m.Layout == L {
		return color.GrayModel
	}
	return color.NRGBAModel
}

func (m *Image) Bounds() image.Rectangle { return m.Rect }

// PixOffset returns the index of the first channel of the pixel at (x, y).
func (m *Image) PixOffset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Stride + (x-m.Rect.Min.X)*m.Layout.Channels()
}

// Texel returns the channels of the pixel at (x, y). The returned slice shares
// memory with the image. Returns nil if the point is out of bounds.
func (m *Image) Texel(x, y int) []uint8 {
	if !image.Pt(x, y).In(m.Rect) {
		return nil
	}
	i := m.PixOffset(x, y)
	return m.Pix[i : i+m.Layout.Channels() : i+m.Layout.Channels()]
}

func (m *Image) At(x, y int) color.Color {
	t := m.Texel(x, y)
	if t == nil {
		if m.Layout == L {
			return color.Gray{}
		}
		return color.NRGBA{}
	}
	switch m.Layout {
	case RGBA:
		return color.NRGBA{R: t[0], G: t[1], B: t[2], A: t[3]}
	case RGB:
		return color.NRGBA{R: t[0], G: t[1], B: t[2], A: 0xFF}
	case LA:
		return color.NRGBA{R: t[0], G: t[0], B: t[0], A: t[1]}
	default:
		return color.Gray{Y: t[0]}
	}
}

// Set sets the pixel at (x, y), converting c to the layout of the image.
func (m *Image) Set(x, y int, c color.Color) {
	t := m.Texel(x, y)
	if t == nil {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	switch m.Layout {
	case RGBA:
		t[0], t[1], t[2], t[3] = n.R, n.G, n.B, n.A
	case RGB:
		t[0], t[1], t[2] = n.R, n.G, n.B
	case LA:
		t[0] = luminance(n)
		t[1] = n.A
	default:
		t[0] = luminance(n)
	}
}

func luminance(c color.NRGBA) uint8 {
	return color.GrayModel.Convert(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}).(color.Gray).Y
}

// FromImage returns a copy of src. Grayscale images get an L layout, and
// other images an RGBA layout. If src is already an Image, its layout is
// retained.
func FromImage(src image.Image) *Image {
	r := src.Bounds()
	if m, ok := src.(*Image); ok {
		dst := NewImage(m.Layout, image.Rect(0, 0, r.Dx(), r.Dy()))
		for y := 0; y < r.Dy(); y++ {
			i := m.PixOffset(r.Min.X, r.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], m.Pix[i:i+dst.Stride])
		}
		return dst
	}
	l := RGBA
	switch src.(type) {
	case *image.Gray, *image.Gray16:
		l = L
	}
	dst := NewImage(l, image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			dst.Set(x, y, src.At(r.Min.X+x, r.Min.Y+y))
		}
	}
	return dst
}
