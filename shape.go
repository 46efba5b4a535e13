package scfile

// Point is a coordinate pair.
type Point struct {
	X, Y float64
}

// Shape is a renderable object composed of textured polygons.
type Shape struct {
	ID uint16

	// Variant is the tag code of the shape, or 0 for the default.
	Variant uint8

	Bitmaps []*Bitmap
}

func (s *Shape) ObjectID() uint16 { return s.ID }

// Bitmap is a polygon filled with a region of a texture.
type Bitmap struct {
	// Variant is the tag code of the bitmap, or 0 for the default.
	Variant uint8

	Texture *Texture

	// Points contains the vertices of the polygon, in pixels.
	Points []Point

	// UVs contains the texture coordinate of each vertex, in pixels of the
	// texture. The length is equal to the length of Points.
	UVs []Point
}

// AddBitmap appends a bitmap to the shape. Returns an error if tex is nil, or
// if the number of points differs from the number of UVs.
func (s *Shape) AddBitmap(tex *Texture, points, uvs []Point) (*Bitmap, error) {
	b := &Bitmap{
		Texture: tex,
		Points:  append([]Point(nil), points...),
		UVs:     append([]Point(nil), uvs...),
	}
	if err := b.check(); err != nil {
		return nil, BitmapError{Shape: s.ID, Index: len(s.Bitmaps), Cause: err}
	}
	s.Bitmaps = append(s.Bitmaps, b)
	return b, nil
}

func (b *Bitmap) check() error {
	if b.Texture == nil {
		return ErrMissingTexture
	}
	if len(b.Points) != len(b.UVs) {
		return ErrVertexUVCount
	}
	return nil
}

// PointCount returns the total number of vertices of every bitmap in the
// shape.
func (s *Shape) PointCount() int {
	n := 0
	for _, b := range s.Bitmaps {
		n += len(b.Points)
	}
	return n
}
