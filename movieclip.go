package scfile

// MovieClip is a renderable object that animates a list of bound objects
// over a sequence of frames.
type MovieClip struct {
	ID uint16

	// Variant is the tag code of the movie clip, or 0 for the default.
	Variant uint8

	FrameRate uint8

	Binds  []Bind
	Frames []Frame

	// Bank is the index of the bank containing the transforms referred to by
	// frames. It is assigned by Rebuild.
	Bank int

	// ScalingGrid is the 9-slice scaling region of the clip. Can be nil.
	ScalingGrid *ScalingGrid
}

// NewMovieClip returns a movie clip with the given ID, running at 30 frames
// per second.
func NewMovieClip(id uint16) *MovieClip {
	return &MovieClip{ID: id, FrameRate: 30}
}

func (mc *MovieClip) ObjectID() uint16 { return mc.ID }

// Bind is a child object bound to a slot of a movie clip.
type Bind struct {
	Object Object
	Blend  uint8
	Name   string
}

// Frame is a snapshot of the transforms of bound objects.
type Frame struct {
	Name      string
	Resources []Resource
}

// Resource sets the transform of a bound object on a frame. Matrix and Color
// are nil when the frame does not transform the object.
type Resource struct {
	// Bind is the index of the bind slot.
	Bind   uint16
	Matrix *Matrix
	Color  *ColorTransform
}

// Resource returns the resource of the frame for the given bind slot, and
// whether it was found.
func (f *Frame) Resource(bind int) (Resource, bool) {
	for _, r := range f.Resources {
		if int(r.Bind) == bind {
			return r, true
		}
	}
	return Resource{}, false
}

// ScalingGrid is a rectangle that divides a movie clip into regions for
// 9-slice scaling.
type ScalingGrid struct {
	X, Y          float64
	Width, Height float64
}

// Bind adds obj to the next bind slot of the clip, and returns the index of
// the slot.
func (mc *MovieClip) Bind(obj Object, blend uint8, name string) int {
	mc.Binds = append(mc.Binds, Bind{Object: obj, Blend: blend, Name: name})
	return len(mc.Binds) - 1
}

// KeyOption configures the transform set by Keyframe.
type KeyOption func(*keyframe)

type keyframe struct {
	translate, scale *Point
	rotate           *float64
	add              *[3]uint8
	mul              *[3]uint8
	alpha            *uint8
}

// Translate moves the bound object by (x, y).
func Translate(x, y float64) KeyOption {
	return func(k *keyframe) { k.translate = &Point{X: x, Y: y} }
}

// Scale scales the bound object horizontally by x and vertically by y.
func Scale(x, y float64) KeyOption {
	return func(k *keyframe) { k.scale = &Point{X: x, Y: y} }
}

// Rotate rotates the bound object by the given angle, in degrees.
func Rotate(degrees float64) KeyOption {
	return func(k *keyframe) { k.rotate = &degrees }
}

// Add sets the red, green, and blue addition channels of the bound object.
func Add(r, g, b uint8) KeyOption {
	return func(k *keyframe) { k.add = &[3]uint8{r, g, b} }
}

// Multiply sets the multiplier channels of the bound object.
func Multiply(r, g, b uint8) KeyOption {
	return func(k *keyframe) { k.mul = &[3]uint8{r, g, b} }
}

// Alpha sets the alpha addition channel of the bound object.
func Alpha(a uint8) KeyOption {
	return func(k *keyframe) { k.alpha = &a }
}

// Keyframe sets the transform of a bind slot on a frame, adding frames to the
// clip until the frame exists. A previous transform of the slot on the frame
// is replaced. A negative frame is ignored.
//
// The matrix is composed from the identity by applying the translation, then
// the scale, then the rotation, regardless of the order of opts. The
// color transform starts from the default. A matrix or color transform is
// only created when an option affecting it is given.
func (mc *MovieClip) Keyframe(frame, bind int, opts ...KeyOption) {
	if frame < 0 {
		return
	}
	var k keyframe
	for _, opt := range opts {
		opt(&k)
	}

	r := Resource{Bind: uint16(bind)}
	if k.translate != nil || k.scale != nil || k.rotate != nil {
		r.Matrix = NewMatrix()
		if k.translate != nil {
			r.Matrix.Translate(k.translate.X, k.translate.Y)
		}
		if k.scale != nil {
			r.Matrix.Scale(k.scale.X, k.scale.Y)
		}
		if k.rotate != nil {
			r.Matrix.Rotate(*k.rotate)
		}
	}
	if k.add != nil || k.mul != nil || k.alpha != nil {
		r.Color = NewColorTransform()
		if k.add != nil {
			copy(r.Color.Add[:3], k.add[:])
		}
		if k.mul != nil {
			r.Color.Mul = *k.mul
		}
		if k.alpha != nil {
			r.Color.Add[3] = *k.alpha
		}
	}

	for len(mc.Frames) <= frame {
		mc.Frames = append(mc.Frames, Frame{})
	}
	f := &mc.Frames[frame]
	for i := range f.Resources {
		if f.Resources[i].Bind == r.Bind {
			f.Resources[i] = r
			return
		}
	}
	f.Resources = append(f.Resources, r)
}

// SetFrameName sets the name of a frame, adding frames to the clip until the
// frame exists. A negative frame is ignored.
func (mc *MovieClip) SetFrameName(frame int, name string) {
	if frame < 0 {
		return
	}
	for len(mc.Frames) <= frame {
		mc.Frames = append(mc.Frames, Frame{})
	}
	mc.Frames[frame].Name = name
}

// SetScalingGrid sets the 9-slice scaling region of the clip.
func (mc *MovieClip) SetScalingGrid(x, y, width, height float64) {
	mc.ScalingGrid = &ScalingGrid{X: x, Y: y, Width: width, Height: height}
}

// transforms returns the distinct matrices and color transforms referred to
// by the frames of the clip, in order of first reference.
func (mc *MovieClip) transforms() (matrices []*Matrix, colors []*ColorTransform) {
	seenM := map[*Matrix]bool{}
	seenC := map[*ColorTransform]bool{}
	for _, f := range mc.Frames {
		for _, r := range f.Resources {
			if r.Matrix != nil && !seenM[r.Matrix] {
				seenM[r.Matrix] = true
				matrices = append(matrices, r.Matrix)
			}
			if r.Color != nil && !seenC[r.Color] {
				seenC[r.Color] = true
				colors = append(colors, r.Color)
			}
		}
	}
	return matrices, colors
}
