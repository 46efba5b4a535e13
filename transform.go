package scfile

import (
	"math"
)

// Matrix is a 2x3 affine transform. A point (x, y) is transformed to
// (A*x + C*y + TX, B*x + D*y + TY).
type Matrix struct {
	A, B, C, D float64
	TX, TY     float64
}

// NewMatrix returns an identity matrix.
func NewMatrix() *Matrix {
	return &Matrix{A: 1, D: 1}
}

// Translate moves the origin of m by (x, y), measured in the current basis of
// m.
func (m *Matrix) Translate(x, y float64) {
	m.TX += m.A*x + m.C*y
	m.TY += m.B*x + m.D*y
}

// Scale scales the horizontal basis of m by x and the vertical basis by y.
func (m *Matrix) Scale(x, y float64) {
	m.A *= x
	m.B *= x
	m.C *= y
	m.D *= y
}

// Rotate rotates m by the given angle, in degrees. The angle is negated
// before use, matching the rotation sense of the format.
func (m *Matrix) Rotate(degrees float64) {
	s, c := math.Sincos(-degrees * math.Pi / 180)
	a := m.A*c + m.C*s
	b := m.B*c + m.D*s
	m.C = -m.A*s + m.C*c
	m.D = -m.B*s + m.D*c
	m.A = a
	m.B = b
}

// Translation returns the translation component of m.
func (m *Matrix) Translation() (x, y float64) {
	return m.TX, m.TY
}

// Scaling returns the length of each basis vector of m.
func (m *Matrix) Scaling() (x, y float64) {
	return math.Hypot(m.A, m.C), math.Hypot(m.B, m.D)
}

// Rotation returns the angle applied by Rotate, in degrees.
func (m *Matrix) Rotation() float64 {
	return math.Atan2(m.C, m.A) * 180 / math.Pi
}

// ColorTransform adjusts the color of an object. Channels are in RGB(A)
// order.
type ColorTransform struct {
	// Add holds the red, green, blue, and alpha addition channels.
	Add [4]uint8
	// Mul holds the red, green, and blue multiplier channels.
	Mul [3]uint8
}

// NewColorTransform returns a color transform with the default addition of
// [0, 0, 0, 255] and multiplier of [0, 0, 0].
func NewColorTransform() *ColorTransform {
	return &ColorTransform{Add: [4]uint8{0, 0, 0, 0xFF}}
}
