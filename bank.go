package scfile

const (
	// BankCapacity is the maximum number of matrices, and the maximum number
	// of color transforms, held by a bank.
	BankCapacity = 65534

	// NoTransform is the slot index indicating the absence of a matrix or
	// color transform.
	NoTransform = 0xFFFF
)

// Bank is a capacity-bounded pool of transforms shared by movie clips.
type Bank struct {
	Matrices        []*Matrix
	ColorTransforms []*ColorTransform
}

// fits returns whether the remaining capacity of the bank exceeds the given
// requirements.
func (b *Bank) fits(matrices, colors int) bool {
	return BankCapacity-len(b.Matrices) > matrices &&
		BankCapacity-len(b.ColorTransforms) > colors
}

// MatrixIndex returns the slot of m within the bank, or NoTransform if m is
// nil or not present.
func (b *Bank) MatrixIndex(m *Matrix) int {
	if m != nil {
		for i, v := range b.Matrices {
			if v == m {
				return i
			}
		}
	}
	return NoTransform
}

// ColorIndex returns the slot of c within the bank, or NoTransform if c is
// nil or not present.
func (b *Bank) ColorIndex(c *ColorTransform) int {
	if c != nil {
		for i, v := range b.ColorTransforms {
			if v == c {
				return i
			}
		}
	}
	return NoTransform
}

// Matrix returns the matrix at slot i, or nil if i is NoTransform or out of
// range.
func (b *Bank) Matrix(i int) *Matrix {
	if i == NoTransform || i < 0 || i >= len(b.Matrices) {
		return nil
	}
	return b.Matrices[i]
}

// ColorTransform returns the color transform at slot i, or nil if i is
// NoTransform or out of range.
func (b *Bank) ColorTransform(i int) *ColorTransform {
	if i == NoTransform || i < 0 || i >= len(b.ColorTransforms) {
		return nil
	}
	return b.ColorTransforms[i]
}

// AllocateBank selects a bank for a movie clip requiring the given number of
// distinct matrices and color transforms. The first bank whose remaining
// capacity exceeds both requirements is selected. If no bank qualifies, a new
// bank is appended and selected. Returns the updated list and the index of
// the selected bank.
//
// A BankOverflowError is returned if either requirement exceeds
// BankCapacity, since a clip cannot be split across banks.
func AllocateBank(banks []*Bank, matrices, colors int) ([]*Bank, int, error) {
	if matrices > BankCapacity || colors > BankCapacity {
		return banks, -1, BankOverflowError{Matrices: matrices, ColorTransforms: colors}
	}
	for i, b := range banks {
		if b.fits(matrices, colors) {
			return banks, i, nil
		}
	}
	banks = append(banks, &Bank{})
	return banks, len(banks) - 1, nil
}
