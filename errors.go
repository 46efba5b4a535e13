package scfile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedExport indicates that no object has a given export ID.
	ErrUnresolvedExport = errors.New("unresolved export id")
	// ErrNoExport indicates that no export has a given name.
	ErrNoExport = errors.New("no such export")
	// ErrMissingTexture indicates a bitmap that does not refer to a texture.
	ErrMissingTexture = errors.New("bitmap has no texture")
	// ErrVertexUVCount indicates a bitmap whose vertex list and UV list differ
	// in length.
	ErrVertexUVCount = errors.New("vertex count does not match UV count")
	// ErrBankOverflow indicates a movie clip whose transforms cannot fit into a
	// single bank.
	ErrBankOverflow = errors.New("transforms exceed bank capacity")
	// ErrNilBind indicates a movie clip that binds a nil object.
	ErrNilBind = errors.New("bound object is nil")
)

// UnresolvedError indicates that an export ID did not match any object.
type UnresolvedError struct {
	ID uint16
}

func (err UnresolvedError) Error() string {
	return fmt.Sprintf("%s %d", ErrUnresolvedExport, err.ID)
}

func (err UnresolvedError) Unwrap() error {
	return ErrUnresolvedExport
}

// ExportError wraps an error that occurred while looking up an export by
// name.
type ExportError struct {
	Name string

	Cause error
}

func (err ExportError) Error() string {
	return fmt.Sprintf("export %q: %s", err.Name, err.Cause)
}

func (err ExportError) Unwrap() error {
	return err.Cause
}

// BitmapError indicates an invalid bitmap within a shape.
type BitmapError struct {
	// Shape is the ID of the shape containing the bitmap.
	Shape uint16
	// Index is the position of the bitmap within the shape.
	Index int

	Cause error
}

func (err BitmapError) Error() string {
	return fmt.Sprintf("shape %d: bitmap #%d: %s", err.Shape, err.Index, err.Cause)
}

func (err BitmapError) Unwrap() error {
	return err.Cause
}

// BindError indicates an invalid bind within a movie clip.
type BindError struct {
	// Clip is the ID of the movie clip.
	Clip uint16
	// Index is the position of the bind within the clip.
	Index int

	Cause error
}

func (err BindError) Error() string {
	return fmt.Sprintf("movie clip %d: bind #%d: %s", err.Clip, err.Index, err.Cause)
}

func (err BindError) Unwrap() error {
	return err.Cause
}

// BankOverflowError indicates that the distinct transforms of a movie clip
// exceed the capacity of a bank.
type BankOverflowError struct {
	// Clip is the ID of the movie clip.
	Clip uint16

	Matrices        int
	ColorTransforms int
}

func (err BankOverflowError) Error() string {
	return fmt.Sprintf("movie clip %d: %s: %d matrices, %d color transforms (capacity %d)",
		err.Clip, ErrBankOverflow, err.Matrices, err.ColorTransforms, BankCapacity)
}

func (err BankOverflowError) Unwrap() error {
	return ErrBankOverflow
}
