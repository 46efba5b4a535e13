package sc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	errs "github.com/Fred-31/SupercellSWF-OLD/errors"
)

var (
	// Indicates a tag code not known by the codec.
	ErrUnknownTag = errors.New("unknown tag")
	// Indicates a tag variant that is no longer supported.
	ErrUnsupportedLegacy = errors.New("tag is no longer supported")
	// Indicates that an external texture file does not contain the same
	// number of textures as the main file.
	ErrTextureCount = errors.New("texture count mismatch")
	// Indicates that the file ended before every declared object was filled.
	ErrTruncated = errors.New("file is truncated")
	// Indicates more records of a kind than declared by the header.
	ErrTooMany = errors.New("more records than declared")
	// Indicates a reference to a texture, bank, or transform slot that does
	// not exist.
	ErrIndex = errors.New("index out of range")
	// Indicates that the transform table of a movie clip is shorter than the
	// resources declared by its frames.
	ErrTransformTable = errors.New("transform table is shorter than frame resources")
	// Indicates a texture that has no image while pixel data is required.
	ErrMissingImage = errors.New("texture has no image")
	// Indicates a bitmap of a fixed-size variant with a different number of
	// points.
	ErrBitmapPoints = errors.New("bitmap variant requires 4 points")
	// Indicates a value too large to be encoded in its field.
	ErrOverflow = errors.New("value exceeds field size")
	// Indicates that text exceeds the maximum encodable length.
	ErrTextLength = errors.New("text is longer than 254 bytes")
	// Indicates non-zero content in the reserved bytes of the header.
	ErrReserveNonZero = errors.New("reserved space in file header is non-zero")
	// Indicates data following the end tag.
	ErrTrailingData = errors.New("data follows end tag")
	// Indicates more modifiers than declared by the modifier count tag.
	ErrModifierCount = errors.New("modifier count does not match modifiers")
)

// DataError wraps an error that occurred while encoding or decoding byte data.
type DataError struct {
	// Offset is the byte offset where the error occurred.
	Offset int64

	Cause error
}

func (err DataError) Error() string {
	var s strings.Builder
	s.WriteString("data error")
	if err.Offset >= 0 {
		s.WriteString(" at ")
		s.Write(strconv.AppendInt(nil, err.Offset, 10))
	}
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err DataError) Unwrap() error {
	return err.Cause
}

// TagError indicates an error that occurred within a tag.
type TagError struct {
	// Index is the position of the tag within its list, or -1 if unknown.
	Index int
	// Code is the code of the tag.
	Code uint8

	Cause error
}

func (err TagError) Error() string {
	if err.Index < 0 {
		return fmt.Sprintf("tag %d: %s", err.Code, err.Cause)
	}
	return fmt.Sprintf("#%d tag %d: %s", err.Index, err.Code, err.Cause)
}

func (err TagError) Unwrap() error {
	return err.Cause
}

// TextureCountError indicates that the external texture file does not
// contain the number of textures declared by the main file.
type TextureCountError struct {
	Want, Got int
}

func (err TextureCountError) Error() string {
	return fmt.Sprintf("%s: main file declares %d, texture file contains %d", ErrTextureCount, err.Want, err.Got)
}

func (err TextureCountError) Unwrap() error {
	return ErrTextureCount
}

// UnfilledError indicates a declared object that was never filled.
type UnfilledError struct {
	// Kind names the collection of the object.
	Kind string
	// Index is the position of the object within its collection.
	Index int
}

func (err UnfilledError) Error() string {
	return fmt.Sprintf("%s #%d was not filled", err.Kind, err.Index)
}

// TruncatedError lists the objects left unfilled after decoding.
type TruncatedError struct {
	Unfilled errs.Errors
}

func (err TruncatedError) Error() string {
	return ErrTruncated.Error() + ": " + err.Unfilled.Error()
}

func (err TruncatedError) Unwrap() error {
	return ErrTruncated
}

// CodecError wraps an error that occurred while converting between a
// document and the format model.
type CodecError struct {
	Cause error
}

func (err CodecError) Error() string {
	if err.Cause == nil {
		return "codec error"
	}
	return "codec error: " + err.Cause.Error()
}

func (err CodecError) Unwrap() error {
	return err.Cause
}
