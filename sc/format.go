// Package sc implements a decoder and encoder for the Supercell SWF binary
// format.
//
// A file is a header declaring object counts and exports, followed by a list
// of tags. Each tag is a code, a 32-bit length, and a payload. Shapes and
// movie clips contain nested tag lists of their own. Every list ends with a
// tag of code 0.
//
// Decoder and Encoder convert directly between byte streams and documents of
// the scfile package. The stream is expected to be decompressed; see the
// compress package for the outer framing.
package sc

// Tag codes.
const (
	codeEnd = 0

	codeTexture   = 1
	codeTexture2  = 16
	codeTexture3  = 19
	codeTexture4  = 24
	codeTexture5  = 27 // Block-swizzled.
	codeTexture6  = 28 // Block-swizzled.
	codeTexture7  = 29
	codeTexture8  = 34
	codeShape     = 2
	codeShape2    = 18
	codeBitmap    = 4 // Fixed 4 points.
	codeFillColor = 6 // Legacy.
	codeBitmap2   = 17
	codeBitmap3   = 22

	codeMovieClip   = 3 // Legacy.
	codeMovieClip2  = 10
	codeMovieClip3  = 12
	codeMovieClip4  = 14 // Legacy.
	codeMovieClip5  = 35
	codeFrame       = 11
	codeScalingGrid = 31
	codeBankIndex   = 41

	codeTextField  = 7
	codeTextField2 = 15
	codeTextField3 = 20
	codeTextField4 = 21
	codeTextField5 = 25
	codeTextField6 = 33
	codeTextField7 = 44

	codeMatrix         = 8
	codeColorTransform = 9
	codeBank           = 42

	codeModifierCount = 37
	codeModifier      = 38
	codeModifier2     = 39
	codeModifier3     = 40

	codeHighRes         = 23
	codeExternalTexture = 26
	codeLowRes          = 30
)

// Variants used for objects that do not specify one.
const (
	defaultTexture   = codeTexture
	defaultShape     = codeShape2
	defaultBitmap    = codeBitmap3
	defaultMovieClip = codeMovieClip3
	defaultTextField = codeTextField
	defaultModifier  = codeModifier
)

// TextureFileSuffix replaces the extension of a file to form the name of its
// external texture file.
const TextureFileSuffix = "_tex.sc"
