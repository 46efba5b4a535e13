package sc

import (
	"bytes"
	"io"

	"github.com/anaminus/parse"
)

////////////////////////////////////////////////////////////////

// formatModel models the binary format. Directly, it can be used to control
// exactly how a file is encoded.
type formatModel struct {
	// TextureFile indicates an external texture file, which has no header
	// and contains only texture tags.
	TextureFile bool

	// Declared number of each kind of object.
	ShapeCount     uint16
	MovieClipCount uint16
	TextureCount   uint16
	TextFieldCount uint16

	// Declared number of transforms in bank 0.
	MatrixCount         uint16
	ColorTransformCount uint16

	Reserved [5]byte

	ExportIDs   []uint16
	ExportNames []string

	// Tags is the list of tags in the file, excluding the end tag.
	Tags []tag
}

// WriteTo encodes the model.
func (f *formatModel) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	if !f.TextureFile {
		for _, count := range []uint16{
			f.ShapeCount,
			f.MovieClipCount,
			f.TextureCount,
			f.TextFieldCount,
			f.MatrixCount,
			f.ColorTransformCount,
		} {
			if fw.Number(count) {
				return fw.End()
			}
		}
		if fw.Bytes(f.Reserved[:]) {
			return fw.End()
		}

		if fw.Number(uint16(len(f.ExportIDs))) {
			return fw.End()
		}
		for _, id := range f.ExportIDs {
			if fw.Number(id) {
				return fw.End()
			}
		}
		for _, name := range f.ExportNames {
			if writeText(fw, name) {
				return fw.End()
			}
		}
	}

	writeTags(fw, f.Tags)
	return fw.End()
}

////////////////////////////////////////////////////////////////

// tag is a record of the format that contains distinct data.
type tag interface {
	// Code returns the code identifying the tag's type.
	Code() uint8

	// ReadFrom processes the payload of the tag.
	ReadFrom(r io.Reader) (n int64, err error)

	// WriteTo writes the payload of the tag.
	WriteTo(w io.Writer) (n int64, err error)
}

// tagGenerator returns a tag for the given code, or nil if the code is not
// valid within a list.
type tagGenerator func(code uint8) tag

// topLevelTags generates tags that may appear in the main tag list.
func topLevelTags(code uint8) tag {
	switch code {
	case codeTexture, codeTexture2, codeTexture3, codeTexture4,
		codeTexture5, codeTexture6, codeTexture7, codeTexture8:
		return &tagTexture{code: code}
	case codeShape, codeShape2:
		return &tagShape{code: code}
	case codeMovieClip, codeMovieClip2, codeMovieClip3, codeMovieClip4, codeMovieClip5:
		return &tagMovieClip{code: code}
	case codeTextField, codeTextField2, codeTextField3, codeTextField4,
		codeTextField5, codeTextField6, codeTextField7:
		return &tagTextField{code: code}
	case codeMatrix:
		return &tagMatrix{}
	case codeColorTransform:
		return &tagColorTransform{}
	case codeBank:
		return &tagBank{}
	case codeBankIndex:
		return &tagBankIndex{}
	case codeModifierCount:
		return &tagModifierCount{}
	case codeModifier, codeModifier2, codeModifier3:
		return &tagModifier{code: code}
	case codeHighRes, codeExternalTexture, codeLowRes:
		return &tagFlag{code: code}
	}
	return nil
}

// textureFileTags generates tags that may appear in an external texture
// file.
func textureFileTags(code uint8) tag {
	if t, ok := topLevelTags(code).(*tagTexture); ok {
		return t
	}
	return nil
}

// shapeTags generates tags that may appear within a shape.
func shapeTags(code uint8) tag {
	switch code {
	case codeBitmap, codeBitmap2, codeBitmap3:
		return &tagBitmap{code: code}
	case codeFillColor:
		return &tagLegacy{code: code}
	}
	return nil
}

// movieClipTags generates tags that may appear within a movie clip.
func movieClipTags(code uint8) tag {
	switch code {
	case codeFrame:
		return &tagFrame{}
	case codeScalingGrid:
		return &tagScalingGrid{}
	case codeBankIndex:
		return &tagBankIndex{}
	}
	return nil
}

// payloadSize returns the number of unread bytes in r, or -1 if unknown.
func payloadSize(r io.Reader) int64 {
	if r, ok := r.(interface{ Len() int }); ok {
		return int64(r.Len())
	}
	return -1
}

// readTags reads a list of tags up to and including the end tag. size is the
// number of bytes available to fr, or -1 if unknown.
func readTags(fr *parse.BinaryReader, size int64, gen tagGenerator) (tags []tag, failed bool) {
	for i := 0; ; i++ {
		var code uint8
		if fr.Number(&code) {
			return tags, true
		}
		var length uint32
		if fr.Number(&length) {
			return tags, true
		}
		if size >= 0 && int64(length) > size-fr.N() {
			fr.Add(0, TagError{Index: i, Code: code, Cause: io.ErrUnexpectedEOF})
			return tags, true
		}
		payload := make([]byte, length)
		if fr.Bytes(payload) {
			return tags, true
		}
		if code == codeEnd {
			return tags, false
		}

		t := gen(code)
		if t == nil {
			fr.Add(0, TagError{Index: i, Code: code, Cause: ErrUnknownTag})
			return tags, true
		}
		if _, err := t.ReadFrom(bytes.NewReader(payload)); err != nil {
			fr.Add(0, TagError{Index: i, Code: code, Cause: err})
			return tags, true
		}
		tags = append(tags, t)
	}
}

// writeTags writes a list of tags followed by the end tag.
func writeTags(fw *parse.BinaryWriter, tags []tag) (failed bool) {
	var buf bytes.Buffer
	for i, t := range tags {
		buf.Reset()
		if _, err := t.WriteTo(&buf); err != nil {
			return fw.Add(0, TagError{Index: i, Code: t.Code(), Cause: err})
		}
		if fw.Number(t.Code()) {
			return true
		}
		if fw.Number(uint32(buf.Len())) {
			return true
		}
		if fw.Bytes(buf.Bytes()) {
			return true
		}
	}
	if fw.Number(uint8(codeEnd)) {
		return true
	}
	return fw.Number(uint32(0))
}

////////////////////////////////////////////////////////////////

// tagLegacy is a tag whose variant is no longer supported.
type tagLegacy struct {
	code uint8
}

func (t *tagLegacy) Code() uint8 { return t.code }

func (t *tagLegacy) ReadFrom(r io.Reader) (n int64, err error) {
	return 0, ErrUnsupportedLegacy
}

func (t *tagLegacy) WriteTo(w io.Writer) (n int64, err error) {
	return 0, ErrUnsupportedLegacy
}

////////////////////////////////////////////////////////////////

// tagFlag is a tag without content that sets a flag of the document.
type tagFlag struct {
	code uint8
}

func (t *tagFlag) Code() uint8 { return t.code }

func (t *tagFlag) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)
	fr.All()
	return fr.End()
}

func (t *tagFlag) WriteTo(w io.Writer) (n int64, err error) {
	return 0, nil
}

////////////////////////////////////////////////////////////////

// tagTexture contains the dimensions and pixel data of a texture.
type tagTexture struct {
	code uint8

	Format uint8
	Width  uint16
	Height uint16

	// Data contains the texel data. It is empty when the pixel data is stored
	// in an external texture file.
	Data []byte
}

func (t *tagTexture) Code() uint8 { return t.code }

// Blocked returns whether the texels are stored in the block-swizzled order.
func (t *tagTexture) Blocked() bool {
	return t.code == codeTexture5 || t.code == codeTexture6
}

func (t *tagTexture) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)

	if fr.Number(&t.Format) {
		return fr.End()
	}
	if fr.Number(&t.Width) {
		return fr.End()
	}
	if fr.Number(&t.Height) {
		return fr.End()
	}

	t.Data, _ = fr.All()

	return fr.End()
}

func (t *tagTexture) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	if fw.Number(t.Format) {
		return fw.End()
	}
	if fw.Number(t.Width) {
		return fw.End()
	}
	if fw.Number(t.Height) {
		return fw.End()
	}
	if len(t.Data) > 0 {
		fw.Bytes(t.Data)
	}

	return fw.End()
}

////////////////////////////////////////////////////////////////

// tagShape contains the bitmaps of a shape.
type tagShape struct {
	code uint8

	ID          uint16
	BitmapCount uint16

	// PointCount is the total number of points of every bitmap. Present only
	// in codeShape2.
	PointCount uint16

	// Tags contains the bitmaps of the shape.
	Tags []tag
}

func (t *tagShape) Code() uint8 { return t.code }

func (t *tagShape) ReadFrom(r io.Reader) (n int64, err error) {
	size := payloadSize(r)
	fr := parse.NewBinaryReader(r)

	if fr.Number(&t.ID) {
		return fr.End()
	}
	if fr.Number(&t.BitmapCount) {
		return fr.End()
	}
	if t.code == codeShape2 {
		if fr.Number(&t.PointCount) {
			return fr.End()
		}
	}

	t.Tags, _ = readTags(fr, size, shapeTags)

	return fr.End()
}

func (t *tagShape) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	if fw.Number(t.ID) {
		return fw.End()
	}
	if fw.Number(t.BitmapCount) {
		return fw.End()
	}
	if t.code == codeShape2 {
		if fw.Number(t.PointCount) {
			return fw.End()
		}
	}

	writeTags(fw, t.Tags)

	return fw.End()
}

////////////////////////////////////////////////////////////////

// tagBitmap contains a textured polygon of a shape.
type tagBitmap struct {
	code uint8

	// Texture is the index of the texture.
	Texture uint8

	// Points contains the vertices of the polygon, in twips.
	Points [][2]int32

	// UVs contains the texture coordinate of each vertex, normalized to
	// 0xFFFF.
	UVs [][2]uint16
}

func (t *tagBitmap) Code() uint8 { return t.code }

func (t *tagBitmap) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)

	if fr.Number(&t.Texture) {
		return fr.End()
	}

	var count uint8 = 4
	if t.code != codeBitmap {
		if fr.Number(&count) {
			return fr.End()
		}
	}

	t.Points = make([][2]int32, count)
	for i := range t.Points {
		if fr.Number(&t.Points[i][0]) || fr.Number(&t.Points[i][1]) {
			return fr.End()
		}
	}

	t.UVs = make([][2]uint16, count)
	for i := range t.UVs {
		if fr.Number(&t.UVs[i][0]) || fr.Number(&t.UVs[i][1]) {
			return fr.End()
		}
	}

	return fr.End()
}

func (t *tagBitmap) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	if len(t.UVs) != len(t.Points) || len(t.Points) > 0xFF {
		fw.Add(0, ErrOverflow)
		return fw.End()
	}
	if t.code == codeBitmap && len(t.Points) != 4 {
		fw.Add(0, ErrBitmapPoints)
		return fw.End()
	}

	if fw.Number(t.Texture) {
		return fw.End()
	}
	if t.code != codeBitmap {
		if fw.Number(uint8(len(t.Points))) {
			return fw.End()
		}
	}
	for _, p := range t.Points {
		if fw.Number(p[0]) || fw.Number(p[1]) {
			return fw.End()
		}
	}
	for _, uv := range t.UVs {
		if fw.Number(uv[0]) || fw.Number(uv[1]) {
			return fw.End()
		}
	}

	return fw.End()
}

////////////////////////////////////////////////////////////////

// tagTextField contains a text field. Each variant carries the fields of the
// previous variants, plus additional fields.
type tagTextField struct {
	code uint8

	ID    uint16
	Font  string
	Color [4]uint8

	Italic   bool
	ANSI     bool
	ShiftJIS bool
	Flag4    bool

	FontWidth uint8
	FontSize  uint8

	Left, Top, Right, Bottom int16

	Flag5 bool
	Text  string

	// Not present in codeTextField.
	WideCodes bool

	// Present in codeTextField4 and later, excluding codeTextField3.
	OutlineColor [4]uint8

	// Present in codeTextField6 and codeTextField7.
	Transform1 int16
	Transform2 int16

	// Present in codeTextField7.
	Transform3 int16
	Flag7      bool
}

func (t *tagTextField) Code() uint8 { return t.code }

func (t *tagTextField) hasWideCodes() bool {
	return t.code != codeTextField
}

func (t *tagTextField) hasOutline() bool {
	switch t.code {
	case codeTextField4, codeTextField5, codeTextField6, codeTextField7:
		return true
	}
	return false
}

func (t *tagTextField) hasTransforms() bool {
	return t.code == codeTextField6 || t.code == codeTextField7
}

func (t *tagTextField) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)

	if fr.Number(&t.ID) {
		return fr.End()
	}
	if readText(fr, &t.Font) {
		return fr.End()
	}
	if readBGRA(fr, &t.Color) {
		return fr.End()
	}
	if readBool(fr, &t.Italic) ||
		readBool(fr, &t.ANSI) ||
		readBool(fr, &t.ShiftJIS) ||
		readBool(fr, &t.Flag4) {
		return fr.End()
	}
	if fr.Number(&t.FontWidth) || fr.Number(&t.FontSize) {
		return fr.End()
	}
	if fr.Number(&t.Left) ||
		fr.Number(&t.Top) ||
		fr.Number(&t.Right) ||
		fr.Number(&t.Bottom) {
		return fr.End()
	}
	if readBool(fr, &t.Flag5) {
		return fr.End()
	}
	if readText(fr, &t.Text) {
		return fr.End()
	}

	if !t.hasWideCodes() {
		return fr.End()
	}
	if readBool(fr, &t.WideCodes) {
		return fr.End()
	}

	if t.hasOutline() {
		if readBGRA(fr, &t.OutlineColor) {
			return fr.End()
		}
	}

	if t.hasTransforms() {
		if fr.Number(&t.Transform1) || fr.Number(&t.Transform2) {
			return fr.End()
		}
		if t.code == codeTextField7 {
			if fr.Number(&t.Transform3) || readBool(fr, &t.Flag7) {
				return fr.End()
			}
		}
	}

	return fr.End()
}

func (t *tagTextField) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	if fw.Number(t.ID) {
		return fw.End()
	}
	if writeText(fw, t.Font) {
		return fw.End()
	}
	if writeBGRA(fw, t.Color) {
		return fw.End()
	}
	if writeBool(fw, t.Italic) ||
		writeBool(fw, t.ANSI) ||
		writeBool(fw, t.ShiftJIS) ||
		writeBool(fw, t.Flag4) {
		return fw.End()
	}
	if fw.Number(t.FontWidth) || fw.Number(t.FontSize) {
		return fw.End()
	}
	if fw.Number(t.Left) ||
		fw.Number(t.Top) ||
		fw.Number(t.Right) ||
		fw.Number(t.Bottom) {
		return fw.End()
	}
	if writeBool(fw, t.Flag5) {
		return fw.End()
	}
	if writeText(fw, t.Text) {
		return fw.End()
	}

	if !t.hasWideCodes() {
		return fw.End()
	}
	if writeBool(fw, t.WideCodes) {
		return fw.End()
	}

	if t.hasOutline() {
		if writeBGRA(fw, t.OutlineColor) {
			return fw.End()
		}
	}

	if t.hasTransforms() {
		if fw.Number(t.Transform1) || fw.Number(t.Transform2) {
			return fw.End()
		}
		if t.code == codeTextField7 {
			if fw.Number(t.Transform3) || writeBool(fw, t.Flag7) {
				return fw.End()
			}
		}
	}

	return fw.End()
}

////////////////////////////////////////////////////////////////

// tagMatrix contains a 2x3 matrix. The first four components are fixed-point
// with 10 fractional bits, and the translation is in twips.
type tagMatrix struct {
	A, B, C, D int32
	TX, TY     int32
}

func (t *tagMatrix) Code() uint8 { return codeMatrix }

func (t *tagMatrix) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)

	for _, v := range []*int32{&t.A, &t.B, &t.C, &t.D, &t.TX, &t.TY} {
		if fr.Number(v) {
			return fr.End()
		}
	}

	return fr.End()
}

func (t *tagMatrix) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	for _, v := range []int32{t.A, t.B, t.C, t.D, t.TX, t.TY} {
		if fw.Number(v) {
			return fw.End()
		}
	}

	return fw.End()
}

////////////////////////////////////////////////////////////////

// tagColorTransform contains a color transform, with channels in RGB(A)
// order.
type tagColorTransform struct {
	Add [4]uint8
	Mul [3]uint8
}

func (t *tagColorTransform) Code() uint8 { return codeColorTransform }

func (t *tagColorTransform) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)

	if readBGRA(fr, &t.Add) {
		return fr.End()
	}
	readBGR(fr, &t.Mul)

	return fr.End()
}

func (t *tagColorTransform) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	if writeBGRA(fw, t.Add) {
		return fw.End()
	}
	writeBGR(fw, t.Mul)

	return fw.End()
}

////////////////////////////////////////////////////////////////

// tagBank declares a new bank, along with the number of transforms it
// contains.
type tagBank struct {
	MatrixCount         uint16
	ColorTransformCount uint16
}

func (t *tagBank) Code() uint8 { return codeBank }

func (t *tagBank) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)

	if fr.Number(&t.MatrixCount) {
		return fr.End()
	}
	fr.Number(&t.ColorTransformCount)

	return fr.End()
}

func (t *tagBank) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	if fw.Number(t.MatrixCount) {
		return fw.End()
	}
	fw.Number(t.ColorTransformCount)

	return fw.End()
}

////////////////////////////////////////////////////////////////

// tagBankIndex selects the bank used by a movie clip.
type tagBankIndex struct {
	Index uint8
}

func (t *tagBankIndex) Code() uint8 { return codeBankIndex }

func (t *tagBankIndex) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)
	fr.Number(&t.Index)
	return fr.End()
}

func (t *tagBankIndex) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)
	fw.Number(t.Index)
	return fw.End()
}

////////////////////////////////////////////////////////////////

// tagModifierCount declares the number of modifiers in the file.
type tagModifierCount struct {
	Count uint16
}

func (t *tagModifierCount) Code() uint8 { return codeModifierCount }

func (t *tagModifierCount) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)
	fr.Number(&t.Count)
	return fr.End()
}

func (t *tagModifierCount) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)
	fw.Number(t.Count)
	return fw.End()
}

////////////////////////////////////////////////////////////////

// tagModifier contains a movie clip modifier.
type tagModifier struct {
	code uint8

	ID uint16
}

func (t *tagModifier) Code() uint8 { return t.code }

func (t *tagModifier) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)
	fr.Number(&t.ID)
	return fr.End()
}

func (t *tagModifier) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)
	fw.Number(t.ID)
	return fw.End()
}

////////////////////////////////////////////////////////////////

// transformRef refers to the transforms of a bind slot on a frame.
type transformRef struct {
	Bind           uint16
	Matrix         uint16
	ColorTransform uint16
}

// tagMovieClip contains a movie clip.
type tagMovieClip struct {
	code uint8

	ID         uint16
	FrameRate  uint8
	FrameCount uint16

	// Transforms contains the resources of every frame, in frame order.
	Transforms []transformRef

	// Binds contains the export ID of each bound object.
	Binds []uint16
	// Blends contains the blend mode of each bind. Present only in
	// codeMovieClip3 and codeMovieClip5.
	Blends []uint8
	// Names contains the name of each bind.
	Names []string

	// Tags contains frames, the scaling grid, and the bank index.
	Tags []tag
}

func (t *tagMovieClip) Code() uint8 { return t.code }

func (t *tagMovieClip) hasBlends() bool {
	return t.code == codeMovieClip3 || t.code == codeMovieClip5
}

func (t *tagMovieClip) ReadFrom(r io.Reader) (n int64, err error) {
	size := payloadSize(r)
	fr := parse.NewBinaryReader(r)

	if fr.Number(&t.ID) {
		return fr.End()
	}
	if fr.Number(&t.FrameRate) {
		return fr.End()
	}
	if t.code == codeMovieClip || t.code == codeMovieClip4 {
		fr.Add(0, ErrUnsupportedLegacy)
		return fr.End()
	}
	if fr.Number(&t.FrameCount) {
		return fr.End()
	}

	var count int32
	if fr.Number(&count) {
		return fr.End()
	}
	if count < 0 || size >= 0 && int64(count)*6 > size-fr.N() {
		fr.Add(0, io.ErrUnexpectedEOF)
		return fr.End()
	}
	t.Transforms = make([]transformRef, count)
	for i := range t.Transforms {
		ref := &t.Transforms[i]
		if fr.Number(&ref.Bind) ||
			fr.Number(&ref.Matrix) ||
			fr.Number(&ref.ColorTransform) {
			return fr.End()
		}
	}

	var binds uint16
	if fr.Number(&binds) {
		return fr.End()
	}
	t.Binds = make([]uint16, binds)
	for i := range t.Binds {
		if fr.Number(&t.Binds[i]) {
			return fr.End()
		}
	}
	if t.hasBlends() {
		t.Blends = make([]uint8, binds)
		if binds > 0 && fr.Bytes(t.Blends) {
			return fr.End()
		}
	}
	t.Names = make([]string, binds)
	for i := range t.Names {
		if readText(fr, &t.Names[i]) {
			return fr.End()
		}
	}

	t.Tags, _ = readTags(fr, size, movieClipTags)

	return fr.End()
}

func (t *tagMovieClip) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	if t.code == codeMovieClip || t.code == codeMovieClip4 {
		fw.Add(0, ErrUnsupportedLegacy)
		return fw.End()
	}
	if len(t.Binds) > 0xFFFF || len(t.Names) != len(t.Binds) ||
		t.hasBlends() && len(t.Blends) != len(t.Binds) {
		fw.Add(0, ErrOverflow)
		return fw.End()
	}

	if fw.Number(t.ID) {
		return fw.End()
	}
	if fw.Number(t.FrameRate) {
		return fw.End()
	}
	if fw.Number(t.FrameCount) {
		return fw.End()
	}

	if fw.Number(int32(len(t.Transforms))) {
		return fw.End()
	}
	for _, ref := range t.Transforms {
		if fw.Number(ref.Bind) ||
			fw.Number(ref.Matrix) ||
			fw.Number(ref.ColorTransform) {
			return fw.End()
		}
	}

	if fw.Number(uint16(len(t.Binds))) {
		return fw.End()
	}
	for _, id := range t.Binds {
		if fw.Number(id) {
			return fw.End()
		}
	}
	if t.hasBlends() && len(t.Blends) > 0 {
		if fw.Bytes(t.Blends) {
			return fw.End()
		}
	}
	for _, name := range t.Names {
		if writeText(fw, name) {
			return fw.End()
		}
	}

	writeTags(fw, t.Tags)

	return fw.End()
}

////////////////////////////////////////////////////////////////

// tagFrame declares a frame of a movie clip, along with the number of
// entries it occupies in the transform table.
type tagFrame struct {
	ResourceCount uint16
	Name          string
}

func (t *tagFrame) Code() uint8 { return codeFrame }

func (t *tagFrame) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)

	if fr.Number(&t.ResourceCount) {
		return fr.End()
	}
	readText(fr, &t.Name)

	return fr.End()
}

func (t *tagFrame) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	if fw.Number(t.ResourceCount) {
		return fw.End()
	}
	writeText(fw, t.Name)

	return fw.End()
}

////////////////////////////////////////////////////////////////

// tagScalingGrid contains the 9-slice scaling region of a movie clip, in
// twips.
type tagScalingGrid struct {
	X, Y          int32
	Width, Height int32
}

func (t *tagScalingGrid) Code() uint8 { return codeScalingGrid }

func (t *tagScalingGrid) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)

	for _, v := range []*int32{&t.X, &t.Y, &t.Width, &t.Height} {
		if fr.Number(v) {
			return fr.End()
		}
	}

	return fr.End()
}

func (t *tagScalingGrid) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	for _, v := range []int32{t.X, t.Y, t.Width, t.Height} {
		if fw.Number(v) {
			return fw.End()
		}
	}

	return fw.End()
}
