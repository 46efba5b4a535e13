package sc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"
	"testing"

	scfile "github.com/Fred-31/SupercellSWF-OLD"
	"github.com/anaminus/parse"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// app concatenates values into a little-endian byte stream. Values other than
// strings and byte slices must have a fixed size.
func app(bs ...interface{}) []byte {
	var buf bytes.Buffer
	for _, b := range bs {
		switch b := b.(type) {
		case string:
			buf.WriteString(b)
		case []byte:
			buf.Write(b)
		default:
			if err := binary.Write(&buf, binary.LittleEndian, b); err != nil {
				panic(err)
			}
		}
	}
	return buf.Bytes()
}

func header(shapes, clips, textures, textFields, matrices, colors uint16) []byte {
	return app(shapes, clips, textures, textFields, matrices, colors, [5]byte{}, uint16(0))
}

func rawTag(code uint8, payload ...interface{}) []byte {
	p := app(payload...)
	return app(code, uint32(len(p)), p)
}

var endTag = app(uint8(0), uint32(0))

func newTestTexture() *scfile.Texture {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	img.SetNRGBA(1, 0, color.NRGBA{G: 0xFF, A: 0x80})
	img.SetNRGBA(0, 1, color.NRGBA{B: 0xFF, A: 0x40})
	img.SetNRGBA(1, 1, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF})
	return scfile.NewTexture(img)
}

// newTestDocument returns a document with a movie clip binding a textured
// shape, translated and faded on its first frame.
func newTestDocument(t *testing.T) *scfile.Document {
	shape := &scfile.Shape{ID: 1}
	_, err := shape.AddBitmap(newTestTexture(),
		[]scfile.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}},
		[]scfile.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}},
	)
	require.NoError(t, err)

	clip := scfile.NewMovieClip(2)
	clip.Bind(shape, 0, "body")
	clip.Keyframe(0, 0, scfile.Translate(10, 20), scfile.Alpha(128))

	doc := &scfile.Document{}
	require.NoError(t, doc.CreateExport(clip, "hero"))
	return doc
}

func encode(t *testing.T, doc *scfile.Document) []byte {
	var buf bytes.Buffer
	require.NoError(t, Encoder{}.Encode(&buf, doc))
	return buf.Bytes()
}

func decode(t *testing.T, b []byte) *scfile.Document {
	doc, warn, err := Decoder{}.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	require.NoError(t, warn)
	return doc
}

func TestTwips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Int32Range(-1<<28, 1<<28).Draw(t, "twips")
		if got, ok := toTwips(fromTwips(v)); !ok || got != v {
			t.Fatalf("twips %d: round trip produced %d", v, got)
		}
		f := rapid.Int32Range(-1<<28, 1<<28).Draw(t, "fixed")
		if got, ok := toFixed(fromFixed(f)); !ok || got != f {
			t.Fatalf("fixed %d: round trip produced %d", f, got)
		}
	})

	tests := []struct {
		v    float64
		conv func(float64) (int32, bool)
		want int32
		ok   bool
	}{
		{1.5, toTwips, 30, true},
		{-1, toTwips, -20, true},
		{0.125, toTwips, 2, true}, // 2.5 rounds to even.
		{1, toFixed, 1024, true},
		{math.MaxInt32 / 20, toTwips, math.MaxInt32 / 20 * 20, true},
		{math.MinInt32 / 20, toTwips, math.MinInt32 / 20 * 20, true},
		{1e9, toTwips, 0, false},
		{-1e9, toTwips, 0, false},
		{3e6, toFixed, 0, false},
		{math.Inf(1), toTwips, 0, false},
		{math.NaN(), toFixed, 0, false},
	}
	for _, test := range tests {
		got, ok := test.conv(test.v)
		if ok != test.ok || got != test.want {
			t.Errorf("%g: expected (%d, %t), got (%d, %t)", test.v, test.want, test.ok, got, ok)
		}
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		text string
		want []byte
		err  error
	}{
		{"", []byte{0xFF}, nil},
		{"ab", []byte{2, 'a', 'b'}, nil},
		{strings.Repeat("x", 254), append([]byte{254}, strings.Repeat("x", 254)...), nil},
		{strings.Repeat("x", 255), nil, ErrTextLength},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		fw := parse.NewBinaryWriter(&buf)
		writeText(fw, test.text)
		_, err := fw.End()
		if test.err != nil {
			require.ErrorIs(t, err, test.err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, test.want, buf.Bytes())

		var got string
		fr := parse.NewBinaryReader(bytes.NewReader(buf.Bytes()))
		require.False(t, readText(fr, &got))
		require.Equal(t, test.text, got)
	}
}

func TestEncodeEmpty(t *testing.T) {
	b := encode(t, &scfile.Document{})
	require.Equal(t, app(header(0, 0, 0, 0, 0, 0), endTag), b)

	doc := decode(t, b)
	require.Len(t, doc.Banks, 1)
	require.Empty(t, doc.Banks[0].Matrices)
	require.Empty(t, doc.Textures)
	require.Empty(t, doc.MovieClips)
	require.Empty(t, doc.Exports)
}

func TestRoundTrip(t *testing.T) {
	doc := decode(t, encode(t, newTestDocument(t)))

	obj, err := doc.ExportByName("hero")
	require.NoError(t, err)
	clip, ok := obj.(*scfile.MovieClip)
	require.True(t, ok, "export resolved to %T", obj)
	require.Equal(t, uint16(2), clip.ID)
	require.Equal(t, uint8(30), clip.FrameRate)
	require.Equal(t, uint8(defaultMovieClip), clip.Variant)

	require.Len(t, clip.Binds, 1)
	require.Equal(t, "body", clip.Binds[0].Name)
	shape, ok := clip.Binds[0].Object.(*scfile.Shape)
	require.True(t, ok, "bind resolved to %T", clip.Binds[0].Object)
	require.Equal(t, uint16(1), shape.ID)
	require.Same(t, doc.Shapes[0], shape)

	require.Len(t, clip.Frames, 1)
	r, ok := clip.Frames[0].Resource(0)
	require.True(t, ok)
	require.NotNil(t, r.Matrix)
	x, y := r.Matrix.Translation()
	require.Equal(t, 10.0, x)
	require.Equal(t, 20.0, y)
	require.Equal(t, 1.0, r.Matrix.A)
	require.Equal(t, 1.0, r.Matrix.D)
	require.NotNil(t, r.Color)
	require.Equal(t, [4]uint8{0, 0, 0, 128}, r.Color.Add)
	require.Same(t, doc.Banks[0].Matrices[0], r.Matrix)

	require.Len(t, shape.Bitmaps, 1)
	b := shape.Bitmaps[0]
	require.Same(t, doc.Textures[0], b.Texture)
	require.Equal(t, []scfile.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}, b.Points)
	require.Equal(t, []scfile.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}, b.UVs)
	require.Equal(t, newTestTexture().Digest(), b.Texture.Digest())
}

func TestRoundTripStructure(t *testing.T) {
	tex := newTestTexture()
	tex.Variant = codeTexture5
	shape := &scfile.Shape{ID: 10, Variant: codeShape2}
	b, err := shape.AddBitmap(tex,
		[]scfile.Point{{X: 0, Y: 0}, {X: 4.5, Y: 0}, {X: 4.5, Y: 3}},
		[]scfile.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}},
	)
	require.NoError(t, err)
	b.Variant = codeBitmap3

	mod := &scfile.Modifier{ID: 11, Variant: codeModifier2}
	text := scfile.NewTextField(12)
	text.Variant = codeTextField
	text.Text = "hello"

	child := scfile.NewMovieClip(13)
	child.Variant = codeMovieClip3
	child.Bind(shape, 0, "")
	child.Keyframe(0, 0, scfile.Scale(2, 2))

	clip := scfile.NewMovieClip(14)
	clip.Variant = codeMovieClip5
	clip.FrameRate = 24
	clip.Bind(mod, 0, "")
	clip.Bind(text, 0, "label")
	clip.Bind(child, 3, "child")
	clip.Keyframe(0, 2, scfile.Translate(1.5, -2), scfile.Rotate(30))
	clip.Keyframe(0, 1, scfile.Multiply(1, 2, 3))
	clip.Keyframe(1, 2, scfile.Translate(3, 4))
	clip.SetFrameName(1, "end")
	clip.SetScalingGrid(1.5, 2, 30, 40)

	doc := &scfile.Document{HighRes: true}
	require.NoError(t, doc.CreateExport(clip, "menu"))
	require.NoError(t, doc.CreateExport(child, "part"))

	got := decode(t, encode(t, doc))
	diff := cmp.Diff(doc, got,
		cmpopts.EquateApprox(0, 1.0/1024),
		cmpopts.EquateEmpty(),
	)
	if diff != "" {
		t.Errorf("decoded document differs (-want +got):\n%s", diff)
	}
}

func TestTextFieldVariants(t *testing.T) {
	full := &scfile.TextField{
		ID:           3,
		Text:         "hi",
		Font:         "Arial",
		FontWidth:    1,
		FontSize:     12,
		Color:        color.NRGBA{R: 1, G: 2, B: 3, A: 4},
		OutlineColor: color.NRGBA{R: 5, G: 6, B: 7, A: 8},
		Left:         -10,
		Top:          -5,
		Right:        10,
		Bottom:       5,
		Italic:       true,
		ShiftJIS:     true,
		Flag5:        true,
		WideCodes:    true,
		Flag7:        true,
		Transform1:   -1,
		Transform2:   2,
		Transform3:   -3,
	}

	tests := []struct {
		variant uint8
		// clear removes the fields not carried by the variant.
		clear func(tf *scfile.TextField)
	}{
		{codeTextField7, func(tf *scfile.TextField) {}},
		{codeTextField6, func(tf *scfile.TextField) {
			tf.Transform3 = 0
			tf.Flag7 = false
		}},
		{codeTextField4, func(tf *scfile.TextField) {
			tf.Transform1, tf.Transform2, tf.Transform3 = 0, 0, 0
			tf.Flag7 = false
		}},
		{codeTextField2, func(tf *scfile.TextField) {
			tf.OutlineColor = color.NRGBA{A: 0xFF}
			tf.Transform1, tf.Transform2, tf.Transform3 = 0, 0, 0
			tf.Flag7 = false
		}},
		{codeTextField, func(tf *scfile.TextField) {
			tf.OutlineColor = color.NRGBA{A: 0xFF}
			tf.WideCodes = false
			tf.Transform1, tf.Transform2, tf.Transform3 = 0, 0, 0
			tf.Flag7 = false
		}},
	}
	for _, test := range tests {
		tf := *full
		tf.Variant = test.variant
		clip := scfile.NewMovieClip(1)
		clip.Bind(&tf, 0, "")
		doc := &scfile.Document{}
		require.NoError(t, doc.CreateExport(clip, "text"))

		got := decode(t, encode(t, doc))
		require.Len(t, got.TextFields, 1)

		want := tf
		test.clear(&want)
		if diff := cmp.Diff(&want, got.TextFields[0]); diff != "" {
			t.Errorf("variant %d: decoded text field differs (-want +got):\n%s", test.variant, diff)
		}
	}
}

func TestNoTransform(t *testing.T) {
	shape := &scfile.Shape{ID: 1}
	clip := scfile.NewMovieClip(2)
	clip.Bind(shape, 0, "")
	clip.Keyframe(0, 0)
	doc := &scfile.Document{}
	require.NoError(t, doc.CreateExport(clip, "still"))

	require.NoError(t, doc.Rebuild())
	model, err := scCodec{}.Encode(doc)
	require.NoError(t, err)
	var mc *tagMovieClip
	for _, tg := range model.Tags {
		if tg, ok := tg.(*tagMovieClip); ok {
			mc = tg
		}
	}
	require.NotNil(t, mc)
	require.Equal(t, []transformRef{{Bind: 0, Matrix: 0xFFFF, ColorTransform: 0xFFFF}}, mc.Transforms)

	got := decode(t, encode(t, doc))
	r, ok := got.MovieClips[0].Frames[0].Resource(0)
	require.True(t, ok)
	require.Nil(t, r.Matrix)
	require.Nil(t, r.Color)
}

func TestDecodeBanks(t *testing.T) {
	clip := func(sub ...interface{}) []byte {
		return rawTag(codeMovieClip3,
			uint16(5), uint8(24), uint16(1),
			int32(1), uint16(0), uint16(0), uint16(0xFFFF),
			uint16(1), uint16(9), uint8(2), uint8(0xFF),
			app(sub...),
			rawTag(codeFrame, uint16(1), uint8(0xFF)),
			endTag,
		)
	}
	bank := app(
		rawTag(codeModifierCount, uint16(1)),
		rawTag(codeModifier, uint16(9)),
		rawTag(codeBank, uint16(1), uint16(0)),
		rawTag(codeMatrix, int32(1024), int32(0), int32(0), int32(1024), int32(200), int32(-40)),
	)

	tests := []struct {
		name string
		data []byte
	}{
		{"top-level", app(header(0, 1, 0, 0, 0, 0), bank, rawTag(codeBankIndex, uint8(1)), clip(), endTag)},
		{"nested", app(header(0, 1, 0, 0, 0, 0), bank, clip(rawTag(codeBankIndex, uint8(1))), endTag)},
	}
	for _, test := range tests {
		doc := decode(t, test.data)
		require.Len(t, doc.Banks, 2, test.name)
		require.Len(t, doc.MovieClips, 1, test.name)
		mc := doc.MovieClips[0]
		require.Equal(t, 1, mc.Bank, test.name)
		require.Same(t, doc.Modifiers[0], mc.Binds[0].Object, test.name)
		require.Equal(t, uint8(2), mc.Binds[0].Blend, test.name)

		r := mc.Frames[0].Resources[0]
		require.Same(t, doc.Banks[1].Matrices[0], r.Matrix, test.name)
		require.Nil(t, r.Color, test.name)
		x, y := r.Matrix.Translation()
		require.Equal(t, 10.0, x, test.name)
		require.Equal(t, -2.0, y, test.name)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"unknown tag", app(header(0, 0, 0, 0, 0, 0), rawTag(99), endTag), ErrUnknownTag},
		{"legacy movie clip", app(header(0, 1, 0, 0, 0, 0), rawTag(codeMovieClip, uint16(1), uint8(30)), endTag), ErrUnsupportedLegacy},
		{"legacy movie clip 4", app(header(0, 1, 0, 0, 0, 0), rawTag(codeMovieClip4, uint16(1), uint8(30)), endTag), ErrUnsupportedLegacy},
		{"legacy fill", app(header(1, 0, 0, 0, 0, 0), rawTag(codeShape, uint16(1), uint16(1), rawTag(codeFillColor), endTag), endTag), ErrUnsupportedLegacy},
		{"short header", header(0, 0, 0, 0, 0, 0)[:7], ErrTruncated},
		{"missing end", header(0, 0, 0, 0, 0, 0), ErrTruncated},
		{"short tag", app(header(0, 0, 0, 0, 1, 0), uint8(codeMatrix), uint32(24), int32(0)), ErrTruncated},
		{"unfilled", app(header(1, 0, 0, 0, 0, 0), endTag), ErrTruncated},
		{"too many", app(header(0, 0, 0, 0, 0, 0), rawTag(codeMatrix, [6]int32{}), endTag), ErrTooMany},
		{"texture index", app(header(1, 0, 0, 0, 0, 0),
			rawTag(codeShape, uint16(1), uint16(1), rawTag(codeBitmap2, uint8(0), uint8(0)), endTag),
			endTag), ErrIndex},
		{"unresolved bind", app(header(0, 1, 0, 0, 0, 0),
			rawTag(codeMovieClip2, uint16(1), uint8(30), uint16(0), int32(0), uint16(1), uint16(7), uint8(0xFF), endTag),
			endTag), scfile.ErrUnresolvedExport},
		{"transform table", app(header(0, 1, 0, 0, 0, 0),
			rawTag(codeMovieClip3, uint16(1), uint8(30), uint16(1), int32(0), uint16(0),
				rawTag(codeFrame, uint16(1), uint8(0xFF)), endTag),
			endTag), ErrTransformTable},
		{"matrix index", app(header(0, 1, 0, 0, 0, 0),
			rawTag(codeMovieClip3, uint16(1), uint8(30), uint16(1), int32(1), uint16(0), uint16(3), uint16(0xFFFF), uint16(0),
				rawTag(codeFrame, uint16(1), uint8(0xFF)), endTag),
			endTag), ErrIndex},
		{"bank index", app(header(0, 1, 0, 0, 0, 0), rawTag(codeBankIndex, uint8(4)),
			rawTag(codeMovieClip3, uint16(1), uint8(30), uint16(0), int32(0), uint16(0), endTag),
			endTag), ErrIndex},
	}
	for _, test := range tests {
		_, _, err := Decoder{}.Decode(bytes.NewReader(test.data))
		require.ErrorIs(t, err, test.err, test.name)
	}
}

func TestDecodeErrorDetails(t *testing.T) {
	_, _, err := Decoder{}.Decode(bytes.NewReader(app(header(0, 0, 0, 0, 0, 0), rawTag(99), endTag)))
	var terr TagError
	require.ErrorAs(t, err, &terr)
	require.Equal(t, uint8(99), terr.Code)
	require.Equal(t, 0, terr.Index)
	var derr DataError
	require.ErrorAs(t, err, &derr)

	_, _, err = Decoder{}.Decode(bytes.NewReader(app(header(1, 0, 1, 0, 0, 0), endTag)))
	var trunc TruncatedError
	require.ErrorAs(t, err, &trunc)
	require.Equal(t, []error{
		UnfilledError{Kind: "texture", Index: 0},
		UnfilledError{Kind: "shape", Index: 0},
	}, []error(trunc.Unfilled))
}

func TestDecodeWarnings(t *testing.T) {
	data := app(uint16(0), uint16(0), uint16(0), uint16(0), uint16(0), uint16(0), [5]byte{0, 1}, uint16(0), endTag)
	doc, warn, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.ErrorIs(t, warn, ErrReserveNonZero)

	data = app(header(0, 0, 0, 0, 0, 0), endTag, uint8(1))
	_, warn, err = Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.ErrorIs(t, warn, ErrTrailingData)

	data = app(header(0, 0, 0, 0, 0, 0),
		rawTag(codeModifierCount, uint16(1)),
		rawTag(codeModifier, uint16(1)),
		rawTag(codeModifier3, uint16(2)),
		endTag,
	)
	doc, warn, err = Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.ErrorIs(t, warn, ErrModifierCount)
	require.Len(t, doc.Modifiers, 2)
	require.Equal(t, uint8(codeModifier3), doc.Modifiers[1].Variant)

	data = app(header(0, 0, 0, 0, 0, 0),
		rawTag(codeModifierCount, uint16(1)),
		rawTag(codeModifier, uint16(1)),
		rawTag(codeModifierCount, uint16(1)),
		rawTag(codeModifier2, uint16(2)),
		endTag,
	)
	doc, warn, err = Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.ErrorIs(t, warn, ErrModifierCount)
	require.Len(t, doc.Modifiers, 2)
	require.Equal(t, uint16(1), doc.Modifiers[0].ID)
	require.Equal(t, uint16(2), doc.Modifiers[1].ID)

	data = app(header(0, 0, 0, 0, 0, 0),
		rawTag(codeModifierCount, uint16(1)),
		rawTag(codeModifier, uint16(1)),
		rawTag(codeModifierCount, uint16(2)),
		rawTag(codeModifier, uint16(2)),
		endTag,
	)
	_, _, err = Decoder{}.Decode(bytes.NewReader(data))
	var trunc TruncatedError
	require.ErrorAs(t, err, &trunc)
	require.Equal(t, []error{UnfilledError{Kind: "modifier", Index: 2}}, []error(trunc.Unfilled))
}

func TestEncodeErrors(t *testing.T) {
	tex := newTestTexture()
	tex.Image = nil
	shape := &scfile.Shape{ID: 1}
	_, err := shape.AddBitmap(tex, []scfile.Point{{}}, []scfile.Point{{}})
	require.NoError(t, err)
	clip := scfile.NewMovieClip(2)
	clip.Bind(shape, 0, "")
	doc := &scfile.Document{}
	require.NoError(t, doc.CreateExport(clip, "x"))
	require.ErrorIs(t, Encoder{}.Encode(io.Discard, doc), ErrMissingImage)

	clip = scfile.NewMovieClip(2)
	clip.Variant = codeMovieClip4
	doc = &scfile.Document{}
	require.NoError(t, doc.CreateExport(clip, "x"))
	require.ErrorIs(t, Encoder{}.Encode(io.Discard, doc), ErrUnsupportedLegacy)

	clip = scfile.NewMovieClip(2)
	clip.Variant = codeShape2
	doc = &scfile.Document{}
	require.NoError(t, doc.CreateExport(clip, "x"))
	require.ErrorIs(t, Encoder{}.Encode(io.Discard, doc), ErrUnknownTag)

	shape = &scfile.Shape{ID: 1}
	b, err := shape.AddBitmap(newTestTexture(), make([]scfile.Point, 3), make([]scfile.Point, 3))
	require.NoError(t, err)
	b.Variant = codeBitmap
	clip = scfile.NewMovieClip(2)
	clip.Bind(shape, 0, "")
	doc = &scfile.Document{}
	require.NoError(t, doc.CreateExport(clip, "x"))
	require.ErrorIs(t, Encoder{}.Encode(io.Discard, doc), ErrBitmapPoints)

	clip = scfile.NewMovieClip(2)
	doc = &scfile.Document{}
	require.NoError(t, doc.CreateExport(clip, strings.Repeat("n", 300)))
	require.ErrorIs(t, Encoder{}.Encode(io.Discard, doc), ErrTextLength)
}

func TestEncodeOverflow(t *testing.T) {
	shape := &scfile.Shape{ID: 1}
	clip := scfile.NewMovieClip(2)
	clip.Bind(shape, 0, "")
	clip.Keyframe(0, 0, scfile.Translate(1e9, 0))
	doc := &scfile.Document{}
	require.NoError(t, doc.CreateExport(clip, "far"))
	var buf bytes.Buffer
	require.ErrorIs(t, Encoder{}.Encode(&buf, doc), ErrOverflow)
	require.Zero(t, buf.Len())

	clip = scfile.NewMovieClip(2)
	clip.Bind(shape, 0, "")
	clip.Keyframe(0, 0, scfile.Scale(3e6, 1))
	doc = &scfile.Document{}
	require.NoError(t, doc.CreateExport(clip, "wide"))
	require.ErrorIs(t, Encoder{}.Encode(io.Discard, doc), ErrOverflow)

	shape = &scfile.Shape{ID: 1}
	_, err := shape.AddBitmap(newTestTexture(),
		[]scfile.Point{{X: 0, Y: 0}, {X: math.Inf(-1), Y: 0}, {X: 0, Y: 1}},
		make([]scfile.Point, 3),
	)
	require.NoError(t, err)
	clip = scfile.NewMovieClip(2)
	clip.Bind(shape, 0, "")
	doc = &scfile.Document{}
	require.NoError(t, doc.CreateExport(clip, "edge"))
	require.ErrorIs(t, Encoder{}.Encode(io.Discard, doc), ErrOverflow)

	clip = scfile.NewMovieClip(2)
	clip.SetScalingGrid(0, 0, math.NaN(), 1)
	doc = &scfile.Document{}
	require.NoError(t, doc.CreateExport(clip, "grid"))
	require.ErrorIs(t, Encoder{}.Encode(io.Discard, doc), ErrOverflow)
}

// runs summarizes a list of tags as runs of equal codes, written as "code" or
// "code*count".
func runs(tags []tag) []string {
	var out []string
	for i := 0; i < len(tags); {
		j := i
		for j < len(tags) && tags[j].Code() == tags[i].Code() {
			j++
		}
		if j-i == 1 {
			out = append(out, strconv.Itoa(int(tags[i].Code())))
		} else {
			out = append(out, fmt.Sprintf("%d*%d", tags[i].Code(), j-i))
		}
		i = j
	}
	return out
}

func TestEncodeTagOrder(t *testing.T) {
	doc := newTestDocument(t)
	doc.HighRes = true
	doc.LowRes = true
	clip := doc.MovieClips[0]
	mod := &scfile.Modifier{ID: 3}
	clip.Bind(mod, 0, "")
	text := scfile.NewTextField(4)
	clip.Bind(text, 0, "")

	require.NoError(t, doc.Rebuild())
	model, err := scCodec{}.Encode(doc)
	require.NoError(t, err)
	require.Equal(t, []string{"23", "30", "1", "37", "38", "18", "7", "8", "9", "12"}, runs(model.Tags))
	require.Equal(t, []string{"22"}, runs(model.Tags[5].(*tagShape).Tags))
	require.Equal(t, []string{"11"}, runs(model.Tags[9].(*tagMovieClip).Tags))
}

func TestEncodeBanks(t *testing.T) {
	const distinct = 40000
	shape := &scfile.Shape{ID: 1}
	shared := scfile.NewMatrix()
	shared.Translate(7, 8)
	newClip := func(id uint16) *scfile.MovieClip {
		clip := scfile.NewMovieClip(id)
		clip.Bind(shape, 0, "")
		clip.Frames = make([]scfile.Frame, distinct+1)
		for i := 0; i < distinct; i++ {
			m := scfile.NewMatrix()
			m.Translate(float64(i), float64(id))
			clip.Frames[i].Resources = []scfile.Resource{{Bind: 0, Matrix: m}}
		}
		clip.Frames[distinct].Resources = []scfile.Resource{{Bind: 0, Matrix: shared}}
		return clip
	}
	first, second := newClip(2), newClip(3)
	doc := &scfile.Document{}
	require.NoError(t, doc.CreateExport(first, "first"))
	require.NoError(t, doc.CreateExport(second, "second"))

	require.NoError(t, doc.Rebuild())
	require.Len(t, doc.Banks, 2)
	require.Equal(t, 0, first.Bank)
	require.Equal(t, 1, second.Bank)

	model, err := scCodec{}.Encode(doc)
	require.NoError(t, err)
	require.Equal(t, []string{"18", "8*40001", "42", "8*40001", "12*2"}, runs(model.Tags))
	n := len(model.Tags)
	bank := model.Tags[distinct+2].(*tagBank)
	require.Equal(t, uint16(distinct+1), bank.MatrixCount)
	require.Zero(t, bank.ColorTransformCount)
	require.Equal(t, []string{"11*40001"}, runs(model.Tags[n-2].(*tagMovieClip).Tags))
	mc := model.Tags[n-1].(*tagMovieClip)
	require.Equal(t, []string{"41", "11*40001"}, runs(mc.Tags))
	require.Equal(t, uint8(1), mc.Tags[0].(*tagBankIndex).Index)
	require.Equal(t, uint16(0), mc.Transforms[0].Matrix)
	require.Equal(t, uint16(distinct), mc.Transforms[distinct].Matrix)

	var buf bytes.Buffer
	_, err = model.WriteTo(&buf)
	require.NoError(t, err)
	got := decode(t, buf.Bytes())
	require.Len(t, got.Banks, 2)
	require.Len(t, got.Banks[0].Matrices, distinct+1)
	require.Len(t, got.Banks[1].Matrices, distinct+1)
	for i, mc := range got.MovieClips {
		require.Equal(t, i, mc.Bank)
		bank := got.Banks[i]
		r, ok := mc.Frames[1].Resource(0)
		require.True(t, ok)
		require.Same(t, bank.Matrices[1], r.Matrix)
		x, y := r.Matrix.Translation()
		require.Equal(t, 1.0, x)
		require.Equal(t, float64(mc.ID), y)

		r, ok = mc.Frames[distinct].Resource(0)
		require.True(t, ok)
		require.Same(t, bank.Matrices[distinct], r.Matrix)
		x, y = r.Matrix.Translation()
		require.Equal(t, 7.0, x)
		require.Equal(t, 8.0, y)
	}
}

func TestExternalTexture(t *testing.T) {
	doc := newTestDocument(t)
	doc.ExternalTexture = true
	main := encode(t, doc)
	var tex bytes.Buffer
	require.NoError(t, Encoder{}.EncodeTextureFile(&tex, doc))

	d := Decoder{TextureFile: func() (io.Reader, error) {
		return bytes.NewReader(tex.Bytes()), nil
	}}
	got, warn, err := d.Decode(bytes.NewReader(main))
	require.NoError(t, err)
	require.NoError(t, warn)
	require.True(t, got.ExternalTexture)
	require.Len(t, got.Textures, 1)
	require.NotNil(t, got.Textures[0].Image)
	require.Equal(t, newTestTexture().Digest(), got.Textures[0].Digest())

	got = decode(t, main)
	require.Nil(t, got.Textures[0].Image)
	w, h := got.Textures[0].Size()
	require.Equal(t, 2, w)
	require.Equal(t, 2, h)
	require.Equal(t, []scfile.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}, got.Shapes[0].Bitmaps[0].UVs)

	textures, warn, err := Decoder{}.DecodeTextureFile(bytes.NewReader(tex.Bytes()))
	require.NoError(t, err)
	require.NoError(t, warn)
	require.Len(t, textures, 1)
	require.Equal(t, newTestTexture().Digest(), textures[0].Digest())

	var empty bytes.Buffer
	require.NoError(t, Encoder{}.EncodeTextureFile(&empty, &scfile.Document{}))
	require.Equal(t, endTag, empty.Bytes())
	d.TextureFile = func() (io.Reader, error) {
		return bytes.NewReader(empty.Bytes()), nil
	}
	_, _, err = d.Decode(bytes.NewReader(main))
	var cerr TextureCountError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, TextureCountError{Want: 1, Got: 0}, cerr)
	require.ErrorIs(t, err, ErrTextureCount)

	d.TextureFile = func() (io.Reader, error) {
		return bytes.NewReader(app(rawTag(codeShape2), endTag)), nil
	}
	_, _, err = d.Decode(bytes.NewReader(main))
	require.ErrorIs(t, err, ErrUnknownTag)
}

func TestTextureFileName(t *testing.T) {
	require.Equal(t, "ui_tex.sc", TextureFileName("ui.sc"))
	require.Equal(t, "assets/sc/ui_tex.sc", TextureFileName("assets/sc/ui.sc"))
	require.Equal(t, "noext_tex.sc", TextureFileName("noext"))
}

func TestDump(t *testing.T) {
	var out bytes.Buffer
	warn, err := Decoder{}.Dump(&out, bytes.NewReader(encode(t, newTestDocument(t))))
	require.NoError(t, err)
	require.NoError(t, warn)

	s := out.String()
	for _, want := range []string{
		"Textures: 1",
		"Exports: (count:1) {\n\t2: (len:4) \"hero\"",
		"tag 1 (texture) {",
		"tag 18 (shape) {",
		"tag 22 (bitmap) {",
		"tag 8 (matrix) [1024 0 0 1024 200 400]",
		"tag 9 (colortransform)",
		"tag 12 (movieclip) {",
		"0: bind:0 matrix:0 color:0",
		"tag 11 (frame) resources:1",
	} {
		require.Contains(t, s, want)
	}
}

func TestEncodeAtomic(t *testing.T) {
	clip := scfile.NewMovieClip(1)
	clip.Bind(nil, 0, "")
	doc := &scfile.Document{MovieClips: []*scfile.MovieClip{clip}}
	var buf bytes.Buffer
	err := Encoder{}.Encode(&buf, doc)
	require.True(t, errors.Is(err, scfile.ErrNilBind))
	require.Zero(t, buf.Len())
}
