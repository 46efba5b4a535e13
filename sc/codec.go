package sc

import (
	"fmt"
	"image/color"
	"math"

	scfile "github.com/Fred-31/SupercellSWF-OLD"
	"github.com/Fred-31/SupercellSWF-OLD/errors"
	"github.com/Fred-31/SupercellSWF-OLD/texture"
)

// scCodec converts between documents and format models.
type scCodec struct {
	// External contains the texture tags of the external texture file, or nil
	// if the file was not loaded.
	External []*tagTexture
}

func tagError(i int, t tag, err error) error {
	return TagError{Index: i, Code: t.Code(), Cause: err}
}

// unfilled appends an UnfilledError for each nil entry of list.
func unfilled[T any](errs errors.Errors, kind string, list []*T) errors.Errors {
	for i, v := range list {
		if v == nil {
			errs = append(errs, UnfilledError{Kind: kind, Index: i})
		}
	}
	return errs
}

// Decode converts a format model into a document.
//
// Decoding runs in two phases. Collections are allocated from the counts
// declared by the model, and each tag fills the next slot of its collection.
// Once every slot is confirmed to be filled, references between objects are
// resolved through lookup tables.
func (c scCodec) Decode(model *formatModel) (doc *scfile.Document, warn, err error) {
	if model == nil {
		panic("formatModel is nil")
	}
	if len(model.ExportIDs) != len(model.ExportNames) {
		return nil, nil, CodecError{Cause: errors.New("length of export names does not match export ids")}
	}
	var warns errors.Errors

	doc = new(scfile.Document)
	doc.Exports = make([]scfile.Export, len(model.ExportIDs))
	for i, id := range model.ExportIDs {
		doc.Exports[i] = scfile.Export{ID: id, Name: model.ExportNames[i]}
	}
	doc.Textures = make([]*scfile.Texture, model.TextureCount)
	doc.Shapes = make([]*scfile.Shape, model.ShapeCount)
	doc.TextFields = make([]*scfile.TextField, model.TextFieldCount)
	doc.MovieClips = make([]*scfile.MovieClip, model.MovieClipCount)
	doc.Banks = []*scfile.Bank{{
		Matrices:        make([]*scfile.Matrix, model.MatrixCount),
		ColorTransforms: make([]*scfile.ColorTransform, model.ColorTransformCount),
	}}

	// Tags with references, resolved after every collection is filled, along
	// with their positions in the tag list.
	shapes := make([]*tagShape, model.ShapeCount)
	shapeIndex := make([]int, model.ShapeCount)
	clips := make([]*tagMovieClip, model.MovieClipCount)
	clipIndex := make([]int, model.MovieClipCount)

	var (
		nTexture, nShape, nTextField, nClip, nModifier int
		nMatrix, nColor, modifierCounts               int
		bank                                          int
		nextBank                                      = -1
		truncated                                     errors.Errors
	)

	for i, t := range model.Tags {
		switch t := t.(type) {
		case *tagFlag:
			switch t.code {
			case codeHighRes:
				doc.HighRes = true
			case codeLowRes:
				doc.LowRes = true
			case codeExternalTexture:
				doc.ExternalTexture = true
			}

		case *tagTexture:
			if nTexture >= len(doc.Textures) {
				return nil, warns.Return(), tagError(i, t, ErrTooMany)
			}
			tex, err := c.decodeTexture(t, nTexture, doc.ExternalTexture)
			if err != nil {
				return nil, warns.Return(), tagError(i, t, err)
			}
			doc.Textures[nTexture] = tex
			nTexture++

		case *tagModifierCount:
			// A repeated count adds slots after the modifiers decoded so far.
			if modifierCounts > 0 {
				warns = append(warns, tagError(i, t, ErrModifierCount))
			}
			modifierCounts++
			doc.Modifiers = append(doc.Modifiers[:nModifier:nModifier], make([]*scfile.Modifier, t.Count)...)

		case *tagModifier:
			m := &scfile.Modifier{ID: t.ID, Variant: t.code}
			if nModifier < len(doc.Modifiers) {
				doc.Modifiers[nModifier] = m
			} else {
				if nModifier == len(doc.Modifiers) {
					warns = append(warns, tagError(i, t, ErrModifierCount))
				}
				doc.Modifiers = append(doc.Modifiers, m)
			}
			nModifier++

		case *tagShape:
			if nShape >= len(doc.Shapes) {
				return nil, warns.Return(), tagError(i, t, ErrTooMany)
			}
			if len(t.Tags) > int(t.BitmapCount) {
				return nil, warns.Return(), tagError(i, t, fmt.Errorf("bitmaps: %w", ErrTooMany))
			}
			for j := len(t.Tags); j < int(t.BitmapCount); j++ {
				truncated = append(truncated, UnfilledError{Kind: fmt.Sprintf("shape %d bitmap", t.ID), Index: j})
			}
			doc.Shapes[nShape] = &scfile.Shape{ID: t.ID, Variant: t.code}
			shapes[nShape], shapeIndex[nShape] = t, i
			nShape++

		case *tagTextField:
			if nTextField >= len(doc.TextFields) {
				return nil, warns.Return(), tagError(i, t, ErrTooMany)
			}
			doc.TextFields[nTextField] = decodeTextField(t)
			nTextField++

		case *tagBank:
			doc.Banks = append(doc.Banks, &scfile.Bank{
				Matrices:        make([]*scfile.Matrix, t.MatrixCount),
				ColorTransforms: make([]*scfile.ColorTransform, t.ColorTransformCount),
			})
			bank = len(doc.Banks) - 1
			nMatrix, nColor = 0, 0

		case *tagMatrix:
			b := doc.Banks[bank]
			if nMatrix >= len(b.Matrices) {
				return nil, warns.Return(), tagError(i, t, ErrTooMany)
			}
			b.Matrices[nMatrix] = &scfile.Matrix{
				A:  fromFixed(t.A),
				B:  fromFixed(t.B),
				C:  fromFixed(t.C),
				D:  fromFixed(t.D),
				TX: fromTwips(t.TX),
				TY: fromTwips(t.TY),
			}
			nMatrix++

		case *tagColorTransform:
			b := doc.Banks[bank]
			if nColor >= len(b.ColorTransforms) {
				return nil, warns.Return(), tagError(i, t, ErrTooMany)
			}
			b.ColorTransforms[nColor] = &scfile.ColorTransform{Add: t.Add, Mul: t.Mul}
			nColor++

		case *tagBankIndex:
			nextBank = int(t.Index)

		case *tagMovieClip:
			if nClip >= len(doc.MovieClips) {
				return nil, warns.Return(), tagError(i, t, ErrTooMany)
			}
			mc := &scfile.MovieClip{ID: t.ID, Variant: t.code, FrameRate: t.FrameRate}
			if nextBank >= 0 {
				mc.Bank = nextBank
				nextBank = -1
			}
			frames := 0
			for _, sub := range t.Tags {
				if _, ok := sub.(*tagFrame); ok {
					frames++
				}
			}
			if frames > int(t.FrameCount) {
				return nil, warns.Return(), tagError(i, t, fmt.Errorf("frames: %w", ErrTooMany))
			}
			for j := frames; j < int(t.FrameCount); j++ {
				truncated = append(truncated, UnfilledError{Kind: fmt.Sprintf("movie clip %d frame", t.ID), Index: j})
			}
			doc.MovieClips[nClip] = mc
			clips[nClip], clipIndex[nClip] = t, i
			nClip++

		default:
			return nil, warns.Return(), tagError(i, t, ErrUnknownTag)
		}
	}

	truncated = unfilled(truncated, "texture", doc.Textures)
	truncated = unfilled(truncated, "shape", doc.Shapes)
	truncated = unfilled(truncated, "text field", doc.TextFields)
	truncated = unfilled(truncated, "movie clip", doc.MovieClips)
	truncated = unfilled(truncated, "modifier", doc.Modifiers)
	for i, b := range doc.Banks {
		truncated = unfilled(truncated, fmt.Sprintf("bank %d matrix", i), b.Matrices)
		truncated = unfilled(truncated, fmt.Sprintf("bank %d color transform", i), b.ColorTransforms)
	}
	if len(truncated) > 0 {
		return nil, warns.Return(), TruncatedError{Unfilled: truncated}
	}

	// Objects by export ID. The first object in resolution order wins.
	objects := make(map[uint16]scfile.Object, len(doc.Modifiers)+len(doc.Shapes)+len(doc.TextFields)+len(doc.MovieClips))
	addObject := func(obj scfile.Object) {
		if _, ok := objects[obj.ObjectID()]; !ok {
			objects[obj.ObjectID()] = obj
		}
	}
	for _, m := range doc.Modifiers {
		addObject(m)
	}
	for _, s := range doc.Shapes {
		addObject(s)
	}
	for _, t := range doc.TextFields {
		addObject(t)
	}
	for _, mc := range doc.MovieClips {
		addObject(mc)
	}

	for i, t := range shapes {
		if err := decodeBitmaps(doc, doc.Shapes[i], t); err != nil {
			return nil, warns.Return(), tagError(shapeIndex[i], t, err)
		}
	}
	for i, t := range clips {
		if err := decodeMovieClip(doc, doc.MovieClips[i], t, objects); err != nil {
			return nil, warns.Return(), tagError(clipIndex[i], t, err)
		}
	}

	return doc, warns.Return(), nil
}

// decodeTexture converts the i-th texture tag. If the document stores pixel
// data externally, the data is taken from the external texture file when
// loaded.
func (c scCodec) decodeTexture(t *tagTexture, i int, external bool) (*scfile.Texture, error) {
	if external {
		if c.External == nil {
			return &scfile.Texture{
				Variant: t.code,
				Format:  texture.Format(t.Format),
				Width:   int(t.Width),
				Height:  int(t.Height),
			}, nil
		}
		if i >= len(c.External) {
			return nil, TextureCountError{Want: i + 1, Got: len(c.External)}
		}
		t = c.External[i]
	}
	return decodeTextureData(t)
}

func decodeTextureData(t *tagTexture) (*scfile.Texture, error) {
	tex := &scfile.Texture{
		Variant: t.code,
		Format:  texture.Format(t.Format),
		Width:   int(t.Width),
		Height:  int(t.Height),
	}
	order := texture.Linear
	if t.Blocked() {
		order = texture.Blocked
	}
	img, err := texture.Decode(tex.Format, tex.Width, tex.Height, t.Data, order)
	if err != nil {
		return nil, err
	}
	tex.Image = img
	return tex, nil
}

func rgba(c [4]uint8) color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func decodeTextField(t *tagTextField) *scfile.TextField {
	tf := &scfile.TextField{
		ID:         t.ID,
		Variant:    t.code,
		Text:       t.Text,
		Font:       t.Font,
		FontWidth:  t.FontWidth,
		FontSize:   t.FontSize,
		Color:      rgba(t.Color),
		Left:       t.Left,
		Top:        t.Top,
		Right:      t.Right,
		Bottom:     t.Bottom,
		Italic:     t.Italic,
		ANSI:       t.ANSI,
		ShiftJIS:   t.ShiftJIS,
		Flag4:      t.Flag4,
		Flag5:      t.Flag5,
		WideCodes:  t.WideCodes,
		Flag7:      t.Flag7,
		Transform1: t.Transform1,
		Transform2: t.Transform2,
		Transform3: t.Transform3,
	}
	if t.hasOutline() {
		tf.OutlineColor = rgba(t.OutlineColor)
	} else {
		tf.OutlineColor = color.NRGBA{A: 0xFF}
	}
	return tf
}

// fromUV converts a normalized texture coordinate to pixels.
func fromUV(v uint16, size int) float64 {
	return math.RoundToEven(float64(v) / 0xFFFF * float64(size))
}

// toUV converts a texture coordinate in pixels to its normalized form.
func toUV(v float64, size int) uint16 {
	if size <= 0 {
		return 0
	}
	n := math.RoundToEven(v * 0xFFFF / float64(size))
	switch {
	case n < 0:
		return 0
	case n > 0xFFFF:
		return 0xFFFF
	}
	return uint16(n)
}

func decodeBitmaps(doc *scfile.Document, s *scfile.Shape, t *tagShape) error {
	s.Bitmaps = make([]*scfile.Bitmap, 0, len(t.Tags))
	for j, sub := range t.Tags {
		bt, ok := sub.(*tagBitmap)
		if !ok {
			return fmt.Errorf("bitmap #%d: %w", j, ErrUnknownTag)
		}
		if int(bt.Texture) >= len(doc.Textures) {
			return fmt.Errorf("bitmap #%d: texture %d: %w", j, bt.Texture, ErrIndex)
		}
		tex := doc.Textures[bt.Texture]
		w, h := tex.Size()
		b := &scfile.Bitmap{
			Variant: bt.code,
			Texture: tex,
			Points:  make([]scfile.Point, len(bt.Points)),
			UVs:     make([]scfile.Point, len(bt.UVs)),
		}
		for k, p := range bt.Points {
			b.Points[k] = scfile.Point{X: fromTwips(p[0]), Y: fromTwips(p[1])}
		}
		for k, uv := range bt.UVs {
			b.UVs[k] = scfile.Point{X: fromUV(uv[0], w), Y: fromUV(uv[1], h)}
		}
		s.Bitmaps = append(s.Bitmaps, b)
	}
	return nil
}

func decodeMovieClip(doc *scfile.Document, mc *scfile.MovieClip, t *tagMovieClip, objects map[uint16]scfile.Object) error {
	var frames []*tagFrame
	for _, sub := range t.Tags {
		switch sub := sub.(type) {
		case *tagFrame:
			frames = append(frames, sub)
		case *tagBankIndex:
			mc.Bank = int(sub.Index)
		case *tagScalingGrid:
			mc.SetScalingGrid(
				fromTwips(sub.X),
				fromTwips(sub.Y),
				fromTwips(sub.Width),
				fromTwips(sub.Height),
			)
		}
	}
	if mc.Bank >= len(doc.Banks) {
		return fmt.Errorf("bank %d: %w", mc.Bank, ErrIndex)
	}
	bank := doc.Banks[mc.Bank]

	mc.Binds = make([]scfile.Bind, len(t.Binds))
	for j, id := range t.Binds {
		obj, ok := objects[id]
		if !ok {
			return fmt.Errorf("bind #%d: %w", j, scfile.UnresolvedError{ID: id})
		}
		mc.Binds[j] = scfile.Bind{Object: obj, Name: t.Names[j]}
		if t.hasBlends() {
			mc.Binds[j].Blend = t.Blends[j]
		}
	}

	mc.Frames = make([]scfile.Frame, len(frames))
	pos := 0
	for j, ft := range frames {
		n := int(ft.ResourceCount)
		if pos+n > len(t.Transforms) {
			return fmt.Errorf("frame #%d: %w", j, ErrTransformTable)
		}
		f := scfile.Frame{Name: ft.Name, Resources: make([]scfile.Resource, n)}
		for k, ref := range t.Transforms[pos : pos+n] {
			r := scfile.Resource{Bind: ref.Bind}
			if ref.Matrix != scfile.NoTransform {
				if r.Matrix = bank.Matrix(int(ref.Matrix)); r.Matrix == nil {
					return fmt.Errorf("frame #%d: matrix %d: %w", j, ref.Matrix, ErrIndex)
				}
			}
			if ref.ColorTransform != scfile.NoTransform {
				if r.Color = bank.ColorTransform(int(ref.ColorTransform)); r.Color == nil {
					return fmt.Errorf("frame #%d: color transform %d: %w", j, ref.ColorTransform, ErrIndex)
				}
			}
			f.Resources[k] = r
		}
		mc.Frames[j] = f
		pos += n
	}
	return nil
}

////////////////////////////////////////////////////////////////

// variantCode returns the tag code for an object variant. A variant of 0
// selects def. Returns an error if the variant is not a code of tag type T.
func variantCode[T tag](v, def uint8, gen tagGenerator) (uint8, error) {
	if v == 0 {
		return def, nil
	}
	if _, ok := gen(v).(T); !ok {
		return 0, TagError{Index: -1, Code: v, Cause: ErrUnknownTag}
	}
	return v, nil
}

// fixedConv converts values to their fixed-point fields, retaining an error
// for the first value that does not fit.
type fixedConv struct {
	err error
}

func (c *fixedConv) twips(v float64) int32 {
	n, ok := toTwips(v)
	c.check(ok, "length", v)
	return n
}

func (c *fixedConv) fixed(v float64) int32 {
	n, ok := toFixed(v)
	c.check(ok, "matrix component", v)
	return n
}

func (c *fixedConv) check(ok bool, what string, v float64) {
	if !ok && c.err == nil {
		c.err = fmt.Errorf("%s %g: %w", what, v, ErrOverflow)
	}
}

func count16(n int, what string) (uint16, error) {
	if n > 0xFFFF {
		return 0, fmt.Errorf("%s count %d: %w", what, n, ErrOverflow)
	}
	return uint16(n), nil
}

// Encode converts a document into a format model. The derived collections
// of the document must already be rebuilt.
func (c scCodec) Encode(doc *scfile.Document) (model *formatModel, err error) {
	if doc == nil {
		return nil, errors.New("Document is nil")
	}
	if len(doc.Banks) == 0 {
		return nil, CodecError{Cause: errors.New("document has no banks")}
	}

	model = new(formatModel)
	for _, v := range []struct {
		dst  *uint16
		n    int
		what string
	}{
		{&model.ShapeCount, len(doc.Shapes), "shape"},
		{&model.MovieClipCount, len(doc.MovieClips), "movie clip"},
		{&model.TextureCount, len(doc.Textures), "texture"},
		{&model.TextFieldCount, len(doc.TextFields), "text field"},
		{&model.MatrixCount, len(doc.Banks[0].Matrices), "matrix"},
		{&model.ColorTransformCount, len(doc.Banks[0].ColorTransforms), "color transform"},
	} {
		if *v.dst, err = count16(v.n, v.what); err != nil {
			return nil, CodecError{Cause: err}
		}
	}

	if _, err := count16(len(doc.Exports), "export"); err != nil {
		return nil, CodecError{Cause: err}
	}
	model.ExportIDs = make([]uint16, len(doc.Exports))
	model.ExportNames = make([]string, len(doc.Exports))
	for i, e := range doc.Exports {
		model.ExportIDs[i] = e.ID
		model.ExportNames[i] = e.Name
	}

	if doc.HighRes {
		model.Tags = append(model.Tags, &tagFlag{code: codeHighRes})
	}
	if doc.ExternalTexture {
		model.Tags = append(model.Tags, &tagFlag{code: codeExternalTexture})
	}
	if doc.LowRes {
		model.Tags = append(model.Tags, &tagFlag{code: codeLowRes})
	}

	textures := make(map[*scfile.Texture]int, len(doc.Textures))
	for i, tex := range doc.Textures {
		textures[tex] = i
		t, err := encodeTexture(tex, !doc.ExternalTexture)
		if err != nil {
			return nil, CodecError{Cause: fmt.Errorf("texture #%d: %w", i, err)}
		}
		model.Tags = append(model.Tags, t)
	}

	if len(doc.Modifiers) > 0 {
		n, err := count16(len(doc.Modifiers), "modifier")
		if err != nil {
			return nil, CodecError{Cause: err}
		}
		model.Tags = append(model.Tags, &tagModifierCount{Count: n})
		for _, m := range doc.Modifiers {
			code, err := variantCode[*tagModifier](m.Variant, defaultModifier, topLevelTags)
			if err != nil {
				return nil, CodecError{Cause: fmt.Errorf("modifier %d: %w", m.ID, err)}
			}
			model.Tags = append(model.Tags, &tagModifier{code: code, ID: m.ID})
		}
	}

	for _, s := range doc.Shapes {
		t, err := encodeShape(s, textures)
		if err != nil {
			return nil, CodecError{Cause: fmt.Errorf("shape %d: %w", s.ID, err)}
		}
		model.Tags = append(model.Tags, t)
	}

	for _, tf := range doc.TextFields {
		t, err := encodeTextField(tf)
		if err != nil {
			return nil, CodecError{Cause: fmt.Errorf("text field %d: %w", tf.ID, err)}
		}
		model.Tags = append(model.Tags, t)
	}

	type slots struct {
		matrices map[*scfile.Matrix]uint16
		colors   map[*scfile.ColorTransform]uint16
	}
	banks := make([]slots, len(doc.Banks))
	for i, b := range doc.Banks {
		if len(b.Matrices) > scfile.BankCapacity || len(b.ColorTransforms) > scfile.BankCapacity {
			return nil, CodecError{Cause: fmt.Errorf("bank %d: %w", i, scfile.ErrBankOverflow)}
		}
		if i > 0 {
			model.Tags = append(model.Tags, &tagBank{
				MatrixCount:         uint16(len(b.Matrices)),
				ColorTransformCount: uint16(len(b.ColorTransforms)),
			})
		}
		banks[i] = slots{
			matrices: make(map[*scfile.Matrix]uint16, len(b.Matrices)),
			colors:   make(map[*scfile.ColorTransform]uint16, len(b.ColorTransforms)),
		}
		for j, m := range b.Matrices {
			if _, ok := banks[i].matrices[m]; !ok {
				banks[i].matrices[m] = uint16(j)
			}
			var conv fixedConv
			model.Tags = append(model.Tags, &tagMatrix{
				A:  conv.fixed(m.A),
				B:  conv.fixed(m.B),
				C:  conv.fixed(m.C),
				D:  conv.fixed(m.D),
				TX: conv.twips(m.TX),
				TY: conv.twips(m.TY),
			})
			if conv.err != nil {
				return nil, CodecError{Cause: fmt.Errorf("bank %d: matrix #%d: %w", i, j, conv.err)}
			}
		}
		for j, ct := range b.ColorTransforms {
			if _, ok := banks[i].colors[ct]; !ok {
				banks[i].colors[ct] = uint16(j)
			}
			model.Tags = append(model.Tags, &tagColorTransform{Add: ct.Add, Mul: ct.Mul})
		}
	}

	for _, mc := range doc.MovieClips {
		if mc.Bank < 0 || mc.Bank >= len(banks) {
			return nil, CodecError{Cause: fmt.Errorf("movie clip %d: bank %d: %w", mc.ID, mc.Bank, ErrIndex)}
		}
		b := banks[mc.Bank]
		t, err := encodeMovieClip(mc, b.matrices, b.colors)
		if err != nil {
			return nil, CodecError{Cause: fmt.Errorf("movie clip %d: %w", mc.ID, err)}
		}
		model.Tags = append(model.Tags, t)
	}

	return model, nil
}

// EncodeTextureFile converts the textures of a document into the model of an
// external texture file.
func (c scCodec) EncodeTextureFile(doc *scfile.Document) (model *formatModel, err error) {
	if doc == nil {
		return nil, errors.New("Document is nil")
	}
	model = &formatModel{TextureFile: true}
	for i, tex := range doc.Textures {
		t, err := encodeTexture(tex, true)
		if err != nil {
			return nil, CodecError{Cause: fmt.Errorf("texture #%d: %w", i, err)}
		}
		model.Tags = append(model.Tags, t)
	}
	return model, nil
}

func encodeTexture(tex *scfile.Texture, withData bool) (*tagTexture, error) {
	code, err := variantCode[*tagTexture](tex.Variant, defaultTexture, topLevelTags)
	if err != nil {
		return nil, err
	}
	w, h := tex.Size()
	if w > 0xFFFF || h > 0xFFFF {
		return nil, fmt.Errorf("size %dx%d: %w", w, h, ErrOverflow)
	}
	t := &tagTexture{
		code:   code,
		Format: uint8(tex.Format),
		Width:  uint16(w),
		Height: uint16(h),
	}
	if !withData {
		return t, nil
	}
	if tex.Image == nil {
		return nil, ErrMissingImage
	}
	order := texture.Linear
	if t.Blocked() {
		order = texture.Blocked
	}
	if t.Data, err = texture.Encode(tex.Format, tex.Image, order); err != nil {
		return nil, err
	}
	return t, nil
}

func encodeShape(s *scfile.Shape, textures map[*scfile.Texture]int) (*tagShape, error) {
	code, err := variantCode[*tagShape](s.Variant, defaultShape, topLevelTags)
	if err != nil {
		return nil, err
	}
	t := &tagShape{code: code, ID: s.ID}
	if t.BitmapCount, err = count16(len(s.Bitmaps), "bitmap"); err != nil {
		return nil, err
	}
	if t.PointCount, err = count16(s.PointCount(), "point"); err != nil {
		return nil, err
	}
	for j, b := range s.Bitmaps {
		code, err := variantCode[*tagBitmap](b.Variant, defaultBitmap, shapeTags)
		if err != nil {
			return nil, fmt.Errorf("bitmap #%d: %w", j, err)
		}
		if b.Texture == nil {
			return nil, scfile.BitmapError{Shape: s.ID, Index: j, Cause: scfile.ErrMissingTexture}
		}
		if len(b.Points) != len(b.UVs) {
			return nil, scfile.BitmapError{Shape: s.ID, Index: j, Cause: scfile.ErrVertexUVCount}
		}
		index, ok := textures[b.Texture]
		if !ok || index > 0xFF {
			return nil, fmt.Errorf("bitmap #%d: texture: %w", j, ErrIndex)
		}
		w, h := b.Texture.Size()
		bt := &tagBitmap{
			code:    code,
			Texture: uint8(index),
			Points:  make([][2]int32, len(b.Points)),
			UVs:     make([][2]uint16, len(b.UVs)),
		}
		var conv fixedConv
		for k, p := range b.Points {
			bt.Points[k] = [2]int32{conv.twips(p.X), conv.twips(p.Y)}
		}
		if conv.err != nil {
			return nil, fmt.Errorf("bitmap #%d: %w", j, conv.err)
		}
		for k, uv := range b.UVs {
			bt.UVs[k] = [2]uint16{toUV(uv.X, w), toUV(uv.Y, h)}
		}
		t.Tags = append(t.Tags, bt)
	}
	return t, nil
}

func encodeTextField(tf *scfile.TextField) (*tagTextField, error) {
	code, err := variantCode[*tagTextField](tf.Variant, defaultTextField, topLevelTags)
	if err != nil {
		return nil, err
	}
	return &tagTextField{
		code:         code,
		ID:           tf.ID,
		Font:         tf.Font,
		Color:        [4]uint8{tf.Color.R, tf.Color.G, tf.Color.B, tf.Color.A},
		Italic:       tf.Italic,
		ANSI:         tf.ANSI,
		ShiftJIS:     tf.ShiftJIS,
		Flag4:        tf.Flag4,
		FontWidth:    tf.FontWidth,
		FontSize:     tf.FontSize,
		Left:         tf.Left,
		Top:          tf.Top,
		Right:        tf.Right,
		Bottom:       tf.Bottom,
		Flag5:        tf.Flag5,
		Text:         tf.Text,
		WideCodes:    tf.WideCodes,
		OutlineColor: [4]uint8{tf.OutlineColor.R, tf.OutlineColor.G, tf.OutlineColor.B, tf.OutlineColor.A},
		Transform1:   tf.Transform1,
		Transform2:   tf.Transform2,
		Transform3:   tf.Transform3,
		Flag7:        tf.Flag7,
	}, nil
}

func encodeMovieClip(mc *scfile.MovieClip, matrices map[*scfile.Matrix]uint16, colors map[*scfile.ColorTransform]uint16) (*tagMovieClip, error) {
	code, err := variantCode[*tagMovieClip](mc.Variant, defaultMovieClip, topLevelTags)
	if err != nil {
		return nil, err
	}
	if code == codeMovieClip || code == codeMovieClip4 {
		return nil, ErrUnsupportedLegacy
	}
	t := &tagMovieClip{code: code, ID: mc.ID, FrameRate: mc.FrameRate}
	if t.FrameCount, err = count16(len(mc.Frames), "frame"); err != nil {
		return nil, err
	}
	if _, err = count16(len(mc.Binds), "bind"); err != nil {
		return nil, err
	}

	t.Binds = make([]uint16, len(mc.Binds))
	t.Names = make([]string, len(mc.Binds))
	if t.hasBlends() {
		t.Blends = make([]uint8, len(mc.Binds))
	}
	for j, bind := range mc.Binds {
		if bind.Object == nil {
			return nil, scfile.BindError{Clip: mc.ID, Index: j, Cause: scfile.ErrNilBind}
		}
		t.Binds[j] = bind.Object.ObjectID()
		t.Names[j] = bind.Name
		if t.hasBlends() {
			t.Blends[j] = bind.Blend
		}
	}

	if mc.Bank != 0 {
		if mc.Bank > 0xFF {
			return nil, fmt.Errorf("bank index %d: %w", mc.Bank, ErrOverflow)
		}
		t.Tags = append(t.Tags, &tagBankIndex{Index: uint8(mc.Bank)})
	}
	for j, f := range mc.Frames {
		n, err := count16(len(f.Resources), "resource")
		if err != nil {
			return nil, fmt.Errorf("frame #%d: %w", j, err)
		}
		for _, r := range f.Resources {
			ref := transformRef{
				Bind:           r.Bind,
				Matrix:         scfile.NoTransform,
				ColorTransform: scfile.NoTransform,
			}
			if r.Matrix != nil {
				i, ok := matrices[r.Matrix]
				if !ok {
					return nil, fmt.Errorf("frame #%d: matrix not in bank %d: %w", j, mc.Bank, ErrIndex)
				}
				ref.Matrix = i
			}
			if r.Color != nil {
				i, ok := colors[r.Color]
				if !ok {
					return nil, fmt.Errorf("frame #%d: color transform not in bank %d: %w", j, mc.Bank, ErrIndex)
				}
				ref.ColorTransform = i
			}
			t.Transforms = append(t.Transforms, ref)
		}
		t.Tags = append(t.Tags, &tagFrame{ResourceCount: n, Name: f.Name})
	}
	if g := mc.ScalingGrid; g != nil {
		var conv fixedConv
		t.Tags = append(t.Tags, &tagScalingGrid{
			X:      conv.twips(g.X),
			Y:      conv.twips(g.Y),
			Width:  conv.twips(g.Width),
			Height: conv.twips(g.Height),
		})
		if conv.err != nil {
			return nil, fmt.Errorf("scaling grid: %w", conv.err)
		}
	}
	return t, nil
}
