package sc

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	scfile "github.com/Fred-31/SupercellSWF-OLD"
	"github.com/Fred-31/SupercellSWF-OLD/errors"
	"github.com/anaminus/parse"
	"github.com/sirupsen/logrus"
)

// Decoder decodes a stream of bytes into a scfile.Document.
type Decoder struct {
	// TextureFile opens the external texture file of the decoded document. It
	// is called only if the document stores its pixel data externally. If
	// TextureFile is nil, the textures of such a document are decoded without
	// images. If the returned reader implements io.Closer, it is closed after
	// decoding.
	TextureFile func() (io.Reader, error)

	// Logger receives debug entries. If nil, nothing is logged.
	Logger logrus.FieldLogger
}

func logger(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return l
}

// Decode reads data from r and decodes it into a document according to the
// sc format. The data must be decompressed.
func (d Decoder) Decode(r io.Reader) (doc *scfile.Document, warn, err error) {
	if r == nil {
		return nil, nil, errors.New("nil reader")
	}
	log := logger(d.Logger)

	f, ws, err := d.decode(r, false)
	warn = errors.Union(warn, ws)
	if err != nil {
		return nil, warn, err
	}
	log.WithFields(logrus.Fields{
		"tags":       len(f.Tags),
		"exports":    len(f.ExportIDs),
		"textures":   f.TextureCount,
		"shapes":     f.ShapeCount,
		"textfields": f.TextFieldCount,
		"movieclips": f.MovieClipCount,
	}).Debug("decoded format")

	codec := scCodec{}
	if f.hasFlag(codeExternalTexture) && d.TextureFile != nil {
		textures, ws, err := d.decodeExternal(f)
		warn = errors.Union(warn, ws)
		if err != nil {
			return nil, warn, err
		}
		codec.External = textures
		log.WithField("textures", len(textures)).Debug("decoded external texture file")
	}

	doc, ws, err = codec.Decode(f)
	warn = errors.Union(warn, ws)
	if err != nil {
		return nil, warn, err
	}
	log.WithFields(logrus.Fields{
		"banks":     len(doc.Banks),
		"modifiers": len(doc.Modifiers),
	}).Debug("decoded document")
	return doc, warn, nil
}

func (d Decoder) decodeExternal(f *formatModel) (textures []*tagTexture, warn, err error) {
	r, err := d.TextureFile()
	if err != nil {
		return nil, nil, fmt.Errorf("open texture file: %w", err)
	}
	if r == nil {
		return nil, nil, errors.New("texture file: nil reader")
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	tf, warn, err := d.decode(r, true)
	if err != nil {
		return nil, warn, fmt.Errorf("texture file: %w", err)
	}
	if len(tf.Tags) != int(f.TextureCount) {
		return nil, warn, TextureCountError{Want: int(f.TextureCount), Got: len(tf.Tags)}
	}
	textures = make([]*tagTexture, len(tf.Tags))
	for i, t := range tf.Tags {
		textures[i] = t.(*tagTexture)
	}
	return textures, warn, nil
}

// DecodeTextureFile reads an external texture file from r and decodes its
// textures.
func (d Decoder) DecodeTextureFile(r io.Reader) (textures []*scfile.Texture, warn, err error) {
	if r == nil {
		return nil, nil, errors.New("nil reader")
	}

	f, warn, err := d.decode(r, true)
	if err != nil {
		return nil, warn, err
	}
	textures = make([]*scfile.Texture, len(f.Tags))
	for i, t := range f.Tags {
		if textures[i], err = decodeTextureData(t.(*tagTexture)); err != nil {
			return nil, warn, CodecError{Cause: tagError(i, t, err)}
		}
	}
	logger(d.Logger).WithField("textures", len(textures)).Debug("decoded texture file")
	return textures, warn, nil
}

// TextureFileName returns the name of the external texture file that
// accompanies the file at path.
func TextureFileName(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + TextureFileSuffix
}

func decodeError(r *parse.BinaryReader, err error) error {
	r.Add(0, err)
	err = r.Err()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		return DataError{Offset: r.N(), Cause: err}
	}
	return nil
}

// decode reads a format model from r. If textureFile is true, the data is
// read as an external texture file.
func (d Decoder) decode(r io.Reader, textureFile bool) (f *formatModel, warn, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	size := int64(len(data))

	f = &formatModel{TextureFile: textureFile}
	fr := parse.NewBinaryReader(bytes.NewReader(data))
	var warns errors.Errors

	gen := textureFileTags
	if !textureFile {
		gen = topLevelTags
		for _, count := range []*uint16{
			&f.ShapeCount,
			&f.MovieClipCount,
			&f.TextureCount,
			&f.TextFieldCount,
			&f.MatrixCount,
			&f.ColorTransformCount,
		} {
			if fr.Number(count) {
				return nil, nil, decodeError(fr, nil)
			}
		}

		if fr.Bytes(f.Reserved[:]) {
			return nil, nil, decodeError(fr, nil)
		}
		if f.Reserved != [5]byte{} {
			warns = append(warns, DataError{Offset: fr.N() - int64(len(f.Reserved)), Cause: ErrReserveNonZero})
		}

		var exports uint16
		if fr.Number(&exports) {
			return nil, warns.Return(), decodeError(fr, nil)
		}
		f.ExportIDs = make([]uint16, exports)
		for i := range f.ExportIDs {
			if fr.Number(&f.ExportIDs[i]) {
				return nil, warns.Return(), decodeError(fr, nil)
			}
		}
		f.ExportNames = make([]string, exports)
		for i := range f.ExportNames {
			if readText(fr, &f.ExportNames[i]) {
				return nil, warns.Return(), decodeError(fr, nil)
			}
		}
	}

	if f.Tags, _ = readTags(fr, size, gen); fr.Err() != nil {
		return nil, warns.Return(), decodeError(fr, nil)
	}
	if fr.N() < size {
		warns = append(warns, DataError{Offset: fr.N(), Cause: ErrTrailingData})
	}
	return f, warns.Return(), nil
}

// hasFlag returns whether the top-level tags contain a flag tag with the
// given code.
func (f *formatModel) hasFlag(code uint8) bool {
	for _, t := range f.Tags {
		if t, ok := t.(*tagFlag); ok && t.code == code {
			return true
		}
	}
	return false
}
