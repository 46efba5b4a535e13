package sc

import (
	"bytes"
	"fmt"
	"io"

	scfile "github.com/Fred-31/SupercellSWF-OLD"
	"github.com/Fred-31/SupercellSWF-OLD/errors"
	"github.com/sirupsen/logrus"
)

// Encoder encodes a scfile.Document into a stream of bytes.
type Encoder struct {
	// Logger receives debug entries. If nil, nothing is logged.
	Logger logrus.FieldLogger
}

// Encode rebuilds the derived collections of doc, then writes the document
// to w according to the sc format. The output is not compressed.
//
// Nothing is written to w if an error occurs.
func (e Encoder) Encode(w io.Writer, doc *scfile.Document) error {
	if w == nil {
		return errors.New("nil writer")
	}
	if doc == nil {
		return errors.New("nil document")
	}
	log := logger(e.Logger)

	if err := doc.Rebuild(); err != nil {
		return fmt.Errorf("rebuild document: %w", err)
	}
	log.WithFields(logrus.Fields{
		"textures":   len(doc.Textures),
		"shapes":     len(doc.Shapes),
		"textfields": len(doc.TextFields),
		"modifiers":  len(doc.Modifiers),
		"movieclips": len(doc.MovieClips),
		"banks":      len(doc.Banks),
	}).Debug("rebuilt document")

	model, err := scCodec{}.Encode(doc)
	if err != nil {
		return err
	}
	log.WithField("tags", len(model.Tags)).Debug("encoded format")
	return writeModel(w, model)
}

// EncodeTextureFile writes the textures of doc to w as an external texture
// file. Every texture must have an image.
func (e Encoder) EncodeTextureFile(w io.Writer, doc *scfile.Document) error {
	if w == nil {
		return errors.New("nil writer")
	}
	model, err := scCodec{}.EncodeTextureFile(doc)
	if err != nil {
		return err
	}
	logger(e.Logger).WithField("textures", len(model.Tags)).Debug("encoded texture file")
	return writeModel(w, model)
}

func writeModel(w io.Writer, model *formatModel) error {
	var buf bytes.Buffer
	if _, err := model.WriteTo(&buf); err != nil {
		return DataError{Offset: -1, Cause: err}
	}
	_, err := buf.WriteTo(w)
	return err
}
