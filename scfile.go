// The scfile package handles the decoding, encoding, and manipulation of
// Supercell SWF asset documents.
//
// A Document holds the textures, shapes, text fields, and movie clips of a
// sprite atlas, along with the exports naming the entry points into the
// object graph. Movie clips bind child objects and animate them with a table
// of per-frame transforms. The matrices and color transforms referenced by
// frames live in capacity-bounded banks, which are owned by the document.
//
// Documents can be created manually through builder operations, or decoded
// from the binary format with the "sc" sub-package. Before encoding, the
// derived collections of a document (shapes, text fields, modifiers, and
// banks) are rebuilt from its movie clips with Rebuild.
package scfile

import (
	"errors"
)

// Document is the root of an asset document.
type Document struct {
	// Exports contains the named entry points of the document.
	Exports []Export

	// Textures contains the textures referred to by the bitmaps of shapes.
	Textures []*Texture

	// Shapes, TextFields, and Modifiers contain the renderable objects that
	// may be bound by movie clips. They are derived from MovieClips by
	// Rebuild.
	Shapes     []*Shape
	TextFields []*TextField
	Modifiers  []*Modifier

	// MovieClips contains every movie clip of the document.
	MovieClips []*MovieClip

	// Banks contains the pools of matrices and color transforms referred to
	// by the frames of movie clips. Bank 0 is the default bank.
	Banks []*Bank

	// HighRes indicates that high resolution assets are present.
	HighRes bool
	// LowRes indicates that low resolution assets are present.
	LowRes bool
	// ExternalTexture indicates that pixel data is stored in a separate
	// texture file.
	ExternalTexture bool
}

// Export is a named entry point that refers to an object by its ID.
type Export struct {
	ID   uint16
	Name string
}

// Object is a renderable object that can be bound by a movie clip.
type Object interface {
	// ObjectID returns the export ID of the object.
	ObjectID() uint16
}

// Modifier is a bindable marker object.
type Modifier struct {
	ID uint16

	// Variant is the tag code of the modifier, or 0 for the default.
	Variant uint8
}

func (m *Modifier) ObjectID() uint16 { return m.ID }

// Resolve returns the object with the given ID. Modifiers are searched
// first, followed by shapes, text fields, and movie clips. The first match is
// returned. Returns an UnresolvedError if no object has the ID.
func (doc *Document) Resolve(id uint16) (Object, error) {
	for _, m := range doc.Modifiers {
		if m.ID == id {
			return m, nil
		}
	}
	for _, s := range doc.Shapes {
		if s.ID == id {
			return s, nil
		}
	}
	for _, t := range doc.TextFields {
		if t.ID == id {
			return t, nil
		}
	}
	for _, c := range doc.MovieClips {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, UnresolvedError{ID: id}
}

// ExportByName returns the object referred to by the first export with the
// given name.
func (doc *Document) ExportByName(name string) (Object, error) {
	for _, e := range doc.Exports {
		if e.Name == name {
			return doc.Resolve(e.ID)
		}
	}
	return nil, ExportError{Name: name, Cause: ErrNoExport}
}

// ExportByID returns the object with the given ID, provided that an export
// refers to it.
func (doc *Document) ExportByID(id uint16) (Object, error) {
	for _, e := range doc.Exports {
		if e.ID == id {
			return doc.Resolve(id)
		}
	}
	return nil, UnresolvedError{ID: id}
}

// CreateExport adds an export of the given name that refers to clip. The
// clip is added to the document if it is not already present.
func (doc *Document) CreateExport(clip *MovieClip, name string) error {
	if clip == nil {
		return errors.New("nil movie clip")
	}
	doc.Exports = append(doc.Exports, Export{ID: clip.ID, Name: name})
	for _, c := range doc.MovieClips {
		if c == clip {
			return nil
		}
	}
	doc.MovieClips = append(doc.MovieClips, clip)
	return nil
}
