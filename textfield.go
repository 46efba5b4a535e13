package scfile

import (
	"image/color"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// TextField is a renderable block of text.
type TextField struct {
	ID uint16

	// Variant is the tag code of the text field, or 0 for the default. Later
	// variants carry additional fields; fields not carried by the variant are
	// not encoded.
	Variant uint8

	// Text holds the raw bytes of the text, in the encoding selected by the
	// ANSI and ShiftJIS flags. An empty text is encoded as absent.
	Text string

	Font      string
	FontWidth uint8
	FontSize  uint8

	Color        color.NRGBA
	OutlineColor color.NRGBA

	// Left, Top, Right, and Bottom are the edges of the layout rectangle.
	Left, Top, Right, Bottom int16

	Italic    bool
	ANSI      bool
	ShiftJIS  bool
	Flag4     bool
	Flag5     bool
	WideCodes bool
	Flag7     bool

	Transform1 int16
	Transform2 int16
	Transform3 int16
}

// NewTextField returns a text field with a white font color and a black
// outline.
func NewTextField(id uint16) *TextField {
	return &TextField{
		ID:           id,
		Color:        color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		OutlineColor: color.NRGBA{A: 0xFF},
	}
}

func (t *TextField) ObjectID() uint16 { return t.ID }

func (t *TextField) encoding() encoding.Encoding {
	switch {
	case t.ShiftJIS:
		return japanese.ShiftJIS
	case t.ANSI:
		return charmap.Windows1252
	}
	return encoding.Nop
}

// DecodeText returns Text converted to UTF-8.
func (t *TextField) DecodeText() (string, error) {
	return t.encoding().NewDecoder().String(t.Text)
}

// EncodeText sets Text to s, converted from UTF-8 to the encoding of the
// text field.
func (t *TextField) EncodeText(s string) error {
	text, err := t.encoding().NewEncoder().String(s)
	if err != nil {
		return err
	}
	t.Text = text
	return nil
}
