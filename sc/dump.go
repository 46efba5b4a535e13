package sc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/Fred-31/SupercellSWF-OLD/errors"
)

// Dump writes to w a readable representation of the binary format decoded from
// r. The external texture file is not loaded.
func (d Decoder) Dump(w io.Writer, r io.Reader) (warn, err error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	if w == nil {
		return nil, errors.New("nil writer")
	}

	f, warn, err := d.decode(r, false)
	if err != nil {
		return warn, err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Shapes: %d", f.ShapeCount)
	fmt.Fprintf(bw, "\nMovieClips: %d", f.MovieClipCount)
	fmt.Fprintf(bw, "\nTextures: %d", f.TextureCount)
	fmt.Fprintf(bw, "\nTextFields: %d", f.TextFieldCount)
	fmt.Fprintf(bw, "\nMatrices: %d", f.MatrixCount)
	fmt.Fprintf(bw, "\nColorTransforms: %d", f.ColorTransformCount)
	fmt.Fprintf(bw, "\nExports: (count:%d) {", len(f.ExportIDs))
	for i, id := range f.ExportIDs {
		dumpNewline(bw, 1)
		fmt.Fprintf(bw, "%d: ", id)
		dumpString(bw, 1, f.ExportNames[i])
	}
	fmt.Fprint(bw, "\n}")
	fmt.Fprintf(bw, "\nTags: (count:%d) {", len(f.Tags))
	for i, t := range f.Tags {
		dumpTag(bw, 1, i, t)
	}
	fmt.Fprint(bw, "\n}")

	return warn, bw.Flush()
}

func dumpTags(w *bufio.Writer, indent int, label string, tags []tag) {
	dumpNewline(w, indent)
	fmt.Fprintf(w, "%s: (count:%d) {", label, len(tags))
	for i, t := range tags {
		dumpTag(w, indent+1, i, t)
	}
	dumpNewline(w, indent)
	w.WriteByte('}')
}

func dumpTag(w *bufio.Writer, indent, i int, t tag) {
	dumpNewline(w, indent)
	if i >= 0 {
		fmt.Fprintf(w, "#%d: ", i)
	}
	fmt.Fprintf(w, "tag %d", t.Code())
	switch t := t.(type) {
	case *tagFlag:
		switch t.code {
		case codeHighRes:
			w.WriteString(" (highres)")
		case codeExternalTexture:
			w.WriteString(" (external texture)")
		case codeLowRes:
			w.WriteString(" (lowres)")
		}
		return

	case *tagTexture:
		w.WriteString(" (texture) {")
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Format: %d", t.Format)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Size: %dx%d", t.Width, t.Height)
		if t.Blocked() {
			w.WriteString(" (blocked)")
		}
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Data: (len:%d)", len(t.Data))

	case *tagShape:
		w.WriteString(" (shape) {")
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "ID: %d", t.ID)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "BitmapCount: %d", t.BitmapCount)
		if t.code == codeShape2 {
			dumpNewline(w, indent+1)
			fmt.Fprintf(w, "PointCount: %d", t.PointCount)
		}
		dumpTags(w, indent+1, "Tags", t.Tags)

	case *tagBitmap:
		w.WriteString(" (bitmap) {")
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Texture: %d", t.Texture)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Points: (count:%d) {", len(t.Points))
		for j, p := range t.Points {
			dumpNewline(w, indent+2)
			fmt.Fprintf(w, "%d: (%d, %d) uv (%d, %d)", j, p[0], p[1], t.UVs[j][0], t.UVs[j][1])
		}
		dumpNewline(w, indent+1)
		w.WriteByte('}')

	case *tagTextField:
		w.WriteString(" (textfield) {")
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "ID: %d", t.ID)
		dumpNewline(w, indent+1)
		w.WriteString("Font: ")
		dumpString(w, indent+1, t.Font)
		dumpNewline(w, indent+1)
		w.WriteString("Text: ")
		dumpString(w, indent+1, t.Text)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Color: % 02X", t.Color)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "FontSize: %d (width:%d)", t.FontSize, t.FontWidth)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Rect: %d, %d, %d, %d", t.Left, t.Top, t.Right, t.Bottom)
		if t.hasOutline() {
			dumpNewline(w, indent+1)
			fmt.Fprintf(w, "OutlineColor: % 02X", t.OutlineColor)
		}

	case *tagMatrix:
		fmt.Fprintf(w, " (matrix) [%d %d %d %d %d %d]", t.A, t.B, t.C, t.D, t.TX, t.TY)
		return

	case *tagColorTransform:
		fmt.Fprintf(w, " (colortransform) add % 02X mul % 02X", t.Add, t.Mul)
		return

	case *tagBank:
		fmt.Fprintf(w, " (bank) matrices:%d colortransforms:%d", t.MatrixCount, t.ColorTransformCount)
		return

	case *tagBankIndex:
		fmt.Fprintf(w, " (bankindex) %d", t.Index)
		return

	case *tagModifierCount:
		fmt.Fprintf(w, " (modifiercount) %d", t.Count)
		return

	case *tagModifier:
		fmt.Fprintf(w, " (modifier) %d", t.ID)
		return

	case *tagMovieClip:
		w.WriteString(" (movieclip) {")
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "ID: %d", t.ID)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "FrameRate: %d", t.FrameRate)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "FrameCount: %d", t.FrameCount)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Binds: (count:%d) {", len(t.Binds))
		for j, id := range t.Binds {
			dumpNewline(w, indent+2)
			fmt.Fprintf(w, "%d: %d", j, id)
			if t.hasBlends() {
				fmt.Fprintf(w, " (blend:%d)", t.Blends[j])
			}
			if t.Names[j] != "" {
				w.WriteByte(' ')
				dumpString(w, indent+2, t.Names[j])
			}
		}
		dumpNewline(w, indent+1)
		w.WriteByte('}')
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Transforms: (count:%d) {", len(t.Transforms))
		for j, ref := range t.Transforms {
			dumpNewline(w, indent+2)
			fmt.Fprintf(w, "%d: bind:%d matrix:%s color:%s", j, ref.Bind, dumpSlot(ref.Matrix), dumpSlot(ref.ColorTransform))
		}
		dumpNewline(w, indent+1)
		w.WriteByte('}')
		dumpTags(w, indent+1, "Tags", t.Tags)

	case *tagFrame:
		fmt.Fprintf(w, " (frame) resources:%d", t.ResourceCount)
		if t.Name != "" {
			w.WriteByte(' ')
			dumpString(w, indent, t.Name)
		}
		return

	case *tagScalingGrid:
		fmt.Fprintf(w, " (scalinggrid) %d, %d, %d, %d", t.X, t.Y, t.Width, t.Height)
		return

	default:
		return
	}
	dumpNewline(w, indent)
	w.WriteByte('}')
}

func dumpSlot(i uint16) string {
	if i == 0xFFFF {
		return "none"
	}
	return strconv.Itoa(int(i))
}

func dumpNewline(w *bufio.Writer, indent int) {
	w.WriteByte('\n')
	for i := 0; i < indent; i++ {
		w.WriteByte('\t')
	}
}

func dumpString(w *bufio.Writer, indent int, s string) {
	for _, r := range s {
		if !unicode.IsGraphic(r) {
			dumpBytes(w, indent, []byte(s))
			return
		}
	}
	fmt.Fprintf(w, "(len:%d) ", len(s))
	w.WriteString(strconv.Quote(s))
}

func dumpBytes(w *bufio.Writer, indent int, b []byte) {
	fmt.Fprintf(w, "(len:%d)", len(b))
	const width = 16
	for j := 0; j < len(b); j += width {
		dumpNewline(w, indent+1)
		w.WriteString("| ")
		for i := j; i < j+width; {
			if i < len(b) {
				s := strconv.FormatUint(uint64(b[i]), 16)
				if len(s) == 1 {
					w.WriteString("0")
				}
				w.WriteString(s)
			} else if len(b) < width {
				break
			} else {
				w.WriteString("  ")
			}
			i++
			if i%8 == 0 && i < j+width {
				w.WriteString("  ")
			} else {
				w.WriteString(" ")
			}
		}
		w.WriteString("|")
		n := len(b)
		if j+width < n {
			n = j + width
		}
		for i := j; i < n; i++ {
			if 32 <= b[i] && b[i] <= 126 {
				w.WriteRune(rune(b[i]))
			} else {
				w.WriteByte('.')
			}
		}
		w.WriteByte('|')
	}
}
