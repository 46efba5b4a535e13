package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	scfile "github.com/Fred-31/SupercellSWF-OLD"
	"github.com/Fred-31/SupercellSWF-OLD/compress"
	"github.com/Fred-31/SupercellSWF-OLD/sc"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	compressMethod string
	rewriteMethod  string
)

func init() {
	compressCmd.Flags().StringVarP(&compressMethod, "method", "m", compress.SCZstd.String(),
		"Compression method (none, lzma, sc, sczstd, zstd, lz4)")
	rewriteCmd.Flags().StringVarP(&rewriteMethod, "method", "m", "",
		"Compression method of the output; defaults to the method of the input")
}

var dumpCmd = &cobra.Command{
	Use:   "dump [INPUT] [OUTPUT]",
	Short: "Write a readable listing of every tag of a file",
	Long: `Reads an sc file from INPUT, and writes to OUTPUT a readable representation of
its header and tags. The input is decompressed first.

` + ioHelp,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, data, err := readInput(args)
		if err != nil {
			return err
		}
		data, _, err = decompressInput(name, data)
		if err != nil {
			return err
		}
		var out bytes.Buffer
		w, err := decoder("").Dump(&out, bytes.NewReader(data))
		warn("decode", w)
		if err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		out.WriteByte('\n')
		return writeOutput(args, out.Bytes())
	},
}

// TextureStats describes a texture of a document.
type TextureStats struct {
	Format string
	Width  int
	Height int
	// Digest is a hex-encoded fingerprint of the pixels, or empty if the
	// pixels were not loaded.
	Digest string `json:",omitempty"`
}

// BankStats describes a bank of a document.
type BankStats struct {
	Matrices        int
	ColorTransforms int
}

// Stats summarizes a document.
type Stats struct {
	Compression string

	HighRes         bool
	LowRes          bool
	ExternalTexture bool

	Exports    int
	Shapes     int
	Bitmaps    int
	Points     int
	TextFields int
	Modifiers  int
	MovieClips int
	Frames     int

	Textures []TextureStats
	Banks    []BankStats
}

// Fill sets the statistics of the given document.
func (s *Stats) Fill(doc *scfile.Document) {
	if doc == nil {
		return
	}
	s.HighRes = doc.HighRes
	s.LowRes = doc.LowRes
	s.ExternalTexture = doc.ExternalTexture

	s.Exports = len(doc.Exports)
	s.Shapes = len(doc.Shapes)
	for _, shape := range doc.Shapes {
		s.Bitmaps += len(shape.Bitmaps)
		s.Points += shape.PointCount()
	}
	s.TextFields = len(doc.TextFields)
	s.Modifiers = len(doc.Modifiers)
	s.MovieClips = len(doc.MovieClips)
	for _, mc := range doc.MovieClips {
		s.Frames += len(mc.Frames)
	}

	s.Textures = make([]TextureStats, len(doc.Textures))
	for i, tex := range doc.Textures {
		w, h := tex.Size()
		s.Textures[i] = TextureStats{Format: tex.Format.String(), Width: w, Height: h}
		if tex.Image != nil {
			digest := tex.Digest()
			s.Textures[i].Digest = hex.EncodeToString(digest[:])
		}
	}
	s.Banks = make([]BankStats, len(doc.Banks))
	for i, b := range doc.Banks {
		s.Banks[i] = BankStats{Matrices: len(b.Matrices), ColorTransforms: len(b.ColorTransforms)}
	}
}

var statCmd = &cobra.Command{
	Use:   "stat [INPUT] [OUTPUT]",
	Short: "Write statistics of a file as JSON",
	Long: `Reads an sc file from INPUT, and writes to OUTPUT statistics for the file. The
external texture file is loaded when present next to INPUT.

` + ioHelp,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, doc, m, err := loadDocument(args)
		if err != nil {
			return err
		}
		stats := Stats{Compression: m.String()}
		stats.Fill(doc)

		var out bytes.Buffer
		je := json.NewEncoder(&out)
		je.SetEscapeHTML(false)
		je.SetIndent("", "\t")
		if err := je.Encode(stats); err != nil {
			return fmt.Errorf("encode stats: %w", err)
		}
		return writeOutput(args, out.Bytes())
	},
}

var decompressCmd = &cobra.Command{
	Use:   "decompress [INPUT] [OUTPUT]",
	Short: "Remove the outer compression of a file",
	Long: `Reads a compressed file from INPUT, and writes to OUTPUT its decompressed
content. The compression method is detected.

` + ioHelp,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, data, err := readInput(args)
		if err != nil {
			return err
		}
		data, _, err = decompressInput(name, data)
		if err != nil {
			return err
		}
		return writeOutput(args, data)
	},
}

var compressCmd = &cobra.Command{
	Use:   "compress [INPUT] [OUTPUT]",
	Short: "Apply outer compression to a file",
	Long: `Reads a decompressed file from INPUT, and writes to OUTPUT the file compressed
with the given method.

` + ioHelp,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := compress.ParseMethod(compressMethod)
		if err != nil {
			return err
		}
		_, data, err := readInput(args)
		if err != nil {
			return err
		}
		if data, err = compress.Compress(m, data); err != nil {
			return fmt.Errorf("compress: %w", err)
		}
		return writeOutput(args, data)
	},
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite INPUT OUTPUT",
	Short: "Decode and re-encode a file",
	Long: `Reads an sc file from INPUT, decodes it, and encodes it again to OUTPUT. If the
document stores its pixels in an external texture file, and the pixels were
loaded, the texture file is written next to OUTPUT.

` + ioHelp,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, doc, m, err := loadDocument(args)
		if err != nil {
			return err
		}
		if rewriteMethod != "" {
			if m, err = compress.ParseMethod(rewriteMethod); err != nil {
				return err
			}
		}

		enc := sc.Encoder{Logger: log}
		var out bytes.Buffer
		if err := enc.Encode(&out, doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		data, err := compress.Compress(m, out.Bytes())
		if err != nil {
			return fmt.Errorf("compress: %w", err)
		}
		if err := writeOutput(args, data); err != nil {
			return err
		}

		if !doc.ExternalTexture || len(args) < 2 || args[1] == "-" || !texturesLoaded(doc) {
			return nil
		}
		out.Reset()
		if err := enc.EncodeTextureFile(&out, doc); err != nil {
			return fmt.Errorf("encode texture file: %w", err)
		}
		if data, err = compress.Compress(m, out.Bytes()); err != nil {
			return fmt.Errorf("compress texture file: %w", err)
		}
		texName := sc.TextureFileName(args[1])
		if err := os.WriteFile(texName, data, 0o666); err != nil {
			return fmt.Errorf("write texture file: %w", err)
		}
		log.WithFields(logrus.Fields{"file": texName, "textures": len(doc.Textures)}).Debug("wrote texture file")
		return nil
	},
}

func texturesLoaded(doc *scfile.Document) bool {
	for _, tex := range doc.Textures {
		if tex.Image == nil {
			return false
		}
	}
	return true
}
