// The scfile command inspects and rewrites Supercell SWF asset files.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	scfile "github.com/Fred-31/SupercellSWF-OLD"
	"github.com/Fred-31/SupercellSWF-OLD/compress"
	"github.com/Fred-31/SupercellSWF-OLD/sc"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const ioHelp = `INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.`

var (
	verbose bool
	log     = logrus.New()
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information")
	rootCmd.AddCommand(dumpCmd, statCmd, decompressCmd, compressCmd, rewriteCmd)
}

var rootCmd = &cobra.Command{
	Use:           "scfile",
	Short:         "Inspect and rewrite Supercell SWF asset files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// readInput reads the file named by the first argument, or stdin.
func readInput(args []string) (name string, data []byte, err error) {
	if len(args) < 1 || args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", nil, fmt.Errorf("read input: %w", err)
		}
		return "", data, nil
	}
	data, err = os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("read input: %w", err)
	}
	return args[0], data, nil
}

// writeOutput writes data to the file named by the second argument, or
// stdout.
func writeOutput(args []string, data []byte) error {
	if len(args) < 2 || args[1] == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(args[1], data, 0o666); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func warn(what string, err error) {
	if err != nil {
		log.WithError(err).Warn(what)
	}
}

// decompressInput returns the decompressed content of data.
func decompressInput(name string, data []byte) ([]byte, compress.Method, error) {
	out, m, w, err := compress.Decompress(data)
	warn("decompress", w)
	if err != nil {
		return nil, m, fmt.Errorf("decompress: %w", err)
	}
	log.WithFields(logrus.Fields{
		"file":   name,
		"method": m,
		"size":   len(out),
	}).Debug("decompressed input")
	return out, m, nil
}

// decoder returns a decoder that loads the external texture file
// accompanying the named input, if any.
func decoder(name string) sc.Decoder {
	d := sc.Decoder{Logger: log}
	if name == "" {
		return d
	}
	d.TextureFile = func() (io.Reader, error) {
		texName := sc.TextureFileName(name)
		data, err := os.ReadFile(texName)
		if err != nil {
			return nil, err
		}
		data, _, err = decompressInput(texName, data)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
	return d
}

// loadDocument decodes the input into a document.
func loadDocument(args []string) (name string, doc *scfile.Document, m compress.Method, err error) {
	name, data, err := readInput(args)
	if err != nil {
		return "", nil, 0, err
	}
	data, m, err = decompressInput(name, data)
	if err != nil {
		return "", nil, 0, err
	}
	doc, w, err := decoder(name).Decode(bytes.NewReader(data))
	warn("decode", w)
	if err != nil {
		return "", nil, 0, fmt.Errorf("decode: %w", err)
	}
	return name, doc, m, nil
}
