package sc

import (
	"math"

	"github.com/anaminus/parse"
)

// nullText is the length prefix of absent text.
const nullText = 0xFF

// readText reads length-prefixed text. Absent text is read as an empty
// string.
func readText(f *parse.BinaryReader, data *string) (failed bool) {
	if f.Err() != nil {
		return true
	}

	var length uint8
	if f.Number(&length) {
		return true
	}
	if length == nullText {
		*data = ""
		return false
	}

	s := make([]byte, length)
	if f.Bytes(s) {
		return true
	}

	*data = string(s)

	return false
}

// writeText writes length-prefixed text. An empty string is written as absent
// text.
func writeText(f *parse.BinaryWriter, data string) (failed bool) {
	if f.Err() != nil {
		return true
	}

	if len(data) == 0 {
		return f.Number(uint8(nullText))
	}
	if len(data) >= nullText {
		return f.Add(0, ErrTextLength)
	}

	if f.Number(uint8(len(data))) {
		return true
	}

	return f.Bytes([]byte(data))
}

func readBool(f *parse.BinaryReader, data *bool) (failed bool) {
	var b uint8
	if f.Number(&b) {
		return true
	}
	*data = b != 0
	return false
}

func writeBool(f *parse.BinaryWriter, data bool) (failed bool) {
	var b uint8
	if data {
		b = 1
	}
	return f.Number(b)
}

// readBGRA reads a color stored as blue, green, red, alpha into RGBA order.
func readBGRA(f *parse.BinaryReader, c *[4]uint8) (failed bool) {
	var b [4]uint8
	if f.Bytes(b[:]) {
		return true
	}
	*c = [4]uint8{b[2], b[1], b[0], b[3]}
	return false
}

// writeBGRA writes a color in RGBA order as blue, green, red, alpha.
func writeBGRA(f *parse.BinaryWriter, c [4]uint8) (failed bool) {
	return f.Bytes([]byte{c[2], c[1], c[0], c[3]})
}

// readBGR reads a color stored as blue, green, red into RGB order.
func readBGR(f *parse.BinaryReader, c *[3]uint8) (failed bool) {
	var b [3]uint8
	if f.Bytes(b[:]) {
		return true
	}
	*c = [3]uint8{b[2], b[1], b[0]}
	return false
}

// writeBGR writes a color in RGB order as blue, green, red.
func writeBGR(f *parse.BinaryWriter, c [3]uint8) (failed bool) {
	return f.Bytes([]byte{c[2], c[1], c[0]})
}

// toTwips converts a length to twips, 1/20 of a pixel. Returns false if the
// result does not fit in 32 bits.
func toTwips(v float64) (int32, bool) {
	return toInt32(v * 20)
}

func fromTwips(v int32) float64 {
	return float64(v) / 20
}

// toFixed converts a matrix component to fixed-point with 10 fractional
// bits.
func toFixed(v float64) (int32, bool) {
	return toInt32(v * 1024)
}

func fromFixed(v int32) float64 {
	return float64(v) / 1024
}

func toInt32(v float64) (int32, bool) {
	r := math.RoundToEven(v)
	// Also rejects NaN.
	if !(r >= math.MinInt32 && r <= math.MaxInt32) {
		return 0, false
	}
	return int32(r), true
}
