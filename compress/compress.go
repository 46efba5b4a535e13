// Package compress implements the outer compression that wraps sc files.
//
// Files are usually stored behind an SC header: the signature "SC", a
// big-endian version, a big-endian hash length, and an MD5 hash of the
// uncompressed data. Version 1 is followed by an LZMA stream, and version 3
// by a zstd frame. Files may also be stored as a bare LZMA stream, a bare
// zstd frame, an LZ4 block, or uncompressed.
//
// Supercell's LZMA streams use a 9-byte header, where the uncompressed size
// occupies 4 bytes instead of 8.
package compress

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	lz4 "github.com/bkaradzic/go-lz4"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz/lzma"
)

// Method is a compression method.
type Method int

const (
	None   Method = iota // Uncompressed.
	LZMA                 // Bare LZMA stream.
	SC                   // SC header, version 1, with an LZMA stream.
	SCZstd               // SC header, version 3, with a zstd frame.
	Zstd                 // Bare zstd frame.
	LZ4                  // LZ4 block prefixed with its uncompressed length.
)

var methodNames = [...]string{
	None:   "none",
	LZMA:   "lzma",
	SC:     "sc",
	SCZstd: "sczstd",
	Zstd:   "zstd",
	LZ4:    "lz4",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "Method(" + fmt.Sprint(int(m)) + ")"
	}
	return methodNames[m]
}

// ParseMethod returns the method with the given name.
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if strings.EqualFold(s, name) {
			return Method(m), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

var (
	ErrUnknownMethod = errors.New("unknown compression method")
	ErrHeader        = errors.New("malformed compression header")
	ErrHash          = errors.New("hash does not match decompressed data")
)

// VersionError indicates an SC header with an unsupported version.
type VersionError uint32

func (err VersionError) Error() string {
	return fmt.Sprintf("unsupported SC version %d", uint32(err))
}

const (
	scSignature   = "SC"
	scHeaderSize  = 10
	scVersionLZMA = 1
	scVersionZstd = 3

	lzmaHeaderSize = 9
	lzmaProperties = 0x5D
	minDictSize    = 1 << 12
)

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Detect returns the method used to compress data. LZ4 blocks cannot be
// detected, and are reported as None.
func Detect(data []byte) Method {
	switch {
	case len(data) >= scHeaderSize && string(data[:2]) == scSignature:
		if binary.BigEndian.Uint32(data[2:6]) == scVersionZstd {
			return SCZstd
		}
		return SC
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case len(data) >= lzmaHeaderSize && data[0] == lzmaProperties &&
		validDictSize(binary.LittleEndian.Uint32(data[1:5])):
		return LZMA
	}
	return None
}

// validDictSize returns whether n is a dictionary size an LZMA encoder
// writes: 2^k or 3·2^k, from 4 KiB up to 3 GiB.
func validDictSize(n uint32) bool {
	if n < minDictSize {
		return false
	}
	for n&1 == 0 {
		n >>= 1
	}
	return n == 1 || n == 3
}

// Decompress detects the method used to compress data, and returns the
// decompressed data. A non-nil warning is returned if the hash of an SC
// header does not match the decompressed data.
//
// Data detected as a bare LZMA stream that fails to decompress is returned
// unchanged as None, with the failure as a warning, since uncompressed data
// can begin with the same bytes.
func Decompress(data []byte) (out []byte, m Method, warn, err error) {
	m = Detect(data)
	out, warn, err = DecompressMethod(m, data)
	if err != nil && m == LZMA {
		return data, None, fmt.Errorf("treated as uncompressed: %w", err), nil
	}
	return out, m, warn, err
}

// DecompressMethod decompresses data according to the given method.
func DecompressMethod(m Method, data []byte) (out []byte, warn, err error) {
	switch m {
	case None:
		return data, nil, nil
	case LZMA:
		out, err = decompressLZMA(data)
		return out, nil, err
	case SC, SCZstd:
		return decompressSC(data)
	case Zstd:
		out, err = decompressZstd(data)
		return out, nil, err
	case LZ4:
		out, err = decompressLZ4(data)
		return out, nil, err
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
}

// Compress compresses data according to the given method.
func Compress(m Method, data []byte) ([]byte, error) {
	switch m {
	case None:
		return data, nil
	case LZMA:
		return compressLZMA(data)
	case SC:
		payload, err := compressLZMA(data)
		if err != nil {
			return nil, err
		}
		return appendSC(scVersionLZMA, data, payload), nil
	case SCZstd:
		payload, err := compressZstd(data)
		if err != nil {
			return nil, err
		}
		return appendSC(scVersionZstd, data, payload), nil
	case Zstd:
		return compressZstd(data)
	case LZ4:
		return lz4.Encode(nil, data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
}

func appendSC(version uint32, data, payload []byte) []byte {
	hash := md5.Sum(data)
	out := make([]byte, 0, scHeaderSize+len(hash)+len(payload))
	out = append(out, scSignature...)
	out = binary.BigEndian.AppendUint32(out, version)
	out = binary.BigEndian.AppendUint32(out, uint32(len(hash)))
	out = append(out, hash[:]...)
	return append(out, payload...)
}

func decompressSC(data []byte) (out []byte, warn, err error) {
	if len(data) < scHeaderSize || string(data[:2]) != scSignature {
		return nil, nil, ErrHeader
	}
	version := binary.BigEndian.Uint32(data[2:6])
	hashLen := binary.BigEndian.Uint32(data[6:10])
	if uint64(hashLen) > uint64(len(data)-scHeaderSize) {
		return nil, nil, fmt.Errorf("%w: hash length %d", ErrHeader, hashLen)
	}
	hash := data[scHeaderSize : scHeaderSize+hashLen]
	payload := data[scHeaderSize+hashLen:]

	switch version {
	case scVersionLZMA:
		out, err = decompressLZMA(payload)
	case scVersionZstd:
		out, err = decompressZstd(payload)
	default:
		return nil, nil, VersionError(version)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(hash) == md5.Size {
		if sum := md5.Sum(out); !bytes.Equal(sum[:], hash) {
			warn = ErrHash
		}
	}
	return out, warn, nil
}

func compressLZMA(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	cfg := lzma.WriterConfig{
		SizeInHeader: true,
		Size:         int64(len(data)),
	}
	w, err := cfg.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("lzma: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lzma: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lzma: %w", err)
	}

	// Drop the upper half of the 8-byte size.
	b := buf.Bytes()
	out := make([]byte, 0, len(b)-4)
	out = append(out, b[:lzmaHeaderSize]...)
	return append(out, b[lzmaHeaderSize+4:]...), nil
}

func decompressLZMA(data []byte) ([]byte, error) {
	if len(data) < lzmaHeaderSize {
		return nil, ErrHeader
	}
	// Restore the 8-byte size of the standard header.
	b := make([]byte, 0, len(data)+4)
	b = append(b, data[:lzmaHeaderSize]...)
	b = append(b, 0, 0, 0, 0)
	b = append(b, data[lzmaHeaderSize:]...)

	r, err := lzma.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("lzma: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lzma: %w", err)
	}
	return out, nil
}

func compressZstd(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompressZstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return out, nil
}

func decompressLZ4(data []byte) ([]byte, error) {
	out, err := lz4.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	return out, nil
}
