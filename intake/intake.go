// Package intake prepares raw directory blobs for parsing. Directory
// servers and archives serve documents zstd- or gzip-compressed; intake
// sniffs the compression from the blob's magic bytes and hands the
// parser plain bytes either way.
package intake

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Encoding identifies how a blob was compressed on the wire.
type Encoding uint8

const (
	EncodingPlain Encoding = iota
	EncodingGzip
	EncodingZstd
)

// String returns the wire name of the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingGzip:
		return "gzip"
	case EncodingZstd:
		return "zstd"
	default:
		return "identity"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectEncoding sniffs the compression format from a blob's leading
// magic bytes. Directory documents start with an ASCII keyword or '@',
// so the magic bytes cannot collide with plain content.
func DetectEncoding(blob []byte) Encoding {
	switch {
	case bytes.HasPrefix(blob, zstdMagic):
		return EncodingZstd
	case bytes.HasPrefix(blob, gzipMagic):
		return EncodingGzip
	default:
		return EncodingPlain
	}
}

// Decompress returns the plain bytes of blob, decompressing when the
// magic bytes say so. Plain blobs are returned as-is, not copied.
func Decompress(blob []byte) ([]byte, error) {
	switch DetectEncoding(blob) {
	case EncodingZstd:
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer decoder.Close()
		plain, err := decoder.DecodeAll(blob, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress zstd blob: %w", err)
		}
		return plain, nil
	case EncodingGzip:
		zr, err := gzip.NewReader(bytes.NewReader(blob))
		if err != nil {
			return nil, fmt.Errorf("decompress gzip blob: %w", err)
		}
		defer zr.Close()
		plain, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("decompress gzip blob: %w", err)
		}
		return plain, nil
	default:
		return blob, nil
	}
}

// ReadAll drains r and decompresses the result.
func ReadAll(r io.Reader) ([]byte, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return Decompress(blob)
}
