// Package compression resolves an ORC CompressionKind to a concrete codec.
// Every column writer owns a Compressor built from the shared configuration,
// so the whole tree compresses uniformly.
//
// Codec selection:
//   - ZLIB is raw deflate, as the ORC postscript defines it
//   - SNAPPY and ZSTD use the klauspost/compress implementations
//   - LZ4 uses the pierrec frame format
//   - LZO has no Go codec here and is rejected at configuration time
package compression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/skylarkdata/orcio/pkg/metadata"
	"github.com/skylarkdata/orcio/pkg/orcerrors"
)

// Compressor provides in-memory compression and decompression.
// All implementations are safe for concurrent use.
type Compressor interface {
	// Compress compresses data and returns the compressed bytes.
	// The input data is not modified.
	Compress(data []byte) ([]byte, error)

	// Decompress decompresses data and returns the original bytes.
	// The input data is not modified.
	Decompress(data []byte) ([]byte, error)

	// Kind returns the compression kind this codec implements.
	Kind() metadata.CompressionKind
}

// NewCompressor returns the codec for the given kind. LZO and unknown kinds
// are configuration errors.
func NewCompressor(kind metadata.CompressionKind) (Compressor, error) {
	switch kind {
	case metadata.NONE:
		return noneCompressor{}, nil
	case metadata.ZLIB:
		return flateCompressor{}, nil
	case metadata.SNAPPY:
		return snappyCompressor{}, nil
	case metadata.LZ4:
		return lz4Compressor{}, nil
	case metadata.ZSTD:
		return newZstdCompressor()
	case metadata.LZO:
		return nil, orcerrors.New(orcerrors.ErrorTypeConfig, "LZO compression is not supported")
	}
	return nil, orcerrors.Newf(orcerrors.ErrorTypeConfig, "unknown compression kind: %s", kind)
}

type noneCompressor struct{}

func (noneCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (noneCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }
func (noneCompressor) Kind() metadata.CompressionKind         { return metadata.NONE }

type flateCompressor struct{}

func (flateCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(data); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (flateCompressor) Decompress(data []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()
	return io.ReadAll(fr)
}

func (flateCompressor) Kind() metadata.CompressionKind { return metadata.ZLIB }

type snappyCompressor struct{}

func (snappyCompressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (snappyCompressor) Decompress(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}

func (snappyCompressor) Kind() metadata.CompressionKind { return metadata.SNAPPY }

type lz4Compressor struct{}

func (lz4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	lw := lz4.NewWriter(&buf)
	if _, err := lw.Write(data); err != nil {
		return nil, err
	}
	if err := lw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (lz4Compressor) Decompress(data []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}

func (lz4Compressor) Kind() metadata.CompressionKind { return metadata.LZ4 }

type zstdCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newZstdCompressor() (Compressor, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return zstdCompressor{encoder: encoder, decoder: decoder}, nil
}

func (c zstdCompressor) Compress(data []byte) ([]byte, error) {
	return c.encoder.EncodeAll(data, nil), nil
}

func (c zstdCompressor) Decompress(data []byte) ([]byte, error) {
	return c.decoder.DecodeAll(data, nil)
}

func (c zstdCompressor) Kind() metadata.CompressionKind { return metadata.ZSTD }
