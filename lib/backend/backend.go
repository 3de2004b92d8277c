// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

// Package backend provides the pluggable byte compressor applied to the
// serialized coefficient container.
//
// Backends are identified by a 1-byte tag stored in the artifact
// envelope so decode selects the matching decompressor without
// guessing. Zstd at maximum level is the preferred backend; gzip is the
// universally available fallback; LZ4 trades ratio for speed. All
// backends guarantee an exact byte round-trip and are safe for
// concurrent use across family trials.
package backend

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Tag identifies a compression backend. Tags are stored in artifact
// envelopes (1 byte) — these values are protocol constants.
type Tag uint8

const (
	// Zstd is zstd at maximum compression level. Preferred backend:
	// best ratio on coefficient payloads.
	Zstd Tag = 1

	// Gzip is DEFLATE at maximum level. Universal fallback with a
	// somewhat lower ratio than zstd.
	Gzip Tag = 2

	// LZ4 is block-mode LZ4. Much faster, noticeably lower ratio.
	LZ4 Tag = 3
)

var (
	// ErrUnknownTag reports a tag outside the supported set, typically
	// from a corrupt or newer-format artifact.
	ErrUnknownTag = errors.New("backend: unknown compression tag")

	// ErrUnavailable reports that no requested backend is usable.
	ErrUnavailable = errors.New("backend: no compression backend available")
)

// String returns the human-readable name of a tag.
func (t Tag) String() string {
	switch t {
	case Zstd:
		return "zstd"
	case Gzip:
		return "gzip"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// ParseTag parses a tag from its string representation.
func ParseTag(name string) (Tag, error) {
	switch name {
	case "zstd":
		return Zstd, nil
	case "gzip":
		return Gzip, nil
	case "lz4":
		return LZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTag, name)
	}
}

// Available reports whether a backend can be used in this process. All
// three are pure Go and always compiled in; the hook exists so the
// selection contract (preferred, then fallback) stays explicit and
// testable.
func Available(t Tag) bool {
	switch t {
	case Zstd:
		return zstdEncoder != nil && zstdDecoder != nil
	case Gzip, LZ4:
		return true
	}
	return false
}

// Default returns the preferred available backend: zstd, falling back
// to gzip. ErrUnavailable is returned only if neither can be used.
func Default() (Tag, error) {
	if Available(Zstd) {
		return Zstd, nil
	}
	if Available(Gzip) {
		return Gzip, nil
	}
	return 0, ErrUnavailable
}

// Compress compresses data with the given backend. The output is
// always kept, even when larger than the input — the family selector
// compares final sizes across candidates, so "incompressible" is not a
// special case here.
func Compress(data []byte, t Tag) ([]byte, error) {
	switch t {
	case Zstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	case Gzip:
		return compressGzip(data)
	case LZ4:
		return compressLZ4(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, t)
	}
}

// Decompress reverses Compress. The uncompressedSize must match the
// original length exactly — it is carried in the artifact envelope and
// a mismatch is reported as an error.
func Decompress(compressed []byte, t Tag, uncompressedSize int) ([]byte, error) {
	switch t {
	case Zstd:
		return decompressZstd(compressed, uncompressedSize)
	case Gzip:
		return decompressGzip(compressed, uncompressedSize)
	case LZ4:
		return decompressLZ4(compressed, uncompressedSize)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, t)
	}
}

// zstdEncoder and zstdDecoder are shared across calls and concurrent
// family trials; zstd.Encoder and zstd.Decoder are safe for concurrent
// use via EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
	)
	if err != nil {
		panic("backend: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("backend: zstd decoder initialization failed: " + err.Error())
	}
}

func decompressZstd(compressed []byte, uncompressedSize int) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, uncompressedSize))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != uncompressedSize {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), uncompressedSize)
	}
	return result, nil
}

func compressGzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	return buf.Bytes(), nil
}

func decompressGzip(compressed []byte, uncompressedSize int) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	defer r.Close()

	result := make([]byte, uncompressedSize)
	if _, err := io.ReadFull(r, result); err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	// Exactly uncompressedSize bytes must remain.
	if n, _ := r.Read(make([]byte, 1)); n != 0 {
		return nil, fmt.Errorf("gzip decompress: more than %d bytes", uncompressedSize)
	}
	return result, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(data))
	destination := make([]byte, bound)

	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if written == 0 {
		// CompressBlock signals incompressible data with 0; store the
		// input raw behind a 1-byte marker so the round-trip holds.
		out := make([]byte, 1+len(data))
		out[0] = 0
		copy(out[1:], data)
		return out, nil
	}
	out := make([]byte, 1+written)
	out[0] = 1
	copy(out[1:], destination[:written])
	return out, nil
}

func decompressLZ4(compressed []byte, uncompressedSize int) ([]byte, error) {
	if len(compressed) == 0 {
		return nil, fmt.Errorf("lz4 decompress: empty input")
	}
	switch compressed[0] {
	case 0:
		if len(compressed)-1 != uncompressedSize {
			return nil, fmt.Errorf("lz4 decompress: raw block %d bytes, expected %d",
				len(compressed)-1, uncompressedSize)
		}
		out := make([]byte, uncompressedSize)
		copy(out, compressed[1:])
		return out, nil
	case 1:
		destination := make([]byte, uncompressedSize)
		read, err := lz4.UncompressBlock(compressed[1:], destination)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != uncompressedSize {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, uncompressedSize)
		}
		return destination, nil
	default:
		return nil, fmt.Errorf("lz4 decompress: bad block marker %d", compressed[0])
	}
}
