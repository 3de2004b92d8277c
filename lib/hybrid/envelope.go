// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

package hybrid

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/wavefold/wavefold/lib/backend"
	"github.com/wavefold/wavefold/lib/wavelet"
)

// ErrCorruptArtifact reports an artifact that cannot be decoded: bad
// envelope framing, unknown backend or family tag, checksum mismatch,
// or an inconsistent container. Decode-time errors are always fatal —
// there is no partial decode.
var ErrCorruptArtifact = errors.New("hybrid: corrupt artifact")

// envelopeMagic identifies a Wavefold artifact envelope (format 1).
var envelopeMagic = [4]byte{'W', 'V', 'F', '1'}

// checksumSize is the size of the BLAKE3 digest guarding the
// compressed payload.
const checksumSize = 32

// headerSize is the fixed envelope overhead before the payload:
// magic, backend tag, family tag, uncompressed container length,
// checksum.
const headerSize = 4 + 1 + 1 + 8 + checksumSize

// Artifact is the result of one encode call: the winning family, the
// backend that compressed the serialized container, and the compressed
// bytes. Artifacts are immutable once created.
type Artifact struct {
	// Backend identifies the compressor to use on decode.
	Backend backend.Tag

	// Family is the winning wavelet family. Decode performs no
	// family search.
	Family wavelet.Family

	// UncompressedLen is the serialized container length before
	// compression.
	UncompressedLen int

	// Compressed is the backend's output over the serialized
	// container.
	Compressed []byte
}

// Size returns the envelope size in bytes: the number the family
// selector minimizes plus the fixed header.
func (a *Artifact) Size() int {
	return headerSize + len(a.Compressed)
}

// Envelope serializes the artifact: magic, backend tag, family tag,
// big-endian uncompressed length, BLAKE3 checksum of the compressed
// payload, payload.
func (a *Artifact) Envelope() []byte {
	out := make([]byte, headerSize+len(a.Compressed))
	copy(out[0:4], envelopeMagic[:])
	out[4] = byte(a.Backend)
	out[5] = byte(a.Family)
	binary.BigEndian.PutUint64(out[6:14], uint64(a.UncompressedLen))
	sum := blake3.Sum256(a.Compressed)
	copy(out[14:14+checksumSize], sum[:])
	copy(out[headerSize:], a.Compressed)
	return out
}

// ParseEnvelope parses and verifies an envelope. The checksum is
// verified before anything touches the payload, so backend decompressor
// errors only ever indicate bugs, not bit rot.
func ParseEnvelope(data []byte) (*Artifact, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: envelope truncated at %d bytes", ErrCorruptArtifact, len(data))
	}
	if !bytes.Equal(data[0:4], envelopeMagic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptArtifact)
	}

	a := &Artifact{
		Backend: backend.Tag(data[4]),
		Family:  wavelet.Family(data[5]),
	}
	if !backend.Available(a.Backend) {
		return nil, fmt.Errorf("%w: unknown backend tag %d", ErrCorruptArtifact, data[4])
	}
	if !a.Family.Valid() {
		return nil, fmt.Errorf("%w: unknown family tag %d", ErrCorruptArtifact, data[5])
	}

	length := binary.BigEndian.Uint64(data[6:14])
	const maxContainer = 1 << 32
	if length > maxContainer {
		return nil, fmt.Errorf("%w: implausible container length %d", ErrCorruptArtifact, length)
	}
	a.UncompressedLen = int(length)

	payload := data[headerSize:]
	sum := blake3.Sum256(payload)
	if !bytes.Equal(sum[:], data[14:14+checksumSize]) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptArtifact)
	}

	a.Compressed = make([]byte, len(payload))
	copy(a.Compressed, payload)
	return a, nil
}
