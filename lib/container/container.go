// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

// Package container defines the serialized coefficient container: the
// selected wavelet family, the folding record, and the coefficient byte
// streams for one encoded signal.
//
// The container stores no per-band lengths. Every coefficient-vector
// length is recomputed on decode from the original signal length and
// the family's filter length (wavelet.BandLengths), which keeps the
// serialization overhead near the fixed budget the MDL routing model
// assumes. Serialization is deterministic CBOR (lib/codec), so the same
// container always yields the same bytes — a requirement for the family
// selector's size comparisons.
package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/wavefold/wavefold/lib/codec"
	"github.com/wavefold/wavefold/lib/wavelet"
)

// Version is the current container format version.
const Version = 1

// ErrCorrupt reports a container that cannot be decoded: bad CBOR,
// unknown version, or payload lengths inconsistent with the recorded
// signal length and family.
var ErrCorrupt = errors.New("container: corrupt")

// Container is the wire record for one encoded signal. Payloads are
// little-endian float32. When Folded, Approx holds the concatenation
// of the left half and the antipodal delta (two equal-length halves
// whose length is floor(approxLen/2)); the seam is implied. When not
// folded, Approx holds the raw approximation band.
type Container struct {
	Version uint8  `cbor:"v"`
	Family  uint8  `cbor:"f"`
	Levels  uint8  `cbor:"l"`
	OrigLen uint64 `cbor:"n"`

	// Folded reports whether Approx is (left, delta) instead of the
	// raw band.
	Folded bool `cbor:"fold"`

	// Tail is the odd-length trailing element of a folded band,
	// stored verbatim. Nil unless Folded and the band length is odd.
	Tail *float32 `cbor:"tail,omitempty"`

	Approx  []byte   `cbor:"a"`
	Details [][]byte `cbor:"d"`
}

// New assembles a container from float64 coefficient vectors,
// quantizing them to float32 storage precision.
func New(family wavelet.Family, origLen int, folded bool, tail *float32, approx []float64, details [][]float64) *Container {
	c := &Container{
		Version: Version,
		Family:  uint8(family),
		Levels:  wavelet.Levels,
		OrigLen: uint64(origLen),
		Folded:  folded,
		Tail:    tail,
		Approx:  packFloat32(approx),
		Details: make([][]byte, len(details)),
	}
	for i, d := range details {
		c.Details[i] = packFloat32(d)
	}
	return c
}

// Marshal serializes the container deterministically.
func (c *Container) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

// Unmarshal parses and validates a container. Validation recomputes
// every expected payload length from OrigLen and Family; any mismatch
// is corruption.
func Unmarshal(data []byte) (*Container, error) {
	var c Container
	if err := codec.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Container) validate() error {
	if c.Version != Version {
		return fmt.Errorf("%w: unknown version %d", ErrCorrupt, c.Version)
	}
	if c.Levels != wavelet.Levels {
		return fmt.Errorf("%w: %d levels, want %d", ErrCorrupt, c.Levels, wavelet.Levels)
	}
	if c.OrigLen > math.MaxInt32 {
		return fmt.Errorf("%w: implausible signal length %d", ErrCorrupt, c.OrigLen)
	}

	lengths, err := wavelet.BandLengths(int(c.OrigLen), wavelet.Family(c.Family))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	approxLen := lengths[0]

	wantApprox := approxLen * 4
	if c.Folded {
		mid := approxLen / 2
		wantApprox = 2 * mid * 4
		if oddTail := approxLen%2 == 1; oddTail != (c.Tail != nil) {
			return fmt.Errorf("%w: tail presence inconsistent with band length %d", ErrCorrupt, approxLen)
		}
	} else if c.Tail != nil {
		return fmt.Errorf("%w: tail present without folding", ErrCorrupt)
	}
	if len(c.Approx) != wantApprox {
		return fmt.Errorf("%w: approx payload %d bytes, want %d", ErrCorrupt, len(c.Approx), wantApprox)
	}

	if len(c.Details) != wavelet.Levels {
		return fmt.Errorf("%w: %d detail payloads, want %d", ErrCorrupt, len(c.Details), wavelet.Levels)
	}
	for i, d := range c.Details {
		if len(d) != lengths[i+1]*4 {
			return fmt.Errorf("%w: detail payload %d is %d bytes, want %d",
				ErrCorrupt, i, len(d), lengths[i+1]*4)
		}
	}
	return nil
}

// ApproxVector returns the raw approximation band of an unfolded
// container as float64.
func (c *Container) ApproxVector() []float64 {
	return unpackFloat32(c.Approx)
}

// FoldedHalves splits the approx payload of a folded container into
// its left half and delta, as float64.
func (c *Container) FoldedHalves() (left, delta []float64) {
	half := len(c.Approx) / 2
	return unpackFloat32(c.Approx[:half]), unpackFloat32(c.Approx[half:])
}

// DetailVectors returns the detail bands as float64, coarsest first.
func (c *Container) DetailVectors() [][]float64 {
	out := make([][]float64, len(c.Details))
	for i, d := range c.Details {
		out[i] = unpackFloat32(d)
	}
	return out
}

// packFloat32 serializes a float64 vector as little-endian float32.
func packFloat32(v []float64) []byte {
	out := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(float32(x)))
	}
	return out
}

// unpackFloat32 reads little-endian float32 values into float64, the
// precision all downstream arithmetic uses.
func unpackFloat32(data []byte) []float64 {
	out := make([]float64, len(data)/4)
	for i := range out {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		out[i] = float64(math.Float32frombits(bits))
	}
	return out
}
