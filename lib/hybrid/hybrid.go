// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

package hybrid

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wavefold/wavefold/lib/backend"
	"github.com/wavefold/wavefold/lib/container"
	"github.com/wavefold/wavefold/lib/denoise"
	"github.com/wavefold/wavefold/lib/fold"
	"github.com/wavefold/wavefold/lib/wavelet"
)

// ErrAllFamiliesFailed reports that no candidate family produced a
// valid decomposition — there is nothing to encode.
var ErrAllFamiliesFailed = errors.New("hybrid: no wavelet family succeeded")

// Encode compresses signal under cfg and returns the smallest artifact
// across the candidate families. Per-family trials are independent and
// run concurrently; a family that cannot decompose the signal is
// skipped. Ties in artifact size are broken by family declaration
// order.
func Encode(signal []float32, cfg Config) (*Artifact, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tag, err := cfg.backendTag()
	if err != nil {
		return nil, err
	}

	// One slot per family keeps the comparison deterministic no
	// matter which goroutine finishes first.
	artifacts := make([]*Artifact, len(cfg.Families))

	var wg sync.WaitGroup
	for i, family := range cfg.Families {
		i, family := i, family
		wg.Add(1)
		go func() {
			defer wg.Done()
			artifact, err := encodeOne(signal, family, tag, &cfg)
			if err != nil {
				// Recoverable per-candidate failure: this family is
				// simply absent from the size comparison.
				return
			}
			artifacts[i] = artifact
		}()
	}
	wg.Wait()

	var best *Artifact
	for _, artifact := range artifacts {
		if artifact == nil {
			continue
		}
		if best == nil || artifact.Size() < best.Size() {
			best = artifact
		}
	}
	if best == nil {
		return nil, ErrAllFamiliesFailed
	}
	return best, nil
}

// encodeOne runs the full pipeline for a single candidate family.
func encodeOne(signal []float32, family wavelet.Family, tag backend.Tag, cfg *Config) (*Artifact, error) {
	d, err := wavelet.Decompose(signal, family)
	if err != nil {
		return nil, err
	}

	// Quantize to the container's float32 storage precision before any
	// routing arithmetic, so the decision is made on the values decode
	// will actually see. The arithmetic itself stays in float64.
	quantize(d.Approx)
	for _, band := range d.Details {
		quantize(band)
	}

	decision := fold.Analyze(d.Approx, cfg.gate())

	var (
		folded bool
		tail   *float32
		approx []float64
	)
	if decision.Apply {
		left, delta, rec := fold.Forward(d.Approx)
		folded = true
		tail = rec.Tail
		approx = append(left, delta...)
	} else {
		approx = d.Approx
	}

	for _, band := range d.Details {
		denoise.Band(band)
	}

	c := container.New(family, len(signal), folded, tail, approx, d.Details)
	serialized, err := c.Marshal()
	if err != nil {
		return nil, fmt.Errorf("serializing container: %w", err)
	}

	compressed, err := backend.Compress(serialized, tag)
	if err != nil {
		return nil, fmt.Errorf("compressing container: %w", err)
	}

	return &Artifact{
		Backend:         tag,
		Family:          family,
		UncompressedLen: len(serialized),
		Compressed:      compressed,
	}, nil
}

// Decode reconstructs the signal from an artifact. The inverse is
// exact up to the intentional detail-band thresholding and float32
// storage precision.
func Decode(a *Artifact) ([]float32, error) {
	serialized, err := backend.Decompress(a.Compressed, a.Backend, a.UncompressedLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}

	c, err := container.Unmarshal(serialized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	if wavelet.Family(c.Family) != a.Family {
		return nil, fmt.Errorf("%w: container family %d does not match envelope %d",
			ErrCorruptArtifact, c.Family, uint8(a.Family))
	}

	var approx []float64
	if c.Folded {
		left, delta := c.FoldedHalves()
		approx = fold.Inverse(left, delta, fold.Record{
			Applied: true,
			Seam:    len(left),
			Tail:    c.Tail,
		})
	} else {
		approx = c.ApproxVector()
	}

	d := &wavelet.Decomposition{
		Approx:  approx,
		Details: c.DetailVectors(),
	}
	signal, err := wavelet.Reconstruct(d, a.Family, int(c.OrigLen))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	return signal, nil
}

// DecodeEnvelope parses an envelope and decodes it in one step.
func DecodeEnvelope(data []byte) ([]float32, error) {
	a, err := ParseEnvelope(data)
	if err != nil {
		return nil, err
	}
	return Decode(a)
}

// quantize rounds a float64 vector through float32, in place.
func quantize(v []float64) {
	for i := range v {
		v[i] = float64(float32(v[i]))
	}
}
