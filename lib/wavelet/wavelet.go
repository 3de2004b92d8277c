// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

package wavelet

import (
	"errors"
	"fmt"
)

// Levels is the fixed decomposition depth. Every artifact produced by
// the encoder carries exactly one approximation band and Levels detail
// bands.
const Levels = 5

var (
	// ErrUnknownFamily reports a family identifier outside the
	// supported set.
	ErrUnknownFamily = errors.New("wavelet: unknown family")

	// ErrTooShort reports a signal too short for the fixed
	// decomposition depth under the family's filter length. The caller
	// (the family selector) treats this as a per-candidate failure,
	// not a fatal error.
	ErrTooShort = errors.New("wavelet: signal too short for decomposition depth")
)

// Decomposition is the output of a full Decompose call: one
// approximation band and Levels detail bands, coarsest first
// (Details[0] belongs to the deepest level, Details[Levels-1] to the
// first). Coefficients are float64; storage precision is decided by
// the container, not the transform.
type Decomposition struct {
	Approx  []float64
	Details [][]float64
}

// BandLengths returns the coefficient-vector lengths for a signal of
// length origLen decomposed at the fixed depth: the approximation
// length followed by the detail lengths coarsest first. The lengths are
// a pure function of origLen and the family's filter length, which is
// what lets the container omit explicit per-band lengths.
func BandLengths(origLen int, f Family) ([]int, error) {
	b, err := bank(f)
	if err != nil {
		return nil, err
	}
	if err := checkViable(origLen, b.length()); err != nil {
		return nil, err
	}

	lengths := make([]int, Levels+1)
	n := origLen
	for level := 1; level <= Levels; level++ {
		n = (n + b.length() - 1) / 2
		// Details are stored coarsest first: level 1 lands at the end.
		lengths[Levels+1-level] = n
	}
	lengths[0] = n // approximation has the deepest level's length
	return lengths, nil
}

// checkViable verifies that every one of the Levels decomposition steps
// sees an input of at least filterLen-1 samples, so a single symmetric
// reflection covers the filter support at every level.
func checkViable(origLen, filterLen int) error {
	n := origLen
	for level := 1; level <= Levels; level++ {
		if n < filterLen-1 {
			return fmt.Errorf("%w: level %d input %d < %d", ErrTooShort, level, n, filterLen-1)
		}
		n = (n + filterLen - 1) / 2
	}
	return nil
}

// Decompose runs the fixed-depth wavelet decomposition of signal under
// the given family. The input is widened to float64 before any
// filtering; no coefficient quantization happens here.
func Decompose(signal []float32, f Family) (*Decomposition, error) {
	b, err := bank(f)
	if err != nil {
		return nil, err
	}
	if err := checkViable(len(signal), b.length()); err != nil {
		return nil, err
	}

	current := make([]float64, len(signal))
	for i, v := range signal {
		current[i] = float64(v)
	}

	details := make([][]float64, Levels)
	for level := 1; level <= Levels; level++ {
		approx, detail := analyzeLevel(current, &b)
		details[Levels-level] = detail
		current = approx
	}

	return &Decomposition{Approx: current, Details: details}, nil
}

// Reconstruct inverts Decompose and trims the result to origLen. It is
// the exact mathematical inverse on unmodified coefficients; folding
// and denoising only ever alter the coefficient vectors before this
// point, never the transform itself.
func Reconstruct(d *Decomposition, f Family, origLen int) ([]float32, error) {
	b, err := bank(f)
	if err != nil {
		return nil, err
	}
	if len(d.Details) != Levels {
		return nil, fmt.Errorf("wavelet: expected %d detail bands, got %d", Levels, len(d.Details))
	}

	approx := d.Approx
	for _, detail := range d.Details {
		// Each synthesis step can overshoot by one sample when the
		// level below had odd length; the sibling detail band tells us.
		if len(approx) == len(detail)+1 {
			approx = approx[:len(detail)]
		}
		if len(approx) != len(detail) {
			return nil, fmt.Errorf("wavelet: band length mismatch: approx %d vs detail %d",
				len(approx), len(detail))
		}
		approx = synthesizeLevel(approx, detail, &b)
	}

	if len(approx) < origLen {
		return nil, fmt.Errorf("wavelet: reconstruction yielded %d samples, need %d",
			len(approx), origLen)
	}

	out := make([]float32, origLen)
	for i := 0; i < origLen; i++ {
		out[i] = float32(approx[i])
	}
	return out, nil
}

// analyzeLevel performs one decomposition step: symmetric half-sample
// extension by filterLen-1 on each side, convolution with both
// decomposition filters, and downsampling at the odd phase. Output
// bands have length floor((n + filterLen - 1) / 2).
func analyzeLevel(x []float64, b *filterBank) (approx, detail []float64) {
	n := len(x)
	flen := b.length()
	outLen := (n + flen - 1) / 2

	ext := extendSymmetric(x, flen-1)

	approx = make([]float64, outLen)
	detail = make([]float64, outLen)
	for i := 0; i < outLen; i++ {
		// Convolution sample at extended index (flen-1) + (2i+1).
		base := flen + 2*i
		var lo, hi float64
		for j := 0; j < flen; j++ {
			v := ext[base-j]
			lo += b.decLo[j] * v
			hi += b.decHi[j] * v
		}
		approx[i] = lo
		detail[i] = hi
	}
	return approx, detail
}

// synthesizeLevel performs one reconstruction step: upsample both
// bands, convolve with the reconstruction filters, sum, and trim
// filterLen-2 samples from each side. Output length is
// 2*len(approx) - filterLen + 2.
func synthesizeLevel(approx, detail []float64, b *filterBank) []float64 {
	m := len(approx)
	flen := b.length()
	outLen := 2*m - flen + 2

	out := make([]float64, outLen)
	for k := 0; k < outLen; k++ {
		// Full-convolution index into the upsampled coefficient
		// stream (coefficient i sits at position 2i).
		t := k + flen - 2
		var sum float64
		// Only even t-j positions carry coefficients.
		jStart := t % 2
		for j := jStart; j < flen; j += 2 {
			i := (t - j) / 2
			if i < 0 || i >= m {
				continue
			}
			sum += b.recLo[j]*approx[i] + b.recHi[j]*detail[i]
		}
		out[k] = sum
	}
	return out
}

// extendSymmetric returns x extended by pad samples of half-sample
// symmetric reflection on each side: [x2 x1 x0 | x0 x1 ... | xn-1 xn-2].
// Requires pad <= len(x), which checkViable guarantees per level.
func extendSymmetric(x []float64, pad int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*pad)
	for i := 0; i < pad; i++ {
		ext[pad-1-i] = x[i]
		ext[pad+n+i] = x[n-1-i]
	}
	copy(ext[pad:], x)
	return ext
}
