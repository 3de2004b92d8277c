// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

// Package denoise applies adaptive soft-thresholding to wavelet detail
// bands.
//
// The threshold is a robust noise-scale estimate: twice the median
// absolute deviation of the band, rescaled by the 0.6745 Gaussian
// consistency constant. Each detail band gets its own threshold. The
// step is intentionally lossy — decode uses the thresholded
// coefficients as-is, there is no inverse.
package denoise

import (
	"math"
	"sort"
)

// madScale converts a median absolute deviation into a Gaussian
// standard-deviation estimate (Phi^-1(0.75)).
const madScale = 0.6745

// thresholdFactor scales the noise estimate into the shrinkage amount.
const thresholdFactor = 2.0

// Threshold computes the soft-thresholding level for a detail band:
// 2 * median(|d|) / 0.6745. All arithmetic is float64 regardless of the
// band's storage precision. An empty band yields zero.
func Threshold(d []float64) float64 {
	if len(d) == 0 {
		return 0
	}
	abs := make([]float64, len(d))
	for i, v := range d {
		abs[i] = math.Abs(v)
	}
	sort.Float64s(abs)

	var median float64
	mid := len(abs) / 2
	if len(abs)%2 == 1 {
		median = abs[mid]
	} else {
		median = (abs[mid-1] + abs[mid]) / 2
	}
	return thresholdFactor * median / madScale
}

// Soft shrinks d in place by t: each value becomes
// sign(y) * max(|y| - t, 0).
func Soft(d []float64, t float64) {
	for i, y := range d {
		mag := math.Abs(y) - t
		if mag <= 0 {
			d[i] = 0
			continue
		}
		if y < 0 {
			d[i] = -mag
		} else {
			d[i] = mag
		}
	}
}

// Band computes the band's threshold and applies it in place,
// returning the threshold used.
func Band(d []float64) float64 {
	t := Threshold(d)
	Soft(d, t)
	return t
}
