// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

package denoise

import (
	"math"
	"testing"
)

func TestThreshold(t *testing.T) {
	tests := []struct {
		name string
		band []float64
		want float64
	}{
		{"empty", nil, 0},
		{"odd", []float64{-3, 1, 2}, 2 * 2.0 / 0.6745},
		{"even", []float64{-4, 1, 2, 3}, 2 * 2.5 / 0.6745},
		{"constant", []float64{0.5, 0.5, -0.5}, 2 * 0.5 / 0.6745},
		{"zeros", []float64{0, 0, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Threshold(tt.band)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Threshold = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestSoft(t *testing.T) {
	d := []float64{-3, -1, -0.5, 0, 0.5, 1, 3}
	Soft(d, 1)

	want := []float64{-2, 0, 0, 0, 0, 0, 2}
	for i := range want {
		if d[i] != want[i] {
			t.Errorf("d[%d] = %g, want %g", i, d[i], want[i])
		}
	}
}

func TestSoftPreservesSignAndOrder(t *testing.T) {
	d := []float64{-5, -2, 2, 5}
	Soft(d, 0.75)
	for i, v := range d {
		if v == 0 {
			continue
		}
		if (v < 0) != (i < 2) {
			t.Errorf("sign flipped at %d: %g", i, v)
		}
	}
	if d[0] != -4.25 || d[3] != 4.25 {
		t.Errorf("shrinkage wrong: %v", d)
	}
}

func TestBandKillsNoiseFloor(t *testing.T) {
	// A band that is mostly small noise with a few large spikes:
	// the MAD threshold should zero the noise and keep the spikes.
	d := make([]float64, 1000)
	for i := range d {
		d[i] = 0.01 * math.Sin(float64(i))
	}
	d[100] = 5
	d[500] = -7

	threshold := Band(d)
	if threshold <= 0.01 {
		t.Fatalf("threshold %g too small for noise floor", threshold)
	}
	if d[100] == 0 || d[500] == 0 {
		t.Error("spikes should survive thresholding")
	}
	zeros := 0
	for _, v := range d {
		if v == 0 {
			zeros++
		}
	}
	if zeros < 900 {
		t.Errorf("only %d of 1000 noise coefficients zeroed", zeros)
	}
}
