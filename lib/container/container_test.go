// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/wavefold/wavefold/lib/wavelet"
)

// buildBands returns synthetic coefficient vectors with the exact band
// lengths of a given signal length and family.
func buildBands(t *testing.T, origLen int, family wavelet.Family) (approx []float64, details [][]float64) {
	t.Helper()
	lengths, err := wavelet.BandLengths(origLen, family)
	if err != nil {
		t.Fatalf("BandLengths failed: %v", err)
	}
	approx = make([]float64, lengths[0])
	for i := range approx {
		approx[i] = math.Sin(float64(i) * 0.1)
	}
	details = make([][]float64, wavelet.Levels)
	for level := range details {
		details[level] = make([]float64, lengths[level+1])
		for i := range details[level] {
			details[level][i] = 0.01 * math.Cos(float64(level*1000+i))
		}
	}
	return approx, details
}

func TestRoundTripUnfolded(t *testing.T) {
	approx, details := buildBands(t, 20000, wavelet.DB4)

	c := New(wavelet.DB4, 20000, false, nil, approx, details)
	data, err := c.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	parsed, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	got := parsed.ApproxVector()
	if len(got) != len(approx) {
		t.Fatalf("approx length %d, want %d", len(got), len(approx))
	}
	for i := range approx {
		if got[i] != float64(float32(approx[i])) {
			t.Fatalf("approx[%d] = %g, want float32 quantization of %g", i, got[i], approx[i])
		}
	}

	gotDetails := parsed.DetailVectors()
	for level := range details {
		for i := range details[level] {
			if gotDetails[level][i] != float64(float32(details[level][i])) {
				t.Fatalf("detail[%d][%d] round-trip mismatch", level, i)
			}
		}
	}
}

func TestRoundTripFolded(t *testing.T) {
	lengths, err := wavelet.BandLengths(20000, wavelet.Sym8)
	if err != nil {
		t.Fatal(err)
	}
	approxLen := lengths[0]
	mid := approxLen / 2

	left := make([]float64, mid)
	delta := make([]float64, mid)
	for i := range left {
		left[i] = math.Sin(float64(i) * 0.01)
		delta[i] = 1e-4 * float64(i%7)
	}

	var tail *float32
	if approxLen%2 == 1 {
		v := float32(0.625)
		tail = &v
	}

	_, details := buildBands(t, 20000, wavelet.Sym8)
	c := New(wavelet.Sym8, 20000, true, tail, append(append([]float64{}, left...), delta...), details)

	data, err := c.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	parsed, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !parsed.Folded {
		t.Fatal("Folded flag lost")
	}

	gotLeft, gotDelta := parsed.FoldedHalves()
	if len(gotLeft) != mid || len(gotDelta) != mid {
		t.Fatalf("halves %d/%d, want %d/%d", len(gotLeft), len(gotDelta), mid, mid)
	}
	for i := range left {
		if gotLeft[i] != float64(float32(left[i])) || gotDelta[i] != float64(float32(delta[i])) {
			t.Fatalf("halves mismatch at %d", i)
		}
	}
	if (tail == nil) != (parsed.Tail == nil) {
		t.Fatal("tail presence lost")
	}
	if tail != nil && *parsed.Tail != *tail {
		t.Errorf("tail = %g, want %g", *parsed.Tail, *tail)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	approx, details := buildBands(t, 777, wavelet.Bior44)
	c := New(wavelet.Bior44, 777, false, nil, approx, details)

	first, err := c.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := c.Marshal()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, again) {
			t.Fatal("Marshal is not deterministic")
		}
	}
}

func TestUnmarshalRejectsCorruption(t *testing.T) {
	approx, details := buildBands(t, 4096, wavelet.DB4)

	tests := []struct {
		name   string
		mutate func(c *Container)
	}{
		{"bad version", func(c *Container) { c.Version = 9 }},
		{"bad levels", func(c *Container) { c.Levels = 4 }},
		{"bad family", func(c *Container) { c.Family = 77 }},
		{"approx truncated", func(c *Container) { c.Approx = c.Approx[:len(c.Approx)-4] }},
		{"detail truncated", func(c *Container) { c.Details[2] = c.Details[2][:8] }},
		{"detail band missing", func(c *Container) { c.Details = c.Details[:4] }},
		{"origLen drifted", func(c *Container) { c.OrigLen = 5000 }},
		{"tail without fold", func(c *Container) { v := float32(1); c.Tail = &v }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(wavelet.DB4, 4096, false, nil, approx, details)
			tt.mutate(c)
			data, err := c.Marshal()
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if _, err := Unmarshal(data); !errors.Is(err, ErrCorrupt) {
				t.Errorf("Unmarshal = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	if _, err := Unmarshal([]byte("not cbor at all")); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Unmarshal(garbage) = %v, want ErrCorrupt", err)
	}
}
