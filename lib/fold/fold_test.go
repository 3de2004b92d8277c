// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

package fold

import (
	"math"
	"math/rand"
	"testing"
)

// antipodal builds a length-m vector with exact antipodal symmetry:
// v[m-1-i] == -v[i] bit for bit. The tail element of an odd-length
// vector is set to an arbitrary non-symmetric value.
func antipodal(m int) []float64 {
	v := make([]float64, m)
	mid := m / 2
	for i := 0; i < mid; i++ {
		x := math.Sin(5 * (float64(i)/float64(mid) - 0.5) * math.Pi)
		v[i] = x
		v[2*mid-1-i] = -x
	}
	if 2*mid < m {
		v[m-1] = 0.375
	}
	return v
}

func TestAnalyzePerfectSymmetry(t *testing.T) {
	d := Analyze(antipodal(1024), DefaultGate())
	if !d.Apply {
		t.Fatal("perfectly antipodal vector should fold")
	}
	if d.Ratio > 1e-12 {
		t.Errorf("ratio = %g, want ~0 for exact symmetry", d.Ratio)
	}
	want := Gain(1024, d.Ratio, DefaultOverheadBits)
	if d.GainBits != want {
		t.Errorf("GainBits = %g, want %g", d.GainBits, want)
	}
	if d.GainBits <= 0 {
		t.Errorf("GainBits = %g, want positive", d.GainBits)
	}
}

func TestAnalyzeShortVectorNeverFolds(t *testing.T) {
	// Even exact symmetry must not fold below the minimum length.
	d := Analyze(antipodal(511), DefaultGate())
	if d.Apply {
		t.Error("vector below MinLength must not fold")
	}
	if d.Ratio != 0 || d.GainBits != 0 {
		t.Errorf("short-circuit decision should be zero valued, got %+v", d)
	}
}

func TestAnalyzeWhiteNoiseNeverFolds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	v := make([]float64, 2048)
	for i := range v {
		v[i] = rng.NormFloat64()
	}

	d := Analyze(v, DefaultGate())
	if d.Apply {
		t.Errorf("white noise folded with ratio %g", d.Ratio)
	}
	// Independent halves: variance of the sum is about twice the
	// signal variance.
	if d.Ratio < 1 {
		t.Errorf("white-noise ratio = %g, expected >= 1", d.Ratio)
	}
}

func TestAnalyzeZeroVector(t *testing.T) {
	d := Analyze(make([]float64, 1024), DefaultGate())
	if d.Apply {
		t.Error("zero vector must not fold")
	}
	if math.IsNaN(d.Ratio) {
		t.Error("ratio must not be NaN for zero variance")
	}
}

func TestAnalyzeDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	v := antipodal(4096)
	for i := range v {
		v[i] += 0.01 * rng.NormFloat64()
	}

	first := Analyze(v, DefaultGate())
	for trial := 0; trial < 5; trial++ {
		if got := Analyze(v, DefaultGate()); got != first {
			t.Fatalf("decision changed across calls: %+v vs %+v", got, first)
		}
	}
}

func TestGainMonotonic(t *testing.T) {
	const m = 1024
	prev := math.Inf(1)
	for ratio := 0.0; ratio <= 1.0; ratio += 0.05 {
		g := Gain(m, ratio, DefaultOverheadBits)
		if g >= prev {
			t.Fatalf("gain not strictly decreasing at ratio %.2f: %g >= %g", ratio, g, prev)
		}
		prev = g
	}

	if got := Gain(m, 1.0, DefaultOverheadBits); got != -DefaultOverheadBits {
		t.Errorf("Gain(m, 1) = %g, want %g", got, -float64(DefaultOverheadBits))
	}
	if got := Gain(m, 0.0, DefaultOverheadBits); got != m*16-DefaultOverheadBits {
		t.Errorf("Gain(m, 0) = %g, want %g", got, float64(m*16-DefaultOverheadBits))
	}
}

func TestForwardInverseEven(t *testing.T) {
	v := antipodal(1024)
	left, delta, rec := Forward(v)

	if rec.Seam != 512 {
		t.Errorf("seam = %d, want 512", rec.Seam)
	}
	if rec.Tail != nil {
		t.Error("even-length fold must not carry a tail")
	}

	recovered := Inverse(left, delta, rec)
	if len(recovered) != len(v) {
		t.Fatalf("recovered length %d, want %d", len(recovered), len(v))
	}
	for i := range v {
		if recovered[i] != v[i] {
			t.Fatalf("mismatch at %d: %g != %g", i, recovered[i], v[i])
		}
	}
}

func TestForwardInverseOddTail(t *testing.T) {
	v := antipodal(1025)
	left, delta, rec := Forward(v)

	if rec.Seam != 512 {
		t.Errorf("seam = %d, want 512", rec.Seam)
	}
	if rec.Tail == nil {
		t.Fatal("odd-length fold must carry the trailing element")
	}
	if *rec.Tail != float32(v[1024]) {
		t.Errorf("tail = %g, want %g", *rec.Tail, v[1024])
	}

	recovered := Inverse(left, delta, rec)
	if len(recovered) != 1025 {
		t.Fatalf("recovered length %d, want 1025", len(recovered))
	}
	for i := range v {
		if recovered[i] != v[i] {
			t.Fatalf("mismatch at %d: %g != %g", i, recovered[i], v[i])
		}
	}
}

func TestForwardInverseNoisy(t *testing.T) {
	// Mild asymmetric noise. The left half round-trips bit for bit;
	// the right half picks up one float64 rounding of the delta sum
	// per element, so it is compared to a tight tolerance.
	rng := rand.New(rand.NewSource(99))
	v := antipodal(2048)
	for i := range v {
		v[i] += 0.05 * rng.NormFloat64()
	}

	left, delta, rec := Forward(v)
	recovered := Inverse(left, delta, rec)
	for i := range v {
		if diff := math.Abs(recovered[i] - v[i]); diff > 1e-12 {
			t.Fatalf("mismatch at %d: %g != %g (diff %g)", i, recovered[i], v[i], diff)
		}
	}
}

func BenchmarkAnalyze(b *testing.B) {
	v := antipodal(20000)
	gate := DefaultGate()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Analyze(v, gate)
	}
}
