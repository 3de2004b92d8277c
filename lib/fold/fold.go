// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

// Package fold implements antipodal (RP²) folding of a coefficient
// vector and the MDL cost model that decides whether folding pays for
// itself.
//
// A vector with antipodal symmetry satisfies v[m-1-i] ≈ -v[i]. Folding
// stores only the left half plus the residual between the left half and
// the negated, reversed right half; on near-antipodal data the residual
// is close to zero and compresses far better than the raw right half.
// The routing decision compares the residual variance against the
// vector variance and charges a fixed header overhead, so folding is
// applied only when the modeled bit gain is positive.
package fold

// DefaultMinLength is the minimum vector length for which folding is
// considered. Below it, symmetry estimation is unreliable and the
// header overhead dominates any plausible gain.
const DefaultMinLength = 512

// DefaultOverheadBits is the fixed metadata cost charged against the
// modeled gain: folding metadata, the extra payload framing, and the
// seam bookkeeping.
const DefaultOverheadBits = 2000

// varianceEpsilon guards the variance ratio against an all-zero input.
// A zero-variance vector routes to "no fold" (ratio becomes huge).
const varianceEpsilon = 1e-10

// Gate carries the two tunables of the routing decision. The zero
// value is not useful; construct with DefaultGate or from the encoder
// configuration.
type Gate struct {
	// MinLength is the shortest vector eligible for folding.
	MinLength int

	// OverheadBits is the fixed cost subtracted from the modeled gain.
	OverheadBits float64
}

// DefaultGate returns the standard routing gate.
func DefaultGate() Gate {
	return Gate{MinLength: DefaultMinLength, OverheadBits: DefaultOverheadBits}
}

// Record describes a folding decision as stored in the container.
type Record struct {
	// Applied reports whether the payload is (left, delta) rather than
	// the raw vector.
	Applied bool

	// Seam is the split index floor(m/2) when Applied, 0 otherwise.
	Seam int

	// Tail holds the trailing element of an odd-length vector, which
	// belongs to neither half. It is stored verbatim and restored
	// verbatim by Inverse. Nil for even lengths or when not applied.
	Tail *float32
}

// Decision is the outcome of Analyze, including the intermediate
// quantities so callers can log or test the routing behavior.
type Decision struct {
	// Apply reports whether folding was selected.
	Apply bool

	// Ratio is variance(delta)/variance(v). Meaningless (zero) when
	// the vector was shorter than the gate's minimum length.
	Ratio float64

	// GainBits is the modeled size gain in bits. Zero when the vector
	// was too short or the ratio already ruled folding out.
	GainBits float64
}

// Gain evaluates the MDL cost model: the modeled bit saving of storing
// a length-m float32 vector as (left, delta) instead of raw, given the
// residual-to-signal variance ratio. Strictly decreasing in ratio;
// ratio 0 yields the maximum m*16 - overhead, ratio 1 yields -overhead.
func Gain(m int, ratio, overheadBits float64) float64 {
	return float64(m)*32*(1-ratio)*0.5 - overheadBits
}

// Analyze runs the routing decision for v. Variance accumulation is
// float64 regardless of the vector's storage precision, so cancellation
// on near-antipodal data cannot skew the decision. The decision is a
// pure function of v and gate: identical inputs always route
// identically.
func Analyze(v []float64, gate Gate) Decision {
	m := len(v)
	if m < gate.MinLength {
		return Decision{}
	}

	mid := m / 2
	// delta[i] = left[i] - (-reverse(right)[i]) = left[i] + right[mid-1-i]
	delta := make([]float64, mid)
	for i := 0; i < mid; i++ {
		delta[i] = v[i] + v[2*mid-1-i]
	}

	deltaVar := variance(delta)
	vVar := variance(v)
	ratio := deltaVar / (vVar + varianceEpsilon)
	if deltaVar >= vVar {
		return Decision{Ratio: ratio}
	}

	gain := Gain(m, ratio, gate.OverheadBits)
	return Decision{Apply: gain > 0, Ratio: ratio, GainBits: gain}
}

// Forward folds v into its left half and the antipodal residual. The
// returned record carries the seam and, for odd m, the trailing element
// that belongs to neither half. Forward does not consult the gate; the
// caller routes via Analyze first.
func Forward(v []float64) (left, delta []float64, rec Record) {
	m := len(v)
	mid := m / 2

	left = make([]float64, mid)
	copy(left, v[:mid])

	delta = make([]float64, mid)
	for i := 0; i < mid; i++ {
		// reflected[i] = -v[m'-1-i] over the right half of length mid.
		delta[i] = v[i] + v[2*mid-1-i]
	}

	rec = Record{Applied: true, Seam: mid}
	if 2*mid < m {
		tail := float32(v[m-1])
		rec.Tail = &tail
	}
	return left, delta, rec
}

// Inverse reassembles the vector from (left, delta) and the record:
// reflected = left - delta, right = -reverse(reflected), then
// left ++ right ++ tail.
func Inverse(left, delta []float64, rec Record) []float64 {
	mid := len(left)
	m := 2 * mid
	if rec.Tail != nil {
		m++
	}

	out := make([]float64, m)
	copy(out, left)
	for i := 0; i < mid; i++ {
		reflected := left[i] - delta[i]
		// right = -reverse(reflected)
		out[2*mid-1-i] = -reflected
	}
	if rec.Tail != nil {
		out[m-1] = float64(*rec.Tail)
	}
	return out
}

// variance is the float64 population variance of v.
func variance(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	mean := sum / float64(len(v))

	var sq float64
	for _, x := range v {
		d := x - mean
		sq += d * d
	}
	return sq / float64(len(v))
}
