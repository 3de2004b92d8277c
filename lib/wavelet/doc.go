// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

// Package wavelet implements the multi-level discrete wavelet transform
// used by the Wavefold encoder.
//
// The transform is a classic two-channel filter bank: at each level the
// signal is extended symmetrically (half-sample reflection), convolved
// with the family's decomposition low/high pass filters, and
// downsampled. Reconstruction upsamples, convolves with the
// reconstruction filters, and trims the boundary surplus. With
// unmodified coefficients, Reconstruct is the exact inverse of Decompose
// up to floating-point rounding, for every supported family and any
// viable signal length (odd lengths included).
//
// Decomposition depth is fixed at Levels (5). Coefficient band lengths
// are a pure function of the signal length and the family's filter
// length — BandLengths recomputes them so the container format never
// stores per-band lengths.
package wavelet
