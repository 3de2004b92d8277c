// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

// Package hybrid is the Wavefold encode/decode pipeline.
//
// Encode runs one independent trial per candidate wavelet family:
// decompose, fold the approximation band when the MDL gate approves,
// soft-threshold the detail bands, serialize the container, compress
// with the byte backend. Trials run concurrently, touch no shared
// state, and per-trial failures (signal too short for a family) are
// swallowed; only an empty success set is fatal. The smallest artifact
// wins, ties broken by family declaration order.
//
// Decode is single-path: the envelope names the backend and the
// winning family, so there is no search and no second folding decision.
// Denoising is not inverted — the pipeline is deliberately lossy in the
// detail bands.
package hybrid
