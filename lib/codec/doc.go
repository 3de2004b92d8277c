// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Wavefold's standard CBOR encoding configuration.
//
// The coefficient container (lib/container) is serialized as CBOR and its
// byte image is what the family selector measures when comparing candidate
// wavelet families. That comparison is only meaningful when serialization
// is deterministic, so the encoder uses Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical container always produces
// identical bytes.
//
// This package exists so that every Wavefold package encodes identically
// without duplicating configuration:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types serialized through this package use `cbor` struct tags: they are
// internal wire records, never marshaled to JSON.
package codec
