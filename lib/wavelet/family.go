// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

package wavelet

import "fmt"

// Family identifies a wavelet filter bank. Families are stored in the
// artifact envelope and container (1 byte each). These values are
// protocol constants — changing them breaks artifact compatibility.
type Family uint8

const (
	// DB4 is the Daubechies 4 orthogonal wavelet (8 taps, 4 vanishing
	// moments). Good general-purpose default for smooth signals.
	DB4 Family = 1

	// Sym8 is the Symlet 8 orthogonal wavelet (16 taps). Near-symmetric
	// variant of Daubechies with less phase distortion.
	Sym8 Family = 2

	// Coif5 is the Coiflet 5 orthogonal wavelet (30 taps). Long filter
	// with vanishing moments on both the wavelet and scaling function.
	Coif5 Family = 3

	// Bior44 is the biorthogonal 4.4 wavelet (the CDF 9/7 pair used by
	// JPEG 2000). Symmetric filters, best behaved at boundaries.
	Bior44 Family = 4
)

// DefaultFamilies is the candidate set the family selector evaluates
// when the configuration does not name one. Order matters: size ties
// are broken in favor of the earliest family.
func DefaultFamilies() []Family {
	return []Family{DB4, Bior44, Sym8, Coif5}
}

// String returns the conventional name of the family.
func (f Family) String() string {
	switch f {
	case DB4:
		return "db4"
	case Sym8:
		return "sym8"
	case Coif5:
		return "coif5"
	case Bior44:
		return "bior4.4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// ParseFamily parses a family from its conventional name.
func ParseFamily(name string) (Family, error) {
	switch name {
	case "db4":
		return DB4, nil
	case "sym8":
		return Sym8, nil
	case "coif5":
		return Coif5, nil
	case "bior4.4":
		return Bior44, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
}

// Valid reports whether f is one of the supported families.
func (f Family) Valid() bool {
	switch f {
	case DB4, Sym8, Coif5, Bior44:
		return true
	}
	return false
}
