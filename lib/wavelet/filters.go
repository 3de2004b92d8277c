// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

package wavelet

// filterBank holds the four filters of a two-channel wavelet filter
// bank. All filters share the same even length.
type filterBank struct {
	decLo []float64 // decomposition low-pass
	decHi []float64 // decomposition high-pass
	recLo []float64 // reconstruction low-pass
	recHi []float64 // reconstruction high-pass
}

// length returns the filter length of the bank.
func (b *filterBank) length() int { return len(b.decLo) }

// orthogonalBank derives the full filter bank from the decomposition
// low-pass filter of an orthogonal wavelet using the standard
// quadrature-mirror relations: the reconstruction low-pass is the
// reversed decomposition low-pass, the reconstruction high-pass
// alternates the sign of the decomposition low-pass, and the
// decomposition high-pass is the reversed reconstruction high-pass.
func orthogonalBank(decLo []float64) filterBank {
	n := len(decLo)
	recLo := make([]float64, n)
	recHi := make([]float64, n)
	decHi := make([]float64, n)
	for k := 0; k < n; k++ {
		recLo[k] = decLo[n-1-k]
		if k%2 == 0 {
			recHi[k] = decLo[k]
		} else {
			recHi[k] = -decLo[k]
		}
	}
	for k := 0; k < n; k++ {
		decHi[k] = recHi[n-1-k]
	}
	return filterBank{decLo: decLo, decHi: decHi, recLo: recLo, recHi: recHi}
}

// biorthogonalBank derives the high-pass filters of a biorthogonal bank
// from the two low-pass filters: each high-pass is the opposite
// low-pass with alternating signs. The two alternations run at opposite
// phases — decHi keeps the odd taps, recHi keeps the even taps — which
// is what makes the aliasing terms of the two channels cancel in
// synthesis.
func biorthogonalBank(decLo, recLo []float64) filterBank {
	n := len(decLo)
	decHi := make([]float64, n)
	recHi := make([]float64, n)
	for k := 0; k < n; k++ {
		if k%2 == 1 {
			decHi[k] = recLo[k]
			recHi[k] = -decLo[k]
		} else {
			decHi[k] = -recLo[k]
			recHi[k] = decLo[k]
		}
	}
	return filterBank{decLo: decLo, decHi: decHi, recLo: recLo, recHi: recHi}
}

// Decomposition low-pass filters, ascending tap order. Values are the
// published coefficients of each wavelet; the remaining filters of each
// bank are derived by the quadrature-mirror relations above.

var db4DecLo = []float64{
	-0.010597401784997278,
	0.032883011666982945,
	0.030841381835986965,
	-0.18703481171888114,
	-0.02798376941698385,
	0.6308807679295904,
	0.7148465705525415,
	0.23037781330885523,
}

var sym8DecLo = []float64{
	-0.0033824159510061256,
	-0.0005421323317911481,
	0.03169508781149298,
	0.007607487324917605,
	-0.1432942383508097,
	-0.061273359067658524,
	0.4813596512583722,
	0.7771857517005235,
	0.3644418948353314,
	-0.05194583810770904,
	-0.027219029917056003,
	0.049137179673607506,
	0.003808752013890615,
	-0.01495225833704823,
	-0.0003029205147213668,
	0.0018899503327594609,
}

var coif5DecLo = []float64{
	-9.517657273819165e-08,
	-1.6744288576823017e-07,
	2.0637618513646814e-06,
	3.7346551751414047e-06,
	-2.1315026809955787e-05,
	-4.134043227251251e-05,
	0.00014054114970203437,
	0.00030225958181306315,
	-0.0006381313430451114,
	-0.0016628637020130838,
	0.0024333732126576722,
	0.006764185448053083,
	-0.009164231162481846,
	-0.01976177894257264,
	0.03268357426711183,
	0.0412892087501817,
	-0.10557420870333893,
	-0.06203596396290357,
	0.4379916261718371,
	0.7742896036529562,
	0.4215662066908515,
	-0.05204316317624377,
	-0.09192001055969624,
	0.02816802897093635,
	0.023408156785839195,
	-0.010131117519849788,
	-0.004159358781386048,
	0.0021782363581090178,
	0.00035858968789573785,
	-0.00021208083980379827,
}

// bior4.4 low-pass pair (CDF 9/7), zero-padded to a common even length
// of 10 taps as is conventional for this bank.

var bior44DecLo = []float64{
	0.0,
	0.03782845550699535,
	-0.023849465019380315,
	-0.11062440441842342,
	0.3774028556126538,
	0.8526986790094034,
	0.3774028556126538,
	-0.11062440441842342,
	-0.023849465019380315,
	0.03782845550699535,
}

var bior44RecLo = []float64{
	0.0,
	-0.06453888262893856,
	-0.04068941760955867,
	0.4180922732222122,
	0.7884856164056649,
	0.4180922732222122,
	-0.04068941760955867,
	-0.06453888262893856,
	0.0,
	0.0,
}

var banks = map[Family]filterBank{
	DB4:    orthogonalBank(db4DecLo),
	Sym8:   orthogonalBank(sym8DecLo),
	Coif5:  orthogonalBank(coif5DecLo),
	Bior44: biorthogonalBank(bior44DecLo, bior44RecLo),
}

// bank returns the filter bank for a family.
func bank(f Family) (filterBank, error) {
	b, ok := banks[f]
	if !ok {
		return filterBank{}, ErrUnknownFamily
	}
	return b, nil
}
