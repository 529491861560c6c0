// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"github.com/ghostcrypt/tfhe/lwe"
	"github.com/ghostcrypt/tfhe/tgsw"
	"github.com/ghostcrypt/tfhe/tlwe"
)

// bootstrap refreshes ct into a fresh LWE encryption of the sign of its
// phase, with output noise reset to a fixed baseline independent of the
// input's accumulated noise. Four stages:
//
//  1. Accumulator initialization: a trivial TLWE encryption of the sign
//     test polynomial, rotated by -round(2N*b).
//  2. Blind rotation: an iterative fold over the n bootstrap key
//     entries; entry i CMux-selects between the accumulator and the
//     accumulator further rotated by round(2N*a_i), so the total
//     rotation homomorphically accumulates -(b - <a, s>).
//  3. Sample extraction: the constant coefficient's LWE sample of
//     dimension k*N, read straight off the accumulator.
//  4. Key switching back down to dimension n.
//
// The returned ciphertext encrypts +1/8 when the centered input phase
// was positive and -1/8 otherwise.
func (eval *Evaluator) bootstrap(ct *lwe.Ciphertext) *lwe.Ciphertext {
	twoN := uint32(2 * eval.params.PolyDegree())

	// Stage 1: acc = X^(2N - round(2N*b)) * testPoly, as a trivial
	// noiseless sample.
	bBar := ct.B.ModSwitch(int(twoN))
	acc, accNext := eval.acc, eval.accNext
	for p := 0; p < acc.K(); p++ {
		acc.Value[p].Zero()
	}
	acc.Body().MulByMonomial(eval.testPoly, (twoN-bBar)%twoN)

	// Stage 2: fold CMux over the ordered bootstrap key. The rotation
	// exponents derive from the public mask coefficients; the secret
	// selection happens inside CMux, which is branch-free.
	for i, entry := range eval.bsk.Entries {
		aBar := ct.A[i].ModSwitch(int(twoN))
		if aBar == 0 {
			// Rotation by zero is the identity; skipping it avoids a
			// no-op CMux. The exponent is public data.
			continue
		}
		tlwe.MulByMonomial(eval.rotated, acc, aBar)
		tgsw.CMux(accNext, entry, acc, eval.rotated)
		acc, accNext = accNext, acc
	}

	// Stages 3 and 4.
	extracted := tlwe.SampleExtract(acc)
	return eval.bsk.Ksk.Apply(extracted)
}

// Bootstrap refreshes a ciphertext without changing its plaintext,
// resetting accumulated noise to the baseline. Exposed for callers that
// chain many free linear operations between gates.
func (eval *Evaluator) Bootstrap(ct *Ciphertext) (*Ciphertext, error) {
	if err := eval.check(ct); err != nil {
		return nil, err
	}
	return eval.wrap(eval.bootstrap(ct.Value)), nil
}
