// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package lwe

import (
	"github.com/ghostcrypt/tfhe/sampling"
	"github.com/ghostcrypt/tfhe/torus"
)

// KeySwitchKey translates ciphertexts encrypted under an input key of
// dimension nIn to the output key of dimension nOut. Entry (i, j) is an
// encryption of sIn_i * 2^-(j+1)*baseBit under the output key.
type KeySwitchKey struct {
	Rows    [][]*Ciphertext
	BaseBit int
	Level   int
	nOut    int
}

// NewKeySwitchKey allocates a zero key for nIn input and nOut output
// dimensions, used when deserializing.
func NewKeySwitchKey(nIn, nOut, baseBit, level int) *KeySwitchKey {
	ksk := &KeySwitchKey{
		Rows:    make([][]*Ciphertext, nIn),
		BaseBit: baseBit,
		Level:   level,
		nOut:    nOut,
	}
	for i := range ksk.Rows {
		ksk.Rows[i] = make([]*Ciphertext, level)
		for j := range ksk.Rows[i] {
			ksk.Rows[i][j] = NewCiphertext(nOut)
		}
	}
	return ksk
}

// GenKeySwitchKey generates a key-switching key from skIn to skOut with
// decomposition base 2^baseBit and level (digit) count level.
func GenKeySwitchKey(skIn, skOut *SecretKey, baseBit, level int, uni *sampling.UniformSampler, gau *sampling.GaussianSampler) *KeySwitchKey {
	ksk := &KeySwitchKey{
		Rows:    make([][]*Ciphertext, skIn.N()),
		BaseBit: baseBit,
		Level:   level,
		nOut:    skOut.N(),
	}
	for i := range ksk.Rows {
		ksk.Rows[i] = make([]*Ciphertext, level)
		for j := 0; j < level; j++ {
			mu := torus.T(skIn.Coeffs[i]) << (torus.Bits - (j+1)*baseBit)
			ksk.Rows[i][j] = EncryptNew(mu, skOut, uni, gau)
		}
	}
	return ksk
}

// Apply switches ct (dimension nIn) to a fresh ciphertext of the output
// dimension. The mask coefficients are decomposed into Level digits of
// baseBit bits each (after a rounding offset on the truncated tail) and
// the matching key rows are subtracted; the loop body performs the same
// arithmetic for every digit value, including zero, so the access
// pattern is independent of the processed data.
func (ksk *KeySwitchKey) Apply(ct *Ciphertext) *Ciphertext {
	out := NewCiphertext(ksk.nOut)
	out.B = ct.B

	// A decomposition spanning the full word has no truncated tail, so
	// there is nothing to round.
	var roundOff torus.T
	if prec := ksk.Level * ksk.BaseBit; prec < torus.Bits {
		roundOff = torus.T(1) << (torus.Bits - prec - 1)
	}
	mask := uint32(1)<<ksk.BaseBit - 1

	for i, ai := range ct.A {
		v := uint32(ai + roundOff)
		for j := 0; j < ksk.Level; j++ {
			d := torus.T((v >> (torus.Bits - (j+1)*ksk.BaseBit)) & mask)
			row := ksk.Rows[i][j]
			for u := range out.A {
				out.A[u] -= d * row.A[u]
			}
			out.B -= d * row.B
		}
	}
	return out
}
