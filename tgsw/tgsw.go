// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

// Package tgsw implements gadget-decomposed encryption of single bits
// under a TLWE key, and the external product / CMux primitives that
// drive blind rotation.
package tgsw

import (
	"github.com/ghostcrypt/tfhe/sampling"
	"github.com/ghostcrypt/tfhe/tlwe"
	"github.com/ghostcrypt/tfhe/torus"
)

// Ciphertext is a TGSW encryption of a small integer message: for each
// of the k+1 TLWE components and each of the l decomposition levels, a
// TLWE encryption of zero shifted by msg * 2^-(j+1)*bgBit on that
// component. Rows[p][j] is the row for component p at level j.
type Ciphertext struct {
	Rows  [][]*tlwe.Ciphertext
	BgBit int
	Level int
}

// NewCiphertext allocates a zero TGSW ciphertext for arity k, degree n,
// decomposition base 2^bgBit and level count.
func NewCiphertext(k, n, bgBit, level int) *Ciphertext {
	ct := &Ciphertext{
		Rows:  make([][]*tlwe.Ciphertext, k+1),
		BgBit: bgBit,
		Level: level,
	}
	for p := range ct.Rows {
		ct.Rows[p] = make([]*tlwe.Ciphertext, level)
		for j := range ct.Rows[p] {
			ct.Rows[p][j] = tlwe.NewCiphertext(k, n)
		}
	}
	return ct
}

// K returns the mask arity.
func (ct *Ciphertext) K() int { return len(ct.Rows) - 1 }

// N returns the polynomial degree.
func (ct *Ciphertext) N() int { return ct.Rows[0][0].N() }

// Encrypt writes into ct a TGSW encryption of msg under sk. Every row
// is an independent TLWE encryption of zero; the gadget scaling
// msg * 2^(32-(j+1)*bgBit) is then added on the constant coefficient of
// the row's own component.
func Encrypt(ct *Ciphertext, msg int32, sk *tlwe.SecretKey, uni *sampling.UniformSampler, gau *sampling.GaussianSampler) {
	for p := range ct.Rows {
		for j, row := range ct.Rows[p] {
			tlwe.EncryptZero(row, sk, uni, gau)
			h := torus.T(msg) << (torus.Bits - (j+1)*ct.BgBit)
			row.Value[p].Coeffs[0] += h
		}
	}
}

// decompose writes the centered base-2^bgBit digits of every
// coefficient of p into the level output polynomials. Digits lie in
// [-Bg/2, Bg/2); the rounding offset makes the truncated tail an
// unbiased error of magnitude at most 2^-(l*bgBit)/2. Pure shift-and-
// mask arithmetic: no branches, no table lookups.
func decompose(out []*torus.IntPoly, p *torus.Poly, bgBit, level int) {
	halfBg := int32(1) << (bgBit - 1)
	mask := uint32(1)<<bgBit - 1

	// Rounding offset: 1/2 at each level's least significant position,
	// plus Bg/2 at each level to center the digits.
	var offset uint32
	for j := 1; j <= level; j++ {
		offset += uint32(halfBg) << (torus.Bits - j*bgBit)
	}

	for i, c := range p.Coeffs {
		v := uint32(c) + offset
		for j := 0; j < level; j++ {
			out[j].Coeffs[i] = int32((v>>(torus.Bits-(j+1)*bgBit))&mask) - halfBg
		}
	}
}

// ExternalProduct sets out to the TLWE encryption of msg * m, where ct
// encrypts msg and in encrypts the polynomial m. The input is gadget-
// decomposed and recombined against the rows of ct, so the output noise
// is bounded by a fixed function of (Bg, l, N, k) plus |msg| times the
// input noise — independent of how the input ciphertext was produced.
// out must not alias in.
func ExternalProduct(out *tlwe.Ciphertext, ct *Ciphertext, in *tlwe.Ciphertext) {
	k, n := in.K(), in.N()

	digits := make([]*torus.IntPoly, ct.Level)
	for j := range digits {
		digits[j] = torus.NewIntPoly(n)
	}

	out.Zero()
	for p := 0; p <= k; p++ {
		decompose(digits, in.Value[p], ct.BgBit, ct.Level)
		for j := 0; j < ct.Level; j++ {
			row := ct.Rows[p][j]
			for c := 0; c <= k; c++ {
				out.Value[c].AddMul(digits[j], row.Value[c])
			}
		}
	}
}

// CMux sets out to c0 if ct encrypts 0 and to c1 if ct encrypts 1:
// out = c0 + ct ⊡ (c1 - c0). The selection is purely arithmetic; the
// evaluator never branches on the encrypted selector. out must not
// alias c0 or c1.
func CMux(out *tlwe.Ciphertext, ct *Ciphertext, c0, c1 *tlwe.Ciphertext) {
	diff := tlwe.NewCiphertext(c1.K(), c1.N())
	tlwe.Sub(diff, c1, c0)
	ExternalProduct(out, ct, diff)
	tlwe.Add(out, out, c0)
}
