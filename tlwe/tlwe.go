// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

// Package tlwe implements the polynomial-ring generalization of LWE:
// keys and masks are degree-N polynomials over the torus, reduced
// modulo X^N + 1. A single TLWE ciphertext packs N potential LWE
// samples, which is what makes blind rotation possible.
package tlwe

import (
	"github.com/ghostcrypt/tfhe/lwe"
	"github.com/ghostcrypt/tfhe/sampling"
	"github.com/ghostcrypt/tfhe/torus"
)

// SecretKey is a TLWE secret key: k polynomials of degree N with
// binary coefficients.
type SecretKey struct {
	Value []*torus.IntPoly
}

// GenSecretKey samples a fresh binary TLWE key of arity k, degree n.
func GenSecretKey(k, n int, prng sampling.PRNG) *SecretKey {
	bin := sampling.NewBinarySampler(prng)
	sk := &SecretKey{Value: make([]*torus.IntPoly, k)}
	for i := range sk.Value {
		sk.Value[i] = torus.NewIntPoly(n)
		bin.SampleSlice(sk.Value[i].Coeffs)
	}
	return sk
}

// K returns the key arity.
func (sk *SecretKey) K() int { return len(sk.Value) }

// N returns the polynomial degree.
func (sk *SecretKey) N() int { return len(sk.Value[0].Coeffs) }

// ExtractedLWEKey flattens the TLWE key into the LWE key of dimension
// k*N under which extracted samples decrypt.
func (sk *SecretKey) ExtractedLWEKey() *lwe.SecretKey {
	k, n := sk.K(), sk.N()
	out := &lwe.SecretKey{Coeffs: make([]int32, k*n)}
	for p := 0; p < k; p++ {
		copy(out.Coeffs[p*n:], sk.Value[p].Coeffs)
	}
	return out
}

// Ciphertext is a TLWE sample: k mask polynomials followed by the body
// polynomial, all of degree N.
type Ciphertext struct {
	Value []*torus.Poly
}

// NewCiphertext allocates a zero ciphertext of arity k, degree n.
func NewCiphertext(k, n int) *Ciphertext {
	ct := &Ciphertext{Value: make([]*torus.Poly, k+1)}
	for i := range ct.Value {
		ct.Value[i] = torus.NewPoly(n)
	}
	return ct
}

// K returns the mask arity of the ciphertext.
func (ct *Ciphertext) K() int { return len(ct.Value) - 1 }

// N returns the polynomial degree.
func (ct *Ciphertext) N() int { return ct.Value[0].N() }

// Body returns the body polynomial.
func (ct *Ciphertext) Body() *torus.Poly { return ct.Value[len(ct.Value)-1] }

// Copy copies src into ct.
func (ct *Ciphertext) Copy(src *Ciphertext) {
	for i := range ct.Value {
		ct.Value[i].Copy(src.Value[i])
	}
}

// CopyNew returns a fresh copy of ct.
func (ct *Ciphertext) CopyNew() *Ciphertext {
	out := NewCiphertext(ct.K(), ct.N())
	out.Copy(ct)
	return out
}

// Zero clears all polynomials of ct.
func (ct *Ciphertext) Zero() {
	for i := range ct.Value {
		ct.Value[i].Zero()
	}
}

// Trivial writes into ct a noiseless encryption of mu: zero masks and
// the message as the body. Decryptable under any key; carries no
// security and is only used for public accumulator initialization.
func (ct *Ciphertext) Trivial(mu *torus.Poly) {
	for i := 0; i < ct.K(); i++ {
		ct.Value[i].Zero()
	}
	ct.Body().Copy(mu)
}

// Encrypt writes into ct an encryption of the message polynomial mu
// under sk: uniform masks and body = sum a_i*s_i + mu + e.
func Encrypt(ct *Ciphertext, mu *torus.Poly, sk *SecretKey, uni *sampling.UniformSampler, gau *sampling.GaussianSampler) {
	body := ct.Body()
	gau.SamplePoly(body)
	for i := range body.Coeffs {
		body.Coeffs[i] += mu.Coeffs[i]
	}
	for p := 0; p < ct.K(); p++ {
		uni.SamplePoly(ct.Value[p])
		body.AddMul(sk.Value[p], ct.Value[p])
	}
}

// EncryptZero writes into ct an encryption of the zero polynomial.
func EncryptZero(ct *Ciphertext, sk *SecretKey, uni *sampling.UniformSampler, gau *sampling.GaussianSampler) {
	body := ct.Body()
	gau.SamplePoly(body)
	for p := 0; p < ct.K(); p++ {
		uni.SamplePoly(ct.Value[p])
		body.AddMul(sk.Value[p], ct.Value[p])
	}
}

// Phase writes b - sum a_i*s_i, the noisy message polynomial, into out.
func Phase(out *torus.Poly, ct *Ciphertext, sk *SecretKey) {
	out.Copy(ct.Body())
	tmp := torus.NewPoly(ct.N())
	for p := 0; p < ct.K(); p++ {
		tmp.Zero()
		tmp.AddMul(sk.Value[p], ct.Value[p])
		out.Sub(out, tmp)
	}
}

// Add sets ct = a + b component-wise.
func Add(ct, a, b *Ciphertext) {
	for i := range ct.Value {
		ct.Value[i].Add(a.Value[i], b.Value[i])
	}
}

// Sub sets ct = a - b component-wise.
func Sub(ct, a, b *Ciphertext) {
	for i := range ct.Value {
		ct.Value[i].Sub(a.Value[i], b.Value[i])
	}
}

// MulByMonomial sets ct = X^e * a for e in [0, 2N), rotating every
// component with the negacyclic sign rule.
func MulByMonomial(ct, a *Ciphertext, e uint32) {
	for i := range ct.Value {
		ct.Value[i].MulByMonomial(a.Value[i], e)
	}
}

// SampleExtract reads off the LWE sample of the constant coefficient of
// the phase: a structural, noise-free reindexing of the polynomial
// coefficients into a vector of dimension k*N, decryptable under
// ExtractedLWEKey.
func SampleExtract(ct *Ciphertext) *lwe.Ciphertext {
	k, n := ct.K(), ct.N()
	out := lwe.NewCiphertext(k * n)
	for p := 0; p < k; p++ {
		ap := ct.Value[p].Coeffs
		out.A[p*n] = ap[0]
		for j := 1; j < n; j++ {
			out.A[p*n+j] = -ap[n-j]
		}
	}
	out.B = ct.Body().Coeffs[0]
	return out
}
