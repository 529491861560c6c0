// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

// Package lwe implements scalar LWE encryption over the discretized
// torus: binary secret keys, encryption, phase computation and the
// linear homomorphic operations gates are assembled from.
package lwe

import (
	"github.com/ghostcrypt/tfhe/sampling"
	"github.com/ghostcrypt/tfhe/torus"
)

// SecretKey is a binary LWE secret key of dimension n.
type SecretKey struct {
	Coeffs []int32
}

// GenSecretKey samples a fresh uniform binary key of dimension n.
func GenSecretKey(n int, prng sampling.PRNG) *SecretKey {
	sk := &SecretKey{Coeffs: make([]int32, n)}
	sampling.NewBinarySampler(prng).SampleSlice(sk.Coeffs)
	return sk
}

// N returns the key dimension.
func (sk *SecretKey) N() int { return len(sk.Coeffs) }

// Ciphertext is an LWE sample (a, b) with b = <a, s> + mu + e.
type Ciphertext struct {
	A []torus.T
	B torus.T
}

// NewCiphertext allocates a zero ciphertext of dimension n.
func NewCiphertext(n int) *Ciphertext {
	return &Ciphertext{A: make([]torus.T, n)}
}

// N returns the mask dimension of the ciphertext.
func (ct *Ciphertext) N() int { return len(ct.A) }

// CopyNew returns a fresh copy of ct.
func (ct *Ciphertext) CopyNew() *Ciphertext {
	out := NewCiphertext(len(ct.A))
	copy(out.A, ct.A)
	out.B = ct.B
	return out
}

// Encrypt writes into ct an encryption of the torus message mu under
// sk: a uniform mask and b = <a, s> + mu + e with e drawn from gau.
func Encrypt(ct *Ciphertext, mu torus.T, sk *SecretKey, uni *sampling.UniformSampler, gau *sampling.GaussianSampler) {
	var dot torus.T
	for i := range ct.A {
		ct.A[i] = uni.Sample()
		dot += ct.A[i].MulScalar(sk.Coeffs[i])
	}
	ct.B = dot + mu + gau.Sample()
}

// EncryptNew returns a fresh encryption of mu under sk.
func EncryptNew(mu torus.T, sk *SecretKey, uni *sampling.UniformSampler, gau *sampling.GaussianSampler) *Ciphertext {
	ct := NewCiphertext(sk.N())
	Encrypt(ct, mu, sk, uni, gau)
	return ct
}

// Phase returns b - <a, s>, the noisy torus message of ct under sk.
func Phase(ct *Ciphertext, sk *SecretKey) torus.T {
	var dot torus.T
	for i := range ct.A {
		dot += ct.A[i].MulScalar(sk.Coeffs[i])
	}
	return ct.B - dot
}

// Add sets out = a + b. All three must share the same dimension.
func Add(out, a, b *Ciphertext) {
	for i := range out.A {
		out.A[i] = a.A[i] + b.A[i]
	}
	out.B = a.B + b.B
}

// Sub sets out = a - b.
func Sub(out, a, b *Ciphertext) {
	for i := range out.A {
		out.A[i] = a.A[i] - b.A[i]
	}
	out.B = a.B - b.B
}

// Neg sets out = -a.
func Neg(out, a *Ciphertext) {
	for i := range out.A {
		out.A[i] = -a.A[i]
	}
	out.B = -a.B
}

// MulScalar sets out = c * a for an integer scalar c. The noise
// variance grows with c^2.
func MulScalar(out, a *Ciphertext, c int32) {
	for i := range out.A {
		out.A[i] = a.A[i].MulScalar(c)
	}
	out.B = a.B.MulScalar(c)
}

// AddOffset sets out = a shifted by the plaintext offset mu, leaving
// the mask untouched.
func AddOffset(out, a *Ciphertext, mu torus.T) {
	copy(out.A, a.A)
	out.B = a.B + mu
}
