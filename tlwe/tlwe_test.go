// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tlwe

import (
	"testing"

	"github.com/ghostcrypt/tfhe/lwe"
	"github.com/ghostcrypt/tfhe/sampling"
	"github.com/ghostcrypt/tfhe/torus"
)

const (
	testK      = 1
	testN      = 256
	testStdDev = 1.0 / (1 << 20)
)

func testSetup(t *testing.T, seed string) (*SecretKey, *sampling.UniformSampler, *sampling.GaussianSampler) {
	t.Helper()
	prng, err := sampling.NewKeyedPRNG([]byte(seed))
	if err != nil {
		t.Fatal(err)
	}
	sk := GenSecretKey(testK, testN, prng)
	return sk, sampling.NewUniformSampler(prng), sampling.NewGaussianSampler(prng, testStdDev)
}

func testMessage() *torus.Poly {
	mu := torus.NewPoly(testN)
	for i := range mu.Coeffs {
		mu.Coeffs[i] = torus.FromFloat64(float64(i%8) / 8)
	}
	return mu
}

func TestEncryptPhase(t *testing.T) {
	sk, uni, gau := testSetup(t, "tlwe encrypt")
	mu := testMessage()

	ct := NewCiphertext(testK, testN)
	Encrypt(ct, mu, sk, uni, gau)

	phase := torus.NewPoly(testN)
	Phase(phase, ct, sk)
	for i := range phase.Coeffs {
		if got := phase.Coeffs[i].Round(8); got != mu.Coeffs[i] {
			t.Fatalf("coefficient %d rounds to %#x, want %#x", i, got, mu.Coeffs[i])
		}
	}
}

func TestTrivial(t *testing.T) {
	sk, _, _ := testSetup(t, "tlwe trivial")
	mu := testMessage()

	ct := NewCiphertext(testK, testN)
	ct.Trivial(mu)

	phase := torus.NewPoly(testN)
	Phase(phase, ct, sk)
	for i := range phase.Coeffs {
		if phase.Coeffs[i] != mu.Coeffs[i] {
			t.Fatalf("trivial phase differs at %d", i)
		}
	}
}

func TestAddSub(t *testing.T) {
	sk, uni, gau := testSetup(t, "tlwe addsub")

	muA, muB := testMessage(), testMessage()
	ctA := NewCiphertext(testK, testN)
	ctB := NewCiphertext(testK, testN)
	Encrypt(ctA, muA, sk, uni, gau)
	Encrypt(ctB, muB, sk, uni, gau)

	sum := NewCiphertext(testK, testN)
	Add(sum, ctA, ctB)

	phase := torus.NewPoly(testN)
	Phase(phase, sum, sk)
	for i := range phase.Coeffs {
		want := muA.Coeffs[i].Add(muB.Coeffs[i])
		if got := phase.Coeffs[i].Round(8); got != want {
			t.Fatalf("sum coefficient %d rounds to %#x, want %#x", i, got, want)
		}
	}

	diff := NewCiphertext(testK, testN)
	Sub(diff, ctA, ctB)
	Phase(phase, diff, sk)
	for i := range phase.Coeffs {
		if got := phase.Coeffs[i].Round(8); got != 0 {
			t.Fatalf("difference coefficient %d rounds to %#x", i, got)
		}
	}
}

func TestMulByMonomialPhase(t *testing.T) {
	// Rotating a ciphertext rotates its phase the same way.
	sk, uni, gau := testSetup(t, "tlwe monomial")
	mu := testMessage()

	ct := NewCiphertext(testK, testN)
	Encrypt(ct, mu, sk, uni, gau)

	const e = 2*testN - 3
	rotated := NewCiphertext(testK, testN)
	MulByMonomial(rotated, ct, e)

	wantPhase := torus.NewPoly(testN)
	wantPhase.MulByMonomial(mu, e)

	phase := torus.NewPoly(testN)
	Phase(phase, rotated, sk)
	for i := range phase.Coeffs {
		if got := phase.Coeffs[i].Round(8); got != wantPhase.Coeffs[i] {
			t.Fatalf("rotated coefficient %d rounds to %#x, want %#x", i, got, wantPhase.Coeffs[i])
		}
	}
}

func TestSampleExtract(t *testing.T) {
	// The extracted LWE sample decrypts, under the flattened key, to
	// the constant coefficient of the TLWE phase.
	sk, uni, gau := testSetup(t, "tlwe extract")
	mu := testMessage()
	mu.Coeffs[0] = torus.FromFloat64(0.375)

	ct := NewCiphertext(testK, testN)
	Encrypt(ct, mu, sk, uni, gau)

	extracted := SampleExtract(ct)
	if extracted.N() != testK*testN {
		t.Fatalf("extracted dimension %d, want %d", extracted.N(), testK*testN)
	}

	lweKey := sk.ExtractedLWEKey()
	if got := lwe.Phase(extracted, lweKey).Round(8); got != mu.Coeffs[0] {
		t.Errorf("extracted phase rounds to %#x, want %#x", got, mu.Coeffs[0])
	}
}
