// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tgsw

import (
	"testing"

	"github.com/ghostcrypt/tfhe/sampling"
	"github.com/ghostcrypt/tfhe/tlwe"
	"github.com/ghostcrypt/tfhe/torus"
)

const (
	testK      = 1
	testN      = 256
	testBgBit  = 6
	testLevel  = 3
	testStdDev = 1.0 / (1 << 25)
)

func testSetup(t *testing.T, seed string) (*tlwe.SecretKey, *sampling.UniformSampler, *sampling.GaussianSampler) {
	t.Helper()
	prng, err := sampling.NewKeyedPRNG([]byte(seed))
	if err != nil {
		t.Fatal(err)
	}
	sk := tlwe.GenSecretKey(testK, testN, prng)
	return sk, sampling.NewUniformSampler(prng), sampling.NewGaussianSampler(prng, testStdDev)
}

func TestDecompose(t *testing.T) {
	p := torus.NewPoly(testN)
	p.Coeffs[0] = torus.FromFloat64(0.3)
	p.Coeffs[1] = torus.FromFloat64(-0.45)
	p.Coeffs[2] = 0xDEADBEEF
	p.Coeffs[3] = 1 // Below decomposition precision.

	digits := make([]*torus.IntPoly, testLevel)
	for j := range digits {
		digits[j] = torus.NewIntPoly(testN)
	}
	decompose(digits, p, testBgBit, testLevel)

	const halfBg = 1 << (testBgBit - 1)
	for j, d := range digits {
		for i, c := range d.Coeffs {
			if c < -halfBg || c >= halfBg {
				t.Fatalf("digit[%d][%d] = %d outside [-%d, %d)", j, i, c, halfBg, halfBg)
			}
		}
	}

	// Reconstruction error is at most half the last gadget step.
	const maxErr = 1 << (32 - testBgBit*testLevel - 1)
	for i := range p.Coeffs {
		var rec torus.T
		for j := 0; j < testLevel; j++ {
			h := torus.T(1) << (32 - uint(j+1)*testBgBit)
			rec += h.MulScalar(digits[j].Coeffs[i])
		}
		diff := int32(rec - p.Coeffs[i])
		if diff < 0 {
			diff = -diff
		}
		if diff > maxErr {
			t.Errorf("coefficient %d: reconstruction off by %d", i, diff)
		}
	}
}

func TestExternalProduct(t *testing.T) {
	sk, uni, gau := testSetup(t, "tgsw external")

	mu := torus.NewPoly(testN)
	for i := range mu.Coeffs {
		mu.Coeffs[i] = torus.FromFloat64(float64(i%8) / 8)
	}
	tlweCt := tlwe.NewCiphertext(testK, testN)
	tlwe.Encrypt(tlweCt, mu, sk, uni, gau)

	phase := torus.NewPoly(testN)
	out := tlwe.NewCiphertext(testK, testN)

	// msg = 1 acts as the identity.
	one := NewCiphertext(testK, testN, testBgBit, testLevel)
	Encrypt(one, 1, sk, uni, gau)
	ExternalProduct(out, one, tlweCt)
	tlwe.Phase(phase, out, sk)
	for i := range phase.Coeffs {
		if got := phase.Coeffs[i].Round(8); got != mu.Coeffs[i] {
			t.Fatalf("identity product: coefficient %d rounds to %#x, want %#x", i, got, mu.Coeffs[i])
		}
	}

	// msg = 0 annihilates the message.
	zero := NewCiphertext(testK, testN, testBgBit, testLevel)
	Encrypt(zero, 0, sk, uni, gau)
	ExternalProduct(out, zero, tlweCt)
	tlwe.Phase(phase, out, sk)
	for i := range phase.Coeffs {
		if got := phase.Coeffs[i].Round(8); got != 0 {
			t.Fatalf("zero product: coefficient %d rounds to %#x", i, got)
		}
	}
}

func TestCMux(t *testing.T) {
	sk, uni, gau := testSetup(t, "tgsw cmux")

	mu0 := torus.NewPoly(testN)
	mu1 := torus.NewPoly(testN)
	mu0.Fill(torus.FromFloat64(0.125))
	mu1.Fill(torus.FromFloat64(-0.125))

	c0 := tlwe.NewCiphertext(testK, testN)
	c1 := tlwe.NewCiphertext(testK, testN)
	tlwe.Encrypt(c0, mu0, sk, uni, gau)
	tlwe.Encrypt(c1, mu1, sk, uni, gau)

	out := tlwe.NewCiphertext(testK, testN)
	phase := torus.NewPoly(testN)

	for _, tc := range []struct {
		sel  int32
		want *torus.Poly
	}{
		{0, mu0},
		{1, mu1},
	} {
		sel := NewCiphertext(testK, testN, testBgBit, testLevel)
		Encrypt(sel, tc.sel, sk, uni, gau)

		CMux(out, sel, c0, c1)
		tlwe.Phase(phase, out, sk)
		for i := range phase.Coeffs {
			if got := phase.Coeffs[i].Round(8); got != tc.want.Coeffs[i] {
				t.Fatalf("sel=%d: coefficient %d rounds to %#x, want %#x", tc.sel, i, got, tc.want.Coeffs[i])
			}
		}
	}
}
