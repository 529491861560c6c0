// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"github.com/ghostcrypt/tfhe/lwe"
	"github.com/ghostcrypt/tfhe/sampling"
	"github.com/ghostcrypt/tfhe/tgsw"
	"github.com/ghostcrypt/tfhe/tlwe"
)

// SecretKey is the secret half of a key bundle: the scalar LWE key
// ciphertexts live under and the TLWE key the bootstrap rotates under.
// Generated once per session and never mutated afterwards.
type SecretKey struct {
	Lwe    *lwe.SecretKey
	Glwe   *tlwe.SecretKey
	params Parameters
}

// Parameters returns the parameter set the key was generated against.
func (sk *SecretKey) Parameters() Parameters { return sk.params }

// BootstrapKey is the public evaluation material derived from a secret
// key: one TGSW encryption per LWE key bit (the blind-rotation key,
// ordered, consumed read-only by every bootstrap) and the key-switching
// key from the extracted dimension k*N back down to n.
type BootstrapKey struct {
	Entries []*tgsw.Ciphertext
	Ksk     *lwe.KeySwitchKey
	params  Parameters
}

// Parameters returns the parameter set the key was generated against.
func (bk *BootstrapKey) Parameters() Parameters { return bk.params }

// KeyGenerator generates key bundles for one parameter set. All
// randomness flows from the single PRNG handed to the constructor, so
// a KeyedPRNG yields fully reproducible bundles.
type KeyGenerator struct {
	params  Parameters
	prng    sampling.PRNG
	uniform *sampling.UniformSampler
	lweN    *sampling.GaussianSampler
	glweN   *sampling.GaussianSampler
}

// NewKeyGenerator creates a key generator drawing from prng.
func NewKeyGenerator(params Parameters, prng sampling.PRNG) *KeyGenerator {
	return &KeyGenerator{
		params:  params,
		prng:    prng,
		uniform: sampling.NewUniformSampler(prng),
		lweN:    sampling.NewGaussianSampler(prng, params.LweStdDev()),
		glweN:   sampling.NewGaussianSampler(prng, params.GlweStdDev()),
	}
}

// GenSecretKey samples a fresh secret key bundle half: binary LWE and
// TLWE keys of the configured dimensions.
func (kg *KeyGenerator) GenSecretKey() *SecretKey {
	return &SecretKey{
		Lwe:    lwe.GenSecretKey(kg.params.LweDimension(), kg.prng),
		Glwe:   tlwe.GenSecretKey(kg.params.GlweRank(), kg.params.PolyDegree(), kg.prng),
		params: kg.params,
	}
}

// GenBootstrapKey derives the public evaluation material from sk: for
// each of the n LWE key bits a TGSW encryption of that bit under the
// TLWE key, and the key-switching key from the flattened TLWE key back
// to the LWE key. Each entry is an independent encryption; the loop is
// sequential only because the PRNG is the sole shared state.
func (kg *KeyGenerator) GenBootstrapKey(sk *SecretKey) *BootstrapKey {
	p := kg.params
	entries := make([]*tgsw.Ciphertext, p.LweDimension())
	for i := range entries {
		entries[i] = tgsw.NewCiphertext(p.GlweRank(), p.PolyDegree(), p.BgBit(), p.BgLevel())
		tgsw.Encrypt(entries[i], sk.Lwe.Coeffs[i], sk.Glwe, kg.uniform, kg.glweN)
	}

	ksk := lwe.GenKeySwitchKey(sk.Glwe.ExtractedLWEKey(), sk.Lwe,
		p.KsBaseBit(), p.KsLevel(), kg.uniform, kg.lweN)

	return &BootstrapKey{Entries: entries, Ksk: ksk, params: p}
}

// GenKeyBundle generates a complete bundle atomically: the secret key
// and its derived bootstrap key.
func (kg *KeyGenerator) GenKeyBundle() (*SecretKey, *BootstrapKey) {
	sk := kg.GenSecretKey()
	return sk, kg.GenBootstrapKey(sk)
}
