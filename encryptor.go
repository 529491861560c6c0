// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"github.com/ghostcrypt/tfhe/lwe"
	"github.com/ghostcrypt/tfhe/sampling"
)

// Encryptor encrypts boolean values under a secret key bundle.
type Encryptor struct {
	params  Parameters
	sk      *SecretKey
	uniform *sampling.UniformSampler
	noise   *sampling.GaussianSampler
}

// NewEncryptor creates an encryptor from a secret key, drawing mask and
// noise randomness from prng.
func NewEncryptor(sk *SecretKey, prng sampling.PRNG) *Encryptor {
	return &Encryptor{
		params:  sk.params,
		sk:      sk,
		uniform: sampling.NewUniformSampler(prng),
		noise:   sampling.NewGaussianSampler(prng, sk.params.LweStdDev()),
	}
}

// Encrypt encrypts a boolean value as a fresh LWE ciphertext.
func (enc *Encryptor) Encrypt(value bool) *Ciphertext {
	ct := lwe.EncryptNew(EncodeBool(value), enc.sk.Lwe, enc.uniform, enc.noise)
	return &Ciphertext{Value: ct, fingerprint: enc.params.fingerprint}
}

// EncryptBits encrypts a bit vector, one ciphertext per bit.
func (enc *Encryptor) EncryptBits(bits []bool) []*Ciphertext {
	cts := make([]*Ciphertext, len(bits))
	for i, b := range bits {
		cts[i] = enc.Encrypt(b)
	}
	return cts
}

// EncryptByte encrypts a byte as 8 ciphertexts, LSB first.
func (enc *Encryptor) EncryptByte(b byte) []*Ciphertext {
	cts := make([]*Ciphertext, 8)
	for i := range cts {
		cts[i] = enc.Encrypt((b>>i)&1 == 1)
	}
	return cts
}
