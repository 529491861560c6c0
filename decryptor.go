// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"math"

	"github.com/ghostcrypt/tfhe/lwe"
)

// Decryptor decrypts ciphertexts back to boolean values.
type Decryptor struct {
	params Parameters
	sk     *SecretKey
}

// NewDecryptor creates a decryptor from a secret key.
func NewDecryptor(sk *SecretKey) *Decryptor {
	return &Decryptor{params: sk.params, sk: sk}
}

// Decrypt decrypts a ciphertext to its boolean value. It fails with
// ErrKeyMismatch if ct was not produced under this key bundle's
// parameter set.
func (dec *Decryptor) Decrypt(ct *Ciphertext) (bool, error) {
	if !ct.matches(dec.params) {
		return false, ErrKeyMismatch
	}
	return DecodeBool(lwe.Phase(ct.Value, dec.sk.Lwe)), nil
}

// DecryptChecked decrypts ct and additionally verifies that the phase
// lies within 1/16 of a message representative. A phase inside the
// guard band between intervals yields ErrDecryptionUncertain alongside
// the best-effort bit. This detects gross noise overflow only; a
// within-bound correctness failure remains probabilistic and silent.
func (dec *Decryptor) DecryptChecked(ct *Ciphertext) (bool, error) {
	if !ct.matches(dec.params) {
		return false, ErrKeyMismatch
	}
	phase := lwe.Phase(ct.Value, dec.sk.Lwe)
	v := DecodeBool(phase)

	centered := phase.CenteredFloat64()
	dist := math.Abs(math.Abs(centered) - 0.125)
	if dist > 1.0/16 {
		return v, ErrDecryptionUncertain
	}
	return v, nil
}

// DecryptBits decrypts a slice of ciphertexts into a bit vector.
func (dec *Decryptor) DecryptBits(cts []*Ciphertext) ([]bool, error) {
	bits := make([]bool, len(cts))
	for i, ct := range cts {
		v, err := dec.Decrypt(ct)
		if err != nil {
			return nil, err
		}
		bits[i] = v
	}
	return bits, nil
}
