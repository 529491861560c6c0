// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import "errors"

// Error taxonomy. Parameter and key-mismatch errors surface at API
// boundaries before any lattice arithmetic is attempted; the internal
// arithmetic itself never fails on well-formed inputs.
var (
	// ErrParams reports an invalid or internally inconsistent
	// parameter literal at construction time.
	ErrParams = errors.New("tfhe: invalid parameters")

	// ErrKeyMismatch reports a ciphertext whose dimensions or parameter
	// fingerprint do not match the key material it was supplied with.
	ErrKeyMismatch = errors.New("tfhe: ciphertext does not match key bundle")

	// ErrDecryptionUncertain reports that the reconstructed phase fell
	// inside the guard band between message representatives, so the
	// decrypted bit is unreliable. Only DecryptChecked returns it; an
	// ordinary within-bound correctness failure is not detectable.
	ErrDecryptionUncertain = errors.New("tfhe: decrypted phase outside any message interval")

	// ErrParamsMismatch reports serialized data produced under a
	// different parameter set than the one supplied for decoding.
	ErrParamsMismatch = errors.New("tfhe: serialized data was produced under different parameters")
)
