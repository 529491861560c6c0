// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import "github.com/ghostcrypt/tfhe/lwe"

// Ciphertext is an encrypted boolean: an LWE sample tagged with the
// fingerprint of the parameter set it was produced under. Operations
// never mutate a ciphertext; gates and the bootstrap always allocate
// fresh outputs.
type Ciphertext struct {
	Value       *lwe.Ciphertext
	fingerprint [8]byte
}

// CopyNew returns a deep copy of ct.
func (ct *Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{Value: ct.Value.CopyNew(), fingerprint: ct.fingerprint}
}

// matches reports whether ct carries the given parameter fingerprint
// and the matching mask dimension.
func (ct *Ciphertext) matches(params Parameters) bool {
	return ct.fingerprint == params.fingerprint && ct.Value.N() == params.LweDimension()
}
