// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParametersRoundTrip(t *testing.T) {
	params, err := NewParametersFromLiteral(ParamsBoolean128)
	if err != nil {
		t.Fatal(err)
	}

	data, err := params.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	var got Parameters
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(params.Literal(), got.Literal()); diff != "" {
		t.Errorf("literal mismatch (-want +got):\n%s", diff)
	}
	if !params.Equal(got) {
		t.Error("fingerprint mismatch after round trip")
	}
}

func TestParametersUnmarshalRejectsGarbage(t *testing.T) {
	var p Parameters
	if err := p.UnmarshalBinary([]byte("not a parameter set")); err == nil {
		t.Error("garbage accepted")
	}
	if err := p.UnmarshalBinary(nil); err == nil {
		t.Error("empty input accepted")
	}
}

func TestCiphertextRoundTrip(t *testing.T) {
	enc, dec, _ := testSetup(t)

	for _, v := range []bool{false, true} {
		ct := enc.Encrypt(v)
		data, err := ct.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}

		restored, err := ReadCiphertext(data, testCtx.params)
		if err != nil {
			t.Fatal(err)
		}
		got, err := dec.Decrypt(restored)
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Errorf("restored ciphertext decrypted to %v, want %v", got, v)
		}
	}
}

func TestCiphertextRejectsWrongParams(t *testing.T) {
	enc, _, _ := testSetup(t)

	other, err := NewParametersFromLiteral(ParamsBoolean128)
	if err != nil {
		t.Fatal(err)
	}

	data, err := enc.Encrypt(true).MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCiphertext(data, other); !errors.Is(err, ErrParamsMismatch) {
		t.Errorf("got %v, want ErrParamsMismatch", err)
	}
}

func TestSecretKeyRoundTrip(t *testing.T) {
	enc, _, _ := testSetup(t)

	data, err := testCtx.sk.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := ReadSecretKey(data, testCtx.params)
	if err != nil {
		t.Fatal(err)
	}

	// The restored key must decrypt ciphertexts from the original.
	dec := NewDecryptor(restored)
	got, err := dec.Decrypt(enc.Encrypt(true))
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("restored secret key failed to decrypt")
	}
}

func TestBootstrapKeyRoundTrip(t *testing.T) {
	enc, dec, _ := testSetup(t)

	data, err := testCtx.bsk.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := ReadBootstrapKey(data, testCtx.params)
	if err != nil {
		t.Fatal(err)
	}

	// The restored key must drive a working evaluator.
	eval := NewEvaluator(restored)
	ct, err := eval.AND(enc.Encrypt(true), enc.Encrypt(true))
	if err != nil {
		t.Fatal(err)
	}
	got, err := dec.DecryptChecked(ct)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("restored bootstrap key evaluated AND(1, 1) = 0")
	}
}

func TestReadRejectsTruncated(t *testing.T) {
	enc, _, _ := testSetup(t)

	data, err := enc.Encrypt(false).MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, 3, 5, 13, len(data) / 2, len(data) - 1} {
		_, err := ReadCiphertext(data[:n], testCtx.params)
		if err == nil {
			t.Errorf("truncation to %d bytes accepted", n)
			continue
		}
		// Truncation is an io error, not a foreign parameter set.
		if errors.Is(err, ErrParamsMismatch) {
			t.Errorf("truncation to %d bytes reported as ErrParamsMismatch: %v", n, err)
		}
	}
}
