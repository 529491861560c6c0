// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"github.com/ghostcrypt/tfhe/lwe"
	"github.com/ghostcrypt/tfhe/tlwe"
	"github.com/ghostcrypt/tfhe/torus"
)

// Evaluator evaluates boolean gates on encrypted data. It holds only
// public evaluation material: no secret key is ever required.
//
// Each two-input gate is a fixed public linear combination of the input
// ciphertexts followed by exactly one bootstrap. NOT is a pure negation
// and never bootstraps. Inputs are read-only; outputs are freshly
// allocated.
//
// An Evaluator reuses internal accumulator buffers and is not safe for
// concurrent use; ShallowCopy creates an independent evaluator sharing
// the same (read-only) bootstrap key for worker pools.
type Evaluator struct {
	params Parameters
	bsk    *BootstrapKey

	testPoly *torus.Poly
	acc      *tlwe.Ciphertext
	accNext  *tlwe.Ciphertext
	rotated  *tlwe.Ciphertext
}

// NewEvaluator creates an evaluator from a bootstrap key.
func NewEvaluator(bsk *BootstrapKey) *Evaluator {
	p := bsk.params
	k, n := p.GlweRank(), p.PolyDegree()

	// Sign test polynomial: every coefficient is the representative of
	// true, so the rotated accumulator's constant term is +1/8 exactly
	// when the centered input phase is positive.
	testPoly := torus.NewPoly(n)
	testPoly.Fill(EncodeBool(true))

	return &Evaluator{
		params:   p,
		bsk:      bsk,
		testPoly: testPoly,
		acc:      tlwe.NewCiphertext(k, n),
		accNext:  tlwe.NewCiphertext(k, n),
		rotated:  tlwe.NewCiphertext(k, n),
	}
}

// Parameters returns the evaluator's parameter set.
func (eval *Evaluator) Parameters() Parameters { return eval.params }

// ShallowCopy returns an evaluator with fresh buffers sharing the same
// bootstrap key, safe to use concurrently with the original.
func (eval *Evaluator) ShallowCopy() *Evaluator {
	return NewEvaluator(eval.bsk)
}

// check validates that every operand belongs to this evaluator's key
// bundle before any arithmetic is attempted.
func (eval *Evaluator) check(cts ...*Ciphertext) error {
	for _, ct := range cts {
		if !ct.matches(eval.params) {
			return ErrKeyMismatch
		}
	}
	return nil
}

func (eval *Evaluator) wrap(v *lwe.Ciphertext) *Ciphertext {
	return &Ciphertext{Value: v, fingerprint: eval.params.fingerprint}
}

// gate2 combines two operands as ca*a + cb*b + offset and bootstraps.
func (eval *Evaluator) gate2(a, b *Ciphertext, ca, cb int32, offset float64) (*Ciphertext, error) {
	if err := eval.check(a, b); err != nil {
		return nil, err
	}
	lin := lwe.NewCiphertext(eval.params.LweDimension())
	tmp := lwe.NewCiphertext(eval.params.LweDimension())
	lwe.MulScalar(lin, a.Value, ca)
	lwe.MulScalar(tmp, b.Value, cb)
	lwe.Add(lin, lin, tmp)
	lin.B += torus.FromFloat64(offset)
	return eval.wrap(eval.bootstrap(lin)), nil
}

// Constant returns a noiseless trivial encryption of v: zero mask,
// body set to the encoding of v. It decrypts to v under any key of
// this parameter set and is free to produce.
func (eval *Evaluator) Constant(v bool) *Ciphertext {
	out := lwe.NewCiphertext(eval.params.LweDimension())
	out.B = EncodeBool(v)
	return eval.wrap(out)
}

// NOT negates the input: a free linear operation with no bootstrap and
// no noise growth.
func (eval *Evaluator) NOT(a *Ciphertext) (*Ciphertext, error) {
	if err := eval.check(a); err != nil {
		return nil, err
	}
	out := lwe.NewCiphertext(eval.params.LweDimension())
	lwe.Neg(out, a.Value)
	return eval.wrap(out), nil
}

// AND computes a ∧ b: bootstrap of a + b - 1/8.
func (eval *Evaluator) AND(a, b *Ciphertext) (*Ciphertext, error) {
	return eval.gate2(a, b, 1, 1, -0.125)
}

// OR computes a ∨ b: bootstrap of a + b + 1/8.
func (eval *Evaluator) OR(a, b *Ciphertext) (*Ciphertext, error) {
	return eval.gate2(a, b, 1, 1, 0.125)
}

// NAND computes ¬(a ∧ b): bootstrap of -a - b + 1/8.
func (eval *Evaluator) NAND(a, b *Ciphertext) (*Ciphertext, error) {
	return eval.gate2(a, b, -1, -1, 0.125)
}

// NOR computes ¬(a ∨ b): bootstrap of -a - b - 1/8.
func (eval *Evaluator) NOR(a, b *Ciphertext) (*Ciphertext, error) {
	return eval.gate2(a, b, -1, -1, -0.125)
}

// XOR computes a ⊕ b: bootstrap of 2a + 2b + 1/4. The doubling makes
// the (true, true) case wrap to the negative half so a single sign
// bootstrap suffices.
func (eval *Evaluator) XOR(a, b *Ciphertext) (*Ciphertext, error) {
	return eval.gate2(a, b, 2, 2, 0.25)
}

// GREATER computes a > b on single bits, i.e. a ∧ ¬b: bootstrap of
// a - b - 1/8.
func (eval *Evaluator) GREATER(a, b *Ciphertext) (*Ciphertext, error) {
	return eval.gate2(a, b, 1, -1, -0.125)
}

// XNOR computes ¬(a ⊕ b): bootstrap of -2a - 2b - 1/4.
func (eval *Evaluator) XNOR(a, b *Ciphertext) (*Ciphertext, error) {
	return eval.gate2(a, b, -2, -2, -0.25)
}

// MUX computes sel ? a : b as (sel ∧ a) ∨ (¬sel ∧ b), three
// bootstraps.
func (eval *Evaluator) MUX(sel, a, b *Ciphertext) (*Ciphertext, error) {
	if err := eval.check(sel, a, b); err != nil {
		return nil, err
	}
	selA, err := eval.AND(sel, a)
	if err != nil {
		return nil, err
	}
	notSel, err := eval.NOT(sel)
	if err != nil {
		return nil, err
	}
	notSelB, err := eval.AND(notSel, b)
	if err != nil {
		return nil, err
	}
	return eval.OR(selA, notSelB)
}

// MAJORITY computes the majority vote of three inputs with a single
// bootstrap: the sign of a + b + c already separates 0-1 true inputs
// from 2-3 true inputs.
func (eval *Evaluator) MAJORITY(a, b, c *Ciphertext) (*Ciphertext, error) {
	if err := eval.check(a, b, c); err != nil {
		return nil, err
	}
	lin := lwe.NewCiphertext(eval.params.LweDimension())
	lwe.Add(lin, a.Value, b.Value)
	lwe.Add(lin, lin, c.Value)
	return eval.wrap(eval.bootstrap(lin)), nil
}

// AND3 computes a ∧ b ∧ c by gate composition.
func (eval *Evaluator) AND3(a, b, c *Ciphertext) (*Ciphertext, error) {
	ab, err := eval.AND(a, b)
	if err != nil {
		return nil, err
	}
	return eval.AND(ab, c)
}

// OR3 computes a ∨ b ∨ c by gate composition.
func (eval *Evaluator) OR3(a, b, c *Ciphertext) (*Ciphertext, error) {
	ab, err := eval.OR(a, b)
	if err != nil {
		return nil, err
	}
	return eval.OR(ab, c)
}
