// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

// Fixed-width bit-vector circuits assembled purely from the boolean
// gates. Bit order is LSB first throughout.

// HalfAdder returns (sum, carry) of two encrypted bits.
func (eval *Evaluator) HalfAdder(a, b *Ciphertext) (sum, carry *Ciphertext, err error) {
	if sum, err = eval.XOR(a, b); err != nil {
		return nil, nil, err
	}
	if carry, err = eval.AND(a, b); err != nil {
		return nil, nil, err
	}
	return sum, carry, nil
}

// FullAdder returns (sum, carry) of two encrypted bits and a carry-in.
func (eval *Evaluator) FullAdder(a, b, cin *Ciphertext) (sum, carry *Ciphertext, err error) {
	axb, err := eval.XOR(a, b)
	if err != nil {
		return nil, nil, err
	}
	if sum, err = eval.XOR(axb, cin); err != nil {
		return nil, nil, err
	}
	ab, err := eval.AND(a, b)
	if err != nil {
		return nil, nil, err
	}
	cinAxb, err := eval.AND(cin, axb)
	if err != nil {
		return nil, nil, err
	}
	if carry, err = eval.OR(ab, cinAxb); err != nil {
		return nil, nil, err
	}
	return sum, carry, nil
}

// AddBits ripple-carry adds two equal-width bit vectors, returning the
// width+1 result (the final carry is the top bit).
func (eval *Evaluator) AddBits(a, b []*Ciphertext) ([]*Ciphertext, error) {
	if len(a) != len(b) {
		return nil, ErrParams
	}
	out := make([]*Ciphertext, 0, len(a)+1)

	sum, carry, err := eval.HalfAdder(a[0], b[0])
	if err != nil {
		return nil, err
	}
	out = append(out, sum)

	for i := 1; i < len(a); i++ {
		sum, carry, err = eval.FullAdder(a[i], b[i], carry)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return append(out, carry), nil
}

// EqualBits returns an encryption of whether two equal-width bit
// vectors are equal.
func (eval *Evaluator) EqualBits(a, b []*Ciphertext) (*Ciphertext, error) {
	if len(a) != len(b) {
		return nil, ErrParams
	}
	result, err := eval.XNOR(a[0], b[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(a); i++ {
		bitEq, err := eval.XNOR(a[i], b[i])
		if err != nil {
			return nil, err
		}
		if result, err = eval.AND(result, bitEq); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// SelectBits multiplexes two equal-width bit vectors on an encrypted
// selector, bit by bit.
func (eval *Evaluator) SelectBits(sel *Ciphertext, a, b []*Ciphertext) ([]*Ciphertext, error) {
	if len(a) != len(b) {
		return nil, ErrParams
	}
	out := make([]*Ciphertext, len(a))
	for i := range a {
		c, err := eval.MUX(sel, a[i], b[i])
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// ShiftLeftBits shifts a bit vector left by shift positions, filling
// the vacated low bits with trivial zeros. The width is preserved, so
// this multiplies by 2^shift modulo 2^width. Free, no bootstraps.
func (eval *Evaluator) ShiftLeftBits(a []*Ciphertext, shift int) ([]*Ciphertext, error) {
	if shift < 0 || shift > len(a) {
		return nil, ErrParams
	}
	out := make([]*Ciphertext, len(a))
	for i := 0; i < shift; i++ {
		out[i] = eval.Constant(false)
	}
	copy(out[shift:], a[:len(a)-shift])
	return out, nil
}

// ShiftRightBits shifts a bit vector right by shift positions, filling
// the vacated high bits with trivial zeros: an unsigned division by
// 2^shift. Free, no bootstraps.
func (eval *Evaluator) ShiftRightBits(a []*Ciphertext, shift int) ([]*Ciphertext, error) {
	if shift < 0 || shift > len(a) {
		return nil, ErrParams
	}
	out := make([]*Ciphertext, len(a))
	copy(out, a[shift:])
	for i := len(a) - shift; i < len(a); i++ {
		out[i] = eval.Constant(false)
	}
	return out, nil
}

// NegateBits returns the two's complement of a bit vector at the same
// width: invert every bit, then add one.
func (eval *Evaluator) NegateBits(a []*Ciphertext) ([]*Ciphertext, error) {
	if len(a) == 0 {
		return nil, ErrParams
	}
	inv, err := eval.NotBits(a)
	if err != nil {
		return nil, err
	}
	one := make([]*Ciphertext, len(a))
	one[0] = eval.Constant(true)
	for i := 1; i < len(a); i++ {
		one[i] = eval.Constant(false)
	}
	sum, err := eval.AddBits(inv, one)
	if err != nil {
		return nil, err
	}
	return sum[:len(a)], nil
}

// SubBits subtracts two equal-width bit vectors as a + (-b), dropping
// the final carry so the result wraps modulo 2^width.
func (eval *Evaluator) SubBits(a, b []*Ciphertext) ([]*Ciphertext, error) {
	if len(a) != len(b) {
		return nil, ErrParams
	}
	negB, err := eval.NegateBits(b)
	if err != nil {
		return nil, err
	}
	sum, err := eval.AddBits(a, negB)
	if err != nil {
		return nil, err
	}
	return sum[:len(a)], nil
}

// NotBits negates every bit of a vector; free, no bootstraps.
func (eval *Evaluator) NotBits(a []*Ciphertext) ([]*Ciphertext, error) {
	out := make([]*Ciphertext, len(a))
	for i := range a {
		c, err := eval.NOT(a[i])
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
