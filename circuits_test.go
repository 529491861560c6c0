// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import "testing"

func toBits(v, width int) []bool {
	bits := make([]bool, width)
	for i := range bits {
		bits[i] = v&(1<<i) != 0
	}
	return bits
}

func fromBits(bits []bool) int {
	v := 0
	for i, b := range bits {
		if b {
			v |= 1 << i
		}
	}
	return v
}

func TestHalfAdder(t *testing.T) {
	enc, dec, eval := testSetup(t)

	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			sum, carry, err := eval.HalfAdder(enc.Encrypt(a), enc.Encrypt(b))
			if err != nil {
				t.Fatal(err)
			}
			gotSum, err := dec.Decrypt(sum)
			if err != nil {
				t.Fatal(err)
			}
			gotCarry, err := dec.Decrypt(carry)
			if err != nil {
				t.Fatal(err)
			}
			if gotSum != (a != b) || gotCarry != (a && b) {
				t.Errorf("HalfAdder(%v, %v) = (%v, %v)", a, b, gotSum, gotCarry)
			}
		}
	}
}

func TestFullAdder(t *testing.T) {
	if testing.Short() {
		t.Skip("eight full-adder evaluations")
	}
	enc, dec, eval := testSetup(t)

	for i := 0; i < 8; i++ {
		a, b, cin := i&1 != 0, i&2 != 0, i&4 != 0
		sum, carry, err := eval.FullAdder(enc.Encrypt(a), enc.Encrypt(b), enc.Encrypt(cin))
		if err != nil {
			t.Fatal(err)
		}

		n := 0
		for _, v := range []bool{a, b, cin} {
			if v {
				n++
			}
		}
		gotSum, err := dec.Decrypt(sum)
		if err != nil {
			t.Fatal(err)
		}
		gotCarry, err := dec.Decrypt(carry)
		if err != nil {
			t.Fatal(err)
		}
		if gotSum != (n%2 == 1) || gotCarry != (n >= 2) {
			t.Errorf("FullAdder(%v, %v, %v) = (%v, %v)", a, b, cin, gotSum, gotCarry)
		}
	}
}

func TestAddBits(t *testing.T) {
	if testing.Short() {
		t.Skip("multi-bit ripple-carry adds")
	}
	enc, dec, eval := testSetup(t)

	const width = 4
	testCases := []struct{ a, b int }{
		{3, 5},
		{15, 1},
		{9, 9},
		{0, 0},
	}

	for _, tc := range testCases {
		ctSum, err := eval.AddBits(enc.EncryptBits(toBits(tc.a, width)), enc.EncryptBits(toBits(tc.b, width)))
		if err != nil {
			t.Fatal(err)
		}
		if len(ctSum) != width+1 {
			t.Fatalf("sum width %d, want %d", len(ctSum), width+1)
		}
		bits, err := dec.DecryptBits(ctSum)
		if err != nil {
			t.Fatal(err)
		}
		if got := fromBits(bits); got != tc.a+tc.b {
			t.Errorf("%d + %d = %d", tc.a, tc.b, got)
		}
	}
}

func TestEqualBits(t *testing.T) {
	if testing.Short() {
		t.Skip("multi-bit comparisons")
	}
	enc, dec, eval := testSetup(t)

	const width = 4
	testCases := []struct {
		a, b int
		want bool
	}{
		{7, 7, true},
		{7, 6, false},
		{0, 0, true},
		{0, 8, false},
	}

	for _, tc := range testCases {
		ct, err := eval.EqualBits(enc.EncryptBits(toBits(tc.a, width)), enc.EncryptBits(toBits(tc.b, width)))
		if err != nil {
			t.Fatal(err)
		}
		got, err := dec.Decrypt(ct)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("EqualBits(%d, %d) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSelectBits(t *testing.T) {
	if testing.Short() {
		t.Skip("multi-bit selects")
	}
	enc, dec, eval := testSetup(t)

	const width = 4
	a, b := 0b1010, 0b0101

	for _, sel := range []bool{false, true} {
		out, err := eval.SelectBits(enc.Encrypt(sel), enc.EncryptBits(toBits(a, width)), enc.EncryptBits(toBits(b, width)))
		if err != nil {
			t.Fatal(err)
		}
		bits, err := dec.DecryptBits(out)
		if err != nil {
			t.Fatal(err)
		}
		want := b
		if sel {
			want = a
		}
		if got := fromBits(bits); got != want {
			t.Errorf("SelectBits(%v) = %#b, want %#b", sel, got, want)
		}
	}
}

func TestShiftBits(t *testing.T) {
	enc, dec, eval := testSetup(t)

	const width = 6
	testCases := []struct {
		v, shift, wantLeft, wantRight int
	}{
		{0b101101, 0, 0b101101, 0b101101},
		{0b101101, 2, 0b110100, 0b001011},
		{0b101101, 5, 0b100000, 0b000001},
		{0b101101, 6, 0, 0},
	}

	for _, tc := range testCases {
		in := enc.EncryptBits(toBits(tc.v, width))

		left, err := eval.ShiftLeftBits(in, tc.shift)
		if err != nil {
			t.Fatal(err)
		}
		bits, err := dec.DecryptBits(left)
		if err != nil {
			t.Fatal(err)
		}
		if got := fromBits(bits); got != tc.wantLeft {
			t.Errorf("ShiftLeftBits(%#b, %d) = %#b, want %#b", tc.v, tc.shift, got, tc.wantLeft)
		}

		right, err := eval.ShiftRightBits(in, tc.shift)
		if err != nil {
			t.Fatal(err)
		}
		if bits, err = dec.DecryptBits(right); err != nil {
			t.Fatal(err)
		}
		if got := fromBits(bits); got != tc.wantRight {
			t.Errorf("ShiftRightBits(%#b, %d) = %#b, want %#b", tc.v, tc.shift, got, tc.wantRight)
		}
	}

	for _, shift := range []int{-1, width + 1} {
		in := enc.EncryptBits(toBits(1, width))
		if _, err := eval.ShiftLeftBits(in, shift); err != ErrParams {
			t.Errorf("ShiftLeftBits(shift=%d): got %v, want ErrParams", shift, err)
		}
		if _, err := eval.ShiftRightBits(in, shift); err != ErrParams {
			t.Errorf("ShiftRightBits(shift=%d): got %v, want ErrParams", shift, err)
		}
	}
}

func TestGreater(t *testing.T) {
	enc, dec, eval := testSetup(t)

	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			ct, err := eval.GREATER(enc.Encrypt(a), enc.Encrypt(b))
			if err != nil {
				t.Fatal(err)
			}
			got, err := dec.Decrypt(ct)
			if err != nil {
				t.Fatal(err)
			}
			if want := a && !b; got != want {
				t.Errorf("GREATER(%v, %v) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestNegateBits(t *testing.T) {
	if testing.Short() {
		t.Skip("multi-bit two's complement")
	}
	enc, dec, eval := testSetup(t)

	const width = 4
	for _, v := range []int{0, 1, 7, 8, 15} {
		out, err := eval.NegateBits(enc.EncryptBits(toBits(v, width)))
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != width {
			t.Fatalf("negate width %d, want %d", len(out), width)
		}
		bits, err := dec.DecryptBits(out)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := fromBits(bits), (16-v)%16; got != want {
			t.Errorf("NegateBits(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestSubBits(t *testing.T) {
	if testing.Short() {
		t.Skip("multi-bit subtracts")
	}
	enc, dec, eval := testSetup(t)

	const width = 4
	testCases := []struct{ a, b int }{
		{9, 5},
		{5, 9},
		{15, 15},
		{0, 1},
	}

	for _, tc := range testCases {
		out, err := eval.SubBits(enc.EncryptBits(toBits(tc.a, width)), enc.EncryptBits(toBits(tc.b, width)))
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != width {
			t.Fatalf("difference width %d, want %d", len(out), width)
		}
		bits, err := dec.DecryptBits(out)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := fromBits(bits), (tc.a-tc.b+16)%16; got != want {
			t.Errorf("%d - %d = %d, want %d", tc.a, tc.b, got, want)
		}
	}
}

func TestNotBits(t *testing.T) {
	enc, dec, eval := testSetup(t)

	in := enc.EncryptByte(0xA5)
	out, err := eval.NotBits(in)
	if err != nil {
		t.Fatal(err)
	}
	bits, err := dec.DecryptBits(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := fromBits(bits); got != 0x5A {
		t.Errorf("NotBits(0xA5) = %#x, want 0x5A", got)
	}
}
