// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

// Package torus implements fixed-point arithmetic on the real torus R/Z
// and negacyclic polynomials over it.
//
// A torus element is a 32-bit unsigned integer t representing the real
// value t/2^32 in [0, 1). All arithmetic is exact modulo 1: the natural
// wrap-around of uint32 addition and multiplication is the modulo-1
// reduction, so there is no floating-point drift anywhere in the scheme.
package torus

import "math"

// Bits is the width of the fixed-point representation. The working
// modulus of the whole scheme is 2^Bits.
const Bits = 32

// T is a point on the discretized torus R/Z.
type T uint32

// FromFloat64 maps a real number to the nearest torus point of its
// fractional part.
func FromFloat64(x float64) T {
	x -= math.Floor(x)
	return T(uint64(math.Round(x * (1 << 32))))
}

// Float64 returns the real value in [0, 1) represented by t.
func (t T) Float64() float64 {
	return float64(t) / (1 << 32)
}

// CenteredFloat64 returns the representative of t in [-1/2, 1/2).
func (t T) CenteredFloat64() float64 {
	return float64(int32(t)) / (1 << 32)
}

// Add returns t + u (mod 1).
func (t T) Add(u T) T { return t + u }

// Sub returns t - u (mod 1).
func (t T) Sub(u T) T { return t - u }

// Neg returns -t (mod 1).
func (t T) Neg() T { return -t }

// MulScalar returns c*t (mod 1) for an integer scalar c. Two's
// complement wrap-around gives the exact result for negative c.
func (t T) MulScalar(c int32) T { return t * T(c) }

// Round returns the multiple of 1/m nearest to t (mod 1). m must be a
// power of two dividing the working modulus.
func (t T) Round(m int) T {
	interval := uint64(1<<32) / uint64(m)
	return T(((uint64(t) + interval/2) / interval) * interval)
}

// ModSwitch rescales t from the working modulus to Z_m, rounding to the
// nearest integer. Used to derive blind-rotation exponents, with m = 2N.
func (t T) ModSwitch(m int) uint32 {
	return uint32((uint64(t)*uint64(m) + (1 << 31)) >> 32) % uint32(m)
}
