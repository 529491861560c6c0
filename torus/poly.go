// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package torus

// Poly is a polynomial of degree < N over the torus, reduced modulo
// X^N + 1. Coefficient i is the coefficient of X^i.
type Poly struct {
	Coeffs []T
}

// NewPoly allocates a zero polynomial of degree n.
func NewPoly(n int) *Poly {
	return &Poly{Coeffs: make([]T, n)}
}

// N returns the degree of the polynomial.
func (p *Poly) N() int { return len(p.Coeffs) }

// Copy copies the coefficients of src into p.
func (p *Poly) Copy(src *Poly) {
	copy(p.Coeffs, src.Coeffs)
}

// CopyNew returns a fresh copy of p.
func (p *Poly) CopyNew() *Poly {
	q := NewPoly(len(p.Coeffs))
	copy(q.Coeffs, p.Coeffs)
	return q
}

// Zero sets all coefficients of p to zero.
func (p *Poly) Zero() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// Add sets p = a + b coefficient-wise.
func (p *Poly) Add(a, b *Poly) {
	for i := range p.Coeffs {
		p.Coeffs[i] = a.Coeffs[i] + b.Coeffs[i]
	}
}

// Sub sets p = a - b coefficient-wise.
func (p *Poly) Sub(a, b *Poly) {
	for i := range p.Coeffs {
		p.Coeffs[i] = a.Coeffs[i] - b.Coeffs[i]
	}
}

// Neg sets p = -a coefficient-wise.
func (p *Poly) Neg(a *Poly) {
	for i := range p.Coeffs {
		p.Coeffs[i] = -a.Coeffs[i]
	}
}

// Fill sets every coefficient of p to t.
func (p *Poly) Fill(t T) {
	for i := range p.Coeffs {
		p.Coeffs[i] = t
	}
}

// MulByMonomial sets p = X^e * a modulo X^N + 1, for e in [0, 2N).
// Exponents in [N, 2N) pick up the negacyclic sign flip.
func (p *Poly) MulByMonomial(a *Poly, e uint32) {
	n := uint32(len(p.Coeffs))
	neg := false
	if e >= n {
		e -= n
		neg = true
	}
	// p[i+e] = a[i], wrapping with a sign change past degree N.
	for i := uint32(0); i < n-e; i++ {
		c := a.Coeffs[i]
		if neg {
			c = -c
		}
		p.Coeffs[i+e] = c
	}
	for i := n - e; i < n; i++ {
		c := a.Coeffs[i]
		if neg {
			c = -c
		}
		p.Coeffs[i+e-n] = -c
	}
}

// IntPoly is a polynomial with small signed integer coefficients, the
// output domain of gadget decomposition.
type IntPoly struct {
	Coeffs []int32
}

// NewIntPoly allocates a zero integer polynomial of degree n.
func NewIntPoly(n int) *IntPoly {
	return &IntPoly{Coeffs: make([]int32, n)}
}

// AddMul sets p += d * a modulo X^N + 1, where d has small integer
// coefficients. This schoolbook O(N^2) negacyclic convolution is the
// single entry point for polynomial multiplication in the scheme; a
// transform-based multiply can replace it without touching callers.
func (p *Poly) AddMul(d *IntPoly, a *Poly) {
	n := len(p.Coeffs)
	for i, di := range d.Coeffs {
		c := T(di)
		for j, aj := range a.Coeffs {
			if k := i + j; k < n {
				p.Coeffs[k] += c * aj
			} else {
				p.Coeffs[k-n] -= c * aj
			}
		}
	}
}
