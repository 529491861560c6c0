// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package sampling

import (
	"encoding/binary"
	"math"

	"github.com/ghostcrypt/tfhe/torus"
)

// UniformSampler draws torus elements uniformly at random.
type UniformSampler struct {
	prng PRNG
	buf  [4]byte
}

// NewUniformSampler creates a uniform sampler reading from prng.
func NewUniformSampler(prng PRNG) *UniformSampler {
	return &UniformSampler{prng: prng}
}

// Sample returns a uniform torus element.
func (s *UniformSampler) Sample() torus.T {
	if _, err := s.prng.Read(s.buf[:]); err != nil {
		panic(err)
	}
	return torus.T(binary.LittleEndian.Uint32(s.buf[:]))
}

// SamplePoly fills p with uniform coefficients.
func (s *UniformSampler) SamplePoly(p *torus.Poly) {
	for i := range p.Coeffs {
		p.Coeffs[i] = s.Sample()
	}
}

// BinarySampler draws uniform bits, used for secret key coefficients.
type BinarySampler struct {
	prng PRNG
	buf  [1]byte
	left int
}

// NewBinarySampler creates a binary sampler reading from prng.
func NewBinarySampler(prng PRNG) *BinarySampler {
	return &BinarySampler{prng: prng}
}

// Sample returns a uniform bit as 0 or 1.
func (s *BinarySampler) Sample() int32 {
	if s.left == 0 {
		if _, err := s.prng.Read(s.buf[:]); err != nil {
			panic(err)
		}
		s.left = 8
	}
	s.left--
	return int32((s.buf[0] >> s.left) & 1)
}

// SampleSlice fills dst with uniform bits.
func (s *BinarySampler) SampleSlice(dst []int32) {
	for i := range dst {
		dst[i] = s.Sample()
	}
}

// GaussianSampler draws discretized gaussian torus offsets of a fixed
// standard deviation, used as encryption noise.
//
// Noise composition: summing j independent samples of variance sigma^2
// yields variance j*sigma^2; linear combinations grow variance as the
// sum of squared weights. This rule is used analytically to bound gate
// noise — the external product and the bootstrap instead reset noise to
// a fixed target variance independent of the input's prior noise.
type GaussianSampler struct {
	prng   PRNG
	stdDev float64
	buf    [16]byte
	spare  float64
	hasSp  bool
}

// NewGaussianSampler creates a gaussian sampler of standard deviation
// stdDev (as a fraction of the torus) reading from prng.
func NewGaussianSampler(prng PRNG, stdDev float64) *GaussianSampler {
	return &GaussianSampler{prng: prng, stdDev: stdDev}
}

// StdDev returns the standard deviation of the sampler.
func (s *GaussianSampler) StdDev() float64 { return s.stdDev }

// normFloat64 returns a standard normal variate via Box-Muller over
// PRNG bytes.
func (s *GaussianSampler) normFloat64() float64 {
	if s.hasSp {
		s.hasSp = false
		return s.spare
	}
	if _, err := s.prng.Read(s.buf[:]); err != nil {
		panic(err)
	}
	// Map to (0,1]: the +1 excludes an exact zero for the log.
	u1 := (float64(binary.LittleEndian.Uint64(s.buf[0:8])>>11) + 1) / (1 << 53)
	u2 := float64(binary.LittleEndian.Uint64(s.buf[8:16])>>11) / (1 << 53)
	r := math.Sqrt(-2 * math.Log(u1))
	s.spare = r * math.Sin(2*math.Pi*u2)
	s.hasSp = true
	return r * math.Cos(2*math.Pi*u2)
}

// Sample returns a torus offset distributed as a rounded gaussian of
// the sampler's standard deviation.
func (s *GaussianSampler) Sample() torus.T {
	return torus.FromFloat64(s.normFloat64() * s.stdDev)
}

// SamplePoly fills p with independent gaussian coefficients.
func (s *GaussianSampler) SamplePoly(p *torus.Poly) {
	for i := range p.Coeffs {
		p.Coeffs[i] = s.Sample()
	}
}
