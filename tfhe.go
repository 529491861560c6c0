// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

// Package tfhe implements the TFHE (Torus Fully Homomorphic Encryption)
// scheme for boolean circuit evaluation on encrypted data.
//
// TFHE evaluates boolean gates directly on encrypted bits, refreshing
// the ciphertext noise with a bootstrap after each gate so circuits of
// unbounded depth remain decryptable.
//
// The scheme is layered over in-tree primitives:
//   - torus: exact fixed-point arithmetic modulo 1
//   - lwe: scalar lattice encryption for bits and key switching
//   - tlwe: the polynomial-ring generalization used by bootstrapping
//   - tgsw: gadget-decomposed encryption and the CMux primitive
//
// Encoding convention: false is -1/8 and true is +1/8 on the torus,
// decoded by the sign of the centered phase. Gate linear combinations
// and the bootstrap test polynomial below are all chosen against this
// convention.
package tfhe

import (
	"bytes"
	"encoding/binary"
	"math/bits"

	"github.com/zeebo/blake3"

	"github.com/ghostcrypt/tfhe/torus"
)

// ParametersLiteral is a user-friendly parameter specification.
type ParametersLiteral struct {
	// LweDimension is the LWE dimension n.
	LweDimension int
	// GlweRank is the TLWE key arity k.
	GlweRank int
	// PolyDegree is the TLWE polynomial degree N (a power of two).
	PolyDegree int
	// BgBit is log2 of the gadget decomposition base Bg.
	BgBit int
	// BgLevel is the gadget decomposition level count l.
	BgLevel int
	// KsBaseBit is log2 of the key-switching base Bks.
	KsBaseBit int
	// KsLevel is the key-switching level count t.
	KsLevel int
	// LweStdDev is the standard deviation of LWE encryption noise, as a
	// fraction of the torus.
	LweStdDev float64
	// GlweStdDev is the standard deviation of TLWE/TGSW encryption
	// noise, as a fraction of the torus.
	GlweStdDev float64
}

// Standard parameter sets.
var (
	// ParamsBoolean128 targets ~128-bit security for boolean gate
	// bootstrapping, with gate failure probability below 2^-30.
	// n=630, N=1024, k=1, Bg=2^7, l=3, Bks=4, t=8.
	ParamsBoolean128 = ParametersLiteral{
		LweDimension: 630,
		GlweRank:     1,
		PolyDegree:   1024,
		BgBit:        7,
		BgLevel:      3,
		KsBaseBit:    2,
		KsLevel:      8,
		LweStdDev:    3.05e-5,
		GlweStdDev:   7.18e-9,
	}

	// ParamsBooleanTest trades security for speed: reduced dimensions
	// with very wide correctness margins (gate phase stays >15 standard
	// deviations from the decision boundary). Test use only.
	ParamsBooleanTest = ParametersLiteral{
		LweDimension: 200,
		GlweRank:     1,
		PolyDegree:   256,
		BgBit:        6,
		BgLevel:      3,
		KsBaseBit:    2,
		KsLevel:      8,
		LweStdDev:    3.05e-5,
		GlweStdDev:   2.98e-8,
	}
)

// Parameters is an immutable, validated parameter set. All keys and
// ciphertexts are bound to exactly one Parameters instance, identified
// by its fingerprint.
type Parameters struct {
	lit         ParametersLiteral
	fingerprint [8]byte
}

// NewParametersFromLiteral validates lit and returns the corresponding
// Parameters. It fails with ErrParams on any inconsistency: zero or
// negative dimensions, a non-power-of-two degree, a decomposition whose
// Bg^l or Bks^t overflows the 32-bit working modulus, or noise levels
// too large for the 1/8 message spacing (stddev >= 2^-6 would put the
// ±6 sigma mass across the decision boundary).
func NewParametersFromLiteral(lit ParametersLiteral) (Parameters, error) {
	switch {
	case lit.LweDimension <= 0,
		lit.GlweRank <= 0,
		lit.PolyDegree < 16 || bits.OnesCount(uint(lit.PolyDegree)) != 1,
		lit.BgBit <= 0 || lit.BgLevel <= 0,
		lit.BgBit*lit.BgLevel > torus.Bits,
		lit.KsBaseBit <= 0 || lit.KsLevel <= 0,
		lit.KsBaseBit*lit.KsLevel > torus.Bits,
		lit.LweStdDev <= 0 || lit.LweStdDev >= 1.0/64,
		lit.GlweStdDev <= 0 || lit.GlweStdDev >= 1.0/64:
		return Parameters{}, ErrParams
	}

	return Parameters{lit: lit, fingerprint: fingerprintLiteral(lit)}, nil
}

// fingerprintLiteral hashes the packed literal into the 8-byte
// parameter-set identifier embedded in every serialized object.
func fingerprintLiteral(lit ParametersLiteral) (fp [8]byte) {
	buf := new(bytes.Buffer)
	for _, v := range []int{
		lit.LweDimension, lit.GlweRank, lit.PolyDegree,
		lit.BgBit, lit.BgLevel, lit.KsBaseBit, lit.KsLevel,
	} {
		binary.Write(buf, binary.LittleEndian, int64(v))
	}
	binary.Write(buf, binary.LittleEndian, lit.LweStdDev)
	binary.Write(buf, binary.LittleEndian, lit.GlweStdDev)
	sum := blake3.Sum256(buf.Bytes())
	copy(fp[:], sum[:8])
	return fp
}

// LweDimension returns the LWE dimension n.
func (p Parameters) LweDimension() int { return p.lit.LweDimension }

// GlweRank returns the TLWE key arity k.
func (p Parameters) GlweRank() int { return p.lit.GlweRank }

// PolyDegree returns the TLWE polynomial degree N.
func (p Parameters) PolyDegree() int { return p.lit.PolyDegree }

// BgBit returns log2 of the gadget base.
func (p Parameters) BgBit() int { return p.lit.BgBit }

// BgLevel returns the gadget level count l.
func (p Parameters) BgLevel() int { return p.lit.BgLevel }

// KsBaseBit returns log2 of the key-switching base.
func (p Parameters) KsBaseBit() int { return p.lit.KsBaseBit }

// KsLevel returns the key-switching level count t.
func (p Parameters) KsLevel() int { return p.lit.KsLevel }

// LweStdDev returns the LWE noise standard deviation.
func (p Parameters) LweStdDev() float64 { return p.lit.LweStdDev }

// GlweStdDev returns the TLWE noise standard deviation.
func (p Parameters) GlweStdDev() float64 { return p.lit.GlweStdDev }

// ExtractedDimension returns k*N, the dimension of samples extracted
// from the blind-rotation accumulator before key switching.
func (p Parameters) ExtractedDimension() int { return p.lit.GlweRank * p.lit.PolyDegree }

// Fingerprint returns the parameter-set identifier.
func (p Parameters) Fingerprint() [8]byte { return p.fingerprint }

// Literal returns a copy of the validated literal.
func (p Parameters) Literal() ParametersLiteral { return p.lit }

// Equal reports whether p and q are the same parameter set.
func (p Parameters) Equal(q Parameters) bool { return p.fingerprint == q.fingerprint }

// EncodeBool maps a boolean to its torus representative: +1/8 for true,
// -1/8 for false. Adjacent representatives are 1/4 apart, twice the
// guard distance used by decoding.
func EncodeBool(v bool) torus.T {
	if v {
		return torus.FromFloat64(0.125)
	}
	return torus.FromFloat64(-0.125)
}

// DecodeBool rounds a torus point to the nearest representative: true
// for a centered phase in (0, 1/2), false otherwise.
func DecodeBool(t torus.T) bool {
	return int32(t) > 0
}
