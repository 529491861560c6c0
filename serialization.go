// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package tfhe

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ghostcrypt/tfhe/lwe"
	"github.com/ghostcrypt/tfhe/tgsw"
	"github.com/ghostcrypt/tfhe/tlwe"
	"github.com/ghostcrypt/tfhe/torus"
)

// Serialized objects are self-describing with respect to their
// parameter set: every encoding starts with a fixed header carrying a
// magic, a format version and the 8-byte parameter fingerprint, and
// decoding rejects data whose fingerprint does not match the supplied
// Parameters.

var serialMagic = [4]byte{'G', 'C', 'T', 'F'}

const serialVersion = 1

const (
	objParameters byte = iota + 1
	objCiphertext
	objSecretKey
	objBootstrapKey
)

func writeHeader(buf *bytes.Buffer, obj byte, fp [8]byte) {
	buf.Write(serialMagic[:])
	buf.WriteByte(serialVersion)
	buf.WriteByte(obj)
	buf.Write(fp[:])
}

// readHeader distinguishes truncated input (an io error) from intact
// data in a foreign format or parameter set (ErrParamsMismatch).
func readHeader(r *bytes.Reader, obj byte) (fp [8]byte, err error) {
	var magic [4]byte
	if _, err = io.ReadFull(r, magic[:]); err != nil {
		return fp, fmt.Errorf("tfhe: truncated header: %w", err)
	}
	if magic != serialMagic {
		return fp, fmt.Errorf("tfhe: bad magic: %w", ErrParamsMismatch)
	}
	version, err := r.ReadByte()
	if err != nil {
		return fp, fmt.Errorf("tfhe: truncated header: %w", io.ErrUnexpectedEOF)
	}
	if version != serialVersion {
		return fp, fmt.Errorf("tfhe: unsupported format version %d: %w", version, ErrParamsMismatch)
	}
	got, err := r.ReadByte()
	if err != nil {
		return fp, fmt.Errorf("tfhe: truncated header: %w", io.ErrUnexpectedEOF)
	}
	if got != obj {
		return fp, fmt.Errorf("tfhe: unexpected object type %d: %w", got, ErrParamsMismatch)
	}
	if _, err = io.ReadFull(r, fp[:]); err != nil {
		return fp, fmt.Errorf("tfhe: truncated header: %w", err)
	}
	return fp, nil
}

func writePoly(buf *bytes.Buffer, p *torus.Poly) {
	var b [4]byte
	for _, c := range p.Coeffs {
		binary.LittleEndian.PutUint32(b[:], uint32(c))
		buf.Write(b[:])
	}
}

func readPoly(r *bytes.Reader, p *torus.Poly) error {
	var b [4]byte
	for i := range p.Coeffs {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}
		p.Coeffs[i] = torus.T(binary.LittleEndian.Uint32(b[:]))
	}
	return nil
}

func writeLwe(buf *bytes.Buffer, ct *lwe.Ciphertext) {
	var b [4]byte
	for _, c := range ct.A {
		binary.LittleEndian.PutUint32(b[:], uint32(c))
		buf.Write(b[:])
	}
	binary.LittleEndian.PutUint32(b[:], uint32(ct.B))
	buf.Write(b[:])
}

func readLwe(r *bytes.Reader, ct *lwe.Ciphertext) error {
	var b [4]byte
	for i := range ct.A {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}
		ct.A[i] = torus.T(binary.LittleEndian.Uint32(b[:]))
	}
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}
	ct.B = torus.T(binary.LittleEndian.Uint32(b[:]))
	return nil
}

// MarshalBinary serializes the parameter set, fingerprint included.
func (p Parameters) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	writeHeader(buf, objParameters, p.fingerprint)
	for _, v := range []int{
		p.lit.LweDimension, p.lit.GlweRank, p.lit.PolyDegree,
		p.lit.BgBit, p.lit.BgLevel, p.lit.KsBaseBit, p.lit.KsLevel,
	} {
		binary.Write(buf, binary.LittleEndian, int64(v))
	}
	binary.Write(buf, binary.LittleEndian, p.lit.LweStdDev)
	binary.Write(buf, binary.LittleEndian, p.lit.GlweStdDev)
	return buf.Bytes(), nil
}

// UnmarshalBinary deserializes and re-validates a parameter set,
// verifying the recorded fingerprint.
func (p *Parameters) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	fp, err := readHeader(r, objParameters)
	if err != nil {
		return err
	}
	var lit ParametersLiteral
	var ints [7]int64
	for i := range ints {
		if err := binary.Read(r, binary.LittleEndian, &ints[i]); err != nil {
			return err
		}
	}
	lit.LweDimension, lit.GlweRank, lit.PolyDegree = int(ints[0]), int(ints[1]), int(ints[2])
	lit.BgBit, lit.BgLevel, lit.KsBaseBit, lit.KsLevel = int(ints[3]), int(ints[4]), int(ints[5]), int(ints[6])
	if err := binary.Read(r, binary.LittleEndian, &lit.LweStdDev); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &lit.GlweStdDev); err != nil {
		return err
	}
	params, err := NewParametersFromLiteral(lit)
	if err != nil {
		return err
	}
	if params.fingerprint != fp {
		return ErrParamsMismatch
	}
	*p = params
	return nil
}

// MarshalBinary serializes the ciphertext with its parameter
// fingerprint.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	writeHeader(buf, objCiphertext, ct.fingerprint)
	binary.Write(buf, binary.LittleEndian, uint32(ct.Value.N()))
	writeLwe(buf, ct.Value)
	return buf.Bytes(), nil
}

// ReadCiphertext deserializes a ciphertext, rejecting data encrypted
// under a parameter set other than params.
func ReadCiphertext(data []byte, params Parameters) (*Ciphertext, error) {
	r := bytes.NewReader(data)
	fp, err := readHeader(r, objCiphertext)
	if err != nil {
		return nil, err
	}
	if fp != params.fingerprint {
		return nil, ErrParamsMismatch
	}
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	if int(n) != params.LweDimension() {
		return nil, ErrParamsMismatch
	}
	ct := &Ciphertext{Value: lwe.NewCiphertext(int(n)), fingerprint: fp}
	if err := readLwe(r, ct.Value); err != nil {
		return nil, err
	}
	return ct, nil
}

// MarshalBinary serializes the secret key bundle half. Handle with
// care: the encoding is plaintext key material.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	writeHeader(buf, objSecretKey, sk.params.fingerprint)
	for _, c := range sk.Lwe.Coeffs {
		buf.WriteByte(byte(c))
	}
	for _, poly := range sk.Glwe.Value {
		for _, c := range poly.Coeffs {
			buf.WriteByte(byte(c))
		}
	}
	return buf.Bytes(), nil
}

// ReadSecretKey deserializes a secret key generated under params.
func ReadSecretKey(data []byte, params Parameters) (*SecretKey, error) {
	r := bytes.NewReader(data)
	fp, err := readHeader(r, objSecretKey)
	if err != nil {
		return nil, err
	}
	if fp != params.fingerprint {
		return nil, ErrParamsMismatch
	}
	sk := &SecretKey{
		Lwe:    &lwe.SecretKey{Coeffs: make([]int32, params.LweDimension())},
		Glwe:   &tlwe.SecretKey{Value: make([]*torus.IntPoly, params.GlweRank())},
		params: params,
	}
	for i := range sk.Lwe.Coeffs {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		sk.Lwe.Coeffs[i] = int32(b)
	}
	for p := range sk.Glwe.Value {
		sk.Glwe.Value[p] = torus.NewIntPoly(params.PolyDegree())
		for i := range sk.Glwe.Value[p].Coeffs {
			b, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			sk.Glwe.Value[p].Coeffs[i] = int32(b)
		}
	}
	return sk, nil
}

// MarshalBinary serializes the bootstrap key (blind-rotation entries
// followed by the key-switching key).
func (bk *BootstrapKey) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	writeHeader(buf, objBootstrapKey, bk.params.fingerprint)
	for _, entry := range bk.Entries {
		for _, rows := range entry.Rows {
			for _, row := range rows {
				for _, poly := range row.Value {
					writePoly(buf, poly)
				}
			}
		}
	}
	for _, rows := range bk.Ksk.Rows {
		for _, row := range rows {
			writeLwe(buf, row)
		}
	}
	return buf.Bytes(), nil
}

// ReadBootstrapKey deserializes a bootstrap key generated under params.
func ReadBootstrapKey(data []byte, params Parameters) (*BootstrapKey, error) {
	r := bytes.NewReader(data)
	fp, err := readHeader(r, objBootstrapKey)
	if err != nil {
		return nil, err
	}
	if fp != params.fingerprint {
		return nil, ErrParamsMismatch
	}

	k, n := params.GlweRank(), params.PolyDegree()
	bk := &BootstrapKey{
		Entries: make([]*tgsw.Ciphertext, params.LweDimension()),
		params:  params,
	}
	for i := range bk.Entries {
		entry := tgsw.NewCiphertext(k, n, params.BgBit(), params.BgLevel())
		for _, rows := range entry.Rows {
			for _, row := range rows {
				for _, poly := range row.Value {
					if err := readPoly(r, poly); err != nil {
						return nil, err
					}
				}
			}
		}
		bk.Entries[i] = entry
	}

	ksk := lwe.NewKeySwitchKey(params.ExtractedDimension(), params.LweDimension(),
		params.KsBaseBit(), params.KsLevel())
	for i := range ksk.Rows {
		for j := range ksk.Rows[i] {
			if err := readLwe(r, ksk.Rows[i][j]); err != nil {
				return nil, err
			}
		}
	}
	bk.Ksk = ksk
	return bk, nil
}
