// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

// Package sampling provides the sources of randomness of the scheme:
// a pluggable PRNG abstraction and the uniform, binary and discretized
// gaussian samplers built on top of it.
//
// Seeding policy: production callers use ThreadSafePRNG, which reads
// from the operating system CSPRNG and never needs reseeding. KeyedPRNG
// is a blake2b XOF expanding an explicit seed; it exists for
// deterministic key generation and reproducible tests and is
// thread-confined (reads are mutex-guarded so a shared instance is
// safe, but the produced sequence then depends on scheduling).
package sampling

import (
	"crypto/rand"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// PRNG is a source of random bytes. Every key-generation, encryption
// and noise-sampling call takes one explicitly; there is no package
// level generator.
type PRNG interface {
	io.Reader
}

// ThreadSafePRNG reads from crypto/rand and is safe for concurrent use.
type ThreadSafePRNG struct{}

// NewPRNG returns a PRNG backed by the operating system CSPRNG.
func NewPRNG() *ThreadSafePRNG {
	return &ThreadSafePRNG{}
}

func (prng *ThreadSafePRNG) Read(p []byte) (int, error) {
	return rand.Read(p)
}

// KeyedPRNG deterministically expands a seed into an unbounded byte
// sequence with the blake2b XOF. Two instances created with the same
// key produce the same sequence.
type KeyedPRNG struct {
	mu  sync.Mutex
	key []byte
	xof blake2b.XOF
}

// NewKeyedPRNG creates a deterministic PRNG from the given key. A nil
// key is accepted but yields a fixed, public sequence; never use it
// outside tests.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, err
	}
	return &KeyedPRNG{key: append([]byte(nil), key...), xof: xof}, nil
}

// Key returns a copy of the seed key.
func (prng *KeyedPRNG) Key() []byte {
	return append([]byte(nil), prng.key...)
}

func (prng *KeyedPRNG) Read(p []byte) (int, error) {
	prng.mu.Lock()
	defer prng.mu.Unlock()
	return prng.xof.Read(p)
}

// Reset rewinds the PRNG to its initial state.
func (prng *KeyedPRNG) Reset() {
	prng.mu.Lock()
	defer prng.mu.Unlock()
	prng.xof.Reset()
}
