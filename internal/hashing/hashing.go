// Package hashing provides the digest backends used by the scan pipeline.
// The set of algorithms is closed and selected once at scan start.
package hashing

import (
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/cespare/xxhash/v2"
	"github.com/minio/highwayhash"
	"lukechampine.com/blake3"
)

// Algorithm names a supported digest backend.
type Algorithm string

const (
	// AlgorithmXXHash is the default: a fast 64-bit non-cryptographic digest.
	AlgorithmXXHash Algorithm = "xxhash"

	// AlgorithmHighway is HighwayHash-64.
	AlgorithmHighway Algorithm = "highway"

	// AlgorithmBlake3 is a 128-bit cryptographic digest for callers that
	// want collision resistance beyond the byte-comparison safety net.
	AlgorithmBlake3 Algorithm = "blake3"
)

// highwayKey is fixed: the digest is used for grouping, not authentication.
var highwayKey = [32]byte{
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
	0xf0, 0xe0, 0xd0, 0xc0, 0xb0, 0xa0, 0x90, 0x80,
	0x70, 0x60, 0x50, 0x40, 0x30, 0x20, 0x10, 0x00,
}

// Hasher accumulates bytes and produces a hex digest.
type Hasher interface {
	Update(p []byte)
	Finalize() string
}

// Algorithms returns the supported algorithm names.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmXXHash, AlgorithmHighway, AlgorithmBlake3}
}

// Parse validates an algorithm name.
func Parse(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case AlgorithmXXHash, AlgorithmHighway, AlgorithmBlake3:
		return Algorithm(name), nil
	case "":
		return AlgorithmXXHash, nil
	default:
		return "", fmt.Errorf("unknown hash algorithm %q (supported: %v)", name, Algorithms())
	}
}

// New returns a fresh Hasher for the given algorithm.
func New(algo Algorithm) (Hasher, error) {
	switch algo {
	case AlgorithmXXHash:
		return &hash64Hasher{h: xxhash.New()}, nil
	case AlgorithmHighway:
		h, err := highwayhash.New64(highwayKey[:])
		if err != nil {
			return nil, fmt.Errorf("initializing highwayhash: %w", err)
		}
		return &hash64Hasher{h: h}, nil
	case AlgorithmBlake3:
		return &blake3Hasher{h: blake3.New(16, nil)}, nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q (supported: %v)", algo, Algorithms())
	}
}

type hash64Hasher struct {
	h hash.Hash64
}

func (x *hash64Hasher) Update(p []byte) {
	// Hash64 writers never return an error.
	_, _ = x.h.Write(p)
}

func (x *hash64Hasher) Finalize() string {
	return fmt.Sprintf("%016x", x.h.Sum64())
}

type blake3Hasher struct {
	h *blake3.Hasher
}

func (b *blake3Hasher) Update(p []byte) {
	_, _ = b.h.Write(p)
}

func (b *blake3Hasher) Finalize() string {
	return hex.EncodeToString(b.h.Sum(nil))
}
