// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package smt

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/minio/blake2b-simd"
)

// defaultPersonal is the CKB default hash personalization string: 16 bytes,
// zero salt, fanout 1, depth 1.
const defaultPersonal = "ckb-default-hash"

// BlakeHasher is the interface the VM consults for hashing. It is an
// interface rather than a concrete type so tests can substitute a fake
// hasher to exercise stack/ordering logic independent of real BLAKE2b
// output, the same interface-for-a-mock pattern used throughout this
// codebase to isolate pure logic from an external dependency.
type BlakeHasher interface {
	// Sum256 returns the 32-byte BLAKE2b-256 digest of the concatenation of
	// the given byte slices, using the ckb-default-hash personalization.
	Sum256(parts ...[]byte) [32]byte
}

// Hasher wraps a BlakeHasher with the two domain-separated framings the
// verifier needs: base-node hashing (no domain tag) and merge hashing
// (MERGE_NORMAL/MERGE_ZEROS tags).
type Hasher struct {
	h BlakeHasher
}

// NewHasher returns a Hasher built on the real BLAKE2b-256 implementation.
func NewHasher() *Hasher {
	return &Hasher{h: blake2bSimd{}}
}

// NewHasherWithBackend builds a Hasher over a caller-supplied BlakeHasher,
// for testing.
func NewHasherWithBackend(h BlakeHasher) *Hasher {
	return &Hasher{h: h}
}

// baseNode computes H(height || key || value), used to seed a
// MergeWithZero from a fresh Value. No domain tag is prepended.
func (hh *Hasher) baseNode(height uint8, key *Key, value Value) Value {
	return hh.h.Sum256([]byte{height}, key[:], value[:])
}

// mergeNormalDigest computes BLAKE2b-256(MERGE_NORMAL || h || K || L || R).
func (hh *Hasher) mergeNormalDigest(height uint8, parentKey *Key, l, r Value) Value {
	return hh.h.Sum256([]byte{mergeNormal, height}, parentKey[:], l[:], r[:])
}

// mergeZerosDigest computes BLAKE2b-256(MERGE_ZEROS || base || zero_bits || zero_count).
func (hh *Hasher) mergeZerosDigest(base Value, zeroBits *bitset.BitSet, zeroCount uint8) Value {
	zb := zeroBitsBytes(zeroBits)
	return hh.h.Sum256([]byte{mergeZeros}, base[:], zb[:], []byte{zeroCount})
}

// blake2bSimd is the production BlakeHasher backend, built on
// github.com/minio/blake2b-simd configured with the ckb-default-hash
// personalization (zero key, zero salt, fanout 1, depth 1; blake2b-simd's
// Config defaults fanout/depth to the sequential values when Key/Salt/Tree
// are left unset).
type blake2bSimd struct{}

func (blake2bSimd) Sum256(parts ...[]byte) [32]byte {
	hh, err := blake2b.New(&blake2b.Config{
		Size:   32,
		Person: []byte(defaultPersonal),
	})
	if err != nil {
		// Size=32 and a 16-byte Person are always valid for blake2b-simd;
		// a non-nil error here would mean the backend's invariants changed
		// under us.
		panic(err)
	}
	for _, p := range parts {
		_, _ = hh.Write(p)
	}
	var out [32]byte
	copy(out[:], hh.Sum(nil))
	return out
}
