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
)

// Kind discriminates the three MergeValue cases. Prefer branching on this
// over a type hierarchy: it is checked on every merge, a hot path.
type Kind uint8

const (
	KindZero Kind = iota
	KindValue
	KindMergeWithZero
)

// mergeNormal and mergeZeros are the single-byte domain-separation tags
// prepended inside the merge-value digest hash.
const (
	mergeNormal byte = 0x01
	mergeZeros  byte = 0x02
)

// MergeValue is a tagged representation of a subtree digest. Exactly one of
// the fields is meaningful, selected by Kind:
//
//   - KindZero: the subtree is entirely empty; digest is 32 zero bytes.
//   - KindValue: Digest is an opaque, non-zero 32-byte hash.
//   - KindMergeWithZero: Base/ZeroBits/ZeroCount describe a single
//     non-empty leaf ancestor merged with ZeroCount consecutive zero
//     siblings.
type MergeValue struct {
	Kind Kind

	// KindValue
	Digest Value

	// KindMergeWithZero
	Base      Value
	ZeroBits  *bitset.BitSet // bit h set iff the zero sibling absorbed at level h sat on the right
	ZeroCount uint8
}

// Zero is the canonical empty-subtree merge value.
func Zero() MergeValue {
	return MergeValue{Kind: KindZero}
}

// NewValue wraps a non-zero opaque digest. Callers must not pass the
// all-zero value; use Zero() instead.
func NewValue(h Value) MergeValue {
	return MergeValue{Kind: KindValue, Digest: h}
}

// zeroBitsBytes renders the 256-bit ZeroBits bitmap into the wire's 32-byte
// layout: bit i of the wire form is bit i of the bitset, matching the key
// bit-ordering convention (LSB-first within each byte).
func zeroBitsBytes(bs *bitset.BitSet) [32]byte {
	var out [32]byte
	if bs == nil {
		return out
	}
	for i := 0; i < 256; i++ {
		if bs.Test(uint(i)) {
			out[i/8] |= 1 << (uint(i) % 8)
		}
	}
	return out
}

func zeroBitsFromBytes(b []byte) *bitset.BitSet {
	bs := bitset.New(256)
	for i := 0; i < 256 && i/8 < len(b); i++ {
		if (b[i/8]>>(uint(i)%8))&1 != 0 {
			bs.Set(uint(i))
		}
	}
	return bs
}

// digest lowers a MergeValue to its raw 32-byte representation, hashing the
// MergeWithZero case exactly once.
func (h *Hasher) digest(mv MergeValue) Value {
	switch mv.Kind {
	case KindZero:
		return Value{}
	case KindValue:
		return mv.Digest
	case KindMergeWithZero:
		return h.mergeZerosDigest(mv.Base, mv.ZeroBits, mv.ZeroCount)
	default:
		return Value{}
	}
}

// absorbZero folds a Zero sibling into a non-zero MergeValue at height h,
// recording on which side (right iff zeroOnRight) the zero sibling sat.
// If mv is already KindMergeWithZero it is updated in place (copy-then-
// mutate, so the input is never clobbered before being read); if it is
// KindValue it is first seeded via the base-node hash with zeroCount = 1.
func (h *Hasher) absorbZero(mv MergeValue, height uint8, key *Key, zeroOnRight bool) MergeValue {
	var out MergeValue
	switch mv.Kind {
	case KindMergeWithZero:
		out = MergeValue{
			Kind:      KindMergeWithZero,
			Base:      mv.Base,
			ZeroBits:  mv.ZeroBits.Clone(),
			ZeroCount: mv.ZeroCount + 1,
		}
	case KindValue:
		out = MergeValue{
			Kind:      KindMergeWithZero,
			Base:      h.baseNode(height, key, mv.Digest),
			ZeroBits:  bitset.New(256),
			ZeroCount: 1,
		}
	default:
		// Absorbing a zero into a zero is handled by the caller (merge);
		// reaching here would be a logic error, but fail safe to Zero.
		return Zero()
	}
	if zeroOnRight {
		out.ZeroBits.Set(uint(height))
	} else {
		out.ZeroBits.Clear(uint(height))
	}
	return out
}

// merge combines children L, R of a parent at height h with key parentKey,
// per spec: both-zero -> Zero; one-zero -> absorb; both non-zero -> hash.
func (h *Hasher) merge(height uint8, parentKey *Key, l, r MergeValue) MergeValue {
	lZero := l.Kind == KindZero
	rZero := r.Kind == KindZero

	switch {
	case lZero && rZero:
		return Zero()
	case rZero && !lZero:
		return h.absorbZero(l, height, parentKey, true)
	case lZero && !rZero:
		return h.absorbZero(r, height, parentKey, false)
	default:
		ld := h.digest(l)
		rd := h.digest(r)
		out := h.mergeNormalDigest(height, parentKey, ld, rd)
		if out.IsZero() {
			return Zero()
		}
		return NewValue(out)
	}
}
