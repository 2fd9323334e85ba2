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

import "sort"

// Pair is a single key/value assertion. Order is a normalize-time
// tiebreaker; it has no meaning before or after normalize() runs other than
// breaking ties between equal keys.
type Pair struct {
	Key   Key
	Value Value
	order uint32
}

// State is a bounded sequence of assertions, borrowed read-only by the proof
// VM once normalized. It has no persistence: it lives for exactly one
// verification call.
type State struct {
	pairs    []Pair
	capacity int
}

// NewState allocates a State with the given fixed capacity.
func NewState(capacity int) *State {
	return &State{pairs: make([]Pair, 0, capacity), capacity: capacity}
}

// Len returns the number of assertions currently held.
func (s *State) Len() int { return len(s.pairs) }

// Insert adds (key, value). If the state is below capacity the pair is
// appended; otherwise the newest-to-oldest matching key is overwritten, or
// ErrInsufficientCapacity is returned if no match exists.
func (s *State) Insert(key Key, value Value) error {
	if len(s.pairs) < s.capacity {
		s.pairs = append(s.pairs, Pair{Key: key, Value: value})
		return nil
	}
	for i := len(s.pairs) - 1; i >= 0; i-- {
		if s.pairs[i].Key == key {
			s.pairs[i].Value = value
			return nil
		}
	}
	return newError(InsufficientCapacity, "state at capacity %d, key not present", s.capacity)
}

// Fetch searches newest-to-oldest for key, returning ErrNotFound if absent.
func (s *State) Fetch(key Key) (Value, error) {
	for i := len(s.pairs) - 1; i >= 0; i-- {
		if s.pairs[i].Key == key {
			return s.pairs[i].Value, nil
		}
	}
	return Value{}, newError(NotFound, "key not present")
}

// keyLess is the big-endian descending comparison: compare byte 31 down to
// byte 0, largest first.
func keyLess(a, b *Key) int {
	for i := KeyBytes - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Normalize assigns order = len-i to entry i (earlier insertions get higher
// order), stably sorts by (key desc, order asc), then collapses consecutive
// same-key runs keeping the first occurrence. Because the entry inserted
// latest received the lowest order, the kept entry is always the
// last-write-wins one.
func (s *State) Normalize() {
	n := len(s.pairs)
	for i := range s.pairs {
		s.pairs[i].order = uint32(n - i)
	}
	sort.SliceStable(s.pairs, func(i, j int) bool {
		if c := keyLess(&s.pairs[i].Key, &s.pairs[j].Key); c != 0 {
			return c < 0
		}
		return s.pairs[i].order < s.pairs[j].order
	})

	sorted := 0
	next := 0
	for next < n {
		item := next
		next++
		for next < n && s.pairs[item].Key == s.pairs[next].Key {
			next++
		}
		if item != sorted {
			s.pairs[sorted] = s.pairs[item]
		}
		sorted++
	}
	s.pairs = s.pairs[:sorted]
}

// Pairs exposes the normalized, ordered assertions. Callers must not mutate
// the returned slice's contents; it is the VM's leaf feed.
func (s *State) Pairs() []Pair { return s.pairs }
