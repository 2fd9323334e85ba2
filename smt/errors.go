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

import "fmt"

// Code is a stable, small-integer error code. The numbering matches the
// reference SMT verifier so callers comparing codes across implementations
// see the same values.
type Code int

// The error space is flat and non-hierarchical: every failure is one of
// these five codes, and INVALID_STACK vs INVALID_PROOF is diagnostic only.
// Callers should treat any non-nil error as "this proof does not verify".
const (
	InsufficientCapacity Code = 80
	NotFound             Code = 81
	InvalidStack         Code = 82
	InvalidSibling       Code = 83 // reserved, never returned
	InvalidProof         Code = 84
)

func (c Code) String() string {
	switch c {
	case InsufficientCapacity:
		return "INSUFFICIENT_CAPACITY"
	case NotFound:
		return "NOT_FOUND"
	case InvalidStack:
		return "INVALID_STACK"
	case InvalidSibling:
		return "INVALID_SIBLING"
	case InvalidProof:
		return "INVALID_PROOF"
	default:
		return fmt.Sprintf("UNKNOWN_CODE(%d)", int(c))
	}
}

// Error is the single error type this package returns. It is comparable on
// Code via errors.Is (through *Error's Is method below), so callers can
// write `errors.Is(err, smt.ErrInvalidProof)` without type-asserting.
type Error struct {
	Code Code
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.msg)
}

// Is lets `errors.Is(err, smt.ErrInvalidProof)` work by comparing codes: Code
// is not itself an error, so we expose Is on *Error comparing against a
// sentinel *Error of the same code. See the package-level sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, msg: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is comparisons, e.g. errors.Is(err, smt.ErrInvalidProof).
var (
	ErrInsufficientCapacity = &Error{Code: InsufficientCapacity}
	ErrNotFound             = &Error{Code: NotFound}
	ErrInvalidStack         = &Error{Code: InvalidStack}
	ErrInvalidSibling       = &Error{Code: InvalidSibling}
	ErrInvalidProof         = &Error{Code: InvalidProof}
)
