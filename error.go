// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gost3410

import "fmt"

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reaction to an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrInvalidCurve indicates the base-point equation
	// y^2 = x^3 + a*x + b (mod p) does not hold for the supplied domain
	// parameters, or that reconstructed parameters are otherwise
	// structurally invalid.
	ErrInvalidCurve = ErrorKind("ErrInvalidCurve")

	// ErrBadScalar indicates ScalarMult was called with a scalar less
	// than 2, or that a private-key scalar was out of the valid
	// [1, q-1] range.
	ErrBadScalar = ErrorKind("ErrBadScalar")

	// ErrNoInverse indicates a modular multiplicative inverse does not
	// exist because the operands are not coprime.
	ErrNoInverse = ErrorKind("ErrNoInverse")

	// ErrBadEnvelope indicates a DER-encoded signature envelope failed
	// to parse, had an unexpected structure, or carried an algorithm
	// identifier other than the one this format requires.
	ErrBadEnvelope = ErrorKind("ErrBadEnvelope")

	// ErrDigestLength indicates a digest adapter returned a digest
	// whose length is not exactly 64 bytes.
	ErrDigestLength = ErrorKind("ErrDigestLength")

	// ErrIO indicates a file read or write failure.
	ErrIO = ErrorKind("ErrIO")

	// ErrSignFailed wraps any failure encountered by the top-level file
	// signing operation; the wrapped error preserves the underlying
	// kind for diagnostics.
	ErrSignFailed = ErrorKind("ErrSignFailed")

	// ErrVerifyFailed wraps any failure encountered by the top-level
	// file verification operation that isn't itself a simple
	// false-but-well-formed result; the wrapped error preserves the
	// underlying kind for diagnostics.
	ErrVerifyFailed = ErrorKind("ErrVerifyFailed")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to GOST R 34.10-2012 operations. It has
// full support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string

	// Cause, when non-nil, is a lower-level error this one wraps — for
	// example ErrVerifyFailed wrapping an ErrBadEnvelope produced while
	// decoding a signature envelope. Unwrap returns Cause when present so
	// errors.Is/errors.As can see through both levels of kind at once;
	// when absent, Unwrap falls back to Err itself.
	Cause error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error: Cause if this Error wraps a
// lower-level error, otherwise the ErrorKind itself.
func (e Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Err
}

// Is implements the interface to work with the standard library's errors.Is.
//
// It reports true when target is an ErrorKind, or an Error carrying an
// ErrorKind, equal to the ErrorKind in e.Err; any other target yields false.
func (e Error) Is(target error) bool {
	var kind ErrorKind
	switch target := target.(type) {
	case ErrorKind:
		kind = target
	case Error:
		k, ok := target.Err.(ErrorKind)
		if !ok {
			return false
		}
		kind = k
	default:
		return false
	}
	err, ok := e.Err.(ErrorKind)
	if !ok {
		return false
	}
	return err == kind
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// wrapErrorf wraps an existing error in a new kind, preserving the original
// for diagnostics via Unwrap while attaching a kind-specific message.
func wrapErrorf(kind ErrorKind, err error, format string, args ...interface{}) Error {
	return Error{Err: kind, Cause: err, Description: fmt.Sprintf(format, args...) + ": " + err.Error()}
}
