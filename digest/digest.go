// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package digest defines the pluggable 64-byte hash contract this system
// signs over, and provides one concrete implementation for tests and the
// cmd/gostsign demo driver.
//
// Spec §1 treats the real hash function — GOST R 34.11-2012, aka
// Streebog-512 — as an external collaborator: "the hash function
// implementation itself" is explicitly out of scope. This package does not
// implement Streebog. Reference exists only so callers that don't have a
// Streebog implementation on hand can still exercise the rest of the stack
// end to end with a real, correctly-sized digest.
package digest

import (
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Length is the fixed digest size this system signs over.
const Length = 64

// Func hashes data and returns a 64-byte digest, or an error if the
// underlying implementation cannot produce one (for example, an I/O failure
// in a streaming hardware implementation). Implementations MUST return
// exactly Length bytes on success; callers are expected to validate this
// with CheckLength before trusting the result.
type Func func(data []byte) ([Length]byte, error)

// CheckLength reports a non-nil error if d is not exactly Length bytes,
// matching spec §7's ErrDigestLength.
func CheckLength(d []byte) error {
	if len(d) != Length {
		return fmt.Errorf("gost3410/digest: digest must be %d bytes, got %d", Length, len(d))
	}
	return nil
}

// Reference is a concrete Func backed by SHA3-512, which happens to share
// this system's 64-byte output size. It is not GOST R 34.11-2012 and is not
// wire-compatible with a real Streebog-based signer or verifier; it exists
// solely as a drop-in stand-in for tests, examples, and the cmd/gostsign
// demo driver so they don't need a full GOST hash implementation to
// exercise the signature and envelope machinery.
func Reference(data []byte) ([Length]byte, error) {
	return sha3.Sum512(data), nil
}
