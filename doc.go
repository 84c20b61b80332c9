// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package gost3410 implements the elliptic-curve primitives of GOST R
34.10-2012 over an arbitrary 512-bit Weierstrass curve: domain-parameter
validation, affine point addition, scalar multiplication, and the
signature/verification equations themselves.

The curve is not fixed at compile time the way it is for most elliptic
curve packages. Callers supply (or the envelope subpackage decodes) the
field prime, subgroup order, Weierstrass coefficients, and base point,
and this package validates and operates on them directly using
arbitrary-precision arithmetic. This matches the on-disk contract: a
signed file's companion .sign envelope embeds its own domain parameters
so that verification never depends on a statically compiled curve table.

Two named RFC 7836 parameter sets are provided for convenience in
params.go. Hashing (GOST R 34.11-2012, aka Streebog) is treated as an
external collaborator; see the digest subpackage for the pluggable
64-byte digest contract, and the envelope subpackage for the DER wire
format that carries a signature alongside the parameters needed to
verify it.

This package is not constant-time. See the Verify doc comment for
details.
*/
package gost3410
