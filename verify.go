// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gost3410

import (
	"math/big"

	"github.com/dokzlo13/gost3410-util/digest"
)

// Verify reports whether (r, s) is a valid GOST R 34.10-2012 signature over
// digest for the public point pub on curve c.
//
// Verify is a total function: any numeric failure encountered while working
// the verification equation — an out-of-range scalar landing on
// ScalarMult's k < 2 precondition, or the two accumulator points colliding
// such that the combining step's modular inverse does not exist — is
// reported as a plain false result, never as an error. Only a structurally
// malformed digest (wrong length) is rejected outside that total-function
// contract, since that is a caller programming error rather than a
// cryptographic failure mode.
//
// Verify is explicitly not constant-time: early returns and the underlying
// big.Int arithmetic leak timing information correlated with r, s, and the
// digest. Hardening this is an open issue; see spec §9.
func Verify(c *Curve, pub AffinePoint, digestBytes []byte, r, s *big.Int) bool {
	if digest.CheckLength(digestBytes) != nil {
		return false
	}

	one := big.NewInt(1)
	qMinus1 := new(big.Int).Sub(c.Q, one)
	if r.Cmp(one) < 0 || r.Cmp(qMinus1) > 0 || s.Cmp(one) < 0 || s.Cmp(qMinus1) > 0 {
		return false
	}

	e := new(big.Int).Mod(BytesToInt(digestBytes), c.Q)
	if e.Sign() == 0 {
		e = big.NewInt(1)
	}

	v, err := ModInvert(e, c.Q)
	if err != nil {
		return false
	}

	z1 := new(big.Int).Mul(s, v)
	z1.Mod(z1, c.Q)

	z2 := new(big.Int).Mul(r, v)
	z2.Mod(z2, c.Q)
	z2.Sub(c.Q, z2)
	z2.Mod(z2, c.Q)

	// z1 or z2 landing below 2 (including zero) is the degenerate
	// ScalarMult input rejected by spec §4.2; treat it as a
	// verification failure rather than propagating an error, per §4.4.
	two := big.NewInt(2)
	if z1.Cmp(two) < 0 || z2.Cmp(two) < 0 {
		return false
	}

	p1, err := c.ScalarMult(z1, nil)
	if err != nil {
		return false
	}
	q1, err := c.ScalarMult(z2, &pub)
	if err != nil {
		return false
	}

	// Step 6-7 use the single general (non-doubling) combining formula of
	// spec §4.4 verbatim, unlike Curve.Add, which special-cases p1 == p2
	// for use during ScalarMult's double-and-add. Reusing Curve.Add here
	// would silently succeed on the astronomically unlikely but
	// spec-significant case where z1*G and z2*pub coincide; the reference
	// implementation instead lets that case fall through to a failed
	// modular inverse, which must surface as a plain false result.
	lambdaDen := normalizeMod(new(big.Int).Sub(q1.X, p1.X), c.P)
	lambdaDenInv, err := ModInvert(lambdaDen, c.P)
	if err != nil {
		return false
	}
	lambdaNum := normalizeMod(new(big.Int).Sub(q1.Y, p1.Y), c.P)
	lambda := new(big.Int).Mul(lambdaNum, lambdaDenInv)
	lambda = normalizeMod(lambda, c.P)

	x := new(big.Int).Mul(lambda, lambda)
	x.Sub(x, p1.X)
	x.Sub(x, q1.X)
	x = normalizeMod(x, c.P)

	x.Mod(x, c.Q)
	if x.Sign() < 0 {
		x.Add(x, c.Q)
	}
	return x.Cmp(r) == 0
}
