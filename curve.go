// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gost3410

import "math/big"

// AffinePoint is a point (X, Y) on a Curve, both coordinates reduced into
// [0, p). The point at infinity has no affine representation; the algorithms
// in this package never produce one for the well-formed inputs this system
// accepts (see Curve.Add).
type AffinePoint struct {
	X *big.Int
	Y *big.Int
}

// Curve is an immutable Weierstrass elliptic curve over GF(p):
// y^2 = x^3 + a*x + b (mod p), together with a base point G of prime order q.
// A Curve is only ever constructed by NewCurve, which validates the base
// point lies on the curve; it is never mutated afterward, so values may be
// freely shared across concurrent Sign/Verify calls.
type Curve struct {
	P *big.Int // field prime
	Q *big.Int // prime order of the base point's subgroup
	A *big.Int // Weierstrass coefficient a
	B *big.Int // Weierstrass coefficient b
	G AffinePoint
}

// NewCurve constructs and validates a Curve. It fails with ErrInvalidCurve if
// the base point does not satisfy Gy^2 = Gx^3 + a*Gx + b (mod p).
func NewCurve(p, q, a, b, gx, gy *big.Int) (*Curve, error) {
	c := &Curve{
		P: new(big.Int).Set(p),
		Q: new(big.Int).Set(q),
		A: new(big.Int).Set(a),
		B: new(big.Int).Set(b),
		G: AffinePoint{X: new(big.Int).Set(gx), Y: new(big.Int).Set(gy)},
	}

	lhs := new(big.Int).Mul(c.G.Y, c.G.Y)
	lhs.Mod(lhs, c.P)

	rhs := new(big.Int).Mul(c.G.X, c.G.X)
	rhs.Add(rhs, c.A)
	rhs.Mul(rhs, c.G.X)
	rhs.Add(rhs, c.B)
	rhs.Mod(rhs, c.P)
	if rhs.Sign() < 0 {
		rhs.Add(rhs, c.P)
	}

	if lhs.Cmp(rhs) != 0 {
		return nil, makeError(ErrInvalidCurve, "base point does not satisfy the curve equation")
	}
	return c, nil
}

// normalizeMod reduces v modulo m into [0, m), handling the transient
// negative values that arise from subtraction during curve arithmetic.
func normalizeMod(v, m *big.Int) *big.Int {
	r := new(big.Int).Mod(v, m)
	if r.Sign() < 0 {
		r.Add(r, m)
	}
	return r
}

// Add computes the sum of two affine points on c, per the standard
// Weierstrass addition/doubling formulas:
//
//	doubling (p1 == p2): lambda = (3*x1^2 + a) * (2*y1)^-1 mod p
//	otherwise:           lambda = (y2 - y1) * (x2 - x1)^-1 mod p
//	x3 = lambda^2 - x1 - x2 mod p
//	y3 = lambda*(x1 - x3) - y1 mod p
//
// Add assumes p1.X != p2.X whenever the points are not equal; for every
// cryptographically well-formed input this package accepts (non-zero scalars
// less than q, with q dividing the curve's order) this holds. A violation
// means the modular inverse below does not exist, which surfaces as
// ErrNoInverse through ScalarMult — Sign reports that as ErrSignFailed and
// Verify as a plain false result.
func (c *Curve) Add(p1, p2 AffinePoint) (AffinePoint, error) {
	var lambda *big.Int
	if p1.X.Cmp(p2.X) == 0 && p1.Y.Cmp(p2.Y) == 0 {
		num := new(big.Int).Mul(p1.X, p1.X)
		num.Mul(num, big.NewInt(3))
		num.Add(num, c.A)

		den := new(big.Int).Mul(p1.Y, big.NewInt(2))
		denInv, err := ModInvert(normalizeMod(den, c.P), c.P)
		if err != nil {
			return AffinePoint{}, err
		}
		lambda = new(big.Int).Mul(num, denInv)
	} else {
		num := normalizeMod(new(big.Int).Sub(p2.Y, p1.Y), c.P)
		den := normalizeMod(new(big.Int).Sub(p2.X, p1.X), c.P)
		denInv, err := ModInvert(den, c.P)
		if err != nil {
			return AffinePoint{}, err
		}
		lambda = new(big.Int).Mul(num, denInv)
	}
	lambda = normalizeMod(lambda, c.P)

	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p1.X)
	x3.Sub(x3, p2.X)
	x3 = normalizeMod(x3, c.P)

	y3 := new(big.Int).Sub(p1.X, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p1.Y)
	y3 = normalizeMod(y3, c.P)

	return AffinePoint{X: x3, Y: y3}, nil
}

// ScalarMult computes k*p on c using the reference implementation's
// left-to-right double-and-add algorithm over affine coordinates. When p is
// nil it defaults to the curve's base point G.
//
// k must be at least 2: k == 0 and k == 1 are rejected with ErrBadScalar.
// This mirrors the reference implementation exactly — it pre-decrements k so
// that the remaining loop always lands on k*P, which degenerates for k == 1
// (the loop never iterates). Rather than special-case that degenerate path,
// the precondition is enforced explicitly; this is a preserved quirk of the
// on-disk format's behavior, not a newly invented restriction (see
// spec §4.2 / DESIGN.md).
func (c *Curve) ScalarMult(k *big.Int, p *AffinePoint) (AffinePoint, error) {
	if k.Cmp(big.NewInt(2)) < 0 {
		return AffinePoint{}, makeError(ErrBadScalar, "scalar must be >= 2")
	}
	base := c.G
	if p != nil {
		base = *p
	}

	t := AffinePoint{X: new(big.Int).Set(base.X), Y: new(big.Int).Set(base.Y)}
	px := AffinePoint{X: new(big.Int).Set(base.X), Y: new(big.Int).Set(base.Y)}

	degree := new(big.Int).Sub(k, big.NewInt(1))
	for degree.Sign() != 0 {
		if degree.Bit(0) == 1 {
			sum, err := c.Add(t, px)
			if err != nil {
				return AffinePoint{}, err
			}
			t = sum
		}
		doubled, err := c.Add(px, px)
		if err != nil {
			return AffinePoint{}, err
		}
		px = doubled
		degree.Rsh(degree, 1)
	}
	return t, nil
}
