// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gost3410

import (
	"io"
	"math/big"

	"github.com/dokzlo13/gost3410-util/digest"
)

// nonceByteLen is the fixed byte length read from the random source when
// sampling the per-signature nonce k. The reference implementation
// hard-codes this to 64 regardless of the declared GOST mode; the 2001
// (256-bit) variant is unsupported by this package, and this constant is
// preserved exactly (spec §9: "only 512-bit curves, only 64-byte digests").
const nonceByteLen = 64

// Sign produces a GOST R 34.10-2012 signature (r, s) over digest using priv
// on curve c, per the following steps:
//
//  1. e = BytesToInt(digest) mod q; if e == 0, e is forced to 1. This
//     deterministic substitution is preserved from the reference
//     implementation and is applied identically in Verify.
//  2. A uniform nonce k is sampled from rand, reduced mod q; k == 0 causes a
//     resample.
//  3. r = x-coordinate of k*G, reduced mod q; r == 0 causes a resample.
//  4. s = (r*priv + k*e) mod q; s == 0 causes a resample.
//
// rand must be a cryptographically secure source; callers needing
// deterministic output for tests should inject a fixed-output io.Reader. A
// digest that is not exactly 64 bytes is rejected with ErrDigestLength. Any
// other failure besides the expected k == 0 / r == 0 / s == 0 resamples (for example, the
// nonce colliding with the degenerate k < 2 case rejected by ScalarMult) is
// returned as ErrSignFailed wrapping the underlying cause, per spec §7.
func Sign(c *Curve, priv *big.Int, digestBytes []byte, rand io.Reader) (r, s *big.Int, err error) {
	if lerr := digest.CheckLength(digestBytes); lerr != nil {
		return nil, nil, wrapErrorf(ErrDigestLength, lerr, "validating digest")
	}

	e := new(big.Int).Mod(BytesToInt(digestBytes), c.Q)
	if e.Sign() == 0 {
		e = big.NewInt(1)
	}

	buf := make([]byte, nonceByteLen)
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, nil, wrapErrorf(ErrSignFailed, err, "reading random nonce")
		}
		k := new(big.Int).Mod(BytesToInt(buf), c.Q)
		if k.Sign() == 0 {
			continue
		}

		point, err := c.ScalarMult(k, nil)
		if err != nil {
			return nil, nil, wrapErrorf(ErrSignFailed, err, "computing k*G")
		}
		r := new(big.Int).Mod(point.X, c.Q)
		if r.Sign() == 0 {
			continue
		}

		s := new(big.Int).Mul(r, priv)
		ke := new(big.Int).Mul(k, e)
		s.Add(s, ke)
		s.Mod(s, c.Q)
		if s.Sign() == 0 {
			continue
		}

		return r, s, nil
	}
}
