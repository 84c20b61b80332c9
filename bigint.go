// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gost3410

import "math/big"

// BytesToInt interprets b as a big-endian unsigned integer. An empty slice
// yields zero. This is the single interpretation used throughout the package
// except for the private-key and public-key wire forms; see
// PrivateKeyFromBytes and MarshalPublicKey.
func BytesToInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// IntToBytes returns a size-byte big-endian representation of n, zero-padded
// on the left. It fails if n is negative or does not fit in size bytes.
func IntToBytes(n *big.Int, size int) ([]byte, error) {
	if n.Sign() < 0 {
		return nil, makeError(ErrBadScalar, "cannot encode a negative integer")
	}
	raw := n.Bytes()
	if len(raw) > size {
		return nil, makeError(ErrBadScalar, "integer does not fit in the requested byte length")
	}
	out := make([]byte, size)
	copy(out[size-len(raw):], raw)
	return out, nil
}

// ModInvert returns the modular multiplicative inverse of a modulo n using
// the extended Euclidean algorithm. If a is negative, the inverse is computed
// as n - ModInvert(-a, n), matching the reference implementation's handling
// of negative intermediate values that arise during curve arithmetic. The
// result always lies in [0, n).
func ModInvert(a, n *big.Int) (*big.Int, error) {
	if a.Sign() < 0 {
		neg, err := ModInvert(new(big.Int).Neg(a), n)
		if err != nil {
			return nil, err
		}
		return new(big.Int).Sub(n, neg), nil
	}

	// Extended Euclidean algorithm: track (r, newr) and (t, newt) such
	// that at every step k*n + t*a == r for some k, ending with
	// r == gcd(a, n) and t == a^-1 mod n (up to a multiple of n) when that
	// gcd is 1.
	r, newR := new(big.Int).Set(n), new(big.Int).Set(a)
	t, newT := big.NewInt(0), big.NewInt(1)

	q := new(big.Int)
	tmp := new(big.Int)
	for newR.Sign() != 0 {
		q.Div(r, newR)

		tmp.Mul(q, newR)
		r, newR = newR, tmp.Sub(r, tmp)
		tmp = new(big.Int)

		tmp.Mul(q, newT)
		t, newT = newT, tmp.Sub(t, tmp)
		tmp = new(big.Int)
	}

	if r.Cmp(big.NewInt(1)) > 0 {
		return nil, makeError(ErrNoInverse, "gcd(a, n) != 1, no inverse exists")
	}
	if t.Sign() < 0 {
		t.Add(t, n)
	}
	return t, nil
}

// PrivateKeyBytesLen defines the length, in bytes, of the external
// little-endian private-key wire form.
const PrivateKeyBytesLen = 32

// PrivateKeyFromBytes decodes a 32-byte private-key scalar. Unlike the
// scalar conversions elsewhere in this package, the private-key wire form is
// little-endian: PrivateKeyFromBytes(b) == BytesToInt(reverse(b)). Together
// with the byte-reversed public-key wire form of MarshalPublicKey, this is
// one of the only two little-endian interpretations in the system; both are
// isolated behind named functions to avoid accidental mixing with the
// big-endian conversions used everywhere else (digest bytes, envelope
// integers, DER output).
func PrivateKeyFromBytes(b []byte) *big.Int {
	return BytesToInt(reverseBytes(b))
}

// MarshalPublicKey returns the 128-byte external wire form of a public point.
// It is reverse(IntToBytes(y, 64) || IntToBytes(x, 64)) — note the swapped
// (x, y) order relative to natural reading, preserved exactly from the
// reference implementation's pub_marshal. The envelope format does not use
// this form; it carries x and y as separate DER INTEGERs.
func MarshalPublicKey(x, y *big.Int) ([]byte, error) {
	yb, err := IntToBytes(y, 64)
	if err != nil {
		return nil, err
	}
	xb, err := IntToBytes(x, 64)
	if err != nil {
		return nil, err
	}
	combined := append(yb, xb...)
	return reverseBytes(combined), nil
}

// UnmarshalPublicKey parses the 128-byte external wire form produced by
// MarshalPublicKey back into (x, y).
func UnmarshalPublicKey(b []byte) (x, y *big.Int, err error) {
	if len(b) != 128 {
		return nil, nil, makeError(ErrBadScalar, "public key wire form must be 128 bytes")
	}
	rev := reverseBytes(b)
	y = BytesToInt(rev[:64])
	x = BytesToInt(rev[64:])
	return x, y, nil
}

// reverseBytes returns a newly allocated, byte-order-reversed copy of b.
func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
