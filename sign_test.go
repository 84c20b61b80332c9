// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gost3410

import (
	"bytes"
	"crypto/rand"
	"io"
	"math/big"
	"testing"
)

// fixedReader is a deterministic io.Reader used to inject a known nonce into
// Sign for testing; the random source is a caller-injected collaborator
// precisely so this is possible (spec §4.3).
type fixedReader struct {
	chunks [][]byte
	calls  int
}

func (f *fixedReader) Read(p []byte) (int, error) {
	if f.calls >= len(f.chunks) {
		return 0, io.EOF
	}
	chunk := f.chunks[f.calls]
	f.calls++
	n := copy(p, chunk)
	return n, nil
}

func nonceBytes(k int64) []byte {
	buf := make([]byte, 64)
	kb := big.NewInt(k).Bytes()
	copy(buf[64-len(kb):], kb)
	return buf
}

// TestSignVerifyScenarioS1 is spec §8 scenario S1: toy curve, d = 1,
// digest all-zero (forcing e = 1 per the e == 0 substitution), k forced to
// 2; expect r = 6, s = 8, and verification against pub = G to succeed.
func TestSignVerifyScenarioS1(t *testing.T) {
	c := toyCurve(t)
	priv := big.NewInt(1)
	digest := make([]byte, 64)
	rnd := &fixedReader{chunks: [][]byte{nonceBytes(2)}}

	r, s, err := Sign(c, priv, digest, rnd)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if r.Cmp(big.NewInt(6)) != 0 || s.Cmp(big.NewInt(8)) != 0 {
		t.Fatalf("Sign = (%s, %s), want (6, 8)", r, s)
	}

	pub := AffinePoint{X: new(big.Int).Set(c.G.X), Y: new(big.Int).Set(c.G.Y)}
	if !Verify(c, pub, digest, r, s) {
		t.Fatal("Verify rejected a signature matching the reference scenario")
	}
}

// TestSignResamplesOnZeroNonce checks that a nonce that reduces to zero mod
// q is discarded and a fresh one sampled, per spec §4.3 step 2.
func TestSignResamplesOnZeroNonce(t *testing.T) {
	c := toyCurve(t)
	priv := big.NewInt(3)
	digest := bytes.Repeat([]byte{0x01}, 64)

	// First nonce is a multiple of q (19) -> reduces to zero -> resample.
	// Second nonce (8) yields non-zero r and s on the toy curve.
	rnd := &fixedReader{chunks: [][]byte{nonceBytes(19), nonceBytes(8)}}

	r, s, err := Sign(c, priv, digest, rnd)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if rnd.calls != 2 {
		t.Fatalf("Sign consumed %d nonce reads, want 2 (one resample)", rnd.calls)
	}

	pub, err := c.ScalarMult(priv, nil)
	if err != nil {
		t.Fatalf("computing public key: %v", err)
	}
	if !Verify(c, pub, digest, r, s) {
		t.Fatal("Verify rejected a signature produced after resampling")
	}
}

// TestSignVerifyRoundTrip is spec §8 invariant 1: for every valid private
// scalar and digest, a produced signature verifies against the
// corresponding public key. This uses ParamSetA's 512-bit subgroup order
// rather than the toy curve: with a tiny q, a uniformly sampled nonce has a
// non-negligible chance of reducing to 1, which ScalarMult legitimately
// rejects as BadScalar (spec §4.2) instead of Sign silently resampling — a
// real curve makes that astronomically unlikely, matching how this
// precondition behaves in production.
func TestSignVerifyRoundTrip(t *testing.T) {
	c := ParamSetA
	for i, d := range []int64{2, 3, 12345, 999999937} {
		priv := big.NewInt(d)
		digest := bytes.Repeat([]byte{byte(i + 1)}, 64)

		r, s, err := Sign(c, priv, digest, rand.Reader)
		if err != nil {
			t.Fatalf("d=%d: Sign failed: %v", d, err)
		}

		pub, err := c.ScalarMult(priv, nil)
		if err != nil {
			t.Fatalf("d=%d: computing public key: %v", d, err)
		}
		if !Verify(c, pub, digest, r, s) {
			t.Fatalf("d=%d: round-trip verification failed", d)
		}
	}
}

// TestVerifyRejectsBitFlippedSignature is spec §8 item 3.
func TestVerifyRejectsBitFlippedSignature(t *testing.T) {
	c := ParamSetA
	priv := big.NewInt(5)
	digest := bytes.Repeat([]byte{0x42}, 64)

	r, s, err := Sign(c, priv, digest, rand.Reader)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	pub, err := c.ScalarMult(priv, nil)
	if err != nil {
		t.Fatalf("computing public key: %v", err)
	}

	flippedS := new(big.Int).Xor(s, big.NewInt(1))
	if Verify(c, pub, digest, r, flippedS) {
		t.Fatal("Verify accepted a signature with a bit-flipped s")
	}
}

// TestVerifyRejectsWrongDigest is spec §8 item 4.
func TestVerifyRejectsWrongDigest(t *testing.T) {
	c := ParamSetA
	priv := big.NewInt(5)
	digest := bytes.Repeat([]byte{0x42}, 64)
	other := bytes.Repeat([]byte{0x43}, 64)

	r, s, err := Sign(c, priv, digest, rand.Reader)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	pub, err := c.ScalarMult(priv, nil)
	if err != nil {
		t.Fatalf("computing public key: %v", err)
	}

	if Verify(c, pub, other, r, s) {
		t.Fatal("Verify accepted a signature against the wrong digest")
	}
}

func TestVerifyRejectsOutOfRangeDigestLength(t *testing.T) {
	c := toyCurve(t)
	pub := AffinePoint{X: new(big.Int).Set(c.G.X), Y: new(big.Int).Set(c.G.Y)}
	if Verify(c, pub, []byte{0x01}, big.NewInt(1), big.NewInt(1)) {
		t.Fatal("Verify accepted a short digest")
	}
}

func TestSignRejectsShortDigest(t *testing.T) {
	c := toyCurve(t)
	_, _, err := Sign(c, big.NewInt(2), []byte{0x01}, rand.Reader)
	if err == nil {
		t.Fatal("Sign accepted a short digest")
	}
	if !errorIs(err, ErrDigestLength) {
		t.Fatalf("got %v, want ErrDigestLength", err)
	}
}
