// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gost3410

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestBytesToInt(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int64
	}{
		{name: "empty", in: []byte{}, want: 0},
		{name: "single byte", in: []byte{0x01}, want: 1},
		{name: "big-endian order", in: []byte{0x01, 0x00}, want: 256},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := BytesToInt(test.in)
			if got.Cmp(big.NewInt(test.want)) != 0 {
				t.Fatalf("BytesToInt(%x) = %s, want %d\n%s", test.in, got, test.want, spew.Sdump(got))
			}
		})
	}
}

func TestIntToBytes(t *testing.T) {
	tests := []struct {
		name    string
		n       int64
		size    int
		want    []byte
		wantErr bool
	}{
		{name: "zero padded", n: 1, size: 4, want: []byte{0, 0, 0, 1}},
		{name: "exact fit", n: 255, size: 1, want: []byte{0xff}},
		{name: "too big", n: 256, size: 1, wantErr: true},
		{name: "negative rejected", n: -1, size: 4, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := IntToBytes(big.NewInt(test.n), test.size)
			if test.wantErr {
				if err == nil {
					t.Fatalf("IntToBytes(%d, %d) succeeded, want error", test.n, test.size)
				}
				return
			}
			if err != nil {
				t.Fatalf("IntToBytes(%d, %d) failed: %v", test.n, test.size, err)
			}
			if !bytes.Equal(got, test.want) {
				t.Fatalf("IntToBytes(%d, %d) = %x, want %x", test.n, test.size, got, test.want)
			}
		})
	}
}

// TestModInvertLaw checks the law required by spec §8 item 8: for all
// a in [1, n-1] coprime with prime n, (a * ModInvert(a, n)) mod n == 1.
func TestModInvertLaw(t *testing.T) {
	n := big.NewInt(1000003) // prime
	for a := int64(1); a < 200; a++ {
		inv, err := ModInvert(big.NewInt(a), n)
		if err != nil {
			t.Fatalf("ModInvert(%d, %s) failed: %v", a, n, err)
		}
		product := new(big.Int).Mul(big.NewInt(a), inv)
		product.Mod(product, n)
		if product.Cmp(big.NewInt(1)) != 0 {
			t.Fatalf("a=%d: (a * ModInvert(a,n)) mod n = %s, want 1", a, product)
		}
	}
}

func TestModInvertNegative(t *testing.T) {
	n := big.NewInt(1000003)
	a := big.NewInt(-7)
	got, err := ModInvert(a, n)
	if err != nil {
		t.Fatalf("ModInvert(-7, n) failed: %v", err)
	}
	pos, err := ModInvert(big.NewInt(7), n)
	if err != nil {
		t.Fatalf("ModInvert(7, n) failed: %v", err)
	}
	want := new(big.Int).Sub(n, pos)
	if got.Cmp(want) != 0 {
		t.Fatalf("ModInvert(-7, n) = %s, want %s", got, want)
	}
}

func TestModInvertNoInverse(t *testing.T) {
	if _, err := ModInvert(big.NewInt(4), big.NewInt(8)); err == nil {
		t.Fatal("expected ErrNoInverse for gcd(4,8) != 1")
	} else if !errorIs(err, ErrNoInverse) {
		t.Fatalf("got %v, want ErrNoInverse", err)
	}
}

// TestPrivateKeyEndianLaw checks spec §8 item 9:
// PrivateKeyFromBytes(b) == BytesToInt(reverse(b)) for all 32-byte b.
func TestPrivateKeyEndianLaw(t *testing.T) {
	b := make([]byte, 32)
	for i := range b {
		b[i] = byte(i * 7)
	}
	rev := make([]byte, len(b))
	for i, v := range b {
		rev[len(b)-1-i] = v
	}
	got := PrivateKeyFromBytes(b)
	want := BytesToInt(rev)
	if got.Cmp(want) != 0 {
		t.Fatalf("PrivateKeyFromBytes(b) = %s, want %s", got, want)
	}
}

func TestMarshalUnmarshalPublicKeyRoundTrip(t *testing.T) {
	x := big.NewInt(123456789)
	y := big.NewInt(987654321)
	marshaled, err := MarshalPublicKey(x, y)
	if err != nil {
		t.Fatalf("MarshalPublicKey failed: %v", err)
	}
	if len(marshaled) != 128 {
		t.Fatalf("MarshalPublicKey returned %d bytes, want 128", len(marshaled))
	}
	gotX, gotY, err := UnmarshalPublicKey(marshaled)
	if err != nil {
		t.Fatalf("UnmarshalPublicKey failed: %v", err)
	}
	if gotX.Cmp(x) != 0 || gotY.Cmp(y) != 0 {
		t.Fatalf("round trip mismatch: got (%s, %s), want (%s, %s)", gotX, gotY, x, y)
	}
}

func errorIs(err error, kind ErrorKind) bool {
	e, ok := err.(Error)
	if !ok {
		return false
	}
	k, ok := e.Err.(ErrorKind)
	return ok && k == kind
}
