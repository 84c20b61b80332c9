// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package envelope

import (
	"fmt"
	"math/big"

	"github.com/dokzlo13/gost3410-util"
)

// This file implements the minimal slice of ITU-T X.690 Distinguished
// Encoding Rules (DER) needed for the fixed SignatureSequence schema of
// spec §4.5: SEQUENCE, SET, INTEGER, OCTET STRING and UTF8String. A general
// ASN.1 library is deliberately not pulled in (spec §9): the schema never
// changes, and a hand-rolled layer gives bit-exact control over INTEGER
// minimal encoding and the SET wrapper, both of which are part of the
// on-disk contract.

const (
	tagInteger     = 0x02
	tagOctetString = 0x04
	tagUTF8String  = 0x0c
	tagSequence    = 0x30 // constructed
	tagSet         = 0x31 // constructed
)

// tlv is a single decoded Tag-Length-Value element; readTLV returns the
// remainder of the input following it separately.
type tlv struct {
	tag   byte
	value []byte
}

// badEnvelopef reports a structural, truncation, trailing-data, or
// algorithm-mismatch failure while decoding a signature envelope, as a
// gost3410.Error carrying the ErrBadEnvelope kind (spec §7/§8 scenario S4),
// not a plain error — so callers can distinguish this failure mode from any
// other with errors.Is/errors.As.
func badEnvelopef(format string, args ...interface{}) error {
	return gost3410.Error{
		Err:         gost3410.ErrBadEnvelope,
		Description: "gost3410/envelope: bad envelope: " + fmt.Sprintf(format, args...),
	}
}

// encodeLength returns the DER definite-length encoding of n.
func encodeLength(n int) []byte {
	if n < 0 {
		panic("envelope: negative length")
	}
	if n < 0x80 {
		return []byte{byte(n)}
	}
	var raw []byte
	for v := n; v > 0; v >>= 8 {
		raw = append([]byte{byte(v)}, raw...)
	}
	return append([]byte{0x80 | byte(len(raw))}, raw...)
}

// encodeTLV encodes a single tag-length-value element.
func encodeTLV(tag byte, value []byte) []byte {
	out := make([]byte, 0, 2+len(value))
	out = append(out, tag)
	out = append(out, encodeLength(len(value))...)
	out = append(out, value...)
	return out
}

// readTLV parses a single tag-length-value element from the front of b,
// returning it along with the unconsumed remainder.
func readTLV(b []byte) (elem tlv, rest []byte, err error) {
	if len(b) < 2 {
		return tlv{}, nil, badEnvelopef("truncated element header")
	}
	tag := b[0]
	lenByte := b[1]
	off := 2

	var length int
	if lenByte < 0x80 {
		length = int(lenByte)
	} else {
		numBytes := int(lenByte &^ 0x80)
		if numBytes == 0 {
			return tlv{}, nil, badEnvelopef("indefinite length not supported")
		}
		if len(b) < off+numBytes {
			return tlv{}, nil, badEnvelopef("truncated length")
		}
		for i := 0; i < numBytes; i++ {
			length = length<<8 | int(b[off+i])
		}
		off += numBytes
	}

	if length < 0 || len(b) < off+length {
		return tlv{}, nil, badEnvelopef("truncated value")
	}
	value := b[off : off+length]
	return tlv{tag: tag, value: value}, b[off+length:], nil
}

// expectTLV reads a single element and verifies its tag.
func expectTLV(b []byte, tag byte) (value []byte, rest []byte, err error) {
	elem, rest, err := readTLV(b)
	if err != nil {
		return nil, nil, err
	}
	if elem.tag != tag {
		return nil, nil, badEnvelopef("expected tag 0x%02x, got 0x%02x", tag, elem.tag)
	}
	return elem.value, rest, nil
}

// encodeInteger returns the DER minimal-length two's-complement encoding of
// a non-negative integer: a leading 0x00 byte is prepended iff the top bit
// of the magnitude's first byte is set, so the value is never mistaken for a
// negative number. All integers carried by this schema are non-negative.
func encodeInteger(n *big.Int) []byte {
	if n.Sign() < 0 {
		panic("envelope: negative INTEGER is not representable in this schema")
	}
	raw := n.Bytes()
	if len(raw) == 0 {
		raw = []byte{0x00}
	} else if raw[0]&0x80 != 0 {
		raw = append([]byte{0x00}, raw...)
	}
	return encodeTLV(tagInteger, raw)
}

// decodeInteger parses a DER INTEGER, rejecting a negative encoding since
// this schema carries only non-negative values.
func decodeInteger(b []byte) (n *big.Int, rest []byte, err error) {
	value, rest, err := expectTLV(b, tagInteger)
	if err != nil {
		return nil, nil, err
	}
	if len(value) == 0 {
		return nil, nil, badEnvelopef("empty INTEGER")
	}
	if value[0]&0x80 != 0 {
		return nil, nil, badEnvelopef("negative INTEGER is not valid in this schema")
	}
	return new(big.Int).SetBytes(value), rest, nil
}

func encodeOctetString(b []byte) []byte {
	return encodeTLV(tagOctetString, b)
}

func decodeOctetString(b []byte) (value []byte, rest []byte, err error) {
	return expectTLV(b, tagOctetString)
}

func encodeUTF8String(s string) []byte {
	return encodeTLV(tagUTF8String, []byte(s))
}

func decodeUTF8String(b []byte) (s string, rest []byte, err error) {
	value, rest, err := expectTLV(b, tagUTF8String)
	if err != nil {
		return "", nil, err
	}
	return string(value), rest, nil
}

func encodeSequence(children ...[]byte) []byte {
	var body []byte
	for _, c := range children {
		body = append(body, c...)
	}
	return encodeTLV(tagSequence, body)
}

func encodeSet(children ...[]byte) []byte {
	var body []byte
	for _, c := range children {
		body = append(body, c...)
	}
	return encodeTLV(tagSet, body)
}

// decodeSequence returns the inner body of a SEQUENCE element read from the
// front of b, plus the unconsumed remainder after the whole element.
func decodeSequence(b []byte) (body []byte, rest []byte, err error) {
	return expectTLV(b, tagSequence)
}

func decodeSet(b []byte) (body []byte, rest []byte, err error) {
	return expectTLV(b, tagSet)
}
