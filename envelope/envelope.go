// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package envelope implements the DER-encoded signature envelope described
// by spec §4.5: a self-contained record carrying a GOST R 34.10-2012
// signature's (r, s) scalars alongside the full domain parameters and
// signer's public point needed to independently verify it, plus a small
// informational metadata record (original file name and size).
package envelope

import (
	"bytes"
	"math/big"
)

// text is the fixed, purely informational string carried by every envelope.
// It is never used as a verification input.
const text = "gostSignKey"

// algo is the fixed 4-byte algorithm identifier every envelope must carry.
var algo = [4]byte{0x80, 0x06, 0x07, 0x00}

// Envelope is the decoded form of a SignatureSequence. All fields are raw
// integers extracted from the DER structure; Decode performs only
// structural and algorithm-identifier validation. Range checks and curve
// reconstruction (including the base-point equation) are the caller's
// responsibility — see the filedriver package, which rebuilds a
// gost3410.Curve from these fields before calling gost3410.Verify.
type Envelope struct {
	// Domain parameters and signer's public point.
	P, Q, A, B   *big.Int
	Gx, Gy       *big.Int
	PubX, PubY   *big.Int

	// Signature.
	R, S *big.Int

	// Informational metadata, not authenticated by the signature.
	FileName string
	FileSize uint64
}

// New builds an Envelope from a signature's inputs. filename should already
// be the file's basename; filesize is the file's unsigned byte length.
func New(p, q, a, b, gx, gy, pubX, pubY, r, s *big.Int, filename string, filesize uint64) *Envelope {
	return &Envelope{
		P: p, Q: q, A: a, B: b,
		Gx: gx, Gy: gy,
		PubX: pubX, PubY: pubY,
		R: r, S: s,
		FileName: filename,
		FileSize: filesize,
	}
}

// Encode serializes the envelope to its canonical DER form.
func (e *Envelope) Encode() []byte {
	openKey := encodeSequence(encodeInteger(e.PubX), encodeInteger(e.PubY))
	cryptosystem := encodeSequence(encodeInteger(e.P))
	curve := encodeSequence(encodeInteger(e.A), encodeInteger(e.B))
	dots := encodeSequence(encodeInteger(e.Gx), encodeInteger(e.Gy))

	keyDataSequence := encodeSequence(
		encodeUTF8String(text),
		encodeOctetString(algo[:]),
		openKey,
		cryptosystem,
		curve,
		dots,
		encodeInteger(e.Q),
	)
	params := encodeSet(keyDataSequence)

	sign := encodeSequence(encodeInteger(e.R), encodeInteger(e.S))

	meta := encodeSequence(
		encodeInteger(new(big.Int).SetUint64(e.FileSize)),
		encodeUTF8String(e.FileName),
	)

	return encodeSequence(params, sign, meta)
}

// Decode parses a DER-encoded SignatureSequence. It rejects any structural
// deviation from the fixed schema, and in particular requires the algo
// field to equal the fixed identifier 0x80 06 07 00 — both failures are
// reported as an error (spec: BadEnvelope).
func Decode(data []byte) (*Envelope, error) {
	outer, rest, err := decodeSequence(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, badEnvelopef("trailing data after SignatureSequence")
	}

	paramsBody, rest, err := decodeSet(outer)
	if err != nil {
		return nil, err
	}

	keyDataSeqBody, rest2, err := decodeSequence(paramsBody)
	if err != nil {
		return nil, err
	}
	if len(rest2) != 0 {
		return nil, badEnvelopef("trailing data inside KeyDataSet")
	}

	if _, keyDataSeqBody, err = decodeUTF8String(keyDataSeqBody); err != nil {
		return nil, err
	}
	algoBytes, keyDataSeqBody, err := decodeOctetString(keyDataSeqBody)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(algoBytes, algo[:]) {
		return nil, badEnvelopef("wrong signature identifier")
	}

	openKeyBody, keyDataSeqBody, err := decodeSequence(keyDataSeqBody)
	if err != nil {
		return nil, err
	}
	pubX, openKeyBody, err := decodeInteger(openKeyBody)
	if err != nil {
		return nil, err
	}
	pubY, openKeyBody, err := decodeInteger(openKeyBody)
	if err != nil {
		return nil, err
	}
	if len(openKeyBody) != 0 {
		return nil, badEnvelopef("trailing data inside openKey")
	}

	cryptosystemBody, keyDataSeqBody, err := decodeSequence(keyDataSeqBody)
	if err != nil {
		return nil, err
	}
	p, cryptosystemBody, err := decodeInteger(cryptosystemBody)
	if err != nil {
		return nil, err
	}
	if len(cryptosystemBody) != 0 {
		return nil, badEnvelopef("trailing data inside cryptosystem")
	}

	curveBody, keyDataSeqBody, err := decodeSequence(keyDataSeqBody)
	if err != nil {
		return nil, err
	}
	a, curveBody, err := decodeInteger(curveBody)
	if err != nil {
		return nil, err
	}
	b, curveBody, err := decodeInteger(curveBody)
	if err != nil {
		return nil, err
	}
	if len(curveBody) != 0 {
		return nil, badEnvelopef("trailing data inside curve")
	}

	dotsBody, keyDataSeqBody, err := decodeSequence(keyDataSeqBody)
	if err != nil {
		return nil, err
	}
	gx, dotsBody, err := decodeInteger(dotsBody)
	if err != nil {
		return nil, err
	}
	gy, dotsBody, err := decodeInteger(dotsBody)
	if err != nil {
		return nil, err
	}
	if len(dotsBody) != 0 {
		return nil, badEnvelopef("trailing data inside dots")
	}

	q, keyDataSeqBody, err := decodeInteger(keyDataSeqBody)
	if err != nil {
		return nil, err
	}
	if len(keyDataSeqBody) != 0 {
		return nil, badEnvelopef("trailing data inside KeyDataSequence")
	}

	signBody, rest, err := decodeSequence(rest)
	if err != nil {
		return nil, err
	}
	r, signBody, err := decodeInteger(signBody)
	if err != nil {
		return nil, err
	}
	s, signBody, err := decodeInteger(signBody)
	if err != nil {
		return nil, err
	}
	if len(signBody) != 0 {
		return nil, badEnvelopef("trailing data inside sign")
	}

	metaBody, rest, err := decodeSequence(rest)
	if err != nil {
		return nil, err
	}
	fileSize, metaBody, err := decodeInteger(metaBody)
	if err != nil {
		return nil, err
	}
	fileName, metaBody, err := decodeUTF8String(metaBody)
	if err != nil {
		return nil, err
	}
	if len(metaBody) != 0 {
		return nil, badEnvelopef("trailing data inside meta")
	}
	if len(rest) != 0 {
		return nil, badEnvelopef("trailing data after meta")
	}

	return &Envelope{
		P: p, Q: q, A: a, B: b,
		Gx: gx, Gy: gy,
		PubX: pubX, PubY: pubY,
		R: r, S: s,
		FileName: fileName,
		FileSize: fileSize.Uint64(),
	}, nil
}
