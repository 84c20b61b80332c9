// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package filedriver wires the gost3410 signature primitives and the
// envelope DER codec to the filesystem: hashing a file and writing a
// companion .sign envelope, and reading that envelope back to verify it
// against the file.
package filedriver

import (
	"errors"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/dokzlo13/gost3410-util"
	"github.com/dokzlo13/gost3410-util/digest"
	"github.com/dokzlo13/gost3410-util/envelope"
)

// Log is the package-level logger used for operational visibility (file
// signed, verification result, envelope rejected). It defaults to a no-op
// logger; callers that want output — cmd/gostsign does — replace it with a
// real zerolog.Logger. The core gost3410 and envelope packages never log:
// logging belongs to this orchestration layer, not the pure math.
var Log = zerolog.Nop()

const signSuffix = ".sign"

// SignatureFilePath returns the default companion signature path for path.
func SignatureFilePath(path string) string {
	return path + signSuffix
}

// SignFile hashes the file at path with digestFn, signs the digest with priv
// on curve, and writes the resulting DER envelope to path+".sign" (or the
// override, if any, via WithSignPath) using a write-then-rename so a reader
// never observes a partially written file. rand supplies the nonce source
// for gost3410.Sign and must be cryptographically secure outside of tests.
//
// Any failure is returned as gost3410.ErrSignFailed wrapping the underlying
// cause, per spec §7.
func SignFile(path string, curve *gost3410.Curve, priv *big.Int, rand io.Reader, digestFn digest.Func, opts ...Option) (string, error) {
	cfg := applyOptions(opts)
	signPath := cfg.signPath
	if signPath == "" {
		signPath = SignatureFilePath(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", signFailed(ioFailed(err, "reading %s", path), "reading file to sign")
	}

	d, err := digestFn(data)
	if err != nil {
		return "", signFailed(err, "hashing %s", path)
	}

	pub, err := curve.ScalarMult(priv, nil)
	if err != nil {
		return "", signFailed(err, "deriving public key")
	}

	r, s, err := gost3410.Sign(curve, priv, d[:], rand)
	if err != nil {
		return "", signFailed(err, "computing signature")
	}

	env := envelope.New(curve.P, curve.Q, curve.A, curve.B, curve.G.X, curve.G.Y,
		pub.X, pub.Y, r, s, filepath.Base(path), uint64(len(data)))

	if err := writeAtomic(signPath, env.Encode()); err != nil {
		return "", signFailed(err, "writing %s", signPath)
	}

	Log.Info().Str("file", path).Str("sign_file", signPath).Int("bytes", len(data)).Msg("file signed")
	return signPath, nil
}

// VerifyFile verifies the file at path against its companion envelope.
//
// If signPath is empty, it defaults to path+".sign"; a missing envelope
// file is a clean (false, nil) result, not an error, matching the reference
// implementation's behavior when it cannot find a .sign file to check
// against.
//
// If expectedPub is non-nil and differs from the envelope's embedded public
// point, VerifyFile returns (false, nil) without reconstructing the curve or
// running any elliptic-curve arithmetic (spec §8, scenario S5).
//
// A malformed envelope is reported as gost3410.ErrVerifyFailed wrapping the
// underlying gost3410.ErrBadEnvelope (spec §8, scenario S4). Invalid embedded
// curve parameters, an unreadable file at path, and a digest failure are
// likewise reported as gost3410.ErrVerifyFailed wrapping the cause; the
// signature check itself only ever yields a bool.
func VerifyFile(path string, digestFn digest.Func, signPath string, expectedPub *gost3410.AffinePoint) (bool, error) {
	if signPath == "" {
		signPath = SignatureFilePath(path)
	}

	signBytes, err := os.ReadFile(signPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			Log.Debug().Str("sign_file", signPath).Msg("no signature file found")
			return false, nil
		}
		return false, verifyFailed(ioFailed(err, "reading %s", signPath), "reading signature file")
	}

	env, err := envelope.Decode(signBytes)
	if err != nil {
		Log.Warn().Err(err).Str("sign_file", signPath).Msg("envelope rejected")
		return false, verifyFailed(err, "decoding %s", signPath)
	}

	if expectedPub != nil && (expectedPub.X.Cmp(env.PubX) != 0 || expectedPub.Y.Cmp(env.PubY) != 0) {
		Log.Debug().Str("sign_file", signPath).Msg("public key mismatch, skipping signature math")
		return false, nil
	}

	curve, err := gost3410.NewCurve(env.P, env.Q, env.A, env.B, env.Gx, env.Gy)
	if err != nil {
		Log.Warn().Err(err).Str("sign_file", signPath).Msg("embedded curve parameters invalid")
		return false, verifyFailed(err, "reconstructing curve from %s", signPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, verifyFailed(ioFailed(err, "reading %s", path), "reading file to verify")
	}

	d, err := digestFn(data)
	if err != nil {
		return false, verifyFailed(err, "hashing %s", path)
	}

	pub := gost3410.AffinePoint{X: env.PubX, Y: env.PubY}
	ok := gost3410.Verify(curve, pub, d[:], env.R, env.S)
	Log.Info().Str("file", path).Bool("valid", ok).Msg("verification complete")
	return ok, nil
}

// writeAtomic writes data to a temporary file in the same directory as path
// and renames it into place, so a reader of path never observes a partial
// write regardless of how the process exits mid-write. Every failure is
// reported as ErrIO.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return ioFailed(err, "creating temp file for %s", path)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return ioFailed(err, "writing temp file for %s", path)
	}
	if err := tmp.Close(); err != nil {
		return ioFailed(err, "closing temp file for %s", path)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return ioFailed(err, "renaming into place %s", path)
	}
	return nil
}
