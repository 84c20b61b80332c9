// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package filedriver

import (
	"fmt"

	"github.com/dokzlo13/gost3410-util"
)

// ioFailed wraps a filesystem read/write/rename failure as ErrIO, preserving
// the original os error as Cause. Callers pass the result to signFailed or
// verifyFailed so the final error carries both the top-level SignFailed/
// VerifyFailed kind and the more specific IO kind, visible via errors.Is.
func ioFailed(err error, format string, args ...interface{}) error {
	return gost3410.Error{
		Err:         gost3410.ErrIO,
		Cause:       err,
		Description: fmt.Sprintf(format, args...) + ": " + err.Error(),
	}
}

// signFailed wraps err as ErrSignFailed, preserving err as Cause so a more
// specific underlying kind (for example ErrIO) remains visible to
// errors.Is/errors.As.
func signFailed(err error, format string, args ...interface{}) error {
	return gost3410.Error{
		Err:         gost3410.ErrSignFailed,
		Cause:       err,
		Description: fmt.Sprintf(format, args...) + ": " + err.Error(),
	}
}

// verifyFailed wraps err as ErrVerifyFailed, preserving err as Cause so a
// more specific underlying kind (ErrBadEnvelope, ErrInvalidCurve, ErrIO) is
// still observable via errors.Is/errors.As on the returned error, matching
// spec §8 scenario S4's two-level VerifyFailed(BadEnvelope) shape.
func verifyFailed(err error, format string, args ...interface{}) error {
	return gost3410.Error{
		Err:         gost3410.ErrVerifyFailed,
		Cause:       err,
		Description: fmt.Sprintf(format, args...) + ": " + err.Error(),
	}
}
