// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package filedriver

type config struct {
	signPath string
}

// Option customizes SignFile's behavior.
type Option func(*config)

// WithSignPath overrides the default path+".sign" destination.
func WithSignPath(path string) Option {
	return func(c *config) { c.signPath = path }
}

func applyOptions(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
