// Copyright (c) 2024 The gost3410-util Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command gostsign is a thin external driver over the gost3410/envelope/
// filedriver packages: genkey, sign and verify. It is not the interactive
// shell described in spec §6 — that shell, along with any key-management
// persistence, is explicitly out of scope (spec §1) and left to a separate,
// external tool. This exists only so the library's end-to-end path can be
// exercised from a terminal.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/dokzlo13/gost3410-util"
	"github.com/dokzlo13/gost3410-util/digest"
	"github.com/dokzlo13/gost3410-util/filedriver"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	filedriver.Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var err error
	switch os.Args[1] {
	case "genkey":
		err = cmdGenKey(os.Args[2:])
	case "sign":
		err = cmdSign(os.Args[2:])
	case "verify":
		err = cmdVerify(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "gostsign:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gostsign genkey | sign -key <hex> <path> | verify <path> [signpath]")
}

func curveFromFlag(name string) *gost3410.Curve {
	if name == "B" {
		return gost3410.ParamSetB
	}
	return gost3410.ParamSetA
}

func cmdGenKey(args []string) error {
	fs := flag.NewFlagSet("genkey", flag.ExitOnError)
	curveName := fs.String("curve", "A", "named curve (A or B)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	curve := curveFromFlag(*curveName)

	buf := make([]byte, gost3410.PrivateKeyBytesLen)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	priv := gost3410.PrivateKeyFromBytes(buf)
	pub, err := curve.ScalarMult(priv, nil)
	if err != nil {
		return err
	}

	fmt.Printf("private (little-endian hex): %x\n", buf)
	fmt.Printf("public.x: %s\npublic.y: %s\n", pub.X.Text(16), pub.Y.Text(16))
	return nil
}

func cmdSign(args []string) error {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	keyHex := fs.String("key", "", "private key, 32 bytes little-endian hex")
	curveName := fs.String("curve", "A", "named curve (A or B)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *keyHex == "" {
		return fmt.Errorf("sign requires -key and a file path")
	}
	path := fs.Arg(0)

	keyBytes, err := hex.DecodeString(*keyHex)
	if err != nil {
		return fmt.Errorf("decoding -key: %w", err)
	}
	priv := gost3410.PrivateKeyFromBytes(keyBytes)
	curve := curveFromFlag(*curveName)

	signPath, err := filedriver.SignFile(path, curve, priv, rand.Reader, digest.Reference)
	if err != nil {
		return err
	}
	fmt.Println("wrote", signPath)
	return nil
}

func cmdVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("verify requires a file path")
	}
	path := fs.Arg(0)
	signPath := ""
	if fs.NArg() > 1 {
		signPath = fs.Arg(1)
	}

	ok, err := filedriver.VerifyFile(path, digest.Reference, signPath, nil)
	if err != nil {
		return err
	}
	if ok {
		fmt.Println("valid")
		return nil
	}
	fmt.Println("invalid")
	os.Exit(1)
	return nil
}
