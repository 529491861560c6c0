// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

// Command tfhe-keygen generates a secret key and the matching
// bootstrap key. The bootstrap key is safe to hand to an evaluation
// worker; the secret key stays with the client.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ghostcrypt/tfhe"
	"github.com/ghostcrypt/tfhe/sampling"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		paramsName = flag.String("params", "boolean128", "parameter preset (boolean128, boolean-test)")
		skPath     = flag.String("sk", "secret.key", "secret key output path")
		bskPath    = flag.String("bsk", "bootstrap.key", "bootstrap key output path")
	)
	flag.Parse()

	var lit tfhe.ParametersLiteral
	switch *paramsName {
	case "boolean128":
		lit = tfhe.ParamsBoolean128
	case "boolean-test":
		lit = tfhe.ParamsBooleanTest
	default:
		return fmt.Errorf("unknown parameter preset %q", *paramsName)
	}

	params, err := tfhe.NewParametersFromLiteral(lit)
	if err != nil {
		return err
	}

	kgen := tfhe.NewKeyGenerator(params, sampling.NewPRNG())
	sk := kgen.GenSecretKey()
	log.Printf("generating bootstrap key (params=%s), this can take a while", *paramsName)
	bsk := kgen.GenBootstrapKey(sk)

	skData, err := sk.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal secret key: %w", err)
	}
	if err := os.WriteFile(*skPath, skData, 0o600); err != nil {
		return fmt.Errorf("write secret key: %w", err)
	}

	bskData, err := bsk.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal bootstrap key: %w", err)
	}
	if err := os.WriteFile(*bskPath, bskData, 0o644); err != nil {
		return fmt.Errorf("write bootstrap key: %w", err)
	}

	log.Printf("wrote %s (%d bytes) and %s (%d bytes)", *skPath, len(skData), *bskPath, len(bskData))
	return nil
}
