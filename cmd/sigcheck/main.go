package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mahdiidarabi/ed25519-strict/internal/vectors"
	"github.com/mahdiidarabi/ed25519-strict/pkg/eddsastrict"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sigcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		vectorsFile = fs.String("vectors", "", "Path to signature vectors file (JSON or YAML)")
		mode        = fs.String("mode", "strict", "Verification mode: permissive, strict, batch or find-invalid")
		seed        = fs.String("seed", "", "Private key seed (0x-prefixed hex) to derive and print key material")
		message     = fs.String("message", "", "Message to sign with -seed")
		numWorkers  = fs.Int("workers", 0, "Number of parallel workers (0 = auto-detect based on CPU cores)")
		verbose     = fs.Bool("v", false, "Log rejections at debug level")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	eddsastrict.SetLogger(logger)

	if *seed != "" {
		if err := printKey(stdout, *seed, *message); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if *vectorsFile == "" {
			return 0
		}
	}

	if *vectorsFile == "" {
		fmt.Fprintf(stderr, "Error: --vectors or --seed is required\n")
		fs.Usage()
		return 2
	}

	entries, err := vectors.ParseFile(*vectorsFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading vectors: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Loaded %d vectors from %s\n", len(entries), *vectorsFile)

	ctx := context.Background()
	var failed int
	switch *mode {
	case "permissive":
		failed = checkEach(stdout, entries, eddsastrict.Signature.VerifyArbitraryMsg)
	case "strict":
		failed = checkEach(stdout, entries, eddsastrict.Signature.VerifyStrictArbitraryMsg)
	case "batch", "find-invalid":
		failed, err = checkGroups(ctx, stdout, entries, *mode == "batch", *numWorkers)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	default:
		fmt.Fprintf(stderr, "Error: unknown mode %q\n", *mode)
		return 2
	}

	if failed > 0 {
		fmt.Fprintf(stdout, "\n[-] %d of %d vectors failed\n", failed, len(entries))
		return 1
	}
	fmt.Fprintf(stdout, "\n[+] All %d vectors verified\n", len(entries))
	return 0
}

func printKey(w io.Writer, seedHex, message string) error {
	account, err := eddsastrict.NewAccountKeyFromHex(seedHex)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Public key:         %s\n", account.PublicKey().EncodedString())
	fmt.Fprintf(w, "Authentication key: %s\n", account.AuthenticationKey())
	if message != "" {
		sig := account.PrivateKey().SignArbitraryMessage([]byte(message))
		fmt.Fprintf(w, "Signature:          %s\n", sig.EncodedString())
	}
	return nil
}

// decode turns a raw vector into typed material. The signature goes through
// the unchecked constructor so that a non-canonical S is reported by the
// verifier instead of aborting the load.
func decode(v vectors.Vector) (eddsastrict.KeySignature, error) {
	pk, err := eddsastrict.PublicKeyFromBytes(v.PublicKey)
	if err != nil {
		return eddsastrict.KeySignature{}, fmt.Errorf("public key: %w", err)
	}
	sig, err := eddsastrict.SignatureFromBytesUnchecked(v.Signature)
	if err != nil {
		return eddsastrict.KeySignature{}, fmt.Errorf("signature: %w", err)
	}
	return eddsastrict.KeySignature{PublicKey: pk, Signature: sig}, nil
}

func checkEach(w io.Writer, entries []vectors.Vector, verify eddsastrict.VerifyFunc) int {
	failed := 0
	for i, v := range entries {
		pair, err := decode(v)
		if err == nil {
			err = verify(pair.Signature, v.Message, pair.PublicKey)
		}
		if err != nil {
			failed++
			fmt.Fprintf(w, "    [%d] FAIL: %v\n", i, err)
			continue
		}
		fmt.Fprintf(w, "    [%d] ok\n", i)
	}
	return failed
}

// group collects the vectors that share a message, keeping file order.
type group struct {
	message []byte
	indices []int
	pairs   []eddsastrict.KeySignature
}

func groupByMessage(entries []vectors.Vector) ([]*group, []int, []error) {
	var groups []*group
	byMessage := make(map[string]*group)
	var undecodable []int
	var errs []error
	for i, v := range entries {
		pair, err := decode(v)
		if err != nil {
			undecodable = append(undecodable, i)
			errs = append(errs, err)
			continue
		}
		g, ok := byMessage[string(v.Message)]
		if !ok {
			g = &group{message: v.Message}
			byMessage[string(v.Message)] = g
			groups = append(groups, g)
		}
		g.indices = append(g.indices, i)
		g.pairs = append(g.pairs, pair)
	}
	return groups, undecodable, errs
}

// checkGroups verifies each message group. With tryBatch set, a group is
// first checked with one batch verification and searched pair by pair only
// when that fails.
func checkGroups(ctx context.Context, w io.Writer, entries []vectors.Vector, tryBatch bool, numWorkers int) (int, error) {
	groups, undecodable, errs := groupByMessage(entries)
	failed := len(undecodable)
	for j, i := range undecodable {
		fmt.Fprintf(w, "    [%d] FAIL: %v\n", i, errs[j])
	}

	for _, g := range groups {
		var batchErr error
		if tryBatch {
			batchErr = eddsastrict.BatchVerifyArbitraryMsg(g.message, g.pairs)
			if batchErr == nil {
				fmt.Fprintf(w, "    batch of %d over %q: ok\n", len(g.pairs), g.message)
				continue
			}
			fmt.Fprintf(w, "    batch of %d over %q: FAIL (%v), searching\n", len(g.pairs), g.message, batchErr)
		}
		bad, err := eddsastrict.FindInvalid(ctx, g.message, g.pairs, eddsastrict.Signature.VerifyStrictArbitraryMsg, numWorkers)
		if err != nil {
			return failed, err
		}
		for _, k := range bad {
			fmt.Fprintf(w, "    [%d] FAIL\n", g.indices[k])
		}
		failed += len(bad)

		// A rejected batch never passes, even when no single pair fails on
		// its own (a torsion component that cancels, or a failed random draw).
		if batchErr != nil && len(bad) == 0 {
			for _, i := range g.indices {
				fmt.Fprintf(w, "    [%d] FAIL: batch rejected\n", i)
			}
			failed += len(g.indices)
		}
	}
	return failed, nil
}
