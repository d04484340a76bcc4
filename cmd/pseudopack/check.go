// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/pseudopack/cmd/pseudopack/cli"
	"github.com/bureau-foundation/pseudopack/lib/pseudocode"
)

type checkParams struct {
	Function string `flag:"function,f" desc:"declared name of the target function"`
	Stored   string `flag:"stored"    desc:"stored encoding to verify"`
	RuleFile string `flag:"rule-file"  desc:"YAML marker rule override"`
}

func checkCommand() *cli.Command {
	var params checkParams

	return &cli.Command{
		Name:    "check",
		Summary: "Compare current source against a stored pack encoding",
		Description: `Recompute the pack from current function source and compare the
result against the stored encoding. Prints the short refs of both
packs. Exit status 0 means the stored literal is current; 1 means it
has drifted and should be re-authored.`,
		Usage: "pseudopack check --function NAME --stored HEX [--rule-file FILE] [FILE]",
		Examples: []cli.Example{
			{
				Description: "Verify a stored literal in CI",
				Command:     "pseudopack check -f transfer --stored \"$STORED\" transfer.py",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("check", &params)
		},
		Run: func(args []string) error {
			source, remaining, err := readInput(args)
			if err != nil {
				return err
			}
			if len(remaining) > 0 {
				return fmt.Errorf("check takes no positional arguments, got %q", remaining[0])
			}
			logger := cli.NewCommandLogger().With("command", "check")
			return checkPack(params, source, os.Stdout, logger)
		},
	}
}

// checkPack recomputes the pack from source and reports whether the
// stored encoding is still current.
func checkPack(params checkParams, source []byte, stdout io.Writer, logger *slog.Logger) error {
	if params.Function == "" {
		return fmt.Errorf("--function is required")
	}
	if params.Stored == "" {
		return fmt.Errorf("--stored is required")
	}
	rule, err := loadRule(params.RuleFile)
	if err != nil {
		return err
	}

	pack, err := pseudocode.Author(pseudocode.AuthorRequest{
		FunctionName:   params.Function,
		SourceLines:    sourceLines(source),
		Rule:           rule,
		StoredEncoding: params.Stored,
		Notify:         func(message string) { logger.Warn(message) },
	})
	if err != nil {
		return err
	}

	stale, _ := pack.Stale()
	fmt.Fprintf(stdout, "stored  %s\n", pseudocode.Ref(params.Stored))
	fmt.Fprintf(stdout, "current %s\n", pseudocode.Ref(pack.Encoded()))
	if stale {
		fmt.Fprintln(stdout, "status  drifted")
		return &cli.ExitError{Code: 1}
	}
	fmt.Fprintln(stdout, "status  current")
	return nil
}
