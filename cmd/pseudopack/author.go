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

type authorParams struct {
	Function string `flag:"function,f" desc:"declared name of the target function"`
	RuleFile string `flag:"rule-file"  desc:"YAML marker rule override"`
	Stored   string `flag:"stored"    desc:"previously stored encoding to compare against"`
}

func authorCommand() *cli.Command {
	var params authorParams

	return &cli.Command{
		Name:    "author",
		Summary: "Encode function source into a pseudocode pack",
		Description: `Read function source (declaration line included), segment it by
marker lines, normalize indentation, and print the encoded pack on
stdout. Embed that string as the stored literal next to the function.

With --stored, the fresh encoding is compared against the given one;
a mismatch logs a drift warning and exits 1.`,
		Usage: "pseudopack author --function NAME [--rule-file FILE] [--stored HEX] [FILE]",
		Examples: []cli.Example{
			{
				Description: "Author a pack from a source file",
				Command:     "pseudopack author --function transfer transfer.py",
			},
			{
				Description: "Re-author and verify the stored literal is current",
				Command:     "pseudopack author -f transfer --stored \"$STORED\" transfer.py",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("author", &params)
		},
		Run: func(args []string) error {
			source, remaining, err := readInput(args)
			if err != nil {
				return err
			}
			if len(remaining) > 0 {
				return fmt.Errorf("author takes no positional arguments, got %q", remaining[0])
			}
			logger := cli.NewCommandLogger().With("command", "author")
			return authorPack(params, source, os.Stdout, logger)
		},
	}
}

// authorPack runs the write path over raw source text and prints the
// encoded pack to stdout.
func authorPack(params authorParams, source []byte, stdout io.Writer, logger *slog.Logger) error {
	if params.Function == "" {
		return fmt.Errorf("--function is required")
	}
	rule, err := loadRule(params.RuleFile)
	if err != nil {
		return err
	}

	// Without --stored there is nothing to compare against, so no
	// drift notification is wired up: printing the fresh encoding is
	// the whole point of the invocation.
	var notify func(string)
	if params.Stored != "" {
		notify = func(message string) { logger.Warn(message) }
	}

	pack, err := pseudocode.Author(pseudocode.AuthorRequest{
		FunctionName:   params.Function,
		SourceLines:    sourceLines(source),
		Rule:           rule,
		StoredEncoding: params.Stored,
		Notify:         notify,
	})
	if err != nil {
		return err
	}

	encoded := pack.Encoded()
	fmt.Fprintln(stdout, encoded)
	logger.Info("authored pseudocode pack",
		"function", params.Function,
		"ref", pseudocode.Ref(encoded),
		"blocks", len(pack.Blocks()))

	if stale, _ := pack.Stale(); stale && params.Stored != "" {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
