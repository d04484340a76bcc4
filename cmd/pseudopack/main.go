// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/pseudopack/cmd/pseudopack/cli"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like check) return an
		// ExitError with the desired exit code. Don't print a
		// redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return rootCommand().Execute(os.Args[1:])
}

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:    "pseudopack",
		Summary: "Author and inspect pseudocode packs",
		Description: `Pack marker-delimited pseudocode annotations into a compact encoded
string, and read such strings back without needing the original source.

The "author" command runs where source is available and produces the
encoded pack to embed as a stored literal. The "show" command decodes a
stored pack. The "check" command recomputes from current source and
compares against the stored encoding to detect drift.`,
		Subcommands: []*cli.Command{
			authorCommand(),
			showCommand(),
			checkCommand(),
		},
	}
}
