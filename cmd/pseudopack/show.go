// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/pseudopack/cmd/pseudopack/cli"
	"github.com/bureau-foundation/pseudopack/lib/codec"
	"github.com/bureau-foundation/pseudopack/lib/pseudocode"
)

type showParams struct {
	Label    string `flag:"label,l"   desc:"print only the block with this label"`
	Flat     bool   `flag:"flat"      desc:"print bare body lines, no marker lines"`
	Diag     bool   `flag:"diag"      desc:"print the payload's CBOR diagnostic notation"`
	RuleFile string `flag:"rule-file" desc:"YAML marker rule override for re-rendering"`
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Decode a stored pack and print its blocks",
		Description: `Read a hex-encoded pack (whitespace is ignored, so line-wrapped
literals paste cleanly) and print its contents.

By default blocks are re-rendered as annotated text with their marker
lines regenerated. --label prints one block's body, --flat prints every
body line without markers, and --diag prints the decompressed payload
in CBOR diagnostic notation for format debugging.`,
		Usage: "pseudopack show [--label L | --flat | --diag] [FILE]",
		Examples: []cli.Example{
			{
				Description: "Show a pack stored in a file",
				Command:     "pseudopack show pack.hex",
			},
			{
				Description: "Print one block's body lines",
				Command:     "pseudopack show --label cleanup pack.hex",
			},
			{
				Description: "Inspect the payload structure",
				Command:     "echo \"$STORED\" | pseudopack show --diag",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(args []string) error {
			data, remaining, err := readInput(args)
			if err != nil {
				return err
			}
			if len(remaining) > 0 {
				return fmt.Errorf("show takes no positional arguments, got %q", remaining[0])
			}
			return showPack(params, data, os.Stdout)
		},
	}
}

// showPack decodes raw hex input and writes the requested view to
// stdout.
func showPack(params showParams, input []byte, stdout io.Writer) error {
	encoded, err := encodedString(input)
	if err != nil {
		return err
	}

	if params.Diag {
		payload, err := pseudocode.Payload(encoded)
		if err != nil {
			return err
		}
		notation, err := codec.Diagnose(payload)
		if err != nil {
			return fmt.Errorf("diagnose payload: %w", err)
		}
		fmt.Fprintln(stdout, notation)
		return nil
	}

	pack, err := pseudocode.Load(encoded)
	if err != nil {
		return err
	}

	switch {
	case params.Label != "":
		lines, err := pack.Lines(params.Label)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Fprintln(stdout, line)
		}

	case params.Flat:
		for _, line := range pack.Flattened() {
			fmt.Fprintln(stdout, line)
		}

	default:
		rule, err := loadRule(params.RuleFile)
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, pack.Render(rule))
	}
	return nil
}
