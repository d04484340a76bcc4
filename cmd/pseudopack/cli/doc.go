// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the pseudopack
// binary: a dispatch tree of [Command] values with pflag-based flag
// parsing, struct-tag flag binding, tabwriter help output, and
// Levenshtein suggestions for mistyped commands and flags.
//
// Commands declare their parameters as a tagged struct and bind them
// with [FlagsFromParams]:
//
//	var params struct {
//	    Function string `flag:"function,f" desc:"target function name"`
//	    Flat     bool   `flag:"flat"       desc:"print bare body lines"`
//	}
//	command := &cli.Command{
//	    Name:  "show",
//	    Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("show", &params) },
//	    Run:   func(args []string) error { ... },
//	}
//
// A handler that has already produced its own output signals a bare
// non-zero exit with [ExitError]; main checks for the ExitCode method
// and suppresses the redundant error line.
package cli
