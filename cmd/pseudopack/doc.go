// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package main implements the pseudopack command-line tool for
// authoring and inspecting pseudocode packs.
//
// Subcommands:
//
//   - author: segment and encode function source into the persisted
//     pack string. Run at authoring time, where source is available.
//   - show: decode a stored pack string and print its blocks, a
//     single block, bare body lines, or the payload's CBOR diagnostic
//     notation.
//   - check: recompute the pack from current source and compare it
//     against a stored encoding; exit 1 when the two have drifted.
//
// All subcommands read their primary input (function source for
// author and check, a hex pack string for show) from stdin or from a
// trailing file path argument. Whitespace in hex input is ignored.
package main
