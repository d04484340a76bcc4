// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/bureau-foundation/pseudopack/lib/pseudocode"
)

// readInput resolves input data from either a file (the last element
// of args, if it names a regular file on disk) or stdin. Returns the
// input bytes and the args with any consumed file path removed.
func readInput(args []string) ([]byte, []string, error) {
	if length := len(args); length > 0 {
		candidate := args[length-1]
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			data, err := os.ReadFile(candidate)
			if err != nil {
				return nil, nil, fmt.Errorf("read %s: %w", candidate, err)
			}
			return data, args[:length-1], nil
		}
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, args, nil
}

// sourceLines splits raw source text into lines. Blank lines and
// trailing whitespace are left in place; the segmenter owns that
// cleanup.
func sourceLines(data []byte) []string {
	return strings.Split(string(data), "\n")
}

// encodedString extracts a pack encoding from raw input: whitespace
// anywhere in the input is dropped, so hex wrapped across lines in an
// editor pastes cleanly.
func encodedString(data []byte) (string, error) {
	encoded := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(data))
	if encoded == "" {
		return "", fmt.Errorf("empty input: expected a hex-encoded pack")
	}
	return encoded, nil
}

// loadRule reads a YAML marker rule override. An empty path selects
// the built-in rule.
func loadRule(path string) (*pseudocode.Rule, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	rule, err := pseudocode.ParseRule(data)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return rule, nil
}
