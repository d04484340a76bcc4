// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pseudocode

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrMalformedIndentation is returned by Normalize when a body line is
// shorter than the computed common indentation. That indicates
// inconsistent input; truncating such a line silently would corrupt
// the block, so pack construction aborts instead.
var ErrMalformedIndentation = errors.New("pseudocode: line shorter than common indentation")

// Normalize strips the common leading indentation from every body
// line across all blocks, leaving relative indentation intact. The
// amount removed is the minimum leading-whitespace width over all
// lines — a fixed character count, not per-line whitespace trimming —
// so the result is independent of how deeply the function was nested
// in its host source. With no body lines the input is returned
// unchanged.
//
// Normalize does not mutate its input; it returns fresh blocks.
// Applying it to already-normalized blocks is a no-op (the minimum
// indentation is then zero).
func Normalize(blocks []Block) ([]Block, error) {
	leastIndent := -1
	for _, block := range blocks {
		for _, line := range block.Lines {
			width := leadingWhitespaceWidth(line)
			if leastIndent < 0 || width < leastIndent {
				leastIndent = width
			}
		}
	}
	if leastIndent <= 0 {
		// No body lines, or at least one line already at column zero.
		return cloneBlocks(blocks), nil
	}

	normalized := make([]Block, len(blocks))
	for i, block := range blocks {
		lines := make([]string, len(block.Lines))
		for j, line := range block.Lines {
			stripped, ok := stripColumns(line, leastIndent)
			if !ok {
				return nil, fmt.Errorf("%w: line %q, indentation %d", ErrMalformedIndentation, line, leastIndent)
			}
			lines[j] = stripped
		}
		normalized[i] = Block{Label: block.Label, Lines: lines}
	}
	return normalized, nil
}

// leadingWhitespaceWidth returns the number of leading whitespace
// characters on the line.
func leadingWhitespaceWidth(line string) int {
	width := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		width++
	}
	return width
}

// stripColumns removes exactly width leading characters from line.
// Returns false when the line has fewer than width characters.
func stripColumns(line string, width int) (string, bool) {
	remaining := width
	for i := range line {
		if remaining == 0 {
			return line[i:], true
		}
		remaining--
	}
	if remaining == 0 {
		return "", true
	}
	return "", false
}

// cloneBlocks deep-copies a block list so callers can hand out results
// without sharing backing arrays.
func cloneBlocks(blocks []Block) []Block {
	cloned := make([]Block, len(blocks))
	for i, block := range blocks {
		lines := make([]string, len(block.Lines))
		copy(lines, block.Lines)
		cloned[i] = Block{Label: block.Label, Lines: lines}
	}
	return cloned
}
