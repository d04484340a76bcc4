// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pseudocode

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrMarkerNotFound is returned by Segment when no line in the input
// fully matches the declaration anchor for the requested function
// name. This is a construction-time failure: the caller supplied the
// wrong name or the wrong source.
var ErrMarkerNotFound = errors.New("pseudocode: function declaration not found")

// Block is a labeled run of body lines. Order of blocks and of lines
// within a block is significant and preserved end-to-end.
//
// The struct serializes as a fixed two-element CBOR array
// [label, lines] — the durable pack payload shape.
type Block struct {
	_     struct{} `cbor:",toarray"`
	Label string
	Lines []string
}

// Segment splits function source lines into ordered labeled blocks.
//
// Every line is right-trimmed and blank lines are dropped before any
// matching. Lines preceding the declaration (decorators, padding) are
// ignored. The declaration's captured parameter text becomes the label
// of the first, implicit block; each section-marker line closes the
// current block and opens a new one labeled with the marker's captured
// text; every other line is appended verbatim to the current block.
//
// Duplicate labels are legal and are not merged: ordered iteration
// later yields all blocks, while lookup by label resolves to the last.
func Segment(lines []string, rule *Rule, functionName string) ([]Block, error) {
	if rule == nil {
		rule = DefaultRule()
	}

	anchor, err := rule.anchorFor(functionName)
	if err != nil {
		return nil, err
	}

	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}

	start := -1
	var startLabel string
	for i, line := range cleaned {
		match := anchor.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		start = i
		startLabel = strings.TrimSpace(match[rule.anchorGroup])
		break
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMarkerNotFound, functionName)
	}

	blocks := []Block{{Label: startLabel, Lines: []string{}}}
	for _, line := range cleaned[start+1:] {
		if label, ok := rule.matchMarker(line); ok {
			blocks = append(blocks, Block{Label: label, Lines: []string{}})
			continue
		}
		current := &blocks[len(blocks)-1]
		current.Lines = append(current.Lines, line)
	}

	return blocks, nil
}
