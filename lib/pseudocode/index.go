// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pseudocode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLabelNotFound is returned by Lines when no block carries the
// requested label. Unlike the construction-time errors, this is a
// recoverable query result, checked with errors.Is.
var ErrLabelNotFound = errors.New("pseudocode: no block with label")

// Lines returns the body lines of the block with the given label.
// When several blocks share a label, the last one wins; ordered
// iteration via Blocks still exposes all of them.
func (p *Pack) Lines(label string) ([]string, error) {
	p.announceDrift()
	lines, ok := p.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLabelNotFound, label)
	}
	copied := make([]string, len(lines))
	copy(copied, lines)
	return copied, nil
}

// Blocks returns all blocks in source order, duplicates included.
// The result is a copy; mutating it does not affect the Pack.
func (p *Pack) Blocks() []Block {
	p.announceDrift()
	return cloneBlocks(p.blocks)
}

// Flattened returns every body line across all blocks in source
// order, ignoring labels.
func (p *Pack) Flattened() []string {
	p.announceDrift()
	var lines []string
	for _, block := range p.blocks {
		lines = append(lines, block.Lines...)
	}
	return lines
}

// Render reconstructs the annotated text form of the pack: each
// block's canonical marker line followed by its body lines. Nil rule
// selects DefaultRule. The rendered text ends with a newline unless
// the pack is empty.
func (p *Pack) Render(rule *Rule) string {
	p.announceDrift()
	if rule == nil {
		rule = DefaultRule()
	}
	var text strings.Builder
	for _, block := range p.blocks {
		text.WriteString(rule.MarkerLine(block.Label))
		text.WriteByte('\n')
		for _, line := range block.Lines {
			text.WriteString(line)
			text.WriteByte('\n')
		}
	}
	return text.String()
}
