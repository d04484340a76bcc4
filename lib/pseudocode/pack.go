// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pseudocode

import (
	"fmt"
	"sync"
)

// Pack is a fully segmented, indentation-normalized function body
// together with its persisted encoding. A Pack is immutable after
// construction; the only internal state that ever changes is the
// write-once drift notification guard, so a Pack is safe for
// concurrent use.
type Pack struct {
	blocks  []Block
	byLabel map[string][]string
	encoded string

	stale        bool
	driftMessage string
	notify       func(message string)
	notifyOnce   sync.Once
}

// AuthorRequest carries everything the write path needs: the target
// function's declared name, its source lines (including the
// declaration line), and optionally the previously persisted encoding
// to compare against.
type AuthorRequest struct {
	// FunctionName is the declared name of the function. It must
	// appear literally in the source, exactly as given.
	FunctionName string

	// SourceLines is the function's textual body, declaration line
	// included. The slice is only read, never mutated.
	SourceLines []string

	// Rule overrides the marker rule. Nil selects DefaultRule.
	Rule *Rule

	// StoredEncoding is the encoded pack persisted by an earlier
	// authoring run, if any. When it differs from the freshly
	// computed encoding — or is empty — the Pack is marked stale.
	StoredEncoding string

	// Notify receives the drift message, at most once per Pack, the
	// first time any accessor is used on a stale Pack. Nil disables
	// the notification; staleness stays queryable via Stale.
	Notify func(message string)
}

// Author runs the write path: segment the source by the marker rule,
// normalize indentation, encode. The returned Pack carries the fresh
// encoding; if a stored encoding was supplied and differs, the Pack is
// marked stale. Construction fails atomically on ErrMarkerNotFound or
// ErrMalformedIndentation — there is no partially valid Pack.
func Author(request AuthorRequest) (*Pack, error) {
	rule := request.Rule
	if rule == nil {
		rule = DefaultRule()
	}

	blocks, err := Segment(request.SourceLines, rule, request.FunctionName)
	if err != nil {
		return nil, err
	}
	blocks, err = Normalize(blocks)
	if err != nil {
		return nil, err
	}
	encoded, err := Encode(blocks)
	if err != nil {
		return nil, err
	}

	pack := newPack(blocks, encoded)
	pack.notify = request.Notify
	switch request.StoredEncoding {
	case encoded:
		// Stored and fresh encodings agree; nothing to report.
	case "":
		pack.stale = true
		pack.driftMessage = fmt.Sprintf(
			"pseudocode for %q has no stored encoding; store %s:\n%s",
			request.FunctionName, Ref(encoded), encoded)
	default:
		pack.stale = true
		pack.driftMessage = fmt.Sprintf(
			"stored pseudocode for %q is stale (stored %s, current %s); update the stored encoding to:\n%s",
			request.FunctionName, Ref(request.StoredEncoding), Ref(encoded), encoded)
	}
	return pack, nil
}

// Load runs the read path: reconstruct a Pack from its persisted
// encoding alone. No source is available here, so drift checking is
// skipped entirely and the stored pack is used as-is.
func Load(encoded string) (*Pack, error) {
	blocks, err := Decode(encoded)
	if err != nil {
		return nil, err
	}
	return newPack(blocks, encoded), nil
}

// newPack assembles the immutable pack state, including the
// last-write-wins label index.
func newPack(blocks []Block, encoded string) *Pack {
	byLabel := make(map[string][]string, len(blocks))
	for _, block := range blocks {
		byLabel[block.Label] = block.Lines
	}
	return &Pack{
		blocks:  blocks,
		byLabel: byLabel,
		encoded: encoded,
	}
}

// Encoded returns the persisted encoding of this Pack.
func (p *Pack) Encoded() string {
	p.announceDrift()
	return p.encoded
}

// Stale reports whether the stored encoding this Pack was authored
// against differs from the freshly computed one, along with the drift
// message. A Pack built by Load is never stale: with no source to
// recompute from, drift is undetectable and left unchecked.
func (p *Pack) Stale() (bool, string) {
	p.announceDrift()
	return p.stale, p.driftMessage
}

// announceDrift delivers the drift message on the first accessor call
// of a stale Pack. The sync.Once guard keeps the notification one-shot
// even under concurrent access; drift never blocks use of the Pack.
func (p *Pack) announceDrift() {
	if !p.stale || p.notify == nil {
		return
	}
	p.notifyOnce.Do(func() {
		p.notify(p.driftMessage)
	})
}
