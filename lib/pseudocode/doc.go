// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pseudocode extracts marker-delimited annotation blocks from
// function source text and round-trips them through a compact encoded
// string, so explanatory pseudocode survives even when the source is
// stripped at distribution time.
//
// The write path runs offline, where source is available:
//
//	pack, err := pseudocode.Author(pseudocode.AuthorRequest{
//	    FunctionName:   "transfer",
//	    SourceLines:    lines,
//	    StoredEncoding: storedHex,
//	})
//
// Author segments the source into labeled blocks ([Segment]): the
// declaration line "def transfer(source, target):" opens the first
// block labeled with the parameter text, and each "### label" marker
// line opens the next. Common leading indentation is stripped
// ([Normalize]) so blocks read the same regardless of nesting depth,
// and the result is serialized ([Encode]) as deterministic CBOR,
// zlib-compressed, hex-rendered. The caller embeds that string in its
// code as the stored literal.
//
// The read path needs only the stored string:
//
//	pack, err := pseudocode.Load(storedHex)
//	lines, err := pack.Lines("cleanup")
//
// When Author is given a stored encoding that no longer matches the
// freshly computed one, the Pack is marked stale. Staleness is a soft
// signal, not an error: the first accessor call delivers a single
// notification (never repeated on the same Pack) and the possibly
// outdated pack stays fully usable. Load skips drift checking — with
// no source at hand there is nothing to compare.
//
// Marker syntax is configurable: [NewRule] and [ParseRule] accept
// alternative anchor and marker patterns for host languages with
// different comment forms. [DefaultRule] matches the original
// annotation syntax.
//
// The package operates purely on in-memory line lists; it performs no
// I/O and treats all non-marker lines as opaque text.
package pseudocode
