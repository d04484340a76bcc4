// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the shared CBOR encoding configuration for
// pseudocode packs.
//
// The persisted pack format depends on every encode of the same block
// list producing identical bytes: stored pack literals are compared
// byte-for-byte against freshly computed ones to detect source drift.
// The encoder therefore uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items.
//
// The decode path is the durable contract. Packs encoded by any past
// version of this module must remain decodable, so the decoder accepts
// standard CBOR rather than insisting on the deterministic profile.
//
//	data, err := codec.Marshal(blocks)
//	err = codec.Unmarshal(data, &blocks)
//
// Diagnose renders a payload in RFC 8949 diagnostic notation for
// human inspection; the pseudopack CLI uses it to show the structure
// of a decompressed pack.
package codec
