// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pseudocode

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/bureau-foundation/pseudopack/lib/codec"
)

// ErrCorruptPack is returned by Decode when an encoded pack cannot be
// read back: invalid hex, a broken zlib stream, or a payload that is
// not the expected ordered list of [label, lines] pairs. Decoding is
// all-or-nothing; no partially populated block list is ever returned.
var ErrCorruptPack = errors.New("pseudocode: corrupt encoded pack")

// Encode serializes an ordered block list into its persisted string
// form: deterministic CBOR ([label, lines] pairs), zlib-compressed,
// rendered as lowercase hex. The same block list always yields the
// same string, which is what makes stored literals comparable against
// freshly computed ones for drift detection.
func Encode(blocks []Block) (string, error) {
	if blocks == nil {
		blocks = []Block{}
	}
	payload, err := codec.Marshal(blocks)
	if err != nil {
		return "", fmt.Errorf("encoding pack payload: %w", err)
	}

	var compressed bytes.Buffer
	writer := zlib.NewWriter(&compressed)
	if _, err := writer.Write(payload); err != nil {
		return "", fmt.Errorf("compressing pack payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("compressing pack payload: %w", err)
	}

	return hex.EncodeToString(compressed.Bytes()), nil
}

// Decode reverses Encode exactly: hex-decode, decompress, deserialize.
// Any failure along the way reports ErrCorruptPack.
//
// This is the durable read path: every encoding ever produced by
// Encode must remain decodable here.
func Decode(encoded string) ([]Block, error) {
	payload, err := Payload(encoded)
	if err != nil {
		return nil, err
	}

	var blocks []Block
	if err := codec.Unmarshal(payload, &blocks); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrCorruptPack, err)
	}
	if blocks == nil {
		blocks = []Block{}
	}
	for i := range blocks {
		if blocks[i].Lines == nil {
			blocks[i].Lines = []string{}
		}
	}
	return blocks, nil
}

// Payload returns the decompressed serialized payload of an encoded
// pack without deserializing it. The pseudopack CLI feeds this to the
// CBOR diagnostic printer.
func Payload(encoded string) ([]byte, error) {
	compressed, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: hex: %v", ErrCorruptPack, err)
	}

	reader, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrCorruptPack, err)
	}
	defer reader.Close()

	payload, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrCorruptPack, err)
	}
	return payload, nil
}
