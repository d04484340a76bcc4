// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pseudocode

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Ref returns the short content reference for an encoded pack: the
// "psc-" prefix followed by the first 12 hex characters of the BLAKE3
// digest of the encoding. Encoded packs are long hex strings that are
// impractical to compare by eye; drift messages and CLI output use
// refs so a human can tell two packs apart at a glance.
func Ref(encoded string) string {
	digest := blake3.Sum256([]byte(encoded))
	return "psc-" + hex.EncodeToString(digest[:6])
}
