// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for command operations.
// When stderr is a terminal, uses slog.TextHandler for human-readable
// output; when piped or redirected (CI, scripts), uses
// slog.JSONHandler for machine-parseable output.
//
// The author and check commands route drift notifications through
// this logger:
//
//	logger := cli.NewCommandLogger().With("command", "author")
func NewCommandLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
