// Package logging wires up the process-global structured logger (spec
// section 6: "Diagnostic logging at INFO by default, DEBUG when verbose
// mode is selected"). log/slog is used directly rather than a third-party
// logger: nothing in the retrieval pack wires a third-party structured
// logger for a single-process, offline CLI in this shape (see DESIGN.md),
// and slog's level-gated Logger already satisfies the concurrent-safety
// requirement in spec section 5 ("loggers are the only process-global
// shared resource and must be safe for concurrent use").
package logging

import (
	"log/slog"
	"os"
)

// New builds a text-handler logger writing to stderr at INFO, or DEBUG
// when verbose is true.
func New(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
