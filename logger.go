// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"log/slog"

	"github.com/gogpu/batch/gfx"
)

// SetLogger sets the logger used by the batcher and the gfx device
// layer. Passing nil restores the no-op logger.
func SetLogger(logger *slog.Logger) {
	gfx.SetLogger(logger)
}

// Logger returns the current logger. It never returns nil.
func Logger() *slog.Logger {
	return gfx.Logger()
}
