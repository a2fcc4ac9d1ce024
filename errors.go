// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import "errors"

// Package-level errors. Stack underflow and use-after-release are
// programmer errors, so the hot paths panic with these sentinels rather
// than threading error returns through every emitter.
var (
	// ErrStackUnderflow is panicked when PopMatrix, PopScissor or
	// PopLayer is called with nothing pushed.
	ErrStackUnderflow = errors.New("batch: state stack underflow")

	// ErrResourceDisposed is panicked when a released mesh, texture
	// or font is used.
	ErrResourceDisposed = errors.New("batch: resource disposed")
)
