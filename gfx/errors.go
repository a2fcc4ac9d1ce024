// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "errors"

// Sentinel errors for gfx package.
var (
	// ErrResourceDisposed is returned when a destroyed resource is used.
	// This always indicates a caller bug, never a recoverable condition.
	ErrResourceDisposed = errors.New("gfx: resource has been destroyed")

	// ErrInvalidSize is returned when a resource is created with
	// non-positive dimensions or capacity.
	ErrInvalidSize = errors.New("gfx: size must be positive")

	// ErrUnsupportedFormat is returned when the active driver does not
	// support the requested texture format. Query Device.SupportsFormat
	// before creating resources in uncommon formats.
	ErrUnsupportedFormat = errors.New("gfx: texture format not supported by driver")

	// ErrNoDriver is returned when a Device is created without a driver.
	ErrNoDriver = errors.New("gfx: driver is nil")

	// ErrDataSize is returned when uploaded or read-back pixel data does
	// not match the resource's expected byte length.
	ErrDataSize = errors.New("gfx: data length does not match resource size")
)

// UniformNotFoundError is returned when a Material is asked to set a
// uniform the shader does not expose.
type UniformNotFoundError struct {
	Name string
}

func (e *UniformNotFoundError) Error() string {
	return "gfx: shader has no uniform named " + e.Name
}
