//go:build !linux

package siren

import "errors"

// errUnsupported is returned on platforms without the GPIO character device.
var errUnsupported = errors.New("siren: gpio not supported on this platform (requires Linux)")

// RealLine is not available on non-Linux platforms.
type RealLine struct{}

// OpenLine returns an error on non-Linux platforms.
func OpenLine(string, int) (*RealLine, error) {
	return nil, errUnsupported
}

// SetValue is not implemented on non-Linux platforms.
func (*RealLine) SetValue(int) error {
	return errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (*RealLine) Close() error {
	return nil
}
