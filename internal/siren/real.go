//go:build linux

package siren

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealLine is an output line on a Linux GPIO character device.
type RealLine struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// OpenLine requests the given line offset on chip as an output, initially inactive.
func OpenLine(chipName string, offset int) (*RealLine, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	line, err := chip.RequestLine(offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("security-system"))
	if err != nil {
		_ = chip.Close()

		return nil, fmt.Errorf("request siren line %d: %w", offset, err)
	}

	return &RealLine{
		chip: chip,
		line: line,
	}, nil
}

// SetValue drives the line.
func (r *RealLine) SetValue(value int) error {
	return r.line.SetValue(value)
}

// Close returns the line to an input, so the relay is not held after exit, and releases the chip.
func (r *RealLine) Close() error {
	var errs []error

	if err := r.line.Reconfigure(gpiocdev.AsInput); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure siren line: %w", err))
	}

	if err := r.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close siren line: %w", err))
	}

	if err := r.chip.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close chip: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}

	return nil
}
