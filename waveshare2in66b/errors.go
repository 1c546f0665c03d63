// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66b

import (
	"errors"
	"fmt"
)

// Fault identifies the bus primitive that failed.
type Fault int

// Valid Fault.
const (
	// BusFault is a failed SPI transfer.
	BusFault Fault = iota
	// DCFault is a failure to drive the data/command line.
	DCFault
	// CSFault is a failure to drive the chip select line.
	CSFault
	// ResetFault is a failure to drive the reset line.
	ResetFault
	// BusyFault is a failure to configure or read the busy line.
	BusyFault
)

func (f Fault) String() string {
	switch f {
	case BusFault:
		return "spi transfer"
	case DCFault:
		return "dc pin"
	case CSFault:
		return "cs pin"
	case ResetFault:
		return "reset pin"
	case BusyFault:
		return "busy pin"
	}
	return fmt.Sprintf("Fault(%d)", int(f))
}

// Error is returned when one of the primitives talking to the controller
// fails. The command sequence is aborted at that point and the controller
// state is undefined until Init succeeds again.
type Error struct {
	Fault Fault
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("waveshare2in66b: %s: %v", e.Fault, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrNotInitialized is returned by operations on a Dev that never
	// completed Init.
	ErrNotInitialized = errors.New("waveshare2in66b: controller not initialized")
	// ErrAsleep is returned by operations issued after Sleep and before Wake.
	ErrAsleep = errors.New("waveshare2in66b: controller is in deep sleep")
	// ErrOutOfBounds is returned for empty windows or windows not fully
	// inside the panel.
	ErrOutOfBounds = errors.New("waveshare2in66b: window out of bounds")
	// ErrUnaligned is returned for windows whose horizontal edges are not
	// multiples of 8 pixels.
	ErrUnaligned = errors.New("waveshare2in66b: window not aligned to 8 pixel columns")
	// ErrInvalidColor is returned when the background is not one of Black,
	// White or Chromatic.
	ErrInvalidColor = errors.New("waveshare2in66b: invalid color")
	// ErrBufferSize is returned when a plane buffer does not match the
	// window it is written to.
	ErrBufferSize = errors.New("waveshare2in66b: invalid buffer size")
)
