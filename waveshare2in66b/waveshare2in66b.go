// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66b

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/rpi"
)

// Opts defines the display configuration.
type Opts struct {
	// Frequency of the SPI bus. The controller accepts up to 20MHz.
	Frequency physic.Frequency
	// Background is the color ClearFrame fills the panel with.
	Background TriColor
	// ResetDelay is how long reset is held high around the reset pulse.
	ResetDelay time.Duration
	// ResetPulse is how long reset is held low.
	ResetPulse time.Duration
	// BusyPoll bounds how long a single wait for a busy edge lasts before
	// the line is read again.
	BusyPoll time.Duration
}

// DefaultOpts is the recommended default options. White is the color to
// leave the panel in for long-term storage.
var DefaultOpts = Opts{
	Frequency:  4 * physic.MegaHertz,
	Background: White,
	// 2ms comes from the SSD1675B datasheet.
	ResetDelay: 20 * time.Millisecond,
	ResetPulse: 2 * time.Millisecond,
	BusyPoll:   10 * time.Millisecond,
}

type state int

const (
	uninitialized state = iota
	ready
	asleep
)

// Dev defines the handler which is used to access the display.
//
// Dev is not safe for concurrent use. Commands and the controller's address
// counters are shared state; one caller at a time must drive it.
type Dev struct {
	c         conn.Conn
	maxTxSize int

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn

	opts       Opts
	background TriColor
	state      state

	// frame is the image composed by Draw.
	frame *Frame
}

// New creates new handler which is used to access the display and
// initializes the controller. cs may be nil when the SPI port drives chip
// select. A nil opts uses DefaultOpts.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn, opts *Opts) (*Dev, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Frequency == 0 {
		o.Frequency = DefaultOpts.Frequency
	}
	if o.BusyPoll == 0 {
		o.BusyPoll = DefaultOpts.BusyPoll
	}
	if !o.Background.Valid() {
		return nil, fmt.Errorf("%w: background %v", ErrInvalidColor, o.Background)
	}

	c, err := p.Connect(o.Frequency, spi.Mode0, 8)
	if err != nil {
		return nil, &Error{Fault: BusFault, Err: err}
	}

	// Get the maxTxSize from the conn if it implements the conn.Limits
	// interface, otherwise use 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize == 0 {
		maxTxSize = 4096
	}

	// Busy is high while the controller works.
	if err := busy.In(gpio.Float, gpio.FallingEdge); err != nil {
		return nil, &Error{Fault: BusyFault, Err: err}
	}

	d := &Dev{
		c:          c,
		maxTxSize:  maxTxSize,
		dc:         dc,
		cs:         cs,
		rst:        rst,
		busy:       busy,
		opts:       o,
		background: o.Background,
	}

	if err := d.Init(); err != nil {
		return nil, err
	}

	return d, nil
}

// NewHat creates new handler which is used to access the display. Default
// Waveshare Hat configuration is used.
func NewHat(p spi.Port, opts *Opts) (*Dev, error) {
	dc := rpi.P1_22
	cs := rpi.P1_24
	rst := rpi.P1_11
	busy := rpi.P1_18
	return New(p, dc, cs, rst, busy, opts)
}

// Init runs the controller's power-on sequence: hardware reset, software
// reset, data entry mode, full panel window, RAM options and address
// counters at the origin. It also recovers from deep sleep and from a failed
// command sequence.
func (d *Dev) Init() error {
	eh := errorHandler{d: d}

	initDisplay(&eh, &d.opts)

	if eh.err != nil {
		d.state = uninitialized
		return eh.err
	}
	d.state = ready
	return nil
}

// Wake leaves deep sleep. The controller has no wake command and lost its RAM,
// so this is the same as Init.
func (d *Dev) Wake() error {
	return d.Init()
}

// Sleep makes the controller enter deep sleep mode, discarding the RAM
// content. The displayed image stays. Only Wake or Init are valid afterwards.
func (d *Dev) Sleep() error {
	if d.state == asleep {
		return nil
	}
	if err := d.run(sleep); err != nil {
		return err
	}
	d.state = asleep
	return nil
}

// Asleep reports whether the controller is in deep sleep.
func (d *Dev) Asleep() bool {
	return d.state == asleep
}

// UpdateRegion writes data into plane p of the window r. data holds
// (r.Dx()+7)/8 bytes per row of r. The horizontal edges of r must be
// multiples of 8 since the controller addresses columns in groups of 8
// pixels. The full panel window is restored afterwards.
func (d *Dev) UpdateRegion(p Plane, data []byte, r image.Rectangle) error {
	if err := checkWindow(r, data); err != nil {
		return err
	}
	return d.run(func(ctrl controller) {
		updateRegion(ctrl, p, r, data)
	})
}

// UpdatePartialFrame writes a black and white image into the window r. The
// controller only supports this for the achromatic plane.
func (d *Dev) UpdatePartialFrame(achromatic []byte, r image.Rectangle) error {
	return d.UpdateRegion(AchromaticPlane, achromatic, r)
}

// UpdateAchromaticFrame writes a full black and white plane.
func (d *Dev) UpdateAchromaticFrame(achromatic []byte) error {
	return d.UpdateRegion(AchromaticPlane, achromatic, fullWindow)
}

// UpdateChromaticFrame writes a full red plane.
func (d *Dev) UpdateChromaticFrame(chromatic []byte) error {
	return d.UpdateRegion(ChromaticPlane, chromatic, fullWindow)
}

// UpdateColorFrame writes both planes.
func (d *Dev) UpdateColorFrame(achromatic, chromatic []byte) error {
	if err := checkWindow(fullWindow, achromatic); err != nil {
		return err
	}
	if err := checkWindow(fullWindow, chromatic); err != nil {
		return err
	}
	return d.run(func(ctrl controller) {
		updateColorFrame(ctrl, achromatic, chromatic)
	})
}

// UpdateFrame writes a black and white image and clears the red plane.
func (d *Dev) UpdateFrame(achromatic []byte) error {
	if err := checkWindow(fullWindow, achromatic); err != nil {
		return err
	}
	return d.run(func(ctrl controller) {
		updateFrame(ctrl, achromatic)
	})
}

// DisplayFrame refreshes the panel from the controller RAM. This is the only
// call that changes what the panel shows; it takes several seconds.
func (d *Dev) DisplayFrame() error {
	return d.run(displayFrame)
}

// WaitUntilIdle blocks until the controller releases the busy line. Every
// operation already waits where the controller needs it.
func (d *Dev) WaitUntilIdle() error {
	return d.run(func(ctrl controller) {
		ctrl.waitUntilIdle()
	})
}

// UpdateAndDisplayFrame is UpdateFrame followed by DisplayFrame.
func (d *Dev) UpdateAndDisplayFrame(achromatic []byte) error {
	if err := checkWindow(fullWindow, achromatic); err != nil {
		return err
	}
	return d.run(func(ctrl controller) {
		updateFrame(ctrl, achromatic)
		displayFrame(ctrl)
	})
}

// ClearFrame fills both planes with the background color using the
// controller's pattern generator. Call DisplayFrame to show it.
func (d *Dev) ClearFrame() error {
	bg := d.background
	if !bg.Valid() {
		return fmt.Errorf("%w: background %v", ErrInvalidColor, bg)
	}
	return d.run(func(ctrl controller) {
		clearFrame(ctrl, bg)
	})
}

// SetBackgroundColor sets the color used by ClearFrame and Draw. ClearFrame
// and Draw return ErrInvalidColor for a color that is not Valid.
func (d *Dev) SetBackgroundColor(c TriColor) {
	d.background = c
}

// BackgroundColor returns the color used by ClearFrame and Draw.
func (d *Dev) BackgroundColor() TriColor {
	return d.background
}

// Width returns the panel width in pixels.
func (d *Dev) Width() int {
	return Width
}

// Height returns the panel height in pixels.
func (d *Dev) Height() int {
	return Height
}

// ColorModel returns the three color model.
func (d *Dev) ColorModel() color.Model {
	return ColorModel
}

// Bounds returns the bounds of the panel.
func (d *Dev) Bounds() image.Rectangle {
	return fullWindow
}

// Draw draws the given image to the display. The image is composed onto the
// previously drawn ones, both planes are uploaded and the panel refreshed.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	if err := d.ready(); err != nil {
		return err
	}
	if d.frame == nil {
		if !d.background.Valid() {
			return fmt.Errorf("%w: background %v", ErrInvalidColor, d.background)
		}
		d.frame = NewFrame(d.background)
	}

	draw.Src.Draw(d.frame, dstRect.Intersect(fullWindow), src, sp)

	f := d.frame
	return d.run(func(ctrl controller) {
		updateColorFrame(ctrl, f.Achromatic, f.Chromatic)
		displayFrame(ctrl)
	})
}

// Halt puts the controller in deep sleep. The displayed image stays.
func (d *Dev) Halt() error {
	return d.Sleep()
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("epd.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, Width, Height)
}

// ready returns an error when no command may be sent in the current state.
func (d *Dev) ready() error {
	switch d.state {
	case uninitialized:
		return ErrNotInitialized
	case asleep:
		return ErrAsleep
	}
	return nil
}

// run executes a command sequence once the state allows it.
func (d *Dev) run(seq func(controller)) error {
	if err := d.ready(); err != nil {
		return err
	}

	eh := errorHandler{d: d}
	seq(&eh)

	return eh.err
}

// checkWindow validates that r is a legal RAM window and that data fills it.
func checkWindow(r image.Rectangle, data []byte) error {
	if r.Empty() || !r.In(fullWindow) {
		return fmt.Errorf("%w: %v not within %v", ErrOutOfBounds, r, fullWindow)
	}
	if !aligned(r) {
		return fmt.Errorf("%w: %v", ErrUnaligned, r)
	}
	if want := planeSize(r); len(data) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(data), want)
	}
	return nil
}

var _ display.Drawer = &Dev{}
