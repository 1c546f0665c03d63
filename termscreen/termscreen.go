// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termscreen emulates a Waveshare 2.66" B tri-color panel on the
// terminal using ANSI color codes.
//
// Uploads land in RAM planes like on the controller and are only shown on
// DisplayFrame. Useful to preview layouts without the hardware.
package termscreen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/GermanBionicSystems/epaper/waveshare2in66b"
)

// Opts represents the options available for this display.
type Opts struct {
	// Scale is the number of panel pixels, in each direction, rendered as one
	// terminal block. Defaults to 4.
	Scale int
	// Background is the color ClearFrame fills the RAM with.
	Background waveshare2in66b.TriColor
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Output defaults to a colorable stdout.
	Output io.Writer

	_ struct{}
}

// Dev is a tri-color panel emulator that outputs to the console.
type Dev struct {
	w          io.Writer
	scale      int
	palette    ansi256.Palette
	background waveshare2in66b.TriColor
	asleep     bool

	ram *waveshare2in66b.Frame
	buf bytes.Buffer
}

// New returns a Dev that displays at the console. The RAM starts filled with
// the background color.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Output
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 4
	}
	return &Dev{
		w:          w,
		scale:      scale,
		palette:    *p,
		background: opts.Background,
		ram:        waveshare2in66b.NewFrame(opts.Background),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("termscreen.Dev{Width: %d, Height: %d}", waveshare2in66b.Width, waveshare2in66b.Height)
}

// Bounds returns the bounds of the emulated panel.
func (d *Dev) Bounds() image.Rectangle {
	return d.ram.Bounds()
}

// ColorModel returns the tri-color model of the panel.
func (d *Dev) ColorModel() color.Model {
	return waveshare2in66b.ColorModel
}

// SetBackgroundColor sets the color used by ClearFrame.
func (d *Dev) SetBackgroundColor(c waveshare2in66b.TriColor) {
	d.background = c
}

// BackgroundColor returns the color used by ClearFrame.
func (d *Dev) BackgroundColor() waveshare2in66b.TriColor {
	return d.background
}

// UpdateColorFrame copies both planes into RAM.
func (d *Dev) UpdateColorFrame(achromatic, chromatic []byte) error {
	if d.asleep {
		return waveshare2in66b.ErrAsleep
	}
	if len(achromatic) != len(d.ram.Achromatic) || len(chromatic) != len(d.ram.Chromatic) {
		return fmt.Errorf("%w: got %d and %d bytes, want %d", waveshare2in66b.ErrBufferSize, len(achromatic), len(chromatic), len(d.ram.Achromatic))
	}
	copy(d.ram.Achromatic, achromatic)
	copy(d.ram.Chromatic, chromatic)
	return nil
}

// ClearFrame fills the RAM with the background color.
func (d *Dev) ClearFrame() error {
	if d.asleep {
		return waveshare2in66b.ErrAsleep
	}
	if !d.background.Valid() {
		return fmt.Errorf("%w: background %v", waveshare2in66b.ErrInvalidColor, d.background)
	}
	d.ram.Fill(d.background)
	return nil
}

// DisplayFrame renders the RAM to the console.
func (d *Dev) DisplayFrame() error {
	if d.asleep {
		return waveshare2in66b.ErrAsleep
	}
	return d.refresh()
}

// Sleep drops the RAM content like the controller's deep sleep. What was last
// rendered stays on the console.
func (d *Dev) Sleep() error {
	d.asleep = true
	return nil
}

// Wake leaves sleep. The RAM holds the background color.
func (d *Dev) Wake() error {
	if !d.background.Valid() {
		return fmt.Errorf("%w: background %v", waveshare2in66b.ErrInvalidColor, d.background)
	}
	d.ram.Fill(d.background)
	d.asleep = false
	return nil
}

// Asleep reports whether Sleep was called since the last Wake.
func (d *Dev) Asleep() bool {
	return d.asleep
}

// Halt implements conn.Resource.
//
// It resets the console colors so the terminal is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m"))
	return err
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	b := d.ram.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += d.scale {
		_, _ = d.buf.WriteString("\033[0m")
		for x := b.Min.X; x < b.Max.X; x += d.scale {
			_, _ = io.WriteString(&d.buf, d.palette.Block(d.blockColor(x, y)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

// blockColor returns the color of the block whose top left pixel is (x, y).
// Any red pixel in the block wins, then any black one.
func (d *Dev) blockColor(x, y int) color.NRGBA {
	c := waveshare2in66b.White
	for dy := 0; dy < d.scale; dy++ {
		for dx := 0; dx < d.scale; dx++ {
			switch d.ram.TriColorAt(x+dx, y+dy) {
			case waveshare2in66b.Chromatic:
				return toNRGBA(waveshare2in66b.Chromatic)
			case waveshare2in66b.Black:
				c = waveshare2in66b.Black
			}
		}
	}
	return toNRGBA(c)
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

var _ fmt.Stringer = &Dev{}
