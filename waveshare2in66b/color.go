// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66b

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// TriColor is one of the colors the panel can show.
type TriColor uint8

// Valid TriColor.
const (
	Black TriColor = iota
	White
	// Chromatic is the third color of the panel, red on the 2.66" B.
	Chromatic
)

// RGBA implements color.Color.
func (c TriColor) RGBA() (r, g, b, a uint32) {
	switch c {
	case White:
		return 0xffff, 0xffff, 0xffff, 0xffff
	case Chromatic:
		return 0xffff, 0, 0, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func (c TriColor) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Chromatic:
		return "chromatic"
	}
	return fmt.Sprintf("TriColor(%d)", uint8(c))
}

// Valid reports whether c is one of Black, White or Chromatic.
func (c TriColor) Valid() bool {
	return c <= Chromatic
}

// Set sets the TriColor to a value represented by the string s. Set
// implements the flag.Value interface.
func (c *TriColor) Set(s string) error {
	switch s {
	case "black":
		*c = Black
	case "white":
		*c = White
	case "chromatic", "red":
		*c = Chromatic
	default:
		return fmt.Errorf("unknown color %q: expected either black, white or red", s)
	}
	return nil
}

// ColorModel converts any color to a TriColor. Reddish colors become
// Chromatic, the rest is thresholded to Black or White.
var ColorModel = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	if t, ok := c.(TriColor); ok {
		return t
	}
	r, g, b, a := c.RGBA()
	if a >= 0x8000 && isChromatic(r, g, b) {
		return Chromatic
	}
	if image1bit.BitModel.Convert(c).(image1bit.Bit) == image1bit.On {
		return White
	}
	return Black
}

// isChromatic reports whether red clearly dominates the other channels.
func isChromatic(r, g, b uint32) bool {
	m := max(g, b)
	return r >= 0x8000 && r > m && r-m >= 0x2000
}

// Plane selects one of the two RAM planes of the controller.
type Plane int

// Valid Plane.
const (
	// AchromaticPlane is the black and white plane; a set bit is white.
	AchromaticPlane Plane = iota
	// ChromaticPlane is the red plane; a set bit is red and overrides
	// AchromaticPlane.
	ChromaticPlane
)

func (p Plane) String() string {
	switch p {
	case AchromaticPlane:
		return "achromatic"
	case ChromaticPlane:
		return "chromatic"
	}
	return fmt.Sprintf("Plane(%d)", int(p))
}

func (p Plane) writeCommand() byte {
	if p == ChromaticPlane {
		return writeRAMRed
	}
	return writeRAMBW
}

func (p Plane) patternCommand() byte {
	if p == ChromaticPlane {
		return redRAMTestPattern
	}
	return bwRAMTestPattern
}

// Frame is a full panel image split into the two controller planes. It can be
// drawn on with image/draw and handed to Dev.UpdateColorFrame.
type Frame struct {
	Achromatic []byte
	Chromatic  []byte
}

// NewFrame returns a Frame filled with background.
func NewFrame(background TriColor) *Frame {
	f := &Frame{
		Achromatic: make([]byte, planeSize(fullWindow)),
		Chromatic:  make([]byte, planeSize(fullWindow)),
	}
	f.Fill(background)
	return f
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c TriColor) {
	var a, ch byte
	switch c {
	case White:
		a = 0xff
	case Chromatic:
		a, ch = 0xff, 0xff
	}
	for i := range f.Achromatic {
		f.Achromatic[i] = a
		f.Chromatic[i] = ch
	}
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model {
	return ColorModel
}

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle {
	return fullWindow
}

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color {
	return f.TriColorAt(x, y)
}

// TriColorAt returns the color at (x, y). Pixels outside the panel are White.
func (f *Frame) TriColorAt(x, y int) TriColor {
	if !image.Pt(x, y).In(fullWindow) {
		return White
	}
	i, mask := bitOffset(x, y)
	switch {
	case f.Chromatic[i]&mask != 0:
		return Chromatic
	case f.Achromatic[i]&mask != 0:
		return White
	}
	return Black
}

// Set implements draw.Image.
func (f *Frame) Set(x, y int, c color.Color) {
	if !image.Pt(x, y).In(fullWindow) {
		return
	}
	i, mask := bitOffset(x, y)
	switch ColorModel.Convert(c).(TriColor) {
	case Black:
		f.Achromatic[i] &^= mask
		f.Chromatic[i] &^= mask
	case White:
		f.Achromatic[i] |= mask
		f.Chromatic[i] &^= mask
	case Chromatic:
		f.Achromatic[i] |= mask
		f.Chromatic[i] |= mask
	}
}

// bitOffset returns the byte index and bit mask of (x, y) in a plane.
func bitOffset(x, y int) (int, byte) {
	return y*stride(Width) + x/8, 0x80 >> uint(x%8)
}

var _ draw.Image = &Frame{}
