// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66b

import "image"

// Panel geometry in pixels.
const (
	Width  = 152
	Height = 296
)

// fullWindow covers the whole panel RAM.
var fullWindow = image.Rect(0, 0, Width, Height)

// stride returns the number of bytes used by a row of w pixels.
func stride(w int) int {
	return (w + 7) / 8
}

// planeSize returns the number of bytes of one plane covering r.
func planeSize(r image.Rectangle) int {
	return stride(r.Dx()) * r.Dy()
}

// xAddress converts a pixel column to the controller's column group. The
// controller addresses 8 pixel wide groups and only has 5 address bits; the
// low 3 bits of x are dropped.
func xAddress(x int) byte {
	return byte((x >> 3) & 0x1f)
}

// yAddress converts a pixel row to the controller's 9 bit row address, low
// byte first.
func yAddress(y int) [2]byte {
	return [2]byte{byte(y & 0xff), byte((y >> 8) & 0x01)}
}

// windowData returns the payloads of setRAMXAddressStartEndPosition and
// setRAMYAddressStartEndPosition for r. The controller ranges are inclusive.
func windowData(r image.Rectangle) ([2]byte, [4]byte) {
	ys, ye := yAddress(r.Min.Y), yAddress(r.Max.Y-1)
	return [2]byte{xAddress(r.Min.X), xAddress(r.Max.X - 1)},
		[4]byte{ys[0], ys[1], ye[0], ye[1]}
}

// aligned reports whether the horizontal edges of r fall on column group
// boundaries. A right edge at the panel border counts as aligned.
func aligned(r image.Rectangle) bool {
	return r.Min.X%8 == 0 && (r.Max.X%8 == 0 || r.Max.X == Width)
}
