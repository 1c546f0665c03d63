// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66b

import (
	"image"
	"time"
)

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	reset(initial, pulse time.Duration)
	waitUntilIdle()
}

// command sends cmd followed by its payload, if any.
func command(ctrl controller, cmd byte, data ...byte) {
	ctrl.sendCommand(cmd)
	if len(data) > 0 {
		ctrl.sendData(data)
	}
}

func initDisplay(ctrl controller, opts *Opts) {
	ctrl.reset(opts.ResetDelay, opts.ResetPulse)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()

	// Y increment, X increment; update address counter in X direction
	command(ctrl, dataEntryModeSetting, dataEntryXMinor|dataEntryIncYIncX)

	// The window must be in place before the address counters are set.
	setWindow(ctrl, fullWindow)

	command(ctrl, displayUpdateControl1,
		writeModeNormal<<4|writeModeNormal,
		outputSourceS8ToS167,
	)

	setCursor(ctrl, 0, 0)
}

// setWindow restricts RAM writes to r.
func setWindow(ctrl controller, r image.Rectangle) {
	x, y := windowData(r)
	command(ctrl, setRAMXAddressStartEndPosition, x[:]...)
	command(ctrl, setRAMYAddressStartEndPosition, y[:]...)
}

// setCursor positions the RAM address counters. x must be a multiple of 8 or
// the last 3 bits are ignored.
func setCursor(ctrl controller, x, y int) {
	command(ctrl, setRAMXAddressCounter, xAddress(x))
	ya := yAddress(y)
	command(ctrl, setRAMYAddressCounter, ya[:]...)
}

// writePlane streams data into plane p of window r. Window and cursor are
// always set first; the controller keeps them across frames.
func writePlane(ctrl controller, p Plane, r image.Rectangle, data []byte) {
	setWindow(ctrl, r)
	setCursor(ctrl, r.Min.X, r.Min.Y)
	ctrl.sendCommand(p.writeCommand())
	ctrl.sendData(data)
}

// updateRegion writes data into plane p of window r and puts the full panel
// window back, otherwise it leaks into the next full frame. The restored
// window is byte for byte the one initDisplay sets, with inclusive ends
// ([0x00,0x12] and [0x00,0x00,0x27,0x01]).
func updateRegion(ctrl controller, p Plane, r image.Rectangle, data []byte) {
	writePlane(ctrl, p, r, data)
	if r != fullWindow {
		setWindow(ctrl, fullWindow)
	}
}

func updateColorFrame(ctrl controller, achromatic, chromatic []byte) {
	writePlane(ctrl, AchromaticPlane, fullWindow, achromatic)
	writePlane(ctrl, ChromaticPlane, fullWindow, chromatic)
}

// updateFrame writes a black and white frame. The red plane is cleared with
// the pattern generator regardless of the background since red overrides
// the other colors.
func updateFrame(ctrl controller, achromatic []byte) {
	writePlane(ctrl, AchromaticPlane, fullWindow, achromatic)
	fillPattern(ctrl, ChromaticPlane, patternStartWithZero)
}

// fillPattern fills a whole plane using the controller's RAM pattern
// generator.
func fillPattern(ctrl controller, p Plane, phase byte) {
	command(ctrl, p.patternCommand(), phase|patternHeight296|patternWidth160)
	ctrl.waitUntilIdle()
}

// clearPhases is the pattern phase of the achromatic and chromatic planes for
// each background. It has an entry for every valid TriColor.
var clearPhases = map[TriColor][2]byte{
	Black:     {patternStartWithZero, patternStartWithZero},
	White:     {patternStartWithOne, patternStartWithZero},
	Chromatic: {patternStartWithZero, patternStartWithOne},
}

func clearFrame(ctrl controller, background TriColor) {
	phases := clearPhases[background]
	fillPattern(ctrl, AchromaticPlane, phases[0])
	fillPattern(ctrl, ChromaticPlane, phases[1])
}

func displayFrame(ctrl controller) {
	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()
}

func sleep(ctrl controller) {
	command(ctrl, deepSleepMode, deepSleepLosingRAM)
}
