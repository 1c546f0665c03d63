// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66b

// Commands
const (
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	masterActivation               byte = 0x20
	displayUpdateControl1          byte = 0x21
	writeRAMBW                     byte = 0x24
	writeRAMRed                    byte = 0x26
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
	redRAMTestPattern              byte = 0x46
	bwRAMTestPattern               byte = 0x47
	setRAMXAddressCounter          byte = 0x4E
	setRAMYAddressCounter          byte = 0x4F
)

// stream marks commands followed by an arbitrary amount of RAM data.
const stream = -1

// payloadSize is the number of data bytes the controller expects after each
// command.
var payloadSize = map[byte]int{
	deepSleepMode:                  1,
	dataEntryModeSetting:           1,
	swReset:                        0,
	masterActivation:               0,
	displayUpdateControl1:          2,
	writeRAMBW:                     stream,
	writeRAMRed:                    stream,
	setRAMXAddressStartEndPosition: 2,
	setRAMYAddressStartEndPosition: 4,
	redRAMTestPattern:              1,
	bwRAMTestPattern:               1,
	setRAMXAddressCounter:          1,
	setRAMYAddressCounter:          2,
}

// Data entry mode, dataEntryModeSetting. The address counter is updated in
// the X direction when dataEntryXMinor is used.
const (
	dataEntryXMinor byte = 0b000
	dataEntryYMinor byte = 0b100

	dataEntryDecYDecX byte = 0b00
	dataEntryDecYIncX byte = 0b01
	dataEntryIncYDecX byte = 0b10
	dataEntryIncYIncX byte = 0b11
)

// RAM content options, displayUpdateControl1. The red option is shifted into
// the upper nibble.
const (
	writeModeNormal    byte = 0b0000
	writeModeForceZero byte = 0b0100
	writeModeInvert    byte = 0b1000
)

// Source output range, second byte of displayUpdateControl1.
const (
	outputSourceS0ToS175 byte = 0x00
	outputSourceS8ToS167 byte = 0x80
)

// Built-in RAM pattern generator, redRAMTestPattern and bwRAMTestPattern.
const (
	patternWidth8   byte = 0b000_0000
	patternWidth16  byte = 0b001_0000
	patternWidth32  byte = 0b010_0000
	patternWidth64  byte = 0b011_0000
	patternWidth128 byte = 0b100_0000
	patternWidth160 byte = 0b101_0000

	patternHeight8   byte = 0b000
	patternHeight16  byte = 0b001
	patternHeight32  byte = 0b010
	patternHeight64  byte = 0b011
	patternHeight128 byte = 0b100
	patternHeight256 byte = 0b101
	patternHeight296 byte = 0b110

	patternStartWithZero byte = 0x00
	patternStartWithOne  byte = 0x80
)

// Deep sleep modes.
const (
	deepSleepNormal     byte = 0b00
	deepSleepKeepingRAM byte = 0b01
	deepSleepLosingRAM  byte = 0b11
)
