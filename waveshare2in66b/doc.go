// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package waveshare2in66b controls the Waveshare 2.66 inch three-color
// (black, white, red) e-paper display driven by a SSD1675B controller.
//
// The panel has two RAM planes. The achromatic plane holds one bit per pixel
// where 1 is white and 0 is black. The chromatic plane holds one bit per
// pixel where 1 is red; it overrides the achromatic plane wherever set. Both
// planes are row-major, MSB-first, with a stride of (Width+7)/8 bytes.
//
// Nothing written to RAM becomes visible until DisplayFrame is called. The
// panel wears while powered, so leave it asleep when idle: call Sleep after
// a refresh and Wake before the next upload.
//
// # Datasheets
//
// https://cursedhardware.github.io/epd-driver-ic/SSD1675B.pdf
//
// # Product page
//
// https://www.waveshare.com/wiki/Pico-ePaper-2.66-B
//
// https://www.waveshare.com/wiki/2.66inch_e-Paper_Module_(B)
package waveshare2in66b
