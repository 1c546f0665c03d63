// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epaper is a container for e-paper panel drivers.
//
// waveshare2in66b drives the Waveshare 2.66" B tri-color panel over SPI.
// termscreen previews the same panel on a terminal.
package epaper
