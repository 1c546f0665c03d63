// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66b_test

import (
	"image"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/GermanBionicSystems/epaper/waveshare2in66b"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI bus registry to find the first available SPI bus.
	b, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	dev, err := waveshare2in66b.NewHat(b, nil)
	if err != nil {
		log.Fatalf("Failed to initialize driver: %v", err)
	}

	// Black text and a red bar on a white background.
	img := waveshare2in66b.NewFrame(waveshare2in66b.White)
	f := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{waveshare2in66b.Black},
		Face: f,
		Dot:  fixed.P(4, 4+f.Ascent),
	}
	drawer.DrawString("Hello from periph!")
	for x := 0; x < waveshare2in66b.Width; x++ {
		for y := 24; y < 32; y++ {
			img.Set(x, y, waveshare2in66b.Chromatic)
		}
	}

	if err := dev.UpdateColorFrame(img.Achromatic, img.Chromatic); err != nil {
		log.Fatal(err)
	}
	if err := dev.DisplayFrame(); err != nil {
		log.Fatal(err)
	}

	// Leave the controller in deep sleep; the image stays on the panel.
	if err := dev.Sleep(); err != nil {
		log.Fatal(err)
	}
}

func ExampleDev_UpdatePartialFrame() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	b, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	dev, err := waveshare2in66b.NewHat(b, nil)
	if err != nil {
		log.Fatalf("Failed to initialize driver: %v", err)
	}

	if err := dev.ClearFrame(); err != nil {
		log.Fatal(err)
	}

	// A 16x16 black square at (32, 64). Each row of the window is 2 bytes.
	square := make([]byte, 2*16)
	if err := dev.UpdatePartialFrame(square, image.Rect(32, 64, 48, 80)); err != nil {
		log.Fatal(err)
	}
	if err := dev.DisplayFrame(); err != nil {
		log.Fatal(err)
	}
}
