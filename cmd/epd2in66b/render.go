// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/GermanBionicSystems/epaper/waveshare2in66b"
)

var red = color.RGBA{R: 0xff, A: 0xff}

const padding = 6.0

// renderText lays out msg on a white canvas of the panel size. The first
// line is a bold red title, the rest is wrapped black body text.
func renderText(bounds image.Rectangle, msg string, size float64) (image.Image, error) {
	title, body, _ := strings.Cut(msg, "\n")

	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}

	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.SetColor(color.White)
	dc.Clear()

	y := padding
	dc.SetFontFace(truetype.NewFace(bold, &truetype.Options{Size: size}))
	dc.SetColor(red)
	for _, line := range dc.WordWrap(title, w-2*padding) {
		y += dc.FontHeight()
		dc.DrawString(line, padding, y)
		y += padding / 2
	}

	y += padding
	dc.SetColor(color.Black)
	dc.DrawLine(padding, y, w-padding, y)
	dc.Stroke()
	y += padding

	dc.SetFontFace(truetype.NewFace(regular, &truetype.Options{Size: size * 0.75}))
	for _, para := range strings.Split(body, "\n") {
		for _, line := range dc.WordWrap(para, w-2*padding) {
			if y+dc.FontHeight() > h-padding {
				return dc.Image(), nil
			}
			y += dc.FontHeight()
			dc.DrawString(line, padding, y)
			y += padding / 2
		}
	}
	return dc.Image(), nil
}

// fitImage scales src to fit bounds, keeping its aspect ratio, centered on a
// white canvas.
func fitImage(bounds image.Rectangle, src image.Image) image.Image {
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, &image.Uniform{color.White}, image.Point{}, draw.Src)

	sb := src.Bounds()
	if sb.Empty() {
		return dst
	}
	scale := min(float64(bounds.Dx())/float64(sb.Dx()), float64(bounds.Dy())/float64(sb.Dy()))
	w := max(1, int(float64(sb.Dx())*scale))
	h := max(1, int(float64(sb.Dy())*scale))
	r := image.Rect(0, 0, w, h).Add(bounds.Min).Add(image.Pt((bounds.Dx()-w)/2, (bounds.Dy()-h)/2))

	draw.CatmullRom.Scale(dst, r, src, sb, draw.Over, nil)
	return dst
}

// toFrame quantizes img to the panel colors.
func toFrame(img image.Image, background waveshare2in66b.TriColor) *waveshare2in66b.Frame {
	f := waveshare2in66b.NewFrame(background)
	draw.Draw(f, f.Bounds(), img, img.Bounds().Min, draw.Src)
	return f
}
