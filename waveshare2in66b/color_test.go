// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66b

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestColorModel(t *testing.T) {
	for _, tc := range []struct {
		name string
		c    color.Color
		want TriColor
	}{
		{name: "tricolor", c: Chromatic, want: Chromatic},
		{name: "black", c: color.Black, want: Black},
		{name: "white", c: color.White, want: White},
		{name: "dark gray", c: color.Gray{Y: 0x30}, want: Black},
		{name: "light gray", c: color.Gray{Y: 0xd0}, want: White},
		{name: "red", c: color.RGBA{R: 0xff, A: 0xff}, want: Chromatic},
		{name: "dark red", c: color.RGBA{R: 0x90, G: 0x10, B: 0x10, A: 0xff}, want: Chromatic},
		{name: "orange", c: color.RGBA{R: 0xff, G: 0xa0, A: 0xff}, want: Chromatic},
		{name: "yellow", c: color.RGBA{R: 0xff, G: 0xf0, A: 0xff}, want: White},
		{name: "transparent red", c: color.NRGBA{R: 0xff}, want: Black},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := ColorModel.Convert(tc.c); got != tc.want {
				t.Errorf("Convert(%v) = %v, want %v", tc.c, got, tc.want)
			}
		})
	}
}

func TestTriColorSet(t *testing.T) {
	for _, tc := range []struct {
		s       string
		want    TriColor
		wantErr bool
	}{
		{s: "black", want: Black},
		{s: "white", want: White},
		{s: "red", want: Chromatic},
		{s: "chromatic", want: Chromatic},
		{s: "yellow", wantErr: true},
	} {
		var got TriColor
		err := got.Set(tc.s)
		if (err != nil) != tc.wantErr {
			t.Errorf("Set(%q) error = %v, wantErr %v", tc.s, err, tc.wantErr)
		}
		if err == nil && got != tc.want {
			t.Errorf("Set(%q) = %v, want %v", tc.s, got, tc.want)
		}
	}
}

func TestTriColorValid(t *testing.T) {
	for _, c := range []TriColor{Black, White, Chromatic} {
		if !c.Valid() {
			t.Errorf("%v.Valid() = false", c)
		}
		if _, ok := clearPhases[c]; !ok {
			t.Errorf("no clear phases for %v", c)
		}
	}
	if c := TriColor(3); c.Valid() {
		t.Errorf("%v.Valid() = true", c)
	}
}

func TestNewFrame(t *testing.T) {
	for _, tc := range []struct {
		background     TriColor
		wantAchromatic byte
		wantChromatic  byte
	}{
		{background: Black, wantAchromatic: 0x00, wantChromatic: 0x00},
		{background: White, wantAchromatic: 0xff, wantChromatic: 0x00},
		{background: Chromatic, wantAchromatic: 0xff, wantChromatic: 0xff},
	} {
		t.Run(tc.background.String(), func(t *testing.T) {
			f := NewFrame(tc.background)

			if diff := cmp.Diff(f.Achromatic, bytes.Repeat([]byte{tc.wantAchromatic}, 19*296)); diff != "" {
				t.Errorf("Achromatic difference (-got +want):\n%s", diff)
			}
			if diff := cmp.Diff(f.Chromatic, bytes.Repeat([]byte{tc.wantChromatic}, 19*296)); diff != "" {
				t.Errorf("Chromatic difference (-got +want):\n%s", diff)
			}
			if got := f.TriColorAt(Width/2, Height/2); got != tc.background {
				t.Errorf("TriColorAt() = %v, want %v", got, tc.background)
			}
		})
	}
}

func TestFrameSet(t *testing.T) {
	f := NewFrame(White)

	f.Set(0, 0, color.Black)
	f.Set(9, 0, Chromatic)
	f.Set(Width-1, 1, color.Black)
	f.Set(-1, 0, color.Black)
	f.Set(Width, 0, color.Black)

	if got, want := f.Achromatic[0], byte(0x7f); got != want {
		t.Errorf("Achromatic[0] = %#02x, want %#02x", got, want)
	}
	if got, want := f.Chromatic[1], byte(0x40); got != want {
		t.Errorf("Chromatic[1] = %#02x, want %#02x", got, want)
	}
	if got, want := f.Achromatic[19+18], byte(0xfe); got != want {
		t.Errorf("Achromatic[37] = %#02x, want %#02x", got, want)
	}

	for _, tc := range []struct {
		pt   image.Point
		want TriColor
	}{
		{pt: image.Pt(0, 0), want: Black},
		{pt: image.Pt(1, 0), want: White},
		{pt: image.Pt(9, 0), want: Chromatic},
		{pt: image.Pt(Width-1, 1), want: Black},
		{pt: image.Pt(-1, 0), want: White},
	} {
		if got := f.At(tc.pt.X, tc.pt.Y); got != tc.want {
			t.Errorf("At(%v) = %v, want %v", tc.pt, got, tc.want)
		}
	}

	// Painting red then white drops the red bit.
	f.Set(9, 0, color.White)
	if got := f.TriColorAt(9, 0); got != White {
		t.Errorf("TriColorAt(9, 0) = %v, want %v", got, White)
	}
}

func TestFrameDraw(t *testing.T) {
	f := NewFrame(White)

	draw.Draw(f, image.Rect(8, 8, 16, 10), &image.Uniform{color.RGBA{R: 0xff, A: 0xff}}, image.Point{}, draw.Src)

	for y := 8; y < 10; y++ {
		if got, want := f.Chromatic[y*19+1], byte(0xff); got != want {
			t.Errorf("Chromatic row %d = %#02x, want %#02x", y, got, want)
		}
	}
	if got := f.Chromatic[7*19+1]; got != 0 {
		t.Errorf("Chromatic row 7 = %#02x, want 0", got)
	}
}
