// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GermanBionicSystems/epaper/termscreen"
	"github.com/GermanBionicSystems/epaper/waveshare2in66b"
)

func newPreview(bg waveshare2in66b.TriColor) (*termscreen.Dev, *bytes.Buffer) {
	var out bytes.Buffer
	return termscreen.New(&termscreen.Opts{Background: bg, Output: &out}), &out
}

func TestRunCommands(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 40))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	pngPath := filepath.Join(t.TempDir(), "in.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pngPath, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "clear", args: []string{"clear"}},
		{name: "text", args: []string{"text", "Hello", "world"}},
		{name: "image", args: []string{"image", pngPath}},
		{name: "missing message", args: []string{"text"}, wantErr: true},
		{name: "missing image", args: []string{"image", filepath.Join(t.TempDir(), "none.png")}, wantErr: true},
		{name: "unknown", args: []string{"scroll"}, wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, out := newPreview(waveshare2in66b.White)
			if err := p.Sleep(); err != nil {
				t.Fatal(err)
			}

			err := run(p, tc.args, 18)
			if (err != nil) != tc.wantErr {
				t.Fatalf("run(%q) error = %v, wantErr %v", tc.args, err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if out.Len() == 0 {
				t.Errorf("run(%q) did not refresh", tc.args)
			}
			if !p.Asleep() {
				t.Errorf("run(%q) left the panel awake", tc.args)
			}
		})
	}
}

func TestRunSleep(t *testing.T) {
	p, out := newPreview(waveshare2in66b.White)

	if err := run(p, []string{"sleep"}, 18); err != nil {
		t.Fatalf("run(sleep) failed: %v", err)
	}
	if !p.Asleep() {
		t.Error("panel awake after sleep")
	}
	if out.Len() != 0 {
		t.Error("sleep refreshed the panel")
	}
}

func TestShow(t *testing.T) {
	p, out := newPreview(waveshare2in66b.White)

	img := image.NewRGBA(p.Bounds())
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 0xff, A: 0xff})
		}
	}
	if err := show(p, img); err != nil {
		t.Fatalf("show() failed: %v", err)
	}

	if out.Len() == 0 {
		t.Error("show() did not refresh")
	}
	if !p.Asleep() {
		t.Error("show() left the panel awake")
	}
}

// slowPanel counts refreshes and how many run at the same time.
type slowPanel struct {
	refresh time.Duration

	active    atomic.Int32
	maxActive atomic.Int32
	refreshes atomic.Int32
}

func (p *slowPanel) Bounds() image.Rectangle { return panelBounds }
func (p *slowPanel) BackgroundColor() waveshare2in66b.TriColor { return waveshare2in66b.White }
func (p *slowPanel) SetBackgroundColor(waveshare2in66b.TriColor) {}
func (p *slowPanel) UpdateColorFrame(_, _ []byte) error { return nil }
func (p *slowPanel) ClearFrame() error { return nil }
func (p *slowPanel) Sleep() error { return nil }
func (p *slowPanel) Wake() error { return nil }
func (p *slowPanel) Asleep() bool { return false }
func (p *slowPanel) Halt() error { return nil }

func (p *slowPanel) DisplayFrame() error {
	n := p.active.Add(1)
	defer p.active.Add(-1)
	for {
		m := p.maxActive.Load()
		if n <= m || p.maxActive.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(p.refresh)
	p.refreshes.Add(1)
	return nil
}

func TestRunScheduleSkipsOverlappingTicks(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the scheduler for several seconds")
	}

	p := &slowPanel{refresh: 2500 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := runSchedule(ctx, p, "@every 1s", 18); err != nil {
		t.Fatalf("runSchedule() failed: %v", err)
	}

	if got := p.maxActive.Load(); got != 1 {
		t.Errorf("%d refreshes ran at the same time, want 1", got)
	}
	if got := p.refreshes.Load(); got < 2 {
		t.Errorf("%d refreshes, want at least 2", got)
	}
	if got := p.active.Load(); got != 0 {
		t.Errorf("%d refreshes still running after runSchedule() returned", got)
	}
}

func TestRunScheduleInvalid(t *testing.T) {
	p := &slowPanel{}
	if err := runSchedule(context.Background(), p, "every minute", 18); err == nil {
		t.Error("runSchedule() accepted an invalid schedule")
	}
	if got := p.refreshes.Load(); got != 0 {
		t.Errorf("%d refreshes before the schedule was parsed", got)
	}
}

var _ panel = &slowPanel{}
