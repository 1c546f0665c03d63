// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// epd2in66b drives a Waveshare 2.66" B tri-color e-paper panel.
//
// Usage:
//
//	epd2in66b [flags] clear
//	epd2in66b [flags] text <message>
//	epd2in66b [flags] image <file.png>
//	epd2in66b [flags] sleep
//
// The first line of a text message is drawn as a red title. With -schedule,
// the current time is redrawn on every tick until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fogleman/gg"
	"github.com/robfig/cron/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/epaper/termscreen"
	"github.com/GermanBionicSystems/epaper/waveshare2in66b"
)

// panel is the part of the driver API the tool needs. Both the hardware
// driver and the terminal preview implement it.
type panel interface {
	Bounds() image.Rectangle
	BackgroundColor() waveshare2in66b.TriColor
	SetBackgroundColor(waveshare2in66b.TriColor)
	UpdateColorFrame(achromatic, chromatic []byte) error
	ClearFrame() error
	DisplayFrame() error
	Sleep() error
	Wake() error
	Asleep() bool
	Halt() error
}

var (
	_ panel = &waveshare2in66b.Dev{}
	_ panel = &termscreen.Dev{}
)

func mainImpl() error {
	configPath := flag.String("config", "", "YAML board configuration")
	preview := flag.Bool("preview", false, "render to the terminal instead of the panel")
	schedule := flag.String("schedule", "", "cron spec to redraw the clock on, e.g. \"*/5 * * * *\"")
	var background waveshare2in66b.TriColor
	backgroundSet := false
	flag.Func("background", "background color: black, white or red", func(s string) error {
		backgroundSet = true
		return background.Set(s)
	})
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] clear|text <message>|image <file.png>|sleep\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *schedule == "" {
		*schedule = cfg.Schedule
	}
	if !backgroundSet {
		if background, err = cfg.background(); err != nil {
			return err
		}
	}

	args := flag.Args()
	if *schedule == "" && len(args) == 0 {
		flag.Usage()
		return errors.New("missing command")
	}

	var p panel
	if *preview {
		p = termscreen.New(&termscreen.Opts{Background: background})
	} else if p, err = openPanel(cfg, background); err != nil {
		return err
	}
	defer func() {
		if err := p.Halt(); err != nil {
			log.Printf("halt: %v", err)
		}
	}()
	p.SetBackgroundColor(background)

	if *schedule != "" {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runSchedule(ctx, p, *schedule, cfg.FontSize)
	}
	return run(p, args, cfg.FontSize)
}

// openPanel opens the SPI port and GPIO lines named in cfg.
func openPanel(cfg *config, background waveshare2in66b.TriColor) (*waveshare2in66b.Dev, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}

	port, err := spireg.Open(cfg.SPI)
	if err != nil {
		return nil, err
	}

	pin := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("unknown pin %q", name)
		}
		return p, nil
	}
	dc, err := pin(cfg.DC)
	if err != nil {
		return nil, err
	}
	rst, err := pin(cfg.RST)
	if err != nil {
		return nil, err
	}
	busy, err := pin(cfg.Busy)
	if err != nil {
		return nil, err
	}
	var cs gpio.PinOut
	if cfg.CS != "" {
		if cs, err = pin(cfg.CS); err != nil {
			return nil, err
		}
	}

	opts := waveshare2in66b.DefaultOpts
	opts.Background = background
	if opts.Frequency, err = cfg.frequency(); err != nil {
		return nil, err
	}

	dev, err := waveshare2in66b.New(port, dc, cs, rst, busy, &opts)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	log.Printf("opened %s", dev)
	return dev, nil
}

func run(p panel, args []string, fontSize float64) error {
	switch cmd := args[0]; cmd {
	case "clear":
		return refresh(p, func() error { return p.ClearFrame() })
	case "text":
		if len(args) < 2 {
			return errors.New("text: missing message")
		}
		// Allow a literal \n on the command line to start the body.
		msg := strings.ReplaceAll(strings.Join(args[1:], " "), `\n`, "\n")
		img, err := renderText(p.Bounds(), msg, fontSize)
		if err != nil {
			return err
		}
		return show(p, img)
	case "image":
		if len(args) != 2 {
			return errors.New("image: expected one file")
		}
		src, err := gg.LoadImage(args[1])
		if err != nil {
			return err
		}
		return show(p, fitImage(p.Bounds(), src))
	case "sleep":
		return p.Sleep()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// show uploads img and refreshes the panel.
func show(p panel, img image.Image) error {
	f := toFrame(img, p.BackgroundColor())
	return refresh(p, func() error {
		return p.UpdateColorFrame(f.Achromatic, f.Chromatic)
	})
}

// refresh wakes the panel if needed, runs upload, refreshes and puts the
// panel back to sleep.
func refresh(p panel, upload func() error) error {
	if p.Asleep() {
		if err := p.Wake(); err != nil {
			return err
		}
	}
	if err := upload(); err != nil {
		return err
	}
	start := time.Now()
	if err := p.DisplayFrame(); err != nil {
		return err
	}
	log.Printf("refreshed in %s", time.Since(start).Round(time.Millisecond))
	return p.Sleep()
}

// runSchedule redraws the clock on every tick of spec until ctx is done. A
// tick that fires while the previous refresh still runs is skipped; the panel
// takes one caller at a time.
func runSchedule(ctx context.Context, p panel, spec string, fontSize float64) error {
	tick := func() {
		now := time.Now()
		img, err := renderText(p.Bounds(), now.Format("15:04")+"\n"+now.Format("Monday\n2 January 2006"), fontSize)
		if err == nil {
			err = show(p, img)
		}
		if err != nil {
			log.Printf("refresh: %v", err)
		}
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, tick); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	tick()
	c.Start()

	<-ctx.Done()
	log.Printf("stopping: %v", ctx.Err())

	// Wait for a running refresh before the panel is halted.
	<-c.Stop().Done()
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "epd2in66b: %s.\n", err)
		os.Exit(1)
	}
}
