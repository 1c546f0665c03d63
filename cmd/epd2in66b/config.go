// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/epaper/waveshare2in66b"
)

// config describes how the panel is wired to the host.
type config struct {
	// SPI is the port name as known by spireg, empty for the first one.
	SPI string `yaml:"spi"`
	// Frequency of the SPI bus, e.g. "4MHz".
	Frequency string `yaml:"frequency"`

	// Pin names as known by gpioreg. CS may be empty when the SPI port
	// drives chip select.
	DC   string `yaml:"dc"`
	CS   string `yaml:"cs"`
	RST  string `yaml:"rst"`
	Busy string `yaml:"busy"`

	// Background is black, white or red.
	Background string `yaml:"background"`
	// Schedule is a cron spec; the clock is redrawn on each tick.
	Schedule string `yaml:"schedule"`
	// FontSize of the text command, in points.
	FontSize float64 `yaml:"font_size"`
}

// defaultConfig matches the Waveshare HAT on a Raspberry Pi.
func defaultConfig() *config {
	return &config{
		Frequency:  "4MHz",
		DC:         "GPIO25",
		CS:         "GPIO8",
		RST:        "GPIO17",
		Busy:       "GPIO24",
		Background: "white",
		FontSize:   18,
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *config) validate() error {
	if c.DC == "" || c.RST == "" || c.Busy == "" {
		return errors.New("dc, rst and busy pins are required")
	}
	if _, err := c.frequency(); err != nil {
		return err
	}
	if _, err := c.background(); err != nil {
		return err
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("invalid font_size %v", c.FontSize)
	}
	return nil
}

func (c *config) frequency() (physic.Frequency, error) {
	var f physic.Frequency
	if c.Frequency == "" {
		return waveshare2in66b.DefaultOpts.Frequency, nil
	}
	if err := f.Set(c.Frequency); err != nil {
		return 0, fmt.Errorf("invalid frequency %q: %w", c.Frequency, err)
	}
	return f, nil
}

func (c *config) background() (waveshare2in66b.TriColor, error) {
	var bg waveshare2in66b.TriColor
	if c.Background == "" {
		return waveshare2in66b.DefaultOpts.Background, nil
	}
	err := bg.Set(c.Background)
	return bg, err
}
