//go:build nrf52840 && ws2812

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// statusLED drives a NeoPixel on boards without a plain LED. Built with
// -tags ws2812.
type statusLED struct {
	dev   ws2812.Device
	state bool
}

func initLED() *statusLED {
	pin := machine.NEOPIXEL
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &statusLED{dev: ws2812.New(pin)}
}

// Set switches the pixel between dim green and off.
func (l *statusLED) Set(on bool) {
	l.state = on
	c := color.RGBA{}
	if on {
		c = color.RGBA{G: 32}
	}
	_ = l.dev.WriteColors([]color.RGBA{c})
}

// Toggle flips the pixel state.
func (l *statusLED) Toggle() {
	l.Set(!l.state)
}
