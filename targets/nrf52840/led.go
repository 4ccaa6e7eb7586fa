//go:build nrf52840 && !ws2812

package main

import "machine"

// statusLED drives the plain board LED.
type statusLED struct {
	pin   machine.Pin
	state bool
}

func initLED() *statusLED {
	led := &statusLED{pin: machine.LED}
	led.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return led
}

// Set switches the LED on or off.
func (l *statusLED) Set(on bool) {
	l.state = on
	l.pin.Set(on)
}

// Toggle flips the LED state.
func (l *statusLED) Toggle() {
	l.Set(!l.state)
}
