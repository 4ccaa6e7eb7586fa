// Command ctsmon streams the peripheral firmware's diagnostic console from
// a serial port to stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"bleclock/host/serial"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud   = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("Monitoring %s (Ctrl-C to exit)\n", *device)

	buf := make([]byte, 256)
	for {
		n, err := port.Read(buf)
		if n > 0 {
			os.Stdout.Write(buf[:n])
		}
		// A read timeout surfaces as EOF with n == 0; keep polling.
		if err != nil && err != io.EOF {
			fmt.Fprintf(os.Stderr, "Error: read failed: %v\n", err)
			os.Exit(1)
		}
	}
}
