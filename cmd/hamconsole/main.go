// Command hamconsole is an interactive demo of the transceiver. Each
// hex digit typed at the raw terminal is Hamming-encoded, clocked
// through the simulated serial loopback and printed with the decoded
// data and syndrome. 'e' toggles single-bit error injection on the
// wire, 'q' quits.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"hamuart/core"
	"hamuart/hamming"
	"hamuart/printer"
	"hamuart/uart"
)

func main() {
	cfg := core.DefaultConfig()
	c, err := core.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hamconsole: %v\n", err)
		os.Exit(1)
	}
	c.Reset()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "hamconsole: raw terminal: %v\n", err)
		os.Exit(1)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	fmt.Print("hamconsole: type hex digits to transmit, 'e' toggles error injection, 'q' quits\r\n")

	inject := false
	flipBit := 0
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			break
		}

		ch := buf[0]
		switch {
		case ch == 'q' || ch == 3: // q or Ctrl-C
			return
		case ch == 'e':
			inject = !inject
			if inject {
				fmt.Print("error injection ON\r\n")
			} else {
				fmt.Print("error injection OFF\r\n")
			}
		default:
			data, ok := hexDigit(ch)
			if !ok {
				continue
			}
			flip := -1
			if inject {
				flip = flipBit
				flipBit = (flipBit + 1) % hamming.CodeBits
			}
			out, tick, ok := sendNibble(c, cfg, data, flip)
			if !ok {
				fmt.Print("no frame received\r\n")
				continue
			}
			note := ""
			if flip >= 0 {
				note = fmt.Sprintf(" (bit %d flipped on wire)", flip)
			}
			fmt.Printf("%s%s\r\n", printer.FormatFrameLine(tick, out), note)
		}
	}
}

// sendNibble clocks one frame through the loopback wire, flipping the
// given codeword bit on the wire if flip >= 0.
func sendNibble(c *core.Core, cfg core.Config, data byte, flip int) (core.Outputs, uint64, bool) {
	runTicks := (2+uart.FrameBits)*cfg.Oversample + 2 + 2*cfg.Oversample

	wire := true
	in := core.Inputs{SerialRx: wire, LoadTx: true, TxData: data}
	var latched core.Outputs
	latchTick := uint64(0)
	valid := false

	for n := 0; n < runTicks; n++ {
		rx := wire
		if flip >= 0 {
			lo := cfg.Oversample*(flip+1) + 1
			if n >= lo && n < lo+cfg.Oversample {
				rx = !rx
			}
		}
		in.SerialRx = rx
		out := c.Tick(in)
		in = core.Inputs{SerialRx: true}
		wire = out.SerialTx

		if out.RxValid {
			latched = out
			latchTick = c.Ticks() - 1
			valid = true
		}
	}
	return latched, latchTick, valid
}

func hexDigit(ch byte) (byte, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}
