// Command loopback drives data nibbles through the full
// encode -> transmit -> wire -> receive -> decode path and checks the
// results. With -flip it inverts one codeword bit on the wire to
// exercise single-error correction.
package main

import (
	"flag"
	"fmt"
	"os"

	"hamuart/common"
	"hamuart/core"
	"hamuart/hamming"
	"hamuart/printer"
	"hamuart/uart"
)

func main() {
	var (
		configPath = flag.String("config", "", "bench config file (ini format)")
		data       = flag.Int("data", -1, "single 4-bit value to send (default: all 16)")
		flip       = flag.Int("flip", -1, "codeword bit to invert on the wire (0-6)")
		trace      = flag.Bool("trace", false, "print per-tick trace lines")
		table      = flag.Bool("table", false, "print the codeword table and exit")
	)
	flag.Parse()

	if *table {
		for _, line := range printer.FormatCodeTable() {
			fmt.Println(line)
		}
		return
	}

	cfg := core.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = core.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loopback: %v\n", err)
			os.Exit(1)
		}
	}
	if *flip >= hamming.CodeBits {
		fmt.Fprintf(os.Stderr, "loopback: -flip %d out of range (0-%d)\n", *flip, hamming.CodeBits-1)
		os.Exit(1)
	}

	var values []byte
	if *data >= 0 {
		values = []byte{byte(*data) & hamming.DataMask}
	} else {
		for d := 0; d < 1<<hamming.DataBits; d++ {
			values = append(values, byte(d))
		}
	}

	log := common.NewStdLogger(cfg.LogLevel)
	failed := 0
	for _, d := range values {
		if err := runFrame(cfg, log, d, *flip, *trace); err != nil {
			fmt.Fprintf(os.Stderr, "loopback: %v\n", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// runFrame sends one nibble through a freshly reset core with the
// transmitter looped back into the receiver over a one-cycle wire.
func runFrame(cfg core.Config, log common.Logger, data byte, flip int, trace bool) error {
	c, err := core.New(cfg)
	if err != nil {
		return err
	}
	c.SetLogger(log)
	c.Reset()

	// Frame plus some idle slack on either side.
	frameTicks := (2+uart.FrameBits)*cfg.Oversample + 2
	runTicks := frameTicks + 2*cfg.Oversample

	wire := true
	in := core.Inputs{SerialRx: wire, LoadTx: true, TxData: data}
	var latched core.Outputs
	latchTick := uint64(0)
	valid := false

	for n := 0; n < runTicks; n++ {
		rx := wire
		if flip >= 0 {
			// The delayed wire carries data bit k during ticks
			// oversample*(k+1)+1 .. oversample*(k+2) after load.
			lo := cfg.Oversample*(flip+1) + 1
			if n >= lo && n < lo+cfg.Oversample {
				rx = !rx
			}
		}
		in.SerialRx = rx
		out := c.Tick(in)
		in = core.Inputs{SerialRx: true}
		wire = out.SerialTx

		if trace {
			fmt.Println(printer.FormatTickLine(c.Ticks()-1, core.Inputs{SerialRx: rx}, out))
		}
		if out.RxValid {
			latched = out
			latchTick = c.Ticks() - 1
			valid = true
		}
	}

	if !valid {
		return fmt.Errorf("data %s: no frame received", common.Bits(uint(data), hamming.DataBits))
	}
	fmt.Println(printer.FormatFrameLine(latchTick, latched))

	if latched.DecodedData != data {
		return fmt.Errorf("data %s: decoded %s",
			common.Bits(uint(data), hamming.DataBits),
			common.Bits(uint(latched.DecodedData), hamming.DataBits))
	}
	if flip < 0 && latched.Syndrome != 0 {
		return fmt.Errorf("data %s: unexpected syndrome %s",
			common.Bits(uint(data), hamming.DataBits),
			common.Bits(uint(latched.Syndrome), 3))
	}
	if flip >= 0 && latched.Syndrome == 0 {
		return fmt.Errorf("data %s: error on bit %d went undetected",
			common.Bits(uint(data), hamming.DataBits), flip)
	}
	return nil
}
