package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"hamuart/hamming"
	"hamuart/uart"
)

func newTestCore(t *testing.T) *Core {
	t.Helper()
	c, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Reset()
	return c
}

// runLoopback connects SerialTx back into SerialRx through a one-cycle
// wire, loads data, and runs until the decode outputs latch. flipBit
// >= 0 inverts the wire for the whole window of that data bit.
func runLoopback(t *testing.T, c *Core, data byte, flipBit int) Outputs {
	t.Helper()

	wire := true // idle level
	var latched Outputs
	valid := false

	in := Inputs{SerialRx: wire, LoadTx: true, TxData: data}
	const frameTicks = (2+uart.FrameBits)*uart.DefaultOversample + 2

	for n := 0; n < frameTicks+2*uart.DefaultOversample; n++ {
		rx := wire
		if flipBit >= 0 {
			// Data bit k sits on the delayed wire during ticks
			// 9+8k .. 16+8k after the load pulse.
			lo := 9 + uart.DefaultOversample*flipBit
			hi := lo + uart.DefaultOversample
			if n >= lo && n < hi {
				rx = !rx
			}
		}
		in.SerialRx = rx
		out := c.Tick(in)
		in = Inputs{SerialRx: true} // load pulse is one cycle only
		wire = out.SerialTx

		if out.RxValid {
			latched = out
			valid = true
		}
	}

	if !valid {
		t.Fatalf("no RxValid pulse for data %04b (flip %d)", data, flipBit)
	}
	return latched
}

func TestCore_LoopbackAllValues(t *testing.T) {
	for d := byte(0); d < 1<<hamming.DataBits; d++ {
		c := newTestCore(t)
		out := runLoopback(t, c, d, -1)

		want := Outputs{
			SerialTx:    true,
			DecodedData: d,
			Syndrome:    0,
			RxValid:     true,
			TxBusy:      false,
			RxState:     uart.StateIdle,
		}
		if diff := cmp.Diff(want, out); diff != "" {
			t.Errorf("data %04b (-want +got):\n%s", d, diff)
		}
	}
}

func TestCore_SingleBitErrorOnWire(t *testing.T) {
	for d := byte(0); d < 1<<hamming.DataBits; d++ {
		for bit := 0; bit < hamming.CodeBits; bit++ {
			c := newTestCore(t)
			out := runLoopback(t, c, d, bit)

			if out.Syndrome == 0 {
				t.Errorf("data %04b bit %d: syndrome 0, want nonzero", d, bit)
			}
			if out.DecodedData != d {
				t.Errorf("data %04b bit %d: decoded %04b, want %04b",
					d, bit, out.DecodedData, d)
			}
		}
	}
}

func TestCore_DecodeLatchesHold(t *testing.T) {
	c := newTestCore(t)
	latched := runLoopback(t, c, 0b1011, -1)

	// The data and syndrome latches hold between frames; only the
	// valid pulse clears.
	for i := 0; i < 3*uart.DefaultOversample; i++ {
		out := c.Tick(Inputs{SerialRx: true})
		if out.RxValid {
			t.Fatal("RxValid pulsed during idle")
		}
		if out.DecodedData != latched.DecodedData || out.Syndrome != latched.Syndrome {
			t.Fatalf("latches changed during idle: data=%04b syndrome=%03b",
				out.DecodedData, out.Syndrome)
		}
	}
}

func TestCore_ResetClearsEveryState(t *testing.T) {
	wantReset := Outputs{
		SerialTx:    true,
		DecodedData: 0,
		Syndrome:    0,
		RxValid:     false,
		TxBusy:      false,
		RxState:     uart.StateIdle,
	}

	// Assert reset at various points inside an active frame; the
	// post-reset outputs must always be the defined levels.
	for _, interruptAt := range []int{0, 3, 10, 20, 40, 65} {
		c := newTestCore(t)

		in := Inputs{SerialRx: false, LoadTx: true, TxData: 0b1111}
		for n := 0; n < interruptAt; n++ {
			c.Tick(in)
			in = Inputs{SerialRx: false}
		}

		var out Outputs
		for i := 0; i < 2; i++ {
			out = c.Tick(Inputs{Reset: true, SerialRx: false})
		}
		if diff := cmp.Diff(wantReset, out); diff != "" {
			t.Errorf("reset at tick %d (-want +got):\n%s", interruptAt, diff)
		}

		// And the core still works afterwards.
		out = runLoopback(t, c, 0b0110, -1)
		if out.DecodedData != 0b0110 || out.Syndrome != 0 {
			t.Errorf("after reset at %d: data=%04b syndrome=%03b",
				interruptAt, out.DecodedData, out.Syndrome)
		}
	}
}

func TestCore_LoadWhileBusyIgnored(t *testing.T) {
	c := newTestCore(t)

	var got []byte

	in := Inputs{SerialRx: true, LoadTx: true, TxData: 0b0101}
	for n := 0; n < 12*uart.DefaultOversample; n++ {
		out := c.Tick(in)
		in = Inputs{SerialRx: out.SerialTx}

		// Hammer the load input mid-frame; it must be ignored.
		if n == 2*uart.DefaultOversample {
			in.LoadTx = true
			in.TxData = 0b1010
		}
		if out.RxValid {
			got = append(got, out.DecodedData)
		}
	}

	if len(got) != 1 {
		t.Fatalf("received %d frames, want 1", len(got))
	}
	if got[0] != 0b0101 {
		t.Errorf("decoded %04b, want 0101 (overrun load must not disturb the frame)", got[0])
	}
}

func TestCore_RunDrivesAndObserves(t *testing.T) {
	c := newTestCore(t)

	ticks := 0
	c.Run(3*uart.DefaultOversample, nil, func(tick uint64, out Outputs) {
		ticks++
		if !out.SerialTx {
			t.Fatalf("tick %d: SerialTx low while idle", tick)
		}
	})
	if ticks != 3*uart.DefaultOversample {
		t.Errorf("observed %d ticks, want %d", ticks, 3*uart.DefaultOversample)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Oversample = 1
	if _, err := New(cfg); err == nil {
		t.Error("New accepted a 1-cycle bit period")
	}

	cfg = DefaultConfig()
	cfg.ResetCycles = 0
	if _, err := New(cfg); err == nil {
		t.Error("New accepted a zero-cycle reset hold")
	}
}
