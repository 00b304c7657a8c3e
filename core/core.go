// Package core wires the serial receiver into the Hamming decoder and
// the Hamming encoder into the serial transmitter, exposing the
// signal-level contract of the combined transceiver. The whole model
// advances one clock cycle per Tick; there is no other scheduling.
package core

import (
	"hamuart/common"
	"hamuart/hamming"
	"hamuart/uart"
)

// Inputs carries the input signal levels for one clock cycle.
type Inputs struct {
	// Reset is the synchronous, level-sensitive reset. While asserted
	// every state machine returns to Idle and all latches clear. Hold
	// it for at least two cycles.
	Reset bool

	// SerialRx is the receiver's serial line level for this cycle.
	SerialRx bool

	// LoadTx is a one-cycle pulse presenting TxData to the encoder
	// and transmitter. Ignored while the transmitter is busy.
	LoadTx bool

	// TxData is the 4-bit data value for LoadTx; upper bits are masked.
	TxData byte
}

// Outputs carries the output signal levels after one clock cycle.
// DecodedData and Syndrome hold their values between frames; RxValid
// pulses for exactly the cycle a frame completes.
type Outputs struct {
	SerialTx    bool
	DecodedData byte
	Syndrome    byte
	RxValid     bool
	TxBusy      bool
	RxState     uart.State
}

// Core is the top-level wiring instance. It owns all component state;
// nothing inside is shared or mutated concurrently.
type Core struct {
	cfg Config
	log common.Logger

	rx *uart.Receiver
	tx *uart.Transmitter

	decodedData byte
	syndrome    byte
	ticks       uint64
}

// New creates a core from the given configuration. Invalid
// configurations are rejected.
func New(cfg Config) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Core{
		cfg: cfg,
		log: common.NewNoOpLogger(),
		rx:  uart.NewReceiver(cfg.Oversample),
		tx:  uart.NewTransmitter(cfg.Oversample),
	}
	return c, nil
}

// SetLogger replaces the logger on the core and both serial state
// machines.
func (c *Core) SetLogger(log common.Logger) {
	if log == nil {
		return
	}
	c.log = log
	c.rx.SetLogger(log)
	c.tx.SetLogger(log)
}

// Tick advances the whole model by one clock cycle and returns the
// output levels for that cycle.
//
// Ordering within a tick: a pending load is applied before the
// transmitter advances, and the decoder latches in the same cycle the
// receiver's valid pulse fires, so the decode outputs always reflect
// the most recently completed frame and never a partial one. The
// transmit and receive paths are otherwise independent.
func (c *Core) Tick(in Inputs) Outputs {
	c.ticks++

	if in.Reset {
		c.rx.Reset()
		c.tx.Reset()
		c.decodedData = 0
		c.syndrome = 0
		return Outputs{SerialTx: true, RxState: uart.StateIdle}
	}

	if in.LoadTx && !c.tx.Busy() {
		c.tx.Load(hamming.Encode(in.TxData & hamming.DataMask))
	}
	serialTx := c.tx.Tick()

	c.rx.Tick(in.SerialRx)
	rxValid := c.rx.Valid()
	if rxValid {
		c.decodedData, c.syndrome = hamming.Decode(c.rx.Word())
		c.log.Debugf("core: frame %s -> data=%s syndrome=%s",
			common.Bits(uint(c.rx.Word()), hamming.CodeBits),
			common.Bits(uint(c.decodedData), hamming.DataBits),
			common.Bits(uint(c.syndrome), 3))
	}

	return Outputs{
		SerialTx:    serialTx,
		DecodedData: c.decodedData,
		Syndrome:    c.syndrome,
		RxValid:     rxValid,
		TxBusy:      c.tx.Busy(),
		RxState:     c.rx.State(),
	}
}

// Ticks returns the number of cycles the core has been advanced,
// including reset cycles.
func (c *Core) Ticks() uint64 {
	return c.ticks
}

// Reset holds the reset line for the configured number of cycles.
// Bench convenience for the common power-on sequence.
func (c *Core) Reset() Outputs {
	var out Outputs
	for i := 0; i < c.cfg.ResetCycles; i++ {
		out = c.Tick(Inputs{Reset: true, SerialRx: true})
	}
	return out
}

// Run advances the core n cycles, asking drive for each cycle's input
// levels and handing every cycle's outputs to observe. Either callback
// may be nil; with a nil drive the line idles high.
func (c *Core) Run(n int, drive func(tick uint64) Inputs, observe func(tick uint64, out Outputs)) {
	for i := 0; i < n; i++ {
		in := Inputs{SerialRx: true}
		if drive != nil {
			in = drive(c.ticks)
		}
		out := c.Tick(in)
		if observe != nil {
			observe(c.ticks-1, out)
		}
	}
}
