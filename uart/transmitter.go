package uart

import "hamuart/common"

// Transmitter is the counter-driven serial transmitter. A loaded word
// is shifted out LSB first, framed with a low start bit and a high
// stop bit, each level held for one full bit period. Unlike the
// receiver it never samples; it only holds its output and advances on
// window boundaries.
type Transmitter struct {
	oversample int
	log        common.Logger

	state    State
	counter  int  // cycle index within the current bit window
	bitIndex int  // data bit currently on the line
	shift    byte // word being shifted out
	busy     bool // Load through end of Stop
	out      bool // line level for the current cycle
}

// NewTransmitter creates a transmitter with the given oversampling
// factor. Factors below 2 fall back to DefaultOversample.
func NewTransmitter(oversample int) *Transmitter {
	if oversample < 2 {
		oversample = DefaultOversample
	}
	return &Transmitter{
		oversample: oversample,
		log:        common.NewNoOpLogger(),
		out:        true, // line idles high
	}
}

// SetLogger replaces the transmitter's logger.
func (t *Transmitter) SetLogger(log common.Logger) {
	if log != nil {
		t.log = log
	}
}

// Reset aborts any frame in progress and returns the transmitter to
// Idle with the line high.
func (t *Transmitter) Reset() {
	t.state = StateIdle
	t.counter = 0
	t.bitIndex = 0
	t.shift = 0
	t.busy = false
	t.out = true
}

// Load captures word for transmission and starts the frame on the next
// tick. A load while busy is rejected with no effect on the frame in
// flight; there is no queue. Returns whether the load was accepted.
func (t *Transmitter) Load(word byte) bool {
	if t.busy {
		t.log.Debugf("tx: load of %s rejected while busy", common.Bits(uint(word), FrameBits))
		return false
	}
	t.shift = word & (1<<FrameBits - 1)
	t.busy = true
	t.state = StateStart
	t.counter = 0
	t.bitIndex = 0
	t.log.Debugf("tx: loaded %s, IDLE -> START", common.Bits(uint(t.shift), FrameBits))
	return true
}

// Tick advances the transmitter by one clock cycle and returns the
// line level for that cycle.
func (t *Transmitter) Tick() bool {
	switch t.state {
	case StateIdle:
		t.out = true

	case StateStart:
		t.out = false
		if t.counter == t.oversample-1 {
			t.state = StateData
			t.counter = 0
			t.log.Debugf("tx: START -> DATA")
		} else {
			t.counter++
		}

	case StateData:
		t.out = t.shift&(1<<uint(t.bitIndex)) != 0
		if t.counter == t.oversample-1 {
			t.bitIndex++
			t.counter = 0
			if t.bitIndex == FrameBits {
				t.state = StateStop
				t.log.Debugf("tx: DATA -> STOP")
			}
		} else {
			t.counter++
		}

	case StateStop:
		t.out = true
		if t.counter == t.oversample-1 {
			t.state = StateIdle
			t.counter = 0
			t.busy = false
			t.log.Debugf("tx: STOP -> IDLE")
		} else {
			t.counter++
		}
	}
	return t.out
}

// State returns the current state, exposed for white-box verification.
func (t *Transmitter) State() State {
	return t.state
}

// Busy reports whether a frame is in flight. It is asserted from Load
// through the end of the stop bit.
func (t *Transmitter) Busy() bool {
	return t.busy
}

// Out returns the line level driven during the most recent cycle.
func (t *Transmitter) Out() bool {
	return t.out
}
