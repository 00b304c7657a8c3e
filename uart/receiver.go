package uart

import "hamuart/common"

// Receiver is the oversampled serial receiver. Each call to Tick
// consumes one clock cycle of the line level and advances the state
// machine; when a frame completes, the assembled word is latched and
// Valid pulses for exactly that one cycle.
//
// All state is owned by the struct. There are no error returns on the
// tick path: a false start is dropped silently and a corrupted frame
// surfaces downstream as a nonzero Hamming syndrome.
type Receiver struct {
	oversample int
	log        common.Logger

	state    State
	counter  int  // cycle index within the current bit window
	bitIndex int  // next data bit to assemble
	shift    byte // frame assembly register, LSB first
	word     byte // latched word from the last completed frame
	valid    bool // one-cycle pulse when word is latched
}

// NewReceiver creates a receiver with the given oversampling factor.
// Factors below 2 fall back to DefaultOversample.
func NewReceiver(oversample int) *Receiver {
	if oversample < 2 {
		oversample = DefaultOversample
	}
	return &Receiver{
		oversample: oversample,
		log:        common.NewNoOpLogger(),
	}
}

// SetLogger replaces the receiver's logger. Transitions are logged at
// debug level only.
func (r *Receiver) SetLogger(log common.Logger) {
	if log != nil {
		r.log = log
	}
}

// Reset returns the receiver to Idle and clears the assembly and
// output registers.
func (r *Receiver) Reset() {
	r.state = StateIdle
	r.counter = 0
	r.bitIndex = 0
	r.shift = 0
	r.word = 0
	r.valid = false
}

// Tick advances the receiver by one clock cycle. bit is the level of
// the serial line during that cycle.
func (r *Receiver) Tick(bit bool) {
	r.valid = false

	switch r.state {
	case StateIdle:
		if !bit {
			// Low sample: candidate start bit. This cycle is
			// cycle 0 of the start window.
			r.state = StateStart
			r.counter = 1
			r.log.Debugf("rx: IDLE -> START")
		}

	case StateStart:
		if bit {
			// Line went high before the window elapsed: false
			// start, drop it.
			r.log.Debugf("rx: false start after %d cycles, START -> IDLE", r.counter)
			r.state = StateIdle
			r.counter = 0
			return
		}
		if r.counter == r.oversample-1 {
			r.state = StateData
			r.counter = 0
			r.bitIndex = 0
			r.shift = 0
			r.log.Debugf("rx: START -> DATA")
		} else {
			r.counter++
		}

	case StateData:
		if r.counter == r.oversample-1 {
			// Sample point: last cycle of the bit window.
			if bit {
				r.shift |= 1 << uint(r.bitIndex)
			}
			r.bitIndex++
			r.counter = 0
			if r.bitIndex == FrameBits {
				r.state = StateStop
				r.log.Debugf("rx: DATA -> STOP, word=%s", common.Bits(uint(r.shift), FrameBits))
			}
		} else {
			r.counter++
		}

	case StateStop:
		if r.counter == r.oversample-1 {
			// Frame complete. The stop bit level is not checked;
			// a malformed stop bit is not fatal in this design.
			r.word = r.shift
			r.valid = true
			r.state = StateIdle
			r.counter = 0
			r.log.Debugf("rx: STOP -> IDLE, latched %s", common.Bits(uint(r.word), FrameBits))
		} else {
			r.counter++
		}
	}
}

// State returns the current state, exposed for white-box verification.
func (r *Receiver) State() State {
	return r.state
}

// Word returns the word latched from the last completed frame. It
// holds its value between frames.
func (r *Receiver) Word() byte {
	return r.word
}

// Valid reports whether a frame completed on the most recent tick.
// It is a one-cycle pulse, cleared on the next tick.
func (r *Receiver) Valid() bool {
	return r.valid
}
