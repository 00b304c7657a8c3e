// Package uart models the serial transceiver as synchronous logic: an
// oversampled receiver and a counter-driven transmitter, each advanced
// one clock cycle at a time. Framing is fixed at 1 start bit (low),
// 7 data bits LSB first, 1 stop bit (high); the 7 data bits carry one
// Hamming(7,4) codeword.
package uart

// DefaultOversample is the canonical number of clock cycles per bit
// period. The line is sampled on the last cycle of each bit window,
// index DefaultOversample-1, well away from the transition edges.
const DefaultOversample = 8

// FrameBits is the number of data bits per frame, sized for one
// Hamming(7,4) codeword.
const FrameBits = 7

// State identifies the position of a receiver or transmitter within a
// frame. Both state machines cycle Idle -> Start -> Data -> Stop.
type State int

const (
	StateIdle State = iota
	StateStart
	StateData
	StateStop
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateStart:
		return "START"
	case StateData:
		return "DATA"
	case StateStop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}
