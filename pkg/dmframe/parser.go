package dmframe

import "github.com/librescoot/display-manager/pkg/dmcrc"

// state is one node of the byte-fed frame parser.
type state int

const (
	stateWaitStart state = iota
	stateVersion
	stateCommand
	stateSeqID
	stateLength
	statePayload
	stateCRCHigh
	stateCRCLow
)

// Dispatch is called once per successfully-validated frame, synchronously,
// from within Feed. It is the only way frames leave the parser - there is
// no queue, no callback deferral; the caller is responsible for only
// invoking Feed from the context it's safe to dispatch in.
type Dispatch func(frame *Frame)

// Parser is a byte-fed frame state machine with automatic
// resynchronization. One Parser per input stream; no shared mutable state
// between instances, no internal locking - the owner is responsible for
// sequencing Feed calls.
type Parser struct {
	state        state
	runningCRC   uint16
	frame        Frame
	payloadIndex uint8
	crcHigh      uint8

	FramesOK           uint32
	FramesCRCError     uint32
	FramesLengthError  uint32
}

// NewParser returns a Parser ready to receive its first byte.
func NewParser() *Parser {
	p := &Parser{}
	p.reset()
	return p
}

// reset returns the parser to WaitStart and clears per-frame accumulation
// state. Called at the end of every frame, success or failure, on length
// overflow, on every start byte, and from NewParser and Reset.
func (p *Parser) reset() {
	p.state = stateWaitStart
	p.payloadIndex = 0
	p.runningCRC = dmcrc.Init()
	p.crcHigh = 0
}

// Feed advances the state machine by one byte. When a frame validates,
// dispatch is invoked synchronously with a pointer to the parser's
// internal frame (valid only for the duration of the call). log is used
// only on error paths and may be nil.
func (p *Parser) Feed(b byte, log func(string), dispatch Dispatch) {
	// StartByte is an unconditional resync trigger: in any state it aborts
	// the frame in progress and restarts header accumulation.
	if b == StartByte {
		p.reset()
		p.state = stateVersion
		return
	}

	switch p.state {
	case stateWaitStart:
		// Any other byte: silently discarded, stay in WaitStart.

	case stateVersion:
		p.frame.Version = b
		p.runningCRC = dmcrc.Update(p.runningCRC, b)
		p.state = stateCommand

	case stateCommand:
		p.frame.Command = Command(b)
		p.runningCRC = dmcrc.Update(p.runningCRC, b)
		p.state = stateSeqID

	case stateSeqID:
		p.frame.SeqID = b
		p.runningCRC = dmcrc.Update(p.runningCRC, b)
		p.state = stateLength

	case stateLength:
		if b > MaxPayload {
			p.FramesLengthError++
			if log != nil {
				log("dmframe: frame length overflow, resyncing")
			}
			p.reset()
			return
		}
		p.frame.PayloadLen = b
		p.runningCRC = dmcrc.Update(p.runningCRC, b)
		p.payloadIndex = 0
		if b == 0 {
			p.state = stateCRCHigh
		} else {
			p.state = statePayload
		}

	case statePayload:
		p.frame.Payload[p.payloadIndex] = b
		p.payloadIndex++
		p.runningCRC = dmcrc.Update(p.runningCRC, b)
		if p.payloadIndex >= p.frame.PayloadLen {
			p.state = stateCRCHigh
		}

	case stateCRCHigh:
		p.crcHigh = b
		p.state = stateCRCLow

	case stateCRCLow:
		receivedCRC := uint16(p.crcHigh)<<8 | uint16(b)
		if receivedCRC == p.runningCRC {
			p.frame.CRC = receivedCRC
			p.FramesOK++
			if dispatch != nil {
				dispatch(&p.frame)
			}
		} else {
			p.FramesCRCError++
			if log != nil {
				log("dmframe: CRC mismatch, frame dropped")
			}
		}
		p.reset()

	default:
		p.reset()
	}
}

// Reset forces the parser back to WaitStart without touching the
// statistics counters. Exposed for board-layer code that wants to recover
// from a transport-level resync signal outside the byte stream itself.
func (p *Parser) Reset() {
	p.reset()
}
