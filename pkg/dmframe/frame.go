// Package dmframe implements the Display Manager wire format: the frame
// data model, the stack-buffer encoder, and the byte-fed resynchronizing
// parser. Big-endian multi-byte integers throughout.
package dmframe

const (
	// StartByte prefixes every frame on the wire. It is not covered by
	// the CRC and is treated as an unconditional resync trigger by the
	// parser in every state, not only WaitStart - see Parser.Feed.
	StartByte = 0xAA

	// ProtocolVersion is the version byte this build reports in every
	// outgoing frame and in the GET_VERSION reply triplet.
	ProtocolVersion = 0x01

	// MaxPayload bounds payload_len. A build wanting a different bound
	// recompiles with a different value here - the wire format has no
	// room to negotiate it.
	MaxPayload = 128

	// HeaderSize counts the start byte plus version, command, seq_id and
	// payload_len.
	HeaderSize = 5

	// CRCSize is the two CRC bytes, big-endian.
	CRCSize = 2

	// MaxFrameSize is the largest complete frame the encoder ever writes,
	// including the start byte.
	MaxFrameSize = HeaderSize + MaxPayload + CRCSize

	// MaxTextLen bounds SET_TEXT strings the binder accepts, including
	// the conceptual NUL terminator of the C original.
	MaxTextLen = 64

	// MaxPages is the nominal size of the binder's page table. Nothing in
	// this module enforces it; binder.New accepts a page table of any length.
	MaxPages = 8
)

// Command identifies a host -> device request.
type Command uint8

const (
	CmdPing             Command = 0x01 // PING - ignored payload
	CmdGetVersion       Command = 0x02 // GET_VERSION - ignored payload
	CmdReset            Command = 0x03 // RESET - ignored payload
	CmdEnterBootloader  Command = 0x04 // ENTER_BOOTLOADER - ignored payload
	CmdShowPage         Command = 0x10 // SHOW_PAGE - page_id (1 B)
	CmdSetText          Command = 0x20 // SET_TEXT - widget_idx (1 B), text
	CmdSetValue         Command = 0x21 // SET_VALUE - widget_idx (1 B), value (int16 BE)
	CmdSetVisible       Command = 0x22 // SET_VISIBLE - widget_idx (1 B), flag (1 B)
	CmdSetEnabled       Command = 0x23 // SET_ENABLED - widget_idx (1 B), flag (1 B)
)

// Event identifies a device -> host response or spontaneous notification.
type Event uint8

const (
	EvtAck            Event = 0xF0 // ACK - echoes the request seq_id
	EvtNack           Event = 0xF1 // NACK - echoes the request seq_id
	EvtButtonPressed  Event = 0x80 // widget_idx (1 B)
	EvtSliderChanged  Event = 0x81 // widget_idx (1 B), value (int16 BE)
	EvtPageChanged    Event = 0x82 // page_id (1 B)
	EvtTouchEvent     Event = 0x83 // x (int16 BE), y (int16 BE)
)

// Frame is a fully-validated in-memory frame: CRC matched, payload_len
// within bounds, every byte between version and the trailing CRC captured
// verbatim. The payload lives in a fixed array, never a heap slice, so
// holding a Frame never pins more than MaxFrameSize bytes.
type Frame struct {
	Version    uint8
	Command    Command
	SeqID      uint8
	PayloadLen uint8
	Payload    [MaxPayload]byte
	CRC        uint16
}

// PayloadBytes returns the frame's payload as a slice sized to PayloadLen.
// The returned slice aliases Frame's backing array; callers that need to
// retain it past the frame's lifetime should copy it.
func (f *Frame) PayloadBytes() []byte {
	return f.Payload[:f.PayloadLen]
}
