package dmframe

import "github.com/librescoot/display-manager/pkg/dmcrc"

// Encoder builds and transmits frames. Its only mutable state is the
// device-local event sequence counter used for spontaneous events; request
// frames echo the seq_id that came with the request instead. Threading the
// counter through an Encoder value, rather than a package-level global,
// lets two independent serial links run two independent Encoders without
// interfering with each other.
type Encoder struct {
	eventSeq uint8
}

// NewEncoder returns an Encoder with its event counter at zero, matching
// the core's "resets to 0 on boot" persisted-state contract.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// send builds one complete frame into a stack buffer and hands it to the
// platform in a single WriteBytes call. payloadLen is silently clamped to
// MaxPayload, matching the firmware's defensive clamp.
func send(plat platformWriter, cmd uint8, seq uint8, payload []byte) {
	if len(payload) > MaxPayload {
		payload = payload[:MaxPayload]
	}

	var buf [1 + MaxFrameSize]byte
	idx := 0

	buf[idx] = StartByte
	idx++

	headerStart := idx
	buf[idx] = ProtocolVersion
	idx++
	buf[idx] = cmd
	idx++
	buf[idx] = seq
	idx++
	buf[idx] = uint8(len(payload))
	idx++

	idx += copy(buf[idx:], payload)

	crc := dmcrc.Of(buf[headerStart:idx])
	buf[idx] = byte(crc >> 8)
	idx++
	buf[idx] = byte(crc)
	idx++

	plat.WriteBytes(buf[:idx])
}

// platformWriter is the slice of dmplatform.Platform the encoder actually
// needs, so tests can stub out just WriteBytes.
type platformWriter interface {
	WriteBytes(data []byte)
}

// SendAck emits EvtAck, echoing the request's seq_id.
func (e *Encoder) SendAck(plat platformWriter, seq uint8, payload []byte) {
	send(plat, uint8(EvtAck), seq, payload)
}

// SendNack emits EvtNack with an empty payload, echoing the request's seq_id.
func (e *Encoder) SendNack(plat platformWriter, seq uint8) {
	send(plat, uint8(EvtNack), seq, nil)
}

// SendButtonPressed emits a spontaneous EvtButtonPressed, consuming the
// next event sequence number.
func (e *Encoder) SendButtonPressed(plat platformWriter, widgetIdx uint8) {
	seq := e.nextSeq()
	send(plat, uint8(EvtButtonPressed), seq, []byte{widgetIdx})
}

// SendSliderChanged emits a spontaneous EvtSliderChanged.
func (e *Encoder) SendSliderChanged(plat platformWriter, widgetIdx uint8, value int16) {
	seq := e.nextSeq()
	payload := []byte{widgetIdx, byte(uint16(value) >> 8), byte(uint16(value))}
	send(plat, uint8(EvtSliderChanged), seq, payload)
}

// SendPageChanged emits a spontaneous EvtPageChanged.
func (e *Encoder) SendPageChanged(plat platformWriter, pageID uint8) {
	seq := e.nextSeq()
	send(plat, uint8(EvtPageChanged), seq, []byte{pageID})
}

// SendTouchEvent emits a spontaneous EvtTouchEvent.
func (e *Encoder) SendTouchEvent(plat platformWriter, x, y int16) {
	seq := e.nextSeq()
	payload := []byte{
		byte(uint16(x) >> 8), byte(uint16(x)),
		byte(uint16(y) >> 8), byte(uint16(y)),
	}
	send(plat, uint8(EvtTouchEvent), seq, payload)
}

// nextSeq returns the next event sequence number and advances the counter,
// wrapping at 256.
func (e *Encoder) nextSeq() uint8 {
	seq := e.eventSeq
	e.eventSeq++
	return seq
}
