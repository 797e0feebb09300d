package dispatcher

import (
	"github.com/librescoot/display-manager/pkg/dmframe"
	"github.com/librescoot/display-manager/pkg/dmplatform"
)

// DefaultPing replies ACK with no payload.
func DefaultPing(seq uint8, payload []byte, plat dmplatform.Platform, enc *dmframe.Encoder) {
	enc.SendAck(plat, seq, nil)
}

// DefaultGetVersion replies ACK with the major.minor.patch triplet.
func DefaultGetVersion(seq uint8, payload []byte, plat dmplatform.Platform, enc *dmframe.Encoder) {
	enc.SendAck(plat, seq, []byte{dmframe.ProtocolVersion, 0x00, 0x00})
}

// DefaultReset replies ACK. The board layer should override this slot to
// perform a real hard reset - the core has no hardware access to do it.
func DefaultReset(seq uint8, payload []byte, plat dmplatform.Platform, enc *dmframe.Encoder) {
	enc.SendAck(plat, seq, nil)
}

// DefaultEnterBootloader replies NACK; bootloader entry is not supported
// unless a board layer overrides this slot.
func DefaultEnterBootloader(seq uint8, payload []byte, plat dmplatform.Platform, enc *dmframe.Encoder) {
	enc.SendNack(plat, seq)
}

// DefaultNack replies NACK. Installed for every UI command until a binder
// overrides the slot - the dispatcher has no UI to talk to on its own.
func DefaultNack(seq uint8, payload []byte, plat dmplatform.Platform, enc *dmframe.Encoder) {
	enc.SendNack(plat, seq)
}
