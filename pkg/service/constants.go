package service

// Redis keys this service reads, writes, or subscribes to. Mirrors the
// flat per-concern key convention other librescoot services use
// (KeyBatterySlot1, KeyVehicle, and so on).
const (
	// KeyWidgets is the hash holding the last-known state of every widget
	// index, one field per index, CBOR-encoded.
	KeyWidgets = "display-manager:widgets"

	// KeyUI holds the current page id/name as plain hash fields, for
	// processes that just want "what's on screen" without decoding CBOR.
	KeyUI = "display-manager:ui"

	// KeyStats mirrors the parser's frames_ok / frames_crc_error /
	// frames_length_error counters as read-only statistics for
	// observability.
	KeyStats = "display-manager:stats"

	// ChannelSimulatedInput carries synthetic touch/button/slider events
	// for the hardware-free input harness.
	ChannelSimulatedInput = "display-manager:simulated-input"
)
