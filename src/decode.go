package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Common decoder contract and default dispatch table.
 *
 * Description:	Ported from original_source/am433/decode.c's shared
 *		push_bit/debug plumbing, plus capture.c's process_packet
 *		dispatch. A Decoder takes (packet, start, cpHint) and
 *		attempts to fill packet.Decoded/BitCount/Modulation/CP;
 *		start lets a decoder retry itself at a shifted offset,
 *		cpHint seeds the expected clock period (0 = infer).
 *
 *------------------------------------------------------------------*/

// Decoder attempts to fit one modulation model to packet, starting at
// sample index start (may be negative, meaning "this many samples
// before the packet nominally begins", for leader-peeling and restart
// retries) with an optional clock-period hint. It reports whether the
// fit succeeded; on success it has set packet.Decoded, packet.BitCount,
// packet.Modulation and packet.CP. It must not touch packet.Data,
// packet.Start, packet.End or packet.Len().
type Decoder func(packet *Packet, start, cpHint int, tr Tracer) bool

// DispatchEntry pairs a decoder with the cpHint it should be invoked
// with by default.
type DispatchEntry struct {
	Name    string
	Decode  Decoder
	CPHint  int
}

// DefaultDispatch is the reference dispatch table (capture.c's
// process_packet): only decode_binary is tried by default; the other
// decoders exist and are individually callable, retained because the
// emission format preserves their modulation tags and the
// leader/trailer peeler can wrap any of them (spec.md 4.3).
var DefaultDispatch = []DispatchEntry{
	{Name: "binary", Decode: DecodeBinary, CPHint: 0},
}

// AllDecoders is the full decoder bank, offered for callers (or tests)
// that want to try every modulation rather than just the default
// binary-only dispatch.
var AllDecoders = []DispatchEntry{
	{Name: "binary", Decode: DecodeBinary, CPHint: 0},
	{Name: "pwm", Decode: DecodeWithLeaderPeeling(DecodePWM), CPHint: 0},
	{Name: "fsk", Decode: DecodeWithLeaderPeeling(DecodeFSK), CPHint: 0},
	{Name: "manchester", Decode: DecodeManchester, CPHint: 0},
	{Name: "ppk", Decode: DecodePPK, CPHint: 0},
}

// Decode tries each entry of table in order against packet, stopping
// at the first success. It reports whether any entry succeeded.
func Decode(table []DispatchEntry, packet *Packet, tr Tracer) bool {
	for _, entry := range table {
		if entry.Decode(packet, 0, entry.CPHint, tr) {
			return true
		}
	}
	packet.Modulation = ModUnknown
	return false
}

// syncBit pads packet.Decoded with zero bits up to the next byte
// boundary. Ported from decode.c's sync_bit, unused by any of the
// five reference decoders but retained as part of the decode
// vocabulary for decoders that want byte alignment (e.g. a future
// protocol-level decoder layered on top of the bitstream).
func syncBit(packet *Packet) {
	bits := (8 - packet.BitCount%8) % 8
	for n := 0; n < bits; n++ {
		packet.pushBit(0)
	}
}
