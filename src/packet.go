package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Data model for a captured, and possibly decoded, am433
 *		packet.
 *
 * Description:	A packet is a contiguous run of samples bounded by an
 *		idle gap on each side, as produced by the Packetizer.
 *		Decoders fill in Decoded/BitCount/Modulation/CP once a
 *		modulation fit succeeds; until then Modulation is
 *		ModUnknown.
 *
 *------------------------------------------------------------------*/

// Sample rate of the reference deployment, in samples/s. Overridable
// via Config (see config.go).
const DefaultFS = 48000

// Reference idle-gap tuning constants (spec.md 4.2).
const (
	PktBreakMinMS = 4
	PktBreakMaxMS = 8
	PktBreakNTran = 10
)

// Hard caps on packet and decoded-bitstream size (spec.md 3).
const (
	DataSize   = 409600
	DecodeSize = 4096
)

// Modulation identifies which decoder, if any, successfully fit a
// packet. The numeric values match the wire tag in the binary frame
// (spec.md 6); MOD_BINARY has no assigned value in the reference C
// header (original_source/am433/capture.h) so this repo assigns it 5,
// the next value after PPK.
type Modulation uint8

const (
	ModPWM Modulation = iota
	ModFSK
	ModUnknown
	ModManchester
	ModPPK
	ModBinary
)

func (m Modulation) String() string {
	switch m {
	case ModPWM:
		return "pwm"
	case ModFSK:
		return "fsk"
	case ModUnknown:
		return "unknown"
	case ModManchester:
		return "manchester"
	case ModPPK:
		return "ppk"
	case ModBinary:
		return "binary"
	default:
		return "invalid"
	}
}

// Packet is a contiguous burst of transitions, bounded by an idle gap,
// together with whatever a decoder has been able to make of it.
//
// Start/End are sample indices (half-open interval; Len = End-Start).
// Data holds the raw {0,1} samples inside the packet. Decoded holds
// big-endian packed bits once a decoder succeeds: bit i of the stream
// is bit 7-(i mod 8) of byte i/8.
type Packet struct {
	Start, End int
	Data       []byte

	// NTran is the number of 0<->1 transitions observed by the
	// packetizer while this packet was open.
	NTran int
	// BreakLen is the idle-gap threshold in effect when the packet
	// closed (spec.md 4.2).
	BreakLen int

	Decoded   []byte
	BitCount  int
	Modulation Modulation
	CP        int

	LeaderEdges, TrailerEdges int
}

// Len returns End-Start, the packet's duration in samples.
func (p *Packet) Len() int {
	return p.End - p.Start
}

func newPacket(decodeSize int) *Packet {
	return &Packet{
		Start:      -1,
		Data:       make([]byte, 0, 256),
		Decoded:    make([]byte, decodeSize),
		Modulation: ModUnknown,
	}
}

// at returns the logical sample value at packet-relative index t, with
// samples before the start of Data (t < 0, used by decoders that walk
// backwards past Start during leader peeling or restart retries)
// treated as 0, matching the reference C's `t < 0 ? 0 : packet->data[t]`.
func (p *Packet) at(t int) byte {
	if t < 0 || t >= len(p.Data) {
		return 0
	}
	return p.Data[t]
}

// resetDecoded clears Decoded/BitCount before a decode attempt, the Go
// equivalent of decode.c's `packet->bitcount = 0; memset(...)`.
func (p *Packet) resetDecoded() {
	p.BitCount = 0
	for i := range p.Decoded {
		p.Decoded[i] = 0
	}
}

// pushBit appends one bit, big-endian packed, bit 0 of a new byte
// occupying the MSB (spec.md 4.3 common preconditions).
func (p *Packet) pushBit(bit byte) {
	lastByte := p.BitCount / 8
	p.Decoded[lastByte] |= bit << (7 - uint(p.BitCount%8))
	p.BitCount++
}

// byteCount returns ceil(BitCount/8), the number of valid bytes in
// Decoded.
func (p *Packet) byteCount() int {
	n := p.BitCount / 8
	if p.BitCount%8 > 0 {
		n++
	}
	return n
}
