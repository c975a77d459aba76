package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Streaming, edge-triggered segmenter with an adaptive
 *		inter-packet gap.
 *
 * Description:	Ported from original_source/am433/packetizer.c. The
 *		state machine is modeled as a resumable source (spec.md
 *		9 "Packetizer as an iterator") rather than the C
 *		version's buffer-pointer mutation: Feed consumes a
 *		prefix of buf and returns either a completed packet with
 *		the unconsumed remainder, or nil with the whole chunk
 *		consumed.
 *
 *------------------------------------------------------------------*/

// Packetizer is long-lived per-channel state: cumulative sample
// count, previous logical sample, and the packet currently being
// assembled (if any).
type Packetizer struct {
	cfg       *Config
	sampleCnt int
	pv        byte
	packet    *Packet
}

// NewPacketizer creates a fresh packetizer using cfg's tuning
// constants. A nil cfg uses DefaultConfig().
func NewPacketizer(cfg *Config) *Packetizer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Packetizer{cfg: cfg}
}

// SampleCount returns the number of samples consumed so far.
func (pz *Packetizer) SampleCount() int {
	return pz.sampleCnt
}

// Feed consumes a prefix of buf, returning a completed Packet and the
// unconsumed remainder of buf when an idle gap (or the DataSize
// overflow cap) closes a packet. If buf is fully consumed without
// closing a packet, it returns (nil, nil). Feed must be re-invoked on
// the returned remainder until it yields (nil, nil) before pulling in
// more input.
func (pz *Packetizer) Feed(buf []byte) (*Packet, []byte) {
	if pz.packet == nil {
		pz.packet = newPacket(pz.cfg.DecodeSize)
	}
	packet := pz.packet

	for i, v := range buf {
		if v != pz.pv {
			if packet.Start < 0 {
				packet.Start = pz.sampleCnt
			}
			packet.End = pz.sampleCnt
			pz.pv = v

			packet.NTran++
			breaklen := ((packet.End - packet.Start) / packet.NTran) * pz.cfg.PktBreakNTran
			packet.BreakLen = clampInt(breaklen, pz.cfg.pktBreakMinSamp(), pz.cfg.pktBreakMaxSamp())
		}

		if packet.Start >= 0 {
			packet.Data = append(packet.Data, v)
			if len(packet.Data) >= pz.cfg.DataSize {
				packet.End = packet.Start + len(packet.Data)
				pz.sampleCnt++
				pz.packet = nil
				return packet, buf[i+1:]
			}

			if v == 0 && (pz.sampleCnt-packet.End) > packet.BreakLen {
				packet.Data = packet.Data[:packet.End-packet.Start]
				pz.sampleCnt++
				pz.packet = nil
				return packet, buf[i+1:]
			}
		}

		pz.sampleCnt++
	}

	return nil, nil
}

// Flush signals end-of-stream: any packet in progress is returned
// (possibly short), matching the reference's "bytesleft == 0" case.
// It returns nil if no packet is open.
func (pz *Packetizer) Flush() *Packet {
	packet := pz.packet
	if packet == nil || packet.Start < 0 {
		return nil
	}
	packet.Data = packet.Data[:packet.End-packet.Start]
	pz.packet = nil
	return packet
}
