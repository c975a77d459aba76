package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Leader/trailer peeler: retries an underlying decoder over
 *		all 4x4 combinations of stripped leading/trailing edges.
 *
 * Description:	Ported from original_source/am433/capture.c's
 *		lfind_edge/rfind_edge/decode_leader, generalized from a
 *		hard-coded wrapped decoder into a decorator over an
 *		arbitrary Decoder (spec.md 4.3.6 calls it a higher-order
 *		decoder).
 *
 *------------------------------------------------------------------*/

// lfindEdge returns the packet-relative index of the n-th leading
// 0->1 transition counted from the left (n==0 returns start
// unchanged). It returns -1 if fewer than n such transitions exist.
func lfindEdge(packet *Packet, start, n int) int {
	if n == 0 {
		return start
	}
	pv := packet.at(start)
	for t := start; t < len(packet.Data); t++ {
		v := packet.at(t)
		if pv != v && v == 1 {
			n--
			if n == 0 {
				return t
			}
		}
		pv = v
	}
	return -1
}

// rfindEdge returns the packet-relative index of the n-th trailing
// 0->1 transition counted from the right (n==0 returns len(Data)
// unchanged). It returns -1 if fewer than n such transitions exist.
func rfindEdge(packet *Packet, n int) int {
	if n == 0 {
		return len(packet.Data)
	}
	pv := packet.Data[len(packet.Data)-1]
	for t := len(packet.Data) - 1; t >= 0; t-- {
		v := packet.Data[t]
		if pv != v && v == 1 {
			n--
			if n == 0 {
				return t
			}
		}
		pv = v
	}
	return -1
}

// DecodeWithLeaderPeeling wraps f so that, before giving up, it
// retries f over all 4x4 combinations of stripping 0..3 trailing
// edges and 0..3 leading edges, narrowing the packet to the chosen
// trailing edge for the duration of each attempt. On success it
// records LeaderEdges/TrailerEdges.
func DecodeWithLeaderPeeling(f Decoder) Decoder {
	return func(packet *Packet, start, cpHint int, tr Tracer) bool {
		for lstopn := 0; lstopn < 4; lstopn++ {
			lstop := rfindEdge(packet, lstopn)
			if lstop < 0 {
				return false
			}

			for lstartn := 0; lstartn < 4; lstartn++ {
				lstart := lfindEdge(packet, start, lstartn)
				if lstart < 0 {
					return false
				}

				tr.Tracef("leader: start=%d stop=%d", lstart, lstop)

				oldData := packet.Data
				packet.Data = packet.Data[:lstop]

				ok := f(packet, lstart, cpHint, tr)

				packet.Data = oldData

				if ok {
					packet.LeaderEdges = lstartn
					packet.TrailerEdges = lstopn
					return true
				}
			}
		}
		return false
	}
}
