package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Manchester decoder: bits are encoded as edge direction at
 *		clock midpoints, preceded by a leader of zeros whose
 *		frequency may drift as the transmitter warms up.
 *
 * Description:	Ported from original_source/am433/decode.c's
 *		decode_manchester, including its two guarded self-restarts
 *		(double-clock misidentification, off-by-one framing) and
 *		the leader-break condition `(start == 0 && v) || (!v)`,
 *		kept exactly as specified rather than normalized (spec.md
 *		9).
 *
 *------------------------------------------------------------------*/

// DecodeManchester implements spec.md 4.3.4. A call with a non-zero
// start or cpHint counts as a restart: at most one restart is
// permitted, and a restart attempting a second restart rejects.
func DecodeManchester(packet *Packet, start, cpHint int, tr Tracer) bool {
	return decodeManchester(packet, start, cpHint, tr)
}

func decodeManchester(packet *Packet, start, cpHint int, tr Tracer) bool {
	packet.resetDecoded()

	pt := 0
	pv := packet.at(pt)

	cp := 0
	plZero, plOne := -1, -1
	leaderBits := 0

	t := 0
leader:
	for ; t < len(packet.Data); t++ {
		v := packet.at(t)
		if pv != v {
			if pv == 1 {
				plOne = t - pt
			} else {
				plZero = t - pt
				leaderBits++
			}
			if plOne != -1 && plZero != -1 {
				pl := plOne + plZero
				if cp == 0 {
					cp = pl
				} else if float64(pl) > 0.9*float64(cp) && float64(pl) < 1.1*float64(cp) {
					// ok
				} else {
					tr.Tracef("manchester: leader not constant frequency t=%d", t)
					return false
				}
				if float64(plOne) > 0.8*float64(plZero) && float64(plOne) <= 1.1*float64(plZero) {
					// Leader ends here. pv/pt are deliberately left
					// referring to the edge before this one, so the
					// body loop below re-processes this transition as
					// its first clock edge (matches the reference's
					// fall-through, where `pv=v; pt=t` at the bottom
					// of this block is skipped by the break).
					if (start == 0 && v == 1) || v == 0 {
						break leader
					}
				}
			}
			pv = v
			pt = t
		}
	}

	tr.Tracef("manchester: %d leading zeros t=%d", leaderBits, t)
	for ; leaderBits > 0; leaderBits-- {
		packet.pushBit(0)
	}

	cp = 0
	clock := 0

	for ; t < len(packet.Data); t++ {
		v := packet.at(t)
		if pv != v {
			pl := t - pt

			switch {
			case cp == 0:
				clock++
				cp = pl
			case float64(pl) > 0.25*float64(cp) && float64(pl) <= 0.5*float64(cp):
				// Period misidentified at double. Restart once.
				if cpHint != 0 || start != 0 {
					tr.Tracef("manchester: double clock restart rejected (already restarted)")
					return false
				}
				tr.Tracef("manchester: period restart")
				return decodeManchester(packet, start-pl, pl, tr)
			case float64(pl) > 0.5*float64(cp) && float64(pl) <= 1.5*float64(cp):
				clock++
			case float64(pl) > 1.5*float64(cp) && float64(pl) <= 3.0*float64(cp):
				if clock%2 == 0 {
					if cpHint != 0 || start != 0 {
						tr.Tracef("manchester: double offset restart rejected (already restarted)")
						return false
					}
					tr.Tracef("manchester: offset restart t=%d start=%d", t, start-cp)
					return decodeManchester(packet, start-cp, cp, tr)
				}
				clock += 2
			default:
				tr.Tracef("manchester: sync pl=%d cp=%d", pl, cp)
				clock += int(float64(pl)/float64(cp) + 0.5)
			}

			if clock%2 == 1 {
				bit := byte(0)
				if int(v)-int(pv) > 0 {
					bit = 1
				}
				packet.pushBit(bit)
			}

			pv = v
			pt = t
		}
	}

	packet.Modulation = ModManchester
	packet.CP = cp
	return true
}
