package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Pulse-position keying decoder: bits are distinguished by
 *		which half of a clock period is short vs. long.
 *
 * Description:	Ported from original_source/am433/decode.c's
 *		decode_ppk. Without a clock hint, it measures the first
 *		three distinct pulse lengths and retries itself at four
 *		candidate (start, cpHint) pairs, returning the first
 *		success (recursion depth <= 2: the cp_hint==0 call, then
 *		one of the four hinted calls).
 *
 *------------------------------------------------------------------*/

// DecodePPK implements spec.md 4.3.5.
func DecodePPK(packet *Packet, start, cpHint int, tr Tracer) bool {
	if cpHint != 0 {
		return decodePPKWithHint(packet, start, cpHint, tr)
	}

	pt := start
	pv := packet.at(pt)

	var plDetect [3]int
	clock := 0

	for t := start; t < len(packet.Data); t++ {
		v := packet.at(t)
		if pv != v {
			plDetect[clock] = t - pt
			clock++
			if clock >= 3 {
				break
			}
			pv = v
			pt = t
		}
	}

	if clock < 3 {
		return false
	}

	if DecodePPK(packet, start, plDetect[0], tr) {
		return true
	}
	if DecodePPK(packet, start, plDetect[1], tr) {
		return true
	}
	if DecodePPK(packet, start-plDetect[1], plDetect[1], tr) {
		return true
	}
	if DecodePPK(packet, start-plDetect[2], plDetect[2], tr) {
		return true
	}
	return false
}

func decodePPKWithHint(packet *Packet, start, cp int, tr Tracer) bool {
	tr.Tracef("ppk: guess start=%d cp=%d", start, cp)

	packet.resetDecoded()

	pt := start
	pv := packet.at(pt)
	polarity := pv

	plZero, plOne := -1, -1

	for t := start; t < len(packet.Data); t++ {
		v := packet.at(t)
		if pv != v {
			if pv == 1 {
				plOne = t - pt
			} else {
				plZero = t - pt
			}

			if pv != polarity {
				switch {
				case float64(plOne) > 0.6*float64(cp) && float64(plOne) < 1.5*float64(cp):
					packet.pushBit(1)
				case float64(plZero) > 0.6*float64(cp) && float64(plZero) < 1.5*float64(cp):
					packet.pushBit(0)
				default:
					tr.Tracef("ppk: inconsistent pl_one=%d pl_zero=%d t=%d", plOne, plZero, t)
					return false
				}
			}

			pv = v
			pt = t
		}
	}

	packet.Modulation = ModPPK
	packet.CP = cp
	return true
}
