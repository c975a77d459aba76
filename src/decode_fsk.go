package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Frequency-shift decoder: the high half of each bit has
 *		constant duration, but the low-half duration and total
 *		period differ between 0-bits and 1-bits.
 *
 * Description:	Ported from original_source/am433/decode.c's
 *		decode_fsk: first pass infers the two (period, duty
 *		cycle) templates, second pass emits one bit per period by
 *		matching against them.
 *
 *------------------------------------------------------------------*/

// DecodeFSK implements spec.md 4.3.3.
func DecodeFSK(packet *Packet, start, cpHint int, tr Tracer) bool {
	packet.resetDecoded()

	pt := start
	dc := 0
	pv := packet.at(pt)

	cpOne, dcOne := 0, 0
	cpZero, dcZero := 0, 0

	for t := start; t < len(packet.Data); t++ {
		v := packet.at(t)
		if pv != v {
			if pv == 0 {
				pl := dc + t - pt
				switch {
				case cpOne == 0:
					cpOne = pl
					dcOne = dc
				case pl <= cpOne*9/10:
					if cpZero == 0 {
						cpZero = pl
						dcZero = dc
					} else if pl > cpZero*9/10 && pl <= cpZero*11/10 {
						if dc > dcZero*6/10 && dc <= dcZero*12/10 {
							// zero, ok
						} else {
							tr.Tracef("fsk: dc inconsistent at %d: %d != %d", t, dc, dcZero)
							return false
						}
					} else {
						tr.Tracef("fsk: cp inconsistent: too short at %d", t)
						return false
					}
				case pl > cpOne*9/10 && pl <= cpOne*11/10:
					if dc > dcOne*6/10 && dc <= dcOne*12/10 {
						// one, ok
					} else {
						tr.Tracef("fsk: dc inconsistent at %d: %d != %d", t, dc, dcOne)
						return false
					}
				case pl > cpOne*11/10:
					if cpZero == 0 {
						// misidentified one as zero; swap.
						cpZero, dcZero = cpOne, dcOne
						cpOne, dcOne = pl, dc
					} else {
						tr.Tracef("fsk: cp inconsistent: too long at %d", t)
						return false
					}
				}
			} else {
				dc = t - pt
			}
			pv = v
			pt = t
		}
	}

	tr.Tracef("fsk: guess cp=%d + %d, dc_one=%d, dc_zero=%d",
		(cpOne+cpZero)/2, (cpOne-cpZero)/2, dcOne, dcZero)

	if cpZero == 0 || cpOne == 0 {
		return false
	}

	pt = start
	pv = packet.at(pt)

	var t int
	for t = start; t < len(packet.Data); t++ {
		v := packet.at(t)
		if pv != v {
			if pv == 0 {
				pl := t - pt
				switch {
				case pl > cpZero*9/10 && pl <= cpZero*11/10:
					packet.pushBit(0)
				case pl > cpOne*9/10 && pl <= cpOne*11/10:
					packet.pushBit(1)
				default:
					tr.Tracef("fsk: unmatched period pl=%d at t=%d", pl, t)
					return false
				}
				pt = t
			}
			pv = v
		}
	}

	// Final partial period.
	dc = t - pt
	switch {
	case dc > dcZero*6/10 && dc < dcZero*12/10:
		packet.pushBit(0)
	case dc > dcOne*6/10 && dc <= dcOne*12/10:
		packet.pushBit(1)
	}

	packet.Modulation = ModFSK
	packet.CP = (cpOne + cpZero) / 2
	return true
}
