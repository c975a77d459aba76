package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Pulse-width (PWM) decoder: one edge is clocked uniformly,
 *		the opposite edge's position within the clock period
 *		carries the bit (short = 0, long = 1).
 *
 * Description:	Ported from original_source/am433/decode.c's
 *		decode_pwm. Includes the reference's final-partial-cycle
 *		polarity inversion verbatim (spec.md 9 open question):
 *		the trailing fragment emits 0 when long and 1 when
 *		short, the opposite of the main loop.
 *
 *------------------------------------------------------------------*/

// DecodePWM implements spec.md 4.3.2.
func DecodePWM(packet *Packet, start, cpHint int, tr Tracer) bool {
	packet.resetDecoded()

	pv := packet.at(start)

	cpRise, cpFall := 0, 0
	ptRise, ptFall := start, -1
	okRise, okFall := true, true

	for t := start; t < len(packet.Data); t++ {
		v := packet.at(t)
		if pv != v {
			if v == 1 {
				pl := t - ptRise
				if cpRise == 0 {
					cpRise = pl
				} else if (pl > cpRise*8/10 && pl < cpRise*13/10) || !okRise {
					// ok
				} else {
					okRise = false
				}
				ptRise = t
			} else {
				if ptFall >= 0 {
					pl := t - ptFall
					if cpFall == 0 {
						cpFall = pl
					} else if (pl > cpFall*8/10 && pl < cpFall*13/10) || !okFall {
						// ok
					} else {
						okFall = false
					}
				}
				ptFall = t
			}
			pv = v
		}
	}

	var cp int
	var edge byte
	pt := start
	pv = packet.at(pt)

	switch {
	case okRise && cpRise != 0:
		tr.Tracef("pwm: rising edge clock")
		cp = cpRise
		edge = 1
	case okFall && cpFall != 0:
		tr.Tracef("pwm: falling edge clock")
		cp = cpFall
		edge = 0
	default:
		tr.Tracef("pwm: err: clock not constant on either edge")
		return false
	}

	tr.Tracef("pwm: guess cp=%d", cp)

	var v byte
	for t := start; t < len(packet.Data); t++ {
		v = packet.at(t)
		if pv != v {
			pl := t - pt
			if v == edge {
				switch {
				case float64(pl) > 0.55*float64(cp):
					packet.pushBit(1)
				case float64(pl) < 0.45*float64(cp):
					packet.pushBit(0)
				default:
					tr.Tracef("pwm: err: ambiguous bit pl=%d t=%d", pl, t)
					return false
				}
			}
			pv = v
			pt = t
		}
	}

	// Final partial cycle: polarity is inverted relative to the main
	// loop above, per the reference (spec.md 9).
	if v == edge {
		pl := len(packet.Data) - pt
		switch {
		case float64(pl) > 0.55*float64(cp):
			packet.pushBit(0)
		case float64(pl) < 0.45*float64(cp):
			packet.pushBit(1)
		default:
			tr.Tracef("pwm: err: ambiguous final bit pl=%d", pl)
			return false
		}
	}

	packet.Modulation = ModPWM
	packet.CP = cp
	return true
}
