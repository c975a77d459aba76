package am433

import "math"

/*------------------------------------------------------------------
 *
 * Purpose:	Binary (unencoded) decoder: a clocked stream of {0,1}
 *		where each bit lasts an integer multiple of an unknown
 *		clock period.
 *
 * Description:	Ported from original_source/am433/decode.c's
 *		decode_binary: three passes over the pulse sequence
 *		(minimum pulse estimate, damped refine+validate, emit).
 *
 *------------------------------------------------------------------*/

// DecodeBinary implements spec.md 4.3.1.
func DecodeBinary(packet *Packet, start, cpHint int, tr Tracer) bool {
	packet.resetDecoded()

	cp := -1.0

	// First pass: find the shortest pulse length, the initial clock
	// estimate.
	pt := start
	pv := packet.at(start)
	for t := start; t < len(packet.Data); t++ {
		v := packet.at(t)
		if pv != v {
			pl := t - pt
			if pl < 2 {
				tr.Tracef("binary: pulse too short t=%d", t)
				return false
			}
			if cp == -1 || float64(pl) < cp {
				cp = float64(pl)
			}
			pv = v
			pt = t
		}
	}

	if cp == -1 {
		// No transition at all in range: the reference still reports
		// success here, with bitcount 0 and MOD_BINARY set (decode.c's
		// decode_binary falls through to its return 1 with clock==-1
		// left unused) — is_noise then drops it via the
		// BitCount<=8-and-not-ModUnknown branch, same as a real
		// all-same-bits packet.
		packet.Modulation = ModBinary
		return true
	}

	tr.Tracef("binary: first guess cp=%.2f", cp)

	// Second pass: refine the clock estimate and validate
	// consistency.
	pt = start
	pv = packet.at(start)
	for t := start; t < len(packet.Data); t++ {
		v := packet.at(t)
		if pv != v {
			pl := float64(t - pt)
			switch {
			case pl < cp:
				// shorter than the current guess: jitter.
				cp = (cp*2.0 + pl) / 3.0
			case pl > cp:
				r := pl / cp
				n := math.Round(r)
				e := math.Abs((r - n) / n)
				if e > 0.3 {
					tr.Tracef("binary: inconsistent pulse length cp=%.2f pl=%.0f t=%d", cp, pl, t)
					return false
				}
				if n > 20.0 {
					tr.Tracef("binary: too many consecutive bits %.0f t=%d", n, t)
					return false
				}
				cp = (cp*2.0 + pl/n) / 3.0
			}
			pv = v
			pt = t
		}
	}

	tr.Tracef("binary: cp=%.2f", cp)

	// Third pass: emit round(pl/cp) copies of the pulse's polarity.
	pt = start
	pv = packet.at(start)
	for t := start; t < len(packet.Data); t++ {
		v := packet.at(t)
		if pv != v {
			pl := float64(t - pt)
			nbits := int(math.Round(pl / cp))
			for n := 0; n < nbits; n++ {
				packet.pushBit(pv)
			}
			pv = v
			pt = t
		}
	}

	packet.Modulation = ModBinary
	packet.CP = int(math.Round(cp))
	return true
}
