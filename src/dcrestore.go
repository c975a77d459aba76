package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Map raw unsigned 8-bit PCM samples to logical {0,1}.
 *
 * Description:	The radio front end idles high, so the threshold
 *		inverts polarity: a sample at or above the threshold is
 *		logical 0, below it is logical 1. Ported from
 *		original_source/am433/capture.c's restore_dc, which
 *		hard-codes threshold=245.
 *
 *------------------------------------------------------------------*/

const dcThreshold = 245

// restoreDC maps each raw byte in place to a logical {0,1} sample.
func restoreDC(buf []byte) {
	for i, b := range buf {
		if b >= dcThreshold {
			buf[i] = 0
		} else {
			buf[i] = 1
		}
	}
}
