package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Render a decoded packet as either the human-readable
 *		ASCII block or the compact binary "mon" frame (spec.md
 *		6).
 *
 * Description:	Ported from original_source/am433/capture.c's
 *		ascii_print_func and mon.c's mon_print_func.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Emitter hands a decoded (or unrecognized) packet to a sink.
// timestamp is the wallclock time of the packet's first sample.
type Emitter interface {
	Emit(packet *Packet, timestamp time.Time) error
}

// ASCIIEmitter writes the human-readable block format to W. If
// TimestampFormat is non-empty, it is compiled with strftime and
// prefixed to each packet block (the Go analogue of the teacher's
// kissutil -T flag).
type ASCIIEmitter struct {
	W               io.Writer
	FS              int
	TimestampFormat string

	tsFmt *strftime.Strftime
}

func (e *ASCIIEmitter) fs() int {
	if e.FS == 0 {
		return DefaultFS
	}
	return e.FS
}

// Emit implements Emitter.
func (e *ASCIIEmitter) Emit(packet *Packet, timestamp time.Time) error {
	if e.TimestampFormat != "" {
		if e.tsFmt == nil {
			f, err := strftime.New(e.TimestampFormat)
			if err != nil {
				return fmt.Errorf("am433: compiling timestamp format %q: %w", e.TimestampFormat, err)
			}
			e.tsFmt = f
		}
		if _, err := fmt.Fprintf(e.W, "%s ", e.tsFmt.FormatString(timestamp)); err != nil {
			return err
		}
	}

	fs := float64(e.fs())

	if _, err := fmt.Fprintf(e.W, "PACKET: %d (%.2f s) %d (%.2f s) %d (%.2f s)\n",
		packet.Start, float64(packet.Start)/fs,
		packet.End, float64(packet.End)/fs,
		packet.Len(), float64(packet.Len())/fs); err != nil {
		return err
	}

	if packet.Modulation != ModUnknown {
		if _, err := fmt.Fprintf(e.W, "    mod   %d\n", int(packet.Modulation)); err != nil {
			return err
		}
		if packet.CP > 0 {
			if _, err := fmt.Fprintf(e.W, "    clock %d Hz\n", e.fs()/packet.CP); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(e.W, "    data  "); err != nil {
			return err
		}
		for _, b := range packet.Decoded[:packet.byteCount()] {
			if _, err := fmt.Fprintf(e.W, "%02x ", b); err != nil {
				return err
			}
		}
	} else {
		if _, err := fmt.Fprint(e.W, "    mod   unknown\n\n"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(e.W, "\n\n")
	return err
}

// captureHdr mirrors original_source/am433/capture.h's
// am433_capture_hdr exactly, field for field, packed with no padding.
type captureHdr struct {
	TimestampUS uint64
	BitCount    uint32
	ClockHz     uint32
	Modulation  uint8
	LeaderEdges uint8
	TrailerEdges uint8
}

// BinaryEmitter writes the compact "mon" binary frame format (spec.md
// 6): a fixed 19-byte header (the wire layout omits the struct's
// natural alignment padding) followed by the payload bytes.
type BinaryEmitter struct {
	W  io.Writer
	FS int
}

func (e *BinaryEmitter) fs() int {
	if e.FS == 0 {
		return DefaultFS
	}
	return e.FS
}

// Emit implements Emitter. timestamp is the packet's own wallclock
// time, capture_start + start/FS (spec.md 6), as Capture computes it.
func (e *BinaryEmitter) Emit(packet *Packet, timestamp time.Time) error {
	hdr := captureHdr{
		TimestampUS:  uint64(timestamp.UnixMicro()),
		Modulation:   uint8(packet.Modulation),
		LeaderEdges:  uint8(packet.LeaderEdges),
		TrailerEdges: uint8(packet.TrailerEdges),
	}

	var payload []byte
	if packet.Modulation == ModUnknown {
		hdr.BitCount = uint32(packet.Len() * 8)
		hdr.ClockHz = uint32(e.fs())
		payload = packet.Data
	} else {
		hdr.BitCount = uint32(packet.BitCount)
		if packet.CP != 0 {
			hdr.ClockHz = uint32(e.fs() / packet.CP)
		}
		payload = packet.Decoded[:packet.byteCount()]
	}

	if err := writeHeader(e.W, hdr); err != nil {
		return err
	}
	_, err := e.W.Write(payload)
	return err
}

func writeHeader(w io.Writer, hdr captureHdr) error {
	var buf [19]byte
	binary.LittleEndian.PutUint64(buf[0:8], hdr.TimestampUS)
	binary.LittleEndian.PutUint32(buf[8:12], hdr.BitCount)
	binary.LittleEndian.PutUint32(buf[12:16], hdr.ClockHz)
	buf[16] = hdr.Modulation
	buf[17] = hdr.LeaderEdges
	buf[18] = hdr.TrailerEdges
	_, err := w.Write(buf[:])
	return err
}
