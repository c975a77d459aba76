package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Drive an input sample stream through DC restoration, the
 *		packetizer, and either the decoder bank or the stats
 *		aggregator.
 *
 * Description:	Ported from original_source/am433/capture.c's
 *		process_file/process_packet. Generalized from a
 *		file-descriptor loop into anything implementing io.Reader,
 *		so the same driver serves both -f FILE and the portaudio
 *		device path (audio.go).
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"time"
)

const captureBuffSize = 4096

// Capture wires a sample source to a sink. Dispatch selects which
// decoders are tried (DefaultDispatch matches the reference's
// binary-only process_packet; AllDecoders tries the full bank).
// Stats, if non-nil, is used instead of Dispatch/Emitter (spec.md 4.5
// "alternative sink"); exactly one of Stats or Emitter should be set.
type Capture struct {
	Cfg      *Config
	Dispatch []DispatchEntry
	Emitter  Emitter
	Stats    *StatsAggregator
	Tracer   Tracer

	// CaptureStart is the wallclock time of sample index 0, used to
	// timestamp emitted packets and stats lines.
	CaptureStart time.Time

	// SampleLimit stops reading once this many samples have been
	// consumed (spec.md 6 -t SECONDS flag is translated to a sample
	// count by the caller). Zero means unlimited.
	SampleLimit int

	pz *Packetizer
}

// NewCapture creates a Capture with its own Packetizer. A nil cfg uses
// DefaultConfig(), and a nil tracer uses NoTracer.
func NewCapture(cfg *Config, captureStart time.Time) *Capture {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Capture{
		Cfg:          cfg,
		Dispatch:     DefaultDispatch,
		CaptureStart: captureStart,
		Tracer:       NoTracer,
		pz:           NewPacketizer(cfg),
	}
}

func (c *Capture) tracer() Tracer {
	if c.Tracer == nil {
		return NoTracer
	}
	return c.Tracer
}

// Run reads r in fixed-size chunks until EOF (or SampleLimit is
// reached), restoring DC and feeding the packetizer on each chunk, and
// routing every completed packet to processPacket. It flushes any
// in-progress packet at end of stream, matching the reference's
// bytesleft==0 handling.
func (c *Capture) Run(r io.Reader) error {
	buf := make([]byte, captureBuffSize)
	eof := false

loop:
	for {
		if c.SampleLimit > 0 && c.pz.SampleCount() >= c.SampleLimit {
			break
		}

		n, err := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			restoreDC(chunk)

			if err := c.feedAll(chunk); err != nil {
				return err
			}
		}

		switch {
		case err == io.EOF:
			eof = true
			break loop
		case err != nil:
			return fmt.Errorf("am433: reading samples: %w", err)
		}
	}

	// A SampleLimit cutoff discards any in-progress packet (spec.md 5):
	// only genuine end of stream flushes it, matching the reference's
	// process_file, which flushes via a final packetizer(...,0) call
	// that process_alsa's sample_limit exit never reaches.
	if eof {
		if packet := c.pz.Flush(); packet != nil {
			if err := c.processPacket(packet); err != nil {
				return err
			}
		}
	}

	return nil
}

// feedAll drains one chunk through the packetizer, since a single
// chunk may close more than one packet (or none).
func (c *Capture) feedAll(chunk []byte) error {
	rest := chunk
	for {
		var packet *Packet
		packet, rest = c.pz.Feed(rest)
		if packet == nil {
			return nil
		}
		if err := c.processPacket(packet); err != nil {
			return err
		}
		if rest == nil {
			return nil
		}
	}
}

// processPacket mirrors process_packet/process_packet_stats: packets
// shorter than 2 samples are silently dropped, decoding is attempted
// (when not in stats mode), and noise is filtered before emission.
func (c *Capture) processPacket(packet *Packet) error {
	timestamp := c.CaptureStart.Add(time.Duration(packet.Start) * time.Second / time.Duration(c.Cfg.FS))

	if c.Stats != nil {
		for _, line := range c.Stats.Process(packet) {
			fmt.Printf("%d\t%3.2f\t%d\t%d\n", line.Timestamp.Unix(), line.PercentHigh(), line.Ones, line.Total)
		}
		return nil
	}

	if packet.Len() < 2 {
		return nil
	}

	Decode(c.Dispatch, packet, c.tracer())

	if IsNoise(packet) {
		return nil
	}

	return c.Emitter.Emit(packet, timestamp)
}
