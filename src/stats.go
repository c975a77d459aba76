package am433

import "time"

/*------------------------------------------------------------------
 *
 * Purpose:	Alternative packet sink: channel utilization over fixed
 *		intervals.
 *
 * Description:	Ported from original_source/am433/capture.c's
 *		process_packet_stats/print_packet_stats. Preserves the
 *		documented quirk (spec.md 9) that the interval before the
 *		first packet is never emitted, and that idle gaps between
 *		packets produce no output until the next packet arrives:
 *		that packet's Process call emits the intervals it skipped,
 *		with zero ones for intervals that saw no activity.
 *
 *------------------------------------------------------------------*/

// StatsLine is one emitted interval of channel-utilization stats.
type StatsLine struct {
	Timestamp time.Time
	Ones      int
	Total     int
}

// PercentHigh returns the percentage of high-valued samples in the
// interval.
func (s StatsLine) PercentHigh() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Ones) / float64(s.Total) * 100.0
}

// StatsAggregator computes channel utilization over fixed intervals of
// cfg.StatsIntervalS*cfg.FS samples, as an alternative to decoding.
// CaptureStart is the wallclock time of sample index 0.
type StatsAggregator struct {
	cfg          *Config
	captureStart time.Time

	ones         int
	lastInterval int
	haveLast     bool
}

// NewStatsAggregator creates a stats aggregator. A nil cfg uses
// DefaultConfig().
func NewStatsAggregator(cfg *Config, captureStart time.Time) *StatsAggregator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &StatsAggregator{cfg: cfg, captureStart: captureStart, lastInterval: -1}
}

func (s *StatsAggregator) intervalLen() int {
	return s.cfg.FS * s.cfg.StatsIntervalS
}

// Process folds packet into the running utilization counters, emitting
// one StatsLine per interval boundary the packet crosses (including
// intervals with no activity, so long as a prior packet has already
// established the series). It panics if packet.Len() <= 0, mirroring
// the reference's assert(packet->len > 0); process_packet_stats is
// never called with an empty packet.
func (s *StatsAggregator) Process(packet *Packet) []StatsLine {
	if packet.Len() <= 0 {
		panic("am433: StatsAggregator.Process called with an empty packet")
	}

	intervalLen := s.intervalLen()
	var lines []StatsLine

	// Offsets truncate to whole seconds, matching the reference's
	// integer `tv_sec += samples/FS` arithmetic exactly (sub-second
	// remainder is discarded, not carried forward).
	if s.haveLast {
		missedIntervals := (packet.Start / intervalLen) - s.lastInterval
		for n := 0; n < missedIntervals; n++ {
			offsetSec := (intervalLen * (s.lastInterval + n)) / s.cfg.FS
			t := s.captureStart.Add(time.Duration(offsetSec) * time.Second)
			lines = append(lines, StatsLine{Timestamp: t, Ones: s.ones, Total: intervalLen})
			s.ones = 0
		}
	}

	var n int
	for i := 0; i < packet.Len(); i++ {
		n = packet.Start + i
		if packet.Data[i] != 0 {
			s.ones++
		}

		if n%intervalLen == 0 {
			offsetSec := (n - intervalLen) / s.cfg.FS
			t := s.captureStart.Add(time.Duration(offsetSec) * time.Second)
			lines = append(lines, StatsLine{Timestamp: t, Ones: s.ones, Total: intervalLen})
			s.ones = 0
		}
	}

	s.lastInterval = packet.End / intervalLen
	s.haveLast = true

	return lines
}
