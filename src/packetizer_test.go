package am433

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func samplesOfRuns(runs ...[2]int) []byte {
	// runs is pairs of (value, count).
	var out []byte
	for _, r := range runs {
		for n := 0; n < r[1]; n++ {
			out = append(out, byte(r[0]))
		}
	}
	return out
}

func TestPacketizerIdleChannelYieldsNoPacket(t *testing.T) {
	pz := NewPacketizer(DefaultConfig())
	buf := make([]byte, 1000)
	packet, rest := pz.Feed(buf)
	assert.Nil(t, packet)
	assert.Nil(t, rest)
	assert.Nil(t, pz.Flush())
}

func TestPacketizerSingleShortBurst(t *testing.T) {
	cfg := DefaultConfig()
	pz := NewPacketizer(cfg)

	// A short burst of transitions, then more idle samples than
	// PktBreakMaxMS, the largest gap threshold the clamp allows (here
	// the adaptive term is small and clamps to the minimum). The packet
	// opens at the first 0->1 edge, after the 5 leading low samples.
	burst := samplesOfRuns([2]int{0, 5}, [2]int{1, 5}, [2]int{0, 5}, [2]int{1, 5})
	idle := make([]byte, cfg.pktBreakMaxSamp()+10)

	buf := append(append([]byte{}, burst...), idle...)

	packet, rest := pz.Feed(buf)
	require.NotNil(t, packet)
	assert.Equal(t, 5, packet.Start)
	assert.Greater(t, packet.End, packet.Start)
	assert.NotNil(t, rest)
}

func TestPacketizerTwoBurstsWithinAdaptiveGapMerge(t *testing.T) {
	cfg := DefaultConfig()
	pz := NewPacketizer(cfg)

	// Two bursts separated by a short gap, well under the minimum
	// break length, must merge into a single packet.
	gap := cfg.pktBreakMinSamp() / 2
	burst := samplesOfRuns([2]int{0, 3}, [2]int{1, 3}, [2]int{0, gap}, [2]int{1, 3}, [2]int{0, 3})
	idle := make([]byte, cfg.pktBreakMaxSamp()+10)
	buf := append(append([]byte{}, burst...), idle...)

	packet, rest := pz.Feed(buf)
	require.NotNil(t, packet)
	assert.NotNil(t, rest)
	// The leading and trailing 3-sample low runs lie outside the packet.
	assert.Equal(t, len(burst)-3-3, packet.Len())
}

func TestPacketizerOverflowClosesAtDataSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataSize = 64
	pz := NewPacketizer(cfg)

	// Keep toggling forever: never an idle gap, so the only way the
	// packet closes is the DataSize overflow cap.
	buf := make([]byte, 200)
	for i := range buf {
		buf[i] = byte(i % 2)
	}

	packet, rest := pz.Feed(buf)
	require.NotNil(t, packet)
	assert.Equal(t, cfg.DataSize, packet.Len())
	assert.NotNil(t, rest)
}

func TestPacketizerFlushReturnsInProgressPacket(t *testing.T) {
	pz := NewPacketizer(DefaultConfig())
	buf := samplesOfRuns([2]int{0, 3}, [2]int{1, 3}, [2]int{0, 3})

	packet, rest := pz.Feed(buf)
	assert.Nil(t, packet)
	assert.Nil(t, rest)

	flushed := pz.Flush()
	require.NotNil(t, flushed)
	// Only the high run between the two edges is inside the packet.
	assert.Equal(t, 3, flushed.Len())
}

// Feeding a stream all at once, or split arbitrarily across multiple
// Feed calls, must produce the same stream of packet boundaries
// (spec.md 8's packetizer stream-position invariance).
func TestPacketizerChunkingInvariance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(20, 400).Draw(t, "n")
		buf := make([]byte, n)
		v := byte(0)
		for i := range buf {
			if rapid.IntRange(0, 4).Draw(t, "flip") == 0 {
				v = 1 - v
			}
			buf[i] = v
		}

		whole := runPacketizer(t, [][]byte{buf})

		nsplits := rapid.IntRange(1, 5).Draw(t, "nsplits")
		var chunks [][]byte
		rest := buf
		for i := 0; i < nsplits && len(rest) > 1; i++ {
			k := rapid.IntRange(1, len(rest)-1).Draw(t, "k")
			chunks = append(chunks, rest[:k])
			rest = rest[k:]
		}
		chunks = append(chunks, rest)

		split := runPacketizer(t, chunks)

		require.Equal(t, len(whole), len(split))
		for i := range whole {
			assert.Equal(t, whole[i].Start, split[i].Start)
			assert.Equal(t, whole[i].End, split[i].End)
		}
	})
}

func runPacketizer(t *rapid.T, chunks [][]byte) []*Packet {
	pz := NewPacketizer(DefaultConfig())
	var packets []*Packet
	for _, chunk := range chunks {
		rest := chunk
		for {
			var p *Packet
			p, rest = pz.Feed(rest)
			if p == nil {
				break
			}
			packets = append(packets, p)
			if rest == nil {
				break
			}
		}
	}
	if p := pz.Flush(); p != nil {
		packets = append(packets, p)
	}
	return packets
}
