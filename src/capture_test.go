package am433

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureTestConfig() *Config {
	return &Config{
		FS:             1000,
		PktBreakMinMS:  5,
		PktBreakMaxMS:  20,
		PktBreakNTran:  4,
		DataSize:       DataSize,
		DecodeSize:     DecodeSize,
		StatsIntervalS: 60,
	}
}

// rawBinaryBurst renders bits as clocked {0,1} samples (as
// binaryEncode does), then maps them through restore_dc's inverse
// (logical 1 -> raw 0, logical 0 -> raw 255, at or above the 245
// threshold) so the bytes fed to Capture.Run
// look like genuine unsigned PCM, not pre-restored logic levels.
func rawBinaryBurst(bits []byte, cp int) []byte {
	restored := binaryEncode(bits, cp)
	raw := make([]byte, len(restored))
	for i, v := range restored {
		if v == 1 {
			raw[i] = 0
		} else {
			raw[i] = 255
		}
	}
	return raw
}

type fakeEmitter struct {
	packets    []*Packet
	timestamps []time.Time
}

func (f *fakeEmitter) Emit(packet *Packet, timestamp time.Time) error {
	f.packets = append(f.packets, packet)
	f.timestamps = append(f.timestamps, timestamp)
	return nil
}

func TestCaptureRunDecodesAndEmitsOneBurst(t *testing.T) {
	cfg := captureTestConfig()
	// The packetizer ends a packet at its last edge, so the packet's
	// final pulse is never closed by a transition and DecodeBinary does
	// not emit it. Ending on a 0 bit makes binaryEncode's closing sample
	// that final (short, high) pulse, so every bit of bits is decoded.
	bits := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 0}
	burst := rawBinaryBurst(bits, 10)
	idle := bytes.Repeat([]byte{255}, cfg.pktBreakMaxSamp()+5)

	stream := append(append([]byte{}, burst...), idle...)

	captureStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	capt := NewCapture(cfg, captureStart)
	emitter := &fakeEmitter{}
	capt.Emitter = emitter

	err := capt.Run(bytes.NewReader(stream))
	require.NoError(t, err)

	require.Len(t, emitter.packets, 1)
	packet := emitter.packets[0]
	assert.Equal(t, ModBinary, packet.Modulation)
	require.GreaterOrEqual(t, packet.BitCount, len(bits))
	for i, want := range bits {
		got := (packet.Decoded[i/8] >> (7 - uint(i%8))) & 1
		assert.Equal(t, want, got, "bit %d", i)
	}
}

func TestCaptureRunIdleStreamEmitsNothing(t *testing.T) {
	cfg := captureTestConfig()
	stream := bytes.Repeat([]byte{255}, 500)

	capt := NewCapture(cfg, time.Now())
	emitter := &fakeEmitter{}
	capt.Emitter = emitter

	err := capt.Run(bytes.NewReader(stream))
	require.NoError(t, err)
	assert.Empty(t, emitter.packets)
}

func TestCaptureRunSampleLimitDiscardsInProgressPacket(t *testing.T) {
	// A continuously toggling stream (no idle gap long enough to close
	// the packet on its own) that runs well past SampleLimit: spec.md 5
	// says a SampleLimit cutoff discards in-progress packet state
	// rather than flushing it, unlike a genuine end of stream.
	cfg := captureTestConfig()
	bits := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0, 1, 0, 1}
	stream := rawBinaryBurst(bits, 10)
	require.Greater(t, len(stream), 50)

	capt := NewCapture(cfg, time.Now())
	capt.SampleLimit = 50
	emitter := &fakeEmitter{}
	capt.Emitter = emitter

	err := capt.Run(bytes.NewReader(stream))
	require.NoError(t, err)
	assert.Empty(t, emitter.packets)
}

func TestCaptureRunStatsMode(t *testing.T) {
	cfg := captureTestConfig()
	cfg.StatsIntervalS = 1 // intervalLen = FS*1 = 1000 samples

	bits := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1}
	burst := rawBinaryBurst(bits, 10)
	idle := bytes.Repeat([]byte{255}, cfg.pktBreakMaxSamp()+5)
	stream := append(append([]byte{}, burst...), idle...)

	captureStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	capt := NewCapture(cfg, captureStart)
	capt.Stats = NewStatsAggregator(cfg, captureStart)

	err := capt.Run(bytes.NewReader(stream))
	require.NoError(t, err)
}
