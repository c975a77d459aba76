package am433

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asciiTestPacket() *Packet {
	packet := newPacket(DecodeSize)
	packet.Start, packet.End = 5, 25
	packet.Modulation = ModBinary
	packet.CP = 10
	packet.BitCount = 12
	packet.Decoded[0] = 0xab
	packet.Decoded[1] = 0xc0
	return packet
}

func TestASCIIEmitterRecognizedPacketFormat(t *testing.T) {
	var buf bytes.Buffer
	e := &ASCIIEmitter{W: &buf, FS: 100}

	err := e.Emit(asciiTestPacket(), time.Now())
	require.NoError(t, err)

	want := "PACKET: 5 (0.05 s) 25 (0.25 s) 20 (0.20 s)\n" +
		"    mod   5\n" +
		"    clock 10 Hz\n" +
		"    data  ab c0 \n\n"
	assert.Equal(t, want, buf.String())
}

func TestASCIIEmitterUnrecognizedPacketFormat(t *testing.T) {
	var buf bytes.Buffer
	e := &ASCIIEmitter{W: &buf, FS: 100}

	packet := newPacket(DecodeSize)
	packet.Start, packet.End = 0, 8
	packet.Data = []byte{1, 0, 1, 1, 0, 0, 1, 0}

	err := e.Emit(packet, time.Now())
	require.NoError(t, err)

	want := "PACKET: 0 (0.00 s) 8 (0.08 s) 8 (0.08 s)\n" +
		"    mod   unknown\n\n\n\n"
	assert.Equal(t, want, buf.String())
}

func TestASCIIEmitterTimestampPrefix(t *testing.T) {
	var buf bytes.Buffer
	e := &ASCIIEmitter{W: &buf, FS: 100, TimestampFormat: "%Y-%m-%d"}

	ts := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	err := e.Emit(asciiTestPacket(), ts)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "2024-03-14 PACKET:")
}

func TestBinaryEmitterRecognizedPacketHeaderAndPayload(t *testing.T) {
	var buf bytes.Buffer
	e := &BinaryEmitter{W: &buf, FS: 100}

	packet := asciiTestPacket()
	packet.LeaderEdges = 1
	packet.TrailerEdges = 2

	// Start=5 at FS=100: the packet begins 50 ms after capture start.
	captureStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	packetTime := captureStart.Add(50 * time.Millisecond)
	err := e.Emit(packet, packetTime)
	require.NoError(t, err)

	data := buf.Bytes()
	require.Len(t, data, 19+2)

	assert.Equal(t, uint64(packetTime.UnixMicro()), binary.LittleEndian.Uint64(data[0:8]))
	assert.Equal(t, uint32(12), binary.LittleEndian.Uint32(data[8:12]))
	assert.Equal(t, uint32(10), binary.LittleEndian.Uint32(data[12:16]))
	assert.Equal(t, uint8(ModBinary), data[16])
	assert.Equal(t, uint8(1), data[17])
	assert.Equal(t, uint8(2), data[18])
	assert.Equal(t, []byte{0xab, 0xc0}, data[19:21])
}

func TestBinaryEmitterUnrecognizedPacketUsesRawData(t *testing.T) {
	var buf bytes.Buffer
	e := &BinaryEmitter{W: &buf, FS: 100}

	packet := newPacket(DecodeSize)
	packet.Start, packet.End = 0, 8
	packet.Data = []byte{1, 0, 1, 1, 0, 0, 1, 0}

	captureStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	err := e.Emit(packet, captureStart)
	require.NoError(t, err)

	data := buf.Bytes()
	require.Len(t, data, 19+8)
	assert.Equal(t, uint32(64), binary.LittleEndian.Uint32(data[8:12]))
	assert.Equal(t, uint32(100), binary.LittleEndian.Uint32(data[12:16]))
	assert.Equal(t, uint8(ModUnknown), data[16])
	assert.Equal(t, packet.Data, data[19:27])
}
