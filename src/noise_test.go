package am433

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNoiseShortButRecognizedIsNoise(t *testing.T) {
	packet := newPacket(DecodeSize)
	packet.BitCount = 4
	packet.Modulation = ModBinary
	assert.True(t, IsNoise(packet))
}

func TestIsNoiseShortAndUnrecognizedIsNotNoise(t *testing.T) {
	// spec.md 4.4: an unrecognized packet is "unrecognized", not
	// noise, and must still be delivered even when short.
	packet := newPacket(DecodeSize)
	packet.BitCount = 4
	packet.Modulation = ModUnknown
	assert.False(t, IsNoise(packet))
}

func TestIsNoiseAllOnesIsNoise(t *testing.T) {
	packet := newPacket(DecodeSize)
	packet.BitCount = 12
	packet.Modulation = ModBinary
	packet.Decoded[0] = 0xff
	packet.Decoded[1] = 0xf0 // high 4 bits of the partial trailing byte
	assert.True(t, IsNoise(packet))
}

func TestIsNoiseAllZerosIsNoise(t *testing.T) {
	packet := newPacket(DecodeSize)
	packet.BitCount = 12
	packet.Modulation = ModBinary
	// Decoded is already zeroed by newPacket.
	assert.True(t, IsNoise(packet))
}

func TestIsNoiseMixedBitsIsNotNoise(t *testing.T) {
	packet := newPacket(DecodeSize)
	packet.BitCount = 12
	packet.Modulation = ModBinary
	packet.Decoded[0] = 0xf0
	assert.False(t, IsNoise(packet))
}
