package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Interface to the capture sound device.
 *
 * Description:	original_source/am433/capture.c's process_alsa opens an
 *		ALSA PCM device directly. This repo goes through
 *		portaudio instead, which gets us the same 8-bit mono
 *		capture on whatever backend the host provides (ALSA,
 *		CoreAudio, WASAPI, ...) without a cgo dependency on
 *		libasound specifically.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"time"

	"github.com/gordonklaus/portaudio"
)

// AudioSource reads raw unsigned 8-bit mono samples from a portaudio
// input device. It implements io.Reader so it plugs directly into
// Capture.Run.
//
// The portaudio binding has no native paUInt8 sample format, only
// signed paInt8, so the stream is opened as []int8 and converted
// sample by sample: the spec's unsigned PCM has its zero-signal level
// at 128, portaudio's signed format has it at 0, so conversion is an
// arithmetic +128 (mod 256), not a bit reinterpretation.
type AudioSource struct {
	stream *portaudio.Stream
	raw    []int8
	buf    []byte
	pos    int
}

// OpenAudioSource opens device (an empty string selects the host's
// default input device) for FS-rate, single-channel, 8-bit capture,
// and starts the stream.
func OpenAudioSource(device string, fs int) (*AudioSource, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("am433: initializing portaudio: %w", err)
	}

	dev, err := resolveInputDevice(device)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	src := &AudioSource{
		raw: make([]int8, captureBuffSize),
		buf: make([]byte, captureBuffSize),
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: 1,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      float64(fs),
		FramesPerBuffer: len(src.raw),
	}

	stream, err := portaudio.OpenStream(params, src.raw)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("am433: opening input stream: %w", err)
	}
	src.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("am433: starting input stream: %w", err)
	}

	return src, nil
}

func resolveInputDevice(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		dev, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("am433: no default input device: %w", err)
		}
		return dev, nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("am433: listing audio devices: %w", err)
	}
	for _, d := range devices {
		if d.Name == name && d.MaxInputChannels > 0 {
			return d, nil
		}
	}
	return nil, fmt.Errorf("am433: input device %q not found", name)
}

// TriggerTime estimates the wallclock time of the stream's first
// sample. portaudio doesn't expose the hardware trigger timestamp
// ALSA does, so this is approximated as the time of the call, offset
// by the stream's reported input latency; callers wanting the reference
// implementation's monotonic-clock-offset correction should apply it
// themselves around process start.
func (a *AudioSource) TriggerTime() time.Time {
	info := a.stream.Info()
	return time.Now().Add(-info.InputLatency)
}

// Read implements io.Reader, pulling one portaudio buffer per short
// read, converting it to unsigned PCM, and fulfilling from it until
// exhausted.
func (a *AudioSource) Read(p []byte) (int, error) {
	if a.pos >= len(a.buf) {
		if err := a.stream.Read(); err != nil {
			return 0, fmt.Errorf("am433: reading audio stream: %w", err)
		}
		for i, s := range a.raw {
			a.buf[i] = byte(int(s) + 128)
		}
		a.pos = 0
	}

	n := copy(p, a.buf[a.pos:])
	a.pos += n
	return n, nil
}

// Close stops the stream and releases portaudio.
func (a *AudioSource) Close() error {
	err := a.stream.Close()
	portaudio.Terminate()
	return err
}

var _ io.Reader = (*AudioSource)(nil)
