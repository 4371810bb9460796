//go:build cgo && !noaudio

package audio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Devices lists the host's audio devices.
func Devices() ([]Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: initialize: %w", err)
	}
	defer portaudio.Terminate()

	infos, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("audio: list devices: %w", err)
	}

	return convert(infos), nil
}

func convert(infos []*portaudio.DeviceInfo) []Device {
	out := make([]Device, len(infos))
	for i, d := range infos {
		out[i] = Device{
			Index:             i,
			Name:              d.Name,
			MaxInputChannels:  d.MaxInputChannels,
			MaxOutputChannels: d.MaxOutputChannels,
			DefaultSampleRate: d.DefaultSampleRate,
		}
		if d.HostApi != nil {
			out[i].HostAPI = d.HostApi.Name
		}
	}

	return out
}

// PlaybackAndRecord plays signal and records both input channels for the
// same number of samples.
func (t *Transport) PlaybackAndRecord(ctx context.Context, signal []float64) ([]float64, []float64, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, nil, fmt.Errorf("audio: initialize: %w", err)
	}
	defer portaudio.Terminate()

	infos, err := portaudio.Devices()
	if err != nil {
		return nil, nil, fmt.Errorf("audio: list devices: %w", err)
	}

	in, err := resolve(infos, t.Input, portaudio.DefaultInputDevice)
	if err != nil {
		return nil, nil, err
	}

	out, err := resolve(infos, t.Output, portaudio.DefaultOutputDevice)
	if err != nil {
		return nil, nil, err
	}

	frames := t.frames()
	inBuf := make([]float32, 2*frames)
	outBuf := make([]float32, frames)

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   in,
			Channels: 2,
			Latency:  in.DefaultHighInputLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Device:   out,
			Channels: 1,
			Latency:  out.DefaultHighOutputLatency,
		},
		SampleRate:      t.SampleRate,
		FramesPerBuffer: frames,
	}

	stream, err := portaudio.OpenStream(params, inBuf, outBuf)
	if err != nil {
		return nil, nil, fmt.Errorf("audio: open stream %s -> %s: %w", out.Name, in.Name, err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, nil, fmt.Errorf("audio: start stream: %w", err)
	}
	defer stream.Stop()

	mic := make([]float64, len(signal))
	ref := make([]float64, len(signal))

	for off := 0; off < len(signal); off += frames {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		fillBlock(outBuf, signal, off)

		if err := stream.Write(); err != nil {
			return nil, nil, fmt.Errorf("audio: write at sample %d: %w", off, err)
		}

		if err := stream.Read(); err != nil {
			return nil, nil, fmt.Errorf("audio: read at sample %d: %w", off, err)
		}

		splitBlock(inBuf, mic, ref, off)
	}

	return mic, ref, nil
}

func resolve(infos []*portaudio.DeviceInfo, name string, fallback func() (*portaudio.DeviceInfo, error)) (*portaudio.DeviceInfo, error) {
	idx, err := find(convert(infos), name)
	if err != nil {
		return nil, err
	}

	if idx >= 0 {
		return infos[idx], nil
	}

	d, err := fallback()
	if err != nil {
		return nil, fmt.Errorf("audio: default device: %w", err)
	}

	return d, nil
}
