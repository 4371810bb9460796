// Package audio plays an excitation and records the microphone and the
// generator loopback through a sound card.
//
// The input device must deliver two channels: channel 1 is the
// microphone, channel 2 the generator signal looped back from the output.
// The excitation is played mono. Builds without cgo (or with the noaudio
// tag) get a transport that always fails with ErrUnavailable.
package audio

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultFramesPerBuffer is used when a Transport leaves it unset.
const DefaultFramesPerBuffer = 1024

// Errors returned by the transport.
var (
	ErrUnavailable = errors.New("audio: audio backend not available in this build")
	ErrNoDevice    = errors.New("audio: no matching device")
)

// Device describes one audio device.
type Device struct {
	Index             int
	Name              string
	HostAPI           string
	MaxInputChannels  int
	MaxOutputChannels int
	DefaultSampleRate float64
}

// Transport plays and records through the named devices. Empty names
// select the host defaults.
type Transport struct {
	SampleRate      float64
	Input           string
	Output          string
	FramesPerBuffer int
}

func (t *Transport) frames() int {
	if t.FramesPerBuffer > 0 {
		return t.FramesPerBuffer
	}

	return DefaultFramesPerBuffer
}

// Inputs returns the devices with at least two input channels.
func Inputs(devices []Device) []Device {
	return filter(devices, func(d Device) bool { return d.MaxInputChannels >= 2 })
}

// Outputs returns the devices with at least one output channel.
func Outputs(devices []Device) []Device {
	return filter(devices, func(d Device) bool { return d.MaxOutputChannels >= 1 })
}

func filter(devices []Device, keep func(Device) bool) []Device {
	var out []Device

	for _, d := range devices {
		if keep(d) {
			out = append(out, d)
		}
	}

	return out
}

// find returns the index of the device named name (case-insensitive),
// or -1 for an empty name.
func find(devices []Device, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1, nil
	}

	for _, d := range devices {
		if strings.EqualFold(d.Name, name) {
			return d.Index, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrNoDevice, name)
}

// fillBlock copies the block of signal starting at off into out as
// float32, zero-filling past the end.
func fillBlock(out []float32, signal []float64, off int) {
	for i := range out {
		if j := off + i; j < len(signal) {
			out[i] = float32(signal[j])
		} else {
			out[i] = 0
		}
	}
}

// splitBlock de-interleaves a stereo block into mic and ref starting at
// off, stopping at the end of the destination buffers.
func splitBlock(in []float32, mic, ref []float64, off int) {
	for i := 0; 2*i+1 < len(in) && off+i < len(mic); i++ {
		mic[off+i] = float64(in[2*i])
		ref[off+i] = float64(in[2*i+1])
	}
}
