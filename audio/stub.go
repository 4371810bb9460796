//go:build !cgo || noaudio

package audio

import "context"

// Devices reports ErrUnavailable.
func Devices() ([]Device, error) {
	return nil, ErrUnavailable
}

// PlaybackAndRecord reports ErrUnavailable.
func (t *Transport) PlaybackAndRecord(context.Context, []float64) ([]float64, []float64, error) {
	return nil, nil, ErrUnavailable
}
