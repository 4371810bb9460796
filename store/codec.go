package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"
)

// errCorrupt reports a blob that does not hold whole float64 samples.
var errCorrupt = errors.New("store: corrupt sample blob")

// encodeSamples serializes samples as little-endian float64 and
// compresses them with zlib at maximum compression.
func encodeSamples(samples []float64) ([]byte, error) {
	raw := make([]byte, 8*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
	}

	var buf bytes.Buffer

	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("store: zlib writer: %w", err)
	}

	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("store: compress samples: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("store: compress samples: %w", err)
	}

	return buf.Bytes(), nil
}

func decodeSamples(blob []byte) ([]float64, error) {
	if len(blob) == 0 {
		return nil, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("store: zlib reader: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("store: decompress samples: %w", err)
	}

	if len(raw)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", errCorrupt, len(raw))
	}

	out := make([]float64, len(raw)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}

	return out, nil
}
