package mls

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-alpha/measure/measerr"
)

// Supported order range.
const (
	MinOrder = 1
	MaxOrder = 24
)

// Errors returned by mls functions.
var (
	ErrOrder  = errors.New("mls: unsupported sequence order")
	ErrPeriod = errors.New("mls: response length does not match sequence period")
)

// taps lists primitive feedback taps (1-based register stages) per order.
var taps = map[int][]uint{
	2:  {2, 1},
	3:  {3, 2},
	4:  {4, 3},
	5:  {5, 3},
	6:  {6, 5},
	7:  {7, 6},
	8:  {8, 6, 5, 4},
	9:  {9, 5},
	10: {10, 7},
	11: {11, 9},
	12: {12, 6, 4, 1},
	13: {13, 4, 3, 1},
	14: {14, 5, 3, 1},
	15: {15, 14},
	16: {16, 15, 13, 4},
	17: {17, 14},
	18: {18, 11},
	19: {19, 6, 2, 1},
	20: {20, 17},
	21: {21, 19},
	22: {22, 21},
	23: {23, 18},
	24: {24, 23, 22, 17},
}

var (
	tableMu sync.Mutex
	table   = map[int][]uint8{}
)

// Length returns the sequence length 2^order - 1.
func Length(order int) int {
	return 1<<order - 1
}

// Generate returns the maximum-length sequence of the given order as 0/1
// values. The sequence is identical on every call; the returned slice is a
// copy the caller may modify.
//
// Order 1 yields the degenerate single-sample sequence {0}, which maps to
// a unit impulse in bipolar form.
func Generate(order int) ([]uint8, error) {
	if order < MinOrder || order > MaxOrder {
		return nil, measerr.Wrap(measerr.ErrConfiguration,
			fmt.Errorf("%w: %d (supported %d..%d)", ErrOrder, order, MinOrder, MaxOrder))
	}

	tableMu.Lock()
	seq, ok := table[order]
	if !ok {
		seq = shiftRegister(order)
		table[order] = seq
	}
	tableMu.Unlock()

	out := make([]uint8, len(seq))
	copy(out, seq)

	return out, nil
}

// shiftRegister runs a Fibonacci LFSR seeded with all ones for one full
// period. Stage t is held in bit t-1; the output is the last stage.
func shiftRegister(order int) []uint8 {
	if order == 1 {
		return []uint8{0}
	}

	var mask uint32 = 1<<order - 1

	state := mask
	out := make([]uint8, Length(order))

	for i := range out {
		out[i] = uint8(state >> (order - 1) & 1)

		var fb uint32
		for _, t := range taps[order] {
			fb ^= state >> (t - 1) & 1
		}

		state = (state<<1 | fb) & mask
	}

	return out
}
