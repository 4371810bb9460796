package mls

// Bipolar maps a 0/1 sequence to +1/-1 using v -> 1 - 2v.
func Bipolar(seq []uint8) []float64 {
	out := make([]float64, len(seq))
	for i, v := range seq {
		out[i] = 1 - 2*float64(v)
	}

	return out
}

// Unipolar maps a +1/-1 sequence back to 0/1 using b -> (1 - b) / 2.
func Unipolar(bip []float64) []uint8 {
	out := make([]uint8, len(bip))
	for i, b := range bip {
		out[i] = uint8((1 - b) / 2)
	}

	return out
}

// InverseRepeat returns the inverse-repeat form of a bipolar sequence: the
// sequence followed by itself, with every odd-indexed sample negated.
func InverseRepeat(bip []float64) []float64 {
	n := len(bip)
	out := make([]float64, 2*n)

	for i := range out {
		v := bip[i%n]
		if i%2 == 1 {
			v = -v
		}

		out[i] = v
	}

	return out
}
