// Package mls generates maximum-length sequences and recovers impulse
// responses from their periodic steady-state response.
//
// A maximum-length sequence (MLS) of order n is the 2^n-1 sample output
// of an n-stage linear-feedback shift register with primitive feedback
// taps. Mapped to bipolar form (0 -> +1, 1 -> -1) its circular
// autocorrelation is L at lag zero and -1 everywhere else, so correlating
// one period of a system's steady-state response with the sequence yields
// the system's periodic impulse response.
//
// The inverse-repeat sequence (IRS) appends a copy of the sequence and
// negates every odd-indexed sample. The resulting 2L period cancels even
// order distortion products in the recovered response.
//
// # Usage
//
//	seq, _ := mls.Generate(15)
//	excitation := mls.Bipolar(seq)
//	// ... play reps+1 periods, average the last reps periods ...
//	h, _ := mls.Recover(period, 15)
package mls
