// Package pass designs low-pass and high-pass biquad cascades.
//
// Designs return []biquad.Coefficients ready for biquad.NewCascade,
// biquad.Filter or biquad.FiltFilt. Cutoffs are given in Hz against a
// sample rate; invalid parameters yield nil rather than a partial design.
package pass
