// Package biquad provides the second-order IIR filter runtime used by the
// excitation and analysis stages.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections are cascaded via
// [Cascade] for higher-order Butterworth designs, and [FiltFilt] runs a
// cascade forward and backward for zero-phase filtering.
//
// Coefficient design lives in dsp/filter/design/pass.
package biquad
