// Package cepstrum deconvolves the measurement chain from a material's
// response and derives its absorption coefficient.
//
// The power cepstrum c(x) = IFFT(log|FFT(x, N)|^2) turns convolution into
// addition, so subtracting the generator cepstrum from the microphone
// cepstrum cancels the loudspeaker, converters and the excitation itself.
// What remains around the first reflection is the material's impulse
// response, isolated by a lifter (cepstral window):
//
//	one sided:  1 1 1 1 1 1 1 1 \_          (falling Hann half)
//	two sided:  _/ 1 1 1 1 1 1 1 \_         (rising and falling halves)
//
// The absorption coefficient follows as alpha = 1 - |FFT(h, N)|^2. It is
// deliberately not clipped to [0, 1]: values outside that range point at
// a mis-synchronized recording or an unsuitable lifter.
//
// [Analyze] runs the full chain, optionally decimating the responses
// first with a zero-phase anti-aliasing filter so the impulse position is
// not skewed.
package cepstrum
