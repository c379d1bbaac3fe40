// Package spectrum provides per-bin spectral processing over FFT output.
//
// The package intentionally does not implement FFT itself. It operates on
// complex spectrum bins produced by external FFT backends and provides the
// bin-to-frequency mapping, the band filter, the dB threshold gate, and
// band-energy helpers used to re-analyse rendered signals.
//
// Every function here is pure and total over finite input: none of them
// return errors and none of them mutate their arguments.
package spectrum
