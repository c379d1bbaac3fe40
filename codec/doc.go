// Package codec decodes WAV and FLAC recordings into planar float samples and
// encodes mono signals as WAV.
//
// Decoded samples are normalised to [-1, 1) by the full-scale value of the
// source bit depth. Float WAV input is passed through unscaled.
package codec
