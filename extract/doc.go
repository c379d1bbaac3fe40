// Package extract renders selected frequency bands of a recording into
// separate mono WAV files.
//
// A job decodes the source, downmixes it to one channel and truncates it to
// the largest power-of-two length. It then runs a single forward transform
// and renders one or more passes from that shared spectrum. Each pass copies
// the spectrum, applies the optional dB gate and the band filter, and
// inverse-transforms. The result is scaled by 2 and written to
// {outputDir}/{base}_{label}.wav.
//
// In ModeSingle all ranges are rendered together as a union under the label
// "extract". In ModeMulti each range is rendered by its own goroutine under
// the label "{low}-{high}". A failing pass never stops its siblings.
package extract
