// Command spectral-extract renders frequency bands of a recording into
// separate mono WAV files.
//
// Usage:
//
//	spectral-extract [flags] <file>
//	spectral-extract [flags] <file> <low> <high> [threshold [outputDir]]
//
// Examples:
//
//	spectral-extract -range 900:1100 -threshold -90 song.wav
//	spectral-extract -mode multi -range 0:500 -range 900:1100 song.flac
//	spectral-extract -format pcm16 -dither tpdf -range 62.5:125 song.wav
//	spectral-extract -config job.json -dry-run song.wav
//	spectral-extract song.wav 900 1100 -60 bands
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
