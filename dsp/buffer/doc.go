// Package buffer provides a reusable complex128 bin buffer and pool for
// allocation-friendly spectral processing. Render passes take a private
// working copy of a shared spectrum from a Pool, mutate it in place and
// return it when the pass is done.
package buffer
