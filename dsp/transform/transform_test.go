package transform

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"slices"
	"sync"
	"testing"
)

func naiveDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := range n {
		var sum complex128
		for t, v := range x {
			angle := -2 * math.Pi * float64(k*t) / float64(n)
			sum += v * cmplx.Rect(1, angle)
		}
		out[k] = sum
	}
	return out
}

func randomSequence(seed int64, n int) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}
	return out
}

func requireClose(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := cmplx.Abs(got[i] - want[i]); d > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
		}
	}
}

func allBackends(t *testing.T) map[string]Transform {
	t.Helper()
	out := make(map[string]Transform)
	for _, name := range Names() {
		tr, err := New(name)
		if err != nil {
			t.Fatalf("New(%q) error: %v", name, err)
		}
		out[name] = tr
	}
	return out
}

func TestNames(t *testing.T) {
	want := []string{AlgoFFT, GoDSP, Gonum}
	slices.Sort(want)
	if got := Names(); !slices.Equal(got, want) {
		t.Fatalf("Names()=%v want=%v", got, want)
	}
}

func TestNewDefaultAndUnknown(t *testing.T) {
	tr, err := New("")
	if err != nil {
		t.Fatalf("New(\"\") error: %v", err)
	}
	if _, ok := tr.(*AlgoFFTTransform); !ok {
		t.Fatalf("default backend is %T, want *AlgoFFTTransform", tr)
	}

	if _, err := New(" GoDSP "); err != nil {
		t.Fatalf("New is expected to ignore case and spaces: %v", err)
	}

	if _, err := New("fftw"); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("New(fftw) error=%v want ErrUnknownBackend", err)
	}
}

func TestForwardMatchesNaiveDFT(t *testing.T) {
	for name, tr := range allBackends(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{8, 64, 256} {
				src := randomSequence(int64(n), n)
				dst := make([]complex128, n)
				if err := tr.Forward(dst, src); err != nil {
					t.Fatalf("Forward(n=%d) error: %v", n, err)
				}
				requireClose(t, dst, naiveDFT(src), 1e-9)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for name, tr := range allBackends(t) {
		t.Run(name, func(t *testing.T) {
			n := 4096
			src := randomSequence(7, n)
			freq := make([]complex128, n)
			back := make([]complex128, n)

			if err := tr.Forward(freq, src); err != nil {
				t.Fatalf("Forward error: %v", err)
			}
			if err := tr.Inverse(back, freq); err != nil {
				t.Fatalf("Inverse error: %v", err)
			}
			requireClose(t, back, src, 1e-10)
		})
	}
}

func TestBackendsAgree(t *testing.T) {
	n := 1024
	src := randomSequence(99, n)
	var reference []complex128

	for _, name := range Names() {
		tr, _ := New(name)
		dst := make([]complex128, n)
		if err := tr.Forward(dst, src); err != nil {
			t.Fatalf("%s Forward error: %v", name, err)
		}
		if reference == nil {
			reference = dst
			continue
		}
		requireClose(t, dst, reference, 1e-8)
	}
}

func TestCheckErrors(t *testing.T) {
	for name, tr := range allBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := tr.Forward(make([]complex128, 6), make([]complex128, 6)); !errors.Is(err, ErrNotPowerOfTwo) {
				t.Fatalf("Forward(6) error=%v want ErrNotPowerOfTwo", err)
			}
			if err := tr.Inverse(make([]complex128, 0), make([]complex128, 0)); !errors.Is(err, ErrNotPowerOfTwo) {
				t.Fatalf("Inverse(0) error=%v want ErrNotPowerOfTwo", err)
			}
			if err := tr.Inverse(make([]complex128, 4), make([]complex128, 8)); !errors.Is(err, ErrLengthMismatch) {
				t.Fatalf("Inverse(4, 8) error=%v want ErrLengthMismatch", err)
			}
		})
	}
}

func TestAlgoFFTConcurrentUse(t *testing.T) {
	tr := NewAlgoFFT()
	n := 2048
	src := randomSequence(3, n)
	want := make([]complex128, n)
	if err := tr.Forward(want, src); err != nil {
		t.Fatalf("Forward error: %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	outs := make([][]complex128, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outs[i] = make([]complex128, n)
			errs[i] = tr.Forward(outs[i], src)
		}()
	}
	wg.Wait()

	for i := range errs {
		if errs[i] != nil {
			t.Fatalf("goroutine %d error: %v", i, errs[i])
		}
		requireClose(t, outs[i], want, 1e-12)
	}
}
