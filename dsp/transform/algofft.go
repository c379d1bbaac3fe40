package transform

import (
	"fmt"
	"sync"

	algofft "github.com/cwbudde/algo-fft"
)

// AlgoFFTTransform runs transforms on algo-fft plans. Plans hold scratch
// state, so each size keeps a pool and a plan is used by one call at a time.
type AlgoFFTTransform struct {
	mu    sync.Mutex
	plans map[int]*sync.Pool
}

// NewAlgoFFT returns an algo-fft backed Transform.
func NewAlgoFFT() *AlgoFFTTransform {
	return &AlgoFFTTransform{plans: make(map[int]*sync.Pool)}
}

func (a *AlgoFFTTransform) pool(n int) *sync.Pool {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.plans[n]
	if !ok {
		p = &sync.Pool{}
		a.plans[n] = p
	}
	return p
}

func (a *AlgoFFTTransform) acquire(n int) (*algofft.Plan[complex128], *sync.Pool, error) {
	p := a.pool(n)
	if plan, ok := p.Get().(*algofft.Plan[complex128]); ok {
		return plan, p, nil
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, nil, fmt.Errorf("transform: failed to create FFT plan: %w", err)
	}
	return plan, p, nil
}

// Forward computes the unscaled forward DFT of src into dst.
func (a *AlgoFFTTransform) Forward(dst, src []complex128) error {
	if err := Check(dst, src); err != nil {
		return err
	}
	plan, p, err := a.acquire(len(src))
	if err != nil {
		return err
	}
	defer p.Put(plan)

	if err := plan.Forward(dst, src); err != nil {
		return fmt.Errorf("transform: forward FFT failed: %w", err)
	}
	return nil
}

// Inverse computes the 1/n-normalised inverse DFT of src into dst.
func (a *AlgoFFTTransform) Inverse(dst, src []complex128) error {
	if err := Check(dst, src); err != nil {
		return err
	}
	plan, p, err := a.acquire(len(src))
	if err != nil {
		return err
	}
	defer p.Put(plan)

	if err := plan.Inverse(dst, src); err != nil {
		return fmt.Errorf("transform: inverse FFT failed: %w", err)
	}
	return nil
}
