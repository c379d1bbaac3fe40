package buffer

import "sync"

// Pool provides sync.Pool-based Bins reuse so concurrent render passes do
// not each allocate a full spectrum.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Bins{}
			},
		},
	}
}

// Get returns Bins with the requested length. The bins are zeroed.
// Callers must return them via Put when done.
func (p *Pool) Get(length int) *Bins {
	b := p.pool.Get().(*Bins)
	b.Resize(length)
	b.Zero()
	return b
}

// Put returns Bins to the pool for reuse.
// The caller must not use the bins after calling Put.
func (p *Pool) Put(b *Bins) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
