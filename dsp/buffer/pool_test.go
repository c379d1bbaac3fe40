package buffer

import "testing"

func TestPoolGetReturnsZeroed(t *testing.T) {
	p := NewPool()

	b := p.Get(8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}

	for i, v := range b.Data() {
		if v != 0 {
			t.Fatalf("Data()[%d] = %v, want 0", i, v)
		}
	}

	p.Put(b)
}

func TestPoolReuseIsZeroed(t *testing.T) {
	p := NewPool()

	b := p.Get(4)
	b.Data()[0] = 42
	b.Data()[1] = 43i
	p.Put(b)

	b2 := p.Get(4)
	for i, v := range b2.Data() {
		if v != 0 {
			t.Fatalf("reused Data()[%d] = %v, want 0", i, v)
		}
	}

	p.Put(b2)
}

func TestPoolGetRegrowsAfterShrink(t *testing.T) {
	p := NewPool()

	b := p.Get(2)
	p.Put(b)

	b = p.Get(16)
	if b.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", b.Len())
	}
	p.Put(b)
}

func TestPoolPutNilSafe(_ *testing.T) {
	p := NewPool()
	p.Put(nil) // must not panic
}
