package arena

import "testing"

func TestPoolDefaults(t *testing.T) {
	p := NewPool(PoolConfig{})
	a := p.Get()
	if a.Cap() != defaultInitialCapacity {
		t.Errorf("Cap() = %d, want %d", a.Cap(), defaultInitialCapacity)
	}
	if p.maxCap != defaultMaxPooledCapacity {
		t.Errorf("maxCap = %d, want %d", p.maxCap, defaultMaxPooledCapacity)
	}
}

func TestPoolGetIsEmpty(t *testing.T) {
	p := NewPool(PoolConfig{InitialCapacity: 16, MaxPooledCapacity: 64})
	a := p.Get()
	mustWrite(t, a, []byte{1, 2, 3})
	p.Put(a)

	b := p.Get()
	if b.Len() != 0 || b.Cursor() != 0 {
		t.Errorf("pooled arena not reset: len=%d cursor=%d", b.Len(), b.Cursor())
	}
}

func TestPoolRejects(t *testing.T) {
	p := NewPool(PoolConfig{InitialCapacity: 8, MaxPooledCapacity: 4})
	if p.maxCap != 8 {
		t.Errorf("maxCap = %d, want raised to 8", p.maxCap)
	}

	big, _ := WithCapacity(64)
	p.Put(big)
	p.Put(nil)

	released := New()
	released.Release()
	p.Put(released)

	for i := 0; i < 4; i++ {
		if a := p.Get(); a.Cap() == 0 || a.Cap() > p.maxCap {
			t.Errorf("Get() returned a rejected arena with cap %d", a.Cap())
		}
	}
}
