package arena

import "sync"

const (
	defaultInitialCapacity   = 256
	defaultMaxPooledCapacity = 1 << 20
)

// PoolConfig configures a Pool. Zero fields take defaults.
type PoolConfig struct {
	// InitialCapacity is the capacity of arenas the pool creates.
	InitialCapacity int
	// MaxPooledCapacity rejects arenas that grew past it on Put.
	MaxPooledCapacity int
}

// Pool recycles arenas between encode passes.
type Pool struct {
	pool   sync.Pool
	maxCap int
}

// NewPool creates a pool.
func NewPool(cfg PoolConfig) *Pool {
	if cfg.InitialCapacity <= 0 {
		cfg.InitialCapacity = defaultInitialCapacity
	}
	if cfg.MaxPooledCapacity <= 0 {
		cfg.MaxPooledCapacity = defaultMaxPooledCapacity
	}
	if cfg.MaxPooledCapacity < cfg.InitialCapacity {
		cfg.MaxPooledCapacity = cfg.InitialCapacity
	}
	initial := cfg.InitialCapacity
	p := &Pool{maxCap: cfg.MaxPooledCapacity}
	p.pool.New = func() any {
		a, err := WithCapacity(initial)
		if err != nil {
			return New()
		}
		return a
	}
	return p
}

// Get returns an empty arena.
func (p *Pool) Get() *Arena {
	a := p.pool.Get().(*Arena)
	a.Reset()
	return a
}

// Put returns a to the pool. Released or oversized arenas are dropped.
func (p *Pool) Put(a *Arena) {
	if a == nil || a.Cap() == 0 || a.Cap() > p.maxCap {
		return
	}
	a.Reset()
	p.pool.Put(a)
}
