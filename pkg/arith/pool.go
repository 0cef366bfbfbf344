package arith

// maxIdle bounds how many reset systems a pool retains between probes.
const maxIdle = 10

// Pool recycles [System] instances for the short-lived feasibility probes a
// backtracking search performs. All pooled systems share one session cache.
// A pool belongs to a single session and is not safe for concurrent use;
// concurrent sessions must each own their own pool.
type Pool struct {
	cache *Cache
	free  []*System
}

// NewPool returns an empty pool whose systems share the given session cache.
// A nil cache gets a private one.
func NewPool(cache *Cache) *Pool {
	if cache == nil {
		cache = NewCache()
	}
	return &Pool{cache: cache}
}

// Get returns a ready system, reusing a pooled one when available.
func (p *Pool) Get() *System {
	if n := len(p.free); n > 0 {
		s := p.free[n-1]
		p.free = p.free[:n-1]
		return s
	}
	return NewSystem(p.cache)
}

// Put resets a system and returns it to the pool. Systems beyond the
// retention bound are dropped for the collector.
func (p *Pool) Put(s *System) {
	if s == nil {
		return
	}
	s.Reset()
	if len(p.free) < maxIdle {
		p.free = append(p.free, s)
	}
}

// Idle reports how many reset systems the pool currently holds.
func (p *Pool) Idle() int {
	return len(p.free)
}

// Cache returns the session cache shared by pooled systems.
func (p *Pool) Cache() *Cache {
	return p.cache
}
