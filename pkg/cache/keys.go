package cache

// SolveKeyOpts lists the solve options that affect the resulting layout.
// Two solves of the same problem with different values here must not share
// a cache entry.
type SolveKeyOpts struct {
	SepX   float64
	SepY   float64
	Radius float64
	Budget int
}

// Keyer derives cache keys for solved layouts.
type Keyer interface {
	// LayoutKey returns the key for a solved layout, given the hash of the
	// problem content and the solve options used.
	LayoutKey(problemHash string, opts SolveKeyOpts) string
}

// DefaultKeyer hashes the problem hash together with the solve options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (k *DefaultKeyer) LayoutKey(problemHash string, opts SolveKeyOpts) string {
	return hashKey("layout", problemHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix. The layout engine uses it to
// namespace keys by serialization schema version, so entries written by an
// older build decode as misses instead of garbage after an upgrade.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys. A nil inner keyer falls
// back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(problemHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(problemHash, opts)
}
