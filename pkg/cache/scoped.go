package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when one shared Redis instance serves several instruments or
// observing campaigns that must not see each other's entries.
//
// Example usage:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "gris:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ScaleKey generates a prefixed key for cached scale analysis.
func (k *ScopedKeyer) ScaleKey(dataHash string, opts ScaleKeyOpts) string {
	return k.prefix + k.inner.ScaleKey(dataHash, opts)
}

// MetadataKey generates a prefixed key for cached viewer metadata.
func (k *ScopedKeyer) MetadataKey(dataHash string, opts MetadataKeyOpts) string {
	return k.prefix + k.inner.MetadataKey(dataHash, opts)
}
