package cache

// ScopedKeyer prepends a fixed prefix to every key of an inner Keyer. The
// CLI scopes keys by release so artifacts rendered by an older build are
// never served after an upgrade.
//
//	keyer := NewScopedKeyer(nil, buildinfo.CacheScope())
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a Keyer prefixing inner's keys. A nil inner uses
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ImageKey(opts ImageKeyOpts) string { return k.prefix + k.inner.ImageKey(opts) }

func (k *ScopedKeyer) TreeKey(opts TreeKeyOpts) string { return k.prefix + k.inner.TreeKey(opts) }
