package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants (for example
// serve instances sharing one redis) keep separate namespaces.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "serve:plasmids:")
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

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(recordHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(recordHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
