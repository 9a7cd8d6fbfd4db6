package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a computed layout of a catalog.
	LayoutKey(catalogHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the inputs that change a layout.
type LayoutKeyOpts struct {
	Params any `json:"params"`
}

// ArtifactKeyOpts holds the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Engine string  `json:"engine,omitempty"`
	Canvas any     `json:"canvas,omitempty"`
}

// keyVersion changes whenever the cached layout encoding does.
const keyVersion = 2

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(catalogHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", keyVersion, catalogHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", keyVersion, layoutHash, opts)
}

// ScopedKeyer prepends a fixed prefix to every key of an inner [Keyer].
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "site:misjustice:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, which defaults to [DefaultKeyer] when nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(catalogHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(catalogHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
