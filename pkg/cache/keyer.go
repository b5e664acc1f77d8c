package cache

// LayoutKeyOpts are the options that change a static layout.
type LayoutKeyOpts struct {
	Width        float64 `json:"width"`
	GlyphWidth   float64 `json:"glyph_width"`
	InlineLabels bool    `json:"inline_labels"`
}

// ArtifactKeyOpts are the options that change a rendered artefact.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Title   string  `json:"title,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
	NoRuler bool    `json:"no_ruler,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey keys the layout of a record (identified by its hash).
	LayoutKey(recordHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys one output format rendered from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(recordHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", recordHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
