package cmap

// Options configures a Map1/Map2/Map3 at construction time, the same
// shape as container.Options: zero values mean "use the default".
type Options struct {
	// ChunkSize is the element count per chunk for the underlying dart
	// and embedding columns. Zero means container.ChunkSize (4096).
	ChunkSize int
}

// SetDefaults fills any zero-valued field with its default.
func (o *Options) SetDefaults() {
	// ChunkSize's default lives in container.Options.SetDefaults;
	// zero is passed through unchanged and resolved there.
}
