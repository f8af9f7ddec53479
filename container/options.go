package container

// Options configures a Container at construction time: a plain struct
// with zero values meaning "use the default", filled in by SetDefaults
// before being read.
type Options struct {
	// ChunkSize is the element count per chunk for every column added
	// to the container. Zero means ChunkSize (4096).
	ChunkSize int
}

// SetDefaults fills any zero-valued field with its default.
func (o *Options) SetDefaults() {
	if o.ChunkSize == 0 {
		o.ChunkSize = ChunkSize
	}
}

// NewWithOptions creates an empty container configured by opts.
// Unset fields are filled in via SetDefaults before use.
func NewWithOptions(opts Options) *Container {
	opts.SetDefaults()
	return NewWithChunkSize(opts.ChunkSize)
}
