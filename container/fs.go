package container

import (
	"fmt"

	"github.com/go-git/go-billy/v5"

	"github.com/cgogn-go/cmaps/internal/cmaplog"
)

// SaveToFS writes the container to path on fs. Production code passes
// an osfs.Filesystem; tests pass a memfs.Filesystem so container
// persistence round-trips without touching disk.
func (c *Container) SaveToFS(fs billy.Filesystem, path string) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("container: create %q: %w", path, err)
	}
	defer f.Close()
	if err := c.Save(f); err != nil {
		cmaplog.SaveFailed(path, err)
		return err
	}
	return f.Close()
}

// LoadFromFS restores a container previously written by SaveToFS.
// Columns must already be registered (via AddAttribute/AddBoolAttribute)
// before calling LoadFromFS, exactly as for Load.
func (c *Container) LoadFromFS(fs billy.Filesystem, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("container: open %q: %w", path, err)
	}
	defer f.Close()
	if err := c.Load(f); err != nil {
		cmaplog.LoadFailed(path, err)
		return err
	}
	return nil
}
