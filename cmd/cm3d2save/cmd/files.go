package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ssargent/cm3d2save/pkg/codec"
	"github.com/ssargent/cm3d2save/pkg/di"
)

// sameFile reports whether a and b name the same path once cleaned
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// writeOutput replaces path with data. An existing file is archived first,
// and the new content goes through a temporary file so a failed write
// leaves the old one in place.
func writeOutput(c *di.Container, path string, data []byte) error {
	if err := archiveExisting(c, path); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// archiveExisting copies the current content of path into the archive and
// prunes old copies. Missing files and a disabled archive are not errors.
func archiveExisting(c *di.Container, path string) error {
	old, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	store, err := c.GetArchive()
	if err != nil {
		return err
	}
	if store == nil {
		return nil
	}

	name, err := filepath.Abs(path)
	if err != nil {
		name = path
	}

	// Structured files have no version header; 0 marks them.
	var version int32
	if sc, err := c.GetCodec(); err == nil {
		version, _ = sc.PeekVersion(old)
	}

	id, err := store.Create(codec.NewSnapshot(name, version, old))
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", path, err)
	}
	pruned, err := store.Prune(name, c.GetConfig().Archive.Keep)
	if err != nil {
		return err
	}

	c.GetLogger().Info("archived previous file",
		"path", name,
		"id", id.String(),
		"bytes", len(old),
		"pruned", pruned,
	)
	return nil
}
