// Package di provides dependency injection container
package di

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ssargent/cm3d2save/pkg/api" //nolint:depguard
	"github.com/ssargent/cm3d2save/pkg/config"
	"github.com/ssargent/cm3d2save/pkg/save"
	"github.com/ssargent/cm3d2save/pkg/storage"
)

// Container holds all the dependencies for the application
type Container struct {
	config        *config.Config
	logger        *slog.Logger
	serverFactory api.ServerFactory

	// archive is opened on first use; most commands never touch it.
	archive *storage.SnapshotStore
}

// NewContainer creates a container with the default configuration and an
// info-level logger on stderr
func NewContainer() *Container {
	c := &Container{
		config:        config.DefaultConfig(),
		serverFactory: api.NewServerFactory(),
	}
	c.logger = newLogger(os.Stderr, slog.LevelInfo)
	return c
}

// Configure replaces the configuration and rebuilds the logger from it.
// Log output goes to w.
func (c *Container) Configure(cfg *config.Config, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	c.config = cfg
	c.logger = newLogger(w, level)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// GetConfig returns the active configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the application logger
func (c *Container) GetLogger() *slog.Logger {
	return c.logger
}

// GetCodec returns a save codec using the configured text encoding
func (c *Container) GetCodec() (*save.Codec, error) {
	enc, err := c.config.Encoding()
	if err != nil {
		return nil, err
	}
	return save.NewCodec(save.WithTextEncoding(enc)), nil
}

// GetArchive opens the snapshot archive. It returns nil when archiving is
// disabled in the configuration.
func (c *Container) GetArchive() (*storage.SnapshotStore, error) {
	if !c.config.Archive.Enabled {
		return nil, nil
	}
	if c.archive != nil {
		return c.archive, nil
	}
	if err := os.MkdirAll(c.config.Archive.Dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	store, err := storage.NewSnapshotStore(c.config.Archive.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	c.archive = store
	return store, nil
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// Close releases the archive if it was opened
func (c *Container) Close() error {
	if c.archive == nil {
		return nil
	}
	err := c.archive.Close()
	c.archive = nil
	return err
}
