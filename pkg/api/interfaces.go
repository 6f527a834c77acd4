package api

import (
	"context"
	"log/slog"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/cm3d2save/pkg/codec"
	"github.com/ssargent/cm3d2save/pkg/storage"
)

// Archive is the part of the snapshot store the service exposes
type Archive interface {
	List() ([]storage.Entry, int, error)
	Read(id ksuid.KSUID) (*codec.Snapshot, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves until ctx is cancelled. archive may be nil.
	StartServer(ctx context.Context, config ServerConfig, archive Archive, logger *slog.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
