// Package blob opens the configured blob store.
package blob

import (
	"context"
	"fmt"

	"restaurantcore/internal/blob/core"
	"restaurantcore/internal/infra/blob/fs"
	memorystore "restaurantcore/internal/infra/blob/memory"
	"restaurantcore/internal/infra/blob/s3"
)

type (
	// Driver identifies a blob backend driver.
	Driver = core.Driver
	// PutOptions configures a blob write.
	PutOptions = core.PutOptions
	// SignedURLOptions configures URL pre-signing.
	SignedURLOptions = core.SignedURLOptions
	// Info describes stored blob metadata.
	Info = core.Info
	// Store is the interface for blob storage backends.
	Store = core.Store
)

// Errors shared by every backend.
var (
	ErrUnsupported = core.ErrUnsupported
	ErrNotFound    = core.ErrNotFound
	ErrExists      = core.ErrExists
)

// Config selects and addresses a blob backend.
type Config struct {
	Driver Driver    `mapstructure:"driver"`
	FSRoot string    `mapstructure:"fs_root"`
	S3     s3.Config `mapstructure:"s3"`
}

// Open returns the store named by cfg.Driver. An empty driver selects the
// filesystem rooted at cfg.FSRoot.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", core.DriverFilesystem:
		store, err := fs.New(cfg.FSRoot)
		if err != nil {
			return nil, fmt.Errorf("open filesystem blob store: %w", err)
		}
		return store, nil
	case core.DriverS3:
		store, err := s3.New(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("open s3 blob store: %w", err)
		}
		return store, nil
	case core.DriverMemory:
		return memorystore.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}
