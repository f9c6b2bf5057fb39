// Package infrastructure provides core service initialization for application
// startup. It assembles the common dependencies (logging, database, audit
// archive) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aurora-platform/justice/internal/audit"
	"github.com/aurora-platform/justice/internal/config"
	"github.com/aurora-platform/justice/pkg/database"
	"github.com/aurora-platform/justice/pkg/lifecycle"
	"github.com/aurora-platform/justice/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Archive   *audit.Archiver
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	archive := audit.Disabled(logger)
	if cfg.Audit.Enabled() {
		store, err := storage.New(&cfg.Audit, logger)
		if err != nil {
			return nil, fmt.Errorf("audit storage init failed: %w", err)
		}
		archive = audit.New(store, logger)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Archive:   archive,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Archive.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("audit archive start failed: %w", err)
	}
	return nil
}
