// Package audit archives immutable snapshots of governance and moderation
// records to blob storage for long-term retention. Archiving is best-effort
// and asynchronous: a failed upload is logged and never blocks or rolls back
// the originating operation.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aurora-platform/justice/pkg/lifecycle"
	"github.com/aurora-platform/justice/pkg/storage"
)

const uploadTimeout = 30 * time.Second

// Archiver writes JSON audit snapshots to a blob store.
// A nil store disables archiving entirely.
type Archiver struct {
	store  storage.System
	logger *slog.Logger
}

// New creates an Archiver backed by the given blob storage system.
func New(store storage.System, logger *slog.Logger) *Archiver {
	return &Archiver{
		store:  store,
		logger: logger.With("system", "audit"),
	}
}

// Disabled creates an Archiver that drops every record.
func Disabled(logger *slog.Logger) *Archiver {
	return &Archiver{
		logger: logger.With("system", "audit"),
	}
}

// Enabled reports whether a storage backend is attached.
func (a *Archiver) Enabled() bool {
	return a.store != nil
}

// Start registers the underlying storage system with the lifecycle coordinator.
func (a *Archiver) Start(lc *lifecycle.Coordinator) error {
	if a.store == nil {
		return nil
	}
	return a.store.Start(lc)
}

// Archive serializes record as JSON and uploads it under key in the
// background. The call returns immediately.
func (a *Archiver) Archive(key string, record any) {
	if a.store == nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		a.logger.Error("audit record marshal failed", "key", key, "error", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		defer cancel()

		if err := a.store.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
			a.logger.Error("audit record upload failed", "key", key, "error", err)
			return
		}

		a.logger.Info("audit record archived", "key", key)
	}()
}
