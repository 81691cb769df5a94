package storage

import (
	"context"

	"github.com/opsgrade/obs-scorecard/internal/models"
)

// Repository defines the persistence boundary. The scorecard state is one
// JSON document per logical deployment name; saves replace the whole
// document (last-writer-wins, no merge, no concurrency check).
type Repository interface {
	// Snapshots
	GetSnapshot(ctx context.Context, name string) (*models.Snapshot, error)
	SaveSnapshot(ctx context.Context, name string, snap *models.Snapshot) error

	// API Clients
	GetClientByApiKey(ctx context.Context, apiKey string) (*models.ApiClient, error)
	UpdateClientLastUsed(ctx context.Context, apiKey string) error

	// Health
	Ping(ctx context.Context) error
	Close() error
}
