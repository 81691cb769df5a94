// Package scorecard glues the pure scoring engine to the persistence
// boundary, the seed catalog and the score cache. All domain arithmetic
// lives in internal/scoring; this service only resolves which catalog to
// score against and where the results are cached.
package scorecard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opsgrade/obs-scorecard/internal/cache"
	"github.com/opsgrade/obs-scorecard/internal/catalog"
	"github.com/opsgrade/obs-scorecard/internal/models"
	"github.com/opsgrade/obs-scorecard/internal/scoring"
	"github.com/opsgrade/obs-scorecard/internal/storage"
)

// Common errors
var (
	ErrSystemNotFound   = errors.New("system not found")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Service exposes the scorecard operations used by the API and the refresh
// worker.
type Service struct {
	name   string // logical deployment name the snapshot is keyed by
	repo   storage.Repository
	scores *cache.ScoreCache // optional; nil disables caching
	seed   *catalog.Loader
}

// NewService creates a scorecard service
func NewService(name string, repo storage.Repository, scores *cache.ScoreCache, seed *catalog.Loader) *Service {
	return &Service{
		name:   name,
		repo:   repo,
		scores: scores,
		seed:   seed,
	}
}

// Snapshot returns the stored document, or nil if never saved
func (s *Service) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	return s.repo.GetSnapshot(ctx, s.name)
}

// SaveSnapshot fully replaces the stored document. Systems and tools without
// an id get one minted, lastUpdated is stamped, and all cached scores for
// the deployment are invalidated.
func (s *Service) SaveSnapshot(ctx context.Context, snap *models.Snapshot) (*models.Snapshot, error) {
	for _, sys := range snap.Systems {
		if sys != nil && sys.ID == "" {
			sys.ID = uuid.New().String()[:12]
		}
	}
	for _, tool := range snap.Tools {
		if tool != nil && tool.ID == "" {
			tool.ID = uuid.New().String()[:12]
		}
	}
	snap.LastUpdated = time.Now().UnixMilli()

	if err := s.repo.SaveSnapshot(ctx, s.name, snap); err != nil {
		return nil, err
	}

	if s.scores != nil {
		if err := s.scores.Invalidate(ctx, s.name); err != nil {
			// Stale entries expire via TTL and are keyed by the old
			// revision anyway, so this is not fatal.
			return snap, nil
		}
	}

	return snap, nil
}

// Evaluate scores a system. Tools are taken from the request when supplied,
// else from the stored snapshot, else from the seed catalog. This is the
// ad-hoc path: nothing is cached.
func (s *Service) Evaluate(ctx context.Context, req models.EvaluateRequest) (*models.ScoreBreakdown, error) {
	if req.System == nil {
		return nil, fmt.Errorf("system is required")
	}

	if req.Tools != nil {
		return scoring.Evaluate(req.System, catalog.NewIndex(req.Tools)), nil
	}

	ix, _, err := s.effectiveIndex(ctx)
	if err != nil {
		return nil, err
	}
	return scoring.Evaluate(req.System, ix), nil
}

// SystemScore returns the breakdown for one stored system, served from the
// cache when the snapshot revision matches.
func (s *Service) SystemScore(ctx context.Context, systemID string) (*models.SystemScore, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrSnapshotNotFound
	}

	sys := snap.SystemByID(systemID)
	if sys == nil {
		return nil, ErrSystemNotFound
	}

	if s.scores != nil {
		if breakdown, ok := s.scores.Get(ctx, s.name, snap.LastUpdated, systemID); ok {
			return &models.SystemScore{System: sys, Score: breakdown}, nil
		}
	}

	breakdown := scoring.Evaluate(sys, s.indexFor(snap))

	if s.scores != nil {
		// Soft failure: the computed result is still correct without a cache.
		_ = s.scores.Put(ctx, s.name, snap.LastUpdated, systemID, breakdown)
	}

	return &models.SystemScore{System: sys, Score: breakdown}, nil
}

// ListScores evaluates every stored system and warms the cache
func (s *Service) ListScores(ctx context.Context) ([]*models.SystemScore, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return []*models.SystemScore{}, nil
	}

	ix := s.indexFor(snap)
	result := make([]*models.SystemScore, 0, len(snap.Systems))

	for _, sys := range snap.Systems {
		if sys == nil {
			continue
		}
		breakdown := scoring.Evaluate(sys, ix)
		if s.scores != nil {
			_ = s.scores.Put(ctx, s.name, snap.LastUpdated, sys.ID, breakdown)
		}
		result = append(result, &models.SystemScore{System: sys, Score: breakdown})
	}

	return result, nil
}

// Tools returns the effective tool catalog: the snapshot's tools when a
// snapshot with tools exists, otherwise the seed catalog.
func (s *Service) Tools(ctx context.Context) ([]*models.Tool, error) {
	_, tools, err := s.effectiveIndex(ctx)
	return tools, err
}

// ToolByID looks up a tool in the effective catalog
func (s *Service) ToolByID(ctx context.Context, id string) (*models.Tool, error) {
	ix, _, err := s.effectiveIndex(ctx)
	if err != nil {
		return nil, err
	}
	tool, _ := ix.ToolByID(id)
	return tool, nil
}

// Ping checks the service's collaborators
func (s *Service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	if s.scores != nil {
		if err := s.scores.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}
	return nil
}

// Name returns the logical deployment name
func (s *Service) Name() string {
	return s.name
}

func (s *Service) indexFor(snap *models.Snapshot) *catalog.Index {
	if snap != nil && len(snap.Tools) > 0 {
		return catalog.NewIndex(snap.Tools)
	}
	if s.seed != nil {
		return catalog.NewIndex(s.seed.List())
	}
	return catalog.NewIndex(nil)
}

func (s *Service) effectiveIndex(ctx context.Context) (*catalog.Index, []*models.Tool, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	if snap != nil && len(snap.Tools) > 0 {
		return catalog.NewIndex(snap.Tools), snap.Tools, nil
	}
	var tools []*models.Tool
	if s.seed != nil {
		tools = s.seed.List()
	}
	return catalog.NewIndex(tools), tools, nil
}
