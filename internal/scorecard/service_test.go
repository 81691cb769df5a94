package scorecard

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsgrade/obs-scorecard/internal/catalog"
	"github.com/opsgrade/obs-scorecard/internal/models"
)

// fakeRepo is an in-memory Repository for tests
type fakeRepo struct {
	mu        sync.Mutex
	snapshots map[string]*models.Snapshot
	clients   map[string]*models.ApiClient
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		snapshots: make(map[string]*models.Snapshot),
		clients:   make(map[string]*models.ApiClient),
	}
}

func (f *fakeRepo) GetSnapshot(ctx context.Context, name string) (*models.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshots[name], nil
}

func (f *fakeRepo) SaveSnapshot(ctx context.Context, name string, snap *models.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots[name] = snap
	return nil
}

func (f *fakeRepo) GetClientByApiKey(ctx context.Context, apiKey string) (*models.ApiClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clients[apiKey], nil
}

func (f *fakeRepo) UpdateClientLastUsed(ctx context.Context, apiKey string) error { return nil }
func (f *fakeRepo) Ping(ctx context.Context) error                               { return nil }
func (f *fakeRepo) Close() error                                                 { return nil }

func seedLoader() *catalog.Loader {
	loader := catalog.NewLoader()
	loader.Add(&models.Tool{
		ID:                  "zabbix",
		Name:                "Zabbix",
		DefaultCapabilities: []models.Capability{models.CapabilityHost},
		Scenarios: []models.Scenario{
			{ID: "zabbix-cpu", Category: models.CapabilityHost, Name: "CPU utilization"},
		},
	})
	return loader
}

func TestSaveSnapshotMintsIDsAndStamps(t *testing.T) {
	svc := NewService("default", newFakeRepo(), nil, seedLoader())

	saved, err := svc.SaveSnapshot(context.Background(), &models.Snapshot{
		Systems: []*models.System{
			{Name: "payments"},
			{ID: "fixed-id", Name: "checkout"},
		},
		Tools: []*models.Tool{{Name: "Custom Tool"}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.Systems[0].ID)
	assert.Equal(t, "fixed-id", saved.Systems[1].ID)
	assert.NotEmpty(t, saved.Tools[0].ID)
	assert.Greater(t, saved.LastUpdated, int64(0))

	// The save fully replaces the stored document
	stored, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, stored)
}

func TestEvaluateUsesSuppliedTools(t *testing.T) {
	svc := NewService("default", newFakeRepo(), nil, nil)

	tool := &models.Tool{
		ID: "apm",
		Scenarios: []models.Scenario{
			{ID: "apm-a", Category: models.CapabilityTrans},
		},
	}
	sys := &models.System{
		SelectedToolIDs:    []string{"apm"},
		ToolCapabilities:   map[string][]models.Capability{"apm": {models.CapabilityTrans}},
		CheckedScenarioIDs: []string{"apm-a"},
		ServerCoverage:     models.ServerCoverageFull,
	}

	b, err := svc.Evaluate(context.Background(), models.EvaluateRequest{System: sys, Tools: []*models.Tool{tool}})
	require.NoError(t, err)
	assert.Equal(t, models.TierLow, b.CoverageTier)
	assert.Len(t, b.MissingMandatory, 4) // trans covered, rest missing
}

func TestEvaluateFallsBackToSeedCatalog(t *testing.T) {
	svc := NewService("default", newFakeRepo(), nil, seedLoader())

	sys := &models.System{
		SelectedToolIDs:    []string{"zabbix"},
		ToolCapabilities:   map[string][]models.Capability{"zabbix": {models.CapabilityHost}},
		CheckedScenarioIDs: []string{"zabbix-cpu"},
	}

	b, err := svc.Evaluate(context.Background(), models.EvaluateRequest{System: sys})
	require.NoError(t, err)
	// zabbix resolves via the seed catalog: 1/1 scenarios checked gives a
	// full standardization term; coverage bottoms out at 0 with four
	// mandatory capabilities missing.
	assert.Equal(t, 10.0, b.Part1)
	assert.NotContains(t, b.MissingMandatory, models.CapabilityHost)
}

func TestEvaluateRequiresSystem(t *testing.T) {
	svc := NewService("default", newFakeRepo(), nil, nil)

	_, err := svc.Evaluate(context.Background(), models.EvaluateRequest{})
	assert.Error(t, err)
}

func TestSystemScoreErrors(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService("default", repo, nil, nil)

	_, err := svc.SystemScore(context.Background(), "sys-1")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	repo.snapshots["default"] = &models.Snapshot{
		Systems: []*models.System{{ID: "other"}},
	}

	_, err = svc.SystemScore(context.Background(), "sys-1")
	assert.ErrorIs(t, err, ErrSystemNotFound)
}

func TestSystemScoreUsesSnapshotTools(t *testing.T) {
	repo := newFakeRepo()
	repo.snapshots["default"] = &models.Snapshot{
		LastUpdated: 42,
		Systems: []*models.System{{
			ID:                 "sys-1",
			SelectedToolIDs:    []string{"snap-tool"},
			ToolCapabilities:   map[string][]models.Capability{"snap-tool": models.MandatoryCapabilities},
			CheckedScenarioIDs: []string{"st-1"},
			ServerCoverage:     models.ServerCoverageFull,
			OpsLeadConfigured:  true,
			DataMonitor:        models.DataMonitorFull,
		}},
		Tools: []*models.Tool{{
			ID: "snap-tool",
			Scenarios: []models.Scenario{
				{ID: "st-1", Category: models.CapabilityHost},
			},
		}},
	}
	svc := NewService("default", repo, nil, seedLoader())

	score, err := svc.SystemScore(context.Background(), "sys-1")
	require.NoError(t, err)
	assert.Equal(t, models.TierFull, score.Score.CoverageTier)
	assert.Equal(t, 10.0, score.Score.Part3)
}

func TestListScoresEmptyWithoutSnapshot(t *testing.T) {
	svc := NewService("default", newFakeRepo(), nil, nil)

	scores, err := svc.ListScores(context.Background())
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestToolsPreferSnapshotOverSeed(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService("default", repo, nil, seedLoader())

	// No snapshot: seed catalog serves
	tools, err := svc.Tools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "zabbix", tools[0].ID)

	// Snapshot with tools wins
	repo.snapshots["default"] = &models.Snapshot{
		Tools: []*models.Tool{{ID: "custom", Name: "Custom"}},
	}
	tools, err = svc.Tools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "custom", tools[0].ID)
}
