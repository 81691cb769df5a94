package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsgrade/obs-scorecard/internal/models"
)

func TestEvaluateDetection(t *testing.T) {
	tests := []struct {
		name     string
		accuracy float64
		rate     float64
		early    int
		want     float64
	}{
		{"perfect with capped bonus", 10, 10, 7, 20},
		{"bonus capped at five", 7, 7, 9, 19},
		{"bonus counts per incident", 10, 7, 2, 19},
		{"no bonus", 3, 3, 0, 6},
		{"zero band", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &models.System{
				AccuracyRate:        tt.accuracy,
				DiscoveryRate:       tt.rate,
				EarlyDetectionCount: tt.early,
			}
			assert.Equal(t, tt.want, EvaluateDetection(sys))
		})
	}
}

func TestEvaluateAlert(t *testing.T) {
	tests := []struct {
		name string
		sys  models.System
		want float64
	}{
		{"fully configured", models.System{OpsLeadConfigured: true, DataMonitor: models.DataMonitorFull}, 10},
		{"no ops lead", models.System{DataMonitor: models.DataMonitorFull}, 5},
		{"data monitor missing", models.System{OpsLeadConfigured: true, DataMonitor: models.DataMonitorMissing}, 8},
		{"data monitor na", models.System{OpsLeadConfigured: true, DataMonitor: models.DataMonitorNA}, 5},
		{"per item deductions", models.System{OpsLeadConfigured: true, DataMonitor: models.DataMonitorFull, MismatchedAlertsCount: 2, MissingMonitorItems: 1}, 7},
		{"everything wrong clamps to zero", models.System{DataMonitor: models.DataMonitorNA, MismatchedAlertsCount: 3, MissingMonitorItems: 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateAlert(&tt.sys))
		})
	}
}

func TestEvaluateTeam(t *testing.T) {
	tests := []struct {
		name    string
		late    int
		overdue int
		want    float64
	}{
		{"responsive", 0, 0, 10},
		{"one late response", 1, 0, 7.5},
		{"overdue items", 0, 3, 7},
		{"mixed", 2, 2, 3},
		{"clamped not negative", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &models.System{LateResponseCount: tt.late, OverdueCount: tt.overdue}
			assert.Equal(t, tt.want, EvaluateTeam(sys))
		})
	}
}
