package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsgrade/obs-scorecard/internal/catalog"
	"github.com/opsgrade/obs-scorecard/internal/models"
)

// fullStackTool covers every mandatory capability with one scenario each
func fullStackTool() *models.Tool {
	tool := &models.Tool{
		ID:                  "suite",
		Name:                "Monitoring Suite",
		DefaultCapabilities: models.MandatoryCapabilities,
	}
	for _, cap := range models.MandatoryCapabilities {
		tool.Scenarios = append(tool.Scenarios, models.Scenario{
			ID:       "suite-" + string(cap),
			Category: cap,
			Name:     string(cap) + " baseline",
			Severity: models.SeverityRed,
		})
	}
	return tool
}

func fullCreditSystem() *models.System {
	return &models.System{
		ID:              "sys-1",
		Name:            "payments",
		Tier:            "A",
		ServerCoverage:  models.ServerCoverageFull,
		DocumentedItems: 5,
		AccuracyRate:    10,
		DiscoveryRate:   10,
		SelectedToolIDs: []string{"suite"},
		ToolCapabilities: map[string][]models.Capability{
			"suite": models.MandatoryCapabilities,
		},
		CheckedScenarioIDs: []string{
			"suite-host", "suite-process", "suite-network", "suite-db", "suite-trans",
		},
		OpsLeadConfigured: true,
		DataMonitor:       models.DataMonitorFull,
	}
}

func TestEvaluateFullCredit(t *testing.T) {
	ix := catalog.NewIndex([]*models.Tool{fullStackTool()})

	b := Evaluate(fullCreditSystem(), ix)

	// coverage 45 + standardization 10 + documentation 5, capped at 60
	assert.Equal(t, 60.0, b.Part1)
	assert.Equal(t, 20.0, b.Part2)
	assert.Equal(t, 10.0, b.Part3)
	assert.Equal(t, 10.0, b.Part4)
	assert.Equal(t, 100.0, b.Total)
	assert.Empty(t, b.MissingMandatory)
	assert.Equal(t, models.TierFull, b.CoverageTier)
}

func TestEvaluatePart1CapAbsorbsSelfBuiltBonus(t *testing.T) {
	ix := catalog.NewIndex([]*models.Tool{fullStackTool()})
	sys := fullCreditSystem()
	sys.SelfBuilt = true

	b := Evaluate(sys, ix)

	// raw part1 would be 50+10+5 = 65
	assert.Equal(t, 60.0, b.Part1)
	assert.Equal(t, 100.0, b.Total)
}

func TestEvaluateEmptySystem(t *testing.T) {
	ix := catalog.NewIndex(nil)

	b := Evaluate(&models.System{DataMonitor: models.DataMonitorFull}, ix)

	// standardization 0, coverage fully deducted, documentation 0
	assert.Equal(t, 0.0, b.Part1)
	assert.Equal(t, 0.0, b.Part2)
	assert.Equal(t, 5.0, b.Part3) // only the ops lead deduction applies
	assert.Equal(t, 10.0, b.Part4)
	assert.Equal(t, models.TierLow, b.CoverageTier)
	assert.Equal(t, models.MandatoryCapabilities, b.MissingMandatory)
}

func TestEvaluateTotalIsExactSumOfParts(t *testing.T) {
	ix := catalog.NewIndex([]*models.Tool{fullStackTool()})

	systems := []*models.System{
		fullCreditSystem(),
		{DataMonitor: models.DataMonitorNA, LateResponseCount: 1},
		{
			SelectedToolIDs:  []string{"suite", "gone"},
			ToolCapabilities: map[string][]models.Capability{"suite": {models.CapabilityHost, models.CapabilityDB, models.CapabilityTrans}},
			ServerCoverage:   models.ServerCoveragePartial,
			DocumentedItems:  3,
			AccuracyRate:     7,
			DiscoveryRate:    3,
			OverdueCount:     2,
		},
	}

	for i, sys := range systems {
		b := Evaluate(sys, ix)
		assert.Equal(t, round1(b.Part1+b.Part2+b.Part3+b.Part4), b.Total, "system %d", i)
		assert.GreaterOrEqual(t, b.Part1, 0.0)
		assert.LessOrEqual(t, b.Part1, 60.0)
		assert.LessOrEqual(t, b.Part2, 20.0)
		assert.LessOrEqual(t, b.Part3, 10.0)
		assert.LessOrEqual(t, b.Part4, 10.0)
		assert.LessOrEqual(t, b.Total, 100.0)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	ix := catalog.NewIndex([]*models.Tool{fullStackTool()})
	sys := fullCreditSystem()
	sys.LateResponseCount = 1

	first := Evaluate(sys, ix)
	second := Evaluate(sys, ix)

	require.Equal(t, first, second)
}

func TestEvaluateDocumentationPassesThroughUnclamped(t *testing.T) {
	ix := catalog.NewIndex(nil)
	sys := &models.System{DocumentedItems: 9, DataMonitor: models.DataMonitorFull}

	// Out-of-range documentation values are the boundary's problem, not the
	// engine's; they flow straight into part 1.
	b := Evaluate(sys, ix)
	assert.Equal(t, 9.0, b.Part1)
}

func TestRound1HalfUp(t *testing.T) {
	// 2.25 is exactly representable, so this pins the half-up tie break
	assert.Equal(t, 2.3, round1(2.25))
	assert.Equal(t, 2.2, round1(2.24))
	assert.Equal(t, 7.5, round1(7.5))
	assert.Equal(t, 0.0, round1(0))
}
