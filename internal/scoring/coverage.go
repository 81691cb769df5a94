package scoring

import (
	"github.com/opsgrade/obs-scorecard/internal/models"
)

// CoverageResult is the coverage component plus its diagnostics
type CoverageResult struct {
	Score            float64
	Tier             models.CoverageTier
	MissingMandatory []models.Capability
}

// coverageTiers maps mandatory-coverage percentage to a tier label and base
// deduction. Ordered, first match wins: full requires every mandatory
// category, not just a high percentage.
var coverageTiers = []struct {
	minPct    float64
	tier      models.CoverageTier
	deduction float64
}{
	{1.0, models.TierFull, 0},
	{0.7, models.TierBasic, 4},
	{0.5, models.TierPartial, 7},
	{0.0, models.TierLow, 10},
}

// serverDeductions maps server-scope coverage to its deduction. An
// unrecognized value deducts nothing.
var serverDeductions = map[models.ServerCoverage]float64{
	models.ServerCoverageFull:    0,
	models.ServerCoverageBasic:   5,
	models.ServerCoveragePartial: 10,
	models.ServerCoverageLow:     15,
}

// EvaluateCoverage scores package completeness and server scope out of a
// 45-point budget. Deductions stack: tier, per-missing-category and server
// scope all apply at once, which intentionally punishes partial rollouts
// harder than any single axis would. The self-built bonus can push the raw
// value past 45; the part-1 cap downstream absorbs that.
func EvaluateCoverage(cc CapabilityCoverage, serverCoverage models.ServerCoverage, selfBuilt bool) CoverageResult {
	mandatory := float64(len(models.MandatoryCapabilities))
	missing := float64(len(cc.MissingMandatory))
	pct := (mandatory - missing) / mandatory

	tier := models.TierLow
	tierDeduction := 10.0
	for _, band := range coverageTiers {
		if pct >= band.minPct {
			tier = band.tier
			tierDeduction = band.deduction
			break
		}
	}

	raw := 45 - tierDeduction - missing*15 - serverDeductions[serverCoverage]
	if selfBuilt {
		raw += 5
	}
	if raw < 0 {
		raw = 0
	}

	return CoverageResult{
		Score:            raw,
		Tier:             tier,
		MissingMandatory: cc.MissingMandatory,
	}
}
