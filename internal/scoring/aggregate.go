// Package scoring is the rubric engine: pure, stateless evaluators that turn
// a system's observability configuration into four weighted sub-scores and a
// 0-100 total. Inputs are treated permissively — unknown references resolve
// to empty sets and out-of-range numbers flow through arithmetic unclamped
// except where a formula says otherwise — so evaluation never fails.
package scoring

import (
	"math"

	"github.com/opsgrade/obs-scorecard/internal/catalog"
	"github.com/opsgrade/obs-scorecard/internal/models"
)

// EvaluateDocumentation passes the reviewer's 0-5 documentation rating
// through unchanged. Range enforcement belongs to the data-entry boundary.
func EvaluateDocumentation(sys *models.System) float64 {
	return sys.DocumentedItems
}

// Evaluate computes the full score breakdown for one system against a tool
// catalog. Part 1 folds coverage, standardization and documentation under a
// 60-point cap; detection, alerting and team each keep their own budget.
func Evaluate(sys *models.System, ix *catalog.Index) *models.ScoreBreakdown {
	coverage := EvaluateCoverage(CoverCapabilities(sys), sys.ServerCoverage, sys.SelfBuilt)

	part1 := round1(coverage.Score + EvaluateStandardization(sys, ix) + EvaluateDocumentation(sys))
	if part1 > 60 {
		part1 = 60
	}
	part2 := round1(EvaluateDetection(sys))
	part3 := round1(EvaluateAlert(sys))
	part4 := round1(EvaluateTeam(sys))

	return &models.ScoreBreakdown{
		Part1:            part1,
		Part2:            part2,
		Part3:            part3,
		Part4:            part4,
		Total:            round1(part1 + part2 + part3 + part4),
		MissingMandatory: coverage.MissingMandatory,
		CoverageTier:     coverage.Tier,
	}
}

// round1 rounds to one decimal place, half up
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
