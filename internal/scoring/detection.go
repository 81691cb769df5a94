package scoring

import (
	"github.com/opsgrade/obs-scorecard/internal/models"
)

// EvaluateDetection scores monitoring accuracy and fault discovery, plus a
// bonus for incidents caught ahead of automated alerting, capped at 20.
// AccuracyRate and DiscoveryRate arrive as pre-banded point values; this
// evaluator never re-derives them from raw percentages.
func EvaluateDetection(sys *models.System) float64 {
	earlyBonus := float64(sys.EarlyDetectionCount)
	if earlyBonus > 5 {
		earlyBonus = 5
	}

	score := sys.AccuracyRate + sys.DiscoveryRate + earlyBonus
	if score > 20 {
		score = 20
	}
	return score
}
