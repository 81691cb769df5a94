package scoring

import (
	"github.com/opsgrade/obs-scorecard/internal/models"
)

// EvaluateAlert scores alert-routing completeness out of 10 with stacking
// deductions: 5 for no configured ops lead, 5 or 2 depending on the data
// monitor state, and one point per mismatched alert and per missing monitor
// item. Clamped at zero.
func EvaluateAlert(sys *models.System) float64 {
	score := 10.0

	if !sys.OpsLeadConfigured {
		score -= 5
	}

	switch sys.DataMonitor {
	case models.DataMonitorNA:
		score -= 5
	case models.DataMonitorMissing:
		score -= 2
	}

	score -= float64(sys.MismatchedAlertsCount)
	score -= float64(sys.MissingMonitorItems)

	if score < 0 {
		score = 0
	}
	return score
}
