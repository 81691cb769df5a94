package scoring

import (
	"github.com/opsgrade/obs-scorecard/internal/models"
)

// EvaluateTeam scores operational responsiveness out of 10: 2.5 points per
// late incident response and 1 point per overdue item, clamped at zero.
func EvaluateTeam(sys *models.System) float64 {
	score := 10 - float64(sys.LateResponseCount)*2.5 - float64(sys.OverdueCount)
	if score < 0 {
		score = 0
	}
	return score
}
