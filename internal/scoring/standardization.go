package scoring

import (
	"github.com/opsgrade/obs-scorecard/internal/catalog"
	"github.com/opsgrade/obs-scorecard/internal/models"
)

// standardizationBands maps the checked-scenario percentage of a tool to its
// deduction. Ordered, first match wins.
var standardizationBands = []struct {
	minPct    float64
	deduction float64
}{
	{99, 0},
	{70, 2},
	{50, 5},
	{30, 7},
	{0, 10},
}

// EvaluateStandardization scores how many of the relevant standard scenarios
// are checked per selected tool, averaged over the selection, in [0, 10].
//
// Selected ids that do not resolve in the catalog contribute no term but
// still count in the denominator, silently dragging the average down.
// Changing that would change published scores, so it stays.
func EvaluateStandardization(sys *models.System, ix *catalog.Index) float64 {
	if len(sys.SelectedToolIDs) == 0 {
		return 0
	}

	checked := make(map[string]bool, len(sys.CheckedScenarioIDs))
	for _, id := range sys.CheckedScenarioIDs {
		checked[id] = true
	}

	sum := 0.0
	for _, toolID := range sys.SelectedToolIDs {
		tool, ok := ix.ToolByID(toolID)
		if !ok {
			continue
		}

		enabled := make(map[models.Capability]bool)
		for _, cap := range sys.EnabledCapabilities(toolID) {
			enabled[cap] = true
		}

		relevant := 0
		hit := 0
		for _, sc := range tool.Scenarios {
			if !enabled[sc.Category] {
				continue
			}
			relevant++
			if checked[sc.ID] {
				hit++
			}
		}

		// A tool with no applicable standard scenarios cannot be penalized
		// for non-compliance.
		if relevant == 0 {
			sum += 10
			continue
		}

		pct := 100 * float64(hit) / float64(relevant)
		deduction := 10.0
		for _, band := range standardizationBands {
			if pct >= band.minPct {
				deduction = band.deduction
				break
			}
		}
		sum += 10 - deduction
	}

	return sum / float64(len(sys.SelectedToolIDs))
}
