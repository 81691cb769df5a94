package scoring

import (
	"github.com/opsgrade/obs-scorecard/internal/models"
)

// CapabilityCoverage is the derived capability picture for one system:
// which categories its selected tools actually cover and which mandatory
// categories remain uncovered.
type CapabilityCoverage struct {
	Covered          map[models.Capability]bool
	MissingMandatory []models.Capability
}

// CoverCapabilities unions the enabled capabilities of every selected tool.
// Tool ids with no capability entry contribute nothing; that is the contract
// for unknown or not-yet-configured tools, not an error.
func CoverCapabilities(sys *models.System) CapabilityCoverage {
	covered := make(map[models.Capability]bool)
	for _, toolID := range sys.SelectedToolIDs {
		for _, cap := range sys.EnabledCapabilities(toolID) {
			covered[cap] = true
		}
	}

	// Report missing categories in the fixed mandatory order so repeated
	// evaluations of identical input are identical.
	missing := make([]models.Capability, 0, len(models.MandatoryCapabilities))
	for _, cap := range models.MandatoryCapabilities {
		if !covered[cap] {
			missing = append(missing, cap)
		}
	}

	return CapabilityCoverage{
		Covered:          covered,
		MissingMandatory: missing,
	}
}
