package models

// ServerCoverage describes how much of a system's server estate is monitored
type ServerCoverage string

const (
	ServerCoverageFull    ServerCoverage = "full"
	ServerCoverageBasic   ServerCoverage = "basic"
	ServerCoveragePartial ServerCoverage = "partial"
	ServerCoverageLow     ServerCoverage = "low"
)

// DataMonitorState describes the business-data monitor configuration
type DataMonitorState string

const (
	DataMonitorFull    DataMonitorState = "full"
	DataMonitorMissing DataMonitorState = "missing"
	DataMonitorNA      DataMonitorState = "na"
)

// System is one monitored IT system together with its observability
// configuration. The scoring engine reads it and never mutates it; business
// plausibility of the numeric fields is the editing layer's responsibility.
type System struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Tier is the A/B/C classification. Informational only, not scored.
	Tier string `json:"tier,omitempty"`

	ServerCoverage ServerCoverage `json:"serverCoverage"`
	SelfBuilt      bool           `json:"selfBuilt"`

	// DocumentedItems is a direct 0-5 rating entered by the reviewer.
	DocumentedItems float64 `json:"documentedItems"`

	// AccuracyRate and DiscoveryRate carry pre-banded point values
	// (10, 7, 3 or 0); the banding happens at data entry.
	AccuracyRate        float64 `json:"accuracyRate"`
	DiscoveryRate       float64 `json:"discoveryRate"`
	EarlyDetectionCount int     `json:"earlyDetectionCount"`

	OpsLeadConfigured     bool             `json:"opsLeadConfigured"`
	DataMonitor           DataMonitorState `json:"dataMonitor"`
	MismatchedAlertsCount int              `json:"mismatchedAlertsCount"`
	MissingMonitorItems   int              `json:"missingMonitorItems"`

	LateResponseCount int `json:"lateResponseCount"`
	OverdueCount      int `json:"overdueCount"`

	SelectedToolIDs []string `json:"selectedToolIds"`

	// ToolCapabilities maps a selected tool id to the subset of that tool's
	// capabilities actually enabled for this system. May diverge from the
	// tool's defaults; a missing key means nothing is enabled.
	ToolCapabilities map[string][]Capability `json:"toolCapabilities,omitempty"`

	CheckedScenarioIDs []string `json:"checkedScenarioIds,omitempty"`
}

// EnabledCapabilities returns the capabilities enabled for a tool on this
// system. A missing entry is an empty set, never an error.
func (s *System) EnabledCapabilities(toolID string) []Capability {
	if s.ToolCapabilities == nil {
		return nil
	}
	return s.ToolCapabilities[toolID]
}
