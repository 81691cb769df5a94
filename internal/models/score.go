package models

// CoverageTier labels how broadly the mandatory capabilities are covered
type CoverageTier string

const (
	TierFull    CoverageTier = "full"
	TierBasic   CoverageTier = "basic"
	TierPartial CoverageTier = "partial"
	TierLow     CoverageTier = "low"
)

// ScoreBreakdown is the output of the scoring engine: four capped sub-scores,
// their total, and the coverage diagnostics. It is a pure derived value,
// recomputed on demand and never stored as authoritative state.
type ScoreBreakdown struct {
	// Part1 is coverage + standardization + documentation, capped at 60.
	Part1 float64 `json:"part1"`
	// Part2 is detection, at most 20.
	Part2 float64 `json:"part2"`
	// Part3 is alerting, at most 10.
	Part3 float64 `json:"part3"`
	// Part4 is team responsiveness, at most 10.
	Part4 float64 `json:"part4"`
	// Total is the sum of the four parts, rounded to one decimal.
	Total float64 `json:"total"`

	// MissingMandatory lists mandatory capabilities no selected tool covers.
	MissingMandatory []Capability `json:"missingMandatory"`
	// CoverageTier summarizes mandatory-capability breadth.
	CoverageTier CoverageTier `json:"coverageTier"`
}

// SystemScore pairs a stored system with its computed breakdown
type SystemScore struct {
	System *System         `json:"system"`
	Score  *ScoreBreakdown `json:"score"`
}
