package catalog

import (
	"github.com/opsgrade/obs-scorecard/internal/models"
)

// Index is a read-only lookup over a tool catalog. Lookups are total
// functions: an unknown id yields (nil, false), never an error. The scoring
// engine's "missing reference contributes nothing" contract depends on this.
type Index struct {
	tools     map[string]*models.Tool
	scenarios map[string]*models.Scenario
	ordered   []*models.Tool
}

// NewIndex builds an index from a tool list. Later duplicates of a tool or
// scenario id win, matching last-writer-wins snapshot semantics.
func NewIndex(tools []*models.Tool) *Index {
	ix := &Index{
		tools:     make(map[string]*models.Tool, len(tools)),
		scenarios: make(map[string]*models.Scenario),
		ordered:   make([]*models.Tool, 0, len(tools)),
	}

	// A duplicate id replaces the earlier entry in place, keeping the
	// position of the first occurrence.
	position := make(map[string]int, len(tools))

	for _, tool := range tools {
		if tool == nil {
			continue
		}
		if at, seen := position[tool.ID]; seen {
			ix.ordered[at] = tool
		} else {
			position[tool.ID] = len(ix.ordered)
			ix.ordered = append(ix.ordered, tool)
		}
		ix.tools[tool.ID] = tool
		for i := range tool.Scenarios {
			ix.scenarios[tool.Scenarios[i].ID] = &tool.Scenarios[i]
		}
	}

	return ix
}

// ToolByID looks up a tool by id
func (ix *Index) ToolByID(id string) (*models.Tool, bool) {
	tool, ok := ix.tools[id]
	return tool, ok
}

// ScenarioByID looks up a scenario by id across all tools
func (ix *Index) ScenarioByID(id string) (*models.Scenario, bool) {
	sc, ok := ix.scenarios[id]
	return sc, ok
}

// Tools returns the indexed tools in their original order
func (ix *Index) Tools() []*models.Tool {
	return ix.ordered
}

// Len returns the number of distinct tools in the index
func (ix *Index) Len() int {
	return len(ix.tools)
}
