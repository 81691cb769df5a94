package models

// Snapshot is the persisted application document: all systems and the tool
// catalog for one deployment, keyed by a fixed logical name. Saves replace
// the whole document (last-writer-wins, no merge).
type Snapshot struct {
	Systems     []*System `json:"systems"`
	Tools       []*Tool   `json:"tools"`
	LastUpdated int64     `json:"lastUpdated"` // epoch milliseconds
}

// SystemByID returns the stored system with the given id, or nil
func (s *Snapshot) SystemByID(id string) *System {
	if s == nil {
		return nil
	}
	for _, sys := range s.Systems {
		if sys == nil {
			continue
		}
		if sys.ID == id {
			return sys
		}
	}
	return nil
}

// EvaluateRequest is the body of an ad-hoc evaluation call. Tools may be
// omitted to score against the stored snapshot's catalog.
type EvaluateRequest struct {
	System *System `json:"system"`
	Tools  []*Tool `json:"tools,omitempty"`
}
