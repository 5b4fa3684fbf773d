package models

// TypeBreakdown is the per-activity-type slice of a fitness score.
type TypeBreakdown struct {
	Count  int     `json:"count"`
	Points float64 `json:"points"`
}

// SpiritualFitness is a persisted snapshot of the fitness computation for
// one user and timeframe. Recomputing with the same inputs overwrites the
// previous snapshot rather than versioning it.
type SpiritualFitness struct {
	ID            string                   `json:"id,omitempty"`
	UserID        string                   `json:"userId"` // empty when no user partitioning
	Score         float64                  `json:"score"`
	Breakdown     map[string]TypeBreakdown `json:"breakdown,omitempty"` // JSON column
	TimeframeDays int                      `json:"timeframeDays"`
	ComputedAt    string                   `json:"computedAt,omitempty"`
	CreatedAt     string                   `json:"createdAt,omitempty"`
	UpdatedAt     string                   `json:"updatedAt,omitempty"`
}
