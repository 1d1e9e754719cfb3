package model

import "github.com/google/uuid"

// PlacementStatus classifies the outcome of trying to place one part copy
// during nesting.
type PlacementStatus string

const (
	PlacementPlaced              PlacementStatus = "Placed"
	PlacementTooLargeForAnySheet PlacementStatus = "TooLargeForAnySheet"
	PlacementNoFeasiblePosition  PlacementStatus = "NoFeasiblePosition"
)

// Placement records where (and whether) one part instance landed.
type Placement struct {
	PartID     uuid.UUID       `json:"part_id"`
	SheetIndex int             `json:"sheet_index"`
	X          float64         `json:"x"`
	Y          float64         `json:"y"`
	Rotated    bool            `json:"rotated"`
	Status     PlacementStatus `json:"status"`
}

// NestResult is the persisted outcome of one NestJob run.
type NestResult struct {
	Placements          []Placement `json:"placements"`
	UtilizationPerSheet []float64   `json:"utilization_per_sheet"`
	SheetCountUsed      int         `json:"sheet_count_used"`
	CutCountEstimate    int         `json:"cut_count_estimate"`
	Score               float64     `json:"score"`
}

// StopReason names what ended a nesting run: the wall-clock budget ran out
// first, or every requested iteration ran.
type StopReason string

const (
	StopTimeLimit      StopReason = "NEST_STOPPED_BY_TIME_LIMIT"
	StopIterationLimit StopReason = "NEST_STOPPED_BY_ITERATION_LIMIT"
)

// TraceBestUpdate records a single improvement found during the
// best-of-iterations search.
type TraceBestUpdate struct {
	Iter        int     `json:"iter"`
	Score       float64 `json:"score"`
	SheetsUsed  int     `json:"sheet_used"`
	Utilization float64 `json:"utilization"`
}

// NestTrace is the diagnostic record of a nesting run.
type NestTrace struct {
	Seed         uint64            `json:"seed"`
	Iterations   int               `json:"iterations"`
	TimeMS       int64             `json:"time_ms"`
	StopReason   StopReason        `json:"stop_reason"`
	BestUpdates  []TraceBestUpdate `json:"best_updates"`
	FailureStats map[string]int    `json:"failure_stats,omitempty"`
}
