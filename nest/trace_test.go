package nest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/teru1991/craftcad/model"
)

func TestNestTraceRecordsBestUpdatesAndStopReason(t *testing.T) {
	parts := []model.Part{squarePart(10), squarePart(15)}
	doc := &model.Document{Parts: parts}
	var refs []model.PartRef
	for _, p := range parts {
		refs = append(refs, model.PartRef{PartID: p.ID})
	}
	job := model.NestJob{
		ID:        uuid.New(),
		SheetDefs: []model.SheetDef{{ID: uuid.New(), Width: 100, Height: 100, Quantity: 1}},
		PartsRef:  refs,
		Seed:      3,
		Objective: model.NestObjective{WUtilization: 10, WSheetCount: 1},
	}

	_, trace, r := Run(job, doc, RunLimits{IterationLimit: 4, TimeLimitMS: 10_000})
	require.Nil(t, r)
	require.Equal(t, uint64(3), trace.Seed)
	require.Equal(t, 4, trace.Iterations)
	require.Equal(t, model.StopIterationLimit, trace.StopReason)

	// Iteration 0 always records the first best; later iterations only
	// append on strict improvement.
	require.NotEmpty(t, trace.BestUpdates)
	require.Equal(t, 0, trace.BestUpdates[0].Iter)
	for i := 1; i < len(trace.BestUpdates); i++ {
		require.Greater(t, trace.BestUpdates[i].Score, trace.BestUpdates[i-1].Score)
	}
}

func TestNestFailureStatsDistinguishNoFeasibleFromTooLarge(t *testing.T) {
	// A 15x15 part fits the 20x20 sheet alone, but three copies overflow
	// it; a 50x50 part fits no sheet in any orientation.
	small := squarePart(15)
	qty := uint32(3)
	huge := squarePart(50)
	doc := &model.Document{Parts: []model.Part{small, huge}}
	job := model.NestJob{
		ID:        uuid.New(),
		SheetDefs: []model.SheetDef{{ID: uuid.New(), Width: 20, Height: 20, Quantity: 1}},
		PartsRef: []model.PartRef{
			{PartID: small.ID, QuantityOverride: &qty},
			{PartID: huge.ID},
		},
		Seed: 11,
	}

	result, trace, r := Run(job, doc, RunLimits{IterationLimit: 1})
	require.Nil(t, r)

	var placed, tooLarge, noFeasible int
	for _, p := range result.Placements {
		switch p.Status {
		case model.PlacementPlaced:
			placed++
		case model.PlacementTooLargeForAnySheet:
			tooLarge++
		case model.PlacementNoFeasiblePosition:
			noFeasible++
		}
	}
	require.Equal(t, 1, placed)
	require.Equal(t, 1, tooLarge)
	require.Equal(t, 2, noFeasible)

	require.Equal(t, 1, trace.FailureStats["NEST_PART_TOO_LARGE_FOR_ANY_SHEET"])
	require.Equal(t, 2, trace.FailureStats["NEST_NO_FEASIBLE_POSITION_WITH_MARGIN_AND_KERF"])
}

func TestNestCutCountEstimateIsFourPerPlacement(t *testing.T) {
	parts := []model.Part{squarePart(10), squarePart(10)}
	doc := &model.Document{Parts: parts}
	job := model.NestJob{
		ID: uuid.New(),
		SheetDefs: []model.SheetDef{
			{ID: uuid.New(), Width: 100, Height: 100, Quantity: 1},
		},
		PartsRef: []model.PartRef{{PartID: parts[0].ID}, {PartID: parts[1].ID}},
		Seed:     1,
	}

	result, _, r := Run(job, doc, RunLimits{IterationLimit: 1})
	require.Nil(t, r)
	require.Equal(t, 8, result.CutCountEstimate)
	require.Equal(t, 1, result.SheetCountUsed)
}
