package nest_test

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/teru1991/craftcad/geom"
	"github.com/teru1991/craftcad/model"
	"github.com/teru1991/craftcad/nest"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleRun
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Pack a 15x15 and a 10x10 part onto a single 100x100 sheet. Copies are
//	sorted by descending area, so the larger part lands at the origin and
//	the smaller one beside it on the same shelf row.
func ExampleRun() {
	rect := func(side float64) model.Part {
		return model.Part{
			ID:   uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012.0f", side)),
			Name: "square",
			Outline: model.Polygon2D{
				Outer: []geom.Vec2{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}},
			},
			Quantity: 1,
		}
	}
	big, small := rect(15), rect(10)
	doc := &model.Document{Parts: []model.Part{big, small}}
	job := model.NestJob{
		ID:        uuid.New(),
		SheetDefs: []model.SheetDef{{ID: uuid.New(), Width: 100, Height: 100, Quantity: 1}},
		PartsRef:  []model.PartRef{{PartID: big.ID}, {PartID: small.ID}},
		Seed:      42,
	}

	result, trace, r := nest.Run(job, doc, nest.RunLimits{IterationLimit: 1})
	if r != nil {
		fmt.Println("error:", r.Code)
		return
	}
	for _, p := range result.Placements {
		fmt.Printf("(%.0f,%.0f) rotated=%v %s\n", p.X, p.Y, p.Rotated, p.Status)
	}
	fmt.Printf("sheets=%d cuts=%d stop=%s\n", result.SheetCountUsed, result.CutCountEstimate, trace.StopReason)
	// Output:
	// (0,0) rotated=false Placed
	// (15,0) rotated=false Placed
	// sheets=1 cuts=8 stop=NEST_STOPPED_BY_ITERATION_LIMIT
}
