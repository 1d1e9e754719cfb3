package nest

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/teru1991/craftcad/geom"
	"github.com/teru1991/craftcad/model"
	"github.com/teru1991/craftcad/reason"
)

// Run packs job's parts onto its sheets: validates the job,
// expands parts_ref into inflated bounding-box copies, then shelf-packs
// a seeded, bounded number of candidate orderings, keeping the
// highest-scoring iteration. Run does not mutate doc or job; the caller
// (the RunNesting command's delta) writes the returned result/trace back.
func Run(job model.NestJob, doc *model.Document, limits RunLimits) (*model.NestResult, *model.NestTrace, *reason.Reason) {
	if r := validateJob(job, doc); r != nil {
		return nil, nil, r
	}

	iterationLimit := limits.IterationLimit
	if iterationLimit <= 0 {
		iterationLimit = 1
	}

	base := expandParts(job, doc)
	sheets := instantiateSheets(job)

	gen := newRNG(job.Seed)
	trace := &model.NestTrace{
		Seed:         job.Seed,
		FailureStats: map[string]int{},
	}

	var best *iterationResult
	start := time.Now()
	iter := 0
	for ; iter < iterationLimit; iter++ {
		if limits.TimeLimitMS > 0 && time.Since(start).Milliseconds() >= limits.TimeLimitMS {
			trace.StopReason = model.StopTimeLimit
			break
		}

		order := make([]expandedCopy, len(base))
		copy(order, base)
		if iter > 0 {
			shuffle(order, gen)
		}

		result := packOnce(order, sheets, job.Objective)
		for _, p := range result.placements {
			if !p.placed {
				trace.FailureStats[p.failCode]++
			}
		}
		if best == nil || result.score > best.score {
			best = result
			trace.BestUpdates = append(trace.BestUpdates, model.TraceBestUpdate{
				Iter:        iter,
				Score:       result.score,
				SheetsUsed:  result.sheetsUsed,
				Utilization: averageOf(result.util),
			})
		}
	}
	if trace.StopReason == "" {
		trace.StopReason = model.StopIterationLimit
	}
	trace.Iterations = iter
	trace.TimeMS = time.Since(start).Milliseconds()

	if best == nil {
		return nil, trace, reason.New(reason.NestInternalInfeasible)
	}

	res := &model.NestResult{
		UtilizationPerSheet: best.util,
		SheetCountUsed:      best.sheetsUsed,
		Score:               best.score,
	}
	placedCount := 0
	for _, p := range best.placements {
		status := model.PlacementNoFeasiblePosition
		if p.failCode == string(reason.NestPartTooLargeForAnySheet) {
			status = model.PlacementTooLargeForAnySheet
		}
		if p.placed {
			status = model.PlacementPlaced
			placedCount++
		}
		partID, err := uuid.Parse(p.partID)
		if err != nil {
			continue
		}
		res.Placements = append(res.Placements, model.Placement{
			PartID:     partID,
			SheetIndex: p.sheetIndex,
			X:          p.x,
			Y:          p.y,
			Rotated:    p.rotated,
			Status:     status,
		})
	}
	res.CutCountEstimate = 4 * placedCount

	return res, trace, nil
}

func validateJob(job model.NestJob, doc *model.Document) *reason.Reason {
	if len(job.SheetDefs) == 0 {
		return reason.New(reason.NestInternalInfeasible).WithDebug("reason", "no_sheet_defs")
	}
	for _, sd := range job.SheetDefs {
		if sd.Width <= 0 || sd.Height <= 0 {
			return reason.New(reason.NestInternalInfeasible).WithParam("sheet_id", sd.ID.String())
		}
		if sd.Quantity < 1 {
			return reason.New(reason.NestInternalInfeasible).WithParam("sheet_id", sd.ID.String())
		}
	}
	for _, ref := range job.PartsRef {
		if _, ok := doc.ResolvePart(ref.PartID.String()); !ok {
			return reason.New(reason.ModelReferenceNotFound).WithParam("part_id", ref.PartID.String())
		}
	}
	return nil
}

// expandParts is the part-expansion pass: stable-sort
// parts_ref by part_id bytes, compute each part's inflated AABB, then
// expand to its effective quantity; the expanded list is finally sorted
// descending by area, tie-broken by max(dim) then part_id.
func expandParts(job model.NestJob, doc *model.Document) []expandedCopy {
	refs := make([]model.PartRef, len(job.PartsRef))
	copy(refs, job.PartsRef)
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].PartID.String() < refs[j].PartID.String()
	})

	var out []expandedCopy
	for _, ref := range refs {
		part, ok := doc.ResolvePart(ref.PartID.String())
		if !ok {
			continue
		}
		w, h := outlineBBox(part.Outline.Outer)
		inflate := 2 * (job.Constraints.GlobalMargin + job.Constraints.GlobalKerf + part.Margin + part.Kerf)
		w += inflate
		h += inflate

		allowRotate := part.AllowRotate || job.Constraints.AllowRotateDefault

		qty := part.Quantity
		if ref.QuantityOverride != nil {
			qty = *ref.QuantityOverride
		}
		for i := uint32(0); i < qty; i++ {
			out = append(out, expandedCopy{partID: ref.PartID.String(), w: w, h: h, allowRotate: allowRotate})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := out[i].w*out[i].h, out[j].w*out[j].h
		if ai != aj {
			return ai > aj
		}
		mi, mj := math.Max(out[i].w, out[i].h), math.Max(out[j].w, out[j].h)
		if mi != mj {
			return mi > mj
		}
		return out[i].partID < out[j].partID
	})
	return out
}

// outlineBBox returns the width/height of the axis-aligned bounding box of
// a closed ring. An empty or single-point ring has zero extent.
func outlineBBox(ring []geom.Vec2) (float64, float64) {
	if len(ring) == 0 {
		return 0, 0
	}
	minX, maxX := ring[0].X, ring[0].X
	minY, maxY := ring[0].Y, ring[0].Y
	for _, p := range ring[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return maxX - minX, maxY - minY
}

func instantiateSheets(job model.NestJob) []sheetInstance {
	var sheets []sheetInstance
	for idx, sd := range job.SheetDefs {
		for i := uint32(0); i < sd.Quantity; i++ {
			sheets = append(sheets, sheetInstance{defIndex: idx, width: sd.Width, height: sd.Height})
		}
	}
	return sheets
}

// packOnce runs the shelf-packing pass once over order, against a fresh
// copy of sheets' cursors.
func packOnce(order []expandedCopy, sheetDefs []sheetInstance, objective model.NestObjective) *iterationResult {
	sheets := make([]sheetInstance, len(sheetDefs))
	copy(sheets, sheetDefs)
	placedArea := make([]float64, len(sheets))

	res := &iterationResult{}
	for _, part := range order {
		orientations := [][2]float64{{part.w, part.h}}
		if part.allowRotate {
			orientations = append(orientations, [2]float64{part.h, part.w})
		}

		placed := false
		for si := range sheets {
			sheet := &sheets[si]
			for oi, dims := range orientations {
				w, h := dims[0], dims[1]
				if w > sheet.width || h > sheet.height {
					continue
				}
				if x, y, ok := tryPlace(sheet, w, h); ok {
					res.placements = append(res.placements, placementAttempt{
						partID: part.partID, sheetIndex: si, x: x, y: y,
						rotated: oi == 1, placed: true,
					})
					placedArea[si] += w * h
					placed = true
					break
				}
			}
			if placed {
				break
			}
		}
		if !placed {
			code := string(reason.NestNoFeasiblePositionWithMarginAndKerf)
			if !fitsAnySheet(part, sheetDefs) {
				code = string(reason.NestPartTooLargeForAnySheet)
			}
			res.placements = append(res.placements, placementAttempt{
				partID: part.partID, sheetIndex: -1, failCode: code,
			})
		}
	}

	sheetsUsed := 0
	res.util = make([]float64, len(sheets))
	for i, s := range sheets {
		area := s.width * s.height
		if area > 0 {
			res.util[i] = placedArea[i] / area
		}
		if placedArea[i] > 0 {
			sheetsUsed++
		}
	}
	res.sheetsUsed = sheetsUsed

	unplaced := 0
	for _, p := range res.placements {
		if !p.placed {
			unplaced++
		}
	}
	cutCount := 0
	for _, p := range res.placements {
		if p.placed {
			cutCount++
		}
	}
	cutCount *= 4
	sumUtil := 0.0
	for _, u := range res.util {
		sumUtil += u
	}
	res.score = objective.WUtilization*sumUtil -
		objective.WSheetCount*float64(sheetsUsed) -
		objective.WCutCount*float64(cutCount) -
		1000*float64(unplaced)

	return res
}

// tryPlace advances sheet's shelf cursor and returns the placement
// position, wrapping to a new row when the candidate would overflow the
// sheet's width.
func tryPlace(sheet *sheetInstance, w, h float64) (x, y float64, ok bool) {
	cx, cy, rowH := sheet.cx, sheet.cy, sheet.rowH
	if cx+w > sheet.width {
		cy += rowH
		cx = 0
		rowH = 0
	}
	if cx+w > sheet.width || cy+h > sheet.height {
		return 0, 0, false
	}
	sheet.cx = cx + w
	sheet.cy = cy
	sheet.rowH = math.Max(rowH, h)
	return cx, cy, true
}

func fitsAnySheet(part expandedCopy, sheetDefs []sheetInstance) bool {
	for _, s := range sheetDefs {
		if part.w <= s.width && part.h <= s.height {
			return true
		}
		if part.allowRotate && part.h <= s.width && part.w <= s.height {
			return true
		}
	}
	return false
}

func shuffle(order []expandedCopy, gen *rng) {
	for i := len(order) - 1; i > 0; i-- {
		j := gen.intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
}

func averageOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
