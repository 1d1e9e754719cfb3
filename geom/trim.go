package geom

import (
	"math"
	"sort"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/reason"
)

// trimCandidate is one ranked intersection candidate: its point, its
// parameter on the target geometry, and its distance (in parameter space)
// from the pick point's own parameter.
type trimCandidate struct {
	Point Vec2
	T     float64
	Diff  float64
}

// rankCandidates orders pts by |t_pick - t_point| ascending, using
// paramOf to resolve each point's parameter on the target geometry.
func rankCandidates(pts []Vec2, tPick float64, paramOf func(Vec2) float64) []trimCandidate {
	cands := make([]trimCandidate, len(pts))
	for i, p := range pts {
		t := paramOf(p)
		cands[i] = trimCandidate{Point: p, T: t, Diff: math.Abs(tPick - t)}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Diff < cands[j].Diff })
	return cands
}

// pickTrimCandidate resolves the ranked candidate list to a single cut
// point: candidateIndex (if non-nil) selects a specific rank explicitly;
// otherwise the closest candidate wins unless the top two are tied within
// eps.EqDist, in which case the trim fails EditTrimAmbiguousCandidate with
// every candidate's point/parameter reported in Debug["candidates"].
func pickTrimCandidate(cands []trimCandidate, eps epsilon.Policy, candidateIndex *int) (Vec2, *reason.Reason) {
	if candidateIndex != nil {
		idx := *candidateIndex
		if idx < 0 || idx >= len(cands) {
			return Vec2{}, reason.New(reason.EditTrimAmbiguousCandidate).
				WithDebug("reason", "candidate_index_out_of_range").
				WithDebug("candidate_index", idx).
				WithDebug("candidate_count", len(cands))
		}
		return cands[idx].Point, nil
	}

	if len(cands) > 1 && cands[1].Diff-cands[0].Diff <= eps.EqDist {
		debugCandidates := make([]map[string]any, len(cands))
		for i, c := range cands {
			debugCandidates[i] = map[string]any{"point": c.Point, "t": c.T, "diff": c.Diff}
		}
		return Vec2{}, reason.New(reason.EditTrimAmbiguousCandidate).
			WithDebug("candidates", debugCandidates)
	}
	return cands[0].Point, nil
}

// TrimLineToIntersection shortens line g to the intersection with
// boundary closest (by target parameter) to keepNear. When
// the line crosses boundary more than once, candidates are ranked by
// |t_pick - t_candidate|; a near-tie between the top two ranked
// candidates fails EditTrimAmbiguousCandidate unless candidateIndex
// disambiguates which ranked candidate to use.
func TrimLineToIntersection(g, boundary Geom2D, keepNear Vec2, eps epsilon.Policy, candidateIndex *int) (Geom2D, *reason.Reason) {
	if g.Kind != KindLine {
		return Geom2D{}, reason.New(reason.GeomTrimNoIntersection).WithDebug("kind", string(g.Kind))
	}
	set, err := Intersect(g, boundary, eps)
	if err != nil {
		return Geom2D{}, reason.New(reason.GeomTrimNoIntersection).WithDebug("cause", string(err.Code))
	}

	paramOf := func(p Vec2) float64 { return projectOnSegment(g.A, g.B, p).TGlobal }
	tPick := paramOf(keepNear)

	cands := rankCandidates(set.Points, tPick, paramOf)
	cut, rerr := pickTrimCandidate(cands, eps, candidateIndex)
	if rerr != nil {
		return Geom2D{}, rerr
	}

	var trimmed Geom2D
	if tPick <= paramOf(cut) {
		trimmed = Line(g.A, cut)
	} else {
		trimmed = Line(cut, g.B)
	}
	if verr := trimmed.Validate(eps); verr != nil {
		return Geom2D{}, verr
	}
	return trimmed, nil
}

// TrimPolylineToIntersection trims an open polyline at its intersection
// with boundary closest to keepNear, discarding the far side.
// Ranking and ambiguity resolution mirror TrimLineToIntersection, using
// the polyline's global parameter.
func TrimPolylineToIntersection(g, boundary Geom2D, keepNear Vec2, eps epsilon.Policy, candidateIndex *int) (Geom2D, *reason.Reason) {
	if g.Kind != KindPolyline || g.Closed {
		return Geom2D{}, reason.New(reason.GeomTrimNoIntersection).WithDebug("kind", string(g.Kind))
	}
	set, err := Intersect(g, boundary, eps)
	if err != nil {
		return Geom2D{}, reason.New(reason.GeomTrimNoIntersection).WithDebug("cause", string(err.Code))
	}

	paramOf := func(p Vec2) float64 { return projectOnPolyline(g, p).TGlobal }
	tPick := paramOf(keepNear)

	cands := rankCandidates(set.Points, tPick, paramOf)
	cut, rerr := pickTrimCandidate(cands, eps, candidateIndex)
	if rerr != nil {
		return Geom2D{}, rerr
	}

	sres, serr := SplitAt(g, SplitByPoint(cut), eps)
	if serr != nil {
		return Geom2D{}, serr
	}

	var trimmed Geom2D
	if tPick <= paramOf(cut) {
		trimmed = sres.Left
	} else {
		trimmed = sres.Right
	}
	if verr := trimmed.Validate(eps); verr != nil {
		return Geom2D{}, verr
	}
	return trimmed, nil
}
