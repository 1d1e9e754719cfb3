package geom

import "github.com/teru1991/craftcad/reason"

// IntersectionSet is the result of Intersect. Points are
// ordered lexicographically on (x,y) under epsilon.TotalCmp. Ambiguous is
// true iff len(Points) > 1. Debug always carries a "classification" entry
// on success ("tangent_or_single" or "secant"). A line-line hit adds its
// "t"/"u" segment parameters; every other pair adds "candidate_count" and
// "truncated", which is true when more than 16 points were found and only
// the first 16 are kept in Points.
type IntersectionSet struct {
	Points    []Vec2
	Ambiguous bool
	Debug     []reason.KV
}

func (s *IntersectionSet) setDebug(key string, value any) {
	s.Debug = append(s.Debug, reason.KV{Key: key, Value: value})
}

// ProjectHit is the result of ProjectPoint.
type ProjectHit struct {
	Point   Vec2
	TGlobal float64
	Dist    float64
}

// SplitResult is the result of SplitAt.
type SplitResult struct {
	Left, Right Geom2D
	SplitPoint  Vec2
}

// SplitBy selects how SplitAt locates the split location: by global
// parameter or by a point to project onto the geometry first.
type SplitBy struct {
	byT   bool
	t     float64
	point Vec2
}

// SplitByT splits at global parameter t.
func SplitByT(t float64) SplitBy { return SplitBy{byT: true, t: t} }

// SplitByPoint splits at the projection of p onto the geometry.
func SplitByPoint(p Vec2) SplitBy { return SplitBy{byT: false, point: p} }
